// Package prompt assembles the grounded prompt sent with each chat
// request. Retrieved chunks from the resolved context set are injected
// as the only reference material.
package prompt

import (
	"fmt"
	"strings"
)

// Chunk is one retrieved passage with the document it came from.
type Chunk struct {
	DocumentName string
	Content      string
}

// Builder renders the final user prompt from the question and the
// retrieved context.
type Builder struct{}

func NewBuilder() *Builder {
	return &Builder{}
}

// Build returns the grounded prompt. With no chunks the question passes
// through untouched so the model can still answer conversationally.
func (b *Builder) Build(question string, chunks []Chunk) string {
	if len(chunks) == 0 {
		return question
	}

	var prompt strings.Builder

	prompt.WriteString("<reference_material>\n")
	prompt.WriteString("Use ONLY the following excerpts from the user's documents to answer.\n")
	prompt.WriteString("If the excerpts do not contain the answer, say so.\n\n")

	for _, c := range chunks {
		prompt.WriteString(fmt.Sprintf("\n--- FROM: %s ---\n", c.DocumentName))
		prompt.WriteString(c.Content)
		prompt.WriteString(fmt.Sprintf("\n--- END OF: %s ---\n", c.DocumentName))
	}
	prompt.WriteString("</reference_material>\n\n")

	prompt.WriteString("<task_instructions>\n")
	prompt.WriteString("1. Answer directly from the reference material.\n")
	prompt.WriteString("2. Cite the document name when you draw from an excerpt.\n")
	prompt.WriteString("3. Keep the tone conversational.\n")
	prompt.WriteString("</task_instructions>\n\n")

	prompt.WriteString(fmt.Sprintf("Question: %s", question))

	return prompt.String()
}
