package prompt

import (
	"strings"
	"testing"
)

func TestBuildPassthroughWithoutChunks(t *testing.T) {
	b := NewBuilder()

	got := b.Build("What is the revenue forecast?", nil)
	if got != "What is the revenue forecast?" {
		t.Errorf("expected the raw question, got %q", got)
	}
}

func TestBuildInjectsChunks(t *testing.T) {
	b := NewBuilder()

	chunks := []Chunk{
		{DocumentName: "q3-report.pdf", Content: "Revenue grew 12% in Q3."},
		{DocumentName: "notes.txt", Content: "Forecast assumes stable churn."},
	}
	got := b.Build("Summarize the outlook", chunks)

	for _, want := range []string{
		"<reference_material>",
		"</reference_material>",
		"<task_instructions>",
		"--- FROM: q3-report.pdf ---",
		"Revenue grew 12% in Q3.",
		"--- END OF: notes.txt ---",
		"Question: Summarize the outlook",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("prompt missing %q", want)
		}
	}

	if !strings.HasSuffix(got, "Question: Summarize the outlook") {
		t.Errorf("question should come last, got tail %q", got[len(got)-40:])
	}
}
