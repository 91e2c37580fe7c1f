// Package extract pulls plain text out of uploaded files so it can be
// chunked and embedded.
package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Text extracts the textual content of a file by its type tag
// (upper-cased extension). DOC/DOCX currently fall back to a lossy
// byte scan; TXT is returned as-is.
func Text(typeTag string, data []byte) (string, error) {
	switch strings.ToUpper(typeTag) {
	case "PDF":
		return pdfText(data)
	case "TXT":
		return string(data), nil
	case "DOC", "DOCX":
		return printableText(data), nil
	default:
		return "", fmt.Errorf("unsupported document type: %s", typeTag)
	}
}

func pdfText(data []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open pdf: %w", err)
	}

	var buf bytes.Buffer
	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extract pdf text: %w", err)
	}
	if _, err := buf.ReadFrom(plain); err != nil {
		return "", fmt.Errorf("read pdf text: %w", err)
	}
	return buf.String(), nil
}

// printableText keeps runs of printable characters. Good enough to make
// word-processor files searchable until a proper parser is wired in.
func printableText(data []byte) string {
	var b strings.Builder
	for _, c := range data {
		if c >= 32 && c < 127 || c == '\n' {
			b.WriteByte(c)
		} else {
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
