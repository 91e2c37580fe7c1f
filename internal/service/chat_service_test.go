package service

import (
	"strings"
	"testing"

	"ai-dashboard-be/internal/constant"
)

func TestFinalizeAnswer(t *testing.T) {
	tests := []struct {
		name    string
		partial string
	}{
		{name: "failure before any chunk", partial: ""},
		{name: "failure mid-stream keeps the partial", partial: "Hello "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := finalizeAnswer(tt.partial)

			if !strings.HasPrefix(got, tt.partial) {
				t.Errorf("finalizeAnswer(%q) = %q, dropped the streamed content", tt.partial, got)
			}
			if !strings.HasSuffix(got, constant.FallbackAnswer) {
				t.Errorf("finalizeAnswer(%q) = %q, missing the fallback sentence", tt.partial, got)
			}
			// Stored content must equal streamed chunks + fallback chunk.
			if got != tt.partial+constant.FallbackAnswer {
				t.Errorf("finalizeAnswer(%q) = %q, want %q", tt.partial, got, tt.partial+constant.FallbackAnswer)
			}
		})
	}
}
