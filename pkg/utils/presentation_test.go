package utils

import (
	"testing"
	"time"
)

func TestTruncateWithEllipsis(t *testing.T) {
	tests := []struct {
		name string
		in   string
		max  int
		want string
	}{
		{
			name: "short string passes through",
			in:   "hello",
			max:  50,
			want: "hello",
		},
		{
			name: "exact length passes through",
			in:   "abcde",
			max:  5,
			want: "abcde",
		},
		{
			name: "long string gets cut",
			in:   "abcdefghij",
			max:  5,
			want: "abcde...",
		},
		{
			name: "multibyte runes count as one",
			in:   "héllo wörld",
			max:  5,
			want: "héllo...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TruncateWithEllipsis(tt.in, tt.max); got != tt.want {
				t.Errorf("TruncateWithEllipsis(%q, %d) = %q, want %q", tt.in, tt.max, got, tt.want)
			}
		})
	}
}

func TestFormatRelativeLabel(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		ago  time.Duration
		want string
	}{
		{name: "thirty minutes", ago: 30 * time.Minute, want: "Now"},
		{name: "just under an hour", ago: 59 * time.Minute, want: "Now"},
		{name: "five hours", ago: 5 * time.Hour, want: "5 hours ago"},
		{name: "hours are floored", ago: 5*time.Hour + 45*time.Minute, want: "5 hours ago"},
		{name: "thirty hours", ago: 30 * time.Hour, want: "Yesterday"},
		{name: "ninety hours", ago: 90 * time.Hour, want: "3 days ago"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatRelativeLabel(now.Add(-tt.ago), now); got != tt.want {
				t.Errorf("FormatRelativeLabel(-%v) = %q, want %q", tt.ago, got, tt.want)
			}
		})
	}
}

func TestFormatSizeLabel(t *testing.T) {
	if got := FormatSizeLabel(1258291); got != "1.2 MB" {
		t.Errorf("FormatSizeLabel(1258291) = %q, want %q", got, "1.2 MB")
	}
	if got := FormatSizeLabel(0); got != "0.0 MB" {
		t.Errorf("FormatSizeLabel(0) = %q, want %q", got, "0.0 MB")
	}
}

func TestFileTypeTag(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "report.pdf", want: "PDF"},
		{in: "notes.docx", want: "DOCX"},
		{in: "readme.txt", want: "TXT"},
		{in: "archive.tar.gz", want: "GZ"},
		{in: "noext", want: ""},
	}

	for _, tt := range tests {
		if got := FileTypeTag(tt.in); got != tt.want {
			t.Errorf("FileTypeTag(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
