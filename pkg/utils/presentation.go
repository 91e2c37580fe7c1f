package utils

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// TruncateWithEllipsis cuts s to max runes and appends "..." when it
// had to cut. Shorter strings pass through untouched.
func TruncateWithEllipsis(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max]) + "..."
}

// FormatRelativeLabel renders the coarse timestamp label shown in the
// session list: "Now" under an hour, whole hours under a day,
// "Yesterday" under two days, then whole days.
func FormatRelativeLabel(t time.Time, now time.Time) string {
	diff := now.Sub(t)
	switch {
	case diff < time.Hour:
		return "Now"
	case diff < 24*time.Hour:
		return fmt.Sprintf("%d hours ago", int(diff.Hours()))
	case diff < 48*time.Hour:
		return "Yesterday"
	default:
		return fmt.Sprintf("%d days ago", int(diff.Hours()/24))
	}
}

// FormatSizeLabel renders a byte count as the megabyte label stored on
// documents, e.g. "1.2 MB".
func FormatSizeLabel(sizeBytes int64) string {
	return fmt.Sprintf("%.1f MB", float64(sizeBytes)/(1024*1024))
}

// FileTypeTag derives a document's type tag from its file name:
// the upper-cased extension without the dot.
func FileTypeTag(filename string) string {
	ext := strings.TrimPrefix(filepath.Ext(filename), ".")
	return strings.ToUpper(ext)
}
