package service

import (
	"strings"

	"triphelix-cli/internal/markdown"
)

// Preview prepares a partial answer for live display. Normalization is
// idempotent, so the same text may be previewed repeatedly as it grows.
func Preview(partial string) string {
	return markdown.Normalize(partial)
}

// IsTrivialContent reports whether a streamed answer has nothing worth
// showing yet.
func IsTrivialContent(text string) bool {
	trimmed := strings.TrimSpace(text)
	if trimmed == "" {
		return true
	}
	lower := strings.ToLower(trimmed)
	return lower == "..." ||
		lower == "thinking..." ||
		lower == "typing..."
}

// CompleteLines splits a growing answer into the lines that can no longer
// change and the trailing partial line.
func CompleteLines(text string) (complete []string, partial string) {
	idx := strings.LastIndex(text, "\n")
	if idx < 0 {
		return nil, text
	}
	return strings.Split(text[:idx], "\n"), text[idx+1:]
}
