package llm

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/lexigest/lexigest/internal/nlp"
)

var injectionPattern = regexp.MustCompile(
	`(?i)(ignore\s+(previous|all|above)|system\s*prompt|you\s+are\s+now|` +
		`act\s+as\s+|pretend\s+|forget\s+(everything|all)|override|` +
		`new\s+instructions)`,
)

// cleanNote trims a model reply down to one safe sentence. Replies that
// are empty, oversized, or smell like prompt-injection echoes are
// rejected so the note is simply omitted.
func cleanNote(raw string) (string, error) {
	note := strings.TrimSpace(raw)
	if sentences := nlp.Default().Sentences(note); len(sentences) > 0 {
		note = sentences[0]
	}
	if len(note) < 3 || len(note) > 300 {
		return "", fmt.Errorf("note length %d out of range", len(note))
	}
	if injectionPattern.MatchString(note) {
		return "", fmt.Errorf("note rejected by injection filter")
	}
	return note, nil
}
