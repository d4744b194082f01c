// Package nlp provides sentence splitting for excerpt building. The
// default splitter is a plain punctuation scan; heavier tokenizers can
// be swapped in through SetDefault without touching callers.
package nlp

import (
	"strings"
	"sync"
)

// Splitter breaks text into sentences.
type Splitter interface {
	Sentences(text string) []string
}

// PunctSplitter splits after '.', '!' or '?' followed by whitespace.
// The trailing remainder is kept as a final sentence. Abbreviations
// like "Rs." split too; callers that care need a smarter Splitter.
type PunctSplitter struct{}

func (PunctSplitter) Sentences(text string) []string {
	var sentences []string
	var current strings.Builder

	for i, r := range text {
		current.WriteRune(r)
		if (r == '.' || r == '!' || r == '?') && i+1 < len(text) && isSpace(text[i+1]) {
			if s := strings.TrimSpace(current.String()); s != "" {
				sentences = append(sentences, s)
			}
			current.Reset()
		}
	}
	if s := strings.TrimSpace(current.String()); s != "" {
		sentences = append(sentences, s)
	}
	return sentences
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\t' || b == '\r'
}

var (
	mu  sync.Mutex
	def Splitter
)

// Default returns the process-wide splitter, created lazily on first use.
func Default() Splitter {
	mu.Lock()
	defer mu.Unlock()
	if def == nil {
		def = PunctSplitter{}
	}
	return def
}

// SetDefault replaces the process-wide splitter. A nil value restores
// the punctuation splitter on next use.
func SetDefault(s Splitter) {
	mu.Lock()
	def = s
	mu.Unlock()
}

// Truncate shortens text to at most max runes, cutting at a sentence
// boundary when possible. Sentences are rejoined with single spaces; if
// even the first sentence exceeds max, the cut is a plain rune slice.
func Truncate(s Splitter, text string, max int) string {
	if len([]rune(text)) <= max {
		return text
	}
	var b strings.Builder
	n := 0
	for _, sent := range s.Sentences(text) {
		add := len([]rune(sent))
		if n > 0 {
			add++
		}
		if n+add > max {
			break
		}
		if n > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(sent)
		n += add
	}
	if b.Len() == 0 {
		return string([]rune(text)[:max])
	}
	return b.String()
}
