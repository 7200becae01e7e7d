// Package synthesis assembles short extractive summaries from ranked
// retrieval results.
//
// The engine is deliberately non-generative: it selects verbatim
// sentences from the retrieved chunks that share terms with the query.
// It never fails; with nothing to work with it degrades to a fixed
// fallback string.
package synthesis

import (
	"context"
	"strings"

	"github.com/custodia-labs/passage/internal/core/domain"
	"github.com/custodia-labs/passage/internal/core/ports/driven"
)

// Ensure Engine implements the interface.
var _ driven.Synthesiser = (*Engine)(nil)

// NoSummary is returned when there are no chunks to summarise.
const NoSummary = "no summary available"

// DefaultMaxSentences caps the summary length.
const DefaultMaxSentences = 3

// Engine produces extractive summaries.
type Engine struct {
	maxSentences int
}

// Option configures the engine.
type Option func(*Engine)

// WithMaxSentences overrides the sentence cap.
func WithMaxSentences(n int) Option {
	return func(e *Engine) {
		if n > 0 {
			e.maxSentences = n
		}
	}
}

// New creates a synthesis engine.
func New(opts ...Option) *Engine {
	e := &Engine{maxSentences: DefaultMaxSentences}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Synthesise picks sentences from the ranked chunks that contain query
// terms, deduplicated and in rank order. Falls back to the opening
// sentence of the best chunk when no sentence matches, and to a fixed
// string when there are no chunks at all.
func (e *Engine) Synthesise(_ context.Context, query string, ranked []domain.RetrievedChunk) string {
	if len(ranked) == 0 {
		return NoSummary
	}

	terms := tokenise(query)

	var selected []string
	seen := make(map[string]bool)
	for _, rc := range ranked {
		for _, sentence := range splitSentences(rc.Chunk.Content) {
			if !matchesTerms(sentence, terms) {
				continue
			}
			key := normaliseWhitespace(sentence)
			if seen[key] {
				continue
			}
			seen[key] = true
			selected = append(selected, sentence)
			if len(selected) >= e.maxSentences {
				break
			}
		}
		if len(selected) >= e.maxSentences {
			break
		}
	}

	if len(selected) == 0 {
		first := firstSentence(ranked[0].Chunk.Content)
		if first == "" {
			return NoSummary
		}
		selected = []string{first}
	}

	return "Summary for '" + query + "':\n- " + strings.Join(selected, "\n- ")
}

// splitSentences breaks text on sentence terminators, keeping the
// terminator attached.
func splitSentences(text string) []string {
	var sentences []string
	var sb strings.Builder

	flush := func() {
		s := strings.TrimSpace(sb.String())
		if s != "" {
			sentences = append(sentences, s)
		}
		sb.Reset()
	}

	for _, r := range text {
		sb.WriteRune(r)
		if r == '.' || r == '!' || r == '?' {
			flush()
		}
	}
	flush()
	return sentences
}

// firstSentence returns the opening sentence of the text, or "".
func firstSentence(text string) string {
	sentences := splitSentences(text)
	if len(sentences) == 0 {
		return ""
	}
	return sentences[0]
}

// tokenise lowercases the text and splits it into alphanumeric terms.
func tokenise(text string) []string {
	return strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !isWordRune(r)
	})
}

func isWordRune(r rune) bool {
	return r == '\'' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9') ||
		r > 127
}

// matchesTerms reports whether the sentence contains any query term.
// Short terms are skipped so articles and prepositions do not match
// everything.
func matchesTerms(sentence string, terms []string) bool {
	if len(terms) == 0 {
		return false
	}

	words := make(map[string]bool)
	for _, w := range tokenise(sentence) {
		words[w] = true
	}

	for _, term := range terms {
		if len(term) < 3 {
			continue
		}
		if words[term] {
			return true
		}
	}
	return false
}

// normaliseWhitespace collapses runs of whitespace for deduplication.
func normaliseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
