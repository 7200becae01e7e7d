// Package chunker provides a word-window text chunking processor.
package chunker

import (
	"context"
	"strings"

	"github.com/custodia-labs/passage/internal/core/domain"
)

// DefaultTargetWords is the default number of words per chunk.
const DefaultTargetWords = 500

// DefaultOverlapWords is the default number of overlapping words
// between consecutive chunks.
const DefaultOverlapWords = 50

// Processor splits document content into overlapping word-bounded chunks.
// It implements the PostProcessor interface.
//
// Chunking is deterministic: identical input text always yields an
// identical chunk sequence with identical IDs, which makes re-indexing
// idempotent.
type Processor struct {
	targetWords  int
	overlapWords int
}

// Option configures the chunker processor.
type Option func(*Processor)

// WithTargetWords sets the chunk size in words.
func WithTargetWords(words int) Option {
	return func(p *Processor) {
		if words > 0 {
			p.targetWords = words
		}
	}
}

// WithOverlapWords sets the overlap between consecutive chunks in words.
func WithOverlapWords(words int) Option {
	return func(p *Processor) {
		if words >= 0 {
			p.overlapWords = words
		}
	}
}

// New creates a new chunker processor with the given options.
func New(opts ...Option) *Processor {
	p := &Processor{
		targetWords:  DefaultTargetWords,
		overlapWords: DefaultOverlapWords,
	}

	for _, opt := range opts {
		opt(p)
	}

	// Overlap must leave forward progress between windows
	if p.overlapWords >= p.targetWords {
		p.overlapWords = p.targetWords / 4
	}

	return p
}

// Name returns the processor name.
func (p *Processor) Name() string {
	return "chunker"
}

// Process splits the document content into chunks.
// Input chunks are ignored; this processor creates new chunks from
// document content. Splits happen only on whitespace word boundaries,
// never inside a word. Empty or whitespace-only content yields no
// chunks and no error.
func (p *Processor) Process(_ context.Context, doc *domain.Document, _ []domain.Chunk) ([]domain.Chunk, error) {
	words := strings.Fields(doc.Content)
	if len(words) == 0 {
		return nil, nil
	}

	step := p.targetWords - p.overlapWords

	estimated := (len(words) / step) + 1
	chunks := make([]domain.Chunk, 0, estimated)

	start := 0
	position := 0

	for {
		end := start + p.targetWords
		if end > len(words) {
			end = len(words)
		}

		chunks = append(chunks, domain.Chunk{
			ID:          domain.ChunkID(doc.ID, position),
			DocumentID:  doc.ID,
			Content:     strings.Join(words[start:end], " "),
			StartOffset: start,
			EndOffset:   end,
			Position:    position,
		})

		if end == len(words) {
			break
		}

		start += step
		position++
	}

	return chunks, nil
}
