package driven

import (
	"context"

	"github.com/custodia-labs/passage/internal/core/domain"
)

// Synthesiser derives a short extractive summary from ranked chunks.
// Synthesis never fails with an error, only degrades output quality:
// with no matching sentences it falls back to the opening sentence of
// the top chunk, and with no chunks at all it returns a fixed
// "no summary available" string.
type Synthesiser interface {
	// Synthesise assembles a summary for the query from the ranked
	// chunks, best-scored first.
	Synthesise(ctx context.Context, query string, ranked []domain.RetrievedChunk) string
}
