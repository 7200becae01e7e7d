package driven

import (
	"context"

	"github.com/custodia-labs/passage/internal/core/domain"
)

// PostProcessor transforms a document's content into chunks, or refines
// chunks produced by an earlier stage.
type PostProcessor interface {
	// Name returns the processor name for logging and configuration.
	Name() string

	// Process receives the document and the chunks produced so far.
	// The first processor in a pipeline receives nil chunks and should
	// create them.
	Process(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) ([]domain.Chunk, error)
}

// PostProcessorPipeline chains processors and runs them in order.
type PostProcessorPipeline interface {
	// Process runs the document through all processors.
	Process(ctx context.Context, doc *domain.Document) ([]domain.Chunk, error)
}
