package driving

import (
	"context"

	"github.com/custodia-labs/passage/internal/core/domain"
)

// IngestService runs the document write path: normalise, chunk, embed,
// and commit the store/index mutation as one transaction.
type IngestService interface {
	// Ingest processes one raw upload and returns the created document's
	// summary. The upload transaction aborts cleanly on embedding
	// failure or cancellation: nothing is partially written.
	Ingest(ctx context.Context, raw *domain.RawUpload) (*domain.DocumentSummary, error)

	// IngestAll processes multiple uploads in order. Failures are
	// reported per upload; successfully ingested documents stay.
	IngestAll(ctx context.Context, raws []*domain.RawUpload) ([]domain.DocumentSummary, []error)

	// Delete removes a document from the store and the vector index.
	Delete(ctx context.Context, documentID string) error
}
