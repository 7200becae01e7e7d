package driving

import (
	"context"

	"github.com/custodia-labs/passage/internal/core/domain"
)

// DocumentService exposes stored documents for display and inspection.
type DocumentService interface {
	// List returns summaries of all stored documents.
	List(ctx context.Context) ([]domain.DocumentSummary, error)

	// Get retrieves a document by ID.
	Get(ctx context.Context, documentID string) (*domain.Document, error)

	// GetContent returns the concatenated content of all chunks,
	// in position order.
	GetContent(ctx context.Context, documentID string) (string, error)

	// Verify compares the chunk IDs in the document store against the
	// vector index and returns the IDs present on only one side.
	Verify(ctx context.Context) (storeOnly, indexOnly []string, err error)
}
