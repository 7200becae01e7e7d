package driven

import (
	"context"

	"github.com/custodia-labs/passage/internal/core/domain"
)

// DocumentStore persists documents and chunks.
// Backed by SQLite for durable storage; an in-memory implementation
// exists for tests and ephemeral runs.
type DocumentStore interface {
	// PutDocument inserts or fully replaces a document together with its
	// chunks. Returns domain.ErrConflict if the document ID already
	// belongs to a document from a different source.
	PutDocument(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) error

	// GetDocument retrieves a document by ID.
	// Returns domain.ErrNotFound if absent.
	GetDocument(ctx context.Context, id string) (*domain.Document, error)

	// GetChunk retrieves a specific chunk by ID.
	// Returns domain.ErrNotFound if absent.
	GetChunk(ctx context.Context, id string) (*domain.Chunk, error)

	// GetChunks retrieves all chunks for a document, ordered by position.
	GetChunks(ctx context.Context, documentID string) ([]domain.Chunk, error)

	// ListDocuments returns summaries of all stored documents.
	ListDocuments(ctx context.Context) ([]domain.DocumentSummary, error)

	// DeleteDocument removes a document and cascades deletion of its
	// chunks. Returns domain.ErrNotFound if absent.
	DeleteDocument(ctx context.Context, id string) error

	// ChunkIDs returns the IDs of every stored chunk. Used by the
	// startup consistency check against the vector index.
	ChunkIDs(ctx context.Context) ([]string, error)

	// VectorChunkIDs returns the chunk IDs that have a stored embedding.
	// Used by the startup consistency check alongside ChunkIDs.
	VectorChunkIDs(ctx context.Context) ([]string, error)

	// Close releases resources.
	Close() error
}
