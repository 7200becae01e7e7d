package driven

import "context"

// VectorIndex provides semantic similarity search over chunk embeddings.
// Implementations must make Add and Remove observable immediately: a
// caller never sees a pending-rebuild state between a mutation and the
// next Search.
type VectorIndex interface {
	// Add inserts a vector for the given chunk ID. If the ID is already
	// present the vector is replaced (the re-embedding case).
	Add(ctx context.Context, chunkID string, embedding []float32) error

	// Remove deletes the entries for the given chunk IDs.
	// Absent IDs are ignored, so removal is idempotent.
	Remove(ctx context.Context, chunkIDs []string) error

	// Search finds the k nearest neighbours to the query vector by
	// cosine similarity, in descending score order. Ties are broken by
	// insertion order (earlier-inserted chunk ranks first). k is
	// clipped to the number of stored entries; an empty index yields
	// an empty result, not an error.
	Search(ctx context.Context, query []float32, k int) ([]VectorHit, error)

	// Len returns the number of stored entries.
	Len() int

	// ChunkIDs returns the IDs of every stored entry. Used by the
	// startup consistency check against the document store.
	ChunkIDs() []string

	// Snapshot serialises the index to its backing file.
	Snapshot() error

	// Close flushes and releases resources.
	Close() error
}

// VectorHit represents a similarity search result.
type VectorHit struct {
	// ChunkID is the matched chunk.
	ChunkID string

	// Similarity is the cosine similarity score.
	Similarity float64
}
