package domain

// RetrievedChunk is a single retrieval hit: a chunk, its similarity score
// and the parent document's metadata.
type RetrievedChunk struct {
	// Chunk is the matched chunk.
	Chunk Chunk

	// Score is the cosine similarity between the query embedding and
	// the chunk embedding.
	Score float64

	// Document is the parent document's metadata.
	Document DocumentSummary
}

// DocumentHits groups the retrieval hits belonging to one document.
type DocumentHits struct {
	// Document is the parent document's metadata.
	Document DocumentSummary

	// Hits are the matched chunks in descending score order.
	Hits []RetrievedChunk

	// BestScore is the highest score among Hits. Groups are ordered
	// best-score-first across documents.
	BestScore float64
}

// QueryResult is the ephemeral result of a retrieval query.
// It is never persisted.
type QueryResult struct {
	// Query is the original query text.
	Query string

	// Documents are the per-document result groups, ordered by BestScore
	// descending.
	Documents []DocumentHits

	// Synthesis is the short extractive summary assembled from the
	// top-ranked chunks.
	Synthesis string
}

// Hits flattens the per-document groups into a single sequence,
// preserving group order.
func (r QueryResult) Hits() []RetrievedChunk {
	var out []RetrievedChunk
	for _, group := range r.Documents {
		out = append(out, group.Hits...)
	}
	return out
}
