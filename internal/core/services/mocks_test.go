package services

import (
	"context"
	"strings"

	"github.com/custodia-labs/passage/internal/core/domain"
	"github.com/custodia-labs/passage/internal/core/ports/driven"
)

// --- Mock implementations ---

// mockEmbedder implements driven.EmbeddingService with deterministic
// letter-frequency vectors, so identical text always embeds identically.
type mockEmbedder struct {
	embedErr   error
	embedCalls int
}

func (m *mockEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	m.embedCalls++
	return letterVector(text), nil
}

func (m *mockEmbedder) EmbedBatch(_ context.Context, texts []string) ([][]float32, error) {
	if m.embedErr != nil {
		return nil, m.embedErr
	}
	m.embedCalls++
	out := make([][]float32, len(texts))
	for i, text := range texts {
		out[i] = letterVector(text)
	}
	return out, nil
}

func (m *mockEmbedder) Dimensions() int   { return 26 }
func (m *mockEmbedder) ModelName() string { return "mock" }
func (m *mockEmbedder) Close() error      { return nil }

// letterVector counts letter frequencies, a crude but deterministic
// stand-in for a semantic embedding.
func letterVector(text string) []float32 {
	vec := make([]float32, 26)
	for _, r := range strings.ToLower(text) {
		if r >= 'a' && r <= 'z' {
			vec[r-'a']++
		}
	}
	return vec
}

// mockSynthesiser implements driven.Synthesiser.
type mockSynthesiser struct {
	summary   string
	lastQuery string
	lastCount int
}

func (m *mockSynthesiser) Synthesise(_ context.Context, query string, ranked []domain.RetrievedChunk) string {
	m.lastQuery = query
	m.lastCount = len(ranked)
	if m.summary != "" {
		return m.summary
	}
	return "summary"
}

// failingStore wraps a real store and fails PutDocument on demand, for
// replace-ordering tests.
type failingStore struct {
	driven.DocumentStore
	putErr error
}

func (f *failingStore) PutDocument(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) error {
	if f.putErr != nil {
		return f.putErr
	}
	return f.DocumentStore.PutDocument(ctx, doc, chunks)
}

// failingIndex wraps a real index and fails Add after a set number of
// calls, for rollback tests.
type failingIndex struct {
	driven.VectorIndex
	failAfter int
	addCalls  int
	addErr    error
}

func (f *failingIndex) Add(ctx context.Context, chunkID string, embedding []float32) error {
	f.addCalls++
	if f.addCalls > f.failAfter {
		return f.addErr
	}
	return f.VectorIndex.Add(ctx, chunkID, embedding)
}
