package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/custodia-labs/passage/internal/core/domain"
	"github.com/custodia-labs/passage/internal/core/ports/driven"
	"github.com/custodia-labs/passage/internal/core/ports/driving"
	"github.com/custodia-labs/passage/internal/logger"
)

// Ensure QueryService implements the interface.
var _ driving.QueryService = (*QueryService)(nil)

// NoRelevantContent is the synthesis returned for an empty result set.
const NoRelevantContent = "no relevant content"

// DefaultTopK is the number of chunks retrieved when the caller does
// not specify k.
const DefaultTopK = 5

// QueryService runs the retrieval read path.
// Queries never take the write lock: a query racing an upload or delete
// sees either the previous or the new state, both of them consistent.
type QueryService struct {
	docStore    driven.DocumentStore
	index       driven.VectorIndex
	embedder    driven.EmbeddingService
	synthesiser driven.Synthesiser
	defaultTopK int
}

// QueryOption configures the query service.
type QueryOption func(*QueryService)

// WithDefaultTopK overrides how many chunks are retrieved when the
// caller does not specify k.
func WithDefaultTopK(k int) QueryOption {
	return func(s *QueryService) {
		if k > 0 {
			s.defaultTopK = k
		}
	}
}

// NewQueryService creates a new query service.
func NewQueryService(
	docStore driven.DocumentStore,
	index driven.VectorIndex,
	embedder driven.EmbeddingService,
	synthesiser driven.Synthesiser,
	opts ...QueryOption,
) *QueryService {
	s := &QueryService{
		docStore:    docStore,
		index:       index,
		embedder:    embedder,
		synthesiser: synthesiser,
		defaultTopK: DefaultTopK,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Answer retrieves the top-k chunks for the query and synthesises a
// summary.
func (s *QueryService) Answer(ctx context.Context, query string, k int) (*domain.QueryResult, error) {
	logger.Section("Query")

	query = strings.TrimSpace(query)
	if query == "" {
		return nil, fmt.Errorf("%w: empty query", domain.ErrInvalidInput)
	}
	if k <= 0 {
		k = s.defaultTopK
	}
	logger.Debug("Query: %q (k=%d)", query, k)

	embedding, err := s.embedder.Embed(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("embed query: %w", err)
	}

	hits, err := s.index.Search(ctx, embedding, k)
	if err != nil {
		return nil, fmt.Errorf("search index: %w", err)
	}
	logger.Debug("Index returned %d hits", len(hits))

	ranked := s.hydrate(ctx, hits)

	if len(ranked) == 0 {
		logger.Info("No relevant content for %q", query)
		return &domain.QueryResult{
			Query:     query,
			Synthesis: NoRelevantContent,
		}, nil
	}

	result := &domain.QueryResult{
		Query:     query,
		Documents: groupByDocument(ranked),
		Synthesis: s.synthesiser.Synthesise(ctx, query, ranked),
	}
	logger.Info("Query %q: %d chunks across %d documents", query, len(ranked), len(result.Documents))
	return result, nil
}

// hydrate resolves index hits to chunks and parent documents.
// A hit whose chunk or document is missing from the store is a
// consistency fault: it is logged and dropped, never surfaced.
func (s *QueryService) hydrate(ctx context.Context, hits []driven.VectorHit) []domain.RetrievedChunk {
	ranked := make([]domain.RetrievedChunk, 0, len(hits))

	for _, hit := range hits {
		chunk, err := s.docStore.GetChunk(ctx, hit.ChunkID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				logger.Warn("Consistency fault: chunk %s indexed but not stored, dropping", hit.ChunkID)
				continue
			}
			logger.Warn("Loading chunk %s failed: %v, dropping", hit.ChunkID, err)
			continue
		}

		doc, err := s.docStore.GetDocument(ctx, chunk.DocumentID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				logger.Warn("Consistency fault: document %s missing for chunk %s, dropping", chunk.DocumentID, chunk.ID)
				continue
			}
			logger.Warn("Loading document %s failed: %v, dropping", chunk.DocumentID, err)
			continue
		}

		ranked = append(ranked, domain.RetrievedChunk{
			Chunk:    *chunk,
			Score:    hit.Similarity,
			Document: doc.Summary(),
		})
	}
	return ranked
}

// groupByDocument groups ranked chunks by parent document. The input is
// in descending score order, so grouping by first occurrence yields
// best-score-first group ordering.
func groupByDocument(ranked []domain.RetrievedChunk) []domain.DocumentHits {
	byDoc := make(map[string]int)
	var groups []domain.DocumentHits

	for _, rc := range ranked {
		at, ok := byDoc[rc.Document.ID]
		if !ok {
			at = len(groups)
			byDoc[rc.Document.ID] = at
			groups = append(groups, domain.DocumentHits{
				Document:  rc.Document,
				BestScore: rc.Score,
			})
		}
		groups[at].Hits = append(groups[at].Hits, rc)
	}
	return groups
}
