package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/custodia-labs/passage/internal/core/domain"
	"github.com/custodia-labs/passage/internal/core/ports/driven"
	"github.com/custodia-labs/passage/internal/core/ports/driving"
	"github.com/custodia-labs/passage/internal/logger"
)

// Ensure IngestService implements the interface.
var _ driving.IngestService = (*IngestService)(nil)

// IngestService runs the document write path.
//
// Embedding happens before the write lock is taken, so slow provider
// calls never serialise unrelated writes. The store and index mutation
// itself runs under a single exclusive lock: readers either see the
// document fully ingested or not at all.
type IngestService struct {
	registry driven.NormaliserRegistry
	pipeline driven.PostProcessorPipeline
	docStore driven.DocumentStore
	index    driven.VectorIndex
	embedder driven.EmbeddingService

	// writeMu serialises store/index mutations. It is deliberately not
	// held during normalisation, chunking or embedding.
	writeMu sync.Mutex
}

// NewIngestService creates a new ingest service.
func NewIngestService(
	registry driven.NormaliserRegistry,
	pipeline driven.PostProcessorPipeline,
	docStore driven.DocumentStore,
	index driven.VectorIndex,
	embedder driven.EmbeddingService,
) *IngestService {
	return &IngestService{
		registry: registry,
		pipeline: pipeline,
		docStore: docStore,
		index:    index,
		embedder: embedder,
	}
}

// Ingest processes one raw upload end to end.
func (s *IngestService) Ingest(ctx context.Context, raw *domain.RawUpload) (*domain.DocumentSummary, error) {
	if raw == nil || len(raw.Content) == 0 {
		return nil, fmt.Errorf("%w: empty upload", domain.ErrInvalidInput)
	}

	logger.Section("Ingest")
	logger.Debug("Upload: %q (%s, %d bytes)", raw.Filename, raw.MIMEType, len(raw.Content))

	// 1. Normalise the raw bytes into document text
	doc, err := s.registry.Normalise(ctx, raw)
	if err != nil {
		return nil, fmt.Errorf("normalise upload: %w", err)
	}

	// 2. Chunk the document
	chunks, err := s.pipeline.Process(ctx, doc)
	if err != nil {
		return nil, fmt.Errorf("chunk document: %w", err)
	}
	logger.Debug("Document %s: %d chunks", doc.ID, len(chunks))

	// 3. Embed all chunks in one batch, outside the write lock
	if len(chunks) > 0 {
		texts := make([]string, len(chunks))
		for i, chunk := range chunks {
			texts[i] = chunk.Content
		}

		embeddings, err := s.embedder.EmbedBatch(ctx, texts)
		if err != nil {
			return nil, fmt.Errorf("embed chunks: %w", err)
		}
		if len(embeddings) != len(chunks) {
			return nil, fmt.Errorf("%w: got %d embeddings for %d chunks",
				domain.ErrEmbeddingProvider, len(embeddings), len(chunks))
		}
		for i := range chunks {
			chunks[i].Embedding = embeddings[i]
		}
	}

	// A cancelled upload must not reach the mutation step
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	// 4. Commit store and index together
	if err := s.commit(ctx, doc, chunks); err != nil {
		return nil, err
	}

	logger.Info("Ingested %q as document %s (%d chunks)", raw.Filename, doc.ID, len(chunks))
	summary := doc.Summary()
	return &summary, nil
}

// commit applies the store and index mutation under the write lock.
// A re-upload of the same source replaces the previous document, but
// the previous copy is only removed once the new one is fully stored
// and indexed, so a failed re-upload never loses it. If the index
// mutation fails partway, the added entries and the stored document
// are rolled back so neither side keeps a half-applied write.
func (s *IngestService) commit(ctx context.Context, doc *domain.Document, chunks []domain.Chunk) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	previous, err := s.sameSourceLocked(ctx, doc.Source)
	if err != nil {
		return err
	}

	if err := s.docStore.PutDocument(ctx, doc, chunks); err != nil {
		return fmt.Errorf("store document: %w", err)
	}

	var added []string
	for _, chunk := range chunks {
		if err := s.index.Add(ctx, chunk.ID, chunk.Embedding); err != nil {
			s.rollbackLocked(ctx, doc.ID, added)
			return fmt.Errorf("index chunk %s: %w", chunk.ID, err)
		}
		added = append(added, chunk.ID)
	}

	for _, id := range previous {
		logger.Debug("Replacing previous upload of %q (document %s)", doc.Source, id)
		if err := s.deleteLocked(ctx, id); err != nil {
			return fmt.Errorf("remove replaced document %s: %w", id, err)
		}
	}

	if err := s.index.Snapshot(); err != nil {
		logger.Warn("Index snapshot failed after ingest: %v", err)
	}
	return nil
}

// sameSourceLocked returns the IDs of existing documents with the given
// source. Caller holds writeMu.
func (s *IngestService) sameSourceLocked(ctx context.Context, source string) ([]string, error) {
	summaries, err := s.docStore.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}

	var ids []string
	for _, summary := range summaries {
		if summary.Source == source {
			ids = append(ids, summary.ID)
		}
	}
	return ids, nil
}

// rollbackLocked undoes a partially applied commit. Caller holds writeMu.
func (s *IngestService) rollbackLocked(ctx context.Context, docID string, addedChunkIDs []string) {
	if len(addedChunkIDs) > 0 {
		if err := s.index.Remove(ctx, addedChunkIDs); err != nil {
			logger.Warn("Rollback: removing %d index entries failed: %v", len(addedChunkIDs), err)
		}
	}
	if err := s.docStore.DeleteDocument(ctx, docID); err != nil && !errors.Is(err, domain.ErrNotFound) {
		logger.Warn("Rollback: deleting document %s failed: %v", docID, err)
	}
}

// IngestAll processes multiple uploads in order. Each upload succeeds or
// fails independently.
func (s *IngestService) IngestAll(ctx context.Context, raws []*domain.RawUpload) ([]domain.DocumentSummary, []error) {
	var summaries []domain.DocumentSummary
	var errs []error

	for _, raw := range raws {
		summary, err := s.Ingest(ctx, raw)
		if err != nil {
			name := "<nil>"
			if raw != nil {
				name = raw.Filename
			}
			errs = append(errs, fmt.Errorf("ingest %q: %w", name, err))
			continue
		}
		summaries = append(summaries, *summary)
	}
	return summaries, errs
}

// Delete removes a document from the store and the vector index.
func (s *IngestService) Delete(ctx context.Context, documentID string) error {
	if documentID == "" {
		return fmt.Errorf("%w: empty document ID", domain.ErrInvalidInput)
	}

	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.deleteLocked(ctx, documentID); err != nil {
		return err
	}

	if err := s.index.Snapshot(); err != nil {
		logger.Warn("Index snapshot failed after delete: %v", err)
	}

	logger.Info("Deleted document %s", documentID)
	return nil
}

// deleteLocked removes one document from both resources. The index
// entries go first: a chunk briefly present in the store but absent
// from the index only costs recall, the reverse would surface dangling
// hits. Caller holds writeMu.
func (s *IngestService) deleteLocked(ctx context.Context, documentID string) error {
	chunks, err := s.docStore.GetChunks(ctx, documentID)
	if err != nil {
		return fmt.Errorf("get chunks for %s: %w", documentID, err)
	}

	chunkIDs := make([]string, len(chunks))
	for i, chunk := range chunks {
		chunkIDs[i] = chunk.ID
	}

	if err := s.index.Remove(ctx, chunkIDs); err != nil {
		return fmt.Errorf("remove index entries: %w", err)
	}

	if err := s.docStore.DeleteDocument(ctx, documentID); err != nil {
		return fmt.Errorf("delete document %s: %w", documentID, err)
	}
	return nil
}
