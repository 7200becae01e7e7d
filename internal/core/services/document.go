package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/passage/internal/core/domain"
	"github.com/custodia-labs/passage/internal/core/ports/driven"
	"github.com/custodia-labs/passage/internal/core/ports/driving"
)

// Ensure DocumentService implements the interface.
var _ driving.DocumentService = (*DocumentService)(nil)

// DocumentService exposes stored documents for display and inspection.
type DocumentService struct {
	docStore driven.DocumentStore
	index    driven.VectorIndex
}

// NewDocumentService creates a new document service.
func NewDocumentService(docStore driven.DocumentStore, index driven.VectorIndex) *DocumentService {
	return &DocumentService{
		docStore: docStore,
		index:    index,
	}
}

// List returns summaries of all stored documents.
func (s *DocumentService) List(ctx context.Context) ([]domain.DocumentSummary, error) {
	summaries, err := s.docStore.ListDocuments(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return summaries, nil
}

// Get retrieves a document by ID.
func (s *DocumentService) Get(ctx context.Context, documentID string) (*domain.Document, error) {
	doc, err := s.docStore.GetDocument(ctx, documentID)
	if err != nil {
		return nil, fmt.Errorf("get document %s: %w", documentID, err)
	}
	return doc, nil
}

// GetContent returns the chunk contents of a document in position
// order.
func (s *DocumentService) GetContent(ctx context.Context, documentID string) (string, error) {
	// Resolve the document first so an unknown ID reports ErrNotFound
	if _, err := s.docStore.GetDocument(ctx, documentID); err != nil {
		return "", fmt.Errorf("get document %s: %w", documentID, err)
	}

	chunks, err := s.docStore.GetChunks(ctx, documentID)
	if err != nil {
		return "", fmt.Errorf("get chunks for %s: %w", documentID, err)
	}

	parts := make([]string, len(chunks))
	for i, chunk := range chunks {
		parts[i] = chunk.Content
	}
	return strings.Join(parts, "\n\n"), nil
}

// Verify compares the chunk IDs in the document store against the
// vector index.
func (s *DocumentService) Verify(ctx context.Context) (storeOnly, indexOnly []string, err error) {
	storeIDs, err := s.docStore.ChunkIDs(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("store chunk IDs: %w", err)
	}

	indexIDs := s.index.ChunkIDs()

	storeOnly, indexOnly = diffIDSets(storeIDs, indexIDs)
	return storeOnly, indexOnly, nil
}

// diffIDSets returns the IDs unique to each input.
func diffIDSets(a, b []string) (onlyA, onlyB []string) {
	inA := make(map[string]bool, len(a))
	for _, id := range a {
		inA[id] = true
	}
	inB := make(map[string]bool, len(b))
	for _, id := range b {
		inB[id] = true
	}

	for _, id := range a {
		if !inB[id] {
			onlyA = append(onlyA, id)
		}
	}
	for _, id := range b {
		if !inA[id] {
			onlyB = append(onlyB, id)
		}
	}
	return onlyA, onlyB
}
