package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/passage/internal/adapters/driven/index/brute"
	"github.com/custodia-labs/passage/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/passage/internal/core/domain"
)

func TestCheckConsistency_Clean(t *testing.T) {
	store := memory.NewDocumentStore()
	index := brute.NewMemory()
	storeDoc(t, store, index, "a", "chunk one", "chunk two")

	assert.NoError(t, CheckConsistency(context.Background(), store, index))
}

func TestCheckConsistency_Empty(t *testing.T) {
	store := memory.NewDocumentStore()
	index := brute.NewMemory()

	assert.NoError(t, CheckConsistency(context.Background(), store, index))
}

func TestCheckConsistency_ChunkWithoutVector(t *testing.T) {
	store := memory.NewDocumentStore()
	index := brute.NewMemory()
	ctx := context.Background()

	doc := &domain.Document{ID: "a", Title: "A", Source: "a.txt", UploadedAt: time.Now()}
	chunks := []domain.Chunk{{
		ID: "a:0", DocumentID: "a", Content: "no embedding stored",
	}}
	require.NoError(t, store.PutDocument(ctx, doc, chunks))

	err := CheckConsistency(ctx, store, index)
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestCheckConsistency_IndexMissingEntry(t *testing.T) {
	store := memory.NewDocumentStore()
	index := brute.NewMemory()
	ctx := context.Background()

	storeDoc(t, store, index, "a", "chunk one")
	require.NoError(t, index.Remove(ctx, []string{"a:0"}))

	err := CheckConsistency(ctx, store, index)
	assert.ErrorIs(t, err, domain.ErrStorage)
}

func TestCheckConsistency_OrphanIndexEntry(t *testing.T) {
	store := memory.NewDocumentStore()
	index := brute.NewMemory()
	ctx := context.Background()

	require.NoError(t, index.Add(ctx, "ghost:0", letterVector("ghost")))

	err := CheckConsistency(ctx, store, index)
	assert.ErrorIs(t, err, domain.ErrStorage)
}
