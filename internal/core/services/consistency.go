package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/passage/internal/core/domain"
	"github.com/custodia-labs/passage/internal/core/ports/driven"
	"github.com/custodia-labs/passage/internal/logger"
)

// CheckConsistency verifies at startup that the chunk table, the vector
// table and the restored index snapshot describe the same chunk ID set.
// A crash between flushes leaves the three disagreeing; serving such a
// state would return phantom or missing results, so startup aborts with
// a storage error instead.
func CheckConsistency(ctx context.Context, docStore driven.DocumentStore, index driven.VectorIndex) error {
	chunkIDs, err := docStore.ChunkIDs(ctx)
	if err != nil {
		return fmt.Errorf("%w: reading chunk IDs: %v", domain.ErrStorage, err)
	}

	vectorIDs, err := docStore.VectorChunkIDs(ctx)
	if err != nil {
		return fmt.Errorf("%w: reading vector IDs: %v", domain.ErrStorage, err)
	}

	indexIDs := index.ChunkIDs()

	if onlyChunks, onlyVectors := diffIDSets(chunkIDs, vectorIDs); len(onlyChunks) > 0 || len(onlyVectors) > 0 {
		logger.Warn("Storage mismatch: %d chunks without vectors, %d vectors without chunks", len(onlyChunks), len(onlyVectors))
		return fmt.Errorf("%w: chunk and vector tables disagree (%d/%d unmatched)",
			domain.ErrStorage, len(onlyChunks), len(onlyVectors))
	}

	if onlyStore, onlyIndex := diffIDSets(chunkIDs, indexIDs); len(onlyStore) > 0 || len(onlyIndex) > 0 {
		logger.Warn("Storage mismatch: %d chunks missing from index, %d index entries missing from store", len(onlyStore), len(onlyIndex))
		return fmt.Errorf("%w: store and index snapshot disagree (%d/%d unmatched)",
			domain.ErrStorage, len(onlyStore), len(onlyIndex))
	}

	logger.Debug("Consistency check passed: %d chunks", len(chunkIDs))
	return nil
}
