// Package brute provides a pure-Go vector index using exhaustive cosine
// similarity search. For a single-process corpus of uploaded documents the
// exact scan is fast enough and keeps results fully deterministic.
package brute

import (
	"context"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/viant/vec/search"

	"github.com/custodia-labs/passage/internal/core/ports/driven"
)

// Ensure Index implements the interface.
var _ driven.VectorIndex = (*Index)(nil)

// snapshotFile is the on-disk name of the serialised index.
const snapshotFile = "index.bin"

// Index is a brute-force cosine similarity index.
//
// Entries are kept in insertion order, which is also the tie-break order
// for equal similarity scores. Replacing a vector keeps the entry's
// original slot, so re-embedding does not change ranking among ties.
type Index struct {
	mu   sync.RWMutex
	dir  string // empty for memory-only indexes
	dim  int
	ids  []string
	vecs [][]float32
	mags []float32
	pos  map[string]int
}

// New creates or opens an index persisted under dir.
// If a snapshot exists it is loaded; a corrupt snapshot is an error.
func New(dir string) (*Index, error) {
	idx := &Index{
		dir: dir,
		pos: make(map[string]int),
	}

	if dir == "" {
		return idx, nil
	}

	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("creating index directory: %w", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, snapshotFile))
	if err != nil {
		if os.IsNotExist(err) {
			return idx, nil
		}
		return nil, fmt.Errorf("reading index snapshot: %w", err)
	}

	if err := idx.unmarshalBinary(data); err != nil {
		return nil, fmt.Errorf("restoring index snapshot: %w", err)
	}
	return idx, nil
}

// NewMemory creates an index with no backing file. Snapshot is a no-op.
func NewMemory() *Index {
	return &Index{pos: make(map[string]int)}
}

// Add inserts a vector for the given chunk ID.
// If the ID is already present the vector is replaced in place.
func (idx *Index) Add(_ context.Context, chunkID string, embedding []float32) error {
	if chunkID == "" {
		return errors.New("brute: empty chunk ID")
	}
	if len(embedding) == 0 {
		return errors.New("brute: empty embedding")
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	if idx.dim == 0 {
		idx.dim = len(embedding)
	} else if len(embedding) != idx.dim {
		return fmt.Errorf("brute: embedding dim %d != index dim %d", len(embedding), idx.dim)
	}

	vec := append([]float32(nil), embedding...)
	mag := search.Float32s(vec).Magnitude()

	if at, ok := idx.pos[chunkID]; ok {
		idx.vecs[at] = vec
		idx.mags[at] = mag
		return nil
	}

	idx.pos[chunkID] = len(idx.ids)
	idx.ids = append(idx.ids, chunkID)
	idx.vecs = append(idx.vecs, vec)
	idx.mags = append(idx.mags, mag)
	return nil
}

// Remove deletes the entries for the given chunk IDs.
// Absent IDs are ignored.
func (idx *Index) Remove(_ context.Context, chunkIDs []string) error {
	if len(chunkIDs) == 0 {
		return nil
	}

	idx.mu.Lock()
	defer idx.mu.Unlock()

	drop := make(map[string]bool, len(chunkIDs))
	found := false
	for _, id := range chunkIDs {
		if _, ok := idx.pos[id]; ok {
			drop[id] = true
			found = true
		}
	}
	if !found {
		return nil
	}

	// Compact in place, preserving insertion order of survivors
	keep := 0
	for i, id := range idx.ids {
		if drop[id] {
			continue
		}
		idx.ids[keep] = id
		idx.vecs[keep] = idx.vecs[i]
		idx.mags[keep] = idx.mags[i]
		keep++
	}
	idx.ids = idx.ids[:keep]
	idx.vecs = idx.vecs[:keep]
	idx.mags = idx.mags[:keep]

	idx.pos = make(map[string]int, keep)
	for i, id := range idx.ids {
		idx.pos[id] = i
	}

	if keep == 0 {
		idx.dim = 0
	}
	return nil
}

// Search finds the k nearest neighbours to the query vector by cosine
// similarity, descending. Ties are broken by insertion order. k is
// clipped to the number of stored entries; an empty index yields an
// empty result.
func (idx *Index) Search(_ context.Context, query []float32, k int) ([]driven.VectorHit, error) {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	if len(idx.ids) == 0 || k <= 0 {
		return nil, nil
	}
	if len(query) != idx.dim {
		return nil, fmt.Errorf("brute: query dim %d != index dim %d", len(query), idx.dim)
	}

	q := search.Float32s(query)
	qmag := q.Magnitude()
	if qmag == 0 {
		return nil, nil
	}

	type scored struct {
		at    int
		score float64
	}
	results := make([]scored, 0, len(idx.ids))
	for i := range idx.vecs {
		if idx.mags[i] == 0 {
			continue
		}
		sim := 1 - float64(q.CosineDistanceWithMagnitude(idx.vecs[i], qmag, idx.mags[i]))
		if math.IsNaN(sim) {
			continue
		}
		results = append(results, scored{at: i, score: sim})
	}

	sort.Slice(results, func(a, b int) bool {
		if results[a].score != results[b].score {
			return results[a].score > results[b].score
		}
		return results[a].at < results[b].at
	})

	if k > len(results) {
		k = len(results)
	}

	hits := make([]driven.VectorHit, k)
	for i := 0; i < k; i++ {
		hits[i] = driven.VectorHit{
			ChunkID:    idx.ids[results[i].at],
			Similarity: results[i].score,
		}
	}
	return hits, nil
}

// Len returns the number of stored entries.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.ids)
}

// ChunkIDs returns the IDs of every stored entry in insertion order.
func (idx *Index) ChunkIDs() []string {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return append([]string(nil), idx.ids...)
}

// Snapshot serialises the index to its backing file.
// The write goes through a temp file and rename so a crash mid-write
// leaves the previous snapshot intact.
func (idx *Index) Snapshot() error {
	idx.mu.RLock()
	data := idx.marshalBinary()
	dir := idx.dir
	idx.mu.RUnlock()

	if dir == "" {
		return nil
	}

	tmp := filepath.Join(dir, snapshotFile+".tmp")
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return fmt.Errorf("writing index snapshot: %w", err)
	}
	if err := os.Rename(tmp, filepath.Join(dir, snapshotFile)); err != nil {
		return fmt.Errorf("replacing index snapshot: %w", err)
	}
	return nil
}

// Close flushes the snapshot.
func (idx *Index) Close() error {
	return idx.Snapshot()
}

// marshalBinary encodes: dim(uint32), n(uint32), then per entry
// idLen(uint32), id bytes, vec(float32[dim]). Caller holds the lock.
func (idx *Index) marshalBinary() []byte {
	size := 8
	for _, id := range idx.ids {
		size += 4 + len(id) + 4*idx.dim
	}
	out := make([]byte, 8, size)
	binary.LittleEndian.PutUint32(out[0:4], uint32(idx.dim))
	binary.LittleEndian.PutUint32(out[4:8], uint32(len(idx.ids)))

	var scratch [4]byte
	for i, id := range idx.ids {
		binary.LittleEndian.PutUint32(scratch[:], uint32(len(id)))
		out = append(out, scratch[:]...)
		out = append(out, id...)
		for _, v := range idx.vecs[i] {
			binary.LittleEndian.PutUint32(scratch[:], math.Float32bits(v))
			out = append(out, scratch[:]...)
		}
	}
	return out
}

// unmarshalBinary restores the index from a snapshot produced by
// marshalBinary.
func (idx *Index) unmarshalBinary(data []byte) error {
	if len(data) < 8 {
		return errors.New("brute: snapshot too short")
	}
	dim := int(binary.LittleEndian.Uint32(data[0:4]))
	n := int(binary.LittleEndian.Uint32(data[4:8]))
	off := 8

	ids := make([]string, 0, n)
	vecs := make([][]float32, 0, n)
	mags := make([]float32, 0, n)
	pos := make(map[string]int, n)

	for i := 0; i < n; i++ {
		if off+4 > len(data) {
			return errors.New("brute: truncated snapshot")
		}
		idLen := int(binary.LittleEndian.Uint32(data[off:]))
		off += 4
		if off+idLen > len(data) {
			return errors.New("brute: truncated chunk ID")
		}
		id := string(data[off : off+idLen])
		off += idLen

		if off+4*dim > len(data) {
			return errors.New("brute: truncated vector")
		}
		vec := make([]float32, dim)
		for j := 0; j < dim; j++ {
			vec[j] = math.Float32frombits(binary.LittleEndian.Uint32(data[off:]))
			off += 4
		}

		pos[id] = len(ids)
		ids = append(ids, id)
		vecs = append(vecs, vec)
		mags = append(mags, search.Float32s(vec).Magnitude())
	}

	if n > 0 {
		idx.dim = dim
	}
	idx.ids = ids
	idx.vecs = vecs
	idx.mags = mags
	idx.pos = pos
	return nil
}
