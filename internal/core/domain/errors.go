package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input: an empty
	// query, or upload content that cannot be read or normalised.
	ErrInvalidInput = errors.New("invalid input")

	// ErrConflict indicates a document ID collision with a document
	// from a different source. Replacing it would orphan chunks.
	ErrConflict = errors.New("conflict")

	// ErrEmbeddingProvider indicates the external embedding capability
	// failed (timeout, malformed output). The surrounding transaction
	// aborts cleanly; callers may retry.
	ErrEmbeddingProvider = errors.New("embedding provider failure")

	// ErrConsistency indicates an index/store disagreement detected at
	// query time. Never fatal: offending entries are logged and
	// excluded from results.
	ErrConsistency = errors.New("index/store consistency fault")

	// ErrStorage indicates a persistence read/write failure, or a
	// storage layout mismatch detected at startup.
	ErrStorage = errors.New("storage failure")

	// ErrEmbeddingUnavailable indicates no embedding provider is
	// configured. Ingest and query both require one.
	ErrEmbeddingUnavailable = errors.New("embedding service unavailable")

	// ErrUnsupportedType indicates an upload with no matching normaliser.
	ErrUnsupportedType = errors.New("unsupported content type")
)
