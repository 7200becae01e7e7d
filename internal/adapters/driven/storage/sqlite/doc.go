// Package sqlite provides the durable document store backed by SQLite.
//
// The store keeps three tables: documents for normalised text and
// metadata, chunks for the retrieval units derived from each document,
// and vectors for per-chunk embeddings. Chunks and vectors cascade on
// document deletion, so a document write or delete is a single
// transaction from the caller's point of view.
//
// Schema changes are applied through embedded .up.sql migration files
// tracked in a schema_migrations table.
package sqlite
