package domain

import (
	"strconv"
	"time"
)

// Document represents an uploaded document with metadata.
// It is the canonical representation after normalisation.
// Documents are created on upload, deleted on explicit delete,
// and never mutated in place.
type Document struct {
	// ID is the unique identifier for the document.
	ID string

	// Title is the human-readable title, usually derived from the filename.
	Title string

	// Source is the origin label (uploaded filename or watch-directory path).
	Source string

	// Content is the full text content after normalisation.
	// This is the complete document text before chunking.
	Content string

	// WordCount is the number of whitespace-delimited words in Content.
	WordCount int

	// UploadedAt is when the document was ingested.
	UploadedAt time.Time
}

// Summary returns the display form of the document without its content.
func (d Document) Summary() DocumentSummary {
	return DocumentSummary{
		ID:         d.ID,
		Title:      d.Title,
		Source:     d.Source,
		WordCount:  d.WordCount,
		UploadedAt: d.UploadedAt,
	}
}

// DocumentSummary is the metadata view of a Document used for listings
// and query results. It never carries the full text.
type DocumentSummary struct {
	ID         string
	Title      string
	Source     string
	WordCount  int
	UploadedAt time.Time
}

// Chunk represents the unit of embedding and retrieval within a document.
// Documents are split into overlapping word-bounded chunks.
//
// Chunk IDs are derived deterministically from the parent document ID and
// the sequence index, so re-chunking identical text yields identical IDs.
type Chunk struct {
	// ID is the deterministic identifier: "<documentID>:<position>".
	ID string

	// DocumentID links to the parent Document. Non-owning: chunks are
	// deleted when the parent document is deleted.
	DocumentID string

	// Content is the text content of this chunk.
	Content string

	// StartOffset is the word position in the source document where
	// this chunk begins (inclusive).
	StartOffset int

	// EndOffset is the word position where this chunk ends (exclusive).
	EndOffset int

	// Position is the ordinal position within the document.
	Position int

	// Embedding is the vector representation for semantic search.
	// Produced by the embedding provider; replaced only by re-embedding.
	Embedding []float32
}

// ChunkID derives the deterministic chunk identifier for a document
// and sequence position.
func ChunkID(documentID string, position int) string {
	return documentID + ":" + strconv.Itoa(position)
}

// RawUpload represents opaque bytes received at the upload boundary
// before normalisation.
type RawUpload struct {
	// Filename is the original name of the uploaded file.
	Filename string

	// MIMEType is the declared content type, if any.
	MIMEType string

	// Content is the raw bytes.
	Content []byte
}
