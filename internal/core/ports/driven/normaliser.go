package driven

import (
	"context"

	"github.com/custodia-labs/passage/internal/core/domain"
)

// Normaliser transforms raw uploads into document text.
// Each normaliser handles specific MIME types or file extensions
// (e.g., plain text, Markdown, CSV).
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// SupportedExtensions returns lower-case file extensions
	// (including the dot) this normaliser handles.
	SupportedExtensions() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific normalisers should return 50-89.
	// Fallback normalisers should return 1-9.
	Priority() int

	// Normalise converts a raw upload into a document.
	// Chunking is handled separately by the PostProcessor pipeline.
	Normalise(ctx context.Context, raw *domain.RawUpload) (*domain.Document, error)
}

// NormaliserRegistry selects the appropriate normaliser for an upload.
type NormaliserRegistry interface {
	// Normalise picks the best normaliser for the upload and runs it.
	// Returns domain.ErrUnsupportedType when nothing matches.
	Normalise(ctx context.Context, raw *domain.RawUpload) (*domain.Document, error)
}
