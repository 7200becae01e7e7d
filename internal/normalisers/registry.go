package normalisers

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/passage/internal/core/domain"
	"github.com/custodia-labs/passage/internal/core/ports/driven"
)

// Ensure Registry implements the interface.
var _ driven.NormaliserRegistry = (*Registry)(nil)

// Registry routes uploads to the best-matching normaliser.
type Registry struct {
	normalisers []driven.Normaliser
}

// NewRegistry creates a registry over the given normalisers.
func NewRegistry(normalisers ...driven.Normaliser) *Registry {
	return &Registry{normalisers: normalisers}
}

// Register adds a normaliser to the registry.
func (r *Registry) Register(n driven.Normaliser) {
	r.normalisers = append(r.normalisers, n)
}

// Normalise selects the highest-priority normaliser matching the upload's
// MIME type or file extension and runs it. A MIME match beats an
// extension match at equal priority.
func (r *Registry) Normalise(ctx context.Context, raw *domain.RawUpload) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	selected := r.selectNormaliser(raw)
	if selected == nil {
		return nil, fmt.Errorf("%w: no normaliser for %q (%s)",
			domain.ErrUnsupportedType, raw.Filename, raw.MIMEType)
	}
	return selected.Normalise(ctx, raw)
}

func (r *Registry) selectNormaliser(raw *domain.RawUpload) driven.Normaliser {
	mimeType := baseMIMEType(raw.MIMEType)
	ext := strings.ToLower(filepath.Ext(raw.Filename))

	var best driven.Normaliser
	bestScore := 0

	for _, n := range r.normalisers {
		// MIME matches outrank extension matches at equal priority
		score := 0
		if mimeType != "" && containsString(n.SupportedMIMETypes(), mimeType) {
			score = n.Priority()*2 + 1
		} else if ext != "" && containsString(n.SupportedExtensions(), ext) {
			score = n.Priority() * 2
		}
		if score > bestScore {
			best = n
			bestScore = score
		}
	}
	return best
}

// baseMIMEType strips parameters like "; charset=utf-8".
func baseMIMEType(mimeType string) string {
	if i := strings.Index(mimeType, ";"); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}

func containsString(list []string, want string) bool {
	for _, s := range list {
		if s == want {
			return true
		}
	}
	return false
}
