package csv

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/passage/internal/core/domain"
	"github.com/custodia-labs/passage/internal/core/ports/driven"
)

// Ensure Normaliser implements the interface.
var _ driven.Normaliser = (*Normaliser)(nil)

// Normaliser handles CSV documents. Each data row is flattened to a
// "header: value" sentence so that row content stays retrievable after
// chunking.
type Normaliser struct{}

// New creates a new CSV normaliser.
func New() *Normaliser {
	return &Normaliser{}
}

// SupportedMIMETypes returns the MIME types this normaliser handles.
func (n *Normaliser) SupportedMIMETypes() []string {
	return []string{"text/csv", "application/csv"}
}

// SupportedExtensions returns the file extensions this normaliser handles.
func (n *Normaliser) SupportedExtensions() []string {
	return []string{".csv"}
}

// Priority returns the selection priority.
func (n *Normaliser) Priority() int {
	return 50 // Format-specific, higher than plaintext
}

// Normalise converts a CSV upload to a document. The first record is
// treated as the header row.
func (n *Normaliser) Normalise(_ context.Context, raw *domain.RawUpload) (*domain.Document, error) {
	if raw == nil {
		return nil, domain.ErrInvalidInput
	}

	reader := csv.NewReader(bytes.NewReader(raw.Content))
	reader.FieldsPerRecord = -1 // tolerate ragged rows

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: parsing CSV: %v", domain.ErrInvalidInput, err)
	}

	content := flattenRecords(records)

	return &domain.Document{
		ID:         uuid.New().String(),
		Title:      extractTitle(raw.Filename),
		Source:     raw.Filename,
		Content:    content,
		WordCount:  len(strings.Fields(content)),
		UploadedAt: time.Now(),
	}, nil
}

// flattenRecords renders each data row as "header: value" pairs,
// one row per line.
func flattenRecords(records [][]string) string {
	if len(records) == 0 {
		return ""
	}

	header := records[0]
	if len(records) == 1 {
		return strings.Join(header, ", ")
	}

	var sb strings.Builder
	for _, row := range records[1:] {
		pairs := make([]string, 0, len(row))
		for i, cell := range row {
			cell = strings.TrimSpace(cell)
			if cell == "" {
				continue
			}
			if i < len(header) && strings.TrimSpace(header[i]) != "" {
				pairs = append(pairs, strings.TrimSpace(header[i])+": "+cell)
			} else {
				pairs = append(pairs, cell)
			}
		}
		if len(pairs) == 0 {
			continue
		}
		sb.WriteString(strings.Join(pairs, ", "))
		sb.WriteString(".\n")
	}
	return strings.TrimSpace(sb.String())
}

// extractTitle derives a human-readable title from a filename.
func extractTitle(filename string) string {
	base := filepath.Base(filename)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.ReplaceAll(base, "_", " ")
	base = strings.ReplaceAll(base, "-", " ")
	return base
}
