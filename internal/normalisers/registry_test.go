package normalisers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/passage/internal/core/domain"
	"github.com/custodia-labs/passage/internal/normalisers/csv"
	"github.com/custodia-labs/passage/internal/normalisers/markdown"
	"github.com/custodia-labs/passage/internal/normalisers/plaintext"
)

func newTestRegistry() *Registry {
	return NewRegistry(plaintext.New(), markdown.New(), csv.New())
}

func TestNormalise_SelectsByMIMEType(t *testing.T) {
	registry := newTestRegistry()

	doc, err := registry.Normalise(context.Background(), &domain.RawUpload{
		Filename: "doc.bin",
		MIMEType: "text/markdown",
		Content:  []byte("# Heading\n\nbody"),
	})
	require.NoError(t, err)

	// The markdown normaliser strips the heading marker
	assert.Equal(t, "Heading", doc.Title)
	assert.NotContains(t, doc.Content, "#")
}

func TestNormalise_SelectsByExtension(t *testing.T) {
	registry := newTestRegistry()

	doc, err := registry.Normalise(context.Background(), &domain.RawUpload{
		Filename: "data.csv",
		MIMEType: "application/octet-stream",
		Content:  []byte("k,v\na,1\n"),
	})
	require.NoError(t, err)

	assert.Contains(t, doc.Content, "k: a, v: 1.")
}

func TestNormalise_MIMEBeatsExtension(t *testing.T) {
	registry := newTestRegistry()

	// .txt extension but declared markdown; MIME wins
	doc, err := registry.Normalise(context.Background(), &domain.RawUpload{
		Filename: "readme.txt",
		MIMEType: "text/markdown",
		Content:  []byte("# Actual Title\n\ntext"),
	})
	require.NoError(t, err)

	assert.Equal(t, "Actual Title", doc.Title)
}

func TestNormalise_StripsMIMEParameters(t *testing.T) {
	registry := newTestRegistry()

	doc, err := registry.Normalise(context.Background(), &domain.RawUpload{
		Filename: "notes",
		MIMEType: "text/plain; charset=utf-8",
		Content:  []byte("hello world"),
	})
	require.NoError(t, err)

	assert.Equal(t, "hello world", doc.Content)
}

func TestNormalise_Unsupported(t *testing.T) {
	registry := newTestRegistry()

	_, err := registry.Normalise(context.Background(), &domain.RawUpload{
		Filename: "image.png",
		MIMEType: "image/png",
		Content:  []byte{0x89, 0x50},
	})
	assert.ErrorIs(t, err, domain.ErrUnsupportedType)
}

func TestNormalise_NilInput(t *testing.T) {
	registry := newTestRegistry()

	_, err := registry.Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister(t *testing.T) {
	registry := NewRegistry()
	registry.Register(plaintext.New())

	_, err := registry.Normalise(context.Background(), &domain.RawUpload{
		Filename: "a.txt",
		MIMEType: "text/plain",
		Content:  []byte("x"),
	})
	assert.NoError(t, err)
}
