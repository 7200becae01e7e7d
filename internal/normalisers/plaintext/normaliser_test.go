package plaintext

import (
	"context"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/passage/internal/core/domain"
)

func TestNew(t *testing.T) {
	normaliser := New()
	require.NotNil(t, normaliser)
	assert.IsType(t, &Normaliser{}, normaliser)
}

func TestSupportedMIMETypes(t *testing.T) {
	normaliser := New()
	mimeTypes := normaliser.SupportedMIMETypes()

	require.NotEmpty(t, mimeTypes)
	assert.Contains(t, mimeTypes, "text/plain")
}

func TestSupportedExtensions(t *testing.T) {
	normaliser := New()
	assert.Contains(t, normaliser.SupportedExtensions(), ".txt")
}

func TestPriority(t *testing.T) {
	normaliser := New()
	assert.Equal(t, 5, normaliser.Priority())
}

func TestNormalise_Success(t *testing.T) {
	normaliser := New()
	ctx := context.Background()

	raw := &domain.RawUpload{
		Filename: "quarterly_report.txt",
		MIMEType: "text/plain",
		Content:  []byte("This is plain text content."),
	}

	doc, err := normaliser.Normalise(ctx, raw)
	require.NoError(t, err)
	require.NotNil(t, doc)

	assert.NotEmpty(t, doc.ID)
	assert.Equal(t, "quarterly report", doc.Title)
	assert.Equal(t, "quarterly_report.txt", doc.Source)
	assert.Equal(t, "This is plain text content.", doc.Content)
	assert.Equal(t, 5, doc.WordCount)
	assert.False(t, doc.UploadedAt.IsZero())
}

func TestNormalise_NilInput(t *testing.T) {
	normaliser := New()

	_, err := normaliser.Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestNormalise_TrimsWhitespace(t *testing.T) {
	normaliser := New()

	doc, err := normaliser.Normalise(context.Background(), &domain.RawUpload{
		Filename: "notes.txt",
		MIMEType: "text/plain",
		Content:  []byte("  leading and trailing  \n"),
	})
	require.NoError(t, err)
	assert.Equal(t, "leading and trailing", doc.Content)
	assert.Equal(t, 3, doc.WordCount)
}

func TestNormalise_UniqueIDs(t *testing.T) {
	normaliser := New()
	raw := &domain.RawUpload{Filename: "a.txt", MIMEType: "text/plain", Content: []byte("x")}

	first, err := normaliser.Normalise(context.Background(), raw)
	require.NoError(t, err)
	second, err := normaliser.Normalise(context.Background(), raw)
	require.NoError(t, err)

	assert.NotEqual(t, first.ID, second.ID)
}

func TestNormalise_ScrubsControlCharacters(t *testing.T) {
	normaliser := New()

	doc, err := normaliser.Normalise(context.Background(), &domain.RawUpload{
		Filename: "notes.txt",
		MIMEType: "text/plain",
		Content:  []byte("page one\x0cpage two\x00\x07 end\nkeep\ttabs"),
	})
	require.NoError(t, err)

	assert.Equal(t, "page one\npage two end\nkeep\ttabs", doc.Content)
}

func TestNormalise_DropsInvalidUTF8(t *testing.T) {
	normaliser := New()

	doc, err := normaliser.Normalise(context.Background(), &domain.RawUpload{
		Filename: "notes.txt",
		MIMEType: "text/plain",
		Content:  []byte("caf\xff\xfee latte"),
	})
	require.NoError(t, err)

	assert.True(t, utf8.ValidString(doc.Content))
	assert.Equal(t, "cafe latte", doc.Content)
}
