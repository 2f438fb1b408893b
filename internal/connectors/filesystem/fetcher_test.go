package filesystem

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/summa-cli/internal/core/domain"
)

func TestFetcher_Supports(t *testing.T) {
	f := New()

	assert.True(t, f.Supports("/tmp/transcript.txt"))
	assert.True(t, f.Supports("relative/path.md"))
	assert.True(t, f.Supports("file:///tmp/transcript.txt"))
	assert.False(t, f.Supports("github://acme/reports/q4.txt"))
	assert.False(t, f.Supports("https://example.com/doc.txt"))
}

func TestFetcher_Fetch(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "transcript.txt")
	require.NoError(t, os.WriteFile(path, []byte("quarterly results"), 0600))

	f := New()
	doc, err := f.Fetch(context.Background(), path)

	require.NoError(t, err)
	assert.Equal(t, path, doc.URI)
	assert.Equal(t, "text/plain", doc.MIMEType)
	assert.Equal(t, []byte("quarterly results"), doc.Content)
	assert.Equal(t, "17", doc.Metadata["size"])
}

func TestFetcher_Fetch_FileURI(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("# Q4"), 0600))

	f := New()
	doc, err := f.Fetch(context.Background(), "file://"+path)

	require.NoError(t, err)
	assert.Equal(t, "text/markdown", doc.MIMEType)
	assert.Equal(t, []byte("# Q4"), doc.Content)
}

func TestFetcher_Fetch_MissingFile(t *testing.T) {
	f := New()

	_, err := f.Fetch(context.Background(), filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorIs(t, err, domain.ErrNoContent)
}

func TestFetcher_Fetch_Directory(t *testing.T) {
	f := New()

	_, err := f.Fetch(context.Background(), t.TempDir())
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestMimeTypeFor(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"transcript.txt", "text/plain"},
		{"report.PDF", "application/pdf"},
		{"notes.md", "text/markdown"},
		{"report.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document"},
		{"noext", "text/plain"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, mimeTypeFor(tt.path), tt.path)
	}
}
