// Package filesystem fetches documents from the local filesystem.
package filesystem

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/custodia-labs/summa-cli/internal/core/domain"
	"github.com/custodia-labs/summa-cli/internal/core/ports/driven"
)

// Ensure Fetcher implements the interface.
var _ driven.Fetcher = (*Fetcher)(nil)

// mimeByExtension maps known file extensions to MIME types. Unknown
// extensions fall back to text/plain so the plaintext normaliser can have a
// go at them.
var mimeByExtension = map[string]string{
	".txt":  "text/plain",
	".md":   "text/markdown",
	".pdf":  "application/pdf",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// Fetcher reads documents from local paths and file:// URIs.
type Fetcher struct{}

// New creates a filesystem fetcher.
func New() *Fetcher {
	return &Fetcher{}
}

// Supports reports whether the URI looks like a local path. Any URI without
// a scheme is treated as local, as is the explicit file:// scheme.
func (f *Fetcher) Supports(uri string) bool {
	if strings.HasPrefix(uri, "file://") {
		return true
	}
	return !strings.Contains(uri, "://")
}

// Fetch reads the file and tags it with a MIME type derived from the
// extension.
func (f *Fetcher) Fetch(ctx context.Context, uri string) (*domain.RawDocument, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := strings.TrimPrefix(uri, "file://")

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNoContent, path)
		}
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("%w: %s is a directory", domain.ErrInvalidInput, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	return &domain.RawDocument{
		URI:      uri,
		MIMEType: mimeTypeFor(path),
		Content:  content,
		Metadata: map[string]any{
			"size":     fmt.Sprintf("%d", info.Size()),
			"modified": info.ModTime().UTC().Format("2006-01-02T15:04:05Z"),
		},
	}, nil
}

// mimeTypeFor maps a file path to a MIME type by extension.
func mimeTypeFor(path string) string {
	ext := strings.ToLower(filepath.Ext(path))
	if mime, ok := mimeByExtension[ext]; ok {
		return mime
	}
	return "text/plain"
}
