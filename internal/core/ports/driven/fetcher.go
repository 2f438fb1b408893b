package driven

import (
	"context"

	"github.com/custodia-labs/summa-cli/internal/core/domain"
)

// Fetcher acquires raw document bytes from a source URI.
// Implementations cover local paths and remote schemes (e.g., github://).
type Fetcher interface {
	// Supports reports whether this fetcher handles the given URI.
	Supports(uri string) bool

	// Fetch retrieves the document bytes and a best-effort MIME type.
	Fetch(ctx context.Context, uri string) (*domain.RawDocument, error)
}
