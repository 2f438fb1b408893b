package driven

import (
	"context"

	"github.com/custodia-labs/summa-cli/internal/core/domain"
)

// Normaliser extracts text from raw documents.
// Each normaliser handles specific MIME types (e.g., PDF, DOCX).
type Normaliser interface {
	// SupportedMIMETypes returns the MIME types this normaliser handles.
	SupportedMIMETypes() []string

	// Priority returns the selection priority (higher = preferred).
	// Format-specific normalisers should return 50-89.
	// Fallback normalisers should return 1-9.
	Priority() int

	// Normalise extracts plain text from a raw document.
	Normalise(ctx context.Context, raw *domain.RawDocument) (*NormaliseResult, error)
}

// NormaliseResult contains the output of normalisation.
type NormaliseResult struct {
	// Title is a best-effort document title.
	Title string

	// Content is the extracted plain text.
	Content string
}

// NormaliserRegistry selects a normaliser for a document's MIME type.
type NormaliserRegistry interface {
	// ForMIMEType returns the highest-priority normaliser for the type, or
	// domain.ErrUnsupportedType when none handles it.
	ForMIMEType(mimeType string) (Normaliser, error)
}
