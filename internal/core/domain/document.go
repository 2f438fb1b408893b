package domain

// RawDocument represents opaque bytes fetched from a document source.
// It is the fetcher's output before normalisation.
type RawDocument struct {
	// URI is the original location (file path, github:// URI, etc).
	URI string

	// MIMEType is the content type (e.g., "application/pdf").
	MIMEType string

	// Content is the raw bytes.
	Content []byte

	// Metadata contains source-specific key-value pairs.
	Metadata map[string]any
}

// TextChunk is a bounded, possibly-overlapping segment of the extracted
// document text. Index is the authoritative order key: the map stage may
// complete chunks out of order, so slice position must never be relied on.
type TextChunk struct {
	// Index is the zero-based position of the chunk within the document.
	Index int `json:"index"`

	// Content is the chunk text, including any overlap with its neighbours.
	Content string `json:"content"`
}
