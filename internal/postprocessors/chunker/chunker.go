// Package chunker provides a fixed-size overlapping text chunker.
package chunker

import (
	"github.com/custodia-labs/summa-cli/internal/core/domain"
)

// DefaultChunkSize is the default number of characters per chunk.
const DefaultChunkSize = 1000

// DefaultChunkOverlap is the default number of overlapping characters.
const DefaultChunkOverlap = 100

// Chunker splits text into fixed-size chunks with a shared overlap span
// between neighbours. Splitting is purely positional - no sentence awareness.
type Chunker struct {
	chunkSize int
	overlap   int
}

// Option configures the chunker.
type Option func(*Chunker)

// WithChunkSize sets the chunk size in characters.
func WithChunkSize(size int) Option {
	return func(c *Chunker) {
		if size > 0 {
			c.chunkSize = size
		}
	}
}

// WithOverlap sets the overlap between chunks in characters.
func WithOverlap(overlap int) Option {
	return func(c *Chunker) {
		if overlap >= 0 {
			c.overlap = overlap
		}
	}
}

// New creates a new chunker with the given options.
func New(opts ...Option) *Chunker {
	c := &Chunker{
		chunkSize: DefaultChunkSize,
		overlap:   DefaultChunkOverlap,
	}

	for _, opt := range opts {
		opt(c)
	}

	// Ensure overlap doesn't exceed chunk size
	if c.overlap >= c.chunkSize {
		c.overlap = c.chunkSize / 4
	}

	return c
}

// ChunkSize returns the configured window size.
func (c *Chunker) ChunkSize() int { return c.chunkSize }

// Overlap returns the configured overlap span.
func (c *Chunker) Overlap() int { return c.overlap }

// Chunk splits text left-to-right into overlapping windows. Each chunk after
// the first starts overlap characters before the end of the previous window;
// the final chunk may be shorter than the window. Empty text yields an empty
// sequence - callers decide whether that is fatal.
//
// The result is deterministic: the same input always produces the same
// chunk sequence.
func (c *Chunker) Chunk(text string) []domain.TextChunk {
	if text == "" {
		return nil
	}

	textLen := len(text)
	step := c.chunkSize - c.overlap

	estimated := (textLen / step) + 1
	chunks := make([]domain.TextChunk, 0, estimated)

	index := 0
	for start := 0; start < textLen; start += step {
		end := start + c.chunkSize
		if end > textLen {
			end = textLen
		}

		chunks = append(chunks, domain.TextChunk{
			Index:   index,
			Content: text[start:end],
		})
		index++

		if end == textLen {
			break
		}
	}

	return chunks
}
