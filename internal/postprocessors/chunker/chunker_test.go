package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_Defaults(t *testing.T) {
	c := New()
	assert.Equal(t, DefaultChunkSize, c.ChunkSize())
	assert.Equal(t, DefaultChunkOverlap, c.Overlap())
}

func TestNew_OverlapClamped(t *testing.T) {
	// Overlap >= size would never advance; it gets clamped.
	c := New(WithChunkSize(100), WithOverlap(100))
	assert.Equal(t, 25, c.Overlap())
}

func TestChunk_Empty(t *testing.T) {
	c := New(WithChunkSize(1000), WithOverlap(100))
	assert.Empty(t, c.Chunk(""))
}

func TestChunk_ShortText(t *testing.T) {
	c := New(WithChunkSize(1000), WithOverlap(100))
	chunks := c.Chunk("hello")

	require.Len(t, chunks, 1)
	assert.Equal(t, 0, chunks[0].Index)
	assert.Equal(t, "hello", chunks[0].Content)
}

func TestChunk_OverlapSpans(t *testing.T) {
	c := New(WithChunkSize(10), WithOverlap(3))
	text := "abcdefghijklmnopqrstuvwxyz"
	chunks := c.Chunk(text)

	require.Len(t, chunks, 4)
	assert.Equal(t, "abcdefghij", chunks[0].Content)
	assert.Equal(t, "hijklmnopq", chunks[1].Content)
	assert.Equal(t, "opqrstuvwx", chunks[2].Content)
	assert.Equal(t, "vwxyz", chunks[3].Content)

	// Adjacent chunks share exactly the overlap span.
	for i := 1; i < len(chunks); i++ {
		prev := chunks[i-1].Content
		tail := prev[len(prev)-3:]
		assert.True(t, strings.HasPrefix(chunks[i].Content, tail))
	}
}

func TestChunk_Deterministic(t *testing.T) {
	c := New(WithChunkSize(50), WithOverlap(7))
	text := strings.Repeat("the quick brown fox ", 40)

	first := c.Chunk(text)
	second := c.Chunk(text)
	assert.Equal(t, first, second)
}

func TestChunk_Coverage(t *testing.T) {
	// Concatenating each chunk's unique (non-overlapping) span reconstructs
	// the original text with nothing dropped or duplicated.
	c := New(WithChunkSize(64), WithOverlap(16))
	text := strings.Repeat("0123456789", 53) // 530 chars, not a multiple of the step

	chunks := c.Chunk(text)
	require.NotEmpty(t, chunks)

	var rebuilt strings.Builder
	rebuilt.WriteString(chunks[0].Content)
	for _, chunk := range chunks[1:] {
		rebuilt.WriteString(chunk.Content[16:])
	}
	assert.Equal(t, text, rebuilt.String())
}

func TestChunk_IndexesAscending(t *testing.T) {
	c := New(WithChunkSize(10), WithOverlap(2))
	chunks := c.Chunk(strings.Repeat("x", 100))

	for i, chunk := range chunks {
		assert.Equal(t, i, chunk.Index)
	}
}

func TestChunk_SpecCalibration(t *testing.T) {
	// 3500 chars at size 1000 / overlap 100 advances 900 per chunk:
	// windows at 0, 900, 1800, 2700 cover the text in 4 chunks.
	c := New(WithChunkSize(1000), WithOverlap(100))
	chunks := c.Chunk(strings.Repeat("a", 3500))

	require.Len(t, chunks, 4)
	assert.Equal(t, 800, len(chunks[3].Content))
}
