package plaintext

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/summa-cli/internal/core/domain"
)

func TestSupportedMIMETypes(t *testing.T) {
	normaliser := New()
	mimeTypes := normaliser.SupportedMIMETypes()

	require.NotEmpty(t, mimeTypes)
	assert.Contains(t, mimeTypes, "text/plain")
}

func TestPriority(t *testing.T) {
	assert.Equal(t, 5, New().Priority())
}

func TestNormalise_Success(t *testing.T) {
	normaliser := New()

	raw := &domain.RawDocument{
		URI:      "/transcripts/q3_earnings-call.txt",
		MIMEType: "text/plain",
		Content:  []byte("Revenue grew 12% year over year."),
	}

	result, err := normaliser.Normalise(context.Background(), raw)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "q3 earnings call", result.Title)
	assert.Equal(t, "Revenue grew 12% year over year.", result.Content)
}

func TestNormalise_TitleFromMetadata(t *testing.T) {
	normaliser := New()

	raw := &domain.RawDocument{
		URI:      "/tmp/download-8841.txt",
		MIMEType: "text/plain",
		Content:  []byte("content"),
		Metadata: map[string]any{"title": "Q3 Earnings Call"},
	}

	result, err := normaliser.Normalise(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "Q3 Earnings Call", result.Title)
}

func TestNormalise_NilDocument(t *testing.T) {
	result, err := New().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestTitleFromURI(t *testing.T) {
	tests := []struct {
		name     string
		uri      string
		expected string
	}{
		{"simple filename", "/docs/report.txt", "report"},
		{"underscores and dashes", "/docs/annual_report-2025.md", "annual report 2025"},
		{"no extension", "/docs/notes", "notes"},
		{"nested path", "github://acme/filings/docs/10k.txt", "10k"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, TitleFromURI(tc.uri))
		})
	}
}
