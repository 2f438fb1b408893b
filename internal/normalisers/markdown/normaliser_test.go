package markdown

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/summa-cli/internal/core/domain"
)

func TestSupportedMIMETypes(t *testing.T) {
	mimeTypes := New().SupportedMIMETypes()

	require.NotEmpty(t, mimeTypes)
	assert.Contains(t, mimeTypes, "text/markdown")
}

func TestPriority(t *testing.T) {
	assert.Equal(t, 50, New().Priority())
}

func TestNormalise_Success(t *testing.T) {
	normaliser := New()

	raw := &domain.RawDocument{
		URI:      "/docs/q3-summary.md",
		MIMEType: "text/markdown",
		Content:  []byte("# Q3 Results\n\nRevenue was **$4.2B**, up 12%."),
	}

	result, err := normaliser.Normalise(context.Background(), raw)
	require.NoError(t, err)
	require.NotNil(t, result)

	assert.Equal(t, "Q3 Results", result.Title)
	assert.Contains(t, result.Content, "Revenue was $4.2B, up 12%.")
	assert.NotContains(t, result.Content, "**")
	assert.NotContains(t, result.Content, "# ")
}

func TestNormalise_NilDocument(t *testing.T) {
	result, err := New().Normalise(context.Background(), nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.Nil(t, result)
}

func TestNormalise_TitleFallsBackToFilename(t *testing.T) {
	raw := &domain.RawDocument{
		URI:      "/docs/annual_report.md",
		MIMEType: "text/markdown",
		Content:  []byte("No headings here, just prose."),
	}

	result, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)
	assert.Equal(t, "annual report", result.Title)
}

func TestStripMarkdown(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "headings removed",
			input:    "# Title\n## Subtitle\nBody",
			expected: "Title\nSubtitle\nBody",
		},
		{
			name:     "links keep text",
			input:    "See [the filing](https://example.com/10k) for details",
			expected: "See the filing for details",
		},
		{
			name:     "images removed",
			input:    "Before ![chart](chart.png) after",
			expected: "Before  after",
		},
		{
			name:     "inline code removed",
			input:    "Run `pdftotext` first",
			expected: "Run  first",
		},
		{
			name:     "code blocks removed",
			input:    "Intro\n```\ncode here\n```\nOutro",
			expected: "Intro\n\nOutro",
		},
		{
			name:     "bold and italic removed",
			input:    "**bold** and *italic*",
			expected: "bold and italic",
		},
		{
			name:     "list markers removed",
			input:    "- first\n- second\n1. third",
			expected: "first\nsecond\nthird",
		},
		{
			name:     "blockquotes unwrapped",
			input:    "> quoted line",
			expected: "quoted line",
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, stripMarkdown(tc.input))
		})
	}
}

func TestNormalise_ComplexMarkdown(t *testing.T) {
	content := `# Earnings Call Notes

## Highlights

- Revenue **$4.2B** (+12% YoY)
- EPS of $1.85, beating [consensus](https://example.com/estimates)

> Management raised full-year guidance.

---

1. Gross margin 61%
2. Free cash flow $900M
`

	raw := &domain.RawDocument{
		URI:      "/notes.md",
		MIMEType: "text/markdown",
		Content:  []byte(content),
	}

	result, err := New().Normalise(context.Background(), raw)
	require.NoError(t, err)

	assert.Equal(t, "Earnings Call Notes", result.Title)
	assert.Contains(t, result.Content, "Revenue $4.2B (+12% YoY)")
	assert.Contains(t, result.Content, "EPS of $1.85, beating consensus")
	assert.Contains(t, result.Content, "Management raised full-year guidance.")
	assert.Contains(t, result.Content, "Gross margin 61%")
	assert.NotContains(t, result.Content, "---")
	assert.NotContains(t, result.Content, "https://example.com")
}
