package services

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/summa-cli/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/summa-cli/internal/core/domain"
	"github.com/custodia-labs/summa-cli/internal/core/ports/driven"
)

// --- Mock LLM shared across service tests ---

// mockLLM implements driven.LLMService with a scriptable Chat function.
type mockLLM struct {
	mu     sync.Mutex
	calls  int
	chatFn func(messages []driven.ChatMessage, opts driven.ChatOptions) (string, error)
}

func (m *mockLLM) Chat(_ context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	m.mu.Lock()
	m.calls++
	m.mu.Unlock()
	if m.chatFn == nil {
		return "", nil
	}
	return m.chatFn(messages, opts)
}

func (m *mockLLM) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	return m.Chat(ctx, []driven.ChatMessage{{Role: "user", Content: prompt}}, driven.ChatOptions{
		MaxTokens:   opts.MaxTokens,
		Temperature: opts.Temperature,
	})
}

func (m *mockLLM) ModelName() string           { return "mock" }
func (m *mockLLM) Ping(_ context.Context) error { return nil }
func (m *mockLLM) Close() error                { return nil }

func (m *mockLLM) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// newTestAnalyzer builds an analyzer with only the pieces the map stage
// needs.
func newTestAnalyzer(llm driven.LLMService, settings domain.AnalysisSettings) *Analyzer {
	return NewAnalyzer(nil, nil, nil, llm, memory.NewCheckpointStore(), settings)
}

func makeChunks(n int) []domain.TextChunk {
	chunks := make([]domain.TextChunk, n)
	for i := range chunks {
		chunks[i] = domain.TextChunk{Index: i, Content: fmt.Sprintf("chunk %d", i)}
	}
	return chunks
}

func TestExtractChunk_StructuredReply(t *testing.T) {
	llm := &mockLLM{chatFn: func(messages []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
		require.Len(t, messages, 2)
		assert.Equal(t, "system", messages[0].Role)
		return `{"metrics":[{"name":"Revenue","value":"10","period":"Q1"}]}`, nil
	}}
	analyzer := newTestAnalyzer(llm, domain.AnalysisSettings{})

	result := analyzer.extractChunk(context.Background(), domain.TextChunk{Index: 3, Content: "text"})

	assert.Equal(t, 3, result.ChunkIndex)
	require.True(t, result.Structured())
	assert.Equal(t, "Revenue", result.Extract.Metrics[0].Name)
}

func TestExtractChunk_UnparseableReplyKeptAsRawText(t *testing.T) {
	llm := &mockLLM{chatFn: func(_ []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
		return "I could not find any metrics in this chunk.", nil
	}}
	analyzer := newTestAnalyzer(llm, domain.AnalysisSettings{})

	result := analyzer.extractChunk(context.Background(), domain.TextChunk{Index: 0, Content: "text"})

	assert.False(t, result.Structured())
	assert.Empty(t, result.Err)
	assert.Contains(t, result.RawText, "could not find")
}

func TestExtractChunk_TransportFailureCaptured(t *testing.T) {
	llm := &mockLLM{chatFn: func(_ []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
		return "", errors.New("connection reset")
	}}
	analyzer := newTestAnalyzer(llm, domain.AnalysisSettings{})

	result := analyzer.extractChunk(context.Background(), domain.TextChunk{Index: 0, Content: "text"})

	assert.False(t, result.Structured())
	assert.Equal(t, "connection reset", result.Err)
}

func TestMapChunks_OneResultPerChunkInOrder(t *testing.T) {
	// Random per-call delays force completion order to differ from launch
	// order; the output must still be sorted by chunk index.
	llm := &mockLLM{chatFn: func(messages []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
		time.Sleep(time.Duration(rand.Intn(10)) * time.Millisecond)
		var index int
		fmt.Sscanf(messages[1].Content, "chunk %d", &index) //nolint:errcheck
		return fmt.Sprintf(`{"guidance":"from chunk %d"}`, index), nil
	}}
	analyzer := newTestAnalyzer(llm, domain.AnalysisSettings{MapConcurrency: 4})

	chunks := makeChunks(12)
	results := analyzer.mapChunks(context.Background(), chunks, nil)

	require.Len(t, results, len(chunks))
	for i, result := range results {
		assert.Equal(t, i, result.ChunkIndex)
		require.True(t, result.Structured())
		assert.Equal(t, fmt.Sprintf("from chunk %d", i), result.Extract.Guidance)
	}
	assert.Equal(t, len(chunks), llm.callCount())
}

func TestMapChunks_SingleFailureDoesNotAbortBatch(t *testing.T) {
	llm := &mockLLM{chatFn: func(messages []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
		if strings.Contains(messages[1].Content, "chunk 2") {
			return "", errors.New("simulated transport error")
		}
		return `{"tone":"optimistic"}`, nil
	}}
	analyzer := newTestAnalyzer(llm, domain.AnalysisSettings{})

	results := analyzer.mapChunks(context.Background(), makeChunks(5), nil)

	require.Len(t, results, 5)
	for i, result := range results {
		if i == 2 {
			assert.Equal(t, "simulated transport error", result.Err)
			continue
		}
		assert.True(t, result.Structured(), "chunk %d", i)
	}
}

func TestMapChunks_ProgressSeesEveryCompletion(t *testing.T) {
	llm := &mockLLM{chatFn: func(_ []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
		return `{}`, nil
	}}
	analyzer := newTestAnalyzer(llm, domain.AnalysisSettings{MapConcurrency: 2})

	var seen []int
	analyzer.mapChunks(context.Background(), makeChunks(6), func(done, total int) {
		assert.Equal(t, 6, total)
		seen = append(seen, done)
	})

	assert.Equal(t, []int{1, 2, 3, 4, 5, 6}, seen)
}
