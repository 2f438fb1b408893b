package file

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/summa-cli/internal/core/ports/driven"
)

func TestNewPromptStore_WithCustomDir(t *testing.T) {
	dir := t.TempDir()

	store, err := NewPromptStore(dir)

	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())
}

func TestPromptStore_Load_CreatesDefaultFiles(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	// Load triggers lazy init
	_, err = store.Load(driven.PromptExtract)
	require.NoError(t, err)

	// Check files were created
	files := []string{
		"extract.txt",
		"summarise.txt",
		"validate.txt",
		"README.md",
	}
	for _, f := range files {
		path := filepath.Join(dir, f)
		_, err := os.Stat(path)
		assert.NoError(t, err, "expected file %s to exist", f)
	}
}

func TestPromptStore_Load_ReturnsDefaultContent(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptExtract)
	require.NoError(t, err)
	assert.Contains(t, prompt, "extract key financial metrics")

	prompt, err = store.Load(driven.PromptValidate)
	require.NoError(t, err)
	assert.Contains(t, prompt, "overall_satisfaction")
	assert.Contains(t, prompt, "%s") // Format placeholder
}

func TestPromptStore_Load_ReturnsCustomContent(t *testing.T) {
	dir := t.TempDir()

	// Create custom prompt before store init
	customContent := "My custom extraction prompt"
	err := os.WriteFile(
		filepath.Join(dir, "extract.txt"),
		[]byte(customContent),
		0600,
	)
	require.NoError(t, err)

	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	prompt, err := store.Load(driven.PromptExtract)

	require.NoError(t, err)
	assert.Equal(t, customContent, prompt)
}

func TestPromptStore_Load_UnknownName(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	_, err = store.Load("no-such-prompt")
	assert.Error(t, err)
}

func TestPromptStore_Reload_PicksUpEdits(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	// Populate cache with the default.
	_, err = store.Load(driven.PromptSummarise)
	require.NoError(t, err)

	edited := "Edited summary prompt: %s"
	err = os.WriteFile(filepath.Join(dir, "summarise.txt"), []byte(edited), 0600)
	require.NoError(t, err)

	// Cached value persists until Reload.
	prompt, err := store.Load(driven.PromptSummarise)
	require.NoError(t, err)
	assert.NotEqual(t, edited, prompt)

	store.Reload()
	prompt, err = store.Load(driven.PromptSummarise)
	require.NoError(t, err)
	assert.Equal(t, edited, prompt)
}

func TestPromptStore_ConcurrentLoads(t *testing.T) {
	dir := t.TempDir()
	store, err := NewPromptStore(dir)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			prompt, err := store.Load(driven.PromptExtract)
			assert.NoError(t, err)
			assert.NotEmpty(t, prompt)
		}()
	}
	wg.Wait()
}
