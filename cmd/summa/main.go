// Command summa analyses long transcripts through a map-reduce LLM pipeline.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/custodia-labs/summa-cli/internal/adapters/driven/ai"
	"github.com/custodia-labs/summa-cli/internal/adapters/driven/config"
	"github.com/custodia-labs/summa-cli/internal/adapters/driven/config/file"
	"github.com/custodia-labs/summa-cli/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/summa-cli/internal/adapters/driving/cli"
	"github.com/custodia-labs/summa-cli/internal/connectors/filesystem"
	"github.com/custodia-labs/summa-cli/internal/connectors/github"
	"github.com/custodia-labs/summa-cli/internal/core/domain"
	"github.com/custodia-labs/summa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/summa-cli/internal/core/services"
	"github.com/custodia-labs/summa-cli/internal/logger"
	"github.com/custodia-labs/summa-cli/internal/normalisers"
	"github.com/custodia-labs/summa-cli/internal/normalisers/docx"
	"github.com/custodia-labs/summa-cli/internal/normalisers/markdown"
	"github.com/custodia-labs/summa-cli/internal/normalisers/pdf"
	"github.com/custodia-labs/summa-cli/internal/normalisers/plaintext"
)

// version is stamped at build time via -ldflags.
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return fmt.Errorf("opening config: %w", err)
	}

	promptStore, err := file.NewPromptStore("")
	if err != nil {
		return fmt.Errorf("opening prompt store: %w", err)
	}

	checkpoints, err := sqlite.NewStore(configStore.GetString(config.KeyDataDir))
	if err != nil {
		return fmt.Errorf("opening session store: %w", err)
	}
	defer checkpoints.Close() //nolint:errcheck

	// A nil LLM service is fine here: auth, sessions and version work
	// without one, and analysis commands surface a configuration error.
	llmSettings := loadLLMSettings(configStore)
	llm, err := ai.CreateLLMService(&llmSettings)
	if err != nil {
		return fmt.Errorf("creating LLM service: %w", err)
	}
	if llm != nil {
		defer llm.Close() //nolint:errcheck
	} else {
		logger.Debug("no LLM provider configured")
	}

	fetchers := []driven.Fetcher{
		github.New(os.Getenv("GITHUB_TOKEN")),
		filesystem.New(),
	}

	registry := normalisers.NewDefaultRegistry(
		plaintext.New(),
		markdown.New(),
		docx.New(),
		pdf.New(),
	)

	analyzer := services.NewAnalyzer(
		fetchers,
		registry,
		nil, // chunker derived from settings
		llm,
		checkpoints,
		loadAnalysisSettings(configStore),
	)
	analyzer.SetPromptStore(promptStore)

	cli.SetVersion(version)
	cli.SetAnalysisService(analyzer)
	cli.SetConfigStore(configStore)
	cli.SetCheckpointStore(checkpoints)

	return cli.Execute(ctx)
}

func loadLLMSettings(store driven.ConfigStore) domain.LLMSettings {
	return domain.LLMSettings{
		Provider:          domain.AIProvider(store.GetString(config.KeyLLMProvider)),
		Model:             store.GetString(config.KeyLLMModel),
		BaseURL:           store.GetString(config.KeyLLMBaseURL),
		APIKey:            store.GetString(config.KeyLLMAPIKey),
		RequestsPerSecond: store.GetFloat(config.KeyLLMRate),
	}
}

// loadAnalysisSettings reads pipeline tuning from the config store. Unset
// keys come back zero and the analyzer substitutes its built-in defaults.
func loadAnalysisSettings(store driven.ConfigStore) domain.AnalysisSettings {
	return domain.AnalysisSettings{
		ChunkSize:      store.GetInt(config.KeyChunkSize),
		ChunkOverlap:   store.GetInt(config.KeyChunkOverlap),
		MapConcurrency: store.GetInt(config.KeyMapConcurrency),
		MaxChars:       store.GetInt(config.KeyMaxChars),
	}
}
