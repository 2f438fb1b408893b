package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/summa-cli/internal/core/domain"
	"github.com/custodia-labs/summa-cli/internal/core/ports/driven"
)

// summariseTemperature allows some latitude for narrative prose.
const summariseTemperature = 0.3

// summariseMaxTokens bounds the narrative length.
const summariseMaxTokens = 1024

// summarise turns the aggregated extract into a narrative summary. Unlike
// per-chunk extraction there is no degrade path here: a transport failure is
// pipeline-fatal because there is only one summary to produce.
func (a *Analyzer) summarise(ctx context.Context, agg *domain.AggregatedExtract) (string, error) {
	if agg == nil || agg.Empty() {
		return "", domain.ErrEmptyAggregate
	}

	serialised, err := json.MarshalIndent(agg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("serialise aggregate: %w", err)
	}

	promptTemplate := loadPrompt(a.promptStore, driven.PromptSummarise, defaultSummarisePrompt)
	prompt := fmt.Sprintf(promptTemplate, string(serialised))

	messages := []driven.ChatMessage{
		{Role: "system", Content: "You are a senior financial analyst creating a summary."},
		{Role: "user", Content: prompt},
	}

	summary, err := a.llm.Chat(ctx, messages, driven.ChatOptions{
		MaxTokens:   summariseMaxTokens,
		Temperature: summariseTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("generate summary: %w", err)
	}

	return strings.TrimSpace(summary), nil
}
