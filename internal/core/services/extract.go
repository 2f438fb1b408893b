package services

import (
	"context"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/summa-cli/internal/core/domain"
	"github.com/custodia-labs/summa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/summa-cli/internal/logger"
)

// DefaultMapConcurrency caps concurrent per-chunk extractions when the
// settings don't specify one.
const DefaultMapConcurrency = 8

// extractTemperature keeps per-chunk extraction near-deterministic.
const extractTemperature = 0.1

// extractChunk runs one per-chunk LLM extraction. It never returns an error:
// a transport failure is captured in the result's Err field and a reply that
// cannot be parsed as JSON is kept as RawText. Failure isolation here is what
// lets a single bad chunk degrade quality instead of aborting the run.
func (a *Analyzer) extractChunk(ctx context.Context, chunk domain.TextChunk) domain.ChunkResult {
	result := domain.ChunkResult{ChunkIndex: chunk.Index}

	systemPrompt := loadPrompt(a.promptStore, driven.PromptExtract, defaultExtractPrompt)
	messages := []driven.ChatMessage{
		{Role: "system", Content: systemPrompt},
		{Role: "user", Content: chunk.Content},
	}

	reply, err := a.llm.Chat(ctx, messages, driven.ChatOptions{Temperature: extractTemperature})
	if err != nil {
		logger.Warn("chunk %d extraction failed: %v", chunk.Index, err)
		result.Err = err.Error()
		return result
	}

	var extract domain.ChunkExtract
	if err := decodeLenientJSON(reply, &extract); err != nil {
		logger.Debug("chunk %d reply not parseable, keeping raw text", chunk.Index)
		result.RawText = reply
		return result
	}

	result.Extract = &extract
	return result
}

// mapChunks fans the extractor out over all chunks concurrently and fans back
// in with exactly one result per chunk, sorted by chunk index. The join waits
// for every extraction to finish - per-chunk failures are data, not errors,
// so the batch never fails fast.
func (a *Analyzer) mapChunks(ctx context.Context, chunks []domain.TextChunk, progress func(done, total int)) []domain.ChunkResult {
	total := len(chunks)
	results := make([]domain.ChunkResult, total)

	concurrency := a.settings.MapConcurrency
	if concurrency <= 0 {
		concurrency = DefaultMapConcurrency
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	done := make(chan int, total)
	for i, chunk := range chunks {
		g.Go(func() error {
			results[i] = a.extractChunk(gctx, chunk)
			done <- i
			return nil
		})
	}

	// extractChunk never errors, so Wait only synchronises.
	go func() {
		g.Wait() //nolint:errcheck
		close(done)
	}()

	completed := 0
	for range done {
		completed++
		logger.Debug("processed chunk %d/%d", completed, total)
		if progress != nil {
			progress(completed, total)
		}
	}

	// Completion order is unconstrained; the output order is not.
	sort.Slice(results, func(i, j int) bool {
		return results[i].ChunkIndex < results[j].ChunkIndex
	})

	return results
}
