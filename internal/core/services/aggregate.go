package services

import (
	"github.com/custodia-labs/summa-cli/internal/core/domain"
)

// aggregate merges the structured extracts of all chunks into a single
// deduplicated extract. Results without a structured extract (raw fallback or
// captured error) contribute nothing.
//
// Metrics deduplicate by full-record equality with first-occurrence order
// preserved; guidance, drivers and risks deduplicate by exact string equality
// with set semantics. Pure function - no I/O, deterministic for a given
// input multiset.
func aggregate(results []domain.ChunkResult) (*domain.AggregatedExtract, error) {
	if len(results) == 0 {
		return nil, domain.ErrEmptyInput
	}

	agg := &domain.AggregatedExtract{}

	seenMetrics := make(map[domain.Metric]struct{})
	guidance := make(map[string]struct{})
	drivers := make(map[string]struct{})
	risks := make(map[string]struct{})
	tones := make(map[string]int)

	for _, result := range results {
		if !result.Structured() {
			continue
		}
		extract := result.Extract

		for _, metric := range extract.Metrics {
			if _, ok := seenMetrics[metric]; ok {
				continue
			}
			seenMetrics[metric] = struct{}{}
			agg.Metrics = append(agg.Metrics, metric)
		}

		if extract.Guidance != "" {
			if _, ok := guidance[extract.Guidance]; !ok {
				guidance[extract.Guidance] = struct{}{}
				agg.Guidance = append(agg.Guidance, extract.Guidance)
			}
		}

		for _, driver := range extract.KeyDrivers {
			if _, ok := drivers[driver]; !ok {
				drivers[driver] = struct{}{}
				agg.KeyDrivers = append(agg.KeyDrivers, driver)
			}
		}

		for _, risk := range extract.Risks {
			if _, ok := risks[risk]; !ok {
				risks[risk] = struct{}{}
				agg.Risks = append(agg.Risks, risk)
			}
		}

		if extract.Tone != "" {
			tones[extract.Tone]++
		}
	}

	agg.Tone = dominantTone(tones)

	return agg, nil
}

// dominantTone picks the most frequent tone, breaking ties lexicographically
// so the result is deterministic.
func dominantTone(tones map[string]int) string {
	best := ""
	bestCount := 0
	for tone, count := range tones {
		if count > bestCount || (count == bestCount && tone < best) {
			best = tone
			bestCount = count
		}
	}
	return best
}
