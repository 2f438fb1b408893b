package domain

// Metric is a single financial metric extracted from a chunk.
// Two metrics are duplicates only when all three fields are equal.
type Metric struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Period string `json:"period"`
}

// ChunkExtract is the structured output of one per-chunk LLM extraction.
type ChunkExtract struct {
	// Metrics are the financial metrics mentioned in the chunk.
	Metrics []Metric `json:"metrics"`

	// Guidance is a forward-looking statement, if any.
	Guidance string `json:"guidance"`

	// KeyDrivers are the factors driving performance.
	KeyDrivers []string `json:"key_drivers"`

	// Risks are mentioned risks or headwinds.
	Risks []string `json:"risks"`

	// Tone is the perceived management tone (optimistic, cautious, ...).
	Tone string `json:"tone"`
}

// ChunkResult is the outcome of processing one chunk. Exactly one of the
// three shapes applies: a structured extract, a raw-text fallback when the
// LLM reply could not be parsed, or a captured error when the call itself
// failed. An errored result still counts as processed - it never aborts the
// batch.
type ChunkResult struct {
	// ChunkIndex links back to the TextChunk this result belongs to.
	ChunkIndex int `json:"chunk_index"`

	// Extract is the parsed structured output, when parsing succeeded.
	Extract *ChunkExtract `json:"extract,omitempty"`

	// RawText holds the unparsed LLM reply when structured parsing failed.
	RawText string `json:"raw_text,omitempty"`

	// Err holds the failure message when the LLM call itself failed.
	Err string `json:"error,omitempty"`
}

// Structured reports whether this result carries a usable extract.
func (r ChunkResult) Structured() bool {
	return r.Err == "" && r.Extract != nil
}

// AggregatedExtract is the merged, deduplicated extraction across all
// chunks. Per-field cardinality never exceeds the sum of the per-chunk
// cardinalities.
type AggregatedExtract struct {
	// Metrics are deduplicated by full-record equality, first occurrence
	// preserved.
	Metrics []Metric `json:"metrics"`

	// Guidance collects deduplicated non-empty guidance statements.
	Guidance []string `json:"guidance"`

	// KeyDrivers are the deduplicated business drivers.
	KeyDrivers []string `json:"key_drivers"`

	// Risks are the deduplicated risks.
	Risks []string `json:"risks"`

	// Tone is the most frequent non-empty tone across chunks.
	Tone string `json:"tone,omitempty"`
}

// Empty reports whether no field carries any data.
func (a AggregatedExtract) Empty() bool {
	return len(a.Metrics) == 0 &&
		len(a.Guidance) == 0 &&
		len(a.KeyDrivers) == 0 &&
		len(a.Risks) == 0
}
