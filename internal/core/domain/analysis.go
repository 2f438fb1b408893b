package domain

import "time"

// Status is the lifecycle state of an analysis session.
// Running-stage states advance in order; the last four are terminal or
// suspended. A session in StatusAwaitingReview holds no resources - it is a
// pure data checkpoint until Resume is called.
type Status string

// Session lifecycle states.
const (
	// StatusPending means the session exists but no stage has run yet.
	StatusPending Status = "pending"

	// StatusExtracting means document text extraction is in progress.
	StatusExtracting Status = "extracting"

	// StatusChunking means the text is being split into chunks.
	StatusChunking Status = "chunking"

	// StatusMapping means per-chunk LLM extraction is in flight.
	StatusMapping Status = "mapping"

	// StatusAggregating means chunk results are being merged.
	StatusAggregating Status = "aggregating"

	// StatusSummarising means the narrative summary is being generated.
	StatusSummarising Status = "summarising"

	// StatusValidating means the summary is being judged against the rules.
	StatusValidating Status = "validating"

	// StatusAwaitingReview means validation did not pass and the session is
	// suspended pending an explicit human approve/reject decision.
	StatusAwaitingReview Status = "awaiting_review"

	// StatusCompleted means the session finished with a final summary.
	StatusCompleted Status = "completed"

	// StatusRejected means a human rejected the analysis. Terminal.
	StatusRejected Status = "rejected"

	// StatusFailed means a stage-fatal error ended the session. Terminal.
	StatusFailed Status = "failed"
)

// Terminal reports whether the status admits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusRejected || s == StatusFailed
}

// Session is the full state of one analysis run. It is the unit persisted at
// the human-gate suspension boundary and reconstructed on Resume.
//
// The analysis service owns the session exclusively; stages receive only the
// fields they need and return updates rather than mutating shared state.
type Session struct {
	// ID is the caller-supplied session identifier.
	ID string `json:"id"`

	// SourceURI is the location the document was ingested from.
	SourceURI string `json:"source_uri"`

	// Rules is the free-text rule set the summary is validated against.
	Rules string `json:"rules"`

	// Status is the current lifecycle state.
	Status Status `json:"status"`

	// Text is the extracted document text.
	Text string `json:"text,omitempty"`

	// Chunks are the overlapping segments produced from Text.
	Chunks []TextChunk `json:"chunks,omitempty"`

	// ChunkResults holds exactly one result per chunk, ordered by index.
	ChunkResults []ChunkResult `json:"chunk_results,omitempty"`

	// Aggregate is the merged, deduplicated extraction across all chunks.
	Aggregate *AggregatedExtract `json:"aggregate,omitempty"`

	// Summary is the synthesised narrative.
	Summary string `json:"summary,omitempty"`

	// Verdict is the most recent rule-validation outcome.
	Verdict *Verdict `json:"verdict,omitempty"`

	// ReviewText is the human-readable review request shown at the gate:
	// per-rule assessments, recommendations and the summary.
	ReviewText string `json:"review_text,omitempty"`

	// Feedback is the free-text note supplied with the human decision.
	Feedback string `json:"feedback,omitempty"`

	// FinalResult is set when the session completes or is rejected.
	FinalResult string `json:"final_result,omitempty"`

	// Err holds the stage-fatal error message for failed sessions.
	Err string `json:"error,omitempty"`

	// CreatedAt is when the session was started.
	CreatedAt time.Time `json:"created_at"`

	// UpdatedAt is when the session state last changed.
	UpdatedAt time.Time `json:"updated_at"`
}

// ProgressEvent is emitted after each stage completes so callers can stream
// pipeline progress. Detail carries stage-specific counts such as chunk
// totals.
type ProgressEvent struct {
	SessionID string         `json:"session_id"`
	Stage     Status         `json:"stage"`
	Detail    map[string]any `json:"detail,omitempty"`
}
