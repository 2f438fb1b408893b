package driving

import (
	"context"

	"github.com/custodia-labs/summa-cli/internal/core/domain"
)

// ProgressFunc receives a progress event after each pipeline stage. It is
// invoked synchronously from the pipeline goroutine; implementations should
// return quickly.
type ProgressFunc func(event domain.ProgressEvent)

// AnalyzeRequest describes one analysis run.
type AnalyzeRequest struct {
	// SessionID identifies the run. Empty means a fresh ID is generated.
	SessionID string

	// URI is the document location (local path or github:// URI).
	URI string

	// Rules is the free-text rule set for validation. May be empty.
	Rules string

	// Progress optionally streams stage completions. May be nil.
	Progress ProgressFunc
}

// AnalysisService runs the transcript analysis pipeline.
type AnalysisService interface {
	// Start runs the pipeline for a new session. The returned session is in
	// one of three states: completed (final summary ready), awaiting_review
	// (suspended at the human gate) or failed (stage-fatal error, also
	// returned as the error).
	Start(ctx context.Context, req AnalyzeRequest) (*domain.Session, error)

	// Resume applies a human decision to a session suspended at the gate.
	// Only valid when the persisted session is awaiting review; returns
	// domain.ErrInvalidState otherwise. Approval reuses the stored summary
	// verbatim; rejection terminates the session.
	Resume(ctx context.Context, sessionID string, approved bool, feedback string) (*domain.Session, error)

	// Get returns the persisted state of a session.
	Get(ctx context.Context, sessionID string) (*domain.Session, error)

	// List returns all known sessions, most recently updated first.
	List(ctx context.Context) ([]domain.Session, error)
}
