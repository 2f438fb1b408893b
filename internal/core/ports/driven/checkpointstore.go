package driven

import (
	"context"

	"github.com/custodia-labs/summa-cli/internal/core/domain"
)

// CheckpointStore persists session state across the human-gate suspension
// boundary. A suspended session must survive process restart, so
// implementations are expected to be durable (the in-memory store exists for
// tests and single-shot runs).
type CheckpointStore interface {
	// SaveSession stores or replaces a session snapshot.
	SaveSession(ctx context.Context, session *domain.Session) error

	// GetSession retrieves a session by ID.
	// Returns domain.ErrSessionNotFound when absent.
	GetSession(ctx context.Context, id string) (*domain.Session, error)

	// ListSessions returns all sessions, most recently updated first.
	ListSessions(ctx context.Context) ([]domain.Session, error)

	// DeleteSession removes a session. Deleting an absent session is not an
	// error.
	DeleteSession(ctx context.Context, id string) error
}
