package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/summa-cli/internal/core/domain"
	"github.com/custodia-labs/summa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/summa-cli/internal/core/ports/driving"
	"github.com/custodia-labs/summa-cli/internal/logger"
	"github.com/custodia-labs/summa-cli/internal/postprocessors/chunker"
)

// Ensure Analyzer implements the interface.
var _ driving.AnalysisService = (*Analyzer)(nil)

// Analyzer runs the map-reduce analysis pipeline and owns all session state.
//
// The pipeline definition is stateless and shared across sessions; the only
// per-session mutable data is the domain.Session threaded through the stages
// and persisted at the suspension boundary. Start and Resume for the same
// session ID are serialised by a per-session lock.
type Analyzer struct {
	fetchers    []driven.Fetcher
	normalisers driven.NormaliserRegistry
	chunker     *chunker.Chunker
	llm         driven.LLMService
	checkpoints driven.CheckpointStore
	promptStore driven.PromptStore
	settings    domain.AnalysisSettings

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewAnalyzer creates a new analysis service.
func NewAnalyzer(
	fetchers []driven.Fetcher,
	normalisers driven.NormaliserRegistry,
	textChunker *chunker.Chunker,
	llm driven.LLMService,
	checkpoints driven.CheckpointStore,
	settings domain.AnalysisSettings,
) *Analyzer {
	if textChunker == nil {
		textChunker = chunker.New(
			chunker.WithChunkSize(settings.ChunkSize),
			chunker.WithOverlap(settings.ChunkOverlap),
		)
	}
	return &Analyzer{
		fetchers:    fetchers,
		normalisers: normalisers,
		chunker:     textChunker,
		llm:         llm,
		checkpoints: checkpoints,
		settings:    settings,
		locks:       make(map[string]*sync.Mutex),
	}
}

// SetPromptStore sets the prompt store for loading customisable prompts.
// If not set, the service uses hardcoded default prompts.
func (a *Analyzer) SetPromptStore(store driven.PromptStore) {
	a.promptStore = store
}

// lockFor returns the mutex serialising access to one session.
func (a *Analyzer) lockFor(sessionID string) *sync.Mutex {
	a.mu.Lock()
	defer a.mu.Unlock()

	lock, ok := a.locks[sessionID]
	if !ok {
		lock = &sync.Mutex{}
		a.locks[sessionID] = lock
	}
	return lock
}

// Start runs the pipeline for a new session.
func (a *Analyzer) Start(ctx context.Context, req driving.AnalyzeRequest) (*domain.Session, error) {
	if a.llm == nil {
		return nil, domain.ErrLLMUnavailable
	}

	sessionID := req.SessionID
	if sessionID == "" {
		sessionID = uuid.New().String()
	}

	lock := a.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	if existing, err := a.checkpoints.GetSession(ctx, sessionID); err == nil && !existing.Status.Terminal() {
		return nil, fmt.Errorf("%w: %s (%s)", domain.ErrSessionExists, sessionID, existing.Status)
	}

	now := time.Now().UTC()
	session := &domain.Session{
		ID:        sessionID,
		SourceURI: req.URI,
		Rules:     req.Rules,
		Status:    domain.StatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}

	return a.run(ctx, session, req.Progress)
}

// run drives the session through the stages up to the gate.
func (a *Analyzer) run(ctx context.Context, session *domain.Session, progress driving.ProgressFunc) (*domain.Session, error) {
	logger.Section("analysis " + session.ID)

	// Stage: extract text.
	text, err := a.extractText(ctx, session.SourceURI)
	if err != nil {
		return a.fail(ctx, session, fmt.Errorf("extract text: %w", err))
	}
	if a.settings.MaxChars > 0 && len(text) > a.settings.MaxChars {
		logger.Info("truncating text from %d to %d characters", len(text), a.settings.MaxChars)
		text = text[:a.settings.MaxChars]
	}
	session.Text = text
	a.checkpoint(ctx, session, domain.StatusExtracting, progress, map[string]any{
		"chars": len(text),
	})

	// Stage: chunk.
	chunks := a.chunker.Chunk(session.Text)
	if len(chunks) == 0 {
		return a.fail(ctx, session, domain.ErrNoContent)
	}
	session.Chunks = chunks
	a.checkpoint(ctx, session, domain.StatusChunking, progress, map[string]any{
		"chunks": len(chunks),
	})
	logger.Info("document split into %d chunks", len(chunks))

	// Stage: parallel map.
	session.Status = domain.StatusMapping
	results := a.mapChunks(ctx, chunks, func(done, total int) {
		if progress != nil {
			progress(domain.ProgressEvent{
				SessionID: session.ID,
				Stage:     domain.StatusMapping,
				Detail:    map[string]any{"chunks_done": done, "chunks_total": total},
			})
		}
	})
	session.ChunkResults = results
	structured := 0
	for _, result := range results {
		if result.Structured() {
			structured++
		}
	}
	a.checkpoint(ctx, session, domain.StatusMapping, progress, map[string]any{
		"chunks_total":      len(results),
		"chunks_structured": structured,
	})
	logger.Info("map phase complete: %d/%d chunks structured", structured, len(results))

	// Stage: aggregate.
	agg, err := aggregate(results)
	if err != nil {
		return a.fail(ctx, session, err)
	}
	session.Aggregate = agg
	a.checkpoint(ctx, session, domain.StatusAggregating, progress, map[string]any{
		"metrics": len(agg.Metrics),
	})

	// Stage: summarise.
	summary, err := a.summarise(ctx, agg)
	if err != nil {
		return a.fail(ctx, session, err)
	}
	session.Summary = summary
	a.checkpoint(ctx, session, domain.StatusSummarising, progress, nil)

	// Stage: validate.
	verdict := a.validate(ctx, summary, agg, session.Rules)
	session.Verdict = verdict
	a.checkpoint(ctx, session, domain.StatusValidating, progress, map[string]any{
		"satisfied": verdict.Satisfied,
	})

	// Gate: a satisfied verdict finalises directly; anything else suspends
	// for human review. Suspension is a pure data checkpoint - no goroutine
	// or timer survives this return.
	if verdict.Satisfied {
		return a.finalise(ctx, session, session.Summary, progress)
	}

	session.ReviewText = formatReview(verdict, summary)
	session.Status = domain.StatusAwaitingReview
	session.UpdatedAt = time.Now().UTC()
	if err := a.checkpoints.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("checkpoint session %s: %w", session.ID, err)
	}
	emit(progress, session, domain.StatusAwaitingReview, nil)
	logger.Info("session %s awaiting human review", session.ID)

	return session, nil
}

// Resume applies a human decision to a suspended session.
func (a *Analyzer) Resume(ctx context.Context, sessionID string, approved bool, feedback string) (*domain.Session, error) {
	lock := a.lockFor(sessionID)
	lock.Lock()
	defer lock.Unlock()

	session, err := a.checkpoints.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session.Status != domain.StatusAwaitingReview {
		return nil, fmt.Errorf("%w: %s is %s", domain.ErrInvalidState, sessionID, session.Status)
	}

	session.Feedback = feedback

	if !approved {
		session.Status = domain.StatusRejected
		session.FinalResult = fmt.Sprintf("Analysis rejected: %s", feedback)
		session.UpdatedAt = time.Now().UTC()
		if err := a.checkpoints.SaveSession(ctx, session); err != nil {
			return nil, fmt.Errorf("checkpoint session %s: %w", sessionID, err)
		}
		logger.Info("session %s rejected", sessionID)
		return session, nil
	}

	// Approval reuses the stored summary verbatim; nothing is regenerated.
	return a.finalise(ctx, session, session.Summary, nil)
}

// Get returns the persisted state of a session.
func (a *Analyzer) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	return a.checkpoints.GetSession(ctx, sessionID)
}

// List returns all known sessions.
func (a *Analyzer) List(ctx context.Context) ([]domain.Session, error) {
	return a.checkpoints.ListSessions(ctx)
}

// extractText resolves a fetcher for the URI and normalises the bytes.
func (a *Analyzer) extractText(ctx context.Context, uri string) (string, error) {
	var fetcher driven.Fetcher
	for _, f := range a.fetchers {
		if f.Supports(uri) {
			fetcher = f
			break
		}
	}
	if fetcher == nil {
		return "", fmt.Errorf("%w: no fetcher for %q", domain.ErrUnsupportedType, uri)
	}

	raw, err := fetcher.Fetch(ctx, uri)
	if err != nil {
		return "", err
	}

	normaliser, err := a.normalisers.ForMIMEType(raw.MIMEType)
	if err != nil {
		return "", err
	}

	result, err := normaliser.Normalise(ctx, raw)
	if err != nil {
		return "", err
	}

	logger.Debug("extracted %d characters from %s", len(result.Content), uri)
	return result.Content, nil
}

// finalise moves the session to completed with the given result.
func (a *Analyzer) finalise(ctx context.Context, session *domain.Session, result string, progress driving.ProgressFunc) (*domain.Session, error) {
	session.FinalResult = result
	session.Status = domain.StatusCompleted
	session.UpdatedAt = time.Now().UTC()
	if err := a.checkpoints.SaveSession(ctx, session); err != nil {
		return nil, fmt.Errorf("checkpoint session %s: %w", session.ID, err)
	}
	emit(progress, session, domain.StatusCompleted, nil)
	logger.Info("session %s completed", session.ID)
	return session, nil
}

// fail moves the session to the terminal failed state and returns the error.
// Stage-fatal errors never route through the human gate.
func (a *Analyzer) fail(ctx context.Context, session *domain.Session, cause error) (*domain.Session, error) {
	session.Status = domain.StatusFailed
	session.Err = cause.Error()
	session.UpdatedAt = time.Now().UTC()
	if err := a.checkpoints.SaveSession(ctx, session); err != nil {
		logger.Warn("failed to checkpoint failed session %s: %v", session.ID, err)
	}
	logger.Warn("session %s failed: %v", session.ID, cause)
	return session, cause
}

// checkpoint records a completed stage: it stamps the session, persists it
// and emits a progress event. Intermediate persistence failures are logged,
// not fatal - only the suspension and terminal checkpoints must stick.
func (a *Analyzer) checkpoint(ctx context.Context, session *domain.Session, stage domain.Status, progress driving.ProgressFunc, detail map[string]any) {
	session.Status = stage
	session.UpdatedAt = time.Now().UTC()
	if err := a.checkpoints.SaveSession(ctx, session); err != nil {
		logger.Warn("failed to checkpoint session %s after %s: %v", session.ID, stage, err)
	}
	emit(progress, session, stage, detail)
}

func emit(progress driving.ProgressFunc, session *domain.Session, stage domain.Status, detail map[string]any) {
	if progress == nil {
		return
	}
	progress(domain.ProgressEvent{
		SessionID: session.ID,
		Stage:     stage,
		Detail:    detail,
	})
}
