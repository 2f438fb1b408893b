package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNoContent indicates the document yielded no text to chunk.
	// An empty chunk sequence is a terminal error, not an empty success.
	ErrNoContent = errors.New("no content to chunk")

	// ErrEmptyInput indicates the aggregator received no chunk results.
	ErrEmptyInput = errors.New("no chunk results to aggregate")

	// ErrEmptyAggregate indicates the aggregate holds no data to summarise.
	ErrEmptyAggregate = errors.New("nothing to summarise")

	// ErrInvalidState indicates a resume was attempted on a session that is
	// not awaiting review.
	ErrInvalidState = errors.New("session is not awaiting review")

	// ErrSessionNotFound indicates the session ID has no persisted state.
	ErrSessionNotFound = errors.New("session not found")

	// ErrSessionExists indicates a start was attempted with the ID of a
	// session that is still in progress.
	ErrSessionExists = errors.New("session already exists")

	// ErrUnsupportedType indicates no normaliser handles the document type.
	ErrUnsupportedType = errors.New("unsupported document type")

	// ErrCorruptDocument indicates the document bytes could not be parsed.
	ErrCorruptDocument = errors.New("corrupt document")

	// ErrLLMUnavailable indicates the LLM service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrRateLimited indicates the provider rate limit was exceeded.
	ErrRateLimited = errors.New("rate limited")
)
