package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/summa-cli/internal/core/domain"
)

func TestServer_handleAnalyze(t *testing.T) {
	ctx := context.Background()

	t.Run("completed session returns summary", func(t *testing.T) {
		mockAnalysis := &mockAnalysisService{
			session: &domain.Session{
				ID:          "session-1",
				SourceURI:   "/docs/transcript.txt",
				Status:      domain.StatusCompleted,
				Summary:     "Strong quarter overall.",
				FinalResult: "Strong quarter overall.",
			},
		}

		server, err := NewServer(&Ports{Analysis: mockAnalysis})
		require.NoError(t, err)

		input := AnalyzeInput{URI: "/docs/transcript.txt", Rules: "mention EPS"}
		_, output, err := server.handleAnalyze(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "session-1", output.SessionID)
		assert.Equal(t, "completed", output.Status)
		assert.Equal(t, "Strong quarter overall.", output.Summary)
		assert.Empty(t, output.ReviewText)
		assert.Equal(t, "/docs/transcript.txt", mockAnalysis.lastRequest.URI)
		assert.Equal(t, "mention EPS", mockAnalysis.lastRequest.Rules)
	})

	t.Run("awaiting review exposes review text", func(t *testing.T) {
		mockAnalysis := &mockAnalysisService{
			session: &domain.Session{
				ID:         "session-2",
				Status:     domain.StatusAwaitingReview,
				Summary:    "Draft summary",
				ReviewText: "[FAIL] mention EPS: EPS missing",
			},
		}

		server, err := NewServer(&Ports{Analysis: mockAnalysis})
		require.NoError(t, err)

		_, output, err := server.handleAnalyze(ctx, nil, AnalyzeInput{URI: "/doc.txt"})

		require.NoError(t, err)
		assert.Equal(t, "awaiting_review", output.Status)
		assert.Contains(t, output.ReviewText, "[FAIL]")
		assert.Equal(t, "Draft summary", output.Summary)
	})

	t.Run("failed session state is returned, not an error", func(t *testing.T) {
		mockAnalysis := &mockAnalysisService{
			session: &domain.Session{
				ID:     "session-3",
				Status: domain.StatusFailed,
				Err:    "extract text: no content",
			},
			err: errors.New("extract text: no content"),
		}

		server, err := NewServer(&Ports{Analysis: mockAnalysis})
		require.NoError(t, err)

		_, output, err := server.handleAnalyze(ctx, nil, AnalyzeInput{URI: "/empty.txt"})

		require.NoError(t, err)
		assert.Equal(t, "failed", output.Status)
		assert.Contains(t, output.Error, "no content")
	})

	t.Run("error with no session propagates", func(t *testing.T) {
		mockAnalysis := &mockAnalysisService{
			err: domain.ErrSessionExists,
		}

		server, err := NewServer(&Ports{Analysis: mockAnalysis})
		require.NoError(t, err)

		_, _, err = server.handleAnalyze(ctx, nil, AnalyzeInput{URI: "/doc.txt"})
		assert.ErrorIs(t, err, domain.ErrSessionExists)
	})
}

func TestServer_handleResume(t *testing.T) {
	ctx := context.Background()

	t.Run("approval returns final result", func(t *testing.T) {
		mockAnalysis := &mockAnalysisService{
			session: &domain.Session{
				ID:          "session-1",
				Status:      domain.StatusCompleted,
				Summary:     "Approved summary",
				FinalResult: "Approved summary",
			},
		}

		server, err := NewServer(&Ports{Analysis: mockAnalysis})
		require.NoError(t, err)

		input := ResumeInput{SessionID: "session-1", Approved: true, Feedback: "looks good"}
		_, output, err := server.handleResume(ctx, nil, input)

		require.NoError(t, err)
		assert.Equal(t, "completed", output.Status)
		assert.Equal(t, "Approved summary", output.FinalResult)
		assert.True(t, mockAnalysis.lastApproved)
		assert.Equal(t, "looks good", mockAnalysis.lastFeedback)
	})

	t.Run("invalid state propagates", func(t *testing.T) {
		mockAnalysis := &mockAnalysisService{err: domain.ErrInvalidState}

		server, err := NewServer(&Ports{Analysis: mockAnalysis})
		require.NoError(t, err)

		_, _, err = server.handleResume(ctx, nil, ResumeInput{SessionID: "done"})
		assert.ErrorIs(t, err, domain.ErrInvalidState)
	})
}

func TestServer_handleGetSession(t *testing.T) {
	ctx := context.Background()

	t.Run("returns session state", func(t *testing.T) {
		mockAnalysis := &mockAnalysisService{
			session: &domain.Session{
				ID:        "session-1",
				SourceURI: "/doc.txt",
				Status:    domain.StatusRejected,
				Feedback:  "needs more detail",
			},
		}

		server, err := NewServer(&Ports{Analysis: mockAnalysis})
		require.NoError(t, err)

		_, output, err := server.handleGetSession(ctx, nil, GetSessionInput{SessionID: "session-1"})

		require.NoError(t, err)
		assert.Equal(t, "rejected", output.Status)
		assert.Equal(t, "/doc.txt", output.SourceURI)
	})

	t.Run("not found propagates", func(t *testing.T) {
		mockAnalysis := &mockAnalysisService{err: domain.ErrSessionNotFound}

		server, err := NewServer(&Ports{Analysis: mockAnalysis})
		require.NoError(t, err)

		_, _, err = server.handleGetSession(ctx, nil, GetSessionInput{SessionID: "missing"})
		assert.ErrorIs(t, err, domain.ErrSessionNotFound)
	})
}
