package mcp

import (
	"context"

	"github.com/custodia-labs/summa-cli/internal/core/domain"
	"github.com/custodia-labs/summa-cli/internal/core/ports/driving"
)

// mockAnalysisService is a mock implementation of driving.AnalysisService.
type mockAnalysisService struct {
	session  *domain.Session
	sessions []domain.Session
	err      error

	lastRequest  driving.AnalyzeRequest
	lastApproved bool
	lastFeedback string
}

func (m *mockAnalysisService) Start(_ context.Context, req driving.AnalyzeRequest) (*domain.Session, error) {
	m.lastRequest = req
	return m.session, m.err
}

func (m *mockAnalysisService) Resume(_ context.Context, _ string, approved bool, feedback string) (*domain.Session, error) {
	m.lastApproved = approved
	m.lastFeedback = feedback
	return m.session, m.err
}

func (m *mockAnalysisService) Get(_ context.Context, _ string) (*domain.Session, error) {
	return m.session, m.err
}

func (m *mockAnalysisService) List(_ context.Context) ([]domain.Session, error) {
	return m.sessions, m.err
}
