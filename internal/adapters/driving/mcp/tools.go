package mcp

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/custodia-labs/summa-cli/internal/core/domain"
	"github.com/custodia-labs/summa-cli/internal/core/ports/driving"
)

// AnalyzeInput is the input schema for the analyze_document tool.
type AnalyzeInput struct {
	URI       string `json:"uri" jsonschema:"document location (local path or github://owner/repo/path URI)"`
	Rules     string `json:"rules,omitempty" jsonschema:"free-text validation rules the summary must satisfy"`
	SessionID string `json:"session_id,omitempty" jsonschema:"session identifier (generated when omitted)"`
}

// ResumeInput is the input schema for the resume_analysis tool.
type ResumeInput struct {
	SessionID string `json:"session_id" jsonschema:"identifier of the session awaiting review"`
	Approved  bool   `json:"approved" jsonschema:"true to approve the analysis, false to reject it"`
	Feedback  string `json:"feedback,omitempty" jsonschema:"free-text note recorded with the decision"`
}

// GetSessionInput is the input schema for the get_session tool.
type GetSessionInput struct {
	SessionID string `json:"session_id" jsonschema:"identifier of the session to fetch"`
}

// SessionOutput is the shared output schema for all session-returning tools.
type SessionOutput struct {
	SessionID   string `json:"session_id"`
	Status      string `json:"status"`
	SourceURI   string `json:"source_uri,omitempty"`
	Summary     string `json:"summary,omitempty"`
	ReviewText  string `json:"review_text,omitempty"`
	FinalResult string `json:"final_result,omitempty"`
	Error       string `json:"error,omitempty"`
}

// registerTools registers all tool handlers with the MCP server.
func (s *Server) registerTools() {
	mcp.AddTool(s.server, &mcp.Tool{
		Name: "analyze_document",
		Description: "Run the full transcript analysis pipeline on a document. " +
			"Returns a completed summary, or a session awaiting human review when " +
			"the validation rules are not satisfied.",
	}, s.handleAnalyze)

	mcp.AddTool(s.server, &mcp.Tool{
		Name: "resume_analysis",
		Description: "Apply a human approve/reject decision to a session " +
			"suspended at the review gate.",
	}, s.handleResume)

	mcp.AddTool(s.server, &mcp.Tool{
		Name:        "get_session",
		Description: "Fetch the persisted state of an analysis session.",
	}, s.handleGetSession)
}

// handleAnalyze handles the analyze_document tool invocation.
func (s *Server) handleAnalyze(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input AnalyzeInput,
) (*mcp.CallToolResult, SessionOutput, error) {
	req := driving.AnalyzeRequest{
		SessionID: input.SessionID,
		URI:       input.URI,
		Rules:     input.Rules,
	}

	session, err := s.ports.Analysis.Start(ctx, req)
	if err != nil {
		// A failed session still carries useful state for the caller.
		if session != nil {
			return nil, toOutput(session), nil
		}
		return nil, SessionOutput{}, err
	}

	return nil, toOutput(session), nil
}

// handleResume handles the resume_analysis tool invocation.
func (s *Server) handleResume(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input ResumeInput,
) (*mcp.CallToolResult, SessionOutput, error) {
	session, err := s.ports.Analysis.Resume(ctx, input.SessionID, input.Approved, input.Feedback)
	if err != nil {
		return nil, SessionOutput{}, err
	}

	return nil, toOutput(session), nil
}

// handleGetSession handles the get_session tool invocation.
func (s *Server) handleGetSession(
	ctx context.Context,
	_ *mcp.CallToolRequest,
	input GetSessionInput,
) (*mcp.CallToolResult, SessionOutput, error) {
	session, err := s.ports.Analysis.Get(ctx, input.SessionID)
	if err != nil {
		return nil, SessionOutput{}, err
	}

	return nil, toOutput(session), nil
}

// toOutput projects a session onto the tool output schema.
func toOutput(session *domain.Session) SessionOutput {
	out := SessionOutput{
		SessionID:   session.ID,
		Status:      string(session.Status),
		SourceURI:   session.SourceURI,
		FinalResult: session.FinalResult,
		Error:       session.Err,
	}

	// The stored summary is only surfaced once it is final or under review.
	switch session.Status {
	case domain.StatusCompleted:
		out.Summary = session.Summary
	case domain.StatusAwaitingReview:
		out.Summary = session.Summary
		out.ReviewText = session.ReviewText
	}

	return out
}
