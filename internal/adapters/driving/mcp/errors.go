// Package mcp provides an MCP (Model Context Protocol) server adapter for Summa.
// It lets AI assistants run transcript analyses and drive the review gate.
package mcp

import "errors"

// ErrMissingAnalysisService is returned when the analysis service is not provided.
var ErrMissingAnalysisService = errors.New("mcp: analysis service is required")
