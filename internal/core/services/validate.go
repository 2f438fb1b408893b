package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/custodia-labs/summa-cli/internal/core/domain"
	"github.com/custodia-labs/summa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/summa-cli/internal/logger"
)

// validateTemperature keeps the judge near-deterministic.
const validateTemperature = 0.1

// validate checks the summary and aggregate against the caller's rules using
// an LLM judge. A blank rule set trivially passes without an LLM call.
//
// When the judge cannot be consulted or its reply cannot be parsed, the
// verdict is unsatisfied with a diagnostic attached: "could not confirm"
// routes to human review rather than silently passing.
func (a *Analyzer) validate(ctx context.Context, summary string, agg *domain.AggregatedExtract, rules string) *domain.Verdict {
	if strings.TrimSpace(rules) == "" {
		logger.Debug("no rules specified, skipping validation")
		return &domain.Verdict{Satisfied: true}
	}

	serialised, err := json.MarshalIndent(agg, "", "  ")
	if err != nil {
		return &domain.Verdict{
			Satisfied:  false,
			Diagnostic: fmt.Sprintf("serialise aggregate: %v", err),
		}
	}

	promptTemplate := loadPrompt(a.promptStore, driven.PromptValidate, defaultValidatePrompt)
	prompt := fmt.Sprintf(promptTemplate, rules, summary, string(serialised))

	messages := []driven.ChatMessage{
		{Role: "system", Content: "You are a financial analysis validator. Respond only in valid JSON format."},
		{Role: "user", Content: prompt},
	}

	reply, err := a.llm.Chat(ctx, messages, driven.ChatOptions{Temperature: validateTemperature})
	if err != nil {
		logger.Warn("rule validation call failed: %v", err)
		return &domain.Verdict{
			Satisfied:  false,
			Diagnostic: fmt.Sprintf("validation error: %v", err),
		}
	}

	var verdict domain.Verdict
	if err := decodeLenientJSON(reply, &verdict); err != nil {
		logger.Warn("judge reply not parseable: %v", err)
		return &domain.Verdict{
			Satisfied:  false,
			Diagnostic: "could not parse judge response",
		}
	}

	return &verdict
}

// formatReview renders the human-readable review request shown at the gate.
func formatReview(verdict *domain.Verdict, summary string) string {
	var b strings.Builder
	b.WriteString("Analysis requires human review:\n\n")

	if len(verdict.Assessments) > 0 {
		b.WriteString("Rules Assessment:\n")
		for _, assessment := range verdict.Assessments {
			status := "PASS"
			if !assessment.Satisfied {
				status = "FAIL"
			}
			fmt.Fprintf(&b, "[%s] %s: %s\n", status, assessment.Rule, assessment.Feedback)
		}
	}

	if len(verdict.Recommendations) > 0 {
		b.WriteString("\nRecommendations:\n")
		for _, rec := range verdict.Recommendations {
			fmt.Fprintf(&b, "- %s\n", rec)
		}
	}

	if verdict.Diagnostic != "" {
		fmt.Fprintf(&b, "\nDiagnostic: %s\n", verdict.Diagnostic)
	}

	b.WriteString("\nAnalysis Summary:\n")
	if summary == "" {
		summary = "No summary available"
	}
	b.WriteString(summary)

	return b.String()
}
