package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/summa-cli/internal/core/domain"
	"github.com/custodia-labs/summa-cli/internal/core/ports/driven"
)

func TestValidate_EmptyRulesShortCircuits(t *testing.T) {
	llm := &mockLLM{chatFn: func(_ []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
		t.Fatal("LLM must not be called for empty rules")
		return "", nil
	}}
	analyzer := newTestAnalyzer(llm, domain.AnalysisSettings{})
	agg := &domain.AggregatedExtract{Risks: []string{"macro"}}

	for _, rules := range []string{"", "   ", "\n\t"} {
		verdict := analyzer.validate(context.Background(), "summary", agg, rules)
		require.NotNil(t, verdict)
		assert.True(t, verdict.Satisfied)
		assert.Empty(t, verdict.Assessments)
		assert.Empty(t, verdict.Recommendations)
	}
	assert.Zero(t, llm.callCount())
}

func TestValidate_ParsesJudgeVerdict(t *testing.T) {
	llm := &mockLLM{chatFn: func(messages []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
		assert.Contains(t, messages[1].Content, "mention revenue")
		return `{
			"overall_satisfaction": false,
			"rule_assessments": [{"rule": "mention revenue", "satisfied": false, "feedback": "revenue missing"}],
			"recommendations": ["add the revenue figure"]
		}`, nil
	}}
	analyzer := newTestAnalyzer(llm, domain.AnalysisSettings{})

	verdict := analyzer.validate(context.Background(), "summary", &domain.AggregatedExtract{}, "mention revenue")

	assert.False(t, verdict.Satisfied)
	require.Len(t, verdict.Assessments, 1)
	assert.Equal(t, "revenue missing", verdict.Assessments[0].Feedback)
	assert.Equal(t, []string{"add the revenue figure"}, verdict.Recommendations)
}

func TestValidate_TransportFailureIsConservative(t *testing.T) {
	llm := &mockLLM{chatFn: func(_ []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
		return "", errors.New("gateway timeout")
	}}
	analyzer := newTestAnalyzer(llm, domain.AnalysisSettings{})

	verdict := analyzer.validate(context.Background(), "summary", &domain.AggregatedExtract{}, "some rule")

	assert.False(t, verdict.Satisfied)
	assert.Contains(t, verdict.Diagnostic, "gateway timeout")
}

func TestValidate_ParseFailureIsConservative(t *testing.T) {
	llm := &mockLLM{chatFn: func(_ []driven.ChatMessage, _ driven.ChatOptions) (string, error) {
		return "the rules look mostly fine to me", nil
	}}
	analyzer := newTestAnalyzer(llm, domain.AnalysisSettings{})

	verdict := analyzer.validate(context.Background(), "summary", &domain.AggregatedExtract{}, "some rule")

	assert.False(t, verdict.Satisfied)
	assert.NotEmpty(t, verdict.Diagnostic)
}

func TestFormatReview(t *testing.T) {
	verdict := &domain.Verdict{
		Satisfied: false,
		Assessments: []domain.RuleAssessment{
			{Rule: "mention revenue", Satisfied: false, Feedback: "revenue missing"},
			{Rule: "be concise", Satisfied: true, Feedback: "fine"},
		},
		Recommendations: []string{"add the revenue figure"},
	}

	review := formatReview(verdict, "Summary OK")

	assert.Contains(t, review, "[FAIL] mention revenue: revenue missing")
	assert.Contains(t, review, "[PASS] be concise: fine")
	assert.Contains(t, review, "- add the revenue figure")
	assert.True(t, strings.HasSuffix(review, "Summary OK"))
}

func TestFormatReview_NoSummary(t *testing.T) {
	review := formatReview(&domain.Verdict{Diagnostic: "could not parse judge response"}, "")

	assert.Contains(t, review, "Diagnostic: could not parse judge response")
	assert.Contains(t, review, "No summary available")
}
