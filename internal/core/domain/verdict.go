package domain

// RuleAssessment is the judge's evaluation of one rule.
type RuleAssessment struct {
	// Rule is the rule text as the judge restated it.
	Rule string `json:"rule"`

	// Satisfied reports whether the analysis satisfies the rule.
	Satisfied bool `json:"satisfied"`

	// Feedback explains what is missing or needs improvement.
	Feedback string `json:"feedback"`
}

// Verdict is the structured output of the rule-validation judge.
// A failed parse of the judge's reply yields an unsatisfied verdict with a
// Diagnostic - "could not confirm" conservatively routes to human review
// rather than silently passing.
type Verdict struct {
	// Satisfied reports whether all rules were met.
	Satisfied bool `json:"overall_satisfaction"`

	// Assessments holds the per-rule evaluations.
	Assessments []RuleAssessment `json:"rule_assessments"`

	// Recommendations are the judge's suggestions for improvement.
	Recommendations []string `json:"recommendations"`

	// Diagnostic carries a parse or transport failure message when the
	// verdict could not be obtained from the judge. Not part of the judge's
	// own output.
	Diagnostic string `json:"diagnostic,omitempty"`
}
