package services

import "github.com/custodia-labs/summa-cli/internal/core/ports/driven"

// defaultExtractPrompt is the fallback per-chunk extraction system prompt
// when no PromptStore is configured.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
const defaultExtractPrompt = `You are an expert financial analyst. Your task is to extract key financial metrics, insights, and forward-looking statements from the provided text chunk of an earnings call transcript.

Focus on the following:
- Key Financial Metrics: Revenue, Net Income, EPS, Margins, etc.
- Guidance/Outlook: Any forward-looking statements about future performance.
- Key Business Drivers: What is driving performance? New products, market trends, etc.
- Risks and Challenges: Any mentioned risks or headwinds.
- Management Tone: Is the tone optimistic, cautious, or pessimistic?

Present the extracted information in a structured JSON format. For example:
{
  "metrics": [{"name": "Revenue", "value": "10B", "period": "Q4 2024"}],
  "guidance": "Company expects 10% revenue growth in the next quarter.",
  "key_drivers": ["Strong cloud segment growth", "New AI product adoption"],
  "risks": ["Macroeconomic uncertainty", "Supply chain constraints"],
  "tone": "Optimistic"
}`

// defaultSummarisePrompt is the fallback synthesis prompt. The %s placeholder
// receives the serialised aggregate.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
const defaultSummarisePrompt = `You are a senior financial analyst. Your task is to synthesize the extracted financial information into a concise, easy-to-read summary.
The information was extracted from a long earnings call transcript. Focus on the most critical insights.

Extracted Information:
` + "```json\n%s\n```" + `

Your Task:
Generate a final summary covering the following points:
1. Overall Performance: A brief overview of the company's performance in the quarter.
2. Key Financial Highlights: List the most important metrics (e.g., Revenue, EPS).
3. Future Outlook: Summarize the company's guidance and future expectations.
4. Key Themes: Mention the main business drivers and risks discussed.

Keep the summary professional and to the point. Use bullet points for clarity.`

// defaultValidatePrompt is the fallback judging prompt. The placeholders
// receive the rules, the summary and the serialised aggregate, in that order.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
const defaultValidatePrompt = `You are a financial analysis validator. Your task is to check if the analysis results satisfy the given rules.

Analysis Rules:
%s

Final Summary:
%s

Extracted Data:
` + "```json\n%s\n```" + `

Your Task:
Evaluate whether the analysis results satisfy each rule. For each rule:
1. Check if it's satisfied based on the summary and extracted data
2. Provide specific feedback on what's missing or needs improvement

Respond in JSON format:
{
    "overall_satisfaction": true/false,
    "rule_assessments": [
        {
            "rule": "Rule description",
            "satisfied": true/false,
            "feedback": "Specific feedback"
        }
    ],
    "recommendations": ["List of recommendations for improvement"]
}`

// loadPrompt loads a prompt from the store, falling back to the default if
// unavailable.
func loadPrompt(store driven.PromptStore, name, fallback string) string {
	if store == nil {
		return fallback
	}
	prompt, err := store.Load(name)
	if err != nil {
		return fallback
	}
	return prompt
}
