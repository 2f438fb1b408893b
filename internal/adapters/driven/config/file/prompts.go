package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/custodia-labs/summa-cli/internal/core/ports/driven"
)

// Ensure PromptStore implements the interface.
var _ driven.PromptStore = (*PromptStore)(nil)

// PromptStore loads LLM prompts from user-editable files on disk.
// Prompts are loaded from a configurable directory with fallback to embedded defaults.
//
// The store uses lazy initialisation - files are only created when first accessed,
// not in the constructor. This makes testing easier and avoids unexpected I/O.
type PromptStore struct {
	mu        sync.RWMutex
	promptDir string
	cache     map[string]string
	initOnce  sync.Once
	initErr   error
}

// defaultPrompts contains embedded default prompts.
// These are used when user files don't exist and as the initial content for new files.
//
//nolint:lll // Prompt content is intentionally long and should not be wrapped.
var defaultPrompts = map[string]string{
	driven.PromptExtract: `You are an expert financial analyst. Your task is to extract key financial metrics, insights, and forward-looking statements from the provided text chunk of an earnings call transcript.

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
}`,

	driven.PromptSummarise: `You are a senior financial analyst. Your task is to synthesize the extracted financial information into a concise, easy-to-read summary.
The information was extracted from a long earnings call transcript. Focus on the most critical insights.

Extracted Information:
` + "```json\n%s\n```" + `

Your Task:
Generate a final summary covering the following points:
1. Overall Performance: A brief overview of the company's performance in the quarter.
2. Key Financial Highlights: List the most important metrics (e.g., Revenue, EPS).
3. Future Outlook: Summarize the company's guidance and future expectations.
4. Key Themes: Mention the main business drivers and risks discussed.

Keep the summary professional and to the point. Use bullet points for clarity.`,

	driven.PromptValidate: `You are a financial analysis validator. Your task is to check if the analysis results satisfy the given rules.

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
}`,
}

// NewPromptStore creates a new file-based prompt store.
// If promptDir is empty, defaults to ~/.summa/prompts/.
//
// The constructor does not perform any I/O - directory creation and
// file writes happen lazily on first Load() call.
func NewPromptStore(promptDir string) (*PromptStore, error) {
	if promptDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("get home directory: %w", err)
		}
		promptDir = filepath.Join(home, ".summa", "prompts")
	}

	return &PromptStore{
		promptDir: promptDir,
		cache:     make(map[string]string),
	}, nil
}

// Load returns the prompt template for the given name.
// On first call, initialises the prompt directory and creates default files.
// Returns cached value if available, otherwise loads from file.
// Falls back to embedded default if file doesn't exist.
func (s *PromptStore) Load(name string) (string, error) {
	// Ensure directory and defaults exist (lazy init)
	s.initOnce.Do(s.initialise)
	if s.initErr != nil {
		// Fall back to embedded defaults if init failed
		if prompt, ok := defaultPrompts[name]; ok {
			return prompt, nil
		}
		return "", fmt.Errorf("prompt store init failed: %w", s.initErr)
	}

	// Check cache first (read lock)
	s.mu.RLock()
	if prompt, ok := s.cache[name]; ok {
		s.mu.RUnlock()
		return prompt, nil
	}
	s.mu.RUnlock()

	// Load from file (no lock held during I/O)
	prompt, err := s.loadFromFile(name)
	if err != nil {
		// Fall back to embedded default
		if defaultPrompt, ok := defaultPrompts[name]; ok {
			return defaultPrompt, nil
		}
		return "", fmt.Errorf("load prompt %q: %w", name, err)
	}

	// Cache the result (write lock)
	// Use double-check pattern to avoid overwriting concurrent loads
	s.mu.Lock()
	if _, ok := s.cache[name]; !ok {
		s.cache[name] = prompt
	} else {
		// Another goroutine loaded it first, use their value
		prompt = s.cache[name]
	}
	s.mu.Unlock()

	return prompt, nil
}

// Reload clears the prompt cache, forcing fresh loads from disk.
func (s *PromptStore) Reload() {
	s.mu.Lock()
	s.cache = make(map[string]string)
	s.mu.Unlock()
}

// Dir returns the prompt directory path.
func (s *PromptStore) Dir() string {
	return s.promptDir
}

// initialise creates the prompt directory and default files.
// Called once via sync.Once on first Load().
func (s *PromptStore) initialise() {
	// Create directory
	if err := os.MkdirAll(s.promptDir, 0700); err != nil {
		s.initErr = fmt.Errorf("create prompt directory: %w", err)
		return
	}

	// Create default prompt files (only if they don't exist)
	for name, content := range defaultPrompts {
		path := filepath.Join(s.promptDir, name+".txt")
		if _, err := os.Stat(path); os.IsNotExist(err) {
			if err := os.WriteFile(path, []byte(content), 0600); err != nil {
				s.initErr = fmt.Errorf("create default prompt %q: %w", name, err)
				return
			}
		}
	}

	// Create README
	if err := s.createReadme(); err != nil {
		s.initErr = err
	}
}

// loadFromFile reads a prompt from disk.
func (s *PromptStore) loadFromFile(name string) (string, error) {
	path := filepath.Join(s.promptDir, name+".txt")
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

// createReadme writes a README file explaining the prompts directory.
func (s *PromptStore) createReadme() error {
	path := filepath.Join(s.promptDir, "README.md")
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil // Already exists or stat error (ignore)
	}

	content := `# Summa Prompts

This directory contains customisable prompts used by Summa's analysis pipeline.

## Files

- ` + "`extract.txt`" + ` - Per-chunk extraction of metrics, guidance, drivers, risks and tone
- ` + "`summarise.txt`" + ` - Synthesises the aggregated extraction into the final summary
- ` + "`validate.txt`" + ` - Judges the summary against user-supplied rules

## Customisation

Edit any file to customise LLM behaviour. Changes take effect on the next
command.

## Format Placeholders

Some prompts use Go fmt placeholders:
- ` + "`%s`" + ` - String (e.g., the rules, summary or extracted data)

The validate prompt takes three placeholders in order: rules, summary,
extracted data. Ensure customised prompts maintain placeholders in the
correct positions.
`
	return os.WriteFile(path, []byte(content), 0600)
}
