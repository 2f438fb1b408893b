package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/summa-cli/internal/core/domain"
	"github.com/custodia-labs/summa-cli/internal/core/ports/driving"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <uri>",
	Short: "Run the analysis pipeline on a document",
	Long: `Run the full analysis pipeline on a document.

The URI may be a local file path or a github://owner/repo/path[@ref] URI.
Supported formats: plain text, markdown, docx and pdf (requires pdftotext).

Rules are free-text requirements the summary must satisfy, for example
"mention EPS and full-year guidance". When the rules are not satisfied the
session suspends for review; resolve it with 'summa review <session-id>'.

Examples:
  summa analyze transcript.txt
  summa analyze transcript.txt --rules "mention EPS"
  summa analyze github://acme/filings/q3/transcript.md --rules-file rules.txt
  summa analyze transcript.txt --session q3-2026`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

// Flags for analyze.
var (
	analyzeRules     string
	analyzeRulesFile string
	analyzeSessionID string
)

func init() {
	analyzeCmd.Flags().StringVar(
		&analyzeRules, "rules", "", "Free-text validation rules for the summary")
	analyzeCmd.Flags().StringVar(
		&analyzeRulesFile, "rules-file", "", "File containing the validation rules")
	analyzeCmd.Flags().StringVar(
		&analyzeSessionID, "session", "", "Session identifier (generated if omitted)")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	rules, err := resolveRules()
	if err != nil {
		return err
	}

	req := driving.AnalyzeRequest{
		SessionID: analyzeSessionID,
		URI:       args[0],
		Rules:     rules,
		Progress:  progressPrinter(cmd),
	}

	session, err := analysisService.Start(cmd.Context(), req)
	if err != nil {
		if session != nil {
			cmd.Printf("\nSession %s failed: %s\n", session.ID, session.Err)
		}
		return fmt.Errorf("analysis failed: %w", err)
	}

	printSessionOutcome(cmd, session)
	return nil
}

// resolveRules merges the --rules and --rules-file flags.
func resolveRules() (string, error) {
	if analyzeRulesFile == "" {
		return analyzeRules, nil
	}
	if analyzeRules != "" {
		return "", errors.New("use either --rules or --rules-file, not both")
	}

	content, err := os.ReadFile(analyzeRulesFile)
	if err != nil {
		return "", fmt.Errorf("reading rules file: %w", err)
	}
	return string(content), nil
}

// progressPrinter streams stage completions to the command output.
func progressPrinter(cmd *cobra.Command) driving.ProgressFunc {
	return func(event domain.ProgressEvent) {
		switch event.Stage {
		case domain.StatusExtracting:
			cmd.Printf("Extracted %v characters\n", event.Detail["chars"])
		case domain.StatusChunking:
			cmd.Printf("Split into %v chunks\n", event.Detail["chunks"])
		case domain.StatusMapping:
			if done, ok := event.Detail["chunks_done"]; ok {
				cmd.Printf("\rAnalysing chunk %v/%v", done, event.Detail["chunks_total"])
			} else {
				cmd.Printf("\rAnalysed %v chunks (%v structured)\n",
					event.Detail["chunks_total"], event.Detail["chunks_structured"])
			}
		case domain.StatusAggregating:
			cmd.Printf("Aggregated %v distinct metrics\n", event.Detail["metrics"])
		case domain.StatusSummarising:
			cmd.Println("Summary generated")
		case domain.StatusValidating:
			cmd.Printf("Rules satisfied: %v\n", event.Detail["satisfied"])
		}
	}
}

// printSessionOutcome renders the terminal or suspended state of a session.
func printSessionOutcome(cmd *cobra.Command, session *domain.Session) {
	switch session.Status {
	case domain.StatusCompleted:
		cmd.Println()
		cmd.Println("Analysis complete.")
		cmd.Println()
		cmd.Println(session.FinalResult)

	case domain.StatusAwaitingReview:
		cmd.Println()
		cmd.Println("Analysis needs review.")
		cmd.Println()
		cmd.Println(session.ReviewText)
		cmd.Println()
		cmd.Printf("Resolve with: summa review %s\n", session.ID)

	case domain.StatusRejected:
		cmd.Println()
		cmd.Println(session.FinalResult)

	default:
		cmd.Printf("\nSession %s is %s\n", session.ID, session.Status)
	}
}
