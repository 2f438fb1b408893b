package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/summa-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/summa-cli/internal/core/domain"
)

var reviewCmd = &cobra.Command{
	Use:   "review <session-id>",
	Short: "Review a suspended session interactively",
	Long: `Open the interactive review screen for a session suspended at the
human gate. The screen shows the rule assessments, the judge's
recommendations and the candidate summary.

Controls:
  a     - Approve the analysis
  r     - Reject the analysis
  enter - Confirm decision with the entered feedback
  q     - Quit without deciding`,
	Args: cobra.ExactArgs(1),
	RunE: runReview,
}

func init() {
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	sessionID := args[0]
	session, err := analysisService.Get(cmd.Context(), sessionID)
	if err != nil {
		return fmt.Errorf("session not found: %w", err)
	}
	if session.Status != domain.StatusAwaitingReview {
		return fmt.Errorf("session %s is %s, nothing to review", sessionID, session.Status)
	}

	approved, feedback, decided, err := tui.RunReview(session)
	if err != nil {
		return err
	}
	if !decided {
		cmd.Println("No decision made; session still awaiting review.")
		return nil
	}

	resumed, err := analysisService.Resume(cmd.Context(), sessionID, approved, feedback)
	if err != nil {
		return fmt.Errorf("applying decision: %w", err)
	}

	printSessionOutcome(cmd, resumed)
	return nil
}
