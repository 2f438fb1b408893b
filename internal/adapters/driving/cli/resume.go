package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var resumeCmd = &cobra.Command{
	Use:   "resume <session-id>",
	Short: "Apply a decision to a session awaiting review",
	Long: `Apply an approve or reject decision to a session suspended at the
review gate, without the interactive screen.

Approval completes the session with the stored summary; nothing is
regenerated. Rejection terminates the session.

Examples:
  summa resume q3-2026 --approve
  summa resume q3-2026 --reject --feedback "needs more detail"`,
	Args: cobra.ExactArgs(1),
	RunE: runResume,
}

// Flags for resume.
var (
	resumeApprove  bool
	resumeReject   bool
	resumeFeedback string
)

func init() {
	resumeCmd.Flags().BoolVar(&resumeApprove, "approve", false, "Approve the analysis")
	resumeCmd.Flags().BoolVar(&resumeReject, "reject", false, "Reject the analysis")
	resumeCmd.Flags().StringVar(&resumeFeedback, "feedback", "", "Free-text note recorded with the decision")

	rootCmd.AddCommand(resumeCmd)
}

func runResume(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}
	if resumeApprove == resumeReject {
		return errors.New("specify exactly one of --approve or --reject")
	}

	session, err := analysisService.Resume(cmd.Context(), args[0], resumeApprove, resumeFeedback)
	if err != nil {
		return fmt.Errorf("resume failed: %w", err)
	}

	printSessionOutcome(cmd, session)
	return nil
}
