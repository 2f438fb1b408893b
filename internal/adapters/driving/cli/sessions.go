package cli

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List analysis sessions",
	Long: `List all analysis sessions, most recently updated first.

Use the subcommands to inspect or remove a single session.`,
	RunE: runSessionsList,
}

var sessionsShowCmd = &cobra.Command{
	Use:   "show <session-id>",
	Short: "Show the full state of a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsShow,
}

var sessionsDeleteCmd = &cobra.Command{
	Use:   "delete <session-id>",
	Short: "Delete a session",
	Args:  cobra.ExactArgs(1),
	RunE:  runSessionsDelete,
}

func init() {
	sessionsCmd.AddCommand(sessionsShowCmd)
	sessionsCmd.AddCommand(sessionsDeleteCmd)
	rootCmd.AddCommand(sessionsCmd)
}

func runSessionsList(cmd *cobra.Command, _ []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	sessions, err := analysisService.List(cmd.Context())
	if err != nil {
		return fmt.Errorf("listing sessions: %w", err)
	}

	if len(sessions) == 0 {
		cmd.Println("No sessions.")
		cmd.Println("Start one with: summa analyze <uri>")
		return nil
	}

	cmd.Printf("%-38s %-16s %-20s %s\n", "ID", "STATUS", "UPDATED", "SOURCE")
	for i := range sessions {
		cmd.Printf("%-38s %-16s %-20s %s\n",
			sessions[i].ID,
			sessions[i].Status,
			sessions[i].UpdatedAt.Local().Format("2006-01-02 15:04:05"),
			sessions[i].SourceURI,
		)
	}

	return nil
}

func runSessionsShow(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	session, err := analysisService.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("session not found: %w", err)
	}

	cmd.Printf("Session:  %s\n", session.ID)
	cmd.Printf("Source:   %s\n", session.SourceURI)
	cmd.Printf("Status:   %s\n", session.Status)
	cmd.Printf("Created:  %s\n", session.CreatedAt.Format(time.RFC3339))
	cmd.Printf("Updated:  %s\n", session.UpdatedAt.Format(time.RFC3339))
	if session.Rules != "" {
		cmd.Printf("Rules:    %s\n", session.Rules)
	}
	if len(session.Chunks) > 0 {
		cmd.Printf("Chunks:   %d\n", len(session.Chunks))
	}
	if session.Err != "" {
		cmd.Printf("Error:    %s\n", session.Err)
	}
	if session.Feedback != "" {
		cmd.Printf("Feedback: %s\n", session.Feedback)
	}

	switch {
	case session.FinalResult != "":
		cmd.Println()
		cmd.Println(session.FinalResult)
	case session.ReviewText != "":
		cmd.Println()
		cmd.Println(session.ReviewText)
		cmd.Println()
		cmd.Printf("Resolve with: summa review %s\n", session.ID)
	}

	return nil
}

func runSessionsDelete(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}
	if checkpointStore == nil {
		return errors.New("checkpoint store not configured")
	}

	// Verify it exists so the user gets a clear message for typos.
	if _, err := analysisService.Get(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("session not found: %w", err)
	}

	if err := checkpointStore.DeleteSession(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}

	cmd.Printf("Deleted session %s\n", args[0])
	return nil
}
