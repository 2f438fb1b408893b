package cli

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/summa-cli/internal/connectors/filesystem"
	"github.com/custodia-labs/summa-cli/internal/core/domain"
	"github.com/custodia-labs/summa-cli/internal/core/ports/driving"
)

var watchCmd = &cobra.Command{
	Use:   "watch <directory>",
	Short: "Analyse documents dropped into a directory",
	Long: `Watch a directory and analyse every supported document dropped into
it. The session ID is derived from the filename, so re-dropping a file with
the same name reuses its session once the previous run has finished.

The command runs until interrupted.

Example:
  summa watch ~/transcripts --rules "mention EPS"`,
	Args: cobra.ExactArgs(1),
	RunE: runWatch,
}

// Flags for watch.
var (
	watchRules     string
	watchRulesFile string
)

func init() {
	watchCmd.Flags().StringVar(
		&watchRules, "rules", "", "Free-text validation rules for each summary")
	watchCmd.Flags().StringVar(
		&watchRulesFile, "rules-file", "", "File containing the validation rules")

	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	if analysisService == nil {
		return errors.New("analysis service not configured")
	}

	analyzeRules = watchRules
	analyzeRulesFile = watchRulesFile
	rules, err := resolveRules()
	if err != nil {
		return err
	}

	watcher, err := filesystem.NewWatcher(args[0])
	if err != nil {
		return err
	}
	defer watcher.Close() //nolint:errcheck

	ctx := cmd.Context()
	events := watcher.Watch(ctx)

	cmd.Printf("Watching %s for documents. Press Ctrl+C to stop.\n", args[0])

	for {
		select {
		case <-ctx.Done():
			cmd.Println("\nStopped watching.")
			return nil

		case path := <-events:
			cmd.Printf("\n--- %s ---\n", filepath.Base(path))

			req := driving.AnalyzeRequest{
				SessionID: sessionIDForFile(path),
				URI:       path,
				Rules:     rules,
				Progress:  progressPrinter(cmd),
			}

			session, err := analysisService.Start(ctx, req)
			if err != nil {
				// One bad document must not stop the watch loop.
				if errors.Is(err, domain.ErrSessionExists) {
					cmd.Printf("Session %s already active, skipping\n", req.SessionID)
				} else {
					cmd.Printf("Analysis failed: %v\n", err)
				}
				continue
			}

			printSessionOutcome(cmd, session)
		}
	}
}

// sessionIDForFile derives a stable session ID from the filename.
func sessionIDForFile(path string) string {
	base := filepath.Base(path)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	base = strings.ToLower(base)
	base = strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			return r
		default:
			return '-'
		}
	}, base)
	return fmt.Sprintf("watch-%s", base)
}
