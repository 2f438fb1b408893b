// Package cli provides the cobra command tree for the summa binary. Services
// are constructed in cmd/summa and injected through the Set functions before
// Execute is called.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/summa-cli/internal/core/ports/driven"
	"github.com/custodia-labs/summa-cli/internal/core/ports/driving"
	"github.com/custodia-labs/summa-cli/internal/logger"
)

// version is stamped by the build; overridden via SetVersion.
var version = "dev"

// Injected services. Commands check for nil and fail with a clear message so
// a partially wired binary degrades instead of panicking.
var (
	analysisService driving.AnalysisService
	configStore     driven.ConfigStore
	checkpointStore driven.CheckpointStore
)

var verboseFlag bool

var rootCmd = &cobra.Command{
	Use:   "summa",
	Short: "Analyse long transcripts with a map-reduce LLM pipeline",
	Long: `Summa analyses long documents (earnings-call transcripts and similar)
through a staged pipeline: the text is chunked, each chunk is mined for
financial data in parallel, the results are merged and summarised, and the
summary is judged against your rules. When the rules are not satisfied the
session suspends for human review and can be resumed later.

Get started:
  summa auth set                      # configure an LLM provider
  summa analyze transcript.txt        # run an analysis
  summa sessions                      # list past and suspended sessions`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verboseFlag)
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(
		&verboseFlag, "verbose", "v", false, "Enable verbose logging to stderr")
}

// Execute runs the root command. The context is threaded through to every
// subcommand so signal-driven cancellation reaches long-running pipelines.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// SetVersion sets the version string printed by the version command.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

// SetAnalysisService injects the analysis service.
func SetAnalysisService(svc driving.AnalysisService) {
	analysisService = svc
}

// SetConfigStore injects the configuration store.
func SetConfigStore(store driven.ConfigStore) {
	configStore = store
}

// SetCheckpointStore injects the checkpoint store for session management.
func SetCheckpointStore(store driven.CheckpointStore) {
	checkpointStore = store
}
