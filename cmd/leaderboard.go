package cmd

import (
	"github.com/scorebench/scorebench/engine"
	"github.com/scorebench/scorebench/internal/contract"
	"github.com/scorebench/scorebench/internal/outwriter"
	"github.com/scorebench/scorebench/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// leaderboardSetupWrapper routes the optional positional argument into the
// results-dir key before the shared setup runs.
func leaderboardSetupWrapper(cmd *cobra.Command, args []string) error {
	if len(args) == 1 {
		viper.Set("results-dir", args[0])
	}
	return sharedSetup(rootCtx, cmd, nil)
}

// leaderboardCmd focused on ranking collected results.
var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard [results-dir]",
	Short: "Rank benchmarks by collected scores",
	Long: `Aggregate collected score reports per benchmark and print a ranking with
run counts, best/average/latest scores and pass rates.

By default the ranking is built from the JSON artifacts a suite run leaves
in the results directory. With --from-store it is built from the report
store instead, so history saved by verify runs feeds the same ranking.

Output defaults to markdown for easy pasting into PRs and docs; use
--output for json, csv or table views.

Examples:
  # Rank the artifacts of previous suite runs
  scorebench leaderboard ./results

  # Rank everything saved in the SQLite report store
  scorebench leaderboard --from-store --store-backend sqlite

  # Machine-readable ranking
  scorebench leaderboard ./results --output json`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: leaderboardSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := executeLeaderboard(); err != nil {
			contract.LogFatal("Cannot build leaderboard", err)
		}
	},
}

// executeLeaderboard loads records from the configured source and prints
// the per-benchmark ranking.
func executeLeaderboard() error {
	var records []schema.ReportRecord
	var entries []schema.BatchEntry

	if viper.GetBool("from-store") {
		stored, err := storeManager.GetReportStore().GetAllReports()
		if err != nil {
			return err
		}
		if len(stored) == 0 {
			return contract.ConfigurationErrorf("report store has no saved runs (backend %s)", cfg.StoreBackend)
		}
		records = stored
	} else {
		loaded, err := engine.LoadResultsDir(cfg.ResultsDir)
		if err != nil {
			return err
		}
		if len(loaded) == 0 {
			return contract.ConfigurationErrorf("no result files found in %s", cfg.ResultsDir)
		}
		entries = loaded
		records = engine.RecordsFromEntries(entries)
	}

	stats := engine.ComputeLeaderboard(records)
	ow := outwriter.NewOutWriter()
	return ow.WriteLeaderboard(stats, entries, cfg)
}
