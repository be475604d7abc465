// Package cmd defines the command-line interface for scorebench.
package cmd

import (
	"github.com/scorebench/scorebench/internal/contract"
	"github.com/scorebench/scorebench/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	// Call initConfig on Cobra's initialization
	cobra.OnInitialize(initConfig)

	// Add primary subcommands to the root command
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(leaderboardCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(versionCmd)

	// Add the history subcommands to the parent history command
	historyCmd.AddCommand(historyExportCmd)

	// Add the store subcommands to the parent store command
	storeCmd.AddCommand(storeStatusCmd)
	storeCmd.AddCommand(storeClearCmd)
	storeCmd.AddCommand(storeMigrateCmd)

	// Bind all persistent flags of rootCmd to Viper
	rootCmd.PersistentFlags().StringP("definition", "d", "", "Path to the benchmark definition file (defaults to scorebench.yaml in the submission)")
	rootCmd.PersistentFlags().String("benchmark", "", "Benchmark name override for reports and history filters")
	rootCmd.PersistentFlags().IntP("threshold", "t", schema.DefaultThreshold, "Pass threshold (0-100) when the definition does not set one")
	rootCmd.PersistentFlags().String("check-timeout", "60s", "Per-check wall clock budget (e.g. 30s, 2m)")
	rootCmd.PersistentFlags().String("run-timeout", "300s", "Whole-run wall clock budget (e.g. 5m)")
	rootCmd.PersistentFlags().Int("workers", contract.DefaultWorkers, "Number of concurrent check workers (1 = sequential)")
	rootCmd.PersistentFlags().String("round-mode", string(schema.RoundFloor), "Final score rounding: floor or nearest")
	rootCmd.PersistentFlags().String("penalty-mode", string(schema.PenaltySum), "Penalty discount combination: sum or compound")
	rootCmd.PersistentFlags().String("output", string(schema.MarkdownOut), "Output format for history and leaderboard views: json or table or csv or markdown")
	rootCmd.PersistentFlags().String("output-file", "", "Optional path to write output to")
	rootCmd.PersistentFlags().String("results-dir", "results", "Directory where suite runs write result artifacts")
	rootCmd.PersistentFlags().IntP("limit", "l", contract.DefaultHistoryLimit, "Number of history rows to display")
	rootCmd.PersistentFlags().Int("width", 0, "Terminal width override (0 = auto-detect)")
	rootCmd.PersistentFlags().String("store-backend", string(schema.NoneBackend), "Report store backend: sqlite or mysql or postgresql or none")
	rootCmd.PersistentFlags().String("store-db-connect", "", "Database connection string for mysql/postgresql (e.g., user:pass@tcp(host:port)/dbname)")
	rootCmd.PersistentFlags().String("emoji", "yes", "Enable emojis in progress output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("color", "yes", "Enable colored labels in output (yes/no/true/false/1/0)")
	rootCmd.PersistentFlags().String("profile", "", "Enable profiling and write profiles to files with this prefix")
	rootCmd.PersistentFlags().String("config", "", "Path to config file")
	if err := viper.BindPFlags(rootCmd.PersistentFlags()); err != nil {
		contract.LogFatal("Error binding root flags", err)
	}

	// Bind all flags of runCmd to Viper
	runCmd.Flags().String("submission", ".", "Submission directory scored against every benchmark in the suite")
	if err := viper.BindPFlags(runCmd.Flags()); err != nil {
		contract.LogFatal("Error binding run flags", err)
	}

	// Bind all flags of leaderboardCmd to Viper
	leaderboardCmd.Flags().Bool("from-store", false, "Rank from the report store instead of a results directory")
	if err := viper.BindPFlags(leaderboardCmd.Flags()); err != nil {
		contract.LogFatal("Error binding leaderboard flags", err)
	}

	// Bind all flags of storeMigrateCmd to Viper
	storeMigrateCmd.Flags().Int("target-version", -1, "Target migration version (-1 means latest, 0 means rollback to initial state)")
	if err := viper.BindPFlags(storeMigrateCmd.Flags()); err != nil {
		contract.LogFatal("Error binding store migrate flags", err)
	}
}
