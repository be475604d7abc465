package cmd

import (
	"github.com/scorebench/scorebench/internal/contract"
	"github.com/scorebench/scorebench/internal/outwriter"
	"github.com/scorebench/scorebench/internal/resultstore"
	"github.com/scorebench/scorebench/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// historyCmd focused on stored verification runs.
var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent verification runs from the report store",
	Long: `List the most recent verification runs saved by verify, newest first.

Each row shows the run ID, benchmark, final score against its threshold,
the pass/fail label and when the run happened. Use --benchmark to narrow
the listing to a single benchmark and --limit to change the row count.

Requires a report store backend (sqlite, mysql or postgresql); verify only
saves runs when one is configured.

Examples:
  # Last 20 runs from the default SQLite store
  scorebench history --store-backend sqlite

  # One benchmark, machine readable
  scorebench history --store-backend sqlite --benchmark parser --output json

  # Longer listing
  scorebench history --store-backend sqlite --limit 50`,
	PreRunE: sharedSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := executeHistory(); err != nil {
			contract.LogFatal("Cannot show history", err)
		}
	},
}

// executeHistory lists stored runs using the configured output format.
func executeHistory() error {
	if cfg.StoreBackend == schema.NoneBackend {
		return contract.ConfigurationErrorf("report store is disabled; set --store-backend to sqlite, mysql or postgresql")
	}

	records, err := storeManager.GetReportStore().ListReports(cfg.BenchmarkName, cfg.HistoryLimit)
	if err != nil {
		return err
	}

	ow := outwriter.NewOutWriter()
	return ow.WriteHistory(records, cfg)
}

// exportSetup loads minimal configuration needed for the export operation.
// This is used by the export command which needs store access without full
// shared setup.
func exportSetup() error {
	if err := loadConfigFile(); err != nil {
		return err
	}

	// Get store-related config values
	backend := schema.DatabaseBackend(viper.GetString("store-backend"))
	connStr := viper.GetString("store-db-connect")

	// Basic validation for database backends
	if err := contract.ValidateDatabaseConnectionString(backend, connStr); err != nil {
		return err
	}

	// Get output-related config values
	outputFile := viper.GetString("output-file")

	// Initialize the store with the loaded config
	if err := resultstore.InitStores(backend, connStr); err != nil {
		return err
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr
	cfg.OutputFile = outputFile

	return nil
}

// exportSetupWrapper wraps exportSetup to provide PreRunE for the export command.
func exportSetupWrapper(_ *cobra.Command, _ []string) error {
	return exportSetup()
}

// historyExportCmd exports report history to Parquet files.
var historyExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export report history to Parquet for BI tools and analytics",
	Long: `Export every stored verification run to Parquet format for use with
analytics tools.

Parquet format enables:
- Fast querying with DuckDB, Apache Spark, pandas
- Efficient storage with columnar compression
- Direct import into BI tools (Tableau, Metabase, etc.)

Requires: --output-file parameter

Examples:
  # Export all stored runs
  scorebench history export --store-backend sqlite --output-file runs.parquet

  # Inspect with DuckDB
  duckdb -c "SELECT benchmark, final_score FROM read_parquet('runs.parquet') LIMIT 10"`,
	PreRunE: exportSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := resultstore.ExecuteReportExport(cfg.OutputFile); err != nil {
			contract.LogFatal("Failed to export report history", err)
		}
	},
}
