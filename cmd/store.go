package cmd

import (
	"fmt"

	"github.com/scorebench/scorebench/internal/contract"
	"github.com/scorebench/scorebench/internal/resultstore"
	"github.com/scorebench/scorebench/schema"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// storeSetup loads minimal configuration needed for store operations.
// This is used by commands that need store access without full shared setup.
func storeSetup() error {
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

	// Initialize the store with the loaded config
	if err := resultstore.InitStores(backend, connStr); err != nil {
		return fmt.Errorf("failed to initialize report store: %w", err)
	}

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// storeSetupWrapper wraps storeSetup to provide PreRunE for store commands.
func storeSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeSetup()
}

// storeMigrateSetup loads minimal configuration needed for migrate operations.
// This is a specialized setup that does NOT initialize stores or create tables,
// allowing migrations to run on a fresh database.
func storeMigrateSetup() error {
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

	cfg.StoreBackend = backend
	cfg.StoreDBConnect = connStr

	return nil
}

// storeMigrateSetupWrapper wraps storeMigrateSetup to provide PreRunE for migrate command.
func storeMigrateSetupWrapper(_ *cobra.Command, _ []string) error {
	return storeMigrateSetup()
}

// storeCmd focused on report store management.
//
// Note: Store subcommands use minimal initialization (storeSetup) instead of
// the full sharedSetup used by verification commands. This avoids submission
// validation and complex config processing for simple store operations.
var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Manage the report store (history of verification runs)",
	Long: `Manage the report store that keeps a history of verification runs.

When a backend is configured, verify saves every run so scores can be
listed, ranked and exported later.

Supported backends: SQLite (default file store), MySQL, PostgreSQL, or None (disabled)

Subcommands:
  status  - Show store statistics and connection info
  clear   - Remove all stored reports
  migrate - Run database schema migrations

Examples:
  # Check store status
  scorebench store status --store-backend sqlite

  # Clear history before a fresh grading round
  scorebench store clear --store-backend sqlite`,
}

// storeStatusCmd shows store status.
var storeStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Display report store statistics and connection details",
	Long: `Show detailed information about the report store.

Displays:
- Backend type and connection status
- Total number of stored reports and how many passed
- Newest and oldest report timestamps
- Store database size

Use this to:
- Verify the store is connected before a grading round
- Monitor history growth over time
- Debug store-related issues

Examples:
  # Check store status
  scorebench store status --store-backend sqlite`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		status, err := storeManager.GetReportStore().GetStatus()
		if err != nil {
			contract.LogFatal("Failed to get store status", err)
		}
		resultstore.PrintStoreStatus(status)
	},
}

// storeClearCmd clears the stored reports.
var storeClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all stored verification reports",
	Long: `Delete every stored verification run from the configured backend.

WARNING: This action cannot be undone. Consider exporting data first.

Use this when:
- Starting a fresh grading round
- History may be stale or corrupted
- Testing store behavior from a clean slate

For SQLite: Deletes the database file
For MySQL/PostgreSQL: Drops the reports table

Examples:
  # Export before clearing
  scorebench history export --store-backend sqlite --output-file backup.parquet
  scorebench store clear --store-backend sqlite

  # Clear a MySQL store (set connection string via env variable)
  SCOREBENCH_STORE_BACKEND=mysql SCOREBENCH_STORE_DB_CONNECT="..." scorebench store clear`,
	PreRunE: storeSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := resultstore.ClearReports(cfg.StoreBackend, resultstore.GetReportDBFilePath(), cfg.StoreDBConnect); err != nil {
			contract.LogFatal("Failed to clear report store", err)
		}
		fmt.Println("Report store cleared successfully.")
	},
}

// storeMigrateCmd runs database migrations for the report store.
var storeMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Run database schema migrations (upgrades/downgrades)",
	Long: `Manage database schema versions for the report store.

Migrations allow:
- Upgrading to new schema versions when scorebench is updated
- Safely modifying database structure without data loss
- Rolling back schema changes if needed

By default, migrates to the latest version. Use --target-version for specific versions.

Examples:
  # Migrate to latest version (default)
  scorebench store migrate --store-backend sqlite

  # Migrate to specific version
  scorebench store migrate --store-backend sqlite --target-version 1

  # Rollback to initial state
  scorebench store migrate --store-backend sqlite --target-version 0`,
	PreRunE: storeMigrateSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		targetVersion := viper.GetInt("target-version")
		if err := resultstore.MigrateReports(cfg.StoreBackend, cfg.StoreDBConnect, targetVersion); err != nil {
			contract.LogFatal("Failed to run migrations", err)
		}
		fmt.Println("Migrations completed successfully.")
	},
}
