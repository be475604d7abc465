package resultstore

import (
	"errors"
	"fmt"

	"github.com/scorebench/scorebench/internal/contract"
	"github.com/scorebench/scorebench/internal/parquet"
)

// ExecuteReportExport performs the export of report history to a Parquet file.
func ExecuteReportExport(outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}
	return exportReports(Manager.GetReportStore(), outputFile)
}

// exportReports writes every record in the store to a Parquet file.
func exportReports(store contract.ReportStore, outputFile string) error {
	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}
	if status.TotalReports == 0 {
		return errors.New("no report history found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Total reports: %d\n", status.TotalReports)

	// Retrieve all report records
	records, err := store.GetAllReports()
	if err != nil {
		return fmt.Errorf("failed to retrieve reports: %w", err)
	}

	// Convert to Parquet format and write
	rows := parquet.ConvertReportRecords(records)
	if err := parquet.WriteReportHistory(rows, outputFile); err != nil {
		return fmt.Errorf("failed to write report history: %w", err)
	}
	fmt.Printf("Exported %d reports to: %s\n", len(rows), outputFile)

	fmt.Println("\nExport complete! The Parquet file can be used with:")
	fmt.Println("  - Apache Spark")
	fmt.Println("  - Pandas (via pyarrow)")
	fmt.Println("  - DuckDB")
	fmt.Println("  - Any other Parquet-compatible tool")

	return nil
}
