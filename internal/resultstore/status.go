package resultstore

import (
	"fmt"

	"github.com/scorebench/scorebench/schema"
)

// PrintStoreStatus prints report store status information.
func PrintStoreStatus(status schema.StoreStatus) {
	fmt.Printf("Store Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	fmt.Printf("Total Reports: %d\n", status.TotalReports)
	if status.TotalReports > 0 {
		fmt.Printf("Passed Reports: %d\n", status.PassedReports)
		fmt.Printf("Distinct Benchmarks: %d\n", status.DistinctBenches)
		fmt.Printf("Last Report: %s\n", status.LastReportTime.Format("2006-01-02 15:04:05"))
		fmt.Printf("Oldest Report: %s\n", status.OldestReport.Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("Table Size: %d bytes\n", status.TableSizeBytes)
}
