package outwriter

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/scorebench/scorebench/internal/contract"
	"github.com/scorebench/scorebench/schema"
)

// SaveBatchArtifacts writes one report file per scored benchmark plus the
// combined batch file into the results directory. File stems carry the
// batch timestamp so successive runs never clobber each other.
func SaveBatchArtifacts(batch *schema.BatchResult, resultsDir string) error {
	if err := os.MkdirAll(resultsDir, 0o755); err != nil {
		return fmt.Errorf("cannot create results directory %s: %w", resultsDir, err)
	}

	stamp := artifactStamp(batch.Timestamp)
	for _, entry := range batch.Results {
		if entry.Error != "" {
			// Benchmarks that never produced a report still appear in the
			// combined file below
			continue
		}
		rendered, err := RenderReport(&entry.Report)
		if err != nil {
			return err
		}
		path := filepath.Join(resultsDir, fmt.Sprintf("%s_%s.json", entryName(entry), stamp))
		if err := os.WriteFile(path, []byte(rendered), 0o644); err != nil {
			return fmt.Errorf("failed to write report to %s: %w", path, err)
		}
	}

	combined := filepath.Join(resultsDir, fmt.Sprintf("batch_results_%s.json", stamp))
	file, err := os.Create(combined)
	if err != nil {
		return fmt.Errorf("failed to write batch results to %s: %w", combined, err)
	}
	defer func() { _ = file.Close() }()
	if err := writeJSON(file, batch); err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "💾 Wrote batch results to %s\n", combined)
	return nil
}

// artifactStamp turns the batch timestamp into a filename-safe stem.
func artifactStamp(timestamp string) string {
	t, err := time.Parse(time.RFC3339, timestamp)
	if err != nil {
		t = time.Now().UTC()
	}
	return t.Format("20060102_150405")
}

// PrintBatchSummary prints one PASS/FAIL line per benchmark and a closing
// count. Lines go to stderr like the rest of the progress output; stdout
// stays reserved for reports.
func PrintBatchSummary(batch *schema.BatchResult, cfg *contract.Config) {
	for _, entry := range batch.Results {
		name := entryName(entry)
		verdict := contract.FailValue
		detail := fmt.Sprintf("%d/100", entry.Report.FinalScore)
		if entry.Error != "" {
			detail = entry.Error
		} else if entry.Report.Passed {
			verdict = contract.PassValue
		}

		if cfg.UseEmojis {
			emoji := "✅"
			if verdict == contract.FailValue {
				emoji = "❌"
			}
			fmt.Fprintf(os.Stderr, "%s %s %s (%s)\n", emoji, verdict, name, detail)
		} else {
			fmt.Fprintf(os.Stderr, "%s %s (%s)\n", verdict, name, detail)
		}
	}
	fmt.Fprintf(os.Stderr, "Passed %d/%d benchmarks\n", batch.PassedCount(), len(batch.Results))
}
