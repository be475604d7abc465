package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/scorebench/scorebench/internal/contract"
	"github.com/scorebench/scorebench/schema"
)

// Progress lines go to stderr. Stdout is reserved for report output so a
// plain `scorebench verify . > report.json` stays machine readable.

// LogRunHeader prints a concise, 2-line header before checks run.
func LogRunHeader(ctx context.Context, cfg *contract.Config, bench *Benchmark) {
	if shouldSuppressProgress(ctx) {
		return
	}

	submission := filepath.Base(cfg.SubmissionDir)
	if submission == "" || submission == "." {
		submission = "current"
	}

	if cfg.UseEmojis {
		fmt.Fprintf(os.Stderr, "🔎 Benchmark: %s (components: %d, threshold: %d)\n", bench.Name, bench.Registry.Len(), bench.EffectiveThreshold(cfg))
		fmt.Fprintf(os.Stderr, "📂 Submission: %s\n", submission)
	} else {
		fmt.Fprintf(os.Stderr, "Benchmark: %s (components: %d, threshold: %d)\n", bench.Name, bench.Registry.Len(), bench.EffectiveThreshold(cfg))
		fmt.Fprintf(os.Stderr, "Submission: %s\n", submission)
	}
}

// logCheckDone prints one line per completed check.
func logCheckDone(ctx context.Context, cfg *contract.Config, result schema.CheckResult) {
	if shouldSuppressProgress(ctx) {
		return
	}

	elapsed := result.Elapsed.Round(10 * time.Millisecond)
	switch result.Status {
	case schema.StatusOK:
		if cfg.UseEmojis {
			fmt.Fprintf(os.Stderr, "✅ %s: %.0f (%v)\n", result.Name, result.EffectiveRaw(), elapsed)
		} else {
			fmt.Fprintf(os.Stderr, "%s: %.0f (%v)\n", result.Name, result.EffectiveRaw(), elapsed)
		}
	case schema.StatusSkipped:
		if cfg.UseEmojis {
			fmt.Fprintf(os.Stderr, "⚠️ %s: %s\n", result.Name, schema.FirstLine(result.Details))
		} else {
			fmt.Fprintf(os.Stderr, "%s: %s\n", result.Name, schema.FirstLine(result.Details))
		}
	default:
		if cfg.UseEmojis {
			fmt.Fprintf(os.Stderr, "❌ %s: %s\n", result.Name, schema.FirstLine(result.Details))
		} else {
			fmt.Fprintf(os.Stderr, "%s: error: %s\n", result.Name, schema.FirstLine(result.Details))
		}
	}
}

// logMissingDeliverables reports the artifacts that blocked a run.
func logMissingDeliverables(ctx context.Context, cfg *contract.Config, missing []string) {
	if shouldSuppressProgress(ctx) {
		return
	}

	if cfg.UseEmojis {
		fmt.Fprintf(os.Stderr, "❌ Missing deliverables: %s\n", strings.Join(missing, ", "))
	} else {
		fmt.Fprintf(os.Stderr, "Missing deliverables: %s\n", strings.Join(missing, ", "))
	}
}

// LogRunSummary prints the final verdict line after a run.
func LogRunSummary(cfg *contract.Config, report *schema.ScoreReport) {
	label := contract.GetPlainResultLabel(report.Passed)
	if cfg.UseColors {
		label = contract.GetColorResultLabel(report.Passed)
	}

	if cfg.UseEmojis {
		emoji := "✅"
		if !report.Passed {
			emoji = "❌"
		}
		fmt.Fprintf(os.Stderr, "%s %s: %d/100 [%s]\n", emoji, report.Benchmark, report.FinalScore, label)
	} else {
		fmt.Fprintf(os.Stderr, "%s: %d/100 [%s]\n", report.Benchmark, report.FinalScore, label)
	}
}

// LogSuiteProgress prints one line per benchmark position in a suite run.
func LogSuiteProgress(cfg *contract.Config, position, total int, name string) {
	if cfg.UseEmojis {
		fmt.Fprintf(os.Stderr, "🔎 [%d/%d] %s\n", position, total, name)
	} else {
		fmt.Fprintf(os.Stderr, "[%d/%d] %s\n", position, total, name)
	}
}
