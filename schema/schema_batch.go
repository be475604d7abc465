package schema

// BatchEntry pairs a benchmark name with its report inside a suite run.
// Failed startups still produce an entry so a batch never loses a benchmark.
type BatchEntry struct {
	Benchmark string      `json:"benchmark"`
	RunID     string      `json:"run_id,omitempty"`
	Report    ScoreReport `json:"report"`
	Error     string      `json:"error,omitempty"`
}

// BatchResult is the combined artifact of running a whole benchmark suite.
type BatchResult struct {
	RunID      string       `json:"run_id"`
	Timestamp  string       `json:"timestamp"`
	Submission string       `json:"submission"`
	Results    []BatchEntry `json:"results"`
}

// PassedCount returns how many reports in the batch passed. Entries that
// failed before scoring never count as passed.
func (b *BatchResult) PassedCount() int {
	count := 0
	for _, e := range b.Results {
		if e.Error == "" && e.Report.Passed {
			count++
		}
	}
	return count
}

// AllPassed reports whether every benchmark in the batch passed.
func (b *BatchResult) AllPassed() bool {
	return b.PassedCount() == len(b.Results)
}

// BenchmarkStats summarizes collected reports for one benchmark.
type BenchmarkStats struct {
	Benchmark string  `json:"benchmark"`
	Runs      int     `json:"runs"`
	AvgScore  float64 `json:"avg_score"`
	MinScore  int     `json:"min_score"`
	MaxScore  int     `json:"max_score"`
	PassRate  float64 `json:"pass_rate"`
}

// ComponentBreakdown is one row of a per-run component contribution table.
type ComponentBreakdown struct {
	Component    string  `json:"component"`
	Score        int     `json:"score"`
	Weight       float64 `json:"weight"`
	Contribution float64 `json:"contribution"`
}

// BreakdownRows expands a report into weighted contribution rows in
// registry order.
func BreakdownRows(report *ScoreReport) []ComponentBreakdown {
	names := report.Components.Names()
	rows := make([]ComponentBreakdown, 0, len(names))
	for _, name := range names {
		entry, _ := report.Components.Get(name)
		rows = append(rows, ComponentBreakdown{
			Component:    name,
			Score:        entry.Score,
			Weight:       entry.Weight,
			Contribution: float64(entry.Score) * entry.Weight,
		})
	}
	return rows
}
