package schema

// EnrichedBenchmarkStats adds presentation data to a BenchmarkStats.
type EnrichedBenchmarkStats struct {
	Rank  int    `json:"rank"`
	Label string `json:"label"`
	BenchmarkStats
}

// GetPlainLabel returns a plain text label indicating the health level
// based on the average final score.
func GetPlainLabel(score float64) string {
	switch {
	case score >= 90:
		return "Excellent"
	case score >= 70:
		return "Passing"
	case score >= 40:
		return "Weak"
	default:
		return "Failing"
	}
}

// EnrichStats adds rank and label to a list of benchmark stats. The input
// is expected to be sorted already; rank follows position.
func EnrichStats(stats []BenchmarkStats) []EnrichedBenchmarkStats {
	output := make([]EnrichedBenchmarkStats, len(stats))
	for i, s := range stats {
		output[i] = EnrichedBenchmarkStats{
			Rank:           i + 1,
			Label:          GetPlainLabel(s.AvgScore),
			BenchmarkStats: s,
		}
	}
	return output
}
