package outwriter

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/scorebench/scorebench/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveBatchArtifacts(t *testing.T) {
	resultsDir := filepath.Join(t.TempDir(), "results")

	var components schema.ComponentScores
	components.Add("tests", schema.ComponentScore{Score: 100, Weight: 1, Details: "18/18 tests passed"})
	batch := &schema.BatchResult{
		RunID:      "1a2b3c4d-5e6f-7081-92a3-b4c5d6e7f809",
		Timestamp:  "2026-03-14T12:00:00Z",
		Submission: "/work/submissions/checkout",
		Results: []schema.BatchEntry{
			{
				Benchmark: "fastapi-checkout",
				RunID:     "1a2b3c4d-5e6f-7081-92a3-b4c5d6e7f809-0001",
				Report: schema.ScoreReport{
					Benchmark:  "fastapi-checkout",
					Timestamp:  "2026-03-14T12:00:00Z",
					Components: components,
					BaseScore:  92,
					FinalScore: 92,
					Passed:     true,
				},
			},
			{Benchmark: "broken-bench", Error: "definition not found"},
		},
	}

	require.NoError(t, SaveBatchArtifacts(batch, resultsDir))

	// Scored benchmark gets its own report file
	report, err := os.ReadFile(filepath.Join(resultsDir, "fastapi-checkout_20260314_120000.json"))
	require.NoError(t, err)
	assert.Contains(t, string(report), `"final_score": 92`)

	// Errored benchmark only appears in the combined artifact
	_, err = os.Stat(filepath.Join(resultsDir, "broken-bench_20260314_120000.json"))
	assert.True(t, os.IsNotExist(err))

	combined, err := os.ReadFile(filepath.Join(resultsDir, "batch_results_20260314_120000.json"))
	require.NoError(t, err)
	var decoded schema.BatchResult
	require.NoError(t, json.Unmarshal(combined, &decoded))
	require.Len(t, decoded.Results, 2)
	assert.Equal(t, "definition not found", decoded.Results[1].Error)
	assert.Equal(t, 92, decoded.Results[0].Report.FinalScore)
}

func TestArtifactStamp(t *testing.T) {
	assert.Equal(t, "20260314_120000", artifactStamp("2026-03-14T12:00:00Z"))
	// Unparseable timestamps still produce a usable stem
	assert.Len(t, artifactStamp("not-a-time"), len("20060102_150405"))
}
