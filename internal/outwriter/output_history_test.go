package outwriter

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/scorebench/scorebench/internal/contract"
	"github.com/scorebench/scorebench/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func historyRecords() []schema.ReportRecord {
	return []schema.ReportRecord{
		{
			RunID:      "1a2b3c4d-5e6f-7081-92a3-b4c5d6e7f809",
			Benchmark:  "fastapi-checkout",
			Submission: "/work/submissions/checkout",
			BaseScore:  92.5,
			FinalScore: 92,
			Passed:     true,
			Threshold:  70,
			ReportJSON: "{}",
			CreatedAt:  time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC),
		},
		{
			RunID:      "9f8e7d6c-5b4a-3921-8071-625f4e3d2c1b",
			Benchmark:  "redis-clone",
			Submission: "/work/submissions/redis",
			BaseScore:  52,
			FinalScore: 32,
			Passed:     false,
			Threshold:  70,
			ReportJSON: "{}",
			CreatedAt:  time.Date(2026, 3, 14, 12, 5, 0, 0, time.UTC),
		},
	}
}

func TestWriteHistoryTable(t *testing.T) {
	cfg := &contract.Config{Width: 120, StoreBackend: schema.SQLiteBackend}
	var buf bytes.Buffer

	err := writeHistoryTable(historyRecords(), cfg, &buf)
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, "1a2b3c4d")
	assert.Contains(t, output, "fastapi-checkout")
	assert.Contains(t, output, "92")
	assert.Contains(t, output, "PASS")
	assert.Contains(t, output, "FAIL")
	assert.Contains(t, output, "2026-03-14 12:00:00")
	assert.Contains(t, output, "Showing 2 reports (1 passed). Store backend: sqlite")
}

func TestWriteCSVResultsForHistory(t *testing.T) {
	var buf bytes.Buffer

	err := writeCSVResultsForHistory(&buf, historyRecords())
	require.NoError(t, err)

	expected := "run_id,benchmark,submission,base_score,final_score,passed,threshold,created_at\n" +
		"1a2b3c4d-5e6f-7081-92a3-b4c5d6e7f809,fastapi-checkout,/work/submissions/checkout,92.50,92,true,70,2026-03-14T12:00:00Z\n" +
		"9f8e7d6c-5b4a-3921-8071-625f4e3d2c1b,redis-clone,/work/submissions/redis,52.00,32,false,70,2026-03-14T12:05:00Z\n"
	assert.Equal(t, expected, buf.String())
}

func TestWriteJSONResultsForHistory(t *testing.T) {
	var buf bytes.Buffer

	err := writeJSONResultsForHistory(&buf, historyRecords())
	require.NoError(t, err)

	var parsed []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &parsed))
	require.Len(t, parsed, 2)

	assert.Equal(t, "1a2b3c4d-5e6f-7081-92a3-b4c5d6e7f809", parsed[0]["run_id"])
	assert.Equal(t, "fastapi-checkout", parsed[0]["benchmark"])
	assert.Equal(t, float64(92), parsed[0]["final_score"])
	assert.Equal(t, true, parsed[0]["passed"])
	assert.Equal(t, "2026-03-14T12:00:00Z", parsed[0]["created_at"])
	assert.Equal(t, false, parsed[1]["passed"])
}

func TestPrintReportHistoryJSONToFile(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "history.json")
	cfg := &contract.Config{Output: schema.JSONOut, OutputFile: outputFile}

	require.NoError(t, PrintReportHistory(historyRecords(), cfg))

	content, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"run_id": "1a2b3c4d-5e6f-7081-92a3-b4c5d6e7f809"`)
}

func TestPrintReportHistoryTableToFile(t *testing.T) {
	outputFile := filepath.Join(t.TempDir(), "history.txt")
	cfg := &contract.Config{Output: schema.TableOut, OutputFile: outputFile, Width: 120, StoreBackend: schema.NoneBackend}

	require.NoError(t, PrintReportHistory(historyRecords(), cfg))

	content, err := os.ReadFile(outputFile)
	require.NoError(t, err)
	assert.Contains(t, string(content), "fastapi-checkout")
}
