package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/scorebench/scorebench/internal/contract"
	mcp_internal "github.com/scorebench/scorebench/internal/mcp"
	"github.com/scorebench/scorebench/internal/resultstore"
	"github.com/scorebench/scorebench/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// baseConfig returns a validated-looking config for handler tests.
func baseConfig() *contract.Config {
	return &contract.Config{
		SubmissionDir: ".",
		Threshold:     70,
		CheckTimeout:  30 * time.Second,
		RunTimeout:    2 * time.Minute,
		Workers:       1,
		RoundMode:     schema.RoundFloor,
		PenaltyMode:   schema.PenaltySum,
	}
}

// callTool invokes a registered tool by name with the given arguments.
func callTool(t *testing.T, s *server.MCPServer, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	return res
}

// resultText extracts the first text block from a tool result.
func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	return res.Content[0].(mcp.TextContent).Text
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	// Create a dummy manager, though we shouldn't hit it because we test validation errors
	var mgr contract.StoreManager
	s := mcp_internal.NewMCPServer(baseConfig(), mgr)

	t.Run("list_benchmarks missing suite_dir", func(t *testing.T) {
		res := callTool(t, s, "list_benchmarks", map[string]any{})
		assert.True(t, res.IsError, "The response should indicate an error state")
		assert.Contains(t, resultText(t, res), "suite_dir is required")
	})

	t.Run("show_leaderboard missing results_dir", func(t *testing.T) {
		res := callTool(t, s, "show_leaderboard", map[string]any{})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "results_dir is required")
	})

	t.Run("verify_submission bad submission path", func(t *testing.T) {
		res := callTool(t, s, "verify_submission", map[string]any{
			"submission": filepath.Join(t.TempDir(), "does-not-exist"),
		})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "invalid submission parameters")
	})

	t.Run("verify_submission missing definition", func(t *testing.T) {
		res := callTool(t, s, "verify_submission", map[string]any{
			"submission": t.TempDir(), // No scorebench.yaml inside
		})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "definition not found")
	})

	t.Run("show_leaderboard empty results dir", func(t *testing.T) {
		res := callTool(t, s, "show_leaderboard", map[string]any{
			"results_dir": t.TempDir(),
		})
		assert.True(t, res.IsError)
		assert.Contains(t, resultText(t, res), "no result files found")
	})
}

func TestMCPServerVerifySubmission(t *testing.T) {
	var mgr contract.StoreManager
	s := mcp_internal.NewMCPServer(baseConfig(), mgr)

	submission := t.TempDir()
	definition := `benchmark: demo
threshold: 70
components:
  - name: tests
    weight: 0.6
    check:
      type: static
      percent: 100
      details: 18/18 passed
  - name: quality
    weight: 0.4
    check:
      type: static
      percent: 80
      details: 2 warnings
`
	path := filepath.Join(submission, schema.DefinitionFileName)
	require.NoError(t, os.WriteFile(path, []byte(definition), 0o644))

	res := callTool(t, s, "verify_submission", map[string]any{
		"submission": submission,
	})
	require.False(t, res.IsError, "verification should succeed: %s", resultText(t, res))

	var report schema.ScoreReport
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &report))
	assert.Equal(t, "demo", report.Benchmark)
	assert.Equal(t, 92, report.FinalScore)
	assert.True(t, report.Passed)
	assert.Equal(t, []string{"tests", "quality"}, report.Components.Names())
}

func TestMCPServerGetScoreHistory(t *testing.T) {
	store := &resultstore.MockReportStore{}
	store.On("ListReports", "demo", 5).Return([]schema.ReportRecord{
		{
			RunID:      "run-1",
			Benchmark:  "demo",
			FinalScore: 92,
			Passed:     true,
			Threshold:  70,
			CreatedAt:  time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		},
	}, nil)
	mgr := &resultstore.MockStoreManager{}
	mgr.On("GetReportStore").Return(store)

	s := mcp_internal.NewMCPServer(baseConfig(), mgr)

	res := callTool(t, s, "get_score_history", map[string]any{
		"benchmark": "demo",
		"limit":     5.0,
	})
	require.False(t, res.IsError, "history lookup should succeed: %s", resultText(t, res))

	text := resultText(t, res)
	assert.Contains(t, text, `"run_id": "run-1"`)
	assert.Contains(t, text, `"final_score": 92`)
	store.AssertExpectations(t)
	mgr.AssertExpectations(t)
}
