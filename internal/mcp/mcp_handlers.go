package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/scorebench/scorebench/engine"
	"github.com/scorebench/scorebench/internal/benchdef"
	"github.com/scorebench/scorebench/internal/contract"
	"github.com/scorebench/scorebench/internal/outwriter"
	"github.com/scorebench/scorebench/schema"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.StoreManager
}

// benchmarkInfo is the per-benchmark row returned by list_benchmarks.
type benchmarkInfo struct {
	Name       string `json:"name"`
	Directory  string `json:"directory"`
	Components int    `json:"components,omitempty"`
	Threshold  int    `json:"threshold,omitempty"`
	Error      string `json:"error,omitempty"`
}

func (h *toolHandler) handleVerifySubmission(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if p := request.GetString("submission", ""); p != "" {
		cfg.SubmissionDir = p
	}
	if d := request.GetString("definition", ""); d != "" {
		cfg.DefinitionPath = d
	}
	if t := request.GetInt("threshold", -1); t >= 0 && t <= 100 {
		cfg.Threshold = t
	}
	if w := request.GetInt("workers", 0); w > 0 {
		cfg.Workers = w
	}

	if err := contract.RevalidateSubmission(cfg); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid submission parameters: %v", err)), nil
	}

	definition := cfg.DefinitionPath
	if definition == "" {
		definition = filepath.Join(cfg.SubmissionDir, schema.DefinitionFileName)
	}
	bench, err := benchdef.Load(definition)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot load benchmark: %v", err)), nil
	}

	outcome, err := engine.Verify(engine.WithSuppressProgress(ctx), cfg, bench)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("verification failed: %v", err)), nil
	}

	rendered, err := outwriter.RenderReport(outcome.Report)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot render report: %v", err)), nil
	}
	return mcp.NewToolResultText(rendered), nil
}

func (h *toolHandler) handleListBenchmarks(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	suiteDir := request.GetString("suite_dir", "")
	if suiteDir == "" {
		return mcp.NewToolResultError("suite_dir is required"), nil
	}

	dirs, err := benchdef.Discover(suiteDir)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot discover benchmarks: %v", err)), nil
	}

	infos := make([]benchmarkInfo, 0, len(dirs))
	for _, dir := range dirs {
		bench, err := benchdef.LoadFromDir(h.baseCfg, dir)
		if err != nil {
			infos = append(infos, benchmarkInfo{
				Name:      filepath.Base(dir),
				Directory: dir,
				Error:     err.Error(),
			})
			continue
		}
		infos = append(infos, benchmarkInfo{
			Name:       bench.Name,
			Directory:  dir,
			Components: bench.Registry.Len(),
			Threshold:  bench.EffectiveThreshold(h.baseCfg),
		})
	}

	jsonData, _ := json.MarshalIndent(infos, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleShowLeaderboard(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resultsDir := request.GetString("results_dir", "")
	if resultsDir == "" {
		return mcp.NewToolResultError("results_dir is required"), nil
	}

	entries, err := engine.LoadResultsDir(resultsDir)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot load results: %v", err)), nil
	}
	if len(entries) == 0 {
		return mcp.NewToolResultError(fmt.Sprintf("no result files found in %s", resultsDir)), nil
	}

	stats := engine.ComputeLeaderboard(engine.RecordsFromEntries(entries))
	jsonData, _ := json.MarshalIndent(schema.EnrichStats(stats), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleGetScoreHistory(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	benchmark := request.GetString("benchmark", "")
	limit := request.GetInt("limit", contract.DefaultHistoryLimit)

	records, err := h.mgr.GetReportStore().ListReports(benchmark, limit)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot list history: %v", err)), nil
	}
	if len(records) == 0 {
		return mcp.NewToolResultError("report store has no matching runs; verify saves runs only when a store backend is configured"), nil
	}

	rendered, err := outwriter.RenderHistory(records)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("cannot render history: %v", err)), nil
	}
	return mcp.NewToolResultText(rendered), nil
}
