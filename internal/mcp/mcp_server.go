// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/scorebench/scorebench/internal/contract"
)

// NewMCPServer initializes and configures the scorebench MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.StoreManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Scorebench Verification Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	// --- 1. Tool: verify_submission ---
	s.AddTool(mcp.NewTool("verify_submission",
		mcp.WithDescription("Score a submission directory against a benchmark definition and return the full JSON report."),
		mcp.WithString("submission", mcp.Description("Path to the submission directory (defaults to the server's working directory).")),
		mcp.WithString("definition", mcp.Description("Path to the benchmark definition file (defaults to scorebench.yaml inside the submission).")),
		mcp.WithNumber("threshold", mcp.Description("Pass threshold (0-100) used when the definition does not set one.")),
		mcp.WithNumber("workers", mcp.Description("Number of concurrent check workers (1 = sequential).")),
	), h.handleVerifySubmission)

	// --- 2. Tool: list_benchmarks ---
	s.AddTool(mcp.NewTool("list_benchmarks",
		mcp.WithDescription("Discover the benchmark definitions inside a suite directory."),
		mcp.WithString("suite_dir", mcp.Description("Path to the suite directory to scan."), mcp.Required()),
	), h.handleListBenchmarks)

	// --- 3. Tool: show_leaderboard ---
	s.AddTool(mcp.NewTool("show_leaderboard",
		mcp.WithDescription("Rank benchmarks by the score reports collected in a results directory."),
		mcp.WithString("results_dir", mcp.Description("Path to the directory holding result JSON artifacts."), mcp.Required()),
	), h.handleShowLeaderboard)

	// --- 4. Tool: get_score_history ---
	s.AddTool(mcp.NewTool("get_score_history",
		mcp.WithDescription("List recent verification runs saved in the report store, newest first."),
		mcp.WithString("benchmark", mcp.Description("Only return runs for this benchmark name.")),
		mcp.WithNumber("limit", mcp.Description("Maximum number of runs to return.")),
	), h.handleGetScoreHistory)

	return s
}

// StartMCPServer starts the scorebench MCP server.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.StoreManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
