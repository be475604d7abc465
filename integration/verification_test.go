//go:build basic

// Package integration contains integration tests for scorebench.
// These tests are excluded from normal test runs due to build tags.
// To run these tests: go test -tags basic ./integration
package integration

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestVerifyWeightedAggregation checks the end-to-end scoring path: two
// weighted components, floor rounding and the report contract on stdout.
func TestVerifyWeightedAggregation(t *testing.T) {
	dir := writeSubmission(t, `benchmark: demo
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
`, nil)

	stdout, _, exitCode := runScorebench(t, dir, nil, "verify")
	require.Equal(t, 0, exitCode)

	report := parseReport(t, stdout)
	assert.Equal(t, "demo", report.Benchmark)
	assert.InDelta(t, 92.0, report.BaseScore, 1e-9)
	assert.Equal(t, 92, report.FinalScore)
	assert.True(t, report.Passed)
	assert.Equal(t, []string{"tests", "quality"}, report.Components.Names())

	// The wire contract pins the envelope keys and the per-component shape.
	var envelope map[string]json.RawMessage
	require.NoError(t, json.Unmarshal([]byte(stdout), &envelope))
	for _, key := range []string{"benchmark", "timestamp", "components", "base_score", "penalties", "final_score", "passed"} {
		assert.Contains(t, envelope, key)
	}
	var components map[string]map[string]any
	require.NoError(t, json.Unmarshal(envelope["components"], &components))
	for name, fields := range components {
		assert.Contains(t, fields, "score", "component %s", name)
		assert.Contains(t, fields, "weight", "component %s", name)
		assert.Contains(t, fields, "details", "component %s", name)
		assert.NotContains(t, fields, "status", "component %s should not leak internal status", name)
	}
}

// TestVerifyCommandFailure checks that a failing command scores zero while
// the remaining components still count.
func TestVerifyCommandFailure(t *testing.T) {
	dir := writeSubmission(t, `benchmark: gated
threshold: 70
components:
  - name: build
    weight: 0.6
    check:
      type: command
      command: exit 3
  - name: docs
    weight: 0.4
    check:
      type: static
      percent: 80
`, nil)

	stdout, _, exitCode := runScorebench(t, dir, nil, "verify")
	require.Equal(t, 1, exitCode)

	report := parseReport(t, stdout)
	assert.Equal(t, 32, report.FinalScore)
	assert.False(t, report.Passed)

	build, ok := report.Components.Get("build")
	require.True(t, ok)
	assert.Equal(t, 0, build.Score)
	assert.Contains(t, build.Details, "command exited with status 3")
}

// TestVerifyInvalidWeights checks that a bad weight sum aborts the run
// before any JSON lands on stdout.
func TestVerifyInvalidWeights(t *testing.T) {
	dir := writeSubmission(t, `benchmark: broken
components:
  - name: a
    weight: 0.6
    check:
      type: static
      percent: 100
  - name: b
    weight: 0.5
    check:
      type: static
      percent: 100
`, nil)

	stdout, stderr, exitCode := runScorebench(t, dir, nil, "verify")
	assert.Equal(t, 1, exitCode)
	assert.Empty(t, stdout, "a configuration error must not emit a report")
	assert.Contains(t, stderr, "weight")
}

// TestVerifyZeroObservations checks the zero-observation policy: a count
// check that finds nothing scores zero rather than failing the run.
func TestVerifyZeroObservations(t *testing.T) {
	dir := writeSubmission(t, `benchmark: counts
threshold: 50
components:
  - name: tests
    weight: 1.0
    check:
      type: test-count
      command: echo "no tests ran"
      pass-pattern: "PASS"
      fail-pattern: "FAIL"
`, nil)

	stdout, _, exitCode := runScorebench(t, dir, nil, "verify")
	require.Equal(t, 1, exitCode)

	report := parseReport(t, stdout)
	assert.Equal(t, 0, report.FinalScore)
	tests, ok := report.Components.Get("tests")
	require.True(t, ok)
	assert.Equal(t, 0, tests.Score)
}

// TestVerifyPenalties checks sum-mode penalty discounts against the base
// score: 90 with 0.10 + 0.05 penalties floors to 76.
func TestVerifyPenalties(t *testing.T) {
	dir := writeSubmission(t, `benchmark: penalized
threshold: 70
penalties:
  time-penalty: 0.10
  iteration-penalty: 0.05
components:
  - name: solution
    weight: 1.0
    check:
      type: static
      percent: 90
`, nil)

	stdout, _, exitCode := runScorebench(t, dir, nil, "verify")
	require.Equal(t, 0, exitCode)

	report := parseReport(t, stdout)
	assert.InDelta(t, 90.0, report.BaseScore, 1e-9)
	assert.Equal(t, 76, report.FinalScore)
	assert.InDelta(t, 0.10, report.Penalties.TimePenalty, 1e-9)
	assert.InDelta(t, 0.05, report.Penalties.IterationPenalty, 1e-9)
	assert.True(t, report.Passed)
}

// TestVerifySkippedPrerequisite checks that a component whose prerequisite
// failed is skipped with an explanatory detail instead of running.
func TestVerifySkippedPrerequisite(t *testing.T) {
	dir := writeSubmission(t, `benchmark: chained
threshold: 70
components:
  - name: build
    weight: 0.5
    check:
      type: command
      command: exit 1
  - name: tests
    weight: 0.5
    requires: [build]
    check:
      type: static
      percent: 100
`, nil)

	stdout, _, exitCode := runScorebench(t, dir, nil, "verify")
	require.Equal(t, 1, exitCode)

	report := parseReport(t, stdout)
	tests, ok := report.Components.Get("tests")
	require.True(t, ok)
	assert.Equal(t, 0, tests.Score)
	assert.Contains(t, tests.Details, `skipped due to failed prerequisite "build"`)
}

// TestVerifyMissingDeliverable checks the all-zero report for submissions
// missing a required artifact.
func TestVerifyMissingDeliverable(t *testing.T) {
	dir := writeSubmission(t, `benchmark: artifacts
threshold: 0
deliverables:
  - target/app.bin
components:
  - name: solution
    weight: 1.0
    check:
      type: static
      percent: 100
`, nil)

	stdout, _, exitCode := runScorebench(t, dir, nil, "verify")
	require.Equal(t, 1, exitCode, "a missing deliverable never passes, even at threshold 0")

	report := parseReport(t, stdout)
	assert.Equal(t, 0, report.FinalScore)
	assert.False(t, report.Passed)
	solution, ok := report.Components.Get("solution")
	require.True(t, ok)
	assert.Equal(t, 0, solution.Score)
	assert.Contains(t, solution.Details, "required artifact missing")
}

// TestVerifyCheckTimeout checks the per-component timeout: a check that
// overruns its budget scores zero with a timeout detail.
func TestVerifyCheckTimeout(t *testing.T) {
	dir := writeSubmission(t, `benchmark: slow
threshold: 50
components:
  - name: slow-check
    weight: 0.5
    timeout: 1s
    check:
      type: command
      command: sleep 5
  - name: fast-check
    weight: 0.5
    check:
      type: static
      percent: 100
`, nil)

	stdout, _, exitCode := runScorebench(t, dir, nil, "verify")
	require.Equal(t, 0, exitCode)

	report := parseReport(t, stdout)
	slow, ok := report.Components.Get("slow-check")
	require.True(t, ok)
	assert.Equal(t, 0, slow.Score)
	assert.Contains(t, slow.Details, "timed out after 1s")
	assert.Equal(t, 50, report.FinalScore)
}

// TestVerifyThresholdBoundary checks that a score equal to the threshold
// passes.
func TestVerifyThresholdBoundary(t *testing.T) {
	dir := writeSubmission(t, `benchmark: boundary
threshold: 70
components:
  - name: only
    weight: 1.0
    check:
      type: static
      percent: 70
`, nil)

	stdout, _, exitCode := runScorebench(t, dir, nil, "verify")
	assert.Equal(t, 0, exitCode)
	report := parseReport(t, stdout)
	assert.Equal(t, 70, report.FinalScore)
	assert.True(t, report.Passed)
}

// TestSuiteRunListLeaderboard drives the batch surface: list discovers the
// suite, run scores it and leaves artifacts, leaderboard ranks them.
func TestSuiteRunListLeaderboard(t *testing.T) {
	suite := t.TempDir()
	passing := `benchmark: passing
threshold: 70
components:
  - name: only
    weight: 1.0
    check:
      type: static
      percent: 100
`
	failing := `benchmark: failing
threshold: 70
components:
  - name: only
    weight: 1.0
    check:
      type: static
      percent: 10
`
	require.NoError(t, os.MkdirAll(filepath.Join(suite, "passing"), 0o755))
	require.NoError(t, os.MkdirAll(filepath.Join(suite, "failing"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(suite, "passing", "scorebench.yaml"), []byte(passing), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(suite, "failing", "scorebench.yaml"), []byte(failing), 0o644))

	submission := t.TempDir()
	resultsDir := filepath.Join(t.TempDir(), "results")

	// list shows both benchmarks
	stdout, _, exitCode := runScorebench(t, submission, nil, "list", suite)
	require.Equal(t, 0, exitCode)
	assert.Contains(t, stdout, "passing")
	assert.Contains(t, stdout, "failing")

	// run fails overall because one benchmark fails
	_, stderr, exitCode := runScorebench(t, submission, nil,
		"run", suite, "--submission", submission, "--results-dir", resultsDir)
	assert.Equal(t, 1, exitCode)
	assert.Contains(t, stderr, "passing")

	// every benchmark left a JSON artifact plus the combined batch file
	files, err := filepath.Glob(filepath.Join(resultsDir, "*.json"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, len(files), 3)

	// leaderboard ranks both benchmarks from the artifacts
	stdout, _, exitCode = runScorebench(t, submission, nil,
		"leaderboard", resultsDir, "--output", "json")
	require.Equal(t, 0, exitCode)

	var stats []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &stats))
	require.Len(t, stats, 2)
	assert.Equal(t, "passing", stats[0]["benchmark"], "higher score ranks first")
}

// TestVerifySQLiteHistory checks the store round trip: verify saves a run,
// history lists it, store status reports it.
func TestVerifySQLiteHistory(t *testing.T) {
	dir := writeSubmission(t, `benchmark: stored
threshold: 70
components:
  - name: only
    weight: 1.0
    check:
      type: static
      percent: 95
`, nil)

	// Point the default SQLite store inside the test sandbox.
	home := t.TempDir()
	env := []string{
		"HOME=" + home,
		"SCOREBENCH_STORE_BACKEND=sqlite",
	}

	stdout, _, exitCode := runScorebench(t, dir, env, "verify")
	require.Equal(t, 0, exitCode)
	report := parseReport(t, stdout)
	assert.Equal(t, 95, report.FinalScore)

	stdout, _, exitCode = runScorebench(t, dir, env, "history", "--output", "json")
	require.Equal(t, 0, exitCode)

	var rows []map[string]any
	require.NoError(t, json.Unmarshal([]byte(stdout), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "stored", rows[0]["benchmark"])
	assert.Equal(t, float64(95), rows[0]["final_score"])

	stdout, _, exitCode = runScorebench(t, dir, env, "store", "status")
	require.Equal(t, 0, exitCode)
	assert.Contains(t, stdout, "Total Reports: 1")
}
