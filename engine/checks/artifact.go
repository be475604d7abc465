package checks

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/scorebench/scorebench/internal/contract"
	"github.com/scorebench/scorebench/schema"
)

// Compile-time interface check
var _ contract.Check = &ArtifactCheck{}

// ArtifactCheck scores the fraction of expected artifact paths present in
// the submission. Unlike run-level deliverables, which gate the whole run,
// artifact components give partial credit per file.
type ArtifactCheck struct {
	Paths []string
}

// NewArtifactCheck creates an artifact presence check.
func NewArtifactCheck(paths []string) (*ArtifactCheck, error) {
	if len(paths) == 0 {
		return nil, errors.New("artifact check requires at least one path")
	}
	return &ArtifactCheck{Paths: paths}, nil
}

// Run implements the contract.Check interface.
func (c *ArtifactCheck) Run(_ context.Context, env contract.CheckEnv) (schema.CheckOutcome, error) {
	present := 0
	for _, path := range c.Paths {
		normalized, err := contract.NormalizeArtifactPath(env.SubmissionDir, path)
		if err != nil {
			continue // paths outside the submission count as missing
		}
		if _, err := os.Stat(filepath.Join(env.SubmissionDir, filepath.FromSlash(normalized))); err == nil {
			present++
		}
	}
	details := fmt.Sprintf("%d/%d artifacts present", present, len(c.Paths))
	return schema.CountOutcome(present, len(c.Paths), details), nil
}
