package checks

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"

	"github.com/scorebench/scorebench/internal/contract"
	"github.com/scorebench/scorebench/schema"
)

// maxScanFileSize caps how much of the submission a single scanned file may
// occupy. Larger files are skipped, not failed: generated bundles and data
// dumps should not dominate a quality gate.
const maxScanFileSize = 1 << 20

// Compile-time interface check
var _ contract.Check = &FileScanCheck{}

// FileScanCheck walks the submission and deducts a penalty per pattern hit
// from a perfect score. It is the adapter for quality gates that grep a
// tree for banned constructs such as debug prints or TODO markers.
type FileScanCheck struct {
	patterns []*regexp.Regexp

	// Includes restricts scanning to files whose base name matches one of
	// these globs. Empty means every file.
	Includes []string

	// Excludes skips paths the way repository excludes do, through
	// contract.ShouldIgnore.
	Excludes []string

	// PerHit is the deduction for each pattern hit.
	PerHit float64
}

// NewFileScanCheck creates a pattern-scanning quality check. perHit at or
// below zero falls back to a 5 point deduction per hit.
func NewFileScanCheck(patterns, includes, excludes []string, perHit float64) (*FileScanCheck, error) {
	if len(patterns) == 0 {
		return nil, errors.New("file-scan check requires at least one pattern")
	}
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pattern := range patterns {
		re, err := regexp.Compile(pattern)
		if err != nil {
			return nil, fmt.Errorf("invalid scan pattern %q: %w", pattern, err)
		}
		compiled = append(compiled, re)
	}
	if perHit <= 0 {
		perHit = 5
	}
	return &FileScanCheck{
		patterns: compiled,
		Includes: includes,
		Excludes: excludes,
		PerHit:   perHit,
	}, nil
}

// Run implements the contract.Check interface.
func (c *FileScanCheck) Run(ctx context.Context, env contract.CheckEnv) (schema.CheckOutcome, error) {
	hits := 0
	scanned := 0
	firstHit := ""

	err := filepath.WalkDir(env.SubmissionDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		rel, err := filepath.Rel(env.SubmissionDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if d.IsDir() {
			if rel != "." && contract.ShouldIgnore(rel+"/", c.Excludes) {
				return filepath.SkipDir
			}
			return nil
		}
		if contract.ShouldIgnore(rel, c.Excludes) || !c.includes(rel) {
			return nil
		}
		if info, err := d.Info(); err != nil || info.Size() > maxScanFileSize {
			return nil
		}

		content, err := os.ReadFile(path)
		if err != nil {
			return nil // unreadable files are skipped, not fatal
		}
		scanned++
		for _, re := range c.patterns {
			found := re.FindAllIndex(content, -1)
			hits += len(found)
			if firstHit == "" && len(found) > 0 {
				firstHit = rel
			}
		}
		return nil
	})
	if err != nil {
		return schema.CheckOutcome{}, err
	}

	score := 100 - c.PerHit*float64(hits)
	details := fmt.Sprintf("no pattern hits in %d files scanned", scanned)
	if hits > 0 {
		details = fmt.Sprintf("%d pattern hits in %d files scanned (first in %s)", hits, scanned, firstHit)
	}
	return schema.PercentOutcome(score, details), nil
}

// includes reports whether the relative path passes the include globs.
func (c *FileScanCheck) includes(rel string) bool {
	if len(c.Includes) == 0 {
		return true
	}
	base := filepath.Base(rel)
	for _, glob := range c.Includes {
		if ok, err := filepath.Match(glob, base); err == nil && ok {
			return true
		}
	}
	return false
}
