package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"

	"github.com/scorebench/scorebench/schema"
)

// Result label constants.
const (
	PassValue = "PASS" // Passing result
	FailValue = "FAIL" // Failing result
)

// Color variables for console output.
var (
	PassColor      = color.New(color.FgGreen, color.Bold) // passColor marks runs that met the threshold.
	FailColor      = color.New(color.FgRed, color.Bold)   // failColor marks runs that missed the threshold.
	ExcellentColor = color.New(color.FgGreen, color.Bold) // excellentColor represents standout averages.
	PassingColor   = color.New(color.FgCyan)              // passingColor represents healthy averages.
	WeakColor      = color.New(color.FgYellow)            // weakColor represents below-threshold averages.
	FailingColor   = color.New(color.FgRed, color.Bold)   // failingColor represents floor averages.
	ErrorColor     = color.New(color.FgRed)               // errorColor marks errored checks.
	SkipColor      = color.New(color.FgYellow)            // skipColor marks skipped checks.
)

// GetPlainResultLabel returns PASS or FAIL as plain text.
func GetPlainResultLabel(passed bool) string {
	if passed {
		return PassValue
	}
	return FailValue
}

// GetColorResultLabel returns PASS or FAIL with console colors applied.
func GetColorResultLabel(passed bool) string {
	if passed {
		return PassColor.Sprint(PassValue)
	}
	return FailColor.Sprint(FailValue)
}

// GetColorLabel returns a colored health label for console output (table).
// It uses schema.GetPlainLabel to determine the string, and then applies
// the appropriate color.
func GetColorLabel(score float64) string {
	text := schema.GetPlainLabel(score)

	switch text {
	case "Excellent":
		return ExcellentColor.Sprint(text)
	case "Passing":
		return PassingColor.Sprint(text)
	case "Weak":
		return WeakColor.Sprint(text)
	default: // "Failing"
		return FailingColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on
// the provided file path. It falls back to os.Stdout when no path is given.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// ShouldIgnore returns true if the given path matches any of the exclude patterns.
// It supports simple glob patterns (using filepath.Match) when the pattern
// contains wildcard characters (*, ?, [ ]). Patterns ending with '/' are treated
// as prefixes. Patterns starting with '.' are treated as suffix (extension) matches.
// A user can provide patterns like "vendor/", "node_modules/", "*.min.js".
func ShouldIgnore(path string, excludes []string) bool {
	for _, ex := range excludes {
		ex = strings.TrimSpace(ex)
		if ex == "" {
			continue
		}

		// If the pattern contains glob characters, try filepath.Match.
		if strings.ContainsAny(ex, "*?[") || strings.Contains(ex, "**") {
			pat := strings.ReplaceAll(ex, "**", "*")
			if ok, err := filepath.Match(pat, path); err == nil && ok {
				return true
			}
			// Also try matching against the base filename (e.g. *.min.js)
			if ok, err := filepath.Match(pat, filepath.Base(path)); err == nil && ok {
				return true
			}
			continue
		}

		// Handle prefix, suffix, or substring matches
		switch {
		case strings.HasSuffix(ex, "/"):
			if strings.HasPrefix(path, ex) {
				return true
			}
		case strings.HasPrefix(ex, "."):
			if strings.HasSuffix(path, ex) {
				return true
			}
		case strings.Contains(path, ex):
			return true
		}
	}
	return false
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// GetHistoryDBFilePath returns the path to the SQLite DB file for report storage.
func GetHistoryDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".scorebench_history.db"
	}
	return filepath.Join(homeDir, ".scorebench_history.db")
}

// NormalizeArtifactPath normalizes a deliverable path relative to the
// submission root and ensures it stays within the submission boundaries.
func NormalizeArtifactPath(submissionDir, userPath string) (string, error) {
	// Handle absolute paths by making them relative to the submission
	if filepath.IsAbs(userPath) {
		relPath, err := filepath.Rel(submissionDir, userPath)
		if err != nil {
			return "", fmt.Errorf("path is outside submission: %s", userPath)
		}
		userPath = relPath
	}

	// Clean the path to resolve any .. or . components
	cleanPath := filepath.Clean(userPath)

	// Ensure the path doesn't go outside the submission (no leading .. after cleaning)
	if strings.HasPrefix(cleanPath, "..") {
		return "", fmt.Errorf("path is outside submission: %s", userPath)
	}

	// Convert to forward slashes for consistency across definitions
	normalized := strings.ReplaceAll(cleanPath, string(filepath.Separator), "/")

	// Remove leading ./ if present
	normalized = strings.TrimPrefix(normalized, "./")

	return normalized, nil
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to ensure there's space for both the "..." prefix and at least one character of content.
// Without this check, small maxWidth values could cause slice bounds errors in the truncation calculation.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
