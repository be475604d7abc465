package contract

import (
	"strings"
	"testing"
)

// FuzzShouldIgnore fuzzes the ShouldIgnore function with random paths and exclude patterns.
func FuzzShouldIgnore(f *testing.F) {
	seeds := []struct {
		path     string
		excludes string // comma-separated
	}{
		{"main.py", "*.log"},
		{"vendor/package/file.py", "vendor/"},
		{"bundle.min.js", "*.min.js"},
		{"config.json", ".json"},
		{"", ""},
		{"very/long/path/to/file.txt", "**/temp/**"},
	}
	for _, seed := range seeds {
		f.Add(seed.path, seed.excludes)
	}

	f.Fuzz(func(_ *testing.T, path string, excludesStr string) {
		excludes := []string{}
		if excludesStr != "" {
			for ex := range strings.SplitSeq(excludesStr, ",") {
				if trimmed := strings.TrimSpace(ex); trimmed != "" {
					excludes = append(excludes, trimmed)
				}
			}
		}
		_ = ShouldIgnore(path, excludes)
	})
}

// FuzzNormalizeArtifactPath fuzzes deliverable path normalization to make
// sure traversal attempts always error instead of escaping the submission.
func FuzzNormalizeArtifactPath(f *testing.F) {
	seeds := []string{
		"solution/openapi.yaml",
		"./relative/file.txt",
		"../escape.txt",
		"a/../../b",
		"",
		"/abs/path/file.go",
	}
	for _, seed := range seeds {
		f.Add(seed)
	}

	f.Fuzz(func(t *testing.T, userPath string) {
		normalized, err := NormalizeArtifactPath("/work/submission", userPath)
		if err != nil {
			return
		}
		if strings.HasPrefix(normalized, "..") {
			t.Errorf("normalized path %q escapes the submission", normalized)
		}
	})
}
