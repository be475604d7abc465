package contract

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPlainResultLabel(t *testing.T) {
	assert.Equal(t, "PASS", GetPlainResultLabel(true))
	assert.Equal(t, "FAIL", GetPlainResultLabel(false))
}

func TestGetColorResultLabel(t *testing.T) {
	// Color output may be disabled in test environments; the label text
	// must survive either way.
	assert.Contains(t, GetColorResultLabel(true), "PASS")
	assert.Contains(t, GetColorResultLabel(false), "FAIL")
}

func TestGetColorLabel(t *testing.T) {
	tests := []struct {
		name     string
		score    float64
		expected string
	}{
		{"Excellent", 95.0, "Excellent"},
		{"Passing", 75.0, "Passing"},
		{"Weak", 50.0, "Weak"},
		{"Failing", 10.0, "Failing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Contains(t, GetColorLabel(tt.score), tt.expected)
		})
	}
}

func TestSelectOutputFile(t *testing.T) {
	// Empty path falls back to stdout.
	f, err := SelectOutputFile("")
	require.NoError(t, err)
	assert.Equal(t, os.Stdout, f)

	// A real path creates the file.
	path := filepath.Join(t.TempDir(), "report.json")
	f, err = SelectOutputFile(path)
	require.NoError(t, err)
	defer func() { _ = f.Close() }()

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestShouldIgnore(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		excludes []string
		want     bool
	}{
		{"no excludes", "src/app.py", nil, false},
		{"extension match", "bundle.min.js", []string{".min.js"}, true},
		{"glob match", "dist/app.min.js", []string{"*.min.js"}, true},
		{"prefix match", "vendor/lib.py", []string{"vendor/"}, true},
		{"substring match", "src/generated_code.py", []string{"generated"}, true},
		{"unrelated", "src/app.py", []string{"vendor/", ".min.js"}, false},
		{"blank pattern skipped", "src/app.py", []string{"  "}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ShouldIgnore(tt.path, tt.excludes))
		})
	}
}

func TestGetHistoryDBFilePath(t *testing.T) {
	path := GetHistoryDBFilePath()
	assert.True(t, strings.HasSuffix(path, ".scorebench_history.db"))
}

func TestNormalizeArtifactPath(t *testing.T) {
	submission := filepath.Join(string(filepath.Separator), "work", "submission")

	tests := []struct {
		name        string
		input       string
		want        string
		expectError bool
	}{
		{"relative path", "solution/openapi.yaml", "solution/openapi.yaml", false},
		{"dot prefixed", "./solution/openapi.yaml", "solution/openapi.yaml", false},
		{"absolute inside", filepath.Join(submission, "openapi.yaml"), "openapi.yaml", false},
		{"escapes submission", "../outside.yaml", "", true},
		{"sneaky traversal", "solution/../../outside.yaml", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeArtifactPath(submission, tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTruncatePath(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		maxWidth int
		want     string
	}{
		{"fits", "short.py", 20, "short.py"},
		{"truncated", "a/very/long/path/to/a/file.py", 12, "...a/file.py"},
		{"tiny width untouched", "abcdefgh", 3, "abcdefgh"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, TruncatePath(tt.path, tt.maxWidth))
		})
	}
}

func TestParseBoolString(t *testing.T) {
	tests := []struct {
		input       string
		want        bool
		expectError bool
	}{
		{"yes", true, false},
		{"TRUE", true, false},
		{"1", true, false},
		{"no", false, false},
		{"False", false, false},
		{"0", false, false},
		{"maybe", false, true},
		{"", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseBoolString(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
