package benchdef

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/scorebench/scorebench/internal/contract"
	"github.com/scorebench/scorebench/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiscover(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"beta", "alpha"} {
		dir := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(dir, 0o755))
		require.NoError(t, os.WriteFile(filepath.Join(dir, schema.DefinitionFileName), []byte("benchmark: x\n"), 0o644))
	}
	// a directory without a definition and a plain file are both skipped
	require.NoError(t, os.MkdirAll(filepath.Join(root, "scratch"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "notes.txt"), []byte("n/a"), 0o644))

	dirs, err := Discover(root)
	require.NoError(t, err)

	assert.Equal(t, []string{
		filepath.Join(root, "alpha"),
		filepath.Join(root, "beta"),
	}, dirs)
}

func TestDiscoverEmpty(t *testing.T) {
	dirs, err := Discover(t.TempDir())

	assert.NoError(t, err)
	assert.Empty(t, dirs)
}

func TestDiscoverMissingRoot(t *testing.T) {
	_, err := Discover(filepath.Join(t.TempDir(), "absent"))

	require.Error(t, err)
	assert.True(t, contract.IsConfigurationError(err))
}
