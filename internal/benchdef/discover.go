package benchdef

import (
	"os"
	"path/filepath"

	"github.com/scorebench/scorebench/internal/contract"
	"github.com/scorebench/scorebench/schema"
)

// Discover returns the benchmark directories under root: every immediate
// subdirectory holding a definition file. os.ReadDir sorts entries by
// name, so suite order is stable across runs.
func Discover(root string) ([]string, error) {
	entries, err := os.ReadDir(root)
	if err != nil {
		return nil, contract.ConfigurationErrorf("cannot read suite directory %s: %w", root, err)
	}

	var dirs []string
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		dir := filepath.Join(root, entry.Name())
		if _, err := os.Stat(filepath.Join(dir, schema.DefinitionFileName)); err == nil {
			dirs = append(dirs, dir)
		}
	}
	return dirs, nil
}
