package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/scorebench/scorebench/internal/benchdef"
	"github.com/scorebench/scorebench/internal/contract"
	"github.com/spf13/cobra"
)

// listCmd focused on suite discovery.
var listCmd = &cobra.Command{
	Use:   "list <suite-dir>",
	Short: "List the benchmarks discovered in a suite directory",
	Long: `Walk a suite directory and print every benchmark definition found, with its
component count and pass threshold.

A benchmark is any subdirectory holding a scorebench.yaml definition.
Definitions that fail to parse are listed with their load error so broken
suites are visible before a full run.

Examples:
  # Show the benchmarks a run would execute
  scorebench list ./benchmarks`,
	Args:    cobra.ExactArgs(1),
	PreRunE: suiteSetupWrapper,
	Run: func(_ *cobra.Command, _ []string) {
		if err := executeList(); err != nil {
			contract.LogFatal("Cannot list benchmarks", err)
		}
	},
}

// executeList prints one line per discovered benchmark.
func executeList() error {
	dirs, err := benchdef.Discover(cfg.SuiteDir)
	if err != nil {
		return err
	}
	if len(dirs) == 0 {
		return contract.ConfigurationErrorf("suite has no benchmark definitions under %s", cfg.SuiteDir)
	}

	for _, dir := range dirs {
		bench, err := benchdef.LoadFromDir(cfg, dir)
		if err != nil {
			fmt.Printf("%s: load error: %v\n", filepath.Base(dir), err)
			continue
		}
		threshold := bench.EffectiveThreshold(cfg)
		fmt.Printf("%s (components: %d, threshold: %d)\n", bench.Name, bench.Registry.Len(), threshold)
	}
	return nil
}
