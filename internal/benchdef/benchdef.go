// Package benchdef loads benchmark definition files into runnable
// benchmarks. A definition is a scorebench.yaml describing the weighted
// components, their checks and the run-level scoring inputs.
package benchdef

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/scorebench/scorebench/engine"
	"github.com/scorebench/scorebench/engine/checks"
	"github.com/scorebench/scorebench/internal/contract"
	"github.com/scorebench/scorebench/schema"
	"gopkg.in/yaml.v3"
)

var _ engine.BenchmarkLoader = LoadFromDir // Compile-time check

// definitionFile mirrors the YAML layout of a benchmark definition.
type definitionFile struct {
	Benchmark    string          `yaml:"benchmark"`
	Threshold    int             `yaml:"threshold"`
	Deliverables []string        `yaml:"deliverables"`
	Penalties    penaltySpec     `yaml:"penalties"`
	Components   []componentSpec `yaml:"components"`
}

type penaltySpec struct {
	TimePenalty      float64 `yaml:"time-penalty"`
	IterationPenalty float64 `yaml:"iteration-penalty"`
	ErrorPenalty     float64 `yaml:"error-penalty"`
}

type componentSpec struct {
	Name       string    `yaml:"name"`
	Weight     float64   `yaml:"weight"`
	Timeout    string    `yaml:"timeout"`
	Requires   []string  `yaml:"requires"`
	RequireMin int       `yaml:"require-min"`
	Check      checkSpec `yaml:"check"`
}

// checkSpec is the union of all adapter fields; the type key selects which
// ones apply.
type checkSpec struct {
	Type string `yaml:"type"`

	// command, test-count, number-output, mutation-count
	Command string `yaml:"command"`

	// test-count
	PassPattern string `yaml:"pass-pattern"`
	FailPattern string `yaml:"fail-pattern"`

	// number-output
	Invert bool `yaml:"invert"`

	// file-scan
	Patterns []string `yaml:"patterns"`
	Includes []string `yaml:"includes"`
	Excludes []string `yaml:"excludes"`
	PerHit   float64  `yaml:"per-hit"`

	// artifact
	Paths []string `yaml:"paths"`

	// static
	Percent float64 `yaml:"percent"`
	Details string  `yaml:"details"`
}

// Load parses one benchmark definition file. The result is structurally
// sound but not yet validated as a whole; registry validation runs at the
// start of every verification.
func Load(path string) (*engine.Benchmark, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, contract.ConfigurationErrorf("definition not found: %w", err)
	}
	defer func() { _ = f.Close() }()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)

	var def definitionFile
	if err := dec.Decode(&def); err != nil && !errors.Is(err, io.EOF) {
		return nil, contract.ConfigurationErrorf("invalid definition %s: %w", path, err)
	}
	return build(path, &def)
}

// LoadFromDir loads the definition file inside one benchmark directory.
// Its signature matches engine.BenchmarkLoader so suite runs use it as-is.
func LoadFromDir(_ *contract.Config, dir string) (*engine.Benchmark, error) {
	return Load(filepath.Join(dir, schema.DefinitionFileName))
}

// build turns a parsed definition into a Benchmark.
func build(path string, def *definitionFile) (*engine.Benchmark, error) {
	if def.Threshold < 0 || def.Threshold > 100 {
		return nil, contract.ConfigurationErrorf("threshold must be between 0 and 100 (received %d)", def.Threshold)
	}

	penalties := schema.Penalties{
		TimePenalty:      def.Penalties.TimePenalty,
		IterationPenalty: def.Penalties.IterationPenalty,
		ErrorPenalty:     def.Penalties.ErrorPenalty,
	}
	for _, v := range penalties.Values() {
		if v < 0 || v > 1 {
			return nil, contract.ConfigurationErrorf("penalties must be fractions between 0 and 1 (received %v)", v)
		}
	}

	if len(def.Components) == 0 {
		return nil, contract.NewConfigurationError(contract.ErrEmptyRegistry)
	}
	registry := engine.NewRegistry()
	for _, comp := range def.Components {
		check, err := buildCheck(comp.Name, &comp.Check)
		if err != nil {
			return nil, err
		}
		timeout, err := parseTimeout(comp.Name, comp.Timeout)
		if err != nil {
			return nil, err
		}
		err = registry.Add(engine.Component{
			Name:       strings.TrimSpace(comp.Name),
			Weight:     comp.Weight,
			Check:      check,
			Timeout:    timeout,
			Requires:   comp.Requires,
			RequireMin: comp.RequireMin,
		})
		if err != nil {
			return nil, err
		}
	}

	name := strings.TrimSpace(def.Benchmark)
	if name == "" {
		name = benchmarkNameFromPath(path)
	}
	return &engine.Benchmark{
		Name:         name,
		Threshold:    def.Threshold,
		Deliverables: def.Deliverables,
		Registry:     registry,
		Penalties:    penalties,
	}, nil
}

// buildCheck constructs the adapter selected by the check spec's type key.
func buildCheck(component string, spec *checkSpec) (contract.Check, error) {
	kind := schema.CheckKind(strings.ToLower(strings.TrimSpace(spec.Type)))
	if _, ok := schema.ValidCheckKinds[kind]; !ok {
		return nil, contract.ConfigurationErrorf("component %q has unknown check type %q", component, spec.Type)
	}

	var (
		check contract.Check
		err   error
	)
	switch kind {
	case schema.CommandCheck:
		check, err = checks.NewCommandCheck(spec.Command)
	case schema.TestCountCheck:
		check, err = checks.NewTestCountCheck(spec.Command, spec.PassPattern, spec.FailPattern)
	case schema.NumberOutputCheck:
		check, err = checks.NewNumberOutputCheck(spec.Command, spec.Invert)
	case schema.MutationCountCheck:
		check, err = checks.NewMutationCountCheck(spec.Command)
	case schema.FileScanCheck:
		check, err = checks.NewFileScanCheck(spec.Patterns, spec.Includes, spec.Excludes, spec.PerHit)
	case schema.ArtifactCheck:
		check, err = checks.NewArtifactCheck(spec.Paths)
	default: // schema.StaticCheck
		check = &checks.StaticCheck{Percent: spec.Percent, Details: spec.Details}
	}
	if err != nil {
		return nil, contract.ConfigurationErrorf("component %q: %w", component, err)
	}
	return check, nil
}

// parseTimeout parses an optional per-component timeout string.
func parseTimeout(component, raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	timeout, err := time.ParseDuration(raw)
	if err != nil {
		return 0, contract.ConfigurationErrorf("component %q has invalid timeout '%s': %w", component, raw, err)
	}
	if timeout <= 0 {
		return 0, contract.ConfigurationErrorf("component %q timeout must be positive (received %s)", component, timeout)
	}
	return timeout, nil
}

// benchmarkNameFromPath falls back to the definition's directory name when
// the definition does not name itself.
func benchmarkNameFromPath(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		abs = path
	}
	return filepath.Base(filepath.Dir(abs))
}
