package contract

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/scorebench/scorebench/schema"
)

// Default values for configuration.
const (
	DefaultWorkers      = 1
	DefaultHistoryLimit = 20
	MaxHistoryLimit     = 1000
)

// DateTimeFormat is the default date time representation.
var DateTimeFormat = time.RFC3339

// ProfileConfig holds profiling settings.
type ProfileConfig struct {
	Enabled bool
	Prefix  string
}

// Config holds the runtime configuration for a verification run.
// This struct remains the "final, validated" config.
type Config struct {
	SubmissionDir  string // resolved absolute path to the submission
	SuiteDir       string // resolved absolute path for suite commands
	DefinitionPath string
	BenchmarkName  string // overrides the definition's name when set

	Threshold    int
	CheckTimeout time.Duration
	RunTimeout   time.Duration
	Workers      int
	RoundMode    schema.RoundMode
	PenaltyMode  schema.PenaltyMode

	Output       schema.OutputMode
	OutputFile   string
	ResultsDir   string
	HistoryLimit int
	Width        int // table width override, 0 = auto-detect

	StoreBackend   schema.DatabaseBackend
	StoreDBConnect string // Please use env var as this is plaintext

	UseEmojis bool // Enable emojis in progress output
	UseColors bool // Enable colored labels in table output
}

// ConfigRawInput holds the raw inputs from all sources (flags, env, config file).
// Viper unmarshals into this struct.
type ConfigRawInput struct {
	// These are set manually from positional args, so no tag
	SubmissionStr string
	SuiteStr      string

	// --- Fields from rootCmd.PersistentFlags() ---
	Definition     string `mapstructure:"definition"`
	Benchmark      string `mapstructure:"benchmark"`
	Threshold      int    `mapstructure:"threshold"`
	CheckTimeout   string `mapstructure:"check-timeout"`
	RunTimeout     string `mapstructure:"run-timeout"`
	Workers        int    `mapstructure:"workers"`
	RoundMode      string `mapstructure:"round-mode"`
	PenaltyMode    string `mapstructure:"penalty-mode"`
	Output         string `mapstructure:"output"`
	OutputFile     string `mapstructure:"output-file"`
	ResultsDir     string `mapstructure:"results-dir"`
	Limit          int    `mapstructure:"limit"`
	Width          int    `mapstructure:"width"`
	StoreBackend   string `mapstructure:"store-backend"`
	StoreDBConnect string `mapstructure:"store-db-connect"`
	Emoji          string `mapstructure:"emoji"`
	Color          string `mapstructure:"color"`
}

// Clone returns a copy of the Config struct.
func (c *Config) Clone() *Config {
	clone := *c
	return &clone
}

// ProcessAndValidate performs all parsing and validation on the raw inputs
// and updates the final Config struct.
func ProcessAndValidate(cfg *Config, input *ConfigRawInput) error {
	if err := validateSimpleInputs(cfg, input); err != nil {
		return err
	}
	if err := processDurations(cfg, input); err != nil {
		return err
	}
	if err := validateBackendConfigs(cfg, input); err != nil {
		return err
	}
	if err := resolvePaths(cfg, input); err != nil {
		return err
	}
	return nil
}

// validateSimpleInputs processes and validates all non-path related fields.
func validateSimpleInputs(cfg *Config, input *ConfigRawInput) error {
	// --- 0. Transfer simple non-validated fields from input -> cfg ---
	cfg.BenchmarkName = strings.TrimSpace(input.Benchmark)
	cfg.OutputFile = input.OutputFile
	cfg.ResultsDir = input.ResultsDir

	// Parse emoji flag
	emojis, err := ParseBoolString(input.Emoji)
	if err != nil {
		return fmt.Errorf("invalid --emoji value: %w", err)
	}
	cfg.UseEmojis = emojis

	// Parse color flag
	colors, err := ParseBoolString(input.Color)
	if err != nil {
		return fmt.Errorf("invalid --color value: %w", err)
	}
	cfg.UseColors = colors

	// --- 1. Threshold Validation ---
	if input.Threshold < 0 || input.Threshold > 100 {
		return fmt.Errorf("threshold must be between 0 and 100 (received %d)", input.Threshold)
	}
	cfg.Threshold = input.Threshold

	// --- 2. Workers Validation ---
	if input.Workers <= 0 {
		return fmt.Errorf("workers must be greater than 0 (received %d)", input.Workers)
	}
	cfg.Workers = input.Workers

	// --- 3. History Limit Validation ---
	if input.Limit <= 0 || input.Limit > MaxHistoryLimit {
		return fmt.Errorf("limit must be greater than 0 and cannot exceed %d (received %d)", MaxHistoryLimit, input.Limit)
	}
	cfg.HistoryLimit = input.Limit

	// --- 4. Width Validation ---
	if input.Width < 0 {
		return fmt.Errorf("width cannot be negative (received %d)", input.Width)
	}
	cfg.Width = input.Width

	// --- 5. Scoring Mode Validation ---
	cfg.RoundMode = schema.RoundMode(strings.ToLower(input.RoundMode))
	if _, ok := schema.ValidRoundModes[cfg.RoundMode]; !ok {
		return fmt.Errorf("invalid round mode '%s'. must be floor, nearest", input.RoundMode)
	}

	cfg.PenaltyMode = schema.PenaltyMode(strings.ToLower(input.PenaltyMode))
	if _, ok := schema.ValidPenaltyModes[cfg.PenaltyMode]; !ok {
		return fmt.Errorf("invalid penalty mode '%s'. must be sum, compound", input.PenaltyMode)
	}

	// --- 6. Output Validation ---
	cfg.Output = schema.OutputMode(strings.ToLower(input.Output))
	if _, ok := schema.ValidOutputModes[cfg.Output]; !ok {
		return fmt.Errorf("invalid output format '%s'. must be json, table, csv, markdown", input.Output)
	}

	return nil
}

// processDurations parses the timeout values.
func processDurations(cfg *Config, input *ConfigRawInput) error {
	checkTimeout, err := time.ParseDuration(input.CheckTimeout)
	if err != nil {
		return fmt.Errorf("invalid check-timeout '%s': %w", input.CheckTimeout, err)
	}
	if checkTimeout <= 0 {
		return fmt.Errorf("check-timeout must be positive (received %s)", checkTimeout)
	}
	cfg.CheckTimeout = checkTimeout

	runTimeout, err := time.ParseDuration(input.RunTimeout)
	if err != nil {
		return fmt.Errorf("invalid run-timeout '%s': %w", input.RunTimeout, err)
	}
	if runTimeout <= 0 {
		return fmt.Errorf("run-timeout must be positive (received %s)", runTimeout)
	}
	cfg.RunTimeout = runTimeout

	return nil
}

// validateBackendConfigs validates the report store backend configuration.
func validateBackendConfigs(cfg *Config, input *ConfigRawInput) error {
	backend := strings.ToLower(input.StoreBackend)
	if backend == "" {
		backend = string(schema.NoneBackend)
	}
	cfg.StoreBackend = schema.DatabaseBackend(backend)
	if _, ok := schema.ValidDatabaseBackends[cfg.StoreBackend]; !ok {
		return fmt.Errorf("invalid store backend '%s'. must be sqlite, mysql, postgresql, none", input.StoreBackend)
	}
	cfg.StoreDBConnect = input.StoreDBConnect
	return ValidateDatabaseConnectionString(cfg.StoreBackend, cfg.StoreDBConnect)
}

// ValidateDatabaseConnectionString validates the format of database connection strings
// for MySQL and PostgreSQL backends.
func ValidateDatabaseConnectionString(backend schema.DatabaseBackend, connStr string) error {
	switch backend {
	case schema.SQLiteBackend, schema.NoneBackend:
		return nil
	case schema.MySQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "@tcp(") {
			return fmt.Errorf("MySQL connection string must contain '@tcp(' for host:port specification")
		}
		if !strings.Contains(connStr, "/") {
			return fmt.Errorf("MySQL connection string must contain '/' followed by database name")
		}
	case schema.PostgreSQLBackend:
		if connStr == "" {
			return fmt.Errorf("store-db-connect is required when using %s backend", backend)
		}
		if !strings.Contains(connStr, "host=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'host=' parameter")
		}
		if !strings.Contains(connStr, "dbname=") {
			return fmt.Errorf("PostgreSQL connection string must contain 'dbname=' parameter")
		}
	}
	return nil
}

// ProcessProfilingConfig handles the profiling flag and sets up profiling configuration.
func ProcessProfilingConfig(profile *ProfileConfig, profilePrefix string) error {
	if profilePrefix != "" {
		profile.Enabled = true
		profile.Prefix = profilePrefix
	}
	return nil
}

// RevalidateSubmission re-resolves the submission directory after it has been
// overridden outside the normal flag pipeline (e.g. by MCP tool arguments).
func RevalidateSubmission(cfg *Config) error {
	input := &ConfigRawInput{
		SubmissionStr: cfg.SubmissionDir,
		Definition:    cfg.DefinitionPath,
	}
	return resolvePaths(cfg, input)
}

// resolvePaths resolves the submission and suite directories.
func resolvePaths(cfg *Config, input *ConfigRawInput) error {
	cfg.DefinitionPath = input.Definition

	submission := input.SubmissionStr
	if submission == "" {
		submission = "."
	}
	absSubmission, err := filepath.Abs(submission)
	if err != nil {
		return err
	}
	info, err := os.Stat(absSubmission)
	if err != nil {
		return fmt.Errorf("submission directory %q is not accessible: %w", submission, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("submission path %q must be a directory", submission)
	}
	cfg.SubmissionDir = filepath.Clean(absSubmission)

	if input.SuiteStr != "" {
		absSuite, err := filepath.Abs(input.SuiteStr)
		if err != nil {
			return err
		}
		info, err := os.Stat(absSuite)
		if err != nil {
			return fmt.Errorf("suite directory %q is not accessible: %w", input.SuiteStr, err)
		}
		if !info.IsDir() {
			return fmt.Errorf("suite path %q must be a directory", input.SuiteStr)
		}
		cfg.SuiteDir = filepath.Clean(absSuite)
	}

	return nil
}
