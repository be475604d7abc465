package schema

import "time"

// Custom string types for type safety.
type (
	// CheckStatus represents the outcome class of one component check.
	CheckStatus string

	// CheckKind represents a built-in check adapter kind.
	CheckKind string

	// OutputMode represents the format of the output.
	OutputMode string

	// DatabaseBackend represents the database backend for report storage.
	DatabaseBackend string

	// RoundMode represents how fractional scores become integers.
	RoundMode string

	// PenaltyMode represents how named penalties combine into a discount.
	PenaltyMode string
)

// All check statuses supported.
const (
	StatusOK      CheckStatus = "ok"
	StatusError   CheckStatus = "error"
	StatusSkipped CheckStatus = "skipped"
)

// All built-in check kinds supported.
const (
	CommandCheck       CheckKind = "command"
	TestCountCheck     CheckKind = "test-count"
	NumberOutputCheck  CheckKind = "number-output"
	MutationCountCheck CheckKind = "mutation-count"
	FileScanCheck      CheckKind = "file-scan"
	ArtifactCheck      CheckKind = "artifact"
	StaticCheck        CheckKind = "static"
)

// All output modes supported.
const (
	JSONOut     OutputMode = "json" // default for verify
	TableOut    OutputMode = "table"
	CSVOut      OutputMode = "csv"
	MarkdownOut OutputMode = "markdown"
)

// All database backends supported.
const (
	SQLiteBackend     DatabaseBackend = "sqlite"
	MySQLBackend      DatabaseBackend = "mysql"
	PostgreSQLBackend DatabaseBackend = "postgresql"
	NoneBackend       DatabaseBackend = "none" // default
)

// All rounding modes supported.
const (
	RoundFloor   RoundMode = "floor" // default
	RoundNearest RoundMode = "nearest"
)

// All penalty modes supported.
const (
	PenaltySum      PenaltyMode = "sum" // default: base * (1 - min(1, sum))
	PenaltyCompound PenaltyMode = "compound"
)

// Scoring defaults shared by the CLI and the engine.
const (
	DefaultThreshold    = 70
	DefaultCheckTimeout = 60 * time.Second
	DefaultRunTimeout   = 300 * time.Second

	// WeightTolerance is the absolute tolerance allowed when component
	// weights are summed against 1.0.
	WeightTolerance = 1e-6
)

// DefinitionFileName is the benchmark definition file looked up per benchmark.
const DefinitionFileName = "scorebench.yaml"

// ValidCheckStatuses lists all valid check statuses.
var ValidCheckStatuses = map[CheckStatus]struct{}{
	StatusOK:      {},
	StatusError:   {},
	StatusSkipped: {},
}

// ValidCheckKinds lists all valid check kinds.
var ValidCheckKinds = map[CheckKind]struct{}{
	CommandCheck:       {},
	TestCountCheck:     {},
	NumberOutputCheck:  {},
	MutationCountCheck: {},
	FileScanCheck:      {},
	ArtifactCheck:      {},
	StaticCheck:        {},
}

// ValidOutputModes lists all valid output modes.
var ValidOutputModes = map[OutputMode]struct{}{
	JSONOut:     {},
	TableOut:    {},
	CSVOut:      {},
	MarkdownOut: {},
}

// ValidDatabaseBackends lists all valid database backends.
var ValidDatabaseBackends = map[DatabaseBackend]struct{}{
	SQLiteBackend:     {},
	MySQLBackend:      {},
	PostgreSQLBackend: {},
	NoneBackend:       {},
}

// ValidRoundModes lists all valid rounding modes.
var ValidRoundModes = map[RoundMode]struct{}{
	RoundFloor:   {},
	RoundNearest: {},
}

// ValidPenaltyModes lists all valid penalty modes.
var ValidPenaltyModes = map[PenaltyMode]struct{}{
	PenaltySum:      {},
	PenaltyCompound: {},
}
