package resultstore

import (
	"database/sql"
	"fmt"
	"time"

	"github.com/go-sql-driver/mysql" // MySQL driver
	"github.com/scorebench/scorebench/internal/contract"
	"github.com/scorebench/scorebench/schema"
	_ "github.com/jackc/pgx/v5/stdlib" // PostgreSQL driver
	_ "modernc.org/sqlite"             // SQLite driver
)

// reportsTable is the name of the table for report history.
const reportsTable = "scorebench_reports"

// ReportStoreImpl implements the ReportStore interface over various
// database backends.
type ReportStoreImpl struct {
	db         *sql.DB
	backend    schema.DatabaseBackend
	driverName string
	connStr    string
}

var _ contract.ReportStore = &ReportStoreImpl{} // Compile-time check

// NewReportStore initializes and returns a new ReportStore based on the
// backend type.
func NewReportStore(backend schema.DatabaseBackend, connStr string) (contract.ReportStore, error) {
	var db *sql.DB
	var err error
	var driverName string

	switch backend {
	case schema.SQLiteBackend:
		driverName = "sqlite"
		dbPath := connStr
		if dbPath == "" {
			dbPath = GetReportDBFilePath()
		}
		db, err = sql.Open(driverName, dbPath)
		if err != nil {
			return nil, fmt.Errorf("failed to open SQLite history at %q: %w. Ensure the directory is writable", dbPath, err)
		}
		// Limit SQLite to a single open connection to avoid "database is locked" errors
		db.SetMaxOpenConns(1)

	case schema.MySQLBackend:
		// connStr should be:
		// user:password@tcp(host:port)/dbname?parseTime=true
		driverName = "mysql"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to MySQL history: %w. Check connection format: user:password@tcp(host:port)/dbname?parseTime=true", err)
		}

	case schema.PostgreSQLBackend:
		// connStr should be:
		// host=localhost port=5432 user=postgres password=mysecretpassword dbname=postgres
		driverName = "pgx"
		db, err = sql.Open(driverName, connStr)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to PostgreSQL history: %w. Check connection format: host=localhost port=5432 user=postgres dbname=mydb", err)
		}

	case schema.NoneBackend:
		// Return a no-op store for disabled history
		return &ReportStoreImpl{
			db:         nil,
			backend:    backend,
			driverName: "",
			connStr:    connStr,
		}, nil

	default:
		return nil, fmt.Errorf("unsupported store backend: %s. Must be sqlite, mysql, postgresql, or none", backend)
	}

	// Ping to verify connection (skip for NoneBackend)
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to connect to %s database. Check that the server is running and connection parameters are valid: %w", backend, err)
	}

	// Create the table schema
	query := getCreateReportsQuery(backend)
	if _, err := db.Exec(query); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create table %s: %w", reportsTable, err)
	}

	return &ReportStoreImpl{
		db:         db,
		backend:    backend,
		driverName: driverName,
		connStr:    connStr,
	}, nil
}

// getCreateReportsQuery returns the CREATE TABLE query for the given backend.
func getCreateReportsQuery(backend schema.DatabaseBackend) string {
	quotedTableName := quoteTableName(reportsTable, backend)
	switch backend {
	case schema.MySQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id VARCHAR(64) PRIMARY KEY,
				benchmark VARCHAR(255) NOT NULL,
				submission VARCHAR(512),
				base_score DOUBLE NOT NULL,
				final_score INT NOT NULL,
				passed BOOLEAN NOT NULL,
				threshold INT NOT NULL,
				report_json TEXT NOT NULL,
				created_at DATETIME(6) NOT NULL
			);
		`, quotedTableName)

	case schema.PostgreSQLBackend:
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id TEXT PRIMARY KEY,
				benchmark TEXT NOT NULL,
				submission TEXT,
				base_score DOUBLE PRECISION NOT NULL,
				final_score INT NOT NULL,
				passed BOOLEAN NOT NULL,
				threshold INT NOT NULL,
				report_json TEXT NOT NULL,
				created_at TIMESTAMPTZ NOT NULL
			);
		`, quotedTableName)

	default: // SQLite
		return fmt.Sprintf(`
			CREATE TABLE IF NOT EXISTS %s (
				run_id TEXT PRIMARY KEY,
				benchmark TEXT NOT NULL,
				submission TEXT,
				base_score REAL NOT NULL,
				final_score INTEGER NOT NULL,
				passed INTEGER NOT NULL,
				threshold INTEGER NOT NULL,
				report_json TEXT NOT NULL,
				created_at TEXT NOT NULL
			);
		`, quotedTableName)
	}
}

// SaveReport persists one report record, replacing any record with the
// same run ID.
func (rs *ReportStoreImpl) SaveReport(record schema.ReportRecord) error {
	// Skip for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil
	}

	quotedTableName := quoteTableName(reportsTable, rs.backend)
	createdAt := formatTime(record.CreatedAt, rs.backend)

	var query string
	switch rs.backend {
	case schema.MySQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (run_id, benchmark, submission, base_score, final_score, passed, threshold, report_json, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?) AS new
			ON DUPLICATE KEY UPDATE benchmark = new.benchmark, submission = new.submission, base_score = new.base_score,
			final_score = new.final_score, passed = new.passed, threshold = new.threshold,
			report_json = new.report_json, created_at = new.created_at`, quotedTableName)

	case schema.PostgreSQLBackend:
		query = fmt.Sprintf(`INSERT INTO %s (run_id, benchmark, submission, base_score, final_score, passed, threshold, report_json, created_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
			ON CONFLICT (run_id) DO UPDATE SET benchmark = EXCLUDED.benchmark, submission = EXCLUDED.submission,
			base_score = EXCLUDED.base_score, final_score = EXCLUDED.final_score, passed = EXCLUDED.passed,
			threshold = EXCLUDED.threshold, report_json = EXCLUDED.report_json, created_at = EXCLUDED.created_at`, quotedTableName)

	default: // SQLite
		query = fmt.Sprintf(`INSERT OR REPLACE INTO %s (run_id, benchmark, submission, base_score, final_score, passed, threshold, report_json, created_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`, quotedTableName)
	}

	_, err := rs.db.Exec(query, record.RunID, record.Benchmark, record.Submission, record.BaseScore,
		record.FinalScore, record.Passed, record.Threshold, record.ReportJSON, createdAt)
	if err != nil {
		return fmt.Errorf("failed to save report %s: %w", record.RunID, err)
	}
	return nil
}

// ListReports returns the most recent records, newest first. An empty
// benchmark filter returns records for all benchmarks.
func (rs *ReportStoreImpl) ListReports(benchmark string, limit int) ([]schema.ReportRecord, error) {
	// Return nothing for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = contract.DefaultHistoryLimit
	}

	quotedTableName := quoteTableName(reportsTable, rs.backend)

	var query string
	var args []any
	switch rs.backend {
	case schema.PostgreSQLBackend:
		if benchmark != "" {
			query = fmt.Sprintf(`%s WHERE benchmark = $1 ORDER BY created_at DESC, run_id LIMIT $2`, selectReportsClause(quotedTableName))
			args = []any{benchmark, limit}
		} else {
			query = fmt.Sprintf(`%s ORDER BY created_at DESC, run_id LIMIT $1`, selectReportsClause(quotedTableName))
			args = []any{limit}
		}
	default: // SQLite and MySQL
		if benchmark != "" {
			query = fmt.Sprintf(`%s WHERE benchmark = ? ORDER BY created_at DESC, run_id LIMIT ?`, selectReportsClause(quotedTableName))
			args = []any{benchmark, limit}
		} else {
			query = fmt.Sprintf(`%s ORDER BY created_at DESC, run_id LIMIT ?`, selectReportsClause(quotedTableName))
			args = []any{limit}
		}
	}

	return rs.queryReports(query, args...)
}

// GetAllReports retrieves every record in the store, oldest first.
func (rs *ReportStoreImpl) GetAllReports() ([]schema.ReportRecord, error) {
	// Return nothing for NoneBackend
	if rs.backend == schema.NoneBackend || rs.db == nil {
		return nil, nil
	}

	quotedTableName := quoteTableName(reportsTable, rs.backend)
	query := fmt.Sprintf(`%s ORDER BY created_at, run_id`, selectReportsClause(quotedTableName))
	return rs.queryReports(query)
}

// selectReportsClause returns the shared SELECT clause for report queries.
func selectReportsClause(quotedTableName string) string {
	return fmt.Sprintf(`SELECT run_id, benchmark, submission, base_score, final_score, passed, threshold, report_json, created_at FROM %s`, quotedTableName)
}

// queryReports runs a report query and scans the rows per backend.
func (rs *ReportStoreImpl) queryReports(query string, args ...any) ([]schema.ReportRecord, error) {
	rows, err := rs.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []schema.ReportRecord
	for rows.Next() {
		var record schema.ReportRecord

		switch rs.backend {
		case schema.SQLiteBackend:
			var createdAtStr string
			if err := rows.Scan(&record.RunID, &record.Benchmark, &record.Submission, &record.BaseScore,
				&record.FinalScore, &record.Passed, &record.Threshold, &record.ReportJSON, &createdAtStr); err != nil {
				return nil, fmt.Errorf("failed to scan report: %w", err)
			}
			createdAt, err := time.Parse(time.RFC3339, createdAtStr)
			if err != nil {
				return nil, fmt.Errorf("failed to parse created_at: %w", err)
			}
			record.CreatedAt = createdAt
		default: // MySQL and PostgreSQL store as native datetime
			if err := rows.Scan(&record.RunID, &record.Benchmark, &record.Submission, &record.BaseScore,
				&record.FinalScore, &record.Passed, &record.Threshold, &record.ReportJSON, &record.CreatedAt); err != nil {
				return nil, fmt.Errorf("failed to scan report: %w", err)
			}
		}

		results = append(results, record)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating reports: %w", err)
	}
	return results, nil
}

// GetStatus returns status information about the report store.
func (rs *ReportStoreImpl) GetStatus() (schema.StoreStatus, error) {
	status := schema.StoreStatus{
		Backend:   string(rs.backend),
		Connected: rs.db != nil,
	}

	if rs.backend == schema.NoneBackend || rs.db == nil {
		return status, nil
	}

	quotedTableName := quoteTableName(reportsTable, rs.backend)

	// Get total reports
	countQuery := fmt.Sprintf("SELECT COUNT(*) FROM %s", quotedTableName)
	row := rs.db.QueryRow(countQuery)
	if err := row.Scan(&status.TotalReports); err != nil {
		return status, fmt.Errorf("failed to get total reports: %w", err)
	}

	if status.TotalReports > 0 {
		// Get passed reports
		var passedQuery string
		switch rs.backend {
		case schema.PostgreSQLBackend:
			passedQuery = fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE passed = $1", quotedTableName)
		default: // SQLite and MySQL
			passedQuery = fmt.Sprintf("SELECT COUNT(*) FROM %s WHERE passed = ?", quotedTableName)
		}
		row = rs.db.QueryRow(passedQuery, true)
		if err := row.Scan(&status.PassedReports); err != nil {
			return status, fmt.Errorf("failed to get passed reports: %w", err)
		}

		// Get distinct benchmarks
		distinctQuery := fmt.Sprintf("SELECT COUNT(DISTINCT benchmark) FROM %s", quotedTableName)
		row = rs.db.QueryRow(distinctQuery)
		if err := row.Scan(&status.DistinctBenches); err != nil {
			return status, fmt.Errorf("failed to get distinct benchmarks: %w", err)
		}

		// Get last and oldest report times
		last, err := rs.scanEdgeTime(fmt.Sprintf("SELECT MAX(created_at) FROM %s", quotedTableName))
		if err != nil {
			return status, fmt.Errorf("failed to get last report time: %w", err)
		}
		status.LastReportTime = last

		oldest, err := rs.scanEdgeTime(fmt.Sprintf("SELECT MIN(created_at) FROM %s", quotedTableName))
		if err != nil {
			return status, fmt.Errorf("failed to get oldest report time: %w", err)
		}
		status.OldestReport = oldest
	}

	// Estimate table size (approximate)
	// For SQLite, use page_count * page_size
	// For others, use database-specific size queries with rough fallbacks
	switch rs.backend {
	case schema.SQLiteBackend:
		sizeQuery := "SELECT page_count * page_size FROM pragma_page_count(), pragma_page_size()"
		row = rs.db.QueryRow(sizeQuery)
		if err := row.Scan(&status.TableSizeBytes); err != nil {
			// If pragma fails, skip size
			status.TableSizeBytes = 0
		}

	case schema.MySQLBackend:
		// Fallback rough estimate if information_schema query fails
		status.TableSizeBytes = int64(status.TotalReports) * 1000

		cfg, err := mysql.ParseDSN(rs.connStr)
		if err != nil || cfg.DBName == "" {
			break
		}
		sizeQuery := "SELECT data_length + index_length FROM information_schema.tables WHERE table_schema = ? AND table_name = ?"
		row := rs.db.QueryRow(sizeQuery, cfg.DBName, reportsTable)
		if err := row.Scan(&status.TableSizeBytes); err != nil {
			status.TableSizeBytes = int64(status.TotalReports) * 1000
		}

	case schema.PostgreSQLBackend:
		sizeQuery := "SELECT pg_total_relation_size($1)"
		row = rs.db.QueryRow(sizeQuery, reportsTable)
		if err := row.Scan(&status.TableSizeBytes); err != nil {
			status.TableSizeBytes = int64(status.TotalReports) * 1000 // Fallback rough estimate
		}
	}

	return status, nil
}

// scanEdgeTime reads a MAX/MIN created_at aggregate per backend.
func (rs *ReportStoreImpl) scanEdgeTime(query string) (time.Time, error) {
	row := rs.db.QueryRow(query)
	switch rs.backend {
	case schema.SQLiteBackend:
		var value string
		if err := row.Scan(&value); err != nil {
			return time.Time{}, err
		}
		return time.Parse(time.RFC3339, value)
	default: // MySQL and PostgreSQL store as native datetime
		var value time.Time
		if err := row.Scan(&value); err != nil {
			return time.Time{}, err
		}
		return value, nil
	}
}

// Close closes the underlying DB connection.
func (rs *ReportStoreImpl) Close() error {
	if rs.db != nil {
		return rs.db.Close()
	}
	return nil
}

// formatTime converts a time.Time to the appropriate format for the
// backend. SQLite stores RFC3339 in UTC so that string order matches
// time order.
func formatTime(t time.Time, backend schema.DatabaseBackend) any {
	switch backend {
	case schema.SQLiteBackend:
		return t.UTC().Format(time.RFC3339)
	default:
		return t
	}
}
