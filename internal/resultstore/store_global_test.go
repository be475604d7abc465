package resultstore

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/scorebench/scorebench/schema"
)

func TestStoreLifecycle(t *testing.T) {
	t.Run("single setup", func(t *testing.T) {
		// Clean up any existing test database
		testDBPath := GetReportDBFilePath()
		defer func() { _ = os.Remove(testDBPath) }()
		initOnce = sync.Once{}  // Reset for test
		closeOnce = sync.Once{} // Reset for test

		// Test initialization with SQLite backend
		err := InitStores(schema.SQLiteBackend, "")
		if err != nil {
			t.Fatalf("Failed to initialize report store: %v", err)
		}

		// Test that Manager is accessible
		if Manager == nil {
			t.Fatal("Manager is nil")
		}

		// Test that stores are accessible
		if Manager.GetReportStore() == nil {
			t.Fatal("Report store is nil")
		}

		// Test cleanup
		CloseStores()

		// Verify database file was created
		if _, err := os.Stat(testDBPath); os.IsNotExist(err) {
			t.Fatal("Database file was not created")
		}
	})

	t.Run("idempotent setup", func(t *testing.T) {
		// Clean up any existing test database
		testDBPath := GetReportDBFilePath()
		defer func() { _ = os.Remove(testDBPath) }()
		initOnce = sync.Once{}  // Reset for test
		closeOnce = sync.Once{} // Reset for test

		// Multiple initializations should be safe (sync.Once)
		err1 := InitStores(schema.SQLiteBackend, "")
		err2 := InitStores(schema.SQLiteBackend, "")
		err3 := InitStores(schema.SQLiteBackend, "")

		if err1 != nil {
			t.Fatalf("First init failed: %v", err1)
		}
		if err2 != nil {
			t.Fatalf("Second init failed: %v", err2)
		}
		if err3 != nil {
			t.Fatalf("Third init failed: %v", err3)
		}

		// Multiple closes should be safe (sync.Once)
		CloseStores()
		CloseStores()
		CloseStores()
	})

	t.Run("none backend", func(t *testing.T) {
		initOnce = sync.Once{}  // Reset for test
		closeOnce = sync.Once{} // Reset for test

		// Test initialization with None backend (no database)
		err := InitStores(schema.NoneBackend, "")
		if err != nil {
			t.Fatalf("Failed to initialize report store with none backend: %v", err)
		}

		// Test that Manager is accessible
		if Manager == nil {
			t.Fatal("Manager is nil")
		}

		// Test that stores are accessible
		store := Manager.GetReportStore()
		if store == nil {
			t.Fatal("Report store is nil")
		}

		// Test cleanup (should be safe even with no DB)
		CloseStores()
	})
}

func TestClearReports(t *testing.T) {
	t.Run("sqlite removes file", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "history.db")
		if err := os.WriteFile(dbPath, []byte("stub"), 0o600); err != nil {
			t.Fatalf("Failed to create stub file: %v", err)
		}

		if err := ClearReports(schema.SQLiteBackend, dbPath, ""); err != nil {
			t.Fatalf("ClearReports failed: %v", err)
		}
		if _, err := os.Stat(dbPath); !os.IsNotExist(err) {
			t.Fatal("Database file was not removed")
		}
	})

	t.Run("sqlite missing file is fine", func(t *testing.T) {
		dbPath := filepath.Join(t.TempDir(), "missing.db")
		if err := ClearReports(schema.SQLiteBackend, dbPath, ""); err != nil {
			t.Fatalf("ClearReports failed on missing file: %v", err)
		}
	})

	t.Run("sqlite requires a path", func(t *testing.T) {
		if err := ClearReports(schema.SQLiteBackend, "", ""); err == nil {
			t.Fatal("Expected error for empty SQLite path")
		}
	})

	t.Run("none backend is a no-op", func(t *testing.T) {
		if err := ClearReports(schema.NoneBackend, "", ""); err != nil {
			t.Fatalf("ClearReports failed for none backend: %v", err)
		}
	})

	t.Run("unsupported backend", func(t *testing.T) {
		if err := ClearReports(schema.DatabaseBackend("oracle"), "", ""); err == nil {
			t.Fatal("Expected error for unsupported backend")
		}
	})
}
