package db

import (
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
)

func openTestDB(t *testing.T) *sqlx.DB {
	t.Helper()
	database, err := Open("sqlite://" + filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return database
}

func TestMigrateUp_IsIdempotent(t *testing.T) {
	database := openTestDB(t)

	for i := 0; i < 2; i++ {
		if err := MigrateUp(database); err != nil {
			t.Fatalf("MigrateUp() run %d error = %v", i+1, err)
		}
	}

	status, err := MigrateStatus(database)
	if err != nil {
		t.Fatalf("MigrateStatus() error = %v", err)
	}
	if len(status) == 0 {
		t.Fatal("MigrateStatus() returned no migrations")
	}
	for _, m := range status {
		if !m.Applied {
			t.Errorf("migration %s not applied", m.ID)
		}
		if m.AppliedAt == nil {
			t.Errorf("migration %s has no applied_at", m.ID)
		}
		if len(m.Checksum) != 64 {
			t.Errorf("migration %s checksum = %q, want 64 hex chars", m.ID, m.Checksum)
		}
	}
}

func TestMigrateUp_RejectsChangedMigration(t *testing.T) {
	database := openTestDB(t)
	if err := MigrateUp(database); err != nil {
		t.Fatalf("MigrateUp() error = %v", err)
	}

	if _, err := database.Exec("UPDATE migrations SET checksum = 'deadbeef'"); err != nil {
		t.Fatalf("tamper with ledger: %v", err)
	}

	err := MigrateUp(database)
	if err == nil || !strings.Contains(err.Error(), "changed after it was applied") {
		t.Errorf("MigrateUp() error = %v, want checksum mismatch", err)
	}
}

func TestMigrateUp_RejectsUnknownLedgerRow(t *testing.T) {
	database := openTestDB(t)
	if err := MigrateUp(database); err != nil {
		t.Fatalf("MigrateUp() error = %v", err)
	}

	_, err := database.Exec(
		"INSERT INTO migrations (migration_id, checksum, applied_at, execution_ms) VALUES (?, ?, ?, ?)",
		"999_phantom.sql", "abc", time.Now().UTC(), 0)
	if err != nil {
		t.Fatalf("insert phantom row: %v", err)
	}

	err = MigrateUp(database)
	if err == nil || !strings.Contains(err.Error(), "no such migration is embedded") {
		t.Errorf("MigrateUp() error = %v, want phantom ledger row rejected", err)
	}
}
