package db

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io/fs"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/godshot/godshot/migrations"
)

// MigrationStatus describes one embedded migration and whether the ledger
// records it as applied.
type MigrationStatus struct {
	ID          string
	Checksum    string
	Applied     bool
	AppliedAt   *time.Time
	ExecutionMs int64
}

// migration is one embedded .sql file, identified by basename and pinned
// by a SHA-256 checksum so an applied file cannot change silently.
type migration struct {
	ID       string
	Checksum string
	SQL      string
}

// The ledger lives outside the versioned schema files: it must exist
// before any of them runs. The DDL is valid on both sqlite and postgres.
const ledgerDDL = `
CREATE TABLE IF NOT EXISTS migrations (
    migration_id TEXT PRIMARY KEY,
    checksum TEXT NOT NULL,
    applied_at TIMESTAMP NOT NULL,
    execution_ms INTEGER NOT NULL
)`

// MigrateUp applies every embedded migration the ledger does not yet
// record, each inside its own transaction so a failed file leaves no
// partially recorded state.
func MigrateUp(db *sqlx.DB) error {
	all, applied, err := migrationState(db)
	if err != nil {
		return err
	}

	byID := make(map[string]migration, len(all))
	for _, m := range all {
		byID[m.ID] = m
	}
	for id, prev := range applied {
		m, ok := byID[id]
		if !ok {
			return fmt.Errorf("ledger records %s but no such migration is embedded", id)
		}
		if m.Checksum != prev.Checksum {
			return fmt.Errorf("migration %s changed after it was applied: checksum %s, ledger has %s", id, m.Checksum, prev.Checksum)
		}
	}

	for _, m := range all {
		if _, ok := applied[m.ID]; ok {
			continue
		}

		start := time.Now()
		tx, err := db.Beginx()
		if err != nil {
			return fmt.Errorf("begin migration %s: %w", m.ID, err)
		}
		if err := runStatements(tx, m.SQL); err != nil {
			tx.Rollback()
			return fmt.Errorf("apply migration %s: %w", m.ID, err)
		}
		if err := recordApplied(tx, m, time.Since(start)); err != nil {
			tx.Rollback()
			return fmt.Errorf("record migration %s: %w", m.ID, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("commit migration %s: %w", m.ID, err)
		}
	}
	return nil
}

// MigrateStatus returns every embedded migration in apply order, merged
// with the ledger row when one exists.
func MigrateStatus(db *sqlx.DB) ([]MigrationStatus, error) {
	all, applied, err := migrationState(db)
	if err != nil {
		return nil, err
	}

	statuses := make([]MigrationStatus, 0, len(all))
	for _, m := range all {
		if s, ok := applied[m.ID]; ok {
			statuses = append(statuses, s)
			continue
		}
		statuses = append(statuses, MigrationStatus{ID: m.ID, Checksum: m.Checksum})
	}
	return statuses, nil
}

// migrationState ensures the ledger table exists, then loads the embedded
// migration set for the pool's driver alongside the applied ledger rows.
func migrationState(db *sqlx.DB) ([]migration, map[string]MigrationStatus, error) {
	if _, err := db.Exec(ledgerDDL); err != nil {
		return nil, nil, fmt.Errorf("create migration ledger: %w", err)
	}

	all, err := loadMigrations(db.DriverName())
	if err != nil {
		return nil, nil, err
	}

	rows, err := db.Queryx("SELECT migration_id, checksum, applied_at, execution_ms FROM migrations")
	if err != nil {
		return nil, nil, fmt.Errorf("read migration ledger: %w", err)
	}
	defer rows.Close()

	applied := make(map[string]MigrationStatus)
	for rows.Next() {
		s := MigrationStatus{Applied: true}
		if err := rows.Scan(&s.ID, &s.Checksum, &s.AppliedAt, &s.ExecutionMs); err != nil {
			return nil, nil, fmt.Errorf("scan migration ledger: %w", err)
		}
		applied[s.ID] = s
	}
	return all, applied, rows.Err()
}

// migrationSource selects the embedded migration set matching the driver
// the pool was opened with.
func migrationSource(driver string) (fs.FS, error) {
	switch driver {
	case "sqlite3":
		return fs.Sub(migrations.SqliteMigrations, "sqlite")
	case "postgres":
		return fs.Sub(migrations.PostgresMigrations, "postgres")
	}
	return nil, fmt.Errorf("no migrations embedded for driver %s", driver)
}

// loadMigrations reads the embedded .sql files in filename order, which
// is apply order.
func loadMigrations(driver string) ([]migration, error) {
	src, err := migrationSource(driver)
	if err != nil {
		return nil, err
	}

	names, err := fs.Glob(src, "*.sql")
	if err != nil {
		return nil, err
	}
	sort.Strings(names)

	all := make([]migration, 0, len(names))
	for _, name := range names {
		content, err := fs.ReadFile(src, name)
		if err != nil {
			return nil, fmt.Errorf("read migration %s: %w", name, err)
		}
		sum := sha256.Sum256(content)
		all = append(all, migration{
			ID:       name,
			Checksum: hex.EncodeToString(sum[:]),
			SQL:      string(content),
		})
	}
	return all, nil
}

// runStatements executes a migration file one statement at a time.
// lib/pq rejects multiple statements in a single Exec, so the file is
// split on semicolons.
func runStatements(tx *sqlx.Tx, script string) error {
	for _, stmt := range strings.Split(script, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt == "" || strings.HasPrefix(stmt, "--") {
			continue
		}
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("statement failed: %w", err)
		}
	}
	return nil
}

func recordApplied(tx *sqlx.Tx, m migration, took time.Duration) error {
	query := tx.Rebind("INSERT INTO migrations (migration_id, checksum, applied_at, execution_ms) VALUES (?, ?, ?, ?)")
	_, err := tx.Exec(query, m.ID, m.Checksum, time.Now().UTC(), took.Milliseconds())
	return err
}
