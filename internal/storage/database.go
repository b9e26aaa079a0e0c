package storage

import (
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// New opens the catalog database at path in WAL mode so the HTTP server can
// read the catalog while an import is writing it.
func New(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode = WAL;"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL: %w", err)
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return db, nil
}

// migrations are applied in order; a migration's version is its index + 1.
// Append only.
var migrations = []string{
	`CREATE TABLE destinations (
		url TEXT PRIMARY KEY,
		title TEXT NOT NULL,
		h1 TEXT NOT NULL,
		h2 TEXT NOT NULL DEFAULT '[]',
		meta_description TEXT NOT NULL DEFAULT '',
		category TEXT NOT NULL DEFAULT 'Other',
		created_at TEXT NOT NULL
	);`,
	`CREATE TABLE imports (
		id TEXT PRIMARY KEY,
		source_path TEXT NOT NULL,
		imported INTEGER NOT NULL,
		error_count INTEGER NOT NULL,
		created_at TEXT NOT NULL
	);
	CREATE INDEX idx_imports_created_at ON imports(created_at);`,
}

// Migrate brings the schema up to date. Each pending migration runs in its
// own transaction together with its schema_migrations row.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS schema_migrations (
		version INTEGER PRIMARY KEY,
		applied_at TEXT NOT NULL
	);`); err != nil {
		return fmt.Errorf("failed to create schema_migrations: %w", err)
	}

	var current int
	if err := db.QueryRow("SELECT COALESCE(MAX(version), 0) FROM schema_migrations").Scan(&current); err != nil {
		return fmt.Errorf("failed to read schema version: %w", err)
	}

	for i := current; i < len(migrations); i++ {
		version := i + 1
		tx, err := db.Begin()
		if err != nil {
			return fmt.Errorf("failed to begin migration %d: %w", version, err)
		}
		if _, err := tx.Exec(migrations[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("migration %d failed: %w", version, err)
		}
		if _, err := tx.Exec("INSERT INTO schema_migrations (version, applied_at) VALUES (?, ?)",
			version, time.Now().UTC().Format(timeLayout)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("failed to record migration %d: %w", version, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("failed to commit migration %d: %w", version, err)
		}
	}

	return nil
}
