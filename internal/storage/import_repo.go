package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ImportRepo records bulk import runs so the last source can be reloaded.
type ImportRepo struct {
	db *sql.DB
}

// NewImportRepo creates a new ImportRepo.
func NewImportRepo(db *sql.DB) *ImportRepo {
	return &ImportRepo{db: db}
}

// Record stores an import run. ID and CreatedAt are generated when empty.
func (r *ImportRepo) Record(ctx context.Context, rec *ImportRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	_, err := r.db.ExecContext(ctx,
		"INSERT INTO imports (id, source_path, imported, error_count, created_at) VALUES (?, ?, ?, ?, ?)",
		rec.ID, rec.SourcePath, rec.Imported, rec.ErrorCount, rec.CreatedAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to insert import record: %w", err)
	}
	return nil
}

// Latest returns the most recent import. Returns ErrNotFound if none exist.
func (r *ImportRepo) Latest(ctx context.Context) (*ImportRecord, error) {
	var rec ImportRecord
	var createdAt string

	err := r.db.QueryRowContext(ctx,
		"SELECT id, source_path, imported, error_count, created_at FROM imports ORDER BY created_at DESC LIMIT 1",
	).Scan(&rec.ID, &rec.SourcePath, &rec.Imported, &rec.ErrorCount, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query latest import: %w", err)
	}

	rec.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at timestamp: %w", err)
	}
	return &rec, nil
}
