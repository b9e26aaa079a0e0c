package storage

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_destination_store.go -package=mocks github.com/gtmaihackathon/internal-link-suggester/internal/storage DestinationStore

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gtmaihackathon/internal-link-suggester/internal/suggest"
)

var (
	// ErrNotFound is returned when a record is not found.
	ErrNotFound = errors.New("record not found")
)

// timeLayout is fixed width so timestamps sort lexically.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// DestinationStore defines the interface for catalog storage operations.
type DestinationStore interface {
	// GetAll returns every destination keyed by URL.
	GetAll(ctx context.Context) (map[string]DestinationRecord, error)
	// Get returns one destination. Returns ErrNotFound if absent.
	Get(ctx context.Context, url string) (*DestinationRecord, error)
	// Add inserts or replaces a destination, keeping the original created_at.
	Add(ctx context.Context, rec *DestinationRecord) error
	// Delete removes a destination. Returns ErrNotFound if absent.
	Delete(ctx context.Context, url string) error
	// Clear removes every destination.
	Clear(ctx context.Context) error
	// Count returns the number of destinations.
	Count(ctx context.Context) (int, error)
}

// DestinationRepo implements DestinationStore on SQLite.
type DestinationRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewDestinationRepo creates a new DestinationRepo.
func NewDestinationRepo(db *sql.DB) *DestinationRepo {
	return &DestinationRepo{db: db, now: time.Now}
}

// GetAll returns every destination keyed by URL.
// Returns an empty map if the catalog is empty (not an error).
func (r *DestinationRepo) GetAll(ctx context.Context) (map[string]DestinationRecord, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT url, title, h1, h2, meta_description, category, created_at FROM destinations ORDER BY url",
	)
	if err != nil {
		return nil, fmt.Errorf("failed to query destinations: %w", err)
	}
	defer func() {
		_ = rows.Close()
	}()

	out := make(map[string]DestinationRecord)
	for rows.Next() {
		rec, err := scanDestination(rows)
		if err != nil {
			return nil, err
		}
		out[rec.URL] = *rec
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("row iteration error: %w", err)
	}

	return out, nil
}

// Get returns one destination. Returns ErrNotFound if absent.
func (r *DestinationRepo) Get(ctx context.Context, url string) (*DestinationRecord, error) {
	row := r.db.QueryRowContext(ctx,
		"SELECT url, title, h1, h2, meta_description, category, created_at FROM destinations WHERE url = ?",
		url,
	)
	rec, err := scanDestination(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return rec, nil
}

// Add inserts or replaces a destination by URL. created_at is set on first
// insert and preserved on update; rec.CreatedAt is filled in on return.
func (r *DestinationRepo) Add(ctx context.Context, rec *DestinationRecord) error {
	h2 := rec.H2
	if h2 == nil {
		h2 = []string{}
	}
	h2JSON, err := json.Marshal(h2)
	if err != nil {
		return fmt.Errorf("failed to encode h2: %w", err)
	}

	category := rec.Category
	if category == "" {
		category = string(suggest.CategoryOther)
	}

	createdAt := rec.CreatedAt
	if createdAt.IsZero() {
		createdAt = r.now().UTC()
	}

	_, err = r.db.ExecContext(ctx,
		`INSERT INTO destinations (url, title, h1, h2, meta_description, category, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT (url) DO UPDATE SET
		 title = excluded.title, h1 = excluded.h1, h2 = excluded.h2,
		 meta_description = excluded.meta_description, category = excluded.category`,
		rec.URL, rec.Title, rec.H1, string(h2JSON), rec.MetaDescription, category, createdAt.UTC().Format(timeLayout),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert destination: %w", err)
	}

	stored, err := r.Get(ctx, rec.URL)
	if err != nil {
		return fmt.Errorf("failed to reload destination: %w", err)
	}
	rec.CreatedAt = stored.CreatedAt
	rec.Category = stored.Category
	return nil
}

// Delete removes a destination. Returns ErrNotFound if absent.
func (r *DestinationRepo) Delete(ctx context.Context, url string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM destinations WHERE url = ?", url)
	if err != nil {
		return fmt.Errorf("failed to delete destination: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// Clear removes every destination.
func (r *DestinationRepo) Clear(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM destinations"); err != nil {
		return fmt.Errorf("failed to clear destinations: %w", err)
	}
	return nil
}

// Count returns the number of destinations.
func (r *DestinationRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM destinations").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count destinations: %w", err)
	}
	return n, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanDestination(row rowScanner) (*DestinationRecord, error) {
	var rec DestinationRecord
	var h2JSON, createdAt string

	err := row.Scan(&rec.URL, &rec.Title, &rec.H1, &h2JSON, &rec.MetaDescription, &rec.Category, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to scan destination: %w", err)
	}

	if err := json.Unmarshal([]byte(h2JSON), &rec.H2); err != nil {
		return nil, fmt.Errorf("failed to decode h2 for %s: %w", rec.URL, err)
	}

	rec.CreatedAt, err = time.Parse(timeLayout, createdAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse created_at timestamp: %w", err)
	}

	return &rec, nil
}

// ToDestination converts a record into the suggestion engine's type.
// Unknown categories become Other.
func (rec DestinationRecord) ToDestination() suggest.Destination {
	category, _ := suggest.ParseCategory(rec.Category)
	return suggest.Destination{
		URL:            rec.URL,
		Title:          rec.Title,
		PrimaryHeading: rec.H1,
		SubHeadings:    rec.H2,
		Summary:        rec.MetaDescription,
		Category:       category,
		CreatedAt:      rec.CreatedAt,
	}
}

// ToSnapshot converts catalog records into a read-only snapshot.
func ToSnapshot(records map[string]DestinationRecord) suggest.Snapshot {
	snapshot := make(suggest.Snapshot, len(records))
	for url, rec := range records {
		snapshot[url] = rec.ToDestination()
	}
	return snapshot
}
