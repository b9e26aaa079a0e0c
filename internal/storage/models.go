package storage

import "time"

// DestinationRecord is a catalog row.
type DestinationRecord struct {
	URL             string
	Title           string
	H1              string
	H2              []string // stored as a JSON array
	MetaDescription string
	Category        string
	CreatedAt       time.Time
}

// ImportRecord describes one bulk import run.
type ImportRecord struct {
	ID         string // UUID
	SourcePath string
	Imported   int
	ErrorCount int
	CreatedAt  time.Time
}
