package service

//go:generate go run go.uber.org/mock/mockgen@latest -destination=mocks/mock_catalog_service.go -package=mocks -mock_names=CatalogService=MockCatalogService github.com/gtmaihackathon/internal-link-suggester/internal/service CatalogService

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gtmaihackathon/internal-link-suggester/internal/contextutil"
	"github.com/gtmaihackathon/internal-link-suggester/internal/importer"
	"github.com/gtmaihackathon/internal-link-suggester/internal/storage"
	"github.com/gtmaihackathon/internal-link-suggester/internal/suggest"
)

// Export formats.
const (
	ExportCSV  = "csv"
	ExportJSON = "json"
)

// MaxReportedImportErrors bounds the row errors returned in a summary.
const MaxReportedImportErrors = 10

// EmbeddingForgetter drops cached encodings of destination texts.
type EmbeddingForgetter interface {
	Forget(ctx context.Context, texts []string) error
}

// ImportLog records bulk import runs.
type ImportLog interface {
	Record(ctx context.Context, rec *storage.ImportRecord) error
	Latest(ctx context.Context) (*storage.ImportRecord, error)
}

// AddDestinationRequest describes one destination entered by hand.
type AddDestinationRequest struct {
	URL   string
	Title string
	H1    string
	// H2 holds one sub-heading per line.
	H2              string
	MetaDescription string
	// Category is optional; empty means auto-detect.
	Category string
}

// ImportSummary reports the outcome of a bulk import.
type ImportSummary struct {
	Source   string   `json:"source"`
	Imported int      `json:"imported"`
	Failed   int      `json:"failed"`
	Errors   []string `json:"errors,omitempty"`
}

// CatalogService manages the destination catalog.
type CatalogService interface {
	List(ctx context.Context) ([]storage.DestinationRecord, error)
	Get(ctx context.Context, url string) (*storage.DestinationRecord, error)
	Add(ctx context.Context, req AddDestinationRequest) (*storage.DestinationRecord, error)
	Delete(ctx context.Context, url string) error
	Clear(ctx context.Context) error
	Count(ctx context.Context) (int, error)
	// Import reads a .csv or .xlsx file into the catalog.
	Import(ctx context.Context, path string) (ImportSummary, error)
	// ImportUpload stores an uploaded file and imports it.
	ImportUpload(ctx context.Context, filename string, r io.Reader) (ImportSummary, error)
	// Reload re-imports the most recent import source.
	Reload(ctx context.Context) (ImportSummary, error)
	// Seed adds the quick-start sample destinations.
	Seed(ctx context.Context) (int, error)
	Export(ctx context.Context, w io.Writer, format string) error
}

// catalogService implements CatalogService.
type catalogService struct {
	store     storage.DestinationStore
	imports   ImportLog
	forgetter EmbeddingForgetter
	uploadDir string
}

// CatalogOption configures a CatalogService.
type CatalogOption func(*catalogService)

// WithForgetter drops cached embeddings when destinations change.
func WithForgetter(f EmbeddingForgetter) CatalogOption {
	return func(s *catalogService) {
		s.forgetter = f
	}
}

// WithUploadDir sets where uploaded import files are kept.
func WithUploadDir(dir string) CatalogOption {
	return func(s *catalogService) {
		s.uploadDir = dir
	}
}

// NewCatalogService creates a new CatalogService.
func NewCatalogService(store storage.DestinationStore, imports ImportLog, opts ...CatalogOption) CatalogService {
	s := &catalogService{
		store:     store,
		imports:   imports,
		uploadDir: "./data/uploads",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns every destination sorted by URL.
func (s *catalogService) List(ctx context.Context) ([]storage.DestinationRecord, error) {
	all, err := s.store.GetAll(ctx)
	if err != nil {
		return nil, WrapError(err, "failed to list destinations")
	}
	out := make([]storage.DestinationRecord, 0, len(all))
	for _, rec := range all {
		out = append(out, rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].URL < out[j].URL })
	return out, nil
}

// Get returns one destination.
func (s *catalogService) Get(ctx context.Context, u string) (*storage.DestinationRecord, error) {
	rec, err := s.store.Get(ctx, u)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, WrapError(err, "failed to get destination")
	}
	return rec, nil
}

// Add validates and upserts a destination.
func (s *catalogService) Add(ctx context.Context, req AddDestinationRequest) (*storage.DestinationRecord, error) {
	rec := storage.DestinationRecord{
		URL:             strings.TrimSpace(req.URL),
		Title:           strings.TrimSpace(req.Title),
		H1:              strings.TrimSpace(req.H1),
		H2:              splitLines(req.H2),
		MetaDescription: strings.TrimSpace(req.MetaDescription),
	}

	if err := validateURL(rec.URL); err != nil {
		return nil, err
	}
	if rec.Title == "" {
		return nil, &ValidationError{Field: "title", Message: "cannot be empty"}
	}
	if rec.H1 == "" {
		return nil, &ValidationError{Field: "h1", Message: "cannot be empty"}
	}

	if req.Category != "" {
		c, ok := suggest.ParseCategory(req.Category)
		if !ok {
			return nil, &ValidationError{Field: "category", Message: fmt.Sprintf("unknown category %q", req.Category)}
		}
		rec.Category = string(c)
	} else {
		rec.Category = string(importer.DetectCategory(rec.URL, rec.Title, rec.H1))
	}

	if err := s.put(ctx, &rec); err != nil {
		return nil, err
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "destination saved", "url", rec.URL, "category", rec.Category)
	return &rec, nil
}

// put upserts rec, forgetting the cached embedding of any previous version.
func (s *catalogService) put(ctx context.Context, rec *storage.DestinationRecord) error {
	if s.forgetter != nil {
		if old, err := s.store.Get(ctx, rec.URL); err == nil {
			s.forget(ctx, *old)
		}
	}
	if err := s.store.Add(ctx, rec); err != nil {
		return WrapError(err, "failed to save destination")
	}
	return nil
}

func (s *catalogService) forget(ctx context.Context, recs ...storage.DestinationRecord) {
	if s.forgetter == nil || len(recs) == 0 {
		return
	}
	texts := make([]string, 0, len(recs))
	for _, rec := range recs {
		texts = append(texts, rec.ToDestination().DescriptiveText())
	}
	if err := s.forgetter.Forget(ctx, texts); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "failed to drop cached embeddings", "count", len(texts), "error", err)
	}
}

// Delete removes one destination.
func (s *catalogService) Delete(ctx context.Context, u string) error {
	var old *storage.DestinationRecord
	if s.forgetter != nil {
		old, _ = s.store.Get(ctx, u)
	}
	if err := s.store.Delete(ctx, u); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return ErrNotFound
		}
		return WrapError(err, "failed to delete destination")
	}
	if old != nil {
		s.forget(ctx, *old)
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "destination deleted", "url", u)
	return nil
}

// Clear removes every destination.
func (s *catalogService) Clear(ctx context.Context) error {
	var old []storage.DestinationRecord
	if s.forgetter != nil {
		all, err := s.store.GetAll(ctx)
		if err == nil {
			for _, rec := range all {
				old = append(old, rec)
			}
		}
	}
	if err := s.store.Clear(ctx); err != nil {
		return WrapError(err, "failed to clear catalog")
	}
	s.forget(ctx, old...)
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "catalog cleared")
	return nil
}

// Count returns the catalog size.
func (s *catalogService) Count(ctx context.Context) (int, error) {
	n, err := s.store.Count(ctx)
	if err != nil {
		return 0, WrapError(err, "failed to count destinations")
	}
	return n, nil
}

// Import reads path and upserts every valid row. Row errors are reported in
// the summary; a missing header column imports nothing.
func (s *catalogService) Import(ctx context.Context, path string) (ImportSummary, error) {
	logger := contextutil.LoggerFromContext(ctx)

	res, err := importer.ReadFile(path)
	if errors.Is(err, importer.ErrUnsupportedFile) {
		return ImportSummary{}, &ValidationError{Field: "file", Message: err.Error()}
	}
	if err != nil {
		return ImportSummary{}, WrapError(err, "failed to read import file")
	}

	summary := ImportSummary{Source: path}
	rowErrors := res.Errors
	for i := range res.Records {
		rec := res.Records[i]
		if err := s.put(ctx, &rec); err != nil {
			rowErrors = append(rowErrors, fmt.Sprintf("Row %d: %v", res.Rows[i], err))
			continue
		}
		summary.Imported++
	}
	summary.Failed = len(rowErrors)
	summary.Errors = rowErrors
	if len(summary.Errors) > MaxReportedImportErrors {
		summary.Errors = summary.Errors[:MaxReportedImportErrors]
	}

	if s.imports != nil {
		run := &storage.ImportRecord{SourcePath: path, Imported: summary.Imported, ErrorCount: summary.Failed}
		if err := s.imports.Record(ctx, run); err != nil {
			logger.WarnContext(ctx, "failed to record import run", "error", err)
		}
	}

	logger.InfoContext(ctx, "import finished", "path", path, "imported", summary.Imported, "failed", summary.Failed)
	return summary, nil
}

// ImportUpload keeps the upload as the reloadable import source, replacing
// the previous one, then imports it.
func (s *catalogService) ImportUpload(ctx context.Context, filename string, r io.Reader) (ImportSummary, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if ext != ".csv" && ext != ".xlsx" {
		return ImportSummary{}, &ValidationError{Field: "file", Message: importer.ErrUnsupportedFile.Error()}
	}

	if err := os.MkdirAll(s.uploadDir, 0755); err != nil {
		return ImportSummary{}, WrapError(err, "failed to create upload directory")
	}
	path := filepath.Join(s.uploadDir, "uploaded_urls"+ext)

	f, err := os.Create(path)
	if err != nil {
		return ImportSummary{}, WrapError(err, "failed to store upload")
	}
	if _, err := io.Copy(f, r); err != nil {
		_ = f.Close()
		return ImportSummary{}, WrapError(err, "failed to store upload")
	}
	if err := f.Close(); err != nil {
		return ImportSummary{}, WrapError(err, "failed to store upload")
	}

	return s.Import(ctx, path)
}

// Reload re-imports the source of the most recent import.
func (s *catalogService) Reload(ctx context.Context) (ImportSummary, error) {
	if s.imports == nil {
		return ImportSummary{}, ErrNotFound
	}
	last, err := s.imports.Latest(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		return ImportSummary{}, ErrNotFound
	}
	if err != nil {
		return ImportSummary{}, WrapError(err, "failed to find last import")
	}
	if _, err := os.Stat(last.SourcePath); err != nil {
		return ImportSummary{}, ErrNotFound
	}
	return s.Import(ctx, last.SourcePath)
}

// Seed adds the sample destinations and returns how many were saved.
func (s *catalogService) Seed(ctx context.Context) (int, error) {
	n := 0
	for _, rec := range importer.SampleDestinations() {
		if err := s.put(ctx, &rec); err != nil {
			return n, err
		}
		n++
	}
	contextutil.LoggerFromContext(ctx).InfoContext(ctx, "catalog seeded", "count", n)
	return n, nil
}

// Export writes the catalog as csv or json.
func (s *catalogService) Export(ctx context.Context, w io.Writer, format string) error {
	if format != ExportCSV && format != ExportJSON {
		return &ValidationError{Field: "format", Message: "must be csv or json"}
	}
	all, err := s.store.GetAll(ctx)
	if err != nil {
		return WrapError(err, "failed to load catalog")
	}
	if format == ExportJSON {
		return importer.ExportJSON(w, all)
	}
	return importer.ExportCSV(w, all)
}

func validateURL(raw string) error {
	if raw == "" {
		return &ValidationError{Field: "url", Message: "cannot be empty"}
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return &ValidationError{Field: "url", Message: "must be an absolute http(s) URL"}
	}
	return nil
}

func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			out = append(out, line)
		}
	}
	return out
}
