// Package importer reads and writes destination catalogs as spreadsheets.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/gtmaihackathon/internal-link-suggester/internal/storage"
	"github.com/gtmaihackathon/internal-link-suggester/internal/suggest"
)

// ErrUnsupportedFile is returned for files that are neither CSV nor XLSX.
var ErrUnsupportedFile = errors.New("unsupported file type; use .csv or .xlsx")

var requiredColumns = []string{"url", "title", "h1"}

// Result is the outcome of parsing an import table.
type Result struct {
	Records []storage.DestinationRecord
	// Rows holds the table row number of each record, counting the header
	// as row 1.
	Rows []int
	// Errors holds one message per rejected row, or a single message when
	// the header is unusable.
	Errors []string
}

// ReadFile parses a .csv or .xlsx file into destination records.
func ReadFile(path string) (*Result, error) {
	rows, err := readRows(path)
	if err != nil {
		return nil, err
	}
	return Parse(rows), nil
}

func readRows(path string) ([][]string, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", path, err)
		}
		defer func() {
			_ = f.Close()
		}()
		return ReadCSV(f)
	case ".xlsx":
		return readXLSX(path)
	default:
		return nil, ErrUnsupportedFile
	}
}

// ReadCSV returns every record of a CSV stream. Rows may have differing
// field counts.
func ReadCSV(r io.Reader) ([][]string, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read csv: %w", err)
	}
	return rows, nil
}

// readXLSX returns the rows of the workbook's first sheet.
func readXLSX(path string) ([][]string, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook %s has no sheets", path)
	}
	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %s: %w", sheets[0], err)
	}
	return rows, nil
}

// Parse converts a table whose first row is the header into records.
// Header names are matched case-insensitively. Row numbers in error
// messages count the header as row 1.
func Parse(rows [][]string) *Result {
	res := &Result{}
	if len(rows) == 0 {
		res.Errors = []string{"Missing required columns: " + strings.Join(requiredColumns, ", ")}
		return res
	}

	index := make(map[string]int, len(rows[0]))
	for i, name := range rows[0] {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		if _, dup := index[name]; !dup {
			index[name] = i
		}
	}

	var missing []string
	for _, col := range requiredColumns {
		if _, ok := index[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		res.Errors = []string{"Missing required columns: " + strings.Join(missing, ", ")}
		return res
	}

	field := func(row []string, col string) string {
		i, ok := index[col]
		if !ok || i >= len(row) {
			return ""
		}
		v := strings.TrimSpace(row[i])
		if strings.EqualFold(v, "nan") {
			return ""
		}
		return v
	}

	for n, row := range rows[1:] {
		rowNum := n + 2
		if isBlank(row) {
			continue
		}

		rec := storage.DestinationRecord{
			URL:             field(row, "url"),
			Title:           field(row, "title"),
			H1:              field(row, "h1"),
			H2:              SplitHeadings(field(row, "h2")),
			MetaDescription: field(row, "meta_description"),
		}
		if rec.URL == "" || rec.Title == "" || rec.H1 == "" {
			res.Errors = append(res.Errors, fmt.Sprintf("Row %d: Missing required field (URL, Title, or H1)", rowNum))
			continue
		}

		category, ok := suggest.ParseCategory(field(row, "page_type"))
		if !ok {
			category = DetectCategory(rec.URL, rec.Title, rec.H1)
		}
		rec.Category = string(category)

		res.Records = append(res.Records, rec)
		res.Rows = append(res.Rows, rowNum)
	}

	return res
}

// SplitHeadings splits an h2 cell on semicolons, or on commas when the cell
// has no semicolon. Parts are trimmed and empty parts dropped.
func SplitHeadings(raw string) []string {
	if raw == "" {
		return nil
	}
	sep := ","
	if strings.Contains(raw, ";") {
		sep = ";"
	}
	var out []string
	for _, part := range strings.Split(raw, sep) {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func isBlank(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
