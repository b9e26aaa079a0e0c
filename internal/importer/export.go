package importer

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/gtmaihackathon/internal-link-suggester/internal/storage"
)

var exportColumns = []string{"url", "title", "h1", "h2", "meta_description", "page_type"}

// ExportCSV writes the catalog as CSV, sorted by URL. Sub-headings are
// joined with "; " so the file re-imports unchanged.
func ExportCSV(w io.Writer, records map[string]storage.DestinationRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(exportColumns); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, url := range sortedURLs(records) {
		rec := records[url]
		row := []string{rec.URL, rec.Title, rec.H1, strings.Join(rec.H2, "; "), rec.MetaDescription, rec.Category}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

type jsonEntry struct {
	Title           string    `json:"title"`
	H1              string    `json:"h1"`
	H2              []string  `json:"h2"`
	MetaDescription string    `json:"meta_description"`
	Category        string    `json:"category"`
	AddedDate       time.Time `json:"added_date"`
}

// ExportJSON writes the catalog as {"urls": {url: {...}}}.
func ExportJSON(w io.Writer, records map[string]storage.DestinationRecord) error {
	urls := make(map[string]jsonEntry, len(records))
	for url, rec := range records {
		h2 := rec.H2
		if h2 == nil {
			h2 = []string{}
		}
		urls[url] = jsonEntry{
			Title:           rec.Title,
			H1:              rec.H1,
			H2:              h2,
			MetaDescription: rec.MetaDescription,
			Category:        rec.Category,
			AddedDate:       rec.CreatedAt,
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(map[string]any{"urls": urls}); err != nil {
		return fmt.Errorf("failed to encode catalog: %w", err)
	}
	return nil
}

// Template formats.
const (
	TemplateCSV  = "csv"
	TemplateXLSX = "xlsx"
)

// TemplateSheet is the sheet name used in generated workbooks.
const TemplateSheet = "URLs"

var templateColumns = []string{"url", "title", "h1", "meta_description", "h2"}

// WriteTemplate writes an import template. The sample template carries five
// example SEO pages; the empty one carries two placeholder rows.
func WriteTemplate(w io.Writer, format string, empty bool) error {
	rows := sampleTemplateRows
	if empty {
		rows = emptyTemplateRows
	}

	switch format {
	case TemplateCSV:
		cw := csv.NewWriter(w)
		if err := cw.Write(templateColumns); err != nil {
			return fmt.Errorf("failed to write csv header: %w", err)
		}
		if err := cw.WriteAll(rows); err != nil {
			return fmt.Errorf("failed to write csv rows: %w", err)
		}
		return nil
	case TemplateXLSX:
		return writeWorkbook(w, rows)
	default:
		return fmt.Errorf("unsupported template format %q", format)
	}
}

func writeWorkbook(w io.Writer, rows [][]string) error {
	f := excelize.NewFile()
	defer func() {
		_ = f.Close()
	}()

	if err := f.SetSheetName("Sheet1", TemplateSheet); err != nil {
		return fmt.Errorf("failed to name sheet: %w", err)
	}

	header := make([]any, len(templateColumns))
	for i, c := range templateColumns {
		header[i] = c
	}
	if err := f.SetSheetRow(TemplateSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for i, row := range rows {
		cells := make([]any, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(TemplateSheet, cell, &cells); err != nil {
			return fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func sortedURLs(records map[string]storage.DestinationRecord) []string {
	urls := make([]string, 0, len(records))
	for url := range records {
		urls = append(urls, url)
	}
	sort.Strings(urls)
	return urls
}
