package importer

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/gtmaihackathon/internal-link-suggester/internal/storage"
	"github.com/gtmaihackathon/internal-link-suggester/internal/suggest"
)

func TestParse_MissingColumns(t *testing.T) {
	res := Parse([][]string{{"URL", "meta_description"}, {"https://a", "x"}})

	assert.Empty(t, res.Records)
	assert.Equal(t, []string{"Missing required columns: title, h1"}, res.Errors)
}

func TestParse_EmptyTable(t *testing.T) {
	res := Parse(nil)
	assert.Equal(t, []string{"Missing required columns: url, title, h1"}, res.Errors)
}

func TestParse_Rows(t *testing.T) {
	rows := [][]string{
		{" URL ", "Title", "H1", "H2", "Meta_Description", "page_type"},
		{"https://example.com/seo-guide", "SEO Guide", "Ultimate SEO Guide", "One; Two ;", "nan", ""},
		{"https://example.com/tool", "Keyword Tool", "Find Keywords Fast", "A, B", "Fast keywords", "product"},
		{"", "No URL", "Heading"},
		{"nan", "Bad", "Row"},
		{"", "", "", ""},
		{"https://example.com/about", "About Us", "Who we are"},
	}

	res := Parse(rows)

	require.Len(t, res.Records, 3)
	assert.Equal(t, []int{2, 3, 7}, res.Rows, "blank and rejected rows keep their numbers")
	assert.Equal(t, []string{
		"Row 4: Missing required field (URL, Title, or H1)",
		"Row 5: Missing required field (URL, Title, or H1)",
	}, res.Errors)

	guide := res.Records[0]
	assert.Equal(t, "https://example.com/seo-guide", guide.URL)
	assert.Equal(t, []string{"One", "Two"}, guide.H2)
	assert.Empty(t, guide.MetaDescription, "nan counts as empty")
	assert.Equal(t, string(suggest.CategoryGuide), guide.Category)

	tool := res.Records[1]
	assert.Equal(t, []string{"A", "B"}, tool.H2)
	assert.Equal(t, string(suggest.CategoryProduct), tool.Category, "page_type wins over detection")

	about := res.Records[2]
	assert.Nil(t, about.H2)
	assert.Equal(t, string(suggest.CategoryOther), about.Category)
}

func TestSplitHeadings(t *testing.T) {
	tests := []struct {
		in   string
		want []string
	}{
		{"", nil},
		{"a; b, c", []string{"a", "b, c"}},
		{"a, b,, c", []string{"a", "b", "c"}},
		{"single", []string{"single"}},
		{" ; ", nil},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, SplitHeadings(tt.in))
		})
	}
}

func TestDetectCategory(t *testing.T) {
	tests := []struct {
		url, title, h1 string
		want           suggest.Category
	}{
		{"https://x.com/glossary/crawl-budget", "Crawl Budget", "Crawl Budget", suggest.CategoryGlossary},
		{"https://x.com/pricing", "Plans", "Pricing", suggest.CategoryProduct},
		{"https://x.com/category/seo", "SEO", "SEO articles", suggest.CategoryCategory},
		{"https://x.com/lp/webinar", "Webinar", "Join us", suggest.CategoryLanding},
		{"https://x.com/seo", "SEO Guide", "Start here", suggest.CategoryGuide},
		{"https://x.com/blog/update", "Update", "News", suggest.CategoryBlog},
		{"https://x.com/about", "About", "Team", suggest.CategoryOther},
		// Glossary is tried before Guide.
		{"https://x.com/what-is-seo-guide", "What is SEO", "Guide", suggest.CategoryGlossary},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, DetectCategory(tt.url, tt.title, tt.h1))
		})
	}
}

func TestReadFile_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "urls.csv")
	data := "url,title,h1,h2\nhttps://example.com/a,Page A,Heading A,\"x; y\"\nhttps://example.com/b,Page B\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0644))

	res, err := ReadFile(path)
	require.NoError(t, err)
	require.Len(t, res.Records, 1)
	assert.Equal(t, []string{"x", "y"}, res.Records[0].H2)
	assert.Equal(t, []string{"Row 3: Missing required field (URL, Title, or H1)"}, res.Errors)
}

func TestReadFile_Unsupported(t *testing.T) {
	_, err := ReadFile(filepath.Join(t.TempDir(), "urls.pdf"))
	assert.ErrorIs(t, err, ErrUnsupportedFile)
}

func TestWriteTemplate_XLSXRoundTrip(t *testing.T) {
	for _, empty := range []bool{false, true} {
		var buf bytes.Buffer
		require.NoError(t, WriteTemplate(&buf, TemplateXLSX, empty))

		path := filepath.Join(t.TempDir(), "template.xlsx")
		require.NoError(t, os.WriteFile(path, buf.Bytes(), 0644))

		f, err := excelize.OpenFile(path)
		require.NoError(t, err)
		assert.Equal(t, []string{TemplateSheet}, f.GetSheetList())
		require.NoError(t, f.Close())

		res, err := ReadFile(path)
		require.NoError(t, err)
		assert.Empty(t, res.Errors)
		if empty {
			assert.Len(t, res.Records, 2)
		} else {
			assert.Len(t, res.Records, 5)
			assert.Len(t, res.Records[0].H2, 5)
		}
	}
}

func TestWriteTemplate_CSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteTemplate(&buf, TemplateCSV, true))

	rows, err := ReadCSV(&buf)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, templateColumns, rows[0])

	assert.Error(t, WriteTemplate(&buf, "ods", false))
}

func TestExportCSV_ReimportsUnchanged(t *testing.T) {
	records := map[string]storage.DestinationRecord{
		"https://example.com/b": {URL: "https://example.com/b", Title: "B", H1: "Heading B", Category: "Product"},
		"https://example.com/a": {URL: "https://example.com/a", Title: "A, with comma", H1: "Heading A", H2: []string{"x", "y"}, MetaDescription: "m", Category: "Guide"},
	}

	var buf bytes.Buffer
	require.NoError(t, ExportCSV(&buf, records))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[1], "https://example.com/a,"), "rows are sorted by URL")

	rows, err := ReadCSV(&buf)
	require.NoError(t, err)
	res := Parse(rows)
	require.Empty(t, res.Errors)
	require.Len(t, res.Records, 2)
	assert.Equal(t, "A, with comma", res.Records[0].Title)
	assert.Equal(t, []string{"x", "y"}, res.Records[0].H2)
	assert.Equal(t, "Product", res.Records[1].Category)
}

func TestExportJSON(t *testing.T) {
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	records := map[string]storage.DestinationRecord{
		"https://example.com/a": {URL: "https://example.com/a", Title: "A", H1: "H", Category: "Other", CreatedAt: created},
	}

	var buf bytes.Buffer
	require.NoError(t, ExportJSON(&buf, records))

	var out struct {
		URLs map[string]struct {
			Title     string    `json:"title"`
			H2        []string  `json:"h2"`
			AddedDate time.Time `json:"added_date"`
		} `json:"urls"`
	}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	entry, ok := out.URLs["https://example.com/a"]
	require.True(t, ok)
	assert.Equal(t, "A", entry.Title)
	assert.NotNil(t, entry.H2)
	assert.True(t, entry.AddedDate.Equal(created))
}

func TestSampleDestinations(t *testing.T) {
	samples := SampleDestinations()
	require.Len(t, samples, 6)

	seen := map[string]bool{}
	for _, s := range samples {
		assert.False(t, seen[s.URL], "duplicate %s", s.URL)
		seen[s.URL] = true
		assert.NotEmpty(t, s.Category)
	}
}
