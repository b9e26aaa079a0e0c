package batch

import (
	"context"
	"crypto/sha256"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gtmaihackathon/internal-link-suggester/internal/content"
	"github.com/gtmaihackathon/internal-link-suggester/internal/contextutil"
	"github.com/gtmaihackathon/internal-link-suggester/internal/render"
	"github.com/gtmaihackathon/internal-link-suggester/internal/service"
	"github.com/gtmaihackathon/internal-link-suggester/internal/suggest"
)

// Result is the outcome of analysing one file.
type Result struct {
	File        File
	Suggestions []suggest.Suggestion
	Reason      string
	// DuplicateOf names an earlier file with identical content whose
	// suggestions were reused.
	DuplicateOf string
	Err         error
}

// Report collects the results of a batch run.
type Report struct {
	Results     []Result
	Analysed    int
	Failed      int
	Suggestions int
}

// Options configure a batch run.
type Options struct {
	// Limit caps suggestions per file. Zero means the configured default.
	Limit int
	// LinkDir, when set, receives a copy of every file with all of its
	// suggestions inserted, at the same relative path.
	LinkDir string
}

// Runner analyses every document in a directory.
type Runner struct {
	suggest service.SuggestService
}

// NewRunner creates a Runner backed by the given suggest service.
func NewRunner(suggestService service.SuggestService) *Runner {
	return &Runner{suggest: suggestService}
}

// Run scans root and analyses each file in turn. Failures for individual
// files are recorded in the report and do not stop the run.
func (r *Runner) Run(ctx context.Context, root string, opts Options) (Report, error) {
	logger := contextutil.LoggerFromContext(ctx)

	files, err := Scan(ctx, root)
	if err != nil {
		return Report{}, err
	}

	logger.InfoContext(ctx, "starting batch analysis", "root", root, "total_files", len(files))

	var report Report
	seen := make(map[[sha256.Size]byte]int)

	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return report, err
		}

		res := Result{File: file}
		data, err := os.ReadFile(file.AbsPath)
		if err != nil {
			res.Err = fmt.Errorf("failed to read file: %w", err)
			report.add(res)
			logger.ErrorContext(ctx, "failed to analyse file", "rel_path", file.RelPath, "error", res.Err)
			continue
		}

		hash := sha256.Sum256(data)
		if i, ok := seen[hash]; ok {
			prev := report.Results[i]
			res.Suggestions = prev.Suggestions
			res.Reason = prev.Reason
			res.DuplicateOf = prev.File.RelPath
			logger.DebugContext(ctx, "reusing analysis of identical file", "rel_path", file.RelPath, "duplicate_of", res.DuplicateOf)
		} else {
			res = r.analyse(ctx, file, data, opts.Limit)
		}

		if res.Err == nil && opts.LinkDir != "" {
			if err := writeLinked(opts.LinkDir, file, data, res.Suggestions); err != nil {
				res.Err = err
			}
		}

		if res.Err != nil {
			logger.ErrorContext(ctx, "failed to analyse file", "rel_path", file.RelPath, "error", res.Err)
		} else if res.DuplicateOf == "" {
			seen[hash] = len(report.Results)
		}
		report.add(res)
	}

	logger.InfoContext(ctx, "batch analysis completed",
		"total_files", len(files),
		"analysed", report.Analysed,
		"errors", report.Failed,
		"suggestions", report.Suggestions,
	)
	return report, nil
}

func (r *Runner) analyse(ctx context.Context, file File, data []byte, limit int) Result {
	resp, err := r.suggest.Analyze(ctx, service.AnalyzeRequest{
		Content: string(data),
		Format:  string(content.DetectFormat(file.RelPath)),
		Limit:   limit,
	})
	if err != nil {
		return Result{File: file, Err: err}
	}
	return Result{File: file, Suggestions: resp.Suggestions, Reason: resp.Reason}
}

func (rep *Report) add(res Result) {
	rep.Results = append(rep.Results, res)
	if res.Err != nil {
		rep.Failed++
		return
	}
	rep.Analysed++
	rep.Suggestions += len(res.Suggestions)
}

// writeLinked writes the file with every suggestion inserted. HTML input is
// written as the converted markdown the anchors were located in.
func writeLinked(dir string, file File, data []byte, suggestions []suggest.Suggestion) error {
	src := string(data)
	if content.DetectFormat(file.RelPath) == content.FormatHTML {
		doc, err := content.NewParser().Parse(src, content.FormatHTML)
		if err != nil {
			return fmt.Errorf("failed to convert html: %w", err)
		}
		src = doc.Source
	}

	out := filepath.Join(dir, filepath.FromSlash(file.RelPath))
	if err := os.MkdirAll(filepath.Dir(out), 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	if err := os.WriteFile(out, []byte(render.LinkDocument(src, suggestions)), 0o644); err != nil {
		return fmt.Errorf("failed to write linked file: %w", err)
	}
	return nil
}

var reportHeader = []string{"file", "anchor_text", "destination_url", "score", "relevance", "category", "context", "note"}

// WriteCSV writes one row per suggestion. Files without suggestions get a
// single row carrying the reason or error in the note column.
func (rep Report) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(reportHeader); err != nil {
		return fmt.Errorf("failed to write report header: %w", err)
	}

	for _, res := range rep.Results {
		note := res.Reason
		switch {
		case res.Err != nil:
			note = "error: " + res.Err.Error()
		case res.DuplicateOf != "":
			note = "duplicate of " + res.DuplicateOf
		}

		if res.Err != nil || len(res.Suggestions) == 0 {
			if err := cw.Write([]string{res.File.RelPath, "", "", "", "", "", "", note}); err != nil {
				return fmt.Errorf("failed to write report row: %w", err)
			}
			continue
		}
		for _, sg := range res.Suggestions {
			row := []string{
				res.File.RelPath,
				sg.AnchorText,
				sg.DestinationURL,
				strconv.FormatFloat(sg.Score, 'f', 4, 64),
				render.RelevanceLabel(sg.Score),
				string(sg.Category),
				sg.ContextSnippet,
				note,
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("failed to write report row: %w", err)
			}
		}
	}

	cw.Flush()
	return cw.Error()
}
