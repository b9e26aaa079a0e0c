package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gtmaihackathon/internal-link-suggester/internal/app"
	"github.com/gtmaihackathon/internal-link-suggester/internal/content"
	"github.com/gtmaihackathon/internal-link-suggester/internal/render"
	"github.com/gtmaihackathon/internal-link-suggester/internal/service"
	"github.com/gtmaihackathon/internal-link-suggester/internal/suggest"
)

var (
	analyzeFormat    string
	analyzeLimit     int
	analyzeJSON      bool
	analyzeOutput    string
	analyzeAcceptAll bool
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze [file]",
	Short: "Suggest internal links for a document",
	Long: `Reads a document from a file, or from stdin when the file is "-" or
omitted, and prints ranked link suggestions.

The format is taken from --format, or from the file extension.
With --accept-all and --output, the document is written back with every
suggested link inserted.`,
	Args: cobra.MaximumNArgs(1),
	RunE: withApp(runAnalyze),
}

func init() {
	analyzeCmd.Flags().StringVarP(&analyzeFormat, "format", "f", "", "input format: text, markdown or html")
	analyzeCmd.Flags().IntVarP(&analyzeLimit, "limit", "n", 0, "maximum number of suggestions (default from config)")
	analyzeCmd.Flags().BoolVar(&analyzeJSON, "json", false, "output suggestions as JSON")
	analyzeCmd.Flags().StringVarP(&analyzeOutput, "output", "o", "", "write the linked document to this file")
	analyzeCmd.Flags().BoolVar(&analyzeAcceptAll, "accept-all", false, "insert every suggestion into the written document")
	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string, a *app.App) error {
	resp, err := analyzeInput(cmd, args, a, analyzeFormat, analyzeLimit)
	if err != nil {
		return err
	}

	if analyzeJSON {
		if err := outputSuggestionsJSON(cmd, resp); err != nil {
			return err
		}
	} else {
		outputSuggestionsTable(cmd, resp)
	}

	if analyzeOutput == "" {
		return nil
	}
	var accepted []suggest.Suggestion
	if analyzeAcceptAll {
		accepted = resp.Suggestions
	}
	return writeLinked(cmd, analyzeOutput, resp.Document.Source, accepted)
}

// analyzeInput reads the document named by args and runs the analysis.
func analyzeInput(cmd *cobra.Command, args []string, a *app.App, format string, limit int) (service.AnalyzeResponse, error) {
	name := "-"
	if len(args) == 1 {
		name = args[0]
	}
	raw, err := readInput(cmd, name)
	if err != nil {
		return service.AnalyzeResponse{}, err
	}
	if format == "" && name != "-" {
		format = string(content.DetectFormat(name))
	}

	resp, err := a.Suggest.Analyze(cmd.Context(), service.AnalyzeRequest{
		Content: string(raw),
		Format:  format,
		Limit:   limit,
	})
	if err != nil {
		return service.AnalyzeResponse{}, fmt.Errorf("analysis failed: %w", err)
	}
	return resp, nil
}

func readInput(cmd *cobra.Command, name string) ([]byte, error) {
	if name == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return nil, fmt.Errorf("failed to read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return data, nil
}

func outputSuggestionsJSON(cmd *cobra.Command, resp service.AnalyzeResponse) error {
	out := struct {
		Suggestions []suggest.Suggestion `json:"suggestions"`
		Reason      string               `json:"reason,omitempty"`
	}{resp.Suggestions, resp.Reason}
	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal suggestions: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputSuggestionsTable(cmd *cobra.Command, resp service.AnalyzeResponse) {
	if len(resp.Suggestions) == 0 {
		cmd.Println(noSuggestionsMessage(resp.Reason))
		return
	}

	cmd.Printf("Suggestions (%d):\n\n", len(resp.Suggestions))
	for i, sg := range resp.Suggestions {
		// Format: [N] "anchor" -> url (Relevance 0.00, Category)
		cmd.Printf("  [%d] %q -> %s (%s %.2f, %s)\n", i+1, sg.AnchorText, sg.DestinationURL,
			render.RelevanceLabel(sg.Score), sg.Score, sg.Category)
		if sg.ContextSnippet != "" {
			cmd.Printf("      %s\n", sg.ContextSnippet)
		}
	}
}

func noSuggestionsMessage(reason string) string {
	switch reason {
	case service.ReasonEmptyContent:
		return "No suggestions: the document has no text."
	case service.ReasonEmptyCatalog:
		return "No suggestions: the destination catalog is empty. Try `linkctl catalog seed` or `linkctl import`."
	default:
		return "No suggestions found."
	}
}

func writeLinked(cmd *cobra.Command, path, source string, accepted []suggest.Suggestion) error {
	linked := render.LinkDocument(source, accepted)
	if err := os.WriteFile(path, []byte(linked), 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	cmd.Printf("Wrote %s with %d links\n", path, len(accepted))
	return nil
}
