package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/gtmaihackathon/internal-link-suggester/internal/app"
	"github.com/gtmaihackathon/internal-link-suggester/internal/review"
	"github.com/gtmaihackathon/internal-link-suggester/internal/suggest"
	"github.com/gtmaihackathon/internal-link-suggester/internal/tui"
)

var (
	reviewFormat string
	reviewLimit  int
	reviewOutput string
)

var reviewCmd = &cobra.Command{
	Use:   "review [file]",
	Short: "Review suggestions interactively and write the linked document",
	Long: `Analyses a document and opens an interactive review of the suggestions.

Controls:
  ↑/k, ↓/j - Navigate suggestions
  a/Enter  - Accept
  r        - Reject
  u        - Undo decision
  A        - Accept all
  w        - Write the linked document and quit
  q        - Quit without writing`,
	Args: cobra.MaximumNArgs(1),
	RunE: withApp(runReview),
}

func init() {
	reviewCmd.Flags().StringVarP(&reviewFormat, "format", "f", "", "input format: text, markdown or html")
	reviewCmd.Flags().IntVarP(&reviewLimit, "limit", "n", 0, "maximum number of suggestions (default from config)")
	reviewCmd.Flags().StringVarP(&reviewOutput, "output", "o", "content_with_links.html", "file to write the linked document to")
	rootCmd.AddCommand(reviewCmd)
}

func runReview(cmd *cobra.Command, args []string, a *app.App) error {
	resp, err := analyzeInput(cmd, args, a, reviewFormat, reviewLimit)
	if err != nil {
		return err
	}
	if len(resp.Suggestions) == 0 {
		a.Reviews.RecordAnalysis()
		cmd.Println(noSuggestionsMessage(resp.Reason))
		return nil
	}

	sess := a.Reviews.Create(resp.Document, resp.Suggestions)
	model, err := tui.NewModel(a.Reviews, sess.ID)
	if err != nil {
		return err
	}

	p := tea.NewProgram(model, tea.WithContext(cmd.Context()), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI error: %w", err)
	}
	if !model.Save {
		cmd.Println("Review discarded.")
		return nil
	}

	var accepted []suggest.Suggestion
	err = a.Reviews.View(sess.ID, func(s *review.Session) error {
		accepted = s.Accepted()
		return nil
	})
	if err != nil {
		return err
	}
	return writeLinked(cmd, reviewOutput, resp.Document.Source, accepted)
}
