package cli

import (
	"github.com/spf13/cobra"

	"github.com/gtmaihackathon/internal-link-suggester/internal/app"
	"github.com/gtmaihackathon/internal-link-suggester/internal/batch"
)

var (
	batchLimit   int
	batchOutput  string
	batchLinkDir string
)

var batchCmd = &cobra.Command{
	Use:   "batch <dir>",
	Short: "Suggest links for every document in a directory",
	Long: `Walks a directory for .md, .markdown, .html, .htm and .txt files,
analyses each one and writes a CSV report with one row per suggestion.

With --link-dir, a copy of every document with all of its suggestions
inserted is written under that directory.`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(runBatch),
}

func init() {
	batchCmd.Flags().IntVarP(&batchLimit, "limit", "n", 0, "maximum suggestions per document (default from config)")
	batchCmd.Flags().StringVarP(&batchOutput, "output", "o", "", "report file (default stdout)")
	batchCmd.Flags().StringVar(&batchLinkDir, "link-dir", "", "write linked copies of the documents here")
	rootCmd.AddCommand(batchCmd)
}

func runBatch(cmd *cobra.Command, args []string, a *app.App) error {
	report, err := batch.NewRunner(a.Suggest).Run(cmd.Context(), args[0], batch.Options{
		Limit:   batchLimit,
		LinkDir: batchLinkDir,
	})
	if err != nil {
		return err
	}

	if err := writeTo(cmd, batchOutput, report.WriteCSV); err != nil {
		return err
	}
	cmd.PrintErrf("Analysed %d documents (%d failed), %d suggestions\n",
		report.Analysed, report.Failed, report.Suggestions)
	return nil
}
