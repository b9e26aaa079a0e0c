package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/gtmaihackathon/internal-link-suggester/internal/app"
	"github.com/gtmaihackathon/internal-link-suggester/internal/importer"
	"github.com/gtmaihackathon/internal-link-suggester/internal/service"
)

var importCmd = &cobra.Command{
	Use:   "import <file.csv|file.xlsx>",
	Short: "Import destination pages from a sheet",
	Long: `Imports destination pages from a CSV or Excel sheet with the columns
url, title and h1, plus optional h2, meta_description and page_type.
Rows missing a required field are reported and skipped.`,
	Args: cobra.ExactArgs(1),
	RunE: withApp(runImport),
}

var importReloadCmd = &cobra.Command{
	Use:   "reload",
	Short: "Re-import the most recently imported sheet",
	Args:  cobra.NoArgs,
	RunE:  withApp(runImportReload),
}

var (
	exportFormat string
	exportOutput string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog as CSV or JSON",
	Args:  cobra.NoArgs,
	RunE:  withApp(runExport),
}

var (
	templateFormat string
	templateEmpty  bool
	templateOutput string
)

var templateCmd = &cobra.Command{
	Use:   "template",
	Short: "Write an import template",
	Args:  cobra.NoArgs,
	RunE:  runTemplate,
}

func init() {
	importCmd.AddCommand(importReloadCmd)

	exportCmd.Flags().StringVarP(&exportFormat, "format", "f", service.ExportCSV, "csv or json")
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "output file (default stdout)")

	templateCmd.Flags().StringVarP(&templateFormat, "format", "f", importer.TemplateXLSX, "xlsx or csv")
	templateCmd.Flags().BoolVar(&templateEmpty, "empty", false, "placeholder rows instead of sample pages")
	templateCmd.Flags().StringVarP(&templateOutput, "output", "o", "", "output file (default url_template.<format>)")

	rootCmd.AddCommand(importCmd, exportCmd, templateCmd)
}

func runImport(cmd *cobra.Command, args []string, a *app.App) error {
	summary, err := a.Catalog.Import(cmd.Context(), args[0])
	if err != nil {
		return err
	}
	printSummary(cmd, summary)
	return nil
}

func runImportReload(cmd *cobra.Command, _ []string, a *app.App) error {
	summary, err := a.Catalog.Reload(cmd.Context())
	if err != nil {
		return err
	}
	printSummary(cmd, summary)
	return nil
}

func printSummary(cmd *cobra.Command, s service.ImportSummary) {
	cmd.Printf("Imported %d destinations from %s\n", s.Imported, s.Source)
	if s.Failed > 0 {
		cmd.Printf("%d rows failed:\n", s.Failed)
	}
	for _, e := range s.Errors {
		cmd.Printf("  %s\n", e)
	}
}

func runExport(cmd *cobra.Command, _ []string, a *app.App) error {
	return writeTo(cmd, exportOutput, func(w io.Writer) error {
		return a.Catalog.Export(cmd.Context(), w, exportFormat)
	})
}

func runTemplate(cmd *cobra.Command, _ []string) error {
	out := templateOutput
	if out == "" {
		out = "url_template." + templateFormat
	}
	if err := writeTo(cmd, out, func(w io.Writer) error {
		return importer.WriteTemplate(w, templateFormat, templateEmpty)
	}); err != nil {
		return err
	}
	cmd.Printf("Wrote %s\n", out)
	return nil
}

// writeTo runs write against the named file, or the command's stdout when
// path is empty or "-".
func writeTo(cmd *cobra.Command, path string, write func(io.Writer) error) (err error) {
	if path == "" || path == "-" {
		return write(cmd.OutOrStdout())
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
	}()
	return write(f)
}
