package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/gtmaihackathon/internal-link-suggester/internal/app"
	"github.com/gtmaihackathon/internal-link-suggester/internal/service"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage destination pages",
}

var catalogJSON bool

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List destination pages",
	Args:  cobra.NoArgs,
	RunE:  withApp(runCatalogList),
}

var catalogAdd service.AddDestinationRequest
var catalogAddH2 []string

var catalogAddCmd = &cobra.Command{
	Use:   "add <url>",
	Short: "Add or replace a destination page",
	Args:  cobra.ExactArgs(1),
	RunE:  withApp(runCatalogAdd),
}

var catalogDeleteCmd = &cobra.Command{
	Use:     "delete <url>",
	Aliases: []string{"rm"},
	Short:   "Delete a destination page",
	Args:    cobra.ExactArgs(1),
	RunE:    withApp(runCatalogDelete),
}

var catalogClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete every destination page",
	Args:  cobra.NoArgs,
	RunE:  withApp(runCatalogClear),
}

var catalogSeedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Add the quick-start sample destinations",
	Args:  cobra.NoArgs,
	RunE:  withApp(runCatalogSeed),
}

func init() {
	catalogListCmd.Flags().BoolVar(&catalogJSON, "json", false, "output as JSON")

	catalogAddCmd.Flags().StringVar(&catalogAdd.Title, "title", "", "page title (required)")
	catalogAddCmd.Flags().StringVar(&catalogAdd.H1, "h1", "", "primary heading (required)")
	catalogAddCmd.Flags().StringSliceVar(&catalogAddH2, "h2", nil, "sub-heading; repeat for several")
	catalogAddCmd.Flags().StringVar(&catalogAdd.MetaDescription, "meta", "", "meta description")
	catalogAddCmd.Flags().StringVar(&catalogAdd.Category, "category", "", "page category (default auto-detect)")

	catalogCmd.AddCommand(catalogListCmd, catalogAddCmd, catalogDeleteCmd, catalogClearCmd, catalogSeedCmd)
	rootCmd.AddCommand(catalogCmd)
}

func runCatalogList(cmd *cobra.Command, _ []string, a *app.App) error {
	if catalogJSON {
		return a.Catalog.Export(cmd.Context(), cmd.OutOrStdout(), service.ExportJSON)
	}

	recs, err := a.Catalog.List(cmd.Context())
	if err != nil {
		return err
	}

	if len(recs) == 0 {
		cmd.Println("Catalog is empty.")
		return nil
	}
	cmd.Printf("Destinations (%d):\n\n", len(recs))
	for _, rec := range recs {
		cmd.Printf("  %-10s %s\n", rec.Category, rec.URL)
		cmd.Printf("             %s\n", rec.H1)
	}
	return nil
}

func runCatalogAdd(cmd *cobra.Command, args []string, a *app.App) error {
	req := catalogAdd
	req.URL = args[0]
	req.H2 = strings.Join(catalogAddH2, "\n")

	rec, err := a.Catalog.Add(cmd.Context(), req)
	if err != nil {
		return err
	}
	cmd.Printf("Saved %s (%s)\n", rec.URL, rec.Category)
	return nil
}

func runCatalogDelete(cmd *cobra.Command, args []string, a *app.App) error {
	if err := a.Catalog.Delete(cmd.Context(), args[0]); err != nil {
		return err
	}
	cmd.Printf("Deleted %s\n", args[0])
	return nil
}

func runCatalogClear(cmd *cobra.Command, _ []string, a *app.App) error {
	if err := a.Catalog.Clear(cmd.Context()); err != nil {
		return err
	}
	cmd.Println("Catalog cleared.")
	return nil
}

func runCatalogSeed(cmd *cobra.Command, _ []string, a *app.App) error {
	n, err := a.Catalog.Seed(cmd.Context())
	if err != nil {
		return err
	}
	cmd.Printf("Added %d sample destinations\n", n)
	return nil
}
