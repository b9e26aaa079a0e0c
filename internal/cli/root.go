// Package cli implements the linkctl command line.
package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/gtmaihackathon/internal-link-suggester/internal/app"
)

// version is set at build time.
var version = "dev"

// AppFactory builds the application services for a command.
type AppFactory func(ctx context.Context) (*app.App, error)

var newApp AppFactory

// SetAppFactory sets how commands obtain their services.
func SetAppFactory(f AppFactory) {
	newApp = f
}

// SetVersion sets the reported version.
func SetVersion(v string) {
	if v != "" {
		version = v
	}
}

var rootCmd = &cobra.Command{
	Use:   "linkctl",
	Short: "Suggest internal links for content",
	Long: `linkctl suggests internal links for a piece of content from a catalog
of destination pages, lets you review them, and writes the content back
with the accepted links inserted.`,
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// withApp wraps a RunE so that the services are built before it runs and
// released after.
func withApp(run func(cmd *cobra.Command, args []string, a *app.App) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		if newApp == nil {
			return errors.New("application not configured")
		}
		ctx := cmd.Context()
		if ctx == nil {
			ctx = context.Background()
		}
		a, err := newApp(ctx)
		if err != nil {
			return err
		}
		defer func() {
			_ = a.Close()
		}()
		return run(cmd, args, a)
	}
}
