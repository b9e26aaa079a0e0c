package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gtmaihackathon/internal-link-suggester/internal/app"
	"github.com/gtmaihackathon/internal-link-suggester/internal/cli"
	"github.com/gtmaihackathon/internal-link-suggester/internal/config"
)

// version is set with -ldflags "-X main.version=..."
var version string

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	// Logs go to stderr so stdout stays clean for output and the MCP stdio transport.
	slog.SetDefault(cfg.NewLogger())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cli.SetVersion(version)
	cli.SetAppFactory(func(ctx context.Context) (*app.App, error) {
		return app.New(ctx, cfg)
	})

	if err := cli.Execute(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
