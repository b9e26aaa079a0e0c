package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gtmaihackathon/internal-link-suggester/internal/app"
	"github.com/gtmaihackathon/internal-link-suggester/internal/config"
	"github.com/gtmaihackathon/internal-link-suggester/internal/http"
	"github.com/gtmaihackathon/internal-link-suggester/internal/web"
)

//go:generate swagger generate spec -o swagger.json

// General API information
//
// This API suggests internal links for a piece of content from a catalog of destination pages.
//
// swagger:meta
//
// ---
// swagger: '2.0'
// info:
//   title: Internal Link Suggester API
//   description: |
//     Paste content, review ranked internal-link suggestions, and download the
//     content with accepted links inserted. The destination catalog is managed
//     through the same API or imported from CSV and Excel sheets.
//   version: 1.0.0
// schemes:
//   - http
//   - https
// consumes:
//   - application/json
// produces:
//   - application/json

func main() {
	// Load configuration first (needed for log level)
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	logger := cfg.NewLogger()
	slog.SetDefault(logger)
	slog.Debug("Logging configured", "level", cfg.LogLevel.String(), "format", cfg.LogFormat)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer func() {
		if err := a.Close(); err != nil {
			slog.Error("Failed to release resources", "error", err)
		}
	}()

	deps := &http.Deps{
		SuggestService: a.Suggest,
		CatalogService: a.Catalog,
		Reviews:        a.Reviews,
		Renderer:       a.Renderer,
		DB:             a.DB,
		CollectionName: cfg.QdrantCollection,
		IndexHTML:      web.IndexHTML,
	}
	if a.VectorStore != nil {
		deps.Collections = a.VectorStore
	}
	router := http.NewRouter(deps)

	// Watch the import file in background after router is ready
	go func() {
		if err := a.WatchImports(ctx); err != nil {
			slog.Error("Import watcher stopped", "error", err)
		}
	}()

	// Start API server
	addr := ":" + cfg.APIPort
	server := &nethttp.Server{
		Addr:              addr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown failed", "error", err)
		}
	}()

	slog.Info("Starting API server", "addr", addr, "scorer", cfg.Scorer)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
		log.Fatalf("API server failed to start: %v", err)
	}
	slog.Info("API server stopped")
}
