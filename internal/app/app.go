// Package app wires configuration, storage and the suggestion engine into
// the services shared by the API server, the CLI and the MCP server.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"

	"github.com/gtmaihackathon/internal-link-suggester/internal/config"
	"github.com/gtmaihackathon/internal-link-suggester/internal/contextutil"
	"github.com/gtmaihackathon/internal-link-suggester/internal/importer"
	"github.com/gtmaihackathon/internal-link-suggester/internal/llm"
	"github.com/gtmaihackathon/internal-link-suggester/internal/render"
	"github.com/gtmaihackathon/internal-link-suggester/internal/review"
	"github.com/gtmaihackathon/internal-link-suggester/internal/service"
	"github.com/gtmaihackathon/internal-link-suggester/internal/storage"
	"github.com/gtmaihackathon/internal-link-suggester/internal/suggest"
	"github.com/gtmaihackathon/internal-link-suggester/internal/vectorstore"
)

// App holds the wired services.
type App struct {
	Config    *config.Config
	DB        *sql.DB
	Catalog   service.CatalogService
	Suggest   service.SuggestService
	Generator *suggest.Generator
	Reviews   *review.Store
	Renderer  *render.Renderer

	// VectorStore is nil unless encodings are cached in Qdrant.
	VectorStore *vectorstore.QdrantStore

	closers []func() error
}

// New opens the database and builds the configured similarity strategy.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	logger := contextutil.LoggerFromContext(ctx)
	a := &App{Config: cfg}

	db, err := storage.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	a.DB = db
	a.closers = append(a.closers, db.Close)

	if err := storage.Migrate(db); err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	logger.InfoContext(ctx, "database initialized", "path", cfg.DBPath)

	sim, forgetter, err := a.similarity(ctx)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	a.Generator = suggest.NewGenerator(sim,
		suggest.WithPolicy(cfg.Policy),
		suggest.WithChunkSize(cfg.ChunkSize),
		suggest.WithCategoryBoost(cfg.CategoryBoost),
	)

	catalogOpts := []service.CatalogOption{
		service.WithUploadDir(filepath.Join(filepath.Dir(cfg.DBPath), "uploads")),
	}
	if forgetter != nil {
		catalogOpts = append(catalogOpts, service.WithForgetter(forgetter))
	}

	destinations := storage.NewDestinationRepo(db)
	a.Catalog = service.NewCatalogService(destinations, storage.NewImportRepo(db), catalogOpts...)
	a.Suggest = service.NewSuggestService(destinations, a.Generator, cfg.MaxSuggestions, config.MaxSuggestionsCeiling)
	a.Reviews = review.NewStore()
	a.Renderer = render.NewRenderer()

	logger.InfoContext(ctx, "suggestion engine ready",
		"scorer", cfg.Scorer,
		"policy", cfg.Policy.Name,
		"chunk_size", cfg.ChunkSize,
		"category_boost", cfg.CategoryBoost,
	)
	return a, nil
}

// similarity builds the configured strategy. The returned forgetter is
// non-nil only when destination encodings are cached in Qdrant.
func (a *App) similarity(ctx context.Context) (suggest.Similarity, service.EmbeddingForgetter, error) {
	cfg := a.Config
	if cfg.Scorer != config.ScorerEmbedding {
		return suggest.NewTFIDF(), nil, nil
	}
	logger := contextutil.LoggerFromContext(ctx)

	// Validate embedding client vector size (fail-fast)
	embedder := llm.NewEmbeddingsClient(cfg.EmbeddingBaseURL, cfg.EmbeddingAPIKey, cfg.EmbeddingModelName, cfg.EmbeddingVectorSize)
	if _, err := embedder.EmbedTexts(ctx, []string{"test"}); err != nil {
		return nil, nil, fmt.Errorf("failed to validate embedding client: %w", err)
	}
	logger.InfoContext(ctx, "embedding client validated", "model", cfg.EmbeddingModelName, "vector_size", cfg.EmbeddingVectorSize)

	if cfg.QdrantURL == "" {
		return suggest.NewEmbedding(embedder, nil), nil, nil
	}

	store, err := vectorstore.NewQdrantStore(cfg.QdrantURL, cfg.QdrantAPIKey)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create Qdrant client: %w", err)
	}
	a.closers = append(a.closers, store.Close)
	a.VectorStore = store

	if err := store.EnsureCollection(ctx, cfg.QdrantCollection, cfg.EmbeddingVectorSize); err != nil {
		return nil, nil, fmt.Errorf("failed to ensure Qdrant collection: %w", err)
	}
	logger.InfoContext(ctx, "qdrant collection ready", "collection", cfg.QdrantCollection)

	cache := vectorstore.NewEmbeddingCache(store, cfg.QdrantCollection, cfg.EmbeddingModelName)
	return suggest.NewEmbedding(embedder, cache), cache, nil
}

// WatchImports re-imports the configured watch file on change until ctx is
// cancelled. It returns immediately when no watch path is configured.
func (a *App) WatchImports(ctx context.Context) error {
	if a.Config.ImportWatchPath == "" {
		return nil
	}
	w := importer.NewWatcher(a.Config.ImportWatchPath, func(ctx context.Context, path string) error {
		summary, err := a.Catalog.Import(ctx, path)
		if err != nil {
			return err
		}
		if len(summary.Errors) > 0 {
			contextutil.LoggerFromContext(ctx).WarnContext(ctx, "import file has row errors",
				"failed", summary.Failed, "first", summary.Errors[0])
		}
		return nil
	})
	return w.Run(ctx)
}

// Close releases every resource in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	a.closers = nil
	return errors.Join(errs...)
}
