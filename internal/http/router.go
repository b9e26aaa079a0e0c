package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gtmaihackathon/internal-link-suggester/internal/handlers"
	"github.com/gtmaihackathon/internal-link-suggester/internal/render"
	"github.com/gtmaihackathon/internal-link-suggester/internal/review"
	"github.com/gtmaihackathon/internal-link-suggester/internal/service"
)

// maxJSONBody caps JSON request bodies; uploads are limited by the import
// handler itself.
const maxJSONBody = 5 << 20

// Deps holds dependencies for the HTTP router.
type Deps struct {
	SuggestService service.SuggestService
	CatalogService service.CatalogService
	Reviews        *review.Store
	Renderer       *render.Renderer

	DB             handlers.Pinger
	Collections    handlers.CollectionChecker // nil without an embedding cache
	CollectionName string

	IndexHTML string // Embedded HTML content
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	// Add chi middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)

	// Add CORS middleware
	r.Use(CORS)

	analyzeHandler := handlers.NewAnalyzeHandler(deps.SuggestService, deps.Reviews)
	sessionHandler := handlers.NewSessionHandler(deps.Reviews, deps.Renderer)
	destinationHandler := handlers.NewDestinationHandler(deps.CatalogService)
	transferHandler := handlers.NewTransferHandler(deps.CatalogService)
	healthHandler := handlers.NewHealthHandler(deps.DB, deps.CatalogService, deps.Collections, deps.CollectionName)
	analyticsHandler := handlers.NewAnalyticsHandler(deps.Reviews)

	// Register API routes
	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", healthHandler)
		r.With(MaxBodySize(maxJSONBody)).Method(http.MethodPost, "/analyze", analyzeHandler)
		r.Method(http.MethodGet, "/analytics", analyticsHandler)

		r.With(MaxBodySize(maxJSONBody)).Route("/sessions/{id}", sessionHandler.Routes)
		r.With(MaxBodySize(maxJSONBody)).Route("/destinations", destinationHandler.Routes)

		r.Post("/import", transferHandler.Import)
		r.Post("/import/reload", transferHandler.Reload)
		r.Get("/export", transferHandler.Export)
		r.Get("/template", transferHandler.Template)
	})

	r.Get("/sessions/{id}/preview", sessionHandler.Preview)

	// Serve HTML page at root
	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(deps.IndexHTML))
	})

	return r
}
