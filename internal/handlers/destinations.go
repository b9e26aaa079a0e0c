package handlers

import (
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/gtmaihackathon/internal-link-suggester/internal/contextutil"
	"github.com/gtmaihackathon/internal-link-suggester/internal/service"
	"github.com/gtmaihackathon/internal-link-suggester/internal/storage"
)

// DestinationHandler manages the destination catalog over HTTP.
type DestinationHandler struct {
	catalog service.CatalogService
}

// NewDestinationHandler creates a new DestinationHandler.
func NewDestinationHandler(catalog service.CatalogService) *DestinationHandler {
	return &DestinationHandler{catalog: catalog}
}

// DestinationRequest is the payload for adding or updating a destination.
type DestinationRequest struct {
	URL             string   `json:"url"`
	Title           string   `json:"title"`
	H1              string   `json:"h1"`
	H2              []string `json:"h2,omitempty"`
	MetaDescription string   `json:"meta_description,omitempty"`
	Category        string   `json:"category,omitempty"`
}

// DestinationResponse is one catalog entry.
type DestinationResponse struct {
	URL             string   `json:"url"`
	Title           string   `json:"title"`
	H1              string   `json:"h1"`
	H2              []string `json:"h2"`
	MetaDescription string   `json:"meta_description"`
	Category        string   `json:"category"`
	AddedDate       string   `json:"added_date"`
}

// DestinationListResponse is the whole catalog.
type DestinationListResponse struct {
	Count        int                   `json:"count"`
	Destinations []DestinationResponse `json:"destinations"`
}

// Routes registers the catalog endpoints on r.
func (h *DestinationHandler) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Add)
	r.Delete("/", h.Clear)
	r.Post("/seed", h.Seed)
	r.Get("/*", h.Get)
	r.Delete("/*", h.Delete)
}

// List handles GET /api/destinations.
func (h *DestinationHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	recs, err := h.catalog.List(ctx)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to list destinations")
		return
	}
	resp := DestinationListResponse{Count: len(recs), Destinations: make([]DestinationResponse, 0, len(recs))}
	for i := range recs {
		resp.Destinations = append(resp.Destinations, toResponse(&recs[i]))
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// Add handles POST /api/destinations. Posting an existing URL replaces it.
func (h *DestinationHandler) Add(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var req DestinationRequest
	if err := decodeJSON(r, &req); err != nil {
		contextutil.LoggerFromContext(ctx).WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	rec, err := h.catalog.Add(ctx, service.AddDestinationRequest{
		URL:             req.URL,
		Title:           req.Title,
		H1:              req.H1,
		H2:              strings.Join(req.H2, "\n"),
		MetaDescription: req.MetaDescription,
		Category:        req.Category,
	})
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to add destination")
		return
	}
	writeJSON(ctx, w, http.StatusCreated, toResponse(rec))
}

// Get handles GET /api/destinations/{url}.
func (h *DestinationHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	u, ok := wildcardURL(w, r)
	if !ok {
		return
	}
	rec, err := h.catalog.Get(ctx, u)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to load destination")
		return
	}
	writeJSON(ctx, w, http.StatusOK, toResponse(rec))
}

// Delete handles DELETE /api/destinations/{url}.
func (h *DestinationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	u, ok := wildcardURL(w, r)
	if !ok {
		return
	}
	if err := h.catalog.Delete(ctx, u); err != nil {
		handleServiceError(ctx, w, err, "Failed to delete destination")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Clear handles DELETE /api/destinations.
func (h *DestinationHandler) Clear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	if err := h.catalog.Clear(ctx); err != nil {
		handleServiceError(ctx, w, err, "Failed to clear destinations")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SeedResponse reports how many sample destinations were added.
type SeedResponse struct {
	Added int `json:"added"`
}

// Seed handles POST /api/destinations/seed.
func (h *DestinationHandler) Seed(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	n, err := h.catalog.Seed(ctx)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to add sample destinations")
		return
	}
	writeJSON(ctx, w, http.StatusOK, SeedResponse{Added: n})
}

// wildcardURL extracts the destination URL from the path wildcard. The URL
// may be sent percent-encoded as a single segment or as a raw path.
func wildcardURL(w http.ResponseWriter, r *http.Request) (string, bool) {
	raw := chi.URLParam(r, "*")
	u, err := url.PathUnescape(raw)
	if err != nil || strings.TrimSpace(u) == "" {
		writeError(w, http.StatusBadRequest, "Invalid destination URL")
		return "", false
	}
	return u, true
}

func toResponse(rec *storage.DestinationRecord) DestinationResponse {
	h2 := rec.H2
	if h2 == nil {
		h2 = []string{}
	}
	return DestinationResponse{
		URL:             rec.URL,
		Title:           rec.Title,
		H1:              rec.H1,
		H2:              h2,
		MetaDescription: rec.MetaDescription,
		Category:        rec.Category,
		AddedDate:       rec.CreatedAt.UTC().Format(time.RFC3339),
	}
}
