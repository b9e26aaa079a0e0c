package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/gtmaihackathon/internal-link-suggester/internal/contextutil"
	"github.com/gtmaihackathon/internal-link-suggester/internal/render"
	"github.com/gtmaihackathon/internal-link-suggester/internal/review"
	"github.com/gtmaihackathon/internal-link-suggester/internal/suggest"
)

// SessionHandler serves review sessions.
type SessionHandler struct {
	reviews  *review.Store
	renderer *render.Renderer
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(reviews *review.Store, renderer *render.Renderer) *SessionHandler {
	return &SessionHandler{reviews: reviews, renderer: renderer}
}

// SessionResponse is the current state of a review.
type SessionResponse struct {
	SessionID   string           `json:"session_id"`
	Suggestions []SuggestionView `json:"suggestions"`
	Stats       review.Stats     `json:"stats"`
}

// DecisionRequest names the suggestion a decision applies to.
type DecisionRequest struct {
	URL string `json:"url"`
}

// Routes registers the session endpoints on r.
func (h *SessionHandler) Routes(r chi.Router) {
	r.Get("/", h.Get)
	r.Post("/accept", h.Accept)
	r.Post("/reject", h.Reject)
	r.Get("/document", h.Document)
	r.Delete("/", h.Delete)
}

// Get handles GET /api/sessions/{id}.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var resp SessionResponse
	err := h.reviews.View(chi.URLParam(r, "id"), func(s *review.Session) error {
		resp = sessionResponse(s)
		return nil
	})
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to load session")
		return
	}
	writeJSON(ctx, w, http.StatusOK, resp)
}

// Accept handles POST /api/sessions/{id}/accept.
func (h *SessionHandler) Accept(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.reviews.Accept)
}

// Reject handles POST /api/sessions/{id}/reject.
func (h *SessionHandler) Reject(w http.ResponseWriter, r *http.Request) {
	h.decide(w, r, h.reviews.Reject)
}

func (h *SessionHandler) decide(w http.ResponseWriter, r *http.Request, fn func(id, url string) error) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req DecisionRequest
	if err := decodeJSON(r, &req); err != nil || strings.TrimSpace(req.URL) == "" {
		logger.WarnContext(ctx, "invalid decision body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	id := chi.URLParam(r, "id")
	if err := fn(id, req.URL); err != nil {
		handleServiceError(ctx, w, err, "Failed to record decision")
		return
	}
	h.Get(w, r)
}

// Delete handles DELETE /api/sessions/{id}.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	h.reviews.Delete(chi.URLParam(r, "id"))
	w.WriteHeader(http.StatusNoContent)
}

// Document handles GET /api/sessions/{id}/document and returns the source
// with accepted links inserted, as a download.
func (h *SessionHandler) Document(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var linked string
	err := h.reviews.View(chi.URLParam(r, "id"), func(s *review.Session) error {
		linked = render.LinkDocument(s.Document.Source, s.Accepted())
		return nil
	})
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to build document")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="content_with_links.html"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(linked))
}

// Preview handles GET /sessions/{id}/preview and renders the linked document
// as a sanitised HTML page.
func (h *SessionHandler) Preview(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	var (
		linked   string
		accepted []suggest.Suggestion
		total    int
	)
	err := h.reviews.View(chi.URLParam(r, "id"), func(s *review.Session) error {
		accepted = s.Accepted()
		total = len(s.Suggestions)
		linked = render.LinkDocument(s.Document.Source, accepted)
		return nil
	})
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to build preview")
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.renderer.WritePage(w, "Linked content preview", linked, len(accepted), total); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "failed to render preview", "error", err)
		writeError(w, http.StatusInternalServerError, "Failed to render preview")
	}
}

func sessionResponse(s *review.Session) SessionResponse {
	return SessionResponse{
		SessionID:   s.ID,
		Suggestions: views(s.Suggestions, s),
		Stats:       s.Stats(),
	}
}
