package handlers

import (
	"net/http"

	"github.com/gtmaihackathon/internal-link-suggester/internal/review"
)

// AnalyticsHandler reports usage counters.
type AnalyticsHandler struct {
	reviews *review.Store
}

// NewAnalyticsHandler creates a new AnalyticsHandler.
func NewAnalyticsHandler(reviews *review.Store) *AnalyticsHandler {
	return &AnalyticsHandler{reviews: reviews}
}

// ServeHTTP handles GET /api/analytics.
func (h *AnalyticsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	writeJSON(r.Context(), w, http.StatusOK, h.reviews.Analytics())
}
