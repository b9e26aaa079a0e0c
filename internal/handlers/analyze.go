package handlers

import (
	"net/http"

	"github.com/gtmaihackathon/internal-link-suggester/internal/contextutil"
	"github.com/gtmaihackathon/internal-link-suggester/internal/render"
	"github.com/gtmaihackathon/internal-link-suggester/internal/review"
	"github.com/gtmaihackathon/internal-link-suggester/internal/service"
	"github.com/gtmaihackathon/internal-link-suggester/internal/suggest"
)

// AnalyzeHandler handles HTTP requests for content analysis.
type AnalyzeHandler struct {
	suggestService service.SuggestService
	reviews        *review.Store
}

// NewAnalyzeHandler creates a new AnalyzeHandler.
func NewAnalyzeHandler(suggestService service.SuggestService, reviews *review.Store) *AnalyzeHandler {
	return &AnalyzeHandler{
		suggestService: suggestService,
		reviews:        reviews,
	}
}

// AnalyzeRequest represents the HTTP request payload for analysis.
type AnalyzeRequest struct {
	Content string `json:"content"`
	Format  string `json:"format,omitempty"`
	Limit   int    `json:"limit,omitempty"`
}

// SuggestionView is a suggestion as shown to a reviewer.
type SuggestionView struct {
	suggest.Suggestion
	Relevance string          `json:"relevance"`
	Decision  review.Decision `json:"decision"`
}

// AnalyzeResponse represents the HTTP response payload for analysis.
type AnalyzeResponse struct {
	SessionID   string           `json:"session_id,omitempty"`
	Suggestions []SuggestionView `json:"suggestions"`
	Reason      string           `json:"reason,omitempty"`
}

// ServeHTTP handles POST /api/analyze.
//
// A review session is opened only when there is something to review.
func (h *AnalyzeHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	var req AnalyzeRequest
	if err := decodeJSON(r, &req); err != nil {
		logger.WarnContext(ctx, "invalid request body", "error", err)
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	svcResp, err := h.suggestService.Analyze(ctx, service.AnalyzeRequest{
		Content: req.Content,
		Format:  req.Format,
		Limit:   req.Limit,
	})
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to analyze content")
		return
	}

	resp := AnalyzeResponse{
		Suggestions: views(svcResp.Suggestions, nil),
		Reason:      svcResp.Reason,
	}
	if len(svcResp.Suggestions) > 0 {
		sess := h.reviews.Create(svcResp.Document, svcResp.Suggestions)
		resp.SessionID = sess.ID
		logger.InfoContext(ctx, "review session opened", "session_id", sess.ID, "suggestions", len(svcResp.Suggestions))
	} else {
		h.reviews.RecordAnalysis()
	}

	writeJSON(ctx, w, http.StatusOK, resp)
}

// views decorates suggestions with a relevance label and, when a session
// is given, the reviewer's decision.
func views(suggestions []suggest.Suggestion, sess *review.Session) []SuggestionView {
	out := make([]SuggestionView, 0, len(suggestions))
	for _, s := range suggestions {
		d := review.DecisionPending
		if sess != nil {
			d = sess.DecisionFor(s.DestinationURL)
		}
		out = append(out, SuggestionView{
			Suggestion: s,
			Relevance:  render.RelevanceLabel(s.Score),
			Decision:   d,
		})
	}
	return out
}
