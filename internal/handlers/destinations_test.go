package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/mock/gomock"

	"github.com/gtmaihackathon/internal-link-suggester/internal/service"
	"github.com/gtmaihackathon/internal-link-suggester/internal/service/mocks"
	"github.com/gtmaihackathon/internal-link-suggester/internal/storage"
)

func newDestinationRouter(m service.CatalogService) http.Handler {
	r := chi.NewRouter()
	r.Route("/api/destinations", NewDestinationHandler(m).Routes)
	return r
}

func TestDestinationHandler(t *testing.T) {
	added := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	guide := storage.DestinationRecord{
		URL:       "https://example.com/seo-guide",
		Title:     "SEO Guide",
		H1:        "Ultimate SEO Guide",
		Category:  "Guide",
		CreatedAt: added,
	}

	tests := []struct {
		name          string
		method        string
		path          string
		body          string
		mockSetup     func(*mocks.MockCatalogService)
		wantStatus    int
		checkResponse func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:   "list",
			method: http.MethodGet,
			path:   "/api/destinations",
			mockSetup: func(m *mocks.MockCatalogService) {
				m.EXPECT().List(gomock.Any()).Return([]storage.DestinationRecord{guide}, nil)
			},
			wantStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp DestinationListResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
					t.Fatal(err)
				}
				if resp.Count != 1 || resp.Destinations[0].AddedDate != "2025-03-01T12:00:00Z" {
					t.Errorf("list = %+v", resp)
				}
				if resp.Destinations[0].H2 == nil {
					t.Error("h2 should encode as an empty list")
				}
			},
		},
		{
			name:   "add joins sub-headings",
			method: http.MethodPost,
			path:   "/api/destinations",
			body:   `{"url":"https://example.com/seo-guide","title":"SEO Guide","h1":"Ultimate SEO Guide","h2":["Basics","Links"]}`,
			mockSetup: func(m *mocks.MockCatalogService) {
				m.EXPECT().
					Add(gomock.Any(), service.AddDestinationRequest{
						URL:   "https://example.com/seo-guide",
						Title: "SEO Guide",
						H1:    "Ultimate SEO Guide",
						H2:    "Basics\nLinks",
					}).
					Return(&guide, nil)
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:   "add validation error",
			method: http.MethodPost,
			path:   "/api/destinations",
			body:   `{"url":"/relative","title":"T","h1":"H"}`,
			mockSetup: func(m *mocks.MockCatalogService) {
				m.EXPECT().Add(gomock.Any(), gomock.Any()).
					Return(nil, &service.ValidationError{Field: "url", Message: "must be an absolute http(s) URL"})
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:       "add unknown field",
			method:     http.MethodPost,
			path:       "/api/destinations",
			body:       `{"link":"https://example.com"}`,
			mockSetup:  func(m *mocks.MockCatalogService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "get by raw url path",
			method: http.MethodGet,
			path:   "/api/destinations/https://example.com/seo-guide",
			mockSetup: func(m *mocks.MockCatalogService) {
				m.EXPECT().Get(gomock.Any(), "https://example.com/seo-guide").Return(&guide, nil)
			},
			wantStatus: http.StatusOK,
		},
		{
			name:   "delete by encoded url",
			method: http.MethodDelete,
			path:   "/api/destinations/https%3A%2F%2Fexample.com%2Fseo-guide",
			mockSetup: func(m *mocks.MockCatalogService) {
				m.EXPECT().Delete(gomock.Any(), "https://example.com/seo-guide").Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:   "delete missing",
			method: http.MethodDelete,
			path:   "/api/destinations/https://example.com/missing",
			mockSetup: func(m *mocks.MockCatalogService) {
				m.EXPECT().Delete(gomock.Any(), "https://example.com/missing").Return(service.ErrNotFound)
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:   "clear",
			method: http.MethodDelete,
			path:   "/api/destinations",
			mockSetup: func(m *mocks.MockCatalogService) {
				m.EXPECT().Clear(gomock.Any()).Return(nil)
			},
			wantStatus: http.StatusNoContent,
		},
		{
			name:   "seed",
			method: http.MethodPost,
			path:   "/api/destinations/seed",
			mockSetup: func(m *mocks.MockCatalogService) {
				m.EXPECT().Seed(gomock.Any()).Return(6, nil)
			},
			wantStatus: http.StatusOK,
			checkResponse: func(t *testing.T, w *httptest.ResponseRecorder) {
				var resp SeedResponse
				if err := json.NewDecoder(w.Body).Decode(&resp); err != nil || resp.Added != 6 {
					t.Errorf("seed = %+v, err %v", resp, err)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockSvc := mocks.NewMockCatalogService(ctrl)
			tt.mockSetup(mockSvc)

			req := httptest.NewRequest(tt.method, tt.path, bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()
			newDestinationRouter(mockSvc).ServeHTTP(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d, body %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.checkResponse != nil {
				tt.checkResponse(t, w)
			}
		})
	}
}
