package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go.uber.org/mock/gomock"

	"github.com/gtmaihackathon/internal-link-suggester/internal/service"
	"github.com/gtmaihackathon/internal-link-suggester/internal/service/mocks"
)

func multipartBody(t *testing.T, field, filename, data string) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := fw.Write([]byte(data)); err != nil {
		t.Fatal(err)
	}
	if err := mw.Close(); err != nil {
		t.Fatal(err)
	}
	return &buf, mw.FormDataContentType()
}

func TestTransferHandler_Import(t *testing.T) {
	csv := "url,title,h1\nhttps://example.com/a,A,Heading A\n"

	tests := []struct {
		name       string
		field      string
		mockSetup  func(*mocks.MockCatalogService)
		wantStatus int
	}{
		{
			name:  "upload imported",
			field: "file",
			mockSetup: func(m *mocks.MockCatalogService) {
				m.EXPECT().
					ImportUpload(gomock.Any(), "urls.csv", gomock.Any()).
					DoAndReturn(func(_ context.Context, _ string, r io.Reader) (service.ImportSummary, error) {
						data, _ := io.ReadAll(r)
						if string(data) != csv {
							t.Errorf("upload body = %q", data)
						}
						return service.ImportSummary{Source: "data/uploads/uploaded_urls.csv", Imported: 1}, nil
					})
			},
			wantStatus: http.StatusOK,
		},
		{
			name:       "wrong field name",
			field:      "upload",
			mockSetup:  func(m *mocks.MockCatalogService) {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:  "unsupported file type",
			field: "file",
			mockSetup: func(m *mocks.MockCatalogService) {
				m.EXPECT().ImportUpload(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(service.ImportSummary{}, service.WrapError(service.ErrInvalidInput, "unsupported file type .pdf"))
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockSvc := mocks.NewMockCatalogService(ctrl)
			tt.mockSetup(mockSvc)

			body, contentType := multipartBody(t, tt.field, "urls.csv", csv)
			req := httptest.NewRequest(http.MethodPost, "/api/import", body)
			req.Header.Set("Content-Type", contentType)
			w := httptest.NewRecorder()

			NewTransferHandler(mockSvc).Import(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d, body %s", w.Code, tt.wantStatus, w.Body.String())
			}
			if tt.wantStatus == http.StatusOK {
				var summary service.ImportSummary
				if err := json.NewDecoder(w.Body).Decode(&summary); err != nil || summary.Imported != 1 {
					t.Errorf("summary = %+v, err %v", summary, err)
				}
			}
		})
	}
}

func TestTransferHandler_Reload(t *testing.T) {
	ctrl := gomock.NewController(t)
	mockSvc := mocks.NewMockCatalogService(ctrl)
	mockSvc.EXPECT().Reload(gomock.Any()).Return(service.ImportSummary{}, service.ErrNotFound)

	req := httptest.NewRequest(http.MethodPost, "/api/import/reload", nil)
	w := httptest.NewRecorder()
	NewTransferHandler(mockSvc).Reload(w, req)

	if w.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", w.Code)
	}
}

func TestTransferHandler_Export(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantFormat string
		wantStatus int
		wantType   string
		wantFile   string
	}{
		{"default csv", "", service.ExportCSV, http.StatusOK, "text/csv", "urls_export.csv"},
		{"json", "?format=json", service.ExportJSON, http.StatusOK, "application/json", "urls_export.json"},
		{"unsupported", "?format=xml", "", http.StatusBadRequest, "application/json", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			mockSvc := mocks.NewMockCatalogService(ctrl)
			if tt.wantFormat != "" {
				mockSvc.EXPECT().
					Export(gomock.Any(), gomock.Any(), tt.wantFormat).
					DoAndReturn(func(_ context.Context, w io.Writer, _ string) error {
						_, err := io.WriteString(w, "payload")
						return err
					})
			}

			req := httptest.NewRequest(http.MethodGet, "/api/export"+tt.query, nil)
			w := httptest.NewRecorder()
			NewTransferHandler(mockSvc).Export(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if got := w.Header().Get("Content-Type"); got != tt.wantType {
				t.Errorf("Content-Type = %q, want %q", got, tt.wantType)
			}
			if tt.wantFile != "" && !strings.Contains(w.Header().Get("Content-Disposition"), tt.wantFile) {
				t.Errorf("Content-Disposition = %q", w.Header().Get("Content-Disposition"))
			}
		})
	}
}

func TestTransferHandler_Template(t *testing.T) {
	tests := []struct {
		name       string
		query      string
		wantStatus int
		check      func(*testing.T, *httptest.ResponseRecorder)
	}{
		{
			name:       "xlsx is a zip archive",
			query:      "",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				if !bytes.HasPrefix(w.Body.Bytes(), []byte("PK")) {
					t.Error("xlsx template should start with the zip signature")
				}
			},
		},
		{
			name:       "empty csv",
			query:      "?format=csv&empty=true",
			wantStatus: http.StatusOK,
			check: func(t *testing.T, w *httptest.ResponseRecorder) {
				if !strings.HasPrefix(w.Body.String(), "url,title,h1,meta_description,h2\n") {
					t.Errorf("csv template = %q", w.Body.String())
				}
				if !strings.Contains(w.Header().Get("Content-Disposition"), "url_template_empty.csv") {
					t.Errorf("Content-Disposition = %q", w.Header().Get("Content-Disposition"))
				}
			},
		},
		{
			name:       "unsupported",
			query:      "?format=ods",
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/template"+tt.query, nil)
			w := httptest.NewRecorder()
			NewTransferHandler(nil).Template(w, req)

			if w.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", w.Code, tt.wantStatus)
			}
			if tt.check != nil {
				tt.check(t, w)
			}
		})
	}
}
