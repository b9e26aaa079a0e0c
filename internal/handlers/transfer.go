package handlers

import (
	"net/http"
	"strconv"

	"github.com/gtmaihackathon/internal-link-suggester/internal/contextutil"
	"github.com/gtmaihackathon/internal-link-suggester/internal/importer"
	"github.com/gtmaihackathon/internal-link-suggester/internal/service"
)

// maxUploadSize bounds multipart import uploads.
const maxUploadSize = 32 << 20

// TransferHandler handles bulk import, export and template downloads.
type TransferHandler struct {
	catalog service.CatalogService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(catalog service.CatalogService) *TransferHandler {
	return &TransferHandler{catalog: catalog}
}

// Import handles POST /api/import with a multipart "file" field holding a
// .csv or .xlsx sheet.
func (h *TransferHandler) Import(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	file, header, err := r.FormFile("file")
	if err != nil {
		logger.WarnContext(ctx, "missing upload", "error", err)
		writeError(w, http.StatusBadRequest, "Expected a multipart file field named \"file\"")
		return
	}
	defer func() {
		_ = file.Close()
	}()

	summary, err := h.catalog.ImportUpload(ctx, header.Filename, file)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to import file")
		return
	}
	writeJSON(ctx, w, http.StatusOK, summary)
}

// Reload handles POST /api/import/reload.
func (h *TransferHandler) Reload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	summary, err := h.catalog.Reload(ctx)
	if err != nil {
		handleServiceError(ctx, w, err, "Failed to reload import")
		return
	}
	writeJSON(ctx, w, http.StatusOK, summary)
}

// Export handles GET /api/export?format=csv|json.
func (h *TransferHandler) Export(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	format := r.URL.Query().Get("format")
	if format == "" {
		format = service.ExportCSV
	}

	var contentType, filename string
	switch format {
	case service.ExportCSV:
		contentType, filename = "text/csv", "urls_export.csv"
	case service.ExportJSON:
		contentType, filename = "application/json", "urls_export.json"
	default:
		writeError(w, http.StatusBadRequest, "Unsupported export format")
		return
	}

	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	if err := h.catalog.Export(ctx, w, format); err != nil {
		// Headers may already be sent; log only.
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "export failed", "error", err)
	}
}

// Template handles GET /api/template?format=xlsx|csv&empty=true.
func (h *TransferHandler) Template(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	q := r.URL.Query()

	format := q.Get("format")
	if format == "" {
		format = importer.TemplateXLSX
	}
	empty, _ := strconv.ParseBool(q.Get("empty"))

	var contentType string
	switch format {
	case importer.TemplateXLSX:
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case importer.TemplateCSV:
		contentType = "text/csv"
	default:
		writeError(w, http.StatusBadRequest, "Unsupported template format")
		return
	}

	name := "url_template"
	if empty {
		name = "url_template_empty"
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+name+"."+format+`"`)
	if err := importer.WriteTemplate(w, format, empty); err != nil {
		contextutil.LoggerFromContext(ctx).ErrorContext(ctx, "template failed", "error", err)
	}
}
