package importcsv

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/duo/internal/http/httpx"
	"github.com/MrJamesThe3rd/duo/internal/importer"
	"github.com/MrJamesThe3rd/duo/internal/record"
)

const maxUpload = 10 << 20

type Handler struct {
	importSvc *importer.Service
}

func NewHandler(importSvc *importer.Service) *Handler {
	return &Handler{importSvc: importSvc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.importCSV)
	r.Post("/preview", h.preview)
}

type rejectionResponse struct {
	Line  int    `json:"line"`
	Error string `json:"error"`
}

type importResponse struct {
	Imported int                 `json:"imported"`
	Skipped  int                 `json:"skipped"`
	Rejected []rejectionResponse `json:"rejected"`
}

type previewResponse struct {
	Profile string              `json:"profile"`
	Charset string              `json:"charset"`
	Rows    []map[string]string `json:"rows"`
}

func (h *Handler) importCSV(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	result, err := h.importSvc.Import(r.Context(), format(r), file, httpx.Actor(r, r.FormValue("actor")))
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toImportResponse(result))
}

func (h *Handler) preview(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUpload); err != nil {
		http.Error(w, "failed to parse form: "+err.Error(), http.StatusBadRequest)
		return
	}

	file, _, err := r.FormFile("file")
	if err != nil {
		http.Error(w, "file field is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	parsed, err := h.importSvc.Parse(format(r), file)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	rows := make([]map[string]string, len(parsed.Rows))
	for i, row := range parsed.Rows {
		rows[i] = row
	}

	httpx.JSON(w, http.StatusOK, previewResponse{
		Profile: string(parsed.Profile),
		Charset: string(parsed.Charset),
		Rows:    rows,
	})
}

func format(r *http.Request) importer.Format {
	if f := r.FormValue("format"); f != "" {
		return importer.Format(f)
	}

	return importer.FormatAuto
}

func toImportResponse(res *record.ImportResult) importResponse {
	resp := importResponse{
		Imported: res.Imported,
		Skipped:  res.Skipped,
		Rejected: make([]rejectionResponse, 0, len(res.Rejected)),
	}

	for _, rej := range res.Rejected {
		resp.Rejected = append(resp.Rejected, rejectionResponse{Line: rej.Line, Error: rej.Err.Error()})
	}

	return resp
}
