package export

import (
	"bytes"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/duo/internal/http/httpx"
	"github.com/MrJamesThe3rd/duo/internal/report"
)

type Handler struct {
	svc      *report.Service
	uploader report.Uploader
	loc      *time.Location
	now      func() time.Time
}

// NewHandler serves CSV exports. Archiving is disabled when uploader is nil.
func NewHandler(svc *report.Service, uploader report.Uploader, loc *time.Location) *Handler {
	return &Handler{svc: svc, uploader: uploader, loc: loc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/export.csv", h.download)
	r.Post("/export/archive", h.archive)
}

func (h *Handler) download(w http.ResponseWriter, r *http.Request) {
	filter, err := httpx.Filter(r, h.loc)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	var buf bytes.Buffer

	n, err := h.svc.Export(r.Context(), filter, &buf)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf("attachment; filename=%q", report.ExportFilename(h.now().In(h.loc))))

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error("failed to write export", "error", err, "records", n)
	}
}

type archiveResponse struct {
	Object string `json:"object"`
}

func (h *Handler) archive(w http.ResponseWriter, r *http.Request) {
	if h.uploader == nil {
		http.Error(w, "archive is not configured", http.StatusNotImplemented)
		return
	}

	filter, err := httpx.Filter(r, h.loc)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	name, err := h.svc.Archive(r.Context(), filter, h.uploader)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, archiveResponse{Object: name})
}
