package report

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/duo/internal/http/httpx"
	"github.com/MrJamesThe3rd/duo/internal/report"
)

type Handler struct {
	svc *report.Service
	loc *time.Location
}

func NewHandler(svc *report.Service, loc *time.Location) *Handler {
	return &Handler{svc: svc, loc: loc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/summary", h.summary)
	r.Get("/stats", h.stats)
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request) {
	s, err := h.svc.Summary(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toSummaryResponse(s))
}

func (h *Handler) stats(w http.ResponseWriter, r *http.Request) {
	filter, err := httpx.Filter(r, h.loc)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	s, err := h.svc.Stats(r.Context(), filter)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toStatsResponse(s))
}
