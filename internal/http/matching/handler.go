package matching

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrJamesThe3rd/duo/internal/http/httpx"
	"github.com/MrJamesThe3rd/duo/internal/matching"
)

type Handler struct {
	svc *matching.Service
}

func NewHandler(svc *matching.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.suggest)
	r.Post("/", h.learn)
}

type suggestResponse struct {
	Detail   string `json:"detail"`
	Category string `json:"category"`
}

func (h *Handler) suggest(w http.ResponseWriter, r *http.Request) {
	detail := r.URL.Query().Get("detail")
	if detail == "" {
		http.Error(w, "detail query parameter is required", http.StatusBadRequest)
		return
	}

	category, err := h.svc.Suggest(r.Context(), detail)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, suggestResponse{Detail: detail, Category: category})
}

type learnRequest struct {
	Pattern  string `json:"pattern"`
	Category string `json:"category"`
}

func (h *Handler) learn(w http.ResponseWriter, r *http.Request) {
	var req learnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.svc.Learn(r.Context(), req.Pattern, req.Category); err != nil {
		if errors.Is(err, matching.ErrEmptyPattern) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		httpx.Error(w, err)

		return
	}

	w.WriteHeader(http.StatusCreated)
}
