package record

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/duo/internal/http/httpx"
	"github.com/MrJamesThe3rd/duo/internal/ledger"
	"github.com/MrJamesThe3rd/duo/internal/record"
)

type Handler struct {
	svc *record.Service
	now func() time.Time
}

func NewHandler(svc *record.Service) *Handler {
	return &Handler{svc: svc, now: time.Now}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Post("/{id}/void", h.void)
}

type createRecordRequest struct {
	Kind          ledger.Kind     `json:"kind"`
	Detail        string          `json:"detail"`
	Category      string          `json:"category"`
	Date          string          `json:"date"`
	Person        string          `json:"person"`
	OriginPerson  string          `json:"origin_person"`
	DestPerson    string          `json:"dest_person"`
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	PaymentMethod string          `json:"payment_method"`
	IsShared      bool            `json:"is_shared"`
	ShareA        int             `json:"share_a"`
	ShareB        int             `json:"share_b"`
	Actor         string          `json:"actor"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	actor := httpx.Actor(r, req.Actor)

	date := h.now().In(h.svc.Location())
	if req.Date != "" {
		d, err := httpx.ParseDate(req.Date, h.svc.Location())
		if err != nil {
			httpx.Error(w, err)
			return
		}

		date = d
	}

	// The acting participant pays unless told otherwise.
	person := req.Person
	if person == "" && req.Kind != ledger.KindTransfer {
		person = actor
	}

	currency := req.Currency
	if currency == "" {
		currency = h.svc.BaseCurrency()
	}

	tx, err := h.svc.Create(r.Context(), record.CreateParams{
		Kind:          req.Kind,
		Detail:        req.Detail,
		Category:      req.Category,
		Date:          date,
		Person:        person,
		OriginPerson:  req.OriginPerson,
		DestPerson:    req.DestPerson,
		Amount:        req.Amount,
		Currency:      currency,
		PaymentMethod: req.PaymentMethod,
		IsShared:      req.IsShared,
		ShareA:        req.ShareA,
		ShareB:        req.ShareB,
		Actor:         actor,
	})
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusCreated, toResponse(tx))
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	filter, err := httpx.Filter(r, h.svc.Location())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	snap, err := h.svc.Refresh(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponseList(record.History(record.Apply(snap.Transactions, filter))))
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	snap, err := h.svc.Refresh(r.Context())
	if err != nil {
		httpx.Error(w, err)
		return
	}

	tx, ok := snap.Find(chi.URLParam(r, "id"))
	if !ok {
		http.Error(w, "record not found", http.StatusNotFound)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(&tx))
}

type updateRecordRequest struct {
	Kind          *ledger.Kind     `json:"kind,omitempty"`
	Detail        *string          `json:"detail,omitempty"`
	Category      *string          `json:"category,omitempty"`
	Date          *string          `json:"date,omitempty"`
	Person        *string          `json:"person,omitempty"`
	OriginPerson  *string          `json:"origin_person,omitempty"`
	DestPerson    *string          `json:"dest_person,omitempty"`
	Amount        *decimal.Decimal `json:"amount,omitempty"`
	Currency      *string          `json:"currency,omitempty"`
	PaymentMethod *string          `json:"payment_method,omitempty"`
	IsShared      *bool            `json:"is_shared,omitempty"`
	ShareA        *int             `json:"share_a,omitempty"`
	ShareB        *int             `json:"share_b,omitempty"`
	Editor        string           `json:"editor"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	var req updateRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	params := record.EditParams{
		Kind:          req.Kind,
		Detail:        req.Detail,
		Category:      req.Category,
		Person:        req.Person,
		OriginPerson:  req.OriginPerson,
		DestPerson:    req.DestPerson,
		Amount:        req.Amount,
		Currency:      req.Currency,
		PaymentMethod: req.PaymentMethod,
		IsShared:      req.IsShared,
		ShareA:        req.ShareA,
		ShareB:        req.ShareB,
		Editor:        httpx.Actor(r, req.Editor),
	}

	if req.Date != nil {
		d, err := httpx.ParseDate(*req.Date, h.svc.Location())
		if err != nil {
			httpx.Error(w, err)
			return
		}

		params.Date = &d
	}

	tx, err := h.svc.Edit(r.Context(), chi.URLParam(r, "id"), params)
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(tx))
}

type voidRecordRequest struct {
	Editor string `json:"editor"`
}

func (h *Handler) void(w http.ResponseWriter, r *http.Request) {
	var req voidRecordRequest
	if r.ContentLength != 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
	}

	tx, err := h.svc.Void(r.Context(), chi.URLParam(r, "id"), httpx.Actor(r, req.Editor))
	if err != nil {
		httpx.Error(w, err)
		return
	}

	httpx.JSON(w, http.StatusOK, toResponse(tx))
}

type migrateResponse struct {
	Added []string `json:"added"`
}

// Migrate appends the missing canonical headers to the row source.
func (h *Handler) Migrate(w http.ResponseWriter, r *http.Request) {
	added, err := h.svc.Migrate(r.Context())
	if err != nil {
		httpx.Error(w, fmt.Errorf("migrating headers: %w", err))
		return
	}

	if added == nil {
		added = []string{}
	}

	httpx.JSON(w, http.StatusOK, migrateResponse{Added: added})
}
