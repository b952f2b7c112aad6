package record

import (
	"time"

	"github.com/MrJamesThe3rd/duo/internal/ledger"
)

type recordResponse struct {
	ID             string      `json:"id"`
	Kind           ledger.Kind `json:"kind"`
	Detail         string      `json:"detail"`
	Category       string      `json:"category,omitempty"`
	Date           *string     `json:"date,omitempty"`
	Person         string      `json:"person,omitempty"`
	OriginPerson   string      `json:"origin_person,omitempty"`
	DestPerson     string      `json:"dest_person,omitempty"`
	AmountBase     int64       `json:"amount_base"`
	AmountOriginal string      `json:"amount_original"`
	Currency       string      `json:"currency"`
	PaymentMethod  string      `json:"payment_method,omitempty"`
	IsShared       bool        `json:"is_shared"`
	ShareA         int         `json:"share_a"`
	ShareB         int         `json:"share_b"`
	Voided         bool        `json:"voided"`
	CreatedAt      string      `json:"created_at,omitempty"`
	CreatedBy      string      `json:"created_by,omitempty"`
	ModifiedAt     string      `json:"modified_at,omitempty"`
	ModifiedBy     string      `json:"modified_by,omitempty"`
}

func toResponse(tx *ledger.Transaction) recordResponse {
	resp := recordResponse{
		ID:             tx.ID,
		Kind:           tx.Kind,
		Detail:         tx.Detail,
		Category:       tx.Category,
		Person:         tx.Person,
		OriginPerson:   tx.OriginPerson,
		DestPerson:     tx.DestPerson,
		AmountBase:     tx.AmountBase,
		AmountOriginal: tx.AmountOriginal.String(),
		Currency:       tx.Currency,
		PaymentMethod:  tx.PaymentMethod,
		IsShared:       tx.IsShared,
		ShareA:         tx.ShareA,
		ShareB:         tx.ShareB,
		Voided:         tx.Voided,
		CreatedAt:      tx.CreatedAt,
		CreatedBy:      tx.CreatedBy,
		ModifiedAt:     tx.ModifiedAt,
		ModifiedBy:     tx.ModifiedBy,
	}

	if tx.Date != nil {
		resp.Date = new(tx.Date.Format(time.DateOnly))
	}

	return resp
}

func toResponseList(txs []ledger.Transaction) []recordResponse {
	resp := make([]recordResponse, len(txs))
	for i := range txs {
		resp[i] = toResponse(&txs[i])
	}

	return resp
}
