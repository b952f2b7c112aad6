package record

import (
	"cmp"
	"slices"
	"strings"
	"time"

	"github.com/MrJamesThe3rd/duo/internal/ledger"
)

// Filter narrows a list of records. Zero fields match everything.
type Filter struct {
	Person        string
	Kind          ledger.Kind
	PaymentMethod string
	From          *time.Time
	To            *time.Time
	IncludeVoided bool
}

// Match reports whether t passes the filter. A person matches the payer as
// well as either side of a transfer. The date range is inclusive.
func (f Filter) Match(t ledger.Transaction) bool {
	if t.Voided && !f.IncludeVoided {
		return false
	}

	if f.Person != "" && f.Person != t.Person && f.Person != t.OriginPerson && f.Person != t.DestPerson {
		return false
	}

	if f.Kind != "" && f.Kind != t.Kind {
		return false
	}

	if f.PaymentMethod != "" && !strings.EqualFold(f.PaymentMethod, t.PaymentMethod) {
		return false
	}

	if f.From != nil || f.To != nil {
		if t.Date == nil {
			return false
		}

		if f.From != nil && t.Date.Before(*f.From) {
			return false
		}

		if f.To != nil && t.Date.After(*f.To) {
			return false
		}
	}

	return true
}

func Apply(txs []ledger.Transaction, f Filter) []ledger.Transaction {
	out := make([]ledger.Transaction, 0, len(txs))

	for _, t := range txs {
		if f.Match(t) {
			out = append(out, t)
		}
	}

	return out
}

// History orders records by last activity, most recent first. Records never
// modified fall back to their creation time.
func History(txs []ledger.Transaction) []ledger.Transaction {
	out := slices.Clone(txs)

	slices.SortStableFunc(out, func(a, b ledger.Transaction) int {
		return cmp.Or(
			cmp.Compare(lastActivity(b), lastActivity(a)),
			cmp.Compare(b.CreatedAt, a.CreatedAt),
		)
	})

	return out
}

// lastActivity relies on timestamps being written in a sortable layout.
func lastActivity(t ledger.Transaction) string {
	return cmp.Or(t.ModifiedAt, t.CreatedAt)
}
