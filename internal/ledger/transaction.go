package ledger

import (
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Kind represents the type of a ledger record.
type Kind string

const (
	KindIncome   Kind = "income"
	KindExpense  Kind = "expense"
	KindTransfer Kind = "transfer"
)

// Valid reports whether k is one of the known kinds.
func (k Kind) Valid() bool {
	switch k {
	case KindIncome, KindExpense, KindTransfer:
		return true
	}

	return false
}

// Transaction is one normalized row of financial activity.
type Transaction struct {
	ID       string
	Kind     Kind
	Detail   string
	Category string
	Date     *time.Time // nil when the stored date could not be parsed

	Person       string // Income and Expense only
	OriginPerson string // Transfer only
	DestPerson   string // Transfer only

	AmountBase     int64
	AmountOriginal decimal.Decimal
	Currency       string
	PaymentMethod  string

	IsShared bool
	ShareA   int
	ShareB   int
	Voided   bool

	CreatedAt  string
	CreatedBy  string
	ModifiedAt string
	ModifiedBy string

	// RowIndex is the 0-based position of the record among the data rows of
	// the source it was read from. It is not persisted.
	RowIndex int
}

// SharedExpense reports whether the record takes part in settlement.
func (t Transaction) SharedExpense() bool {
	return !t.Voided && t.Kind == KindExpense && t.IsShared
}

// Participants is the ordered list of people sharing the ledger. The first
// entry owns ShareA, the second ShareB.
type Participants []string

// Contains reports whether name is a known participant.
func (p Participants) Contains(name string) bool {
	return slices.Contains(p, name)
}

// A returns the participant owning ShareA.
func (p Participants) A() string {
	if len(p) == 0 {
		return ""
	}

	return p[0]
}

// B returns the participant owning ShareB.
func (p Participants) B() string {
	if len(p) < 2 {
		return ""
	}

	return p[1]
}

// Active filters out voided records.
func Active(txs []Transaction) []Transaction {
	out := make([]Transaction, 0, len(txs))
	for _, t := range txs {
		if t.Voided {
			continue
		}

		out = append(out, t)
	}

	return out
}
