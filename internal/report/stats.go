package report

import (
	"cmp"
	"slices"
	"time"

	"github.com/MrJamesThe3rd/duo/internal/ledger"
)

const topCategories = 10

// Dashboard holds the headline figures of the active records.
type Dashboard struct {
	NetBalance int64
	Income     int64
	Expense    int64
	Transfers  int
}

// Total is a labelled sum.
type Total struct {
	Label  string
	Amount int64
}

// Month holds the totals of one YYYY-MM period per kind.
type Month struct {
	Period    string
	Income    int64
	Expense   int64
	Transfers int64
}

type Stats struct {
	TopCategories   []Total
	ByPaymentMethod []Total
	Monthly         []Month
	SharedExpense   int64
	PersonalExpense int64
}

// NewDashboard ignores voided records. The net balance is the sum of every
// participant's balance.
func NewDashboard(txs []ledger.Transaction, participants ledger.Participants) Dashboard {
	var d Dashboard

	for _, b := range ledger.Balances(txs, participants) {
		d.NetBalance += b.Net()
	}

	for _, t := range ledger.Active(txs) {
		switch t.Kind {
		case ledger.KindIncome:
			d.Income += t.AmountBase
		case ledger.KindExpense:
			d.Expense += t.AmountBase
		case ledger.KindTransfer:
			d.Transfers++
		}
	}

	return d
}

// NewStats ignores voided records. Records without a date are left out of
// the monthly series only.
func NewStats(txs []ledger.Transaction) Stats {
	var (
		s          Stats
		categories = map[string]int64{}
		methods    = map[string]int64{}
		months     = map[string]*Month{}
	)

	for _, t := range ledger.Active(txs) {
		if t.Date != nil {
			period := t.Date.Format("2006-01")

			m, ok := months[period]
			if !ok {
				m = &Month{Period: period}
				months[period] = m
			}

			switch t.Kind {
			case ledger.KindIncome:
				m.Income += t.AmountBase
			case ledger.KindExpense:
				m.Expense += t.AmountBase
			case ledger.KindTransfer:
				m.Transfers += t.AmountBase
			}
		}

		if t.Kind != ledger.KindExpense {
			continue
		}

		categories[t.Category] += t.AmountBase
		methods[t.PaymentMethod] += t.AmountBase

		if t.IsShared {
			s.SharedExpense += t.AmountBase
		} else {
			s.PersonalExpense += t.AmountBase
		}
	}

	s.TopCategories = ranked(categories)
	if len(s.TopCategories) > topCategories {
		s.TopCategories = s.TopCategories[:topCategories]
	}

	s.ByPaymentMethod = ranked(methods)

	for _, m := range months {
		s.Monthly = append(s.Monthly, *m)
	}

	slices.SortFunc(s.Monthly, func(a, b Month) int { return cmp.Compare(a.Period, b.Period) })

	return s
}

// ranked sorts totals by amount descending, then label.
func ranked(sums map[string]int64) []Total {
	out := make([]Total, 0, len(sums))
	for label, amount := range sums {
		out = append(out, Total{Label: label, Amount: amount})
	}

	slices.SortFunc(out, func(a, b Total) int {
		return cmp.Or(cmp.Compare(b.Amount, a.Amount), cmp.Compare(a.Label, b.Label))
	})

	return out
}

// Summary is everything a reader needs about the ledger at a point in time.
type Summary struct {
	GeneratedAt  time.Time
	Participants ledger.Participants
	Balances     map[string]ledger.Balance
	Settlement   ledger.Settlement
	Dashboard    Dashboard
	Stats        Stats
	Issues       int
}

func NewSummary(txs []ledger.Transaction, participants ledger.Participants, at time.Time) *Summary {
	return &Summary{
		GeneratedAt:  at,
		Participants: participants,
		Balances:     ledger.Balances(txs, participants),
		Settlement:   ledger.Settle(txs, participants),
		Dashboard:    NewDashboard(txs, participants),
		Stats:        NewStats(txs),
	}
}
