package ledger

import (
	"cmp"
	"slices"
)

// Transfer is a proposed payment from a debtor to a creditor.
type Transfer struct {
	From   string
	To     string
	Amount int64
}

// Position is one participant's standing on shared expenses.
type Position struct {
	Person  string
	Owed    int64 // share of shared expenses attributed to the person
	Paid    int64 // shared expenses the person paid for
	Balance int64 // Paid - Owed; positive means the person is owed money
}

// Settlement is the outcome of netting shared expenses.
type Settlement struct {
	TotalShared int64
	Positions   []Position // in participant order
	Transfers   []Transfer
}

// Position returns the standing of person, or a zero Position.
func (s Settlement) Position(person string) Position {
	for _, p := range s.Positions {
		if p.Person == person {
			return p
		}
	}

	return Position{Person: person}
}

// Settle computes who subsidized whom on shared expenses and the transfers
// that even it out. Only the first two participants carry shares; shared
// expenses paid by someone outside participants are skipped.
func Settle(txs []Transaction, participants Participants) Settlement {
	owed := make(map[string]int64, len(participants))
	paid := make(map[string]int64, len(participants))

	var total int64

	for _, t := range txs {
		if !t.SharedExpense() || !participants.Contains(t.Person) {
			continue
		}

		shareA, _ := ResolveShares(t.ShareA, t.ShareB)
		owedA, owedB := SplitOwed(t.AmountBase, shareA)

		owed[participants.A()] += owedA
		owed[participants.B()] += owedB
		paid[t.Person] += t.AmountBase
		total += t.AmountBase
	}

	positions := make([]Position, 0, len(participants))
	balances := make(map[string]int64, len(participants))

	for _, p := range participants {
		pos := Position{Person: p, Owed: owed[p], Paid: paid[p], Balance: paid[p] - owed[p]}
		positions = append(positions, pos)
		balances[p] = pos.Balance
	}

	return Settlement{
		TotalShared: total,
		Positions:   positions,
		Transfers:   NetDebts(balances, participants),
	}
}

type party struct {
	name   string
	amount int64
	order  int
}

// NetDebts proposes the transfers that bring signed balances to zero by
// repeatedly matching the largest remaining debtor with the largest
// remaining creditor. order breaks ties between equal amounts; names
// missing from it sort last, alphabetically.
func NetDebts(balances map[string]int64, order []string) []Transfer {
	rank := make(map[string]int, len(order))
	for i, name := range order {
		rank[name] = i
	}

	var debtors, creditors []party

	for name, b := range balances {
		o, ok := rank[name]
		if !ok {
			o = len(order)
		}

		switch {
		case b < 0:
			debtors = append(debtors, party{name: name, amount: -b, order: o})
		case b > 0:
			creditors = append(creditors, party{name: name, amount: b, order: o})
		}
	}

	byLargest := func(x, y party) int {
		return cmp.Or(
			cmp.Compare(y.amount, x.amount),
			cmp.Compare(x.order, y.order),
			cmp.Compare(x.name, y.name),
		)
	}

	var transfers []Transfer

	for len(debtors) > 0 && len(creditors) > 0 {
		slices.SortFunc(debtors, byLargest)
		slices.SortFunc(creditors, byLargest)

		d, c := &debtors[0], &creditors[0]
		amount := min(d.amount, c.amount)

		transfers = append(transfers, Transfer{From: d.name, To: c.name, Amount: amount})

		d.amount -= amount
		c.amount -= amount

		if d.amount == 0 {
			debtors = debtors[1:]
		}

		if c.amount == 0 {
			creditors = creditors[1:]
		}
	}

	return transfers
}
