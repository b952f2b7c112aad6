package ledger

// Balance aggregates one participant's activity.
type Balance struct {
	Person       string
	Income       int64
	Expense      int64
	TransfersIn  int64
	TransfersOut int64
}

// Net is income plus transfers received minus expenses and transfers sent.
func (b Balance) Net() int64 {
	return b.Income + b.TransfersIn - b.Expense - b.TransfersOut
}

// Balances sums the non-voided transactions per participant. Every
// participant is present in the result, with zeros when it has no activity.
// Amounts attributed to unknown names are ignored.
func Balances(txs []Transaction, participants Participants) map[string]Balance {
	out := make(map[string]Balance, len(participants))
	for _, p := range participants {
		out[p] = Balance{Person: p}
	}

	add := func(person string, fn func(b *Balance)) {
		b, ok := out[person]
		if !ok {
			return
		}

		fn(&b)
		out[person] = b
	}

	for _, t := range txs {
		if t.Voided {
			continue
		}

		switch t.Kind {
		case KindIncome:
			add(t.Person, func(b *Balance) { b.Income += t.AmountBase })
		case KindExpense:
			add(t.Person, func(b *Balance) { b.Expense += t.AmountBase })
		case KindTransfer:
			add(t.DestPerson, func(b *Balance) { b.TransfersIn += t.AmountBase })
			add(t.OriginPerson, func(b *Balance) { b.TransfersOut += t.AmountBase })
		}
	}

	return out
}
