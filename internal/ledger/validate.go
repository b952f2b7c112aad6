package ledger

import (
	"time"
	"unicode/utf8"
)

const (
	minDetailLen         = 3
	minTransferDetailLen = 5
)

// Validate checks a record before it is written. now is the current time in
// the ledger's timezone; dates after its calendar day are rejected.
func Validate(t Transaction, participants Participants, now time.Time) error {
	var errs ValidationErrors

	reject := func(field, reason string) {
		errs = append(errs, &ValidationError{Field: field, Reason: reason})
	}

	if t.ID == "" {
		reject(ColID, "missing")
	}

	if t.AmountBase <= 0 {
		reject(ColAmountBase, "must be greater than zero")
	}

	if t.Date == nil {
		reject(ColDate, "missing")
	} else if afterDay(*t.Date, now) {
		reject(ColDate, "is in the future")
	}

	switch t.Kind {
	case KindTransfer:
		if utf8.RuneCountInString(t.Detail) < minTransferDetailLen {
			reject(ColDetail, "too short")
		}

		if !participants.Contains(t.OriginPerson) {
			reject(ColOriginPerson, "unknown participant")
		}

		if !participants.Contains(t.DestPerson) {
			reject(ColDestPerson, "unknown participant")
		}

		if t.OriginPerson == t.DestPerson {
			reject(ColDestPerson, "must differ from origin")
		}

		if t.Person != "" || t.IsShared {
			reject(ColPerson, "not allowed on transfers")
		}
	case KindIncome, KindExpense:
		if utf8.RuneCountInString(t.Detail) < minDetailLen {
			reject(ColDetail, "too short")
		}

		if !participants.Contains(t.Person) {
			reject(ColPerson, "unknown participant")
		}

		if t.Category == "" {
			reject(ColCategory, "required")
		}

		if t.PaymentMethod == "" {
			reject(ColPaymentMethod, "required")
		}

		if t.OriginPerson != "" || t.DestPerson != "" {
			reject(ColOriginPerson, "only allowed on transfers")
		}

		if t.IsShared && t.Kind != KindExpense {
			reject(ColIsShared, "only expenses can be shared")
		}
	default:
		reject(ColKind, "unknown kind")
	}

	if t.IsShared && t.ShareA+t.ShareB != 100 {
		reject(ColShareA, "shares must add up to 100")
	}

	if len(errs) == 0 {
		return nil
	}

	return errs
}

func afterDay(d, now time.Time) bool {
	dy, dm, dd := d.Date()
	ny, nm, nd := now.In(d.Location()).Date()

	return time.Date(dy, dm, dd, 0, 0, 0, 0, time.UTC).After(time.Date(ny, nm, nd, 0, 0, 0, 0, time.UTC))
}
