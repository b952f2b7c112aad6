package ledger

import (
	"strconv"
	"time"
)

// Row is a raw record as stored in the tabular source, keyed by column name.
type Row map[string]string

// Get returns the raw value of a column, or "" when absent.
func (r Row) Get(col string) string {
	if r == nil {
		return ""
	}

	return r[col]
}

// Column names of the stored table, in header order.
const (
	ColID             = "id"
	ColKind           = "kind"
	ColDetail         = "detail"
	ColCategory       = "category"
	ColDate           = "date"
	ColPerson         = "person"
	ColOriginPerson   = "origin_person"
	ColDestPerson     = "dest_person"
	ColAmountBase     = "amount_base"
	ColAmountOriginal = "amount_original"
	ColCurrency       = "currency"
	ColPaymentMethod  = "payment_method"
	ColIsShared       = "is_shared"
	ColShareA         = "share_a"
	ColShareB         = "share_b"
	ColVoided         = "voided"
	ColCreatedAt      = "created_at"
	ColCreatedBy      = "created_by"
	ColModifiedAt     = "modified_at"
	ColModifiedBy     = "modified_by"
)

// Columns is the expected header row.
var Columns = []string{
	ColID, ColKind, ColDetail, ColCategory, ColDate,
	ColPerson, ColOriginPerson, ColDestPerson,
	ColAmountBase, ColAmountOriginal, ColCurrency, ColPaymentMethod,
	ColIsShared, ColShareA, ColShareB, ColVoided,
	ColCreatedAt, ColCreatedBy, ColModifiedAt, ColModifiedBy,
}

// TimestampLayout is used for the provenance columns.
const TimestampLayout = "2006-01-02 15:04:05"

// MergeHeaders appends every expected header missing from existing, keeping
// the existing ones untouched and in place. It returns the merged header row
// and the headers that were added. Merging an already complete header row
// returns it unchanged with no additions.
func MergeHeaders(existing, expected []string) ([]string, []string) {
	present := make(map[string]struct{}, len(existing))
	for _, h := range existing {
		present[h] = struct{}{}
	}

	merged := append([]string(nil), existing...)

	var added []string

	for _, h := range expected {
		if _, ok := present[h]; ok {
			continue
		}

		present[h] = struct{}{}
		merged = append(merged, h)
		added = append(added, h)
	}

	return merged, added
}

// ToRow renders a transaction in its stored form.
func ToRow(t Transaction) Row {
	row := Row{
		ColID:            t.ID,
		ColKind:          string(t.Kind),
		ColDetail:        t.Detail,
		ColCategory:      t.Category,
		ColDate:          "",
		ColPerson:        t.Person,
		ColOriginPerson:  t.OriginPerson,
		ColDestPerson:    t.DestPerson,
		ColAmountBase:    strconv.FormatInt(t.AmountBase, 10),
		ColCurrency:      t.Currency,
		ColPaymentMethod: t.PaymentMethod,
		ColIsShared:      formatFlag(t.IsShared),
		ColShareA:        "",
		ColShareB:        "",
		ColVoided:        formatFlag(t.Voided),
		ColCreatedAt:     t.CreatedAt,
		ColCreatedBy:     t.CreatedBy,
		ColModifiedAt:    t.ModifiedAt,
		ColModifiedBy:    t.ModifiedBy,
	}

	if t.Date != nil {
		row[ColDate] = t.Date.Format(time.DateOnly)
	}

	if !t.AmountOriginal.IsZero() {
		row[ColAmountOriginal] = t.AmountOriginal.String()
	}

	if t.IsShared {
		row[ColShareA] = strconv.Itoa(t.ShareA)
		row[ColShareB] = strconv.Itoa(t.ShareB)
	}

	return row
}

// Values lays the row out in header order.
func (r Row) Values(headers []string) []string {
	out := make([]string, len(headers))
	for i, h := range headers {
		out[i] = r.Get(h)
	}

	return out
}

// RowFromValues zips a header row with a value row. Missing trailing values
// read as "".
func RowFromValues(headers, values []string) Row {
	row := make(Row, len(headers))
	for i, h := range headers {
		if h == "" {
			continue
		}

		if i < len(values) {
			row[h] = values[i]
		} else {
			row[h] = ""
		}
	}

	return row
}

func formatFlag(b bool) string {
	if b {
		return "TRUE"
	}

	return "FALSE"
}
