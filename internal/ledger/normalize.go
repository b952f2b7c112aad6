package ledger

import (
	"strings"
	"time"
)

// Normalizer turns raw rows into typed transactions. It never fails: a value
// that cannot be read is replaced by its zero default and reported in Issues.
type Normalizer struct {
	Participants Participants
	Location     *time.Location
	BaseCurrency string

	// Issues collects the values replaced during the last Normalize call.
	Issues []*FieldError
}

// Normalize converts rows in order. columns is the header row of the source;
// a column absent from it, or from a row, reads as empty. Every row produces
// exactly one transaction.
func (n *Normalizer) Normalize(rows []Row, columns []string) []Transaction {
	n.Issues = nil

	declared := columnSet(columns)

	txs := make([]Transaction, 0, len(rows))
	for i, row := range rows {
		txs = append(txs, n.normalizeRow(i, n.canonicalRow(row, declared)))
	}

	return txs
}

// NormalizeRow converts a single row without restricting its columns.
func (n *Normalizer) NormalizeRow(index int, row Row) Transaction {
	return n.normalizeRow(index, n.canonicalRow(row, nil))
}

func (n *Normalizer) normalizeRow(index int, row Row) Transaction {
	text := func(col string) string { return strings.TrimSpace(row.Get(col)) }

	t := Transaction{
		ID:            text(ColID),
		Kind:          parseKind(text(ColKind)),
		Detail:        text(ColDetail),
		Category:      text(ColCategory),
		Person:        text(ColPerson),
		OriginPerson:  text(ColOriginPerson),
		DestPerson:    text(ColDestPerson),
		Currency:      strings.ToUpper(text(ColCurrency)),
		PaymentMethod: text(ColPaymentMethod),
		IsShared:      ParseFlag(row.Get(ColIsShared)),
		Voided:        ParseFlag(row.Get(ColVoided)),
		CreatedAt:     text(ColCreatedAt),
		CreatedBy:     text(ColCreatedBy),
		ModifiedAt:    text(ColModifiedAt),
		ModifiedBy:    text(ColModifiedBy),
		RowIndex:      index,
	}

	if raw := text(ColDate); raw != "" {
		if d, ok := ParseDate(raw, n.Location); ok {
			t.Date = &d
		} else {
			n.issue(index, ColDate, raw)
		}
	}

	if raw := text(ColAmountBase); raw != "" {
		amount, ok := ParseAmount(raw)
		if !ok {
			n.issue(index, ColAmountBase, raw)
		}

		t.AmountBase = amount
	}

	if raw := text(ColAmountOriginal); raw != "" {
		if d, ok := ParseDecimal(raw); ok {
			t.AmountOriginal = d
		} else {
			n.issue(index, ColAmountOriginal, raw)
		}
	}

	if t.Currency == "" {
		t.Currency = n.BaseCurrency
	}

	if t.AmountOriginal.IsZero() && t.Currency == n.BaseCurrency {
		t.AmountOriginal = decimalFromInt(t.AmountBase)
	}

	if t.IsShared {
		a := n.share(index, ColShareA, row.Get(ColShareA))
		b := n.share(index, ColShareB, row.Get(ColShareB))
		t.ShareA, t.ShareB = ResolveShares(a, b)
	}

	return t
}

func (n *Normalizer) share(index int, col, raw string) int {
	v, ok := ParseShare(raw)
	if !ok {
		n.issue(index, col, raw)
	}

	return v
}

func (n *Normalizer) issue(row int, field, raw string) {
	n.Issues = append(n.Issues, &FieldError{Row: row, Field: field, Raw: raw})
}

func parseKind(raw string) Kind {
	k := Kind(strings.ToLower(raw))
	if k.Valid() {
		return k
	}

	if alias, ok := kindAliases[strings.ToLower(raw)]; ok {
		return alias
	}

	return k
}

func columnSet(columns []string) map[string]struct{} {
	if columns == nil {
		return nil
	}

	set := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		set[strings.TrimSpace(c)] = struct{}{}
	}

	return set
}

// canonicalRow keeps the declared columns of row and maps legacy header
// names onto canonical ones. A nil declared set keeps every column.
func (n *Normalizer) canonicalRow(row Row, declared map[string]struct{}) Row {
	out := make(Row, len(row))

	for col, v := range row {
		col = strings.TrimSpace(col)
		if declared != nil {
			if _, ok := declared[col]; !ok {
				continue
			}
		}

		if canonical, ok := LegacyColumn(col, n.Participants); ok {
			if _, exists := out[canonical]; !exists {
				out[canonical] = v
			}

			continue
		}

		out[col] = v
	}

	return out
}
