package ledger

import (
	"strings"

	"github.com/shopspring/decimal"
)

// legacyColumns maps the headers of the spreadsheet the ledger started in
// onto the canonical columns.
var legacyColumns = map[string]string{
	"ID":               ColID,
	"Tipo":             ColKind,
	"Detalle":          ColDetail,
	"Categoría":        ColCategory,
	"Categoria":        ColCategory,
	"Fecha":            ColDate,
	"Persona":          ColPerson,
	"Persona_Origen":   ColOriginPerson,
	"Persona_Destino":  ColDestPerson,
	"Monto":            ColAmountBase,
	"Moneda":           ColCurrency,
	"Monto_Original":   ColAmountOriginal,
	"Medio":            ColPaymentMethod,
	"Compartido":       ColIsShared,
	"Created_At":       ColCreatedAt,
	"Created_By":       ColCreatedBy,
	"Last_Modified_At": ColModifiedAt,
	"Last_Modified_By": ColModifiedBy,
	"Anulado":          ColVoided,
}

const legacySharePrefix = "Proporcion_"

var kindAliases = map[string]Kind{
	"ingreso":  KindIncome,
	"gasto":    KindExpense,
	"traspaso": KindTransfer,
}

// LegacyColumn maps a legacy header onto its canonical column. Share columns
// carry the participant name ("Proporcion_<name>").
func LegacyColumn(col string, participants Participants) (string, bool) {
	if c, ok := legacyColumns[col]; ok {
		return c, true
	}

	name, ok := strings.CutPrefix(col, legacySharePrefix)
	if !ok {
		return "", false
	}

	switch {
	case name != "" && name == participants.A():
		return ColShareA, true
	case name != "" && name == participants.B():
		return ColShareB, true
	}

	return "", false
}

func decimalFromInt(n int64) decimal.Decimal {
	return decimal.NewFromInt(n)
}
