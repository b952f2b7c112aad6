package importer_test

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	enc "github.com/MrJamesThe3rd/duo/internal/encoding"
	"github.com/MrJamesThe3rd/duo/internal/importer"
	"github.com/MrJamesThe3rd/duo/internal/ledger"
	"github.com/MrJamesThe3rd/duo/internal/record"
	"github.com/MrJamesThe3rd/duo/internal/record/memstore"
)

var people = ledger.Participants{"Javiera", "Francis"}

const legacyCSV = `Finanzas hogar;;;

ID;Tipo;Detalle;Categoría;Fecha;Persona;Persona_Origen;Persona_Destino;Monto;Medio;Compartido;Proporcion_Javiera;Proporcion_Francis;Anulado
a1;Gasto;Supermercado;Comida;2024-05-02;Javiera;;;$45.990;Débito;TRUE;60;40;
a2;Traspaso;Pago deuda;;2024-05-10;;Francis;Javiera;20.000;;;;;
;;;;;;;;;;;;;
`

func TestParser_Legacy(t *testing.T) {
	res, err := importer.NewParser(people).Parse(strings.NewReader(legacyCSV))
	require.NoError(t, err)

	assert.Equal(t, importer.FormatLegacy, res.Profile)
	assert.Equal(t, enc.UTF8, res.Charset)
	require.Len(t, res.Rows, 2)

	first := res.Rows[0]
	assert.Equal(t, "a1", first[ledger.ColID])
	assert.Equal(t, "Gasto", first[ledger.ColKind])
	assert.Equal(t, "Comida", first[ledger.ColCategory])
	assert.Equal(t, "$45.990", first[ledger.ColAmountBase])
	assert.Equal(t, "60", first[ledger.ColShareA])
	assert.Equal(t, "40", first[ledger.ColShareB])
	assert.NotContains(t, first, "Tipo")

	assert.Equal(t, "Francis", res.Rows[1][ledger.ColOriginPerson])
}

func TestParser_CanonicalCommaDelimited(t *testing.T) {
	csv := "id,kind,detail,category,date,person,amount_base,payment_method,extra\n" +
		"b1,income,Sueldo mayo,Trabajo,31/05/2024,Francis,\"1.250.000\",Transferencia,ignored\n"

	res, err := importer.NewParser(people).Parse(strings.NewReader(csv))
	require.NoError(t, err)

	assert.Equal(t, importer.FormatCanonical, res.Profile)
	require.Len(t, res.Rows, 1)
	assert.Equal(t, "1.250.000", res.Rows[0][ledger.ColAmountBase])
	assert.NotContains(t, res.Rows[0], "extra")
}

func TestParser_Windows1252(t *testing.T) {
	encoded, err := charmap.Windows1252.NewEncoder().String(legacyCSV)
	require.NoError(t, err)

	res, err := importer.NewParser(people).Parse(bytes.NewReader([]byte(encoded)))
	require.NoError(t, err)

	require.Len(t, res.Rows, 2)
	assert.Equal(t, "Comida", res.Rows[0][ledger.ColCategory])
	assert.Equal(t, "Débito", res.Rows[0][ledger.ColPaymentMethod])
}

func TestParser_Errors(t *testing.T) {
	type args struct {
		format importer.Format
		input  string
	}

	type testCase struct {
		name string
		args args
	}

	tests := []testCase{
		{name: "NoHeader", args: args{format: importer.FormatAuto, input: "foo;bar\n1;2\n"}},
		{name: "ForcedProfileMismatch", args: args{format: importer.FormatCanonical, input: legacyCSV}},
		{name: "UnknownFormat", args: args{format: "bank", input: legacyCSV}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := importer.NewParser(people).ParseAs(tt.args.format, strings.NewReader(tt.args.input))
			assert.Error(t, err)
		})
	}
}

func TestService_Import(t *testing.T) {
	records := record.NewService(memstore.New(nil), record.Options{
		Participants: people,
		BaseCurrency: "CLP",
		Now:          func() time.Time { return time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC) },
	})

	svc := importer.NewService(records)

	result, err := svc.Import(context.Background(), importer.FormatAuto, strings.NewReader(legacyCSV), "Francis")
	require.NoError(t, err)
	assert.Equal(t, 2, result.Imported)

	again, err := svc.Import(context.Background(), importer.FormatLegacy, strings.NewReader(legacyCSV), "Francis")
	require.NoError(t, err)
	assert.Equal(t, 0, again.Imported)
	assert.Equal(t, 2, again.Skipped)

	snap, err := records.Refresh(context.Background())
	require.NoError(t, err)
	require.Len(t, snap.Transactions, 2)

	expense := snap.Transactions[0]
	assert.Equal(t, ledger.KindExpense, expense.Kind)
	assert.Equal(t, int64(45990), expense.AmountBase)
	assert.Equal(t, 60, expense.ShareA)

	settlement := ledger.Settle(snap.Active(), people)
	assert.Equal(t, int64(45990), settlement.TotalShared)
}
