package report_test

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/duo/internal/ledger"
	"github.com/MrJamesThe3rd/duo/internal/record"
	"github.com/MrJamesThe3rd/duo/internal/record/memstore"
	"github.com/MrJamesThe3rd/duo/internal/report"
)

var people = ledger.Participants{"Ana", "Beto"}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func sample() []ledger.Transaction {
	return []ledger.Transaction{
		{ID: "1", Kind: ledger.KindIncome, Person: "Ana", AmountBase: 500000, Date: date(2024, 5, 1), CreatedAt: "2024-05-01 08:00:00"},
		{ID: "2", Kind: ledger.KindExpense, Person: "Ana", Category: "Hogar", PaymentMethod: "Transferencia", AmountBase: 300000, IsShared: true, ShareA: 50, ShareB: 50, Date: date(2024, 5, 3), CreatedAt: "2024-05-03 08:00:00"},
		{ID: "3", Kind: ledger.KindExpense, Person: "Beto", Category: "Comida", PaymentMethod: "Efectivo", AmountBase: 20000, Date: date(2024, 6, 2), CreatedAt: "2024-06-02 08:00:00"},
		{ID: "4", Kind: ledger.KindTransfer, OriginPerson: "Beto", DestPerson: "Ana", AmountBase: 100000, Date: date(2024, 6, 5), CreatedAt: "2024-06-05 08:00:00"},
		{ID: "5", Kind: ledger.KindExpense, Person: "Beto", Category: "Hogar", PaymentMethod: "Efectivo", AmountBase: 99999, Voided: true, Date: date(2024, 6, 6), CreatedAt: "2024-06-06 08:00:00"},
	}
}

func TestNewDashboard(t *testing.T) {
	d := report.NewDashboard(sample(), people)

	assert.Equal(t, report.Dashboard{
		NetBalance: 500000 - 300000 - 20000,
		Income:     500000,
		Expense:    320000,
		Transfers:  1,
	}, d)
}

func TestNewStats(t *testing.T) {
	s := report.NewStats(sample())

	assert.Equal(t, []report.Total{{Label: "Hogar", Amount: 300000}, {Label: "Comida", Amount: 20000}}, s.TopCategories)
	assert.Equal(t, []report.Total{{Label: "Transferencia", Amount: 300000}, {Label: "Efectivo", Amount: 20000}}, s.ByPaymentMethod)
	assert.Equal(t, []report.Month{
		{Period: "2024-05", Income: 500000, Expense: 300000},
		{Period: "2024-06", Expense: 20000, Transfers: 100000},
	}, s.Monthly)
	assert.Equal(t, int64(300000), s.SharedExpense)
	assert.Equal(t, int64(20000), s.PersonalExpense)
}

func TestNewStats_TopCategoriesCapped(t *testing.T) {
	var txs []ledger.Transaction
	for i := range 12 {
		txs = append(txs, ledger.Transaction{
			Kind:       ledger.KindExpense,
			Category:   string(rune('a' + i)),
			AmountBase: int64(100 + i),
		})
	}

	s := report.NewStats(txs)

	require.Len(t, s.TopCategories, 10)
	assert.Equal(t, "l", s.TopCategories[0].Label)
}

func TestMarkdown(t *testing.T) {
	s := report.NewSummary(sample(), people, time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC))
	md := report.Markdown(s)

	assert.Contains(t, md, "# Ledger summary")
	assert.Contains(t, md, "**Beto** pays **Ana**")
	assert.Contains(t, md, ledger.FormatAmount(150000))
	assert.Contains(t, md, "| Hogar |")
	assert.Contains(t, md, "| 2024-06 |")
}

func TestRenderStyle(t *testing.T) {
	out, err := report.RenderStyle("# Ledger summary\n\nAll settled.", 60, "notty")
	require.NoError(t, err)

	assert.Contains(t, out, "Ledger summary")
	assert.Contains(t, out, "All settled.")
}

type fakeUploader struct {
	name string
	body string
	err  error
}

func (f *fakeUploader) Upload(_ context.Context, name string, r io.Reader) error {
	if f.err != nil {
		return f.err
	}

	b, err := io.ReadAll(r)
	if err != nil {
		return err
	}

	f.name, f.body = name, string(b)

	return nil
}

func newReportService(t *testing.T) *report.Service {
	t.Helper()

	rows := make([]ledger.Row, 0, len(sample()))
	for _, tx := range sample() {
		rows = append(rows, ledger.ToRow(tx))
	}

	records := record.NewService(memstore.New(ledger.Columns, rows...), record.Options{
		Participants: people,
		BaseCurrency: "CLP",
	})

	return report.NewService(records)
}

func TestService_Export(t *testing.T) {
	svc := newReportService(t)

	var buf bytes.Buffer

	n, err := svc.Export(context.Background(), record.Filter{Person: "Beto"}, &buf)
	require.NoError(t, err)
	assert.Equal(t, 2, n)

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, ledger.Columns, records[0])
	assert.Equal(t, "4", records[1][0])
	assert.Equal(t, "3", records[2][0])
}

func TestService_Summary(t *testing.T) {
	s, err := newReportService(t).Summary(context.Background())
	require.NoError(t, err)

	assert.Equal(t, int64(300000), s.Settlement.TotalShared)
	assert.Equal(t, []ledger.Transfer{{From: "Beto", To: "Ana", Amount: 150000}}, s.Settlement.Transfers)
	assert.Equal(t, 0, s.Issues)
}

func TestService_Archive(t *testing.T) {
	svc := newReportService(t)

	t.Run("Uploads", func(t *testing.T) {
		up := &fakeUploader{}

		name, err := svc.Archive(context.Background(), record.Filter{}, up)
		require.NoError(t, err)

		assert.Equal(t, name, up.name)
		assert.True(t, strings.HasPrefix(name, "ledger_"))
		assert.True(t, strings.HasSuffix(name, ".csv"))
		assert.Equal(t, 5, strings.Count(up.body, "\n"))
	})

	t.Run("UploadFails", func(t *testing.T) {
		_, err := svc.Archive(context.Background(), record.Filter{}, &fakeUploader{err: errors.New("denied")})
		assert.Error(t, err)
	})
}
