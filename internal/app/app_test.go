package app_test

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/duo/internal/app"
	"github.com/MrJamesThe3rd/duo/internal/config"
	"github.com/MrJamesThe3rd/duo/internal/ledger"
	"github.com/MrJamesThe3rd/duo/internal/record"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()

	t.Setenv("LEDGER_PARTICIPANTS", "Ana,Beto")
	t.Setenv("LEDGER_TIMEZONE", "UTC")
	t.Setenv("AUTH_SECRET", "s3cret")

	cfg, err := config.Load()
	require.NoError(t, err)

	return cfg
}

func TestNew_Memory(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t)

	a, err := app.New(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, a.Close()) })

	assert.Nil(t, a.Archive)

	_, err = a.Records.Create(ctx, record.CreateParams{
		Kind:          ledger.KindExpense,
		Detail:        "Supermercado",
		Category:      "Comida",
		Date:          time.Now().AddDate(0, 0, -1),
		Person:        "Ana",
		Amount:        decimal.NewFromInt(100),
		Currency:      "CLP",
		PaymentMethod: "Débito",
		IsShared:      true,
		ShareA:        50,
		ShareB:        50,
		Actor:         "Ana",
	})
	require.NoError(t, err)

	summary, err := a.Reports.Summary(ctx)
	require.NoError(t, err)
	require.Len(t, summary.Settlement.Transfers, 1)
	assert.Equal(t, ledger.Transfer{From: "Beto", To: "Ana", Amount: 50}, summary.Settlement.Transfers[0])

	token, err := a.Tokens.Issue("Beto")
	require.NoError(t, err)

	person, err := a.Tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "Beto", person)
}

func TestNew_DirArchive(t *testing.T) {
	cfg := testConfig(t)
	cfg.Archive.Backend = app.ArchiveDir
	cfg.Archive.Dir = filepath.Join(t.TempDir(), "exports")

	a, err := app.New(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, a.Close()) })

	assert.NotNil(t, a.Archive)
}

func TestNew_UnknownArchive(t *testing.T) {
	cfg := testConfig(t)
	cfg.Archive.Backend = "ftp"

	_, err := app.New(context.Background(), cfg)
	assert.Error(t, err)
}
