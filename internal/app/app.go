// Package app wires the configured row source, rate source and services
// shared by every entry point.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/MrJamesThe3rd/duo/internal/archive"
	"github.com/MrJamesThe3rd/duo/internal/auth"
	"github.com/MrJamesThe3rd/duo/internal/config"
	"github.com/MrJamesThe3rd/duo/internal/database"
	"github.com/MrJamesThe3rd/duo/internal/importer"
	"github.com/MrJamesThe3rd/duo/internal/ledger"
	"github.com/MrJamesThe3rd/duo/internal/matching"
	matchingStore "github.com/MrJamesThe3rd/duo/internal/matching/store"
	"github.com/MrJamesThe3rd/duo/internal/rates"
	"github.com/MrJamesThe3rd/duo/internal/record"
	"github.com/MrJamesThe3rd/duo/internal/record/memstore"
	"github.com/MrJamesThe3rd/duo/internal/record/sheets"
	recordStore "github.com/MrJamesThe3rd/duo/internal/record/store"
	"github.com/MrJamesThe3rd/duo/internal/record/tables"
	"github.com/MrJamesThe3rd/duo/internal/report"
)

const (
	ArchiveNone   = "none"
	ArchiveGCS    = "gcs"
	ArchiveAzblob = "azblob"
	ArchiveDir    = "dir"
)

type App struct {
	Config   *config.Config
	Records  *record.Service
	Reports  *report.Service
	Imports  *importer.Service
	Matching *matching.Service
	Tokens   *auth.Issuer

	// Archive is nil when ARCHIVE_BACKEND is none.
	Archive report.Uploader

	closers []func() error
}

func New(ctx context.Context, cfg *config.Config) (*App, error) {
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	a := &App{Config: cfg}

	repo, mappings, err := a.openStores(ctx, cfg)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	a.Records = record.NewService(repo, record.Options{
		Participants: cfg.Participants(),
		Location:     loc,
		BaseCurrency: cfg.Ledger.BaseCurrency,
		Rates:        rates.New(cfg.Rates.URL, cfg.Rates.Indicators, cfg.Rates.Timeout),
		FallbackRate: cfg.Rates.FallbackRate,
	})
	a.Reports = report.NewService(a.Records)
	a.Imports = importer.NewService(a.Records)
	a.Matching = matching.NewService(mappings)
	a.Tokens = auth.NewIssuer(cfg.Auth.Secret, cfg.Auth.Issuer, cfg.Auth.TTL, cfg.Participants())

	if _, ok := mappings.(*matching.MemoryStore); ok {
		a.seedMappings(ctx)
	}

	up, err := a.openArchive(ctx, cfg)
	if err != nil {
		_ = a.Close()
		return nil, err
	}

	a.Archive = up

	return a, nil
}

func (a *App) openStores(ctx context.Context, cfg *config.Config) (record.Repository, matching.Repository, error) {
	slog.Info("opening row source", "backend", cfg.Store.Backend)

	switch cfg.Store.Backend {
	case config.BackendPostgres:
		db, err := database.New(cfg.ConnectionString())
		if err != nil {
			return nil, nil, fmt.Errorf("connecting to database: %w", err)
		}

		a.closers = append(a.closers, db.Close)

		var (
			rows     = recordStore.New(db)
			mappings = matchingStore.New(db)
		)

		if err := database.EnsureSchema(ctx, rows, mappings); err != nil {
			return nil, nil, fmt.Errorf("ensuring schema: %w", err)
		}

		return rows, mappings, nil
	case config.BackendSheets:
		s, err := sheets.New(ctx, cfg.Sheets.SpreadsheetID, cfg.Sheets.SheetName, cfg.Sheets.CredentialsFile)
		if err != nil {
			return nil, nil, err
		}

		return s, matching.NewMemoryStore(), nil
	case config.BackendTables:
		s, err := tables.New(ctx, cfg.Tables.ServiceURL, cfg.Tables.Table)
		if err != nil {
			return nil, nil, err
		}

		return s, matching.NewMemoryStore(), nil
	default:
		return memstore.New(ledger.Columns), matching.NewMemoryStore(), nil
	}
}

// seedMappings fills an in-memory mapping store from the ledger history.
func (a *App) seedMappings(ctx context.Context) {
	snap, err := a.Records.Refresh(ctx)
	if err != nil {
		slog.Warn("could not seed category suggestions", "error", err)
		return
	}

	n, err := a.Matching.Seed(ctx, snap.Transactions)
	if err != nil {
		slog.Warn("seeding category suggestions failed", "error", err, "learned", n)
		return
	}

	slog.Debug("seeded category suggestions", "learned", n)
}

func (a *App) openArchive(ctx context.Context, cfg *config.Config) (report.Uploader, error) {
	switch cfg.Archive.Backend {
	case ArchiveNone, "":
		return nil, nil
	case ArchiveGCS:
		g, err := archive.NewGCS(ctx, cfg.Archive.Bucket, cfg.Archive.Prefix)
		if err != nil {
			return nil, err
		}

		a.closers = append(a.closers, g.Close)

		return g, nil
	case ArchiveAzblob:
		return archive.NewBlob(ctx, cfg.Archive.ServiceURL, cfg.Archive.Container)
	case ArchiveDir:
		return archive.NewDir(cfg.Archive.Dir)
	default:
		return nil, fmt.Errorf("unknown ARCHIVE_BACKEND %q", cfg.Archive.Backend)
	}
}

func (a *App) Close() error {
	var errs []error

	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}

	a.closers = nil

	return errors.Join(errs...)
}
