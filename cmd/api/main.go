package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/MrJamesThe3rd/duo/internal/app"
	"github.com/MrJamesThe3rd/duo/internal/config"
	duoHttp "github.com/MrJamesThe3rd/duo/internal/http"
	exportHandler "github.com/MrJamesThe3rd/duo/internal/http/export"
	importHandler "github.com/MrJamesThe3rd/duo/internal/http/importcsv"
	matchingHandler "github.com/MrJamesThe3rd/duo/internal/http/matching"
	recordHandler "github.com/MrJamesThe3rd/duo/internal/http/record"
	reportHandler "github.com/MrJamesThe3rd/duo/internal/http/report"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a, err := app.New(ctx, cfg)
	if err != nil {
		slog.Error("failed to start", "error", err)
		os.Exit(1)
	}
	defer a.Close()

	loc := a.Records.Location()

	var (
		recordH   = recordHandler.NewHandler(a.Records)
		importH   = importHandler.NewHandler(a.Imports)
		matchingH = matchingHandler.NewHandler(a.Matching)
		reportH   = reportHandler.NewHandler(a.Reports, loc)
		exportH   = exportHandler.NewHandler(a.Reports, a.Archive, loc)
	)

	opts := duoHttp.Options{AllowedOrigins: cfg.CORS.AllowedOrigins}
	if cfg.Auth.Secret != "" {
		opts.Tokens = a.Tokens
	} else {
		slog.Warn("AUTH_SECRET is empty, API runs without authentication")
	}

	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.App.Port),
		Handler:           duoHttp.New(opts, recordH, importH, matchingH, reportH, exportH),
		ReadHeaderTimeout: cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
	}

	go func() {
		<-ctx.Done()

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("shutdown failed", "error", err)
		}
	}()

	slog.Info("starting server", "port", server.Addr, "backend", cfg.Store.Backend, "participants", cfg.Ledger.Participants)

	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("server failed", "error", err)
		os.Exit(1)
	}
}
