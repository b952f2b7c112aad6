package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/MrJamesThe3rd/duo/internal/auth"
	"github.com/MrJamesThe3rd/duo/internal/http/export"
	"github.com/MrJamesThe3rd/duo/internal/http/importcsv"
	"github.com/MrJamesThe3rd/duo/internal/http/matching"
	"github.com/MrJamesThe3rd/duo/internal/http/record"
	"github.com/MrJamesThe3rd/duo/internal/http/report"
)

type Options struct {
	// Tokens authenticates every /api/v1 request. Nil disables authentication.
	Tokens         *auth.Issuer
	AllowedOrigins []string
}

func New(
	opts Options,
	recordsV1 *record.Handler,
	importV1 *importcsv.Handler,
	matchingV1 *matching.Handler,
	reportV1 *report.Handler,
	exportV1 *export.Handler,
) http.Handler {
	router := chi.NewRouter()

	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	router.Route("/api/v1", func(r chi.Router) {
		if opts.Tokens != nil {
			r.Use(opts.Tokens.Middleware)
		}

		r.Route("/records", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			recordsV1.Routes(r)
		})

		r.Post("/migrate", recordsV1.Migrate)

		r.Route("/import", importV1.Routes)

		r.Route("/suggest", func(r chi.Router) {
			r.Use(middleware.AllowContentType("application/json"))
			matchingV1.Routes(r)
		})

		r.Group(reportV1.Routes)
		r.Group(exportV1.Routes)
	})

	return router
}
