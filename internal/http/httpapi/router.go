package httpapi

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"timelessme/internal/http/handlers"
	"timelessme/internal/infra"
	"timelessme/internal/middleware"
	"timelessme/internal/page"
)

// Options configures the router. TrustProxyHeaders rewrites RemoteAddr from
// X-Forwarded-For and X-Real-IP; enable it only behind a proxy that sets them.
type Options struct {
	Logger            infra.Logger
	DefaultLocale     string
	CountryLookup     middleware.CountryLookup
	DecadesPerMinute  int
	TrustProxyHeaders bool
}

func NewRouter(app *handlers.App, opts Options) http.Handler {
	r := chi.NewRouter()
	if opts.TrustProxyHeaders {
		r.Use(chimw.RealIP)
	}
	r.Use(
		middleware.RequestID,
		chimw.Recoverer,
		middleware.Logger(opts.Logger),
		middleware.I18N(opts.DefaultLocale, opts.CountryLookup),
	)

	// Wizard
	r.Get("/", app.Index)
	r.Get("/state", app.State)
	r.Post("/photo", app.Photo)
	r.With(middleware.RateLimit(opts.DecadesPerMinute, time.Minute)).Post("/decade", app.Decade)
	r.Post("/restart", app.Restart)

	// Images
	r.Get("/refs/{id}", app.RefImage)
	r.Get("/refs/{id}/download", app.RefDownload)
	r.Handle("/assets/*", http.StripPrefix("/assets/", http.FileServer(http.FS(page.Assets()))))

	// Ops
	r.Get("/v1/healthz", app.Health)
	r.Get("/v1/stats", app.StatsSummary)

	return r
}
