package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/vasanam/vasanam/internal/api/respond"
	"github.com/vasanam/vasanam/internal/catalog"
	"github.com/vasanam/vasanam/internal/config"
	"github.com/vasanam/vasanam/internal/metrics"
	"github.com/vasanam/vasanam/internal/ratelimit"
	"github.com/vasanam/vasanam/internal/ratelimit/store"
)

// NewRouter builds the HTTP surface.
//
// The search handler is mounted twice: /api/search for the JSON endpoint
// and /search for the server-rendered page's data handler. Each mount
// carries its own admission window keyed by forwarded client address with
// a distinct namespace, so the two call sites never share a quota bucket.
func NewRouter(cfg *config.Config, cat catalog.Store, pinger Pinger, limiterStore store.Store) http.Handler {
	h := NewHandlers(cat, cfg.PublicURL)

	r := chi.NewRouter()
	r.Use(metrics.Middleware)
	r.Use(respond.New(respond.WithCanonlog()))

	searchLimiter := ratelimit.New(limiterStore, cfg.SearchRateLimit, cfg.SearchRateWindow)
	pageLimiter := ratelimit.New(limiterStore, cfg.PageRateLimit, cfg.PageRateWindow)

	r.Group(func(r chi.Router) {
		r.Use(ratelimit.Middleware(searchLimiter, "api", ratelimit.ByClientIP("api"),
			ratelimit.WithObserver(metrics.ObserveAdmission)))
		r.Get("/api/search", h.Search)
	})

	r.Group(func(r chi.Router) {
		r.Use(ratelimit.Middleware(pageLimiter, "page", ratelimit.ByClientIP("page"),
			ratelimit.WithObserver(metrics.ObserveAdmission)))
		r.Get("/search", h.Search)
	})

	r.Get("/api/movies/{slug}", h.Movie)
	r.Get("/api/segments/{id}", h.Segment)

	r.Method(http.MethodGet, "/healthz", &healthHandler{pinger: pinger})
	r.Handle("/metrics", promhttp.Handler())

	return r
}
