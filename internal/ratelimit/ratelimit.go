// Package ratelimit implements the fixed-window admission controller that
// gates the public search surface.
//
// The core type is Limiter, a transport-agnostic check-and-admit over a
// pluggable store (in-memory for a single instance, Redis when replicas
// must share windows). Fixed windows are deliberate: a burst at the tail
// of one window followed by a burst at the head of the next is permitted,
// trading smoothing accuracy for O(1) memory and O(1) per-check cost.
//
// HTTP call sites wrap a Limiter with Middleware and a KeyFunc. Each call
// site carries its own namespace prefix so the JSON endpoint and the
// server-rendered page never share one quota bucket:
//
//	st := store.NewMemory()
//	defer st.Close()
//	r.Use(ratelimit.Middleware(ratelimit.New(st, 30, time.Minute), ratelimit.ByClientIP("api")))
//
// Responses carry RateLimit-Limit, RateLimit-Remaining and RateLimit-Reset
// headers, plus Retry-After on 429.
package ratelimit

import (
	"context"
	"net"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/vasanam/vasanam/internal/api/respond"
	"github.com/vasanam/vasanam/internal/ratelimit/store"
)

// Defaults applied when a limiter is constructed with non-positive values.
const (
	DefaultLimit  = 30
	DefaultWindow = time.Minute
)

// anonymousKey is the catch-all identity for requests whose client key
// cannot be derived. Misidentified clients share this one quota bucket
// rather than being unconditionally blocked or waved through uncounted.
const anonymousKey = "anonymous"

// Limiter is a fixed-window admission controller.
type Limiter struct {
	store  store.Store
	limit  int64
	window time.Duration
}

// New creates a limiter with the given ceiling and window.
// Non-positive values fall back to DefaultLimit and DefaultWindow.
func New(st store.Store, limit int, window time.Duration) *Limiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	return &Limiter{
		store:  st,
		limit:  int64(limit),
		window: window,
	}
}

// Allow performs one admission check for the given client key.
// An empty key counts against the shared catch-all bucket; a missing
// identity is not an error.
func (l *Limiter) Allow(ctx context.Context, key string) (store.Decision, error) {
	if key == "" {
		key = anonymousKey
	}
	return l.store.Allow(ctx, key, l.limit, l.window)
}

// KeyFunc derives a rate-limiting key from an HTTP request.
type KeyFunc func(*http.Request) string

// Observer is notified of every admission decision, keyed by the call
// site's namespace. Used to feed metrics without coupling the limiter to
// a metrics registry.
type Observer func(site string, allowed bool)

// MiddlewareOption configures Middleware.
type MiddlewareOption func(*middlewareConfig)

type middlewareConfig struct {
	observer Observer
}

// WithObserver registers a callback invoked after each admission decision.
func WithObserver(fn Observer) MiddlewareOption {
	return func(c *middlewareConfig) {
		c.observer = fn
	}
}

// ByClientIP returns a KeyFunc that identifies the client by forwarded
// address, namespaced by the call site. It prefers the first entry of
// X-Forwarded-For, then X-Real-IP, then the connection's remote address.
// The generated key format is "<site>:<ip>".
func ByClientIP(site string) KeyFunc {
	return func(r *http.Request) string {
		ip := clientIP(r)
		if ip == "" {
			return ""
		}
		var b strings.Builder
		b.Grow(len(site) + 1 + len(ip))
		b.WriteString(site)
		b.WriteByte(':')
		b.WriteString(ip)
		return b.String()
	}
}

func clientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if ip := strings.TrimSpace(first); ip != "" {
			return ip
		}
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// Middleware gates requests through the limiter before they reach the
// handler. The site name labels this call site for the observer and is
// unrelated to the key namespace, though call sites conventionally use the
// same string for both. Denied requests get 429 with a Retry-After header.
// A store failure is surfaced as 500; the gate never fails open or closed
// on its own judgment.
//
// When the respond middleware is active the outcome is set in request
// context; otherwise it is written directly, so the gate works on a bare
// http.Handler chain too.
func Middleware(l *Limiter, site string, keyFn KeyFunc, opts ...MiddlewareOption) func(http.Handler) http.Handler {
	cfg := &middlewareConfig{}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			useState := respond.HasState(r.Context())

			decision, err := l.Allow(r.Context(), keyFn(r))
			if err != nil {
				if useState {
					respond.Error(r, respond.ErrInternal.With("Rate limit check failed"))
				} else {
					http.Error(w, "Rate limit check failed", http.StatusInternalServerError)
				}
				return
			}

			if cfg.observer != nil {
				cfg.observer(site, decision.Allowed)
			}

			headers := map[string]string{
				"RateLimit-Limit":     strconv.FormatInt(decision.Limit, 10),
				"RateLimit-Remaining": strconv.FormatInt(decision.Remaining, 10),
				"RateLimit-Reset":     strconv.FormatInt(decision.ResetAt.Unix(), 10),
			}
			if !decision.Allowed {
				headers["Retry-After"] = strconv.Itoa(max(1, int(time.Until(decision.ResetAt).Seconds())))
			}
			for k, v := range headers {
				if useState {
					respond.Header(r, k, v)
				} else {
					w.Header().Set(k, v)
				}
			}

			if !decision.Allowed {
				if useState {
					respond.Error(r, respond.ErrRateLimited.With("Too many requests. Please slow down."))
				} else {
					http.Error(w, "Too many requests. Please slow down.", http.StatusTooManyRequests)
				}
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
