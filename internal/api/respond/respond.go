// Package respond provides context-based response handling for the HTTP
// layer.
//
// Handlers and middleware set a response or a structured error in request
// context instead of writing to the ResponseWriter directly; the New
// middleware writes whatever was set once the handler chain returns. This
// keeps error bodies uniform, gives one place for panic recovery, and lets
// the canonical log line see the final status.
//
//	r := chi.NewRouter()
//	r.Use(respond.New(respond.WithCanonlog()))
//
//	r.Get("/api/movies/{slug}", func(_ http.ResponseWriter, r *http.Request) {
//	    movie, err := resolve(r)
//	    if err != nil {
//	        respond.Error(r, respond.ErrNotFound.With("Movie not found"))
//	        return
//	    }
//	    respond.OK(r, http.StatusOK, movie)
//	})
package respond

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/nhalm/canonlog"
)

type contextKey string

const stateKey contextKey = "respond_state"

// State holds the response state for one request.
type State struct {
	mu      sync.Mutex
	err     *APIError
	status  int
	body    any
	headers http.Header
}

// APIError is a structured API error response.
type APIError struct {
	Type    string `json:"type"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message"`
	Param   string `json:"param,omitempty"`
	Status  int    `json:"-"`
}

type errorResponse struct {
	Error *APIError `json:"error"`
}

var bufferPool = sync.Pool{
	New: func() any { return new(bytes.Buffer) },
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return e.Message
}

// Is implements errors.Is for comparing error types.
func (e *APIError) Is(target error) bool {
	if e == nil {
		return target == nil
	}
	t, ok := target.(*APIError)
	if !ok {
		return false
	}
	return e.Type == t.Type && e.Code == t.Code
}

// With returns a copy of the error with a custom message.
func (e *APIError) With(message string) *APIError {
	if e == nil {
		return nil
	}
	dup := *e
	dup.Message = message
	return &dup
}

// Predefined sentinel errors covering the service's error taxonomy.
var (
	ErrBadRequest         = &APIError{Type: "request_error", Code: "bad_request", Message: "Bad request", Status: http.StatusBadRequest}
	ErrNotFound           = &APIError{Type: "not_found", Code: "resource_not_found", Message: "Resource not found", Status: http.StatusNotFound}
	ErrRateLimited        = &APIError{Type: "rate_limit_error", Code: "limit_exceeded", Message: "Rate limit exceeded", Status: http.StatusTooManyRequests}
	ErrInternal           = &APIError{Type: "internal_error", Code: "internal", Message: "Internal server error", Status: http.StatusInternalServerError}
	ErrServiceUnavailable = &APIError{Type: "internal_error", Code: "service_unavailable", Message: "Service unavailable", Status: http.StatusServiceUnavailable}
)

// Error sets an error response in the request context.
// No-op if the respond middleware is not installed.
func Error(r *http.Request, err *APIError) {
	state := getState(r.Context())
	if state == nil {
		return
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	state.err = err
}

// OK sets a success response in the request context.
// No-op if the respond middleware is not installed.
func OK(r *http.Request, status int, body any) {
	state := getState(r.Context())
	if state == nil {
		return
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	state.status = status
	state.body = body
}

// Header sets a response header in the request context.
// No-op if the respond middleware is not installed.
func Header(r *http.Request, key, value string) {
	state := getState(r.Context())
	if state == nil {
		return
	}
	state.mu.Lock()
	defer state.mu.Unlock()
	if state.headers == nil {
		state.headers = make(http.Header)
	}
	state.headers.Set(key, value)
}

// HasState returns true if respond state exists in the context.
func HasState(ctx context.Context) bool {
	return getState(ctx) != nil
}

func getState(ctx context.Context) *State {
	state, _ := ctx.Value(stateKey).(*State)
	return state
}

// Option configures the respond middleware.
type Option func(*config)

type config struct {
	canonlog       bool
	canonlogFields func(*http.Request) map[string]any
}

// WithCanonlog enables canonical logging for requests: one log line per
// request carrying method, path, route, status and duration_ms. Errors
// set via Error are logged on the same line.
func WithCanonlog() Option {
	return func(c *config) {
		c.canonlog = true
	}
}

// WithCanonlogFields adds custom fields to each log entry. Called at
// request start, before the handler executes.
func WithCanonlogFields(fn func(*http.Request) map[string]any) Option {
	return func(c *config) {
		c.canonlogFields = fn
	}
}

// New returns middleware that manages response state and writes responses.
func New(opts ...Option) func(http.Handler) http.Handler {
	cfg := &config{}
	for _, opt := range opts {
		opt(cfg)
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			state := &State{}
			ctx := context.WithValue(r.Context(), stateKey, state)

			var start time.Time
			if cfg.canonlog {
				ctx = canonlog.NewContext(ctx)
				start = time.Now()

				canonlog.InfoAddMany(ctx, map[string]any{
					"method": r.Method,
					"path":   r.URL.Path,
				})

				if cfg.canonlogFields != nil {
					canonlog.InfoAddMany(ctx, cfg.canonlogFields(r))
				}
			}

			r = r.WithContext(ctx)

			defer func() {
				if rec := recover(); rec != nil {
					state.mu.Lock()
					state.err = ErrInternal
					state.mu.Unlock()

					if cfg.canonlog {
						canonlog.ErrorAdd(ctx, fmt.Errorf("panic: %v", rec))
					}
				}

				if cfg.canonlog {
					state.mu.Lock()
					status := state.status
					if state.err != nil {
						status = state.err.Status
						canonlog.ErrorAdd(ctx, state.err)
					}
					state.mu.Unlock()

					duration := time.Since(start)

					route := r.URL.Path
					if rctx := chi.RouteContext(ctx); rctx != nil {
						if pattern := rctx.RoutePattern(); pattern != "" {
							route = pattern
						}
					}

					canonlog.InfoAddMany(ctx, map[string]any{
						"route":       route,
						"status":      status,
						"duration_ms": duration.Milliseconds(),
					})

					canonlog.Flush(ctx)
				}

				writeResponse(w, state)
			}()

			next.ServeHTTP(w, r)
		})
	}
}

func writeResponse(w http.ResponseWriter, state *State) {
	state.mu.Lock()
	defer state.mu.Unlock()

	for key, values := range state.headers {
		for _, value := range values {
			w.Header().Add(key, value)
		}
	}

	if state.err != nil {
		writeJSON(w, state.err.Status, errorResponse{Error: state.err})
		return
	}

	if state.body != nil {
		writeJSON(w, state.status, state.body)
		return
	}

	if state.status != 0 {
		w.WriteHeader(state.status)
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	buf := bufferPool.Get().(*bytes.Buffer)
	buf.Reset()
	defer bufferPool.Put(buf)

	if err := json.NewEncoder(buf).Encode(body); err != nil {
		w.Header().Set("Content-Type", "text/plain")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte("Internal server error"))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}
