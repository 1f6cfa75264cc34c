package api

import (
	"context"
	"net/http"

	"github.com/vasanam/vasanam/internal/api/respond"
)

// Pinger reports backing-store connectivity for health checks.
type Pinger interface {
	Ping(ctx context.Context) error
}

type healthHandler struct {
	pinger Pinger
}

func (h *healthHandler) ServeHTTP(_ http.ResponseWriter, r *http.Request) {
	if h.pinger != nil {
		if err := h.pinger.Ping(r.Context()); err != nil {
			respond.Error(r, respond.ErrServiceUnavailable.With("Database unreachable"))
			return
		}
	}
	respond.OK(r, http.StatusOK, map[string]string{"status": "ok"})
}
