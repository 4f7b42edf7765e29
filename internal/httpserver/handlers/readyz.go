package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/MrSnakeDoc/linker/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready   bool   `json:"ready"`
	Loaded  bool   `json:"loaded"`
	Backend string `json:"backend"`
	Error   string `json:"error,omitempty"`
}

// pinger is implemented by backends with a remote connection.
type pinger interface {
	Ping(ctx context.Context) error
}

// Readyz is ready once the store is loaded and the backend answers.
// A down backend only degrades durability, but readiness reports it.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := readyzResponse{
			Loaded:  d.Store.Loaded(),
			Backend: "ok",
		}

		if p, ok := d.Backend.(pinger); ok {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := p.Ping(ctx); err != nil {
				resp.Backend = "unreachable"
				resp.Error = err.Error()
			}
		}

		resp.Ready = resp.Loaded && resp.Backend == "ok"
		status := http.StatusOK
		if !resp.Ready {
			status = http.StatusServiceUnavailable
		}
		writeJSON(w, d.Logger, status, resp)
	}
}
