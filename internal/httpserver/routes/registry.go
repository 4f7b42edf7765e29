package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linker/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linker/internal/httpserver/mw"
)

// Registrar mounts a group of routes.
type Registrar func(r chi.Router, d deps.Deps)

var registry []Registrar

// Register adds a registrar; route files call it from init().
func Register(reg Registrar) {
	registry = append(registry, reg)
}

// RegisterAll mounts every registered group. Called once from httpserver.NewRouter.
func RegisterAll(r chi.Router, d deps.Deps) {
	for _, reg := range registry {
		reg(r, d)
	}
}

// guarded applies the CIDR and Host allow lists shared by the API routes.
func guarded(r chi.Router, d deps.Deps) chi.Router {
	return r.With(
		mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger),
		mw.EnforceHost(d.AllowedHosts, d.Logger),
	)
}

// limited adds the per IP token bucket of mutating routes. Each call
// gets its own buckets.
func limited(r chi.Router, d deps.Deps) chi.Router {
	return guarded(r, d).With(mw.RateLimit(mw.RateLimitConfig{
		Burst:        d.RateLimit.Burst,
		RefillPerMin: d.RateLimit.RefillPerM,
		MaxEntries:   10_000,
		TrustProxy:   d.TrustProxy,
		Logger:       d.Logger,
	}))
}
