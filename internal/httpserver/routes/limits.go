package routes

import (
	"github.com/MrSnakeDoc/cocktails/internal/httpserver/deps"
	"github.com/MrSnakeDoc/cocktails/internal/httpserver/mw"
)

// catalogLimit guards routes that reach the remote catalog. Each call
// returns an independent limiter.
func catalogLimit(d deps.Deps) Middleware {
	return mw.RateLimit(mw.RateLimitConfig{
		Burst:             d.RateLimitBurst,
		RefillPerIPPerMin: d.RateLimitPerMinute,
		TrustProxy:        d.TrustProxy,
	})
}

// internalOnly restricts operational endpoints to AllowedCIDRS.
func internalOnly(d deps.Deps) Middleware {
	return mw.AllowOnlyCIDRS(d.AllowedCIDRS, d.TrustProxy, d.Logger)
}
