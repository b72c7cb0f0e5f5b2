package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/cocktails/internal/httpserver/deps"
	"github.com/MrSnakeDoc/cocktails/internal/httpserver/handlers"
)

func init() {
	Register(registerHealthz)
	Register(registerInternal, internalOnly)
}

func registerHealthz(r chi.Router, d deps.Deps) {
	r.Get("/healthz", handlers.Healthz(d))
}

func registerInternal(r chi.Router, d deps.Deps) {
	r.Get("/readyz", handlers.Readyz(d))
	r.Get("/infra", handlers.Infra(d))
	r.Post("/api/reload", handlers.Reload(d))
}
