package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/cocktails/internal/httpserver/deps"
	"github.com/MrSnakeDoc/cocktails/internal/httpserver/handlers"
)

func init() {
	Register(registerPresets)
	Register(registerPresetRun, catalogLimit)
}

func registerPresets(r chi.Router, d deps.Deps) {
	r.Get("/api/presets", handlers.Presets(d))
}

func registerPresetRun(r chi.Router, d deps.Deps) {
	r.Post("/api/presets/{slug}/run", handlers.RunPreset(d))
}
