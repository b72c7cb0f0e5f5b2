package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/cocktails/internal/httpserver/deps"
	"github.com/MrSnakeDoc/cocktails/internal/httpserver/handlers"
)

func init() { Register(registerHistory) }

func registerHistory(r chi.Router, d deps.Deps) {
	r.Get("/api/history", handlers.History(d))
	r.Delete("/api/history", handlers.ClearHistory(d))
	r.Get("/api/history/suggestions", handlers.Suggestions(d))
	r.Get("/api/storage", handlers.Storage(d))
}
