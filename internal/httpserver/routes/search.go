package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/cocktails/internal/httpserver/deps"
	"github.com/MrSnakeDoc/cocktails/internal/httpserver/handlers"
)

func init() { Register(registerSearch) }

func registerSearch(r chi.Router, d deps.Deps) {
	r.Route("/api/search", func(r chi.Router) {
		r.Get("/", handlers.SearchState(d))
		r.Delete("/", handlers.ResetSearch(d))
		r.Get("/pages/{page}", handlers.SearchPage(d))
		r.Get("/export", handlers.ExportSearch(d))

		limited := r.With(catalogLimit(d))
		limited.Post("/", handlers.SubmitSearch(d))
		limited.Get("/quick", handlers.QuickSearch(d))
		limited.Post("/live", handlers.LiveSearch(d))
	})
}
