package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/cocktails/internal/httpserver/deps"
	"github.com/MrSnakeDoc/cocktails/internal/httpserver/handlers"
)

func init() { Register(registerFavorites) }

func registerFavorites(r chi.Router, d deps.Deps) {
	r.Route("/api/favorites", func(r chi.Router) {
		r.Get("/", handlers.Favorites(d))
		r.Delete("/", handlers.ClearFavorites(d))
		r.Get("/stats", handlers.FavoriteStats(d))
		r.Get("/export", handlers.ExportFavorites(d))
		r.Post("/import", handlers.ImportFavorites(d))

		// resolving an unknown id may reach the catalog
		limited := r.With(catalogLimit(d))
		limited.Post("/{id}/toggle", handlers.ToggleFavorite(d))
		limited.Put("/{id}", handlers.AddFavorite(d))
		r.Delete("/{id}", handlers.RemoveFavorite(d))
	})
}
