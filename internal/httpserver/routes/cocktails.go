package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/cocktails/internal/httpserver/deps"
	"github.com/MrSnakeDoc/cocktails/internal/httpserver/handlers"
)

func init() { Register(registerCocktails) }

func registerCocktails(r chi.Router, d deps.Deps) {
	limited := r.With(catalogLimit(d))
	limited.Get("/api/random", handlers.Random(d))
	limited.Get("/api/cocktails/{id}", handlers.Cocktail(d))

	r.Get("/api/taxonomy", handlers.Taxonomy(d))
}
