package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/cocktails/internal/domain"
	"github.com/MrSnakeDoc/cocktails/internal/httpserver/deps"
)

type cocktailResponse struct {
	*domain.CocktailDetail
	IsFavorite bool `json:"isFavorite"`
}

// Random returns one random cocktail from the catalog.
func Random(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, err := d.Catalog.GetRandom(r.Context())
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		if c == nil {
			writeError(w, d.Logger, &domain.NotFoundError{Kind: "cocktail", ID: "random"})
			return
		}
		writeJSON(w, http.StatusOK, cocktailResponse{
			CocktailDetail: c,
			IsFavorite:     d.LocalStore.IsFavorite(r.Context(), c.ID),
		})
	}
}

// Cocktail returns the full record for {id}, flagged when it is a favorite.
func Cocktail(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		c, err := d.Catalog.GetByID(r.Context(), id)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		if c == nil {
			writeError(w, d.Logger, &domain.NotFoundError{Kind: "cocktail", ID: id})
			return
		}
		writeJSON(w, http.StatusOK, cocktailResponse{
			CocktailDetail: c,
			IsFavorite:     d.LocalStore.IsFavorite(r.Context(), c.ID),
		})
	}
}

// Taxonomy returns the cached category, glass and ingredient lists.
func Taxonomy(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Taxonomy.Snapshot())
	}
}
