package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/cocktails/internal/domain"
	"github.com/MrSnakeDoc/cocktails/internal/export"
	"github.com/MrSnakeDoc/cocktails/internal/httpserver/deps"
)

// DefaultMaxImportBytes bounds an import body when deps leave it unset.
const DefaultMaxImportBytes = 1 << 20

type favoritesResponse struct {
	Favorites []domain.FavoriteRecord `json:"favorites"`
	Count     int                     `json:"count"`
}

type changeResponse struct {
	ID      string `json:"id"`
	Changed bool   `json:"changed"`
	Count   int    `json:"count"`
}

func Favorites(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		favs := d.LocalStore.Favorites(r.Context())
		writeJSON(w, http.StatusOK, favoritesResponse{Favorites: favs, Count: len(favs)})
	}
}

func ClearFavorites(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Favorites.Clear(r.Context()); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// ToggleFavorite flips {id}; ?animate=true also fires the acknowledgement.
func ToggleFavorite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		res, err := d.Favorites.Toggle(r.Context(), chi.URLParam(r, "id"), queryBool(r, "animate"))
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}

// AddFavorite stores {id}: 201 when added, 200 when it already was a favorite.
func AddFavorite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		added, err := d.Favorites.AddByID(r.Context(), id, queryBool(r, "animate"))
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		status := http.StatusOK
		if added {
			status = http.StatusCreated
		}
		writeJSON(w, status, changeResponse{ID: id, Changed: added, Count: d.Favorites.Count(r.Context())})
	}
}

// RemoveFavorite deletes {id}; 404 when it was not a favorite.
func RemoveFavorite(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		removed, err := d.Favorites.Remove(r.Context(), id, queryBool(r, "animate"))
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		if !removed {
			writeError(w, d.Logger, &domain.NotFoundError{Kind: "favorite", ID: id})
			return
		}
		writeJSON(w, http.StatusOK, changeResponse{ID: id, Changed: true, Count: d.Favorites.Count(r.Context())})
	}
}

func FavoriteStats(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Favorites.Stats(r.Context()))
	}
}

func ExportFavorites(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format, err := export.ParseFormat(r.URL.Query().Get("format"))
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		doc, err := d.Favorites.Export(r.Context(), format)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeDocument(w, doc)
	}
}

// ImportFavorites merges the JSON array in the body into the favorites.
func ImportFavorites(d deps.Deps) http.HandlerFunc {
	limit := d.MaxImportBytes
	if limit <= 0 {
		limit = DefaultMaxImportBytes
	}
	return func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, limit))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				writeJSON(w, http.StatusRequestEntityTooLarge, errorResponse{Error: "import file too large"})
				return
			}
			writeError(w, d.Logger, &domain.FormatError{Reason: "unreadable body", Err: err})
			return
		}

		res, err := d.Favorites.Import(r.Context(), data)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, res)
	}
}
