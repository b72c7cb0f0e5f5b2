package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/cocktails/internal/domain"
	"github.com/MrSnakeDoc/cocktails/internal/httpserver/deps"
)

type historyResponse struct {
	Entries []domain.SearchHistoryEntry `json:"entries"`
}

type suggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

func History(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, historyResponse{Entries: d.LocalStore.SearchHistory(r.Context())})
	}
}

func Suggestions(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, suggestionsResponse{
			Suggestions: d.LocalStore.Suggestions(r.Context(), r.URL.Query().Get("q")),
		})
	}
}

func ClearHistory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.LocalStore.ClearSearchHistory(r.Context()); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
