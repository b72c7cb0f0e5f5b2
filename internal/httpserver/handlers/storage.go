package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/cocktails/internal/httpserver/deps"
	"github.com/MrSnakeDoc/cocktails/internal/localstore"
)

type storageResponse struct {
	localstore.Info
	Backend string `json:"backend"`
}

// Storage reports how much the local store holds.
func Storage(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, storageResponse{
			Info:    d.LocalStore.Info(r.Context()),
			Backend: d.StoreBackend,
		})
	}
}
