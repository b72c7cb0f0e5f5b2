package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/cocktails/internal/domain"
	"github.com/MrSnakeDoc/cocktails/internal/httpserver/deps"
	"github.com/MrSnakeDoc/cocktails/internal/sources/presets"
)

type presetsResponse struct {
	Presets []presets.Preset `json:"presets"`
}

// Presets lists the saved searches; empty when presets are disabled.
func Presets(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		list := []presets.Preset{}
		if d.Presets != nil {
			list = d.Presets.All()
		}
		writeJSON(w, http.StatusOK, presetsResponse{Presets: list})
	}
}

// RunPreset submits the criteria of preset {slug} as a full search.
func RunPreset(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if d.Presets == nil {
			writeError(w, d.Logger, &domain.NotFoundError{Kind: "preset", ID: slug})
			return
		}
		p, ok := d.Presets.Get(slug)
		if !ok {
			writeError(w, d.Logger, &domain.NotFoundError{Kind: "preset", ID: slug})
			return
		}

		state, err := d.Search.Submit(r.Context(), p.Criteria)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, state)
	}
}
