package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/cocktails/internal/domain"
	"github.com/MrSnakeDoc/cocktails/internal/export"
	"github.com/MrSnakeDoc/cocktails/internal/httpserver/deps"
)

const maxCriteriaBytes = 16 << 10

// SubmitSearch runs a full search with the JSON criteria in the body.
func SubmitSearch(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var criteria domain.Criteria
		dec := json.NewDecoder(io.LimitReader(r.Body, maxCriteriaBytes))
		if err := dec.Decode(&criteria); err != nil {
			writeError(w, d.Logger, domain.NewValidationError("request body must be a JSON object of search criteria"))
			return
		}

		state, err := d.Search.Submit(r.Context(), criteria)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, state)
	}
}

// QuickSearch runs an immediate name search for ?q=.
func QuickSearch(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state, err := d.Search.QuickSearch(r.Context(), r.URL.Query().Get("q"))
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, state)
	}
}

// LiveSearch feeds ?q= to the debounced quick search and returns at once.
// Clients poll SearchState for the outcome.
func LiveSearch(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Search.Type(r.Context(), r.URL.Query().Get("q"))
		w.WriteHeader(http.StatusAccepted)
	}
}

// SearchState returns the current search state.
func SearchState(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Search.State())
	}
}

// SearchPage moves to results page {page}.
func SearchPage(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		n, err := strconv.Atoi(chi.URLParam(r, "page"))
		if err != nil {
			writeError(w, d.Logger, domain.NewValidationError("page must be a number"))
			return
		}
		state, err := d.Search.Page(n)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, state)
	}
}

// ResetSearch clears the results and returns to idle.
func ResetSearch(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Search.Reset()
		w.WriteHeader(http.StatusNoContent)
	}
}

// ExportSearch downloads the current results in ?format= (json or csv).
func ExportSearch(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		format, err := export.ParseFormat(r.URL.Query().Get("format"))
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		doc, err := d.Search.ExportResults(format)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeDocument(w, doc)
	}
}
