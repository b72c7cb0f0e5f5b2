package handlers

import (
	"net/http"
	"time"

	"github.com/MrSnakeDoc/cocktails/internal/httpserver/deps"
)

type componentStatus struct {
	OK         bool   `json:"ok"`
	Loaded     *int   `json:"loaded,omitempty"`
	LastReload string `json:"last_reload,omitempty"`
	Mode       string `json:"mode,omitempty"`
	Impact     string `json:"impact,omitempty"`
	Error      string `json:"error,omitempty"`
}

type infraResponse struct {
	Status     string                     `json:"status"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the state of every component the service depends on.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		components := map[string]componentStatus{
			"store":    storeStatus(r, d),
			"taxonomy": taxonomyStatus(d),
		}
		if d.Presets != nil {
			n := d.Presets.Count()
			components["presets"] = componentStatus{
				OK:         n > 0,
				Loaded:     &n,
				LastReload: formatReload(d.Presets.GetLastReload()),
			}
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Status:     overallStatus(components),
			Components: components,
		})
	}
}

func storeStatus(r *http.Request, d deps.Deps) componentStatus {
	if err := pingStore(r.Context(), d); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   d.StoreBackend,
			Impact: "favorites-and-history-unavailable",
			Error:  err.Error(),
		}
	}
	return componentStatus{OK: true, Mode: d.StoreBackend}
}

func taxonomyStatus(d deps.Deps) componentStatus {
	if d.Taxonomy == nil {
		return componentStatus{OK: false, Error: "not initialized"}
	}
	n := d.Taxonomy.Count()
	st := componentStatus{
		OK:         n > 0,
		Loaded:     &n,
		LastReload: formatReload(d.Taxonomy.GetLastReload()),
	}
	if n == 0 {
		st.Impact = "search-form-lists-empty"
	}
	return st
}

// overallStatus is "critical" when the store is down, "degraded" when an
// optional component is empty, "ok" otherwise.
func overallStatus(components map[string]componentStatus) string {
	if s, ok := components["store"]; ok && !s.OK {
		return "critical"
	}
	for _, c := range components {
		if !c.OK {
			return "degraded"
		}
	}
	return "ok"
}

func formatReload(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Format("2006-01-02 15:04:05")
}
