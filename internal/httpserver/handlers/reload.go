package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/cocktails/internal/httpserver/deps"
	"github.com/MrSnakeDoc/cocktails/internal/logger"
)

type reloadResponse struct {
	Taxonomy bool `json:"taxonomy"`
	Presets  bool `json:"presets"`
}

// Reload triggers a manual reload of the taxonomies and presets. A trigger
// whose channel is already full counts as "in progress".
func Reload(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := reloadResponse{
			Taxonomy: trigger(d, d.TaxonomyReloadTrigger, "taxonomy", r),
			Presets:  trigger(d, d.PresetReloadTrigger, "presets", r),
		}

		if resp.Taxonomy || resp.Presets {
			writeJSON(w, http.StatusAccepted, resp)
			return
		}
		writeJSON(w, http.StatusTooManyRequests, errorResponse{Error: "reload already in progress, please wait"})
	}
}

func trigger(d deps.Deps, ch chan struct{}, name string, r *http.Request) bool {
	if ch == nil {
		return false
	}
	select {
	case ch <- struct{}{}:
		d.Logger.Info("manual reload triggered via endpoint",
			logger.String("component", name),
			logger.String("remote_ip", r.RemoteAddr))
		return true
	default:
		d.Logger.Warn("reload already in progress",
			logger.String("component", name),
			logger.String("remote_ip", r.RemoteAddr))
		return false
	}
}
