package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/MrSnakeDoc/cocktails/internal/domain"
	"github.com/MrSnakeDoc/cocktails/internal/export"
	"github.com/MrSnakeDoc/cocktails/internal/logger"
	"github.com/MrSnakeDoc/cocktails/internal/search"
)

type errorResponse struct {
	Error  string   `json:"error"`
	Errors []string `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps err to a status code and a JSON body. Remote and
// persistence failures are logged with their cause; clients only see the
// short message.
func writeError(w http.ResponseWriter, log logger.Logger, err error) {
	var (
		ve *domain.ValidationError
		fe *domain.FormatError
		nf *domain.NotFoundError
		re *domain.RemoteError
		pe *domain.PersistenceError
	)

	switch {
	case errors.As(err, &ve):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request", Errors: ve.Messages})
	case errors.As(err, &fe):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: fe.Error()})
	case errors.As(err, &nf):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: nf.Error()})
	case errors.Is(err, search.ErrSearchInProgress), errors.Is(err, search.ErrSuperseded):
		writeJSON(w, http.StatusConflict, errorResponse{Error: err.Error()})
	case errors.Is(err, search.ErrPageOutOfRange):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
	case errors.Is(err, export.ErrNothingToExport):
		w.WriteHeader(http.StatusNoContent)
	case errors.As(err, &re):
		log.Warn("catalog request failed", logger.String("detail", re.Detail()))
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: re.Error()})
	case errors.As(err, &pe):
		log.Error("local store write failed", logger.String("key", pe.Key), logger.Error(pe.Err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "failed to save data"})
	default:
		log.Error("unhandled error", logger.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: http.StatusText(http.StatusInternalServerError)})
	}
}

// writeDocument serves an export as a file download.
func writeDocument(w http.ResponseWriter, doc export.Document) {
	w.Header().Set("Content-Type", doc.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+doc.Filename+`"`)
	w.Header().Set("Content-Length", strconv.Itoa(len(doc.Body)))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(doc.Body)
}

// queryBool reads a boolean query parameter; anything unparsable is false.
func queryBool(r *http.Request, key string) bool {
	b, _ := strconv.ParseBool(r.URL.Query().Get(key))
	return b
}
