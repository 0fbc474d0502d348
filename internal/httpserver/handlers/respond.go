package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/cockroachdb/errors"

	"github.com/MrSnakeDoc/stash/internal/errs"
	"github.com/MrSnakeDoc/stash/internal/logger"
)

type errorResponse struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError maps the error taxonomy onto HTTP statuses. Unknown errors
// are 500s with a generic body; the detail stays in the logs.
func writeError(w http.ResponseWriter, log logger.Logger, err error) {
	status := http.StatusInternalServerError
	switch {
	case errs.IsNotFound(err):
		status = http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidImport), errors.Is(err, errs.ErrInvalidShortcut):
		status = http.StatusBadRequest
	case errs.IsCyclicMove(err):
		status = http.StatusConflict
	case errs.IsQuotaExceeded(err):
		status = http.StatusInsufficientStorage
	case errs.IsConnectivity(err):
		status = http.StatusServiceUnavailable
	case errors.Is(err, errs.ErrRemoteRejected):
		status = http.StatusBadGateway
	}

	if status == http.StatusInternalServerError {
		log.Error("request failed", logger.Error(err))
		writeJSON(w, status, errorResponse{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func decodeBody(r *http.Request, v interface{}) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorResponse{Error: msg})
}
