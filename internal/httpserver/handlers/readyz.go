package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/stash/internal/httpserver/deps"
)

type readyzResponse struct {
	Ready         bool   `json:"ready"`
	RemoteEnabled bool   `json:"remote_enabled"`
	LastSyncError string `json:"last_sync_error,omitempty"`
}

// Readyz reports readiness. A sync error does not flip readiness: the
// daemon keeps serving from local data while the remote is unreachable.
func Readyz(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		resp := readyzResponse{
			Ready:         true,
			RemoteEnabled: d.RemoteEnabled,
		}
		if err := d.Controller.LastSyncError(); err != nil {
			resp.LastSyncError = err.Error()
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
