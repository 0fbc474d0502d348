package handlers

import (
	"net/http"

	"github.com/MrSnakeDoc/stash/internal/httpserver/deps"
)

func MigrationStatus(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Controller.Migration())
	}
}

// StartMigration uploads the preserved local config to the remote store.
// On failure the state returns to pending with the local data intact, so
// the call can simply be retried.
func StartMigration(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Controller.StartMigration(r.Context()); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, d.Controller.Migration())
	}
}

func SkipMigration(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Controller.SkipMigration(r.Context())
		writeJSON(w, http.StatusOK, d.Controller.Migration())
	}
}

func NeverMigrate(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Controller.NeverMigrate(r.Context())
		writeJSON(w, http.StatusOK, d.Controller.Migration())
	}
}

func ResetMigration(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		d.Controller.ResetMigrationDecision(r.Context())
		writeJSON(w, http.StatusOK, d.Controller.Migration())
	}
}
