package handlers

import (
	"io"
	"net/http"

	"github.com/MrSnakeDoc/stash/internal/httpserver/deps"
)

// 1 MiB is plenty for a config that must also fit the 100 KiB sync quota.
const maxImportBytes = 1 << 20

// GetConfig returns the reconciled config (remote, cache fallback or
// local, depending on session state and connectivity).
func GetConfig(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := d.Controller.Load(r.Context())
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, cfg)
	}
}

func ExportConfig(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := d.Controller.Export(r.Context())
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="stash-config.json"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(payload)
	}
}

// ImportConfig replaces the whole config with the posted payload.
func ImportConfig(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload, err := io.ReadAll(io.LimitReader(r.Body, maxImportBytes))
		if err != nil {
			badRequest(w, "failed to read body")
			return
		}
		cfg, err := d.Controller.Import(r.Context(), payload)
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		writeJSON(w, http.StatusOK, cfg)
	}
}

// DeleteRemoteConfig removes the signed-in user's remote document.
func DeleteRemoteConfig(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := d.Controller.DeleteRemote(r.Context()); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// FlushConfig forces any debounced save to complete before returning.
func FlushConfig(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cfg, err := d.Controller.Load(r.Context())
		if err != nil {
			writeError(w, d.Logger, err)
			return
		}
		if err := d.Controller.SaveNow(r.Context(), cfg); err != nil {
			writeError(w, d.Logger, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}
