package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/stash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stash/internal/httpserver/handlers"
)

func init() { Register(registerConfig) }

func registerConfig(r chi.Router, d deps.Deps) {
	r.Get("/config", handlers.GetConfig(d))
	r.Get("/config/export", handlers.ExportConfig(d))
	r.Post("/config/import", handlers.ImportConfig(d))
	r.Delete("/config/remote", handlers.DeleteRemoteConfig(d))
	r.Post("/config/flush", handlers.FlushConfig(d))
}
