package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/stash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stash/internal/httpserver/handlers"
)

func init() { Register(registerMigration) }

func registerMigration(r chi.Router, d deps.Deps) {
	r.Get("/migration", handlers.MigrationStatus(d))
	r.Post("/migration/start", handlers.StartMigration(d))
	r.Post("/migration/skip", handlers.SkipMigration(d))
	r.Post("/migration/never", handlers.NeverMigrate(d))
	r.Post("/migration/reset", handlers.ResetMigration(d))
}
