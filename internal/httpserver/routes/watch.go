package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/stash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stash/internal/httpserver/handlers"
)

func init() { Register(registerWatch) }

func registerWatch(r chi.Router, d deps.Deps) {
	r.Get("/watch", handlers.Watch(d))
}
