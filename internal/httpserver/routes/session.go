package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/stash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stash/internal/httpserver/handlers"
)

func init() { Register(registerSession) }

func registerSession(r chi.Router, d deps.Deps) {
	r.Get("/session", handlers.GetSession(d))
	r.Put("/session", handlers.SignIn(d))
	r.Delete("/session", handlers.SignOut(d))
}
