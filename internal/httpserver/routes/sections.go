package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/stash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stash/internal/httpserver/handlers"
)

func init() { Register(registerSections) }

func registerSections(r chi.Router, d deps.Deps) {
	r.Post("/sections", handlers.CreateSection(d))
	r.Patch("/sections/{sectionID}", handlers.UpdateSection(d))
	r.Delete("/sections/{sectionID}", handlers.DeleteSection(d))
	r.Put("/sections/order", handlers.ReorderSections(d))
}
