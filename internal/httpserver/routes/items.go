package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/stash/internal/httpserver/deps"
	"github.com/MrSnakeDoc/stash/internal/httpserver/handlers"
)

func init() { Register(registerItems) }

func registerItems(r chi.Router, d deps.Deps) {
	r.Post("/sections/{sectionID}/shortcuts", handlers.CreateShortcut(d))
	r.Post("/sections/{sectionID}/folders", handlers.CreateFolder(d))
	r.Put("/sections/{sectionID}/items/order", handlers.ReorderItems(d))
	r.Patch("/items/{itemID}", handlers.UpdateItem(d))
	r.Delete("/sections/{sectionID}/items/{itemID}", handlers.DeleteItem(d))
	r.Post("/items/move", handlers.MoveItem(d))
}
