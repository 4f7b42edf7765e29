package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linker/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linker/internal/httpserver/handlers"
)

func init() { Register(registerCategories) }

func registerCategories(r chi.Router, d deps.Deps) {
	guarded(r, d).Get("/api/categories", handlers.ListCategories(d))
	limited(r, d).Put("/api/categories/{index}", handlers.RenameCategory(d))
}
