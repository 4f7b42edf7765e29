package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linker/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linker/internal/httpserver/handlers"
)

func init() { Register(registerLinks) }

func registerLinks(r chi.Router, d deps.Deps) {
	read := guarded(r, d)
	read.Get("/api/links", handlers.ListLinks(d))
	read.Get("/api/links/{id}/open", handlers.OpenLink(d))
	read.Get("/api/sections", handlers.Sections(d))
	read.Get("/api/search", handlers.Search(d))

	write := limited(r, d)
	write.Post("/api/links", handlers.CreateLink(d))
	write.Delete("/api/links/{id}", handlers.DeleteLink(d))
}
