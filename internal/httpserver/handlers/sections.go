package handlers

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/linker/internal/domain"
	"github.com/MrSnakeDoc/linker/internal/httpserver/deps"
)

type searchResponse struct {
	Query   string             `json:"query"`
	Matches []domain.LinkMatch `json:"matches"`
}

// Sections returns the grouped view: one block per category plus orphaned links
func Sections(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, d.Logger, http.StatusOK, d.Store.Sections())
	}
}

// Search ranks links against ?q=
func Search(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := strings.TrimSpace(r.URL.Query().Get("q"))
		if query == "" {
			writeError(w, d.Logger, http.StatusBadRequest, "missing query parameter q")
			return
		}
		writeJSON(w, d.Logger, http.StatusOK, searchResponse{
			Query:   query,
			Matches: d.Store.Search(query),
		})
	}
}
