package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linker/internal/httpserver/deps"
)

type categoriesResponse struct {
	Categories []string `json:"categories"`
}

type renameCategoryRequest struct {
	Name string `json:"name"`
}

func ListCategories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, d.Logger, http.StatusOK, categoriesResponse{Categories: d.Store.Categories()})
	}
}

// RenameCategory renames the category at {index}. Links keep their old category.
func RenameCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		index, err := strconv.Atoi(chi.URLParam(r, "index"))
		if err != nil {
			writeError(w, d.Logger, http.StatusBadRequest, "invalid category index")
			return
		}

		var req renameCategoryRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeError(w, d.Logger, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}

		categories, err := d.Store.RenameCategory(r.Context(), index, req.Name)
		if err != nil {
			writeStoreError(w, d.Logger, err)
			return
		}
		writeJSON(w, d.Logger, http.StatusOK, categoriesResponse{Categories: categories})
	}
}
