package handlers

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/MrSnakeDoc/linker/internal/domain"
	"github.com/MrSnakeDoc/linker/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linker/internal/linkstore"
	"github.com/MrSnakeDoc/linker/internal/logger"
)

type linksResponse struct {
	Links []domain.Link `json:"links"`
}

type createLinkRequest struct {
	Title    string `json:"title"`
	URL      string `json:"url"`
	Category string `json:"category"`
}

type createLinkResponse struct {
	Link  domain.Link   `json:"link"`
	Links []domain.Link `json:"links"`
}

// ListLinks returns every link, or one category's links with ?category=
func ListLinks(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		links := d.Store.Links()
		if q := r.URL.Query(); q.Has("category") {
			links = linkstore.FilterByCategory(links, q.Get("category"))
		}
		writeJSON(w, d.Logger, http.StatusOK, linksResponse{Links: links})
	}
}

// CreateLink adds a link and returns it with the new snapshot
func CreateLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createLinkRequest
		if err := decodeBody(w, r, &req); err != nil {
			writeError(w, d.Logger, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}

		link, links, err := d.Store.AddLink(r.Context(), req.Title, req.URL, req.Category)
		if err != nil {
			writeStoreError(w, d.Logger, err)
			return
		}
		writeJSON(w, d.Logger, http.StatusCreated, createLinkResponse{Link: link, Links: links})
	}
}

// DeleteLink removes a link; deleting an unknown id is not an error
func DeleteLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := linkID(w, r, d)
		if !ok {
			return
		}
		links := d.Store.DeleteLink(r.Context(), id)
		writeJSON(w, d.Logger, http.StatusOK, linksResponse{Links: links})
	}
}

// OpenLink redirects to the stored url
func OpenLink(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := linkID(w, r, d)
		if !ok {
			return
		}
		link, found := d.Store.Get(id)
		if !found {
			writeError(w, d.Logger, http.StatusNotFound, "link not found")
			return
		}

		d.Logger.Info("opening link",
			logger.Int64("id", link.ID),
			logger.String("url", link.URL))
		http.Redirect(w, r, link.URL, http.StatusFound)
	}
}

func linkID(w http.ResponseWriter, r *http.Request, d deps.Deps) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeError(w, d.Logger, http.StatusBadRequest, "invalid link id")
		return 0, false
	}
	return id, true
}
