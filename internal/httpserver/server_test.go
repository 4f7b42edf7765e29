package httpserver

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/MrSnakeDoc/linker/internal/domain"
	"github.com/MrSnakeDoc/linker/internal/httpserver/deps"
	"github.com/MrSnakeDoc/linker/internal/linkstore"
	"github.com/MrSnakeDoc/linker/internal/logger"
	"github.com/MrSnakeDoc/linker/internal/store/memory"
)

type testServer struct {
	handler http.Handler
	store   *linkstore.Store
	trigger chan struct{}
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	log := logger.NewNop()
	backend := memory.New()
	st := linkstore.New(backend, log, linkstore.Options{})
	st.Load(context.Background())

	trigger := make(chan struct{}, 1)
	h := NewRouter(deps.Deps{
		Logger:        log,
		StartTime:     time.Now(),
		Version:       "test",
		Store:         st,
		Backend:       backend,
		RateLimit:     deps.RateLimit{Burst: 100, RefillPerM: 60},
		ImportTrigger: trigger,
	})
	return &testServer{handler: h, store: st, trigger: trigger}
}

func (s *testServer) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decodeJSON[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

type linksBody struct {
	Link  domain.Link   `json:"link"`
	Links []domain.Link `json:"links"`
}

func TestCreateAndListLinks(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/links", `{"title":" Docs ","url":"https://example.com","category":"Work"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("POST /api/links status = %d, body = %s", rec.Code, rec.Body)
	}
	created := decodeJSON[linksBody](t, rec)
	if created.Link.Title != "Docs" || created.Link.Category != "Work" {
		t.Errorf("created link = %+v", created.Link)
	}
	if len(created.Links) != 1 {
		t.Errorf("snapshot len = %d, want 1", len(created.Links))
	}

	rec = s.do(t, http.MethodGet, "/api/links?category=Work", "")
	if got := decodeJSON[linksBody](t, rec).Links; len(got) != 1 {
		t.Errorf("GET ?category=Work = %d links, want 1", len(got))
	}

	rec = s.do(t, http.MethodGet, "/api/links?category=Personal", "")
	got := decodeJSON[linksBody](t, rec).Links
	if got == nil || len(got) != 0 {
		t.Errorf("GET ?category=Personal = %v, want empty array", got)
	}
}

func TestCreateLinkRejections(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{"empty title", `{"title":"  ","url":"https://a","category":"Work"}`, http.StatusUnprocessableEntity},
		{"empty url", `{"title":"A","url":"","category":"Work"}`, http.StatusUnprocessableEntity},
		{"unknown category", `{"title":"A","url":"https://a","category":"Nope"}`, http.StatusUnprocessableEntity},
		{"malformed json", `{"title":`, http.StatusBadRequest},
		{"unknown field", `{"title":"A","url":"https://a","category":"Work","x":1}`, http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestServer(t)
			rec := s.do(t, http.MethodPost, "/api/links", tt.body)
			if rec.Code != tt.want {
				t.Errorf("status = %d, want %d (body %s)", rec.Code, tt.want, rec.Body)
			}
			if n := len(s.store.Links()); n != 0 {
				t.Errorf("store has %d links after rejection", n)
			}
		})
	}
}

func TestDeleteLink(t *testing.T) {
	s := newTestServer(t)
	link, _, err := s.store.AddLink(context.Background(), "A", "https://a", "General")
	if err != nil {
		t.Fatal(err)
	}

	rec := s.do(t, http.MethodDelete, "/api/links/999", "")
	if rec.Code != http.StatusOK || len(decodeJSON[linksBody](t, rec).Links) != 1 {
		t.Errorf("delete unknown id: status %d body %s", rec.Code, rec.Body)
	}

	rec = s.do(t, http.MethodDelete, "/api/links/"+itoa(link.ID), "")
	if rec.Code != http.StatusOK || len(decodeJSON[linksBody](t, rec).Links) != 0 {
		t.Errorf("delete existing id: status %d body %s", rec.Code, rec.Body)
	}

	if rec := s.do(t, http.MethodDelete, "/api/links/abc", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("delete bad id status = %d, want 400", rec.Code)
	}
}

func TestOpenLink(t *testing.T) {
	s := newTestServer(t)
	link, _, err := s.store.AddLink(context.Background(), "A", "https://example.com/a", "General")
	if err != nil {
		t.Fatal(err)
	}

	rec := s.do(t, http.MethodGet, "/api/links/"+itoa(link.ID)+"/open", "")
	if rec.Code != http.StatusFound {
		t.Fatalf("status = %d, want 302", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != "https://example.com/a" {
		t.Errorf("Location = %q", loc)
	}

	if rec := s.do(t, http.MethodGet, "/api/links/42/open", ""); rec.Code != http.StatusNotFound {
		t.Errorf("unknown id status = %d, want 404", rec.Code)
	}
}

func TestRenameCategoryRoute(t *testing.T) {
	s := newTestServer(t)
	if _, _, err := s.store.AddLink(context.Background(), "A", "https://a", "Work"); err != nil {
		t.Fatal(err)
	}

	rec := s.do(t, http.MethodPut, "/api/categories/1", `{"name":"Job"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body)
	}
	cats := decodeJSON[struct {
		Categories []string `json:"categories"`
	}](t, rec).Categories
	if len(cats) != 3 || cats[1] != "Job" {
		t.Errorf("categories = %v", cats)
	}

	// links keep the old name and show up as orphans
	sections := decodeJSON[domain.Sections](t, s.do(t, http.MethodGet, "/api/sections", ""))
	if len(sections.Orphans) != 1 || sections.Orphans[0].Category != "Work" {
		t.Errorf("orphans = %+v", sections.Orphans)
	}

	tests := []struct {
		target string
		body   string
		want   int
	}{
		{"/api/categories/3", `{"name":"X"}`, http.StatusUnprocessableEntity},
		{"/api/categories/-1", `{"name":"X"}`, http.StatusUnprocessableEntity},
		{"/api/categories/x", `{"name":"X"}`, http.StatusBadRequest},
		{"/api/categories/0", `nope`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		if rec := s.do(t, http.MethodPut, tt.target, tt.body); rec.Code != tt.want {
			t.Errorf("PUT %s status = %d, want %d", tt.target, rec.Code, tt.want)
		}
	}
}

func TestSearchRoute(t *testing.T) {
	s := newTestServer(t)
	ctx := context.Background()
	_, _, _ = s.store.AddLink(ctx, "Grafana", "https://grafana.local", "Work")
	_, _, _ = s.store.AddLink(ctx, "Recipes", "https://food.local", "Personal")

	rec := s.do(t, http.MethodGet, "/api/search?q=graf", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	res := decodeJSON[struct {
		Matches []domain.LinkMatch `json:"matches"`
	}](t, rec)
	if len(res.Matches) == 0 || res.Matches[0].Link.Title != "Grafana" {
		t.Errorf("matches = %+v", res.Matches)
	}

	if rec := s.do(t, http.MethodGet, "/api/search", ""); rec.Code != http.StatusBadRequest {
		t.Errorf("missing q status = %d, want 400", rec.Code)
	}
}

func TestHealthAndReady(t *testing.T) {
	s := newTestServer(t)

	if rec := s.do(t, http.MethodGet, "/healthz", ""); rec.Code != http.StatusOK {
		t.Errorf("/healthz status = %d", rec.Code)
	}
	rec := s.do(t, http.MethodGet, "/readyz", "")
	if rec.Code != http.StatusOK {
		t.Errorf("/readyz status = %d, body %s", rec.Code, rec.Body)
	}
}

func TestReadyzBeforeLoad(t *testing.T) {
	log := logger.NewNop()
	backend := memory.New()
	h := NewRouter(deps.Deps{
		Logger:  log,
		Store:   linkstore.New(backend, log, linkstore.Options{}),
		Backend: backend,
	})
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("/readyz before load = %d, want 503", rec.Code)
	}
}

func TestReloadTrigger(t *testing.T) {
	s := newTestServer(t)

	if rec := s.do(t, http.MethodPost, "/reload", ""); rec.Code != http.StatusAccepted {
		t.Errorf("first reload = %d, want 202", rec.Code)
	}
	if rec := s.do(t, http.MethodPost, "/reload", ""); rec.Code != http.StatusTooManyRequests {
		t.Errorf("pending reload = %d, want 429", rec.Code)
	}
	<-s.trigger
	if rec := s.do(t, http.MethodPost, "/reload", ""); rec.Code != http.StatusAccepted {
		t.Errorf("reload after drain = %d, want 202", rec.Code)
	}
}

func itoa(id int64) string {
	b, _ := json.Marshal(id)
	return string(b)
}
