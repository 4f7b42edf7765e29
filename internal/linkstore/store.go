// Package linkstore owns the persisted links and categories.
//
// Every operation runs under one mutex held across the mutation and its
// persistence write, so mutations never interleave. Persistence failures are
// logged and dropped: the in-memory snapshot stays authoritative for the
// session and is never rolled back.
package linkstore

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/MrSnakeDoc/linker/internal/domain"
	"github.com/MrSnakeDoc/linker/internal/logger"
	"github.com/MrSnakeDoc/linker/internal/store"
)

// Options tunes the store. Zero values are valid.
type Options struct {
	// Retry controls re-attempts of failed writes.
	Retry RetryPolicy

	// Now is the clock used for link ids. Defaults to time.Now.
	Now func() time.Time
}

// Store is the single owner of the link and category snapshots.
type Store struct {
	mu         sync.Mutex
	backend    store.Backend
	logger     logger.Logger
	writer     *writer
	now        func() time.Time
	links      []domain.Link
	categories []string
	loaded     bool
}

// New creates a store on top of backend. Call Load before serving the snapshot.
// Until then the snapshot is empty links and the default categories.
func New(backend store.Backend, log logger.Logger, opts Options) *Store {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	return &Store{
		backend:    backend,
		logger:     log,
		writer:     newWriter(backend, log, opts.Retry),
		now:        now,
		links:      []domain.Link{},
		categories: domain.DefaultCategories(),
	}
}

// Load reads both collections from the backend and installs them.
// It never fails: unreadable data falls back to empty links and default categories.
func (s *Store) Load(ctx context.Context) {
	links := s.LoadLinks(ctx)
	categories := s.LoadCategories(ctx)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.links = links
	s.categories = categories
	s.loaded = true

	s.logger.Info("store loaded",
		logger.Int("links", len(links)),
		logger.Int("categories", len(categories)))
}

// Loaded reports whether Load has run.
func (s *Store) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// LoadLinks returns the persisted links, or an empty sequence when none exist
// or the payload cannot be read.
func (s *Store) LoadLinks(ctx context.Context) []domain.Link {
	var links []domain.Link
	if !s.read(ctx, store.KeyLinks, &links) {
		return []domain.Link{}
	}
	return domain.CloneLinks(links)
}

// LoadCategories returns the persisted categories, or the defaults when none
// exist or the payload cannot be read.
func (s *Store) LoadCategories(ctx context.Context) []string {
	var categories []string
	if !s.read(ctx, store.KeyCategories, &categories) || categories == nil {
		return domain.DefaultCategories()
	}
	return categories
}

// read decodes key into v. It returns false, after logging, on any failure.
func (s *Store) read(ctx context.Context, key string, v any) bool {
	data, err := s.backend.Get(ctx, key)
	if errors.Is(err, store.ErrNotFound) {
		s.logger.Debug("nothing persisted yet", logger.String("key", key))
		return false
	}
	if err != nil {
		s.logger.Error("failed to read persisted data",
			logger.String("key", key),
			logger.Error(err))
		return false
	}
	if err := decode(data, v); err != nil {
		s.logger.Error("persisted data is corrupt, ignoring it",
			logger.String("key", key),
			logger.Error(err))
		return false
	}
	return true
}

// Links returns a copy of the current links.
func (s *Store) Links() []domain.Link {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneLinks(s.links)
}

// Categories returns a copy of the current categories.
func (s *Store) Categories() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.CloneCategories(s.categories)
}

// Get returns the link with the given id.
func (s *Store) Get(id int64) (domain.Link, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.FindLink(s.links, id)
}

// Sections returns the render model of the current snapshot.
func (s *Store) Sections() domain.Sections {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.BuildSections(s.links, s.categories)
}

// Search ranks the current links against query.
func (s *Store) Search(query string) []domain.LinkMatch {
	s.mu.Lock()
	defer s.mu.Unlock()
	return domain.RankLinks(query, s.links)
}

// FilterByCategory projects links onto one category. It has no side effects.
func FilterByCategory(links []domain.Link, category string) []domain.Link {
	return domain.FilterByCategory(links, category)
}

// AddLink validates input, appends a new link and persists every link.
// On a validation error nothing changes and nothing is written.
func (s *Store) AddLink(ctx context.Context, title, url, category string) (domain.Link, []domain.Link, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	link, err := s.addLocked(ctx, title, url, category)
	if err != nil {
		return domain.Link{}, nil, err
	}
	return link, domain.CloneLinks(s.links), nil
}

func (s *Store) addLocked(ctx context.Context, title, url, category string) (domain.Link, error) {
	id := domain.NextID(s.links, s.now().UnixMilli())
	link, err := domain.NewLink(id, title, url, category, s.categories)
	if err != nil {
		return domain.Link{}, err
	}

	updated := make([]domain.Link, len(s.links), len(s.links)+1)
	copy(updated, s.links)
	s.links = append(updated, link)

	s.logger.Info("link added",
		logger.Int64("id", link.ID),
		logger.String("category", link.Category))
	s.persistLinksLocked(ctx)
	return link, nil
}

// DeleteLink removes the link with id, if any, and persists every link.
func (s *Store) DeleteLink(ctx context.Context, id int64) []domain.Link {
	s.mu.Lock()
	defer s.mu.Unlock()

	updated, removed := domain.RemoveLink(s.links, id)
	s.links = updated
	if removed {
		s.logger.Info("link deleted", logger.Int64("id", id))
	} else {
		s.logger.Debug("delete of unknown link", logger.Int64("id", id))
	}
	s.persistLinksLocked(ctx)
	return domain.CloneLinks(s.links)
}

// RenameCategory replaces the name at index and persists every category.
// The new name is trimmed; an empty name is accepted. Links filed under the
// old name keep it.
func (s *Store) RenameCategory(ctx context.Context, index int, newName string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := domain.CheckCategoryIndex(s.categories, index); err != nil {
		return nil, err
	}

	updated := domain.CloneCategories(s.categories)
	old := updated[index]
	updated[index] = trim(newName)
	s.categories = updated

	s.logger.Info("category renamed",
		logger.Int("index", index),
		logger.String("from", old),
		logger.String("to", updated[index]))
	s.persistCategoriesLocked(ctx)
	return domain.CloneCategories(s.categories), nil
}

// persistLinksLocked writes the whole link sequence; errors are logged only.
func (s *Store) persistLinksLocked(ctx context.Context) {
	if err := s.writer.write(ctx, store.KeyLinks, s.links); err != nil {
		s.logger.Error("failed to persist links, keeping in-memory state",
			logger.Int("links", len(s.links)),
			logger.Error(err))
	}
}

// persistCategoriesLocked writes the whole category sequence; errors are logged only.
func (s *Store) persistCategoriesLocked(ctx context.Context) {
	if err := s.writer.write(ctx, store.KeyCategories, s.categories); err != nil {
		s.logger.Error("failed to persist categories, keeping in-memory state",
			logger.Int("categories", len(s.categories)),
			logger.Error(err))
	}
}
