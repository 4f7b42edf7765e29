package linkstore

import (
	"context"
	"errors"

	"github.com/MrSnakeDoc/linker/internal/domain"
	"github.com/MrSnakeDoc/linker/internal/logger"
)

// ImportResult counts what happened to each candidate of an import.
type ImportResult struct {
	Added           int `json:"added"`
	Duplicates      int `json:"duplicates"`
	UnknownCategory int `json:"unknown_category"`
	Invalid         int `json:"invalid"`
}

// Import adds candidates through the same validation as AddLink.
// Candidate ids are ignored. A candidate whose url is already stored is
// skipped, so importing the same file twice adds nothing the second time.
func (s *Store) Import(ctx context.Context, candidates []domain.Link) ImportResult {
	s.mu.Lock()
	defer s.mu.Unlock()

	var res ImportResult
	for _, c := range candidates {
		if s.hasURLLocked(trim(c.URL)) {
			res.Duplicates++
			continue
		}

		_, err := s.addLocked(ctx, c.Title, c.URL, c.Category)
		switch {
		case err == nil:
			res.Added++
		case errors.Is(err, domain.ErrUnknownCategory):
			res.UnknownCategory++
			s.logger.Debug("import skipped link in unknown category",
				logger.String("title", c.Title),
				logger.String("category", c.Category))
		default:
			res.Invalid++
			s.logger.Debug("import skipped invalid link",
				logger.String("title", c.Title),
				logger.Error(err))
		}
	}

	s.logger.Info("import finished",
		logger.Int("added", res.Added),
		logger.Int("duplicates", res.Duplicates),
		logger.Int("unknown_category", res.UnknownCategory),
		logger.Int("invalid", res.Invalid))
	return res
}

func (s *Store) hasURLLocked(url string) bool {
	for _, l := range s.links {
		if l.URL == url {
			return true
		}
	}
	return false
}
