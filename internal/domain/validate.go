package domain

import (
	"fmt"
	"strings"
)

// NewLink validates user input and builds a record with the given id.
// Title and url are trimmed; category must be one of categories.
func NewLink(id int64, title, url, category string, categories []string) (Link, error) {
	title = strings.TrimSpace(title)
	url = strings.TrimSpace(url)

	if title == "" {
		return Link{}, ErrEmptyTitle
	}
	if url == "" {
		return Link{}, ErrEmptyURL
	}
	if !HasCategory(categories, category) {
		return Link{}, fmt.Errorf("%w: %q", ErrUnknownCategory, category)
	}

	return Link{
		ID:       id,
		URL:      url,
		Title:    title,
		Category: category,
	}, nil
}

// CheckCategoryIndex rejects an index outside categories.
func CheckCategoryIndex(categories []string, index int) error {
	if index < 0 || index >= len(categories) {
		return fmt.Errorf("%w: %d (have %d)", ErrCategoryIndex, index, len(categories))
	}
	return nil
}
