package homepage

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/MrSnakeDoc/linker/internal/domain"
)

// MapServices converts services.yaml into link candidates.
// Group names become categories; entries without a usable href are skipped.
func MapServices(config ServicesConfig) ([]domain.Link, error) {
	var links []domain.Link

	for _, groupMap := range config {
		for group, services := range groupMap {
			for _, serviceMap := range services {
				for name, props := range serviceMap {
					if link, ok := candidate(group, name, props.Href); ok {
						links = append(links, link)
					}
				}
			}
		}
	}

	if len(links) == 0 {
		return nil, fmt.Errorf("no valid services found in homepage config")
	}
	return links, nil
}

// MapBookmarks converts bookmarks.yaml into link candidates.
// The bookmark name is the title; abbr is only a fallback when the name is blank.
func MapBookmarks(config BookmarksConfig) ([]domain.Link, error) {
	var links []domain.Link

	for _, category := range config {
		for group, bookmarks := range category {
			for _, bookmarkMap := range bookmarks {
				for name, entries := range bookmarkMap {
					// Each bookmark has a list with a single entry
					if len(entries) == 0 {
						continue
					}
					entry := entries[0]

					title := name
					if strings.TrimSpace(title) == "" {
						title = entry.Abbr
					}
					if link, ok := candidate(group, title, entry.Href); ok {
						links = append(links, link)
					}
				}
			}
		}
	}

	if len(links) == 0 {
		return nil, fmt.Errorf("no valid bookmarks found in config")
	}
	return links, nil
}

func candidate(group, title, href string) (domain.Link, bool) {
	href = strings.TrimSpace(href)
	if href == "" {
		return domain.Link{}, false
	}
	// Must at least look like an absolute URL to be openable
	u, err := url.Parse(href)
	if err != nil || u.Scheme == "" {
		return domain.Link{}, false
	}
	return domain.Link{
		URL:      href,
		Title:    strings.TrimSpace(title),
		Category: strings.TrimSpace(group),
	}, true
}
