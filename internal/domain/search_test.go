package domain

import "testing"

func TestScoreLink(t *testing.T) {
	tests := []struct {
		name           string
		query          string
		title          string
		url            string
		expectPositive bool
	}{
		{name: "exact title", query: "github", title: "GitHub", url: "https://github.com", expectPositive: true},
		{name: "prefix title", query: "git", title: "GitHub", url: "https://github.com", expectPositive: true},
		{name: "substring title", query: "hub", title: "GitHub", url: "https://github.com", expectPositive: true},
		{name: "multi-word title", query: "docker hub", title: "Docker Hub", url: "https://hub.docker.com", expectPositive: true},
		{name: "url only", query: "pkg.go.dev", title: "Go packages", url: "https://pkg.go.dev", expectPositive: true},
		{name: "no match", query: "xyz", title: "GitHub", url: "https://github.com", expectPositive: false},
		{name: "empty query", query: "   ", title: "GitHub", url: "https://github.com", expectPositive: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score := ScoreLink(tt.query, Link{ID: 1, Title: tt.title, URL: tt.url, Category: "Work"})
			if tt.expectPositive && score <= 0 {
				t.Errorf("Expected positive score, got %f", score)
			}
			if !tt.expectPositive && score > 0 {
				t.Errorf("Expected zero score, got %f", score)
			}
		})
	}
}

func TestScoreLinkPrefersTitle(t *testing.T) {
	onTitle := ScoreLink("docs", Link{Title: "Docs", URL: "https://example.com"})
	onURL := ScoreLink("docs", Link{Title: "Manual", URL: "https://docs.example.com"})
	if onTitle <= onURL {
		t.Errorf("title match %f should outrank url match %f", onTitle, onURL)
	}
}

func TestRankLinks(t *testing.T) {
	links := []Link{
		{ID: 1, Title: "Go blog", URL: "https://go.dev/blog"},
		{ID: 2, Title: "Go", URL: "https://go.dev"},
		{ID: 3, Title: "Rust", URL: "https://www.rust-lang.org"},
	}

	matches := RankLinks("go", links)
	if len(matches) < 2 {
		t.Fatalf("RankLinks() returned %d matches, want at least 2", len(matches))
	}
	if matches[0].Link.ID != 2 {
		t.Errorf("RankLinks() top = %d, want exact title match 2", matches[0].Link.ID)
	}
	for i := 1; i < len(matches); i++ {
		if matches[i-1].Score < matches[i].Score {
			t.Errorf("RankLinks() not sorted at %d", i)
		}
	}
}
