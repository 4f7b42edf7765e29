package domain

import (
	"sort"
	"strings"
)

const (
	// Scoring weights
	ScoreExactMatch     = 100.0
	ScorePrefixMatch    = 75.0
	ScoreSubstringMatch = 50.0
	ScoreFuzzyMatch     = 25.0

	// Position bonus (earlier is better)
	ScorePositionBonus = 10.0

	// Matches on the title outrank matches on the url
	ScoreTitleBonus = 200.0

	// Minimum character similarity for a fuzzy hit
	similarityThreshold = 0.5
)

// LinkMatch is a link with its match score.
type LinkMatch struct {
	Link  Link    `json:"link"`
	Score float64 `json:"score"`
}

// ScoreLink scores a link against a query, 0 meaning no match.
// The title is tried first; the url is only used when the title misses.
func ScoreLink(query string, link Link) float64 {
	query = strings.ToLower(strings.TrimSpace(query))
	if query == "" {
		return 0.0
	}

	if s := scoreText(query, strings.ToLower(link.Title)); s > 0 {
		return s + ScoreTitleBonus
	}
	return scoreText(query, strings.ToLower(link.URL))
}

func scoreText(query, text string) float64 {
	if text == "" {
		return 0.0
	}

	if query == text {
		return ScoreExactMatch
	}

	if strings.HasPrefix(text, query) {
		return ScorePrefixMatch
	}

	if idx := strings.Index(text, query); idx >= 0 {
		// Earlier substring matches get higher score
		return ScoreSubstringMatch + ScorePositionBonus*(1.0-float64(idx)/float64(len(text)))
	}

	// Every query word somewhere in the text
	if words := strings.Fields(query); len(words) > 1 {
		allMatch := true
		for _, word := range words {
			if !strings.Contains(text, word) {
				allMatch = false
				break
			}
		}
		if allMatch {
			return ScoreFuzzyMatch
		}
	}

	if sim := similarity(query, text); sim > similarityThreshold {
		return ScoreFuzzyMatch * sim
	}

	return 0.0
}

// similarity is the ratio of query runes that appear anywhere in text.
func similarity(query, text string) float64 {
	if query == "" || text == "" {
		return 0.0
	}

	runes := []rune(query)
	matches := 0
	for _, c := range runes {
		if strings.ContainsRune(text, c) {
			matches++
		}
	}
	return float64(matches) / float64(len(runes))
}

// RankLinks returns the links matching query, best first.
// Equal scores keep insertion order.
func RankLinks(query string, links []Link) []LinkMatch {
	matches := make([]LinkMatch, 0, len(links))
	for _, l := range links {
		score := ScoreLink(query, l)
		if score == 0.0 {
			continue
		}
		matches = append(matches, LinkMatch{Link: l, Score: score})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		return matches[i].Score > matches[j].Score
	})

	return matches
}
