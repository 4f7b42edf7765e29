package domain

// DefaultCategories returns the seed used when no categories are persisted.
func DefaultCategories() []string {
	return []string{"General", "Work", "Personal"}
}

// CloneCategories returns a copy of categories that shares no backing array with the input.
func CloneCategories(categories []string) []string {
	out := make([]string, len(categories))
	copy(out, categories)
	return out
}

// HasCategory reports whether name is one of categories.
func HasCategory(categories []string, name string) bool {
	for _, c := range categories {
		if c == name {
			return true
		}
	}
	return false
}

// FilterByCategory returns the links filed under category, in insertion order.
func FilterByCategory(links []Link, category string) []Link {
	out := make([]Link, 0)
	for _, l := range links {
		if l.Category == category {
			out = append(out, l)
		}
	}
	return out
}

// Orphans returns the links whose category matches none of categories.
func Orphans(links []Link, categories []string) []Link {
	known := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		known[c] = struct{}{}
	}

	out := make([]Link, 0)
	for _, l := range links {
		if _, ok := known[l.Category]; !ok {
			out = append(out, l)
		}
	}
	return out
}

// Section is one rendered category block.
type Section struct {
	Index    int    `json:"index"`
	Category string `json:"category"`
	Links    []Link `json:"links"`
}

// Sections is the render model: one Section per category in display order,
// plus the links no visible section shows.
type Sections struct {
	Sections []Section `json:"sections"`
	Orphans  []Link    `json:"orphans"`
}

// BuildSections groups links the way the list screen shows them.
// Duplicate category names each get their own section with the same links.
func BuildSections(links []Link, categories []string) Sections {
	sections := make([]Section, 0, len(categories))
	for i, c := range categories {
		sections = append(sections, Section{
			Index:    i,
			Category: c,
			Links:    FilterByCategory(links, c),
		})
	}
	return Sections{
		Sections: sections,
		Orphans:  Orphans(links, categories),
	}
}
