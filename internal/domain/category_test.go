package domain

import "testing"

func sampleLinks() []Link {
	return []Link{
		{ID: 1, Title: "Docs", URL: "https://example.com", Category: "Work"},
		{ID: 2, Title: "News", URL: "https://news.example.com", Category: "General"},
		{ID: 3, Title: "Wiki", URL: "https://wiki.example.com", Category: "Work"},
		{ID: 4, Title: "Old", URL: "https://old.example.com", Category: "Lavoro"},
	}
}

func TestFilterByCategory(t *testing.T) {
	got := FilterByCategory(sampleLinks(), "Work")
	if len(got) != 2 {
		t.Fatalf("FilterByCategory() returned %d links, want 2", len(got))
	}
	if got[0].ID != 1 || got[1].ID != 3 {
		t.Errorf("FilterByCategory() should keep insertion order, got ids %d, %d", got[0].ID, got[1].ID)
	}
	for _, l := range got {
		if l.Category != "Work" {
			t.Errorf("FilterByCategory() returned link in category %q", l.Category)
		}
	}

	if none := FilterByCategory(sampleLinks(), "Personal"); len(none) != 0 {
		t.Errorf("FilterByCategory() for empty category = %d links, want 0", len(none))
	}
}

func TestPartitionCoversAllLinks(t *testing.T) {
	links := sampleLinks()
	categories := DefaultCategories()

	seen := make(map[int64]int)
	for _, c := range categories {
		for _, l := range FilterByCategory(links, c) {
			seen[l.ID]++
		}
	}
	for _, l := range Orphans(links, categories) {
		seen[l.ID]++
	}

	if len(seen) != len(links) {
		t.Fatalf("partition covered %d links, want %d", len(seen), len(links))
	}
	for id, n := range seen {
		if n != 1 {
			t.Errorf("link %d appeared %d times in partition, want 1", id, n)
		}
	}
}

func TestOrphans(t *testing.T) {
	orphans := Orphans(sampleLinks(), DefaultCategories())
	if len(orphans) != 1 || orphans[0].ID != 4 {
		t.Errorf("Orphans() = %+v, want only link 4", orphans)
	}
}

func TestBuildSections(t *testing.T) {
	categories := []string{"Work", "General", "Work"}
	sections := BuildSections(sampleLinks(), categories)

	if len(sections.Sections) != 3 {
		t.Fatalf("BuildSections() = %d sections, want 3", len(sections.Sections))
	}
	for i, s := range sections.Sections {
		if s.Index != i {
			t.Errorf("section %d has index %d", i, s.Index)
		}
		if s.Category != categories[i] {
			t.Errorf("section %d category = %q, want %q", i, s.Category, categories[i])
		}
	}
	if len(sections.Sections[0].Links) != 2 || len(sections.Sections[2].Links) != 2 {
		t.Error("duplicate category names should each list the same links")
	}
	if len(sections.Orphans) != 1 {
		t.Errorf("BuildSections() orphans = %d, want 1", len(sections.Orphans))
	}
}

func TestCheckCategoryIndex(t *testing.T) {
	categories := DefaultCategories()
	for _, idx := range []int{0, 1, 2} {
		if err := CheckCategoryIndex(categories, idx); err != nil {
			t.Errorf("CheckCategoryIndex(%d) unexpected error %v", idx, err)
		}
	}
	for _, idx := range []int{-1, 3, 100} {
		err := CheckCategoryIndex(categories, idx)
		if !IsValidation(err) {
			t.Errorf("CheckCategoryIndex(%d) = %v, want validation error", idx, err)
		}
	}
}
