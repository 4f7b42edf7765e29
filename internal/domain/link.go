package domain

// Link is a stored bookmark entry.
//
// The JSON shape is the persisted layout of the "links" key and must not change:
// { "id": int, "url": string, "title": string, "category": string }
type Link struct {
	// ID is the creation timestamp in Unix milliseconds.
	// Ids are strictly increasing in insertion order.
	ID int64 `json:"id"`

	// URL is the trimmed, non-empty target handed to the platform opener.
	URL string `json:"url"`

	// Title is the trimmed, non-empty display name.
	Title string `json:"title"`

	// Category is the category name the link was filed under at creation time.
	// It is not kept in sync with renames, so it may match no current category.
	Category string `json:"category"`
}

// CloneLinks returns a copy of links that shares no backing array with the input.
// A nil input yields an empty, non-nil slice so callers can always encode "[]".
func CloneLinks(links []Link) []Link {
	out := make([]Link, len(links))
	copy(out, links)
	return out
}

// FindLink returns the link with the given id.
func FindLink(links []Link, id int64) (Link, bool) {
	for _, l := range links {
		if l.ID == id {
			return l, true
		}
	}
	return Link{}, false
}

// RemoveLink returns links without the record matching id, and whether one was removed.
// The input is left untouched.
func RemoveLink(links []Link, id int64) ([]Link, bool) {
	out := make([]Link, 0, len(links))
	removed := false
	for _, l := range links {
		if l.ID == id {
			removed = true
			continue
		}
		out = append(out, l)
	}
	return out, removed
}

// NextID picks the id for a link created at nowMillis.
// It is nowMillis unless an existing id is already at or past it.
func NextID(links []Link, nowMillis int64) int64 {
	var maxID int64
	for _, l := range links {
		if l.ID > maxID {
			maxID = l.ID
		}
	}
	if nowMillis > maxID {
		return nowMillis
	}
	return maxID + 1
}
