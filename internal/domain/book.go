package domain

// Book represents a curated book in the catalog.
// Category is a single optional label; Tags is an unordered set of labels.
// Both feed the per-user preference weights used for ranking.
type Book struct {
	Entity
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	CoverURL string   `json:"cover_url,omitempty"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
}

// UniqueTags returns the book's tags with duplicates removed, preserving
// first-occurrence order. Duplicate tags on one book must not inflate its
// own score, so scoring always goes through this.
func (b *Book) UniqueTags() []string {
	if len(b.Tags) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(b.Tags))
	out := make([]string, 0, len(b.Tags))
	for _, tag := range b.Tags {
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		out = append(out, tag)
	}
	return out
}
