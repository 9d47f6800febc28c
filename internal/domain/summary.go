package domain

// Summary holds the text content for a book, optionally with synthesized
// narration. Each book has at most one summary in practice; the store keeps
// the relation open-ended and callers use the first row.
type Summary struct {
	Entity
	BookID   string `json:"book_id"`
	Content  string `json:"content"`
	AudioURL string `json:"audio_url,omitempty"`
}

// HasNarration reports whether the summary carries a narration reference.
func (s *Summary) HasNarration() bool {
	return s.AudioURL != ""
}
