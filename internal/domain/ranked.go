package domain

// RankedBook is a catalog book annotated for one response: its summary (or
// nil when none exists yet), whether the requesting user favorited it, and
// the recommendation score it was ranked by. Never persisted.
type RankedBook struct {
	Book
	Summary             *Summary `json:"summary"`
	IsFavorite          bool     `json:"is_favorite"`
	RecommendationScore int      `json:"recommendation_score"`
}
