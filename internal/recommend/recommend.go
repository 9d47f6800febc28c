// Package recommend implements the catalog ranking used by the summaries
// listing. It derives per-user preference weights from view history and
// favorites, scores every book against them, and adds a recency bonus so
// fresh additions surface even for users with no history.
//
// The package is pure: it performs no I/O and holds no state between calls.
// Weights live for a single request.
package recommend

import (
	"sort"
	"time"

	"github.com/bookbriefapp/bookbrief-server/internal/domain"
)

const (
	// favoriteBonus is the extra weight a favorited book contributes to its
	// category and each tag, on top of the base increment of 1.
	favoriteBonus = 2

	// categoryMultiplier scales the category weight when scoring a book.
	// Tag weights are applied as-is.
	categoryMultiplier = 2

	// recencyMax is the bonus for a book younger than one recencyStep.
	recencyMax = 5

	// recencyStep is the age interval after which the recency bonus drops
	// by one. The bonus reaches zero at recencyMax*recencyStep.
	recencyStep = 30 * 24 * time.Hour
)

// Weights holds per-user preference weights for one request.
// Absent keys have weight zero.
type Weights struct {
	Category map[string]int
	Tag      map[string]int
}

// NewWeights returns empty weights, as used for anonymous requests.
func NewWeights() Weights {
	return Weights{
		Category: make(map[string]int),
		Tag:      make(map[string]int),
	}
}

// add increments the weights for one book occurrence by n.
func (w Weights) add(b *domain.Book, n int) {
	if b.Category != "" {
		w.Category[b.Category] += n
	}
	for _, tag := range b.Tags {
		w.Tag[tag] += n
	}
}

// BuildWeights derives preference weights from a user's engagement history.
// Every occurrence counts: a viewed book contributes 1 to its category and
// each of its tags, a favorited book contributes 1+favoriteBonus. A book that
// appears in both lists contributes from both; history is never deduplicated.
func BuildWeights(viewed, favorited []domain.Book) Weights {
	w := NewWeights()
	for i := range viewed {
		w.add(&viewed[i], 1)
	}
	for i := range favorited {
		w.add(&favorited[i], 1+favoriteBonus)
	}
	return w
}

// Score computes the recommendation score for one book at the given time.
//
// The category term is doubled relative to tags: a matching category is a
// stronger signal than any single tag. Duplicate tags on the book count once.
// The recency bonus starts at recencyMax for books younger than recencyStep
// and decreases by one per additional step, floored at zero, so scores are
// always non-negative.
func Score(b *domain.Book, w Weights, now time.Time) int {
	score := 0

	if b.Category != "" {
		if cw := w.Category[b.Category]; cw > 0 {
			score += cw * categoryMultiplier
		}
	}

	for _, tag := range b.UniqueTags() {
		if tw := w.Tag[tag]; tw > 0 {
			score += tw
		}
	}

	score += RecencyBonus(b.CreatedAt, now)

	return score
}

// RecencyBonus returns the additive score term for a book created at the
// given time, evaluated at now. Books created in the future score as age
// zero.
func RecencyBonus(createdAt, now time.Time) int {
	age := now.Sub(createdAt)
	if age < 0 {
		age = 0
	}
	steps := int(age / recencyStep)
	if steps >= recencyMax {
		return 0
	}
	return recencyMax - steps
}

// Entry is one catalog row to be ranked: a book with its summaries and the
// IDs of users who favorited it, as joined by the store.
type Entry struct {
	Book            domain.Book
	Summaries       []domain.Summary
	FavoriteUserIDs []string
	Views           []domain.BookView
}

// Rank scores and sorts catalog entries for one requester.
//
// Each entry is annotated with its first summary (nil when none), whether
// userID favorited it (always false for the empty user), and its score. The
// sort is stable: ties keep catalog iteration order, so the ranking is
// deterministic for a given catalog.
func Rank(entries []Entry, userID string, w Weights, now time.Time) []domain.RankedBook {
	ranked := make([]domain.RankedBook, 0, len(entries))
	for i := range entries {
		e := &entries[i]

		var summary *domain.Summary
		if len(e.Summaries) > 0 {
			summary = &e.Summaries[0]
		}

		isFavorite := false
		if userID != "" {
			for _, id := range e.FavoriteUserIDs {
				if id == userID {
					isFavorite = true
					break
				}
			}
		}

		ranked = append(ranked, domain.RankedBook{
			Book:                e.Book,
			Summary:             summary,
			IsFavorite:          isFavorite,
			RecommendationScore: Score(&e.Book, w, now),
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].RecommendationScore > ranked[j].RecommendationScore
	})

	return ranked
}
