package recommend

import (
	"testing"
	"time"

	"github.com/bookbriefapp/bookbrief-server/internal/domain"
)

func makeBook(id, category string, tags []string, createdAt time.Time) domain.Book {
	return domain.Book{
		Entity: domain.Entity{
			ID:        id,
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		},
		Title:    "Book " + id,
		Author:   "Author",
		Category: category,
		Tags:     tags,
	}
}

func TestBuildWeights_ViewsCountOnce(t *testing.T) {
	now := time.Now()
	viewed := []domain.Book{
		makeBook("b1", "biz", []string{"leadership", "strategy"}, now),
		makeBook("b2", "biz", []string{"leadership"}, now),
	}

	w := BuildWeights(viewed, nil)

	if got := w.Category["biz"]; got != 2 {
		t.Errorf("category biz: got %d, want 2", got)
	}
	if got := w.Tag["leadership"]; got != 2 {
		t.Errorf("tag leadership: got %d, want 2", got)
	}
	if got := w.Tag["strategy"]; got != 1 {
		t.Errorf("tag strategy: got %d, want 1", got)
	}
}

func TestBuildWeights_FavoriteContributesThree(t *testing.T) {
	now := time.Now()
	fav := []domain.Book{makeBook("b1", "biz", []string{"leadership"}, now)}

	w := BuildWeights(nil, fav)

	if got := w.Category["biz"]; got != 3 {
		t.Errorf("category biz: got %d, want 3 (1 base + 2 bonus)", got)
	}
	if got := w.Tag["leadership"]; got != 3 {
		t.Errorf("tag leadership: got %d, want 3", got)
	}
}

func TestBuildWeights_ViewAndFavoriteAreAdditive(t *testing.T) {
	now := time.Now()
	book := makeBook("b1", "tech", []string{"ai"}, now)

	w := BuildWeights([]domain.Book{book}, []domain.Book{book})

	// 1 from the view plus 3 from the favorite, no dedup.
	if got := w.Category["tech"]; got != 4 {
		t.Errorf("category tech: got %d, want 4", got)
	}
	if got := w.Tag["ai"]; got != 4 {
		t.Errorf("tag ai: got %d, want 4", got)
	}
}

func TestBuildWeights_SkipsEmptyCategory(t *testing.T) {
	now := time.Now()
	w := BuildWeights([]domain.Book{makeBook("b1", "", []string{"x"}, now)}, nil)

	if len(w.Category) != 0 {
		t.Errorf("expected no category weights, got %v", w.Category)
	}
	if got := w.Tag["x"]; got != 1 {
		t.Errorf("tag x: got %d, want 1", got)
	}
}

func TestScore_CategoryDoubledTagsNot(t *testing.T) {
	now := time.Now()
	// Old book so the recency bonus is zero and only preference terms remain.
	old := now.Add(-200 * 24 * time.Hour)
	book := makeBook("b1", "biz", []string{"leadership"}, old)

	w := NewWeights()
	w.Category["biz"] = 3
	w.Tag["leadership"] = 3

	// 3*2 for category + 3 for tag.
	if got := Score(&book, w, now); got != 9 {
		t.Errorf("score: got %d, want 9", got)
	}
}

func TestScore_MonotonicInWeights(t *testing.T) {
	now := time.Now()
	old := now.Add(-200 * 24 * time.Hour)
	book := makeBook("b1", "biz", []string{"leadership"}, old)

	w := NewWeights()
	w.Category["biz"] = 1
	w.Tag["leadership"] = 1
	base := Score(&book, w, now)

	// +delta on the category weight adds exactly 2*delta.
	w.Category["biz"] += 4
	if got := Score(&book, w, now); got != base+8 {
		t.Errorf("category delta: got %d, want %d", got, base+8)
	}

	// +delta on a tag weight adds exactly delta.
	w.Tag["leadership"] += 5
	if got := Score(&book, w, now); got != base+8+5 {
		t.Errorf("tag delta: got %d, want %d", got, base+8+5)
	}
}

func TestScore_DuplicateTagsCountOnce(t *testing.T) {
	now := time.Now()
	old := now.Add(-200 * 24 * time.Hour)
	book := makeBook("b1", "", []string{"ai", "ai", "ai"}, old)

	w := NewWeights()
	w.Tag["ai"] = 2

	if got := Score(&book, w, now); got != 2 {
		t.Errorf("score: got %d, want 2 (duplicate tags must not multiply)", got)
	}
}

func TestScore_UnknownCategoryContributesZero(t *testing.T) {
	now := time.Now()
	old := now.Add(-200 * 24 * time.Hour)
	book := makeBook("b1", "history", []string{}, old)

	w := NewWeights()
	w.Category["biz"] = 10

	if got := Score(&book, w, now); got != 0 {
		t.Errorf("score: got %d, want 0", got)
	}
}

func TestScore_NeverNegative(t *testing.T) {
	now := time.Now()
	ancient := now.Add(-10 * 365 * 24 * time.Hour)
	book := makeBook("b1", "", nil, ancient)

	if got := Score(&book, NewWeights(), now); got != 0 {
		t.Errorf("score: got %d, want 0", got)
	}
}

func TestRecencyBonus(t *testing.T) {
	now := time.Now()
	day := 24 * time.Hour

	cases := []struct {
		name string
		age  time.Duration
		want int
	}{
		{"created now", 0, 5},
		{"29 days", 29 * day, 5},
		{"30 days", 30 * day, 4},
		{"59 days", 59 * day, 4},
		{"60 days", 60 * day, 3},
		{"120 days", 120 * day, 1},
		{"149 days", 149 * day, 1},
		{"150 days", 150 * day, 0},
		{"400 days", 400 * day, 0},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := RecencyBonus(now.Add(-tc.age), now); got != tc.want {
				t.Errorf("age %v: got %d, want %d", tc.age, got, tc.want)
			}
		})
	}
}

func TestRecencyBonus_MonotonicNonIncreasing(t *testing.T) {
	now := time.Now()
	prev := RecencyBonus(now, now)
	for days := 1; days <= 200; days++ {
		got := RecencyBonus(now.Add(-time.Duration(days)*24*time.Hour), now)
		if got > prev {
			t.Fatalf("bonus increased at age %d days: %d > %d", days, got, prev)
		}
		prev = got
	}
}

func TestRecencyBonus_FutureCreatedAt(t *testing.T) {
	now := time.Now()
	if got := RecencyBonus(now.Add(time.Hour), now); got != 5 {
		t.Errorf("future createdAt: got %d, want 5", got)
	}
}

func TestRank_AnonymousOrdersByRecency(t *testing.T) {
	now := time.Now()
	entries := []Entry{
		{Book: makeBook("old", "tech", nil, now.Add(-200*24*time.Hour))},
		{Book: makeBook("new", "biz", []string{"leadership"}, now)},
	}

	ranked := Rank(entries, "", NewWeights(), now)

	if ranked[0].ID != "new" || ranked[1].ID != "old" {
		t.Fatalf("order: got [%s %s], want [new old]", ranked[0].ID, ranked[1].ID)
	}
	if ranked[0].RecommendationScore != 5 {
		t.Errorf("new score: got %d, want 5", ranked[0].RecommendationScore)
	}
	if ranked[1].RecommendationScore != 0 {
		t.Errorf("old score: got %d, want 0", ranked[1].RecommendationScore)
	}
	if ranked[0].IsFavorite || ranked[1].IsFavorite {
		t.Error("anonymous request must never mark favorites")
	}
}

func TestRank_FavoriteWidensGap(t *testing.T) {
	now := time.Now()
	bookA := makeBook("a", "biz", []string{"leadership"}, now)
	bookB := makeBook("b", "tech", nil, now.Add(-200*24*time.Hour))

	entries := []Entry{{Book: bookA}, {Book: bookB}}

	// Requester favorited some book with category "biz".
	w := BuildWeights(nil, []domain.Book{makeBook("f", "biz", nil, now)})

	ranked := Rank(entries, "user-1", w, now)

	// 5 recency + 3*2 category.
	if ranked[0].ID != "a" || ranked[0].RecommendationScore != 11 {
		t.Errorf("bookA: got id=%s score=%d, want id=a score=11", ranked[0].ID, ranked[0].RecommendationScore)
	}
	if ranked[1].ID != "b" || ranked[1].RecommendationScore != 0 {
		t.Errorf("bookB: got id=%s score=%d, want id=b score=0", ranked[1].ID, ranked[1].RecommendationScore)
	}
}

func TestRank_TiesPreserveCatalogOrder(t *testing.T) {
	now := time.Now()
	entries := []Entry{
		{Book: makeBook("first", "", nil, now)},
		{Book: makeBook("second", "", nil, now)},
		{Book: makeBook("third", "", nil, now)},
	}

	ranked := Rank(entries, "", NewWeights(), now)

	want := []string{"first", "second", "third"}
	for i, id := range want {
		if ranked[i].ID != id {
			t.Errorf("position %d: got %s, want %s", i, ranked[i].ID, id)
		}
	}
}

func TestRank_AnnotatesSummaryAndFavorite(t *testing.T) {
	now := time.Now()
	summary := domain.Summary{
		Entity:  domain.Entity{ID: "sum-1"},
		BookID:  "a",
		Content: "A fine book.",
	}
	entries := []Entry{
		{
			Book:            makeBook("a", "biz", nil, now),
			Summaries:       []domain.Summary{summary},
			FavoriteUserIDs: []string{"user-1", "user-2"},
		},
		{Book: makeBook("b", "biz", nil, now)},
	}

	ranked := Rank(entries, "user-2", NewWeights(), now)

	var a, b *domain.RankedBook
	for i := range ranked {
		switch ranked[i].ID {
		case "a":
			a = &ranked[i]
		case "b":
			b = &ranked[i]
		}
	}

	if a.Summary == nil || a.Summary.ID != "sum-1" {
		t.Error("bookA: expected first summary to be attached")
	}
	if !a.IsFavorite {
		t.Error("bookA: expected is_favorite for user-2")
	}
	if b.Summary != nil {
		t.Error("bookB: expected nil summary")
	}
	if b.IsFavorite {
		t.Error("bookB: expected is_favorite false")
	}
}

func TestRank_AllScoresNonNegative(t *testing.T) {
	now := time.Now()
	entries := []Entry{
		{Book: makeBook("a", "x", []string{"t1"}, now.Add(-1000*24*time.Hour))},
		{Book: makeBook("b", "", nil, now)},
		{Book: makeBook("c", "y", []string{"t2", "t2"}, now.Add(-90*24*time.Hour))},
	}
	w := BuildWeights(
		[]domain.Book{makeBook("v", "x", []string{"t2"}, now)},
		[]domain.Book{makeBook("f", "y", []string{"t1"}, now)},
	)

	for _, rb := range Rank(entries, "user-1", w, now) {
		if rb.RecommendationScore < 0 {
			t.Errorf("book %s: negative score %d", rb.ID, rb.RecommendationScore)
		}
	}
}
