package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/bookbriefapp/bookbrief-server/internal/store"
)

func TestGetCatalog(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateUser(ctx, makeTestUser("user-1", "alice@example.com")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	base := time.Now().Add(-time.Hour)
	for i, id := range []string{"book-a", "book-b"} {
		book := makeTestBook(id, "Book "+id)
		book.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		book.UpdatedAt = book.CreatedAt
		if err := s.CreateBook(ctx, book); err != nil {
			t.Fatalf("CreateBook %s: %v", id, err)
		}
	}

	if err := s.CreateSummary(ctx, makeTestSummary("sum-a", "book-a")); err != nil {
		t.Fatalf("CreateSummary: %v", err)
	}
	if _, err := s.ToggleFavorite(ctx, "user-1", "book-a"); err != nil {
		t.Fatalf("ToggleFavorite: %v", err)
	}
	if err := s.InsertViews(ctx, []store.ViewInsert{
		{UserID: "user-1", BookID: "book-b", ViewedAt: time.Now()},
	}); err != nil {
		t.Fatalf("InsertViews: %v", err)
	}

	entries, err := s.GetCatalog(ctx)
	if err != nil {
		t.Fatalf("GetCatalog: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}

	// Creation order holds.
	if entries[0].Book.ID != "book-a" || entries[1].Book.ID != "book-b" {
		t.Fatalf("unexpected order: %q, %q", entries[0].Book.ID, entries[1].Book.ID)
	}

	a, b := entries[0], entries[1]
	if len(a.Summaries) != 1 || a.Summaries[0].ID != "sum-a" {
		t.Errorf("book-a summaries: got %v", a.Summaries)
	}
	if len(a.FavoriteUserIDs) != 1 || a.FavoriteUserIDs[0] != "user-1" {
		t.Errorf("book-a favorites: got %v", a.FavoriteUserIDs)
	}
	if len(a.Views) != 0 {
		t.Errorf("book-a views: got %d, want 0", len(a.Views))
	}

	if len(b.Summaries) != 0 {
		t.Errorf("book-b summaries: got %d, want 0", len(b.Summaries))
	}
	if len(b.Views) != 1 || b.Views[0].UserID != "user-1" {
		t.Errorf("book-b views: got %v", b.Views)
	}
}

func TestGetCatalog_Empty(t *testing.T) {
	s := newTestStore(t)

	entries, err := s.GetCatalog(context.Background())
	if err != nil {
		t.Fatalf("GetCatalog: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("expected empty catalog, got %d entries", len(entries))
	}
}
