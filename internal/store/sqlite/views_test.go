package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/bookbriefapp/bookbrief-server/internal/store"
)

func TestInsertViewsAndGetViewedBooks(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateUser(ctx, makeTestUser("user-1", "alice@example.com")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	for _, id := range []string{"book-1", "book-2"} {
		if err := s.CreateBook(ctx, makeTestBook(id, "Book "+id)); err != nil {
			t.Fatalf("CreateBook %s: %v", id, err)
		}
	}

	first := time.Now().Add(-time.Hour)
	second := time.Now()

	if err := s.InsertViews(ctx, []store.ViewInsert{
		{UserID: "user-1", BookID: "book-1", ViewedAt: first},
		{UserID: "user-1", BookID: "book-2", ViewedAt: first},
	}); err != nil {
		t.Fatalf("InsertViews: %v", err)
	}
	if err := s.InsertViews(ctx, []store.ViewInsert{
		{UserID: "user-1", BookID: "book-1", ViewedAt: second},
	}); err != nil {
		t.Fatalf("InsertViews: %v", err)
	}

	books, err := s.GetViewedBooks(ctx, "user-1")
	if err != nil {
		t.Fatalf("GetViewedBooks: %v", err)
	}

	// One element per view event, not per distinct book.
	if len(books) != 3 {
		t.Fatalf("expected 3 view rows, got %d", len(books))
	}
	// Most recent first.
	if books[0].ID != "book-1" {
		t.Errorf("books[0]: got %q, want book-1", books[0].ID)
	}
}

func TestInsertViews_Empty(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.InsertViews(ctx, nil); err != nil {
		t.Fatalf("InsertViews with empty batch: %v", err)
	}
}

func TestGetViewedBooks_OtherUser(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	if err := s.CreateUser(ctx, makeTestUser("user-1", "alice@example.com")); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	if err := s.CreateBook(ctx, makeTestBook("book-1", "Deep Work")); err != nil {
		t.Fatalf("CreateBook: %v", err)
	}
	if err := s.InsertViews(ctx, []store.ViewInsert{
		{UserID: "user-1", BookID: "book-1", ViewedAt: time.Now()},
	}); err != nil {
		t.Fatalf("InsertViews: %v", err)
	}

	books, err := s.GetViewedBooks(ctx, "user-2")
	if err != nil {
		t.Fatalf("GetViewedBooks: %v", err)
	}
	if len(books) != 0 {
		t.Errorf("expected no views for other user, got %d", len(books))
	}
}
