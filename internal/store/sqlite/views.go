package sqlite

import (
	"context"
	"fmt"

	"github.com/bookbriefapp/bookbrief-server/internal/domain"
	"github.com/bookbriefapp/bookbrief-server/internal/id"
	"github.com/bookbriefapp/bookbrief-server/internal/store"
)

// InsertViews records a batch of view events in a single transaction.
// Rows are plain inserts; the same user viewing the same book again adds
// another row.
func (s *Store) InsertViews(ctx context.Context, views []store.ViewInsert) error {
	if len(views) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("record views: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO book_views (id, user_id, book_id, viewed_at)
		VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("record views: %w", err)
	}
	defer stmt.Close()

	for _, v := range views {
		viewID, err := id.Generate("view")
		if err != nil {
			return err
		}
		if _, err := stmt.ExecContext(ctx, viewID, v.UserID, v.BookID, formatTime(v.ViewedAt)); err != nil {
			return fmt.Errorf("record views: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("record views: %w", err)
	}

	return nil
}

// GetViewedBooks returns the user's entire view history joined to books,
// one element per view event, most recent first. Books deleted since the
// view was recorded drop out of the join.
func (s *Store) GetViewedBooks(ctx context.Context, userID string) ([]domain.Book, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT b.id, b.created_at, b.updated_at, b.title, b.author, b.cover_url, b.category, b.tags
		FROM book_views v
		JOIN books b ON b.id = v.book_id
		WHERE v.user_id = ?
		ORDER BY v.viewed_at DESC, v.id DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("get view history: %w", err)
	}
	defer rows.Close()

	var books []domain.Book
	for rows.Next() {
		book, err := scanBook(rows)
		if err != nil {
			return nil, err
		}
		books = append(books, *book)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return books, nil
}
