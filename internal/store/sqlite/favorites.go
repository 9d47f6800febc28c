package sqlite

import (
	"context"
	"fmt"
	"time"

	"github.com/bookbriefapp/bookbrief-server/internal/domain"
	"github.com/bookbriefapp/bookbrief-server/internal/id"
)

// ToggleFavorite flips the favorite state for (userID, bookID). It deletes an
// existing row first; only when nothing was deleted does it insert one. The
// returned bool is the new state.
func (s *Store) ToggleFavorite(ctx context.Context, userID, bookID string) (bool, error) {
	result, err := s.db.ExecContext(ctx,
		`DELETE FROM favorites WHERE user_id = ? AND book_id = ?`, userID, bookID)
	if err != nil {
		return false, fmt.Errorf("toggle favorite: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	if affected > 0 {
		return false, nil
	}

	favID, err := id.Generate("fav")
	if err != nil {
		return false, err
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO favorites (id, user_id, book_id, created_at)
		VALUES (?, ?, ?, ?)`,
		favID, userID, bookID, formatTime(time.Now().UTC()),
	)
	if err != nil {
		if isUniqueViolation(err) {
			// Lost a race with a concurrent toggle for the same pair.
			return true, nil
		}
		return false, fmt.Errorf("toggle favorite: %w", err)
	}

	return true, nil
}

// GetFavoritedBooks returns the books the user has favorited, most recently
// favorited first.
func (s *Store) GetFavoritedBooks(ctx context.Context, userID string) ([]domain.Book, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT b.id, b.created_at, b.updated_at, b.title, b.author, b.cover_url, b.category, b.tags
		FROM favorites f
		JOIN books b ON b.id = f.book_id
		WHERE f.user_id = ?
		ORDER BY f.created_at DESC, f.id DESC`,
		userID)
	if err != nil {
		return nil, fmt.Errorf("get favorites: %w", err)
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
