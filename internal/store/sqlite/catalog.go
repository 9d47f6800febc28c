package sqlite

import (
	"context"
	"fmt"

	"github.com/bookbriefapp/bookbrief-server/internal/domain"
	"github.com/bookbriefapp/bookbrief-server/internal/store"
)

// GetCatalog assembles the full catalog read: every book in creation order,
// each joined with its summaries, favorite user IDs, and raw view events.
// Four straight queries grouped in memory; the catalog is curated and small
// enough that this beats a wide multi-join.
func (s *Store) GetCatalog(ctx context.Context) ([]store.CatalogEntry, error) {
	books, err := s.ListBooks(ctx)
	if err != nil {
		return nil, err
	}

	summaries, err := s.summariesByBook(ctx)
	if err != nil {
		return nil, err
	}

	favorites, err := s.favoriteUserIDsByBook(ctx)
	if err != nil {
		return nil, err
	}

	views, err := s.viewsByBook(ctx)
	if err != nil {
		return nil, err
	}

	entries := make([]store.CatalogEntry, 0, len(books))
	for _, book := range books {
		entries = append(entries, store.CatalogEntry{
			Book:            *book,
			Summaries:       summaries[book.ID],
			FavoriteUserIDs: favorites[book.ID],
			Views:           views[book.ID],
		})
	}

	return entries, nil
}

func (s *Store) summariesByBook(ctx context.Context) (map[string][]domain.Summary, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+summaryColumns+` FROM summaries ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("load summaries: %w", err)
	}
	defer rows.Close()

	byBook := make(map[string][]domain.Summary)
	for rows.Next() {
		summary, err := scanSummary(rows)
		if err != nil {
			return nil, err
		}
		byBook[summary.BookID] = append(byBook[summary.BookID], *summary)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return byBook, nil
}

func (s *Store) favoriteUserIDsByBook(ctx context.Context) (map[string][]string, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT book_id, user_id FROM favorites ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("load favorites: %w", err)
	}
	defer rows.Close()

	byBook := make(map[string][]string)
	for rows.Next() {
		var bookID, userID string
		if err := rows.Scan(&bookID, &userID); err != nil {
			return nil, err
		}
		byBook[bookID] = append(byBook[bookID], userID)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return byBook, nil
}

func (s *Store) viewsByBook(ctx context.Context) (map[string][]domain.BookView, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, user_id, book_id, viewed_at FROM book_views ORDER BY viewed_at ASC, id ASC`)
	if err != nil {
		return nil, fmt.Errorf("load views: %w", err)
	}
	defer rows.Close()

	byBook := make(map[string][]domain.BookView)
	for rows.Next() {
		var (
			view     domain.BookView
			viewedAt string
		)
		if err := rows.Scan(&view.ID, &view.UserID, &view.BookID, &viewedAt); err != nil {
			return nil, err
		}
		view.ViewedAt, err = parseTime(viewedAt)
		if err != nil {
			return nil, err
		}
		byBook[view.BookID] = append(byBook[view.BookID], view)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return byBook, nil
}
