package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/bookbriefapp/bookbrief-server/internal/domain"
	"github.com/bookbriefapp/bookbrief-server/internal/store"
)

const summaryColumns = `id, created_at, updated_at, book_id, content, audio_url`

func scanSummary(scanner interface{ Scan(dest ...any) error }) (*domain.Summary, error) {
	var s domain.Summary

	var (
		createdAt string
		updatedAt string
		audioURL  sql.NullString
	)

	err := scanner.Scan(
		&s.ID,
		&createdAt,
		&updatedAt,
		&s.BookID,
		&s.Content,
		&audioURL,
	)
	if err != nil {
		return nil, err
	}

	s.CreatedAt, err = parseTime(createdAt)
	if err != nil {
		return nil, err
	}
	s.UpdatedAt, err = parseTime(updatedAt)
	if err != nil {
		return nil, err
	}

	s.AudioURL = stringOrEmpty(audioURL)

	return &s, nil
}

// CreateSummary inserts a summary for a book.
func (s *Store) CreateSummary(ctx context.Context, summary *domain.Summary) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO summaries (id, created_at, updated_at, book_id, content, audio_url)
		VALUES (?, ?, ?, ?, ?, ?)`,
		summary.ID,
		formatTime(summary.CreatedAt),
		formatTime(summary.UpdatedAt),
		summary.BookID,
		summary.Content,
		nullString(summary.AudioURL),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return store.ErrAlreadyExists.WithMessage("summary already exists").WithCause(err)
		}
		return fmt.Errorf("create summary: %w", err)
	}

	return nil
}

// GetSummaryForBook retrieves the most recent summary attached to a book.
func (s *Store) GetSummaryForBook(ctx context.Context, bookID string) (*domain.Summary, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT `+summaryColumns+` FROM summaries WHERE book_id = ? ORDER BY created_at DESC LIMIT 1`,
		bookID)

	summary, err := scanSummary(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrNotFound.WithMessage("summary not found")
		}
		return nil, fmt.Errorf("get summary: %w", err)
	}

	return summary, nil
}

// UpdateSummary updates an existing summary.
func (s *Store) UpdateSummary(ctx context.Context, summary *domain.Summary) error {
	result, err := s.db.ExecContext(ctx, `
		UPDATE summaries SET updated_at = ?, content = ?, audio_url = ?
		WHERE id = ?`,
		formatTime(summary.UpdatedAt),
		summary.Content,
		nullString(summary.AudioURL),
		summary.ID,
	)
	if err != nil {
		return fmt.Errorf("update summary: %w", err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return store.ErrNotFound.WithMessage("summary not found")
	}

	return nil
}
