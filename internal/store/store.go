// Package store defines the persistence interface for the BookBrief server.
// The SQLite implementation lives in the sqlite subpackage.
package store

import (
	"context"
	"time"

	"github.com/bookbriefapp/bookbrief-server/internal/domain"
)

// CatalogEntry is one row of the full catalog read: a book joined with its
// summaries, the IDs of users who favorited it, and its raw view events.
// This is the input contract of the recommendation ranking.
type CatalogEntry struct {
	Book            domain.Book
	Summaries       []domain.Summary
	FavoriteUserIDs []string
	Views           []domain.BookView
}

// ViewInsert describes one view event to record. ViewedAt is shared across a
// batch so every book returned by one listing carries the same timestamp.
type ViewInsert struct {
	UserID   string
	BookID   string
	ViewedAt time.Time
}

// Store is the persistence interface used by the services.
type Store interface {
	UserStore
	SessionStore
	BookStore
	SummaryStore
	FavoriteStore
	ViewStore

	Close() error
}

// UserStore manages user accounts.
type UserStore interface {
	CreateUser(ctx context.Context, user *domain.User) error
	GetUser(ctx context.Context, id string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	UpdateUser(ctx context.Context, user *domain.User) error
	CountUsers(ctx context.Context) (int, error)
}

// SessionStore manages refresh-token sessions.
type SessionStore interface {
	CreateSession(ctx context.Context, session *domain.Session) error
	GetSession(ctx context.Context, id string) (*domain.Session, error)

	// GetSessionByRefreshToken looks up an unexpired session by the hash of
	// its refresh token.
	GetSessionByRefreshToken(ctx context.Context, tokenHash string) (*domain.Session, error)
	UpdateSession(ctx context.Context, session *domain.Session) error
	DeleteSession(ctx context.Context, id string) error
	DeleteExpiredSessions(ctx context.Context, before time.Time) (int, error)
}

// BookStore manages the curated book catalog.
type BookStore interface {
	CreateBook(ctx context.Context, book *domain.Book) error
	GetBook(ctx context.Context, id string) (*domain.Book, error)
	UpdateBook(ctx context.Context, book *domain.Book) error
	DeleteBook(ctx context.Context, id string) error
	ListBooks(ctx context.Context) ([]*domain.Book, error)

	// GetCatalog returns every book joined with its summaries, favorite
	// user IDs, and view events, in stable creation order.
	GetCatalog(ctx context.Context) ([]CatalogEntry, error)
}

// SummaryStore manages summary content attached to books.
type SummaryStore interface {
	CreateSummary(ctx context.Context, summary *domain.Summary) error
	GetSummaryForBook(ctx context.Context, bookID string) (*domain.Summary, error)
	UpdateSummary(ctx context.Context, summary *domain.Summary) error
}

// FavoriteStore manages favorite toggles.
type FavoriteStore interface {
	// ToggleFavorite flips the favorite state for (userID, bookID) and
	// reports the new state: true when the favorite now exists.
	ToggleFavorite(ctx context.Context, userID, bookID string) (bool, error)

	// GetFavoritedBooks returns the books the user has favorited, joined
	// through the favorites table.
	GetFavoritedBooks(ctx context.Context, userID string) ([]domain.Book, error)
}

// ViewStore manages the insert-only view event log.
type ViewStore interface {
	// InsertViews records a batch of view events. Plain inserts, never
	// deduplicated: repeated listings accumulate rows.
	InsertViews(ctx context.Context, views []ViewInsert) error

	// GetViewedBooks returns the books from the user's entire view
	// history, one element per view event, most recent first.
	GetViewedBooks(ctx context.Context, userID string) ([]domain.Book, error)
}
