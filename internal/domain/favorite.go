package domain

import "time"

// Favorite marks a book as favorited by a user. At most one row exists per
// (user, book) pair; toggling removes the existing row instead of adding a
// second one.
type Favorite struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	BookID    string    `json:"book_id"`
	CreatedAt time.Time `json:"created_at"`
}

// BookView records that a user saw a book in a catalog listing. Rows are
// insert-only: every listing produces a fresh row per returned book, and the
// full history feeds preference derivation.
type BookView struct {
	ID       string    `json:"id"`
	UserID   string    `json:"user_id"`
	BookID   string    `json:"book_id"`
	ViewedAt time.Time `json:"viewed_at"`
}
