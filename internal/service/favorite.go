package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	domainerrors "github.com/bookbriefapp/bookbrief-server/internal/errors"
	"github.com/bookbriefapp/bookbrief-server/internal/store"
)

// FavoriteService handles favorite toggles for identified users.
type FavoriteService struct {
	store  store.Store
	logger *slog.Logger
}

// NewFavoriteService creates a new favorite service.
func NewFavoriteService(store store.Store, logger *slog.Logger) *FavoriteService {
	return &FavoriteService{
		store:  store,
		logger: logger,
	}
}

// ToggleResponse reports the new favorite state after a toggle.
type ToggleResponse struct {
	BookID     string `json:"book_id"`
	IsFavorite bool   `json:"is_favorite"`
}

// Toggle flips the favorite state for (userID, bookID) and returns the new
// state. Toggling a nonexistent book is an error; toggling twice is a no-op
// pair.
func (s *FavoriteService) Toggle(ctx context.Context, userID, bookID string) (*ToggleResponse, error) {
	if _, err := s.store.GetBook(ctx, bookID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("book not found")
		}
		return nil, fmt.Errorf("get book: %w", err)
	}

	isFavorite, err := s.store.ToggleFavorite(ctx, userID, bookID)
	if err != nil {
		return nil, fmt.Errorf("toggle favorite: %w", err)
	}

	return &ToggleResponse{
		BookID:     bookID,
		IsFavorite: isFavorite,
	}, nil
}
