package service

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/bookbriefapp/bookbrief-server/internal/domain"
	"github.com/bookbriefapp/bookbrief-server/internal/recommend"
	"github.com/bookbriefapp/bookbrief-server/internal/store"
)

// CatalogService produces the personalized summaries listing. For identified
// users it records view events and ranks the catalog by derived preference
// weights; for anonymous users it ranks by recency alone.
type CatalogService struct {
	store  store.Store
	logger *slog.Logger

	// now is swappable for tests.
	now func() time.Time
}

// NewCatalogService creates a new catalog service.
func NewCatalogService(store store.Store, logger *slog.Logger) *CatalogService {
	return &CatalogService{
		store:  store,
		logger: logger,
		now:    time.Now,
	}
}

// ListSummaries returns the full catalog ranked for the given user.
// userID is empty for anonymous requests.
//
// For identified users the listing itself is an engagement signal: one view
// event is recorded per returned book before ranking. The write is
// best-effort; a failed insert is logged and the listing proceeds, because a
// degraded history only weakens future personalization while a failed listing
// breaks the page.
func (s *CatalogService) ListSummaries(ctx context.Context, userID string) ([]domain.RankedBook, error) {
	entries, err := s.store.GetCatalog(ctx)
	if err != nil {
		return nil, fmt.Errorf("load catalog: %w", err)
	}

	now := s.now()
	weights := recommend.NewWeights()

	if userID != "" {
		s.recordViews(ctx, userID, entries, now)

		// History and favorites are independent reads.
		var viewed, favorited []domain.Book
		g, gctx := errgroup.WithContext(ctx)
		g.Go(func() error {
			var err error
			viewed, err = s.store.GetViewedBooks(gctx, userID)
			if err != nil {
				return fmt.Errorf("load view history: %w", err)
			}
			return nil
		})
		g.Go(func() error {
			var err error
			favorited, err = s.store.GetFavoritedBooks(gctx, userID)
			if err != nil {
				return fmt.Errorf("load favorites: %w", err)
			}
			return nil
		})
		if err := g.Wait(); err != nil {
			return nil, err
		}

		weights = recommend.BuildWeights(viewed, favorited)
	}

	ranked := recommend.Rank(toRankEntries(entries), userID, weights, now)
	return ranked, nil
}

// recordViews inserts one view event per catalog book for the user.
func (s *CatalogService) recordViews(ctx context.Context, userID string, entries []store.CatalogEntry, now time.Time) {
	if len(entries) == 0 {
		return
	}

	views := make([]store.ViewInsert, 0, len(entries))
	for _, entry := range entries {
		views = append(views, store.ViewInsert{
			UserID:   userID,
			BookID:   entry.Book.ID,
			ViewedAt: now,
		})
	}

	if err := s.store.InsertViews(ctx, views); err != nil {
		if s.logger != nil {
			s.logger.Warn("Failed to record view events",
				"user_id", userID,
				"count", len(views),
				"error", err,
			)
		}
	}
}

// toRankEntries converts store catalog rows into ranking input.
func toRankEntries(entries []store.CatalogEntry) []recommend.Entry {
	out := make([]recommend.Entry, 0, len(entries))
	for _, e := range entries {
		out = append(out, recommend.Entry{
			Book:            e.Book,
			Summaries:       e.Summaries,
			FavoriteUserIDs: e.FavoriteUserIDs,
			Views:           e.Views,
		})
	}
	return out
}
