package service

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/bookbriefapp/bookbrief-server/internal/ai"
	"github.com/bookbriefapp/bookbrief-server/internal/auth"
	"github.com/bookbriefapp/bookbrief-server/internal/domain"
	"github.com/bookbriefapp/bookbrief-server/internal/id"
	"github.com/bookbriefapp/bookbrief-server/internal/search"
	"github.com/bookbriefapp/bookbrief-server/internal/store/sqlite"
)

const testAuthKey = "00000000000000000000000000000000000000000000000000000000000000aa"

// testEnv bundles the services wired against a temporary store and index.
type testEnv struct {
	store    *sqlite.Store
	index    *search.Index
	auth     *AuthService
	sessions *SessionService
	catalog  *CatalogService
	books    *BookService
	favs     *FavoriteService
	search   *SearchService
}

// newTestEnv creates the full service stack on temporary storage.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError}))

	dir := t.TempDir()
	s, err := sqlite.Open(filepath.Join(dir, "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	index, err := search.NewIndex(search.Options{DataPath: dir, Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	tokenService, err := auth.NewTokenService(testAuthKey, 15*time.Minute, 30*24*time.Hour)
	require.NoError(t, err)

	aiClient := ai.New(ai.Config{}, logger) // disabled: no API key
	t.Cleanup(aiClient.Close)

	sessions := NewSessionService(s, tokenService, logger)
	authService := NewAuthService(s, tokenService, sessions, logger)

	return &testEnv{
		store:    s,
		index:    index,
		auth:     authService,
		sessions: sessions,
		catalog:  NewCatalogService(s, logger),
		books:    NewBookService(s, aiClient, index, logger),
		favs:     NewFavoriteService(s, logger),
		search:   NewSearchService(index, logger),
	}
}

// setupAdmin runs Setup and returns the created admin.
func (e *testEnv) setupAdmin(t *testing.T) *AuthResponse {
	t.Helper()
	resp, err := e.auth.Setup(context.Background(), SetupRequest{
		Email:       "admin@example.com",
		Password:    "admin-password",
		DisplayName: "Admin",
	})
	require.NoError(t, err)
	return resp
}

// addBook inserts a catalog book with a summary directly through the store.
func (e *testEnv) addBook(t *testing.T, bookID, title, category string, tags []string, createdAt time.Time) *domain.Book {
	t.Helper()
	ctx := context.Background()

	book := &domain.Book{
		Entity: domain.Entity{
			ID:        bookID,
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		},
		Title:    title,
		Author:   "Author",
		Category: category,
		Tags:     tags,
	}
	require.NoError(t, e.store.CreateBook(ctx, book))

	summary := &domain.Summary{
		Entity: domain.Entity{
			ID:        id.MustGenerate("sum"),
			CreatedAt: createdAt,
			UpdatedAt: createdAt,
		},
		BookID:  bookID,
		Content: "Summary of " + title,
	}
	require.NoError(t, e.store.CreateSummary(ctx, summary))

	return book
}
