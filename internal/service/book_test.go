package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/bookbriefapp/bookbrief-server/internal/errors"
)

func TestBookService_CreateSummary(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.books.CreateSummary(ctx, CreateSummaryRequest{
		Title:    "Deep Work",
		Author:   "Cal Newport",
		Category: "productivity",
		Tags:     []string{"focus", "habits"},
		Content:  "Work deeply, without distraction.",
	})
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(resp.Book.ID, "book-"))
	assert.True(t, strings.HasPrefix(resp.Summary.ID, "sum-"))
	assert.Equal(t, resp.Book.ID, resp.Summary.BookID)
	assert.Equal(t, "Work deeply, without distraction.", resp.Summary.Content)
	assert.False(t, resp.Summary.HasNarration())

	// Persisted and indexed.
	stored, err := env.store.GetBook(ctx, resp.Book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Deep Work", stored.Title)

	count, err := env.index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), count)
}

func TestBookService_CreateSummary_EnrichmentSkippedWhenDisabled(t *testing.T) {
	env := newTestEnv(t)

	// The test environment has no API key, so Enhance and Narrate are
	// silently skipped and the draft is stored as-is.
	resp, err := env.books.CreateSummary(context.Background(), CreateSummaryRequest{
		Title:   "Atomic Habits",
		Author:  "James Clear",
		Content: "Small changes compound.",
		Enhance: true,
		Narrate: true,
	})
	require.NoError(t, err)
	assert.Equal(t, "Small changes compound.", resp.Summary.Content)
	assert.Empty(t, resp.Summary.AudioURL)
}

func TestBookService_CreateSummary_Validation(t *testing.T) {
	env := newTestEnv(t)

	_, err := env.books.CreateSummary(context.Background(), CreateSummaryRequest{
		Title:   "",
		Author:  "Someone",
		Content: "text",
	})
	require.Error(t, err)

	_, err = env.books.CreateSummary(context.Background(), CreateSummaryRequest{
		Title:    "Book",
		Author:   "Someone",
		Content:  "text",
		CoverURL: "not a url",
	})
	require.Error(t, err)
}

func TestBookService_UpdateBook(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.addBook(t, "book-1", "Old Title", "fiction", []string{"space"}, time.Now())

	newTitle := "New Title"
	newContent := "Rewritten summary."
	updated, err := env.books.UpdateBook(ctx, "book-1", UpdateBookRequest{
		Title:   &newTitle,
		Content: &newContent,
	})
	require.NoError(t, err)
	assert.Equal(t, "New Title", updated.Title)
	assert.Equal(t, "fiction", updated.Category)

	summary, err := env.store.GetSummaryForBook(ctx, "book-1")
	require.NoError(t, err)
	assert.Equal(t, "Rewritten summary.", summary.Content)
}

func TestBookService_UpdateBook_EmptyTitleRejected(t *testing.T) {
	env := newTestEnv(t)

	env.addBook(t, "book-1", "Title", "fiction", nil, time.Now())

	empty := ""
	_, err := env.books.UpdateBook(context.Background(), "book-1", UpdateBookRequest{Title: &empty})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domainerrors.CodeValidation, domainErr.Code)
}

func TestBookService_UpdateBook_NotFound(t *testing.T) {
	env := newTestEnv(t)

	title := "Title"
	_, err := env.books.UpdateBook(context.Background(), "book-missing", UpdateBookRequest{Title: &title})
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domainerrors.CodeNotFound, domainErr.Code)
}

func TestBookService_DeleteBook(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	resp, err := env.books.CreateSummary(ctx, CreateSummaryRequest{
		Title:   "Ephemeral",
		Author:  "Nobody",
		Content: "Soon gone.",
	})
	require.NoError(t, err)

	require.NoError(t, env.books.DeleteBook(ctx, resp.Book.ID))

	_, err = env.store.GetBook(ctx, resp.Book.ID)
	require.Error(t, err)

	count, err := env.index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(0), count)
}

func TestBookService_DeleteBook_NotFound(t *testing.T) {
	env := newTestEnv(t)

	err := env.books.DeleteBook(context.Background(), "book-missing")
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domainerrors.CodeNotFound, domainErr.Code)
}

func TestBookService_ReindexAll(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.addBook(t, "book-1", "Book One", "fiction", nil, time.Now())
	env.addBook(t, "book-2", "Book Two", "history", nil, time.Now())

	require.NoError(t, env.books.ReindexAll(ctx))

	count, err := env.index.DocumentCount()
	require.NoError(t, err)
	assert.Equal(t, uint64(2), count)
}
