package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSearchService_Search(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.addBook(t, "book-1", "The Pragmatic Programmer", "technology", []string{"craft"}, time.Now())
	env.addBook(t, "book-2", "Project Hail Mary", "fiction", []string{"space"}, time.Now())
	require.NoError(t, env.books.ReindexAll(ctx))

	result, err := env.search.Search(ctx, SearchRequest{Query: "pragmatic"})
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "book-1", result.Hits[0].ID)

	// Category filter with an empty query matches all books in it.
	result, err = env.search.Search(ctx, SearchRequest{Category: "fiction"})
	require.NoError(t, err)
	require.Len(t, result.Hits, 1)
	assert.Equal(t, "book-2", result.Hits[0].ID)
}

func TestSearchService_Search_ClampsLimit(t *testing.T) {
	env := newTestEnv(t)
	ctx := context.Background()

	env.addBook(t, "book-1", "Book One", "fiction", nil, time.Now())
	require.NoError(t, env.books.ReindexAll(ctx))

	result, err := env.search.Search(ctx, SearchRequest{Limit: 100000})
	require.NoError(t, err)
	assert.Equal(t, uint64(1), result.Total)
}
