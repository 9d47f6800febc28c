package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/bookbriefapp/bookbrief-server/internal/errors"
)

func TestFavoriteService_Toggle(t *testing.T) {
	env := newTestEnv(t)
	setup := env.setupAdmin(t)
	ctx := context.Background()

	env.addBook(t, "book-1", "Book One", "fiction", nil, time.Now())

	resp, err := env.favs.Toggle(ctx, setup.User.ID, "book-1")
	require.NoError(t, err)
	assert.Equal(t, "book-1", resp.BookID)
	assert.True(t, resp.IsFavorite)

	resp, err = env.favs.Toggle(ctx, setup.User.ID, "book-1")
	require.NoError(t, err)
	assert.False(t, resp.IsFavorite)

	resp, err = env.favs.Toggle(ctx, setup.User.ID, "book-1")
	require.NoError(t, err)
	assert.True(t, resp.IsFavorite)

	favorited, err := env.store.GetFavoritedBooks(ctx, setup.User.ID)
	require.NoError(t, err)
	require.Len(t, favorited, 1)
	assert.Equal(t, "book-1", favorited[0].ID)
}

func TestFavoriteService_Toggle_UnknownBook(t *testing.T) {
	env := newTestEnv(t)
	setup := env.setupAdmin(t)

	_, err := env.favs.Toggle(context.Background(), setup.User.ID, "book-missing")
	require.Error(t, err)

	var domainErr *domainerrors.Error
	require.True(t, errors.As(err, &domainErr))
	assert.Equal(t, domainerrors.CodeNotFound, domainErr.Code)
}
