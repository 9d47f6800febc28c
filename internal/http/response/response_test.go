package response

import (
	"encoding/json/v2"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domainerrors "github.com/bookbriefapp/bookbrief-server/internal/errors"
	"github.com/bookbriefapp/bookbrief-server/internal/store"
)

func TestJSON_Success(t *testing.T) {
	w := httptest.NewRecorder()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	JSON(w, http.StatusOK, map[string]string{"message": "test"}, logger)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json; charset=utf-8", w.Header().Get("Content-Type"))

	var result Envelope
	err := json.Unmarshal(w.Body.Bytes(), &result)
	require.NoError(t, err)

	assert.True(t, result.Success)
	assert.NotNil(t, result.Data)
	assert.Empty(t, result.Error)
}

func TestError_Envelope(t *testing.T) {
	w := httptest.NewRecorder()

	Error(w, http.StatusNotFound, "book not found", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)

	var result Envelope
	err := json.Unmarshal(w.Body.Bytes(), &result)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, "book not found", result.Error)
}

func TestHandleError_DomainError(t *testing.T) {
	w := httptest.NewRecorder()

	HandleError(w, domainerrors.NotFound("book not found"), nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHandleError_StoreSentinel(t *testing.T) {
	w := httptest.NewRecorder()

	HandleError(w, store.ErrAlreadyExists.WithMessage("email already in use"), nil)

	assert.Equal(t, http.StatusConflict, w.Code)
}

// Infrastructure failures come out of the store as plain wrapped errors and
// must surface as 500, never as a client error.
func TestHandleError_DatabaseFailure(t *testing.T) {
	w := httptest.NewRecorder()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	dbErr := fmt.Errorf("toggle favorite: %w", errors.New("database is locked"))
	HandleError(w, dbErr, logger)

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var result Envelope
	err := json.Unmarshal(w.Body.Bytes(), &result)
	require.NoError(t, err)

	assert.False(t, result.Success)
	assert.Equal(t, "internal server error", result.Error)
}
