package api

import (
	"bytes"
	"encoding/json/v2"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bookbriefapp/bookbrief-server/internal/ai"
	"github.com/bookbriefapp/bookbrief-server/internal/auth"
	"github.com/bookbriefapp/bookbrief-server/internal/http/response"
	"github.com/bookbriefapp/bookbrief-server/internal/search"
	"github.com/bookbriefapp/bookbrief-server/internal/service"
	"github.com/bookbriefapp/bookbrief-server/internal/store/sqlite"
)

// testKeyHex is a fixed 32-byte key for token signing in tests.
const testKeyHex = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

// setupTestServer creates a test server backed by a temp database and index.
func setupTestServer(t *testing.T) *Server {
	t.Helper()

	tmpDir := t.TempDir()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	s, err := sqlite.Open(filepath.Join(tmpDir, "test.db"), logger)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	index, err := search.NewIndex(search.Options{DataPath: tmpDir, Logger: logger})
	require.NoError(t, err)
	t.Cleanup(func() { _ = index.Close() })

	tokenService, err := auth.NewTokenService(testKeyHex, 15*time.Minute, 7*24*time.Hour)
	require.NoError(t, err)

	aiClient := ai.New(ai.Config{}, logger)
	t.Cleanup(aiClient.Close)

	sessionService := service.NewSessionService(s, tokenService, logger)
	authService := service.NewAuthService(s, tokenService, sessionService, logger)
	catalogService := service.NewCatalogService(s, logger)
	bookService := service.NewBookService(s, aiClient, index, logger)
	favoriteService := service.NewFavoriteService(s, logger)
	searchService := service.NewSearchService(index, logger)

	server := NewServer(s, authService, catalogService, bookService, favoriteService, searchService, logger)
	t.Cleanup(server.Close)

	return server
}

// doJSON performs a request with an optional JSON body and bearer token.
func doJSON(t *testing.T, server *Server, method, path string, body any, token string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader = http.NoBody
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	server.ServeHTTP(w, req)
	return w
}

// decodeEnvelope parses a response body into an envelope.
func decodeEnvelope(t *testing.T, w *httptest.ResponseRecorder) response.Envelope {
	t.Helper()

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	return envelope
}

// setupAdmin runs initial setup and returns the admin's access token.
func setupAdmin(t *testing.T, server *Server) string {
	t.Helper()

	w := doJSON(t, server, http.MethodPost, "/api/v1/auth/setup", map[string]any{
		"email":        "admin@example.com",
		"password":     "SecurePassword123!",
		"display_name": "Admin",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code)

	envelope := decodeEnvelope(t, w)
	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)

	token, ok := data["access_token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)
	return token
}

// createBook adds a book through the curation endpoint.
func createBook(t *testing.T, server *Server, adminToken, title, category string, tags []string) string {
	t.Helper()

	w := doJSON(t, server, http.MethodPost, "/api/v1/summaries", map[string]any{
		"title":    title,
		"author":   "Author",
		"category": category,
		"tags":     tags,
		"content":  "Summary of " + title,
	}, adminToken)
	require.Equal(t, http.StatusCreated, w.Code)

	envelope := decodeEnvelope(t, w)
	data, ok := envelope.Data.(map[string]any)
	require.True(t, ok)
	book, ok := data["book"].(map[string]any)
	require.True(t, ok)
	bookID, ok := book["id"].(string)
	require.True(t, ok)
	return bookID
}

func TestHealthCheck(t *testing.T) {
	server := setupTestServer(t)

	w := doJSON(t, server, http.MethodGet, "/health", nil, "")

	assert.Equal(t, http.StatusOK, w.Code)

	envelope := decodeEnvelope(t, w)
	assert.True(t, envelope.Success)
	assert.NotNil(t, envelope.Data)
}

func TestAuthRateLimit(t *testing.T) {
	server := setupTestServer(t)

	// The per-IP burst allows 5 auth requests; the next is rejected.
	var last int
	for i := 0; i < 6; i++ {
		w := doJSON(t, server, http.MethodPost, "/api/v1/auth/login", map[string]any{
			"email":    "nobody@example.com",
			"password": "wrong-password",
		}, "")
		last = w.Code
	}

	assert.Equal(t, http.StatusTooManyRequests, last)
}
