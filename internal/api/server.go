// Package api provides the HTTP API server and handlers for the BookBrief application.
package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bookbriefapp/bookbrief-server/internal/http/response"
	"github.com/bookbriefapp/bookbrief-server/internal/ratelimit"
	"github.com/bookbriefapp/bookbrief-server/internal/service"
	"github.com/bookbriefapp/bookbrief-server/internal/store"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store           store.Store
	authService     *service.AuthService
	catalogService  *service.CatalogService
	bookService     *service.BookService
	favoriteService *service.FavoriteService
	searchService   *service.SearchService
	loginLimiter    *ratelimit.KeyedRateLimiter
	router          *chi.Mux
	logger          *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
func NewServer(
	store store.Store,
	authService *service.AuthService,
	catalogService *service.CatalogService,
	bookService *service.BookService,
	favoriteService *service.FavoriteService,
	searchService *service.SearchService,
	logger *slog.Logger,
) *Server {
	s := &Server{
		store:           store,
		authService:     authService,
		catalogService:  catalogService,
		bookService:     bookService,
		favoriteService: favoriteService,
		searchService:   searchService,
		// 10 auth attempts per minute per IP, small burst for retries.
		loginLimiter: ratelimit.New(10.0/60.0, 5),
		router:       chi.NewRouter(),
		logger:       logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Close releases server-held resources.
func (s *Server) Close() {
	s.loginLimiter.Stop()
}

// setupMiddleware configures middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	s.router.Use(middleware.Timeout(60 * time.Second))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	// API v1.
	s.router.Route("/api/v1", func(r chi.Router) {
		// Auth endpoints (public, rate limited per IP).
		r.Route("/auth", func(r chi.Router) {
			r.Use(s.authRateLimit)
			r.Post("/setup", s.handleSetup)
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
			r.Post("/refresh", s.handleRefresh)
			r.Post("/logout", s.handleLogout)
		})

		// Summaries listing is open to anonymous visitors; an attached
		// bearer token personalizes the ranking.
		r.Route("/summaries", func(r chi.Router) {
			r.Use(s.withAuth)
			r.Get("/", s.handleListSummaries)
			r.With(s.requireAuth, s.requireAdmin).Post("/", s.handleCreateSummary)
		})

		// Book curation (admin only).
		r.Route("/books", func(r chi.Router) {
			r.Use(s.withAuth, s.requireAuth, s.requireAdmin)
			r.Patch("/{id}", s.handleUpdateBook)
			r.Delete("/{id}", s.handleDeleteBook)
			r.Post("/reindex", s.handleReindex)
		})

		// Favorites (require auth).
		r.Route("/favorites", func(r chi.Router) {
			r.Use(s.withAuth, s.requireAuth)
			r.Post("/{bookID}", s.handleToggleFavorite)
		})

		// Search (public).
		r.Get("/search", s.handleSearch)

		// Current user.
		r.Route("/users", func(r chi.Router) {
			r.Use(s.withAuth, s.requireAuth)
			r.Get("/me", s.handleGetCurrentUser)
		})
	})
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status": "healthy",
	}, s.logger)
}
