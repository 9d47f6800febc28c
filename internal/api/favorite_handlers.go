package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookbriefapp/bookbrief-server/internal/http/response"
)

// handleToggleFavorite flips the favorite state of a book for the
// authenticated user.
func (s *Server) handleToggleFavorite(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "bookID")
	if bookID == "" {
		response.BadRequest(w, "Book ID is required", s.logger)
		return
	}

	resp, err := s.favoriteService.Toggle(r.Context(), getUserID(r.Context()), bookID)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, resp, s.logger)
}
