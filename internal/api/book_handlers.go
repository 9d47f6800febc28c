package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/bookbriefapp/bookbrief-server/internal/http/response"
	"github.com/bookbriefapp/bookbrief-server/internal/service"
)

// handleUpdateBook applies a partial update to a book and its summary.
func (s *Server) handleUpdateBook(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "id")
	if bookID == "" {
		response.BadRequest(w, "Book ID is required", s.logger)
		return
	}

	var req service.UpdateBookRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	book, err := s.bookService.UpdateBook(r.Context(), bookID, req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, book, s.logger)
}

// handleDeleteBook removes a book and everything attached to it.
func (s *Server) handleDeleteBook(w http.ResponseWriter, r *http.Request) {
	bookID := chi.URLParam(r, "id")
	if bookID == "" {
		response.BadRequest(w, "Book ID is required", s.logger)
		return
	}

	if err := s.bookService.DeleteBook(r.Context(), bookID); err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.NoContent(w)
}

// handleReindex rebuilds the search index from the catalog.
func (s *Server) handleReindex(w http.ResponseWriter, r *http.Request) {
	if err := s.bookService.ReindexAll(r.Context()); err != nil {
		s.logger.Error("Failed to reindex catalog", "error", err)
		response.InternalError(w, "Failed to reindex catalog", s.logger)
		return
	}

	response.Success(w, map[string]string{
		"message": "Catalog reindexed",
	}, s.logger)
}
