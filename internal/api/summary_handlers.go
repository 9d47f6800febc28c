package api

import (
	"net/http"

	"github.com/bookbriefapp/bookbrief-server/internal/http/response"
	"github.com/bookbriefapp/bookbrief-server/internal/service"
)

// handleListSummaries returns the catalog ranked for the requesting user.
// Anonymous requests get a recency ranking.
func (s *Server) handleListSummaries(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	userID := getUserID(ctx)

	ranked, err := s.catalogService.ListSummaries(ctx, userID)
	if err != nil {
		s.logger.Error("Failed to list summaries", "error", err, "user_id", userID)
		response.InternalError(w, "Failed to retrieve summaries", s.logger)
		return
	}

	response.Success(w, ranked, s.logger)
}

// handleCreateSummary creates a book with its summary.
func (s *Server) handleCreateSummary(w http.ResponseWriter, r *http.Request) {
	var req service.CreateSummaryRequest
	if err := decodeJSON(r, &req); err != nil {
		response.BadRequest(w, "Invalid request body", s.logger)
		return
	}

	resp, err := s.bookService.CreateSummary(r.Context(), req)
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Created(w, resp, s.logger)
}
