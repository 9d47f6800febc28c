package api

import (
	"net/http"

	"github.com/bookbriefapp/bookbrief-server/internal/http/response"
)

// handleGetCurrentUser returns the authenticated user's information.
func (s *Server) handleGetCurrentUser(w http.ResponseWriter, r *http.Request) {
	user, err := s.authService.GetUser(r.Context(), getUserID(r.Context()))
	if err != nil {
		response.HandleError(w, err, s.logger)
		return
	}

	response.Success(w, user, s.logger)
}
