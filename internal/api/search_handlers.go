package api

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/bookbriefapp/bookbrief-server/internal/http/response"
	"github.com/bookbriefapp/bookbrief-server/internal/service"
)

// handleSearch runs a catalog search from query string parameters.
// An empty q with a category or tag filter lists everything matching the
// filter.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	req := service.SearchRequest{
		Query:    q.Get("q"),
		Category: q.Get("category"),
		SortBy:   q.Get("sort"),
	}

	if tags := q.Get("tags"); tags != "" {
		for _, tag := range strings.Split(tags, ",") {
			if tag = strings.TrimSpace(tag); tag != "" {
				req.Tags = append(req.Tags, tag)
			}
		}
	}

	if limitStr := q.Get("limit"); limitStr != "" {
		if limit, err := strconv.Atoi(limitStr); err == nil {
			req.Limit = limit
		}
	}
	if offsetStr := q.Get("offset"); offsetStr != "" {
		if offset, err := strconv.Atoi(offsetStr); err == nil {
			req.Offset = offset
		}
	}

	result, err := s.searchService.Search(r.Context(), req)
	if err != nil {
		s.logger.Error("Search failed", "error", err, "query", req.Query)
		response.InternalError(w, "Search failed", s.logger)
		return
	}

	response.Success(w, result, s.logger)
}
