package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/bookbriefapp/bookbrief-server/internal/search"
)

const searchMaxLimit = 100

// SearchService wraps the search index with request-level parameter handling.
type SearchService struct {
	index  *search.Index
	logger *slog.Logger
}

// NewSearchService creates a new search service.
func NewSearchService(index *search.Index, logger *slog.Logger) *SearchService {
	return &SearchService{
		index:  index,
		logger: logger,
	}
}

// SearchRequest contains catalog search parameters as parsed from the query
// string.
type SearchRequest struct {
	Query    string
	Category string
	Tags     []string
	Limit    int
	Offset   int
	SortBy   string
}

// Search executes a catalog search.
func (s *SearchService) Search(ctx context.Context, req SearchRequest) (*search.Result, error) {
	params := search.DefaultParams()
	params.Query = strings.TrimSpace(req.Query)
	params.Category = req.Category
	params.Tags = req.Tags

	if req.Limit > 0 {
		params.Limit = req.Limit
	}
	if params.Limit > searchMaxLimit {
		params.Limit = searchMaxLimit
	}
	if req.Offset > 0 {
		params.Offset = req.Offset
	}
	if req.SortBy != "" {
		params.SortBy = req.SortBy
	}

	result, err := s.index.Search(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("search: %w", err)
	}

	return result, nil
}
