package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/bookbriefapp/bookbrief-server/internal/ai"
	"github.com/bookbriefapp/bookbrief-server/internal/domain"
	domainerrors "github.com/bookbriefapp/bookbrief-server/internal/errors"
	"github.com/bookbriefapp/bookbrief-server/internal/id"
	"github.com/bookbriefapp/bookbrief-server/internal/search"
	"github.com/bookbriefapp/bookbrief-server/internal/store"
)

// BookService handles catalog curation: creating books with their summaries,
// updating and deleting them, and keeping the search index in sync.
// All operations are admin-only; the handlers enforce that.
type BookService struct {
	store  store.Store
	ai     *ai.Client
	index  *search.Index
	logger *slog.Logger
}

// NewBookService creates a new book curation service.
func NewBookService(store store.Store, aiClient *ai.Client, index *search.Index, logger *slog.Logger) *BookService {
	return &BookService{
		store:  store,
		ai:     aiClient,
		index:  index,
		logger: logger,
	}
}

// CreateSummaryRequest contains a new book and its summary draft.
type CreateSummaryRequest struct {
	Title    string   `json:"title" validate:"required,max=500"`
	Author   string   `json:"author" validate:"required,max=500"`
	CoverURL string   `json:"cover_url" validate:"omitempty,url"`
	Category string   `json:"category" validate:"omitempty,max=100"`
	Tags     []string `json:"tags" validate:"omitempty,dive,max=100"`
	Content  string   `json:"content" validate:"required"`

	// Enhance rewrites the draft through the AI client before saving.
	// Narrate synthesizes audio for the final text. Both are skipped when
	// the AI client is disabled.
	Enhance bool `json:"enhance"`
	Narrate bool `json:"narrate"`
}

// CreateSummaryResponse pairs the created book with its summary.
type CreateSummaryResponse struct {
	Book    *domain.Book    `json:"book"`
	Summary *domain.Summary `json:"summary"`
}

// CreateSummary creates a book and its summary in the catalog.
// Enhancement and narration failures degrade to the draft text rather than
// failing the creation; the admin can retry enrichment with an update.
func (s *BookService) CreateSummary(ctx context.Context, req CreateSummaryRequest) (*CreateSummaryResponse, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	content := req.Content
	if req.Enhance && s.ai.Enabled() {
		enhanced, err := s.ai.EnhanceSummary(ctx, req.Title, req.Author, req.Content)
		if err != nil {
			s.logger.Warn("Summary enhancement failed, keeping draft",
				"title", req.Title,
				"error", err,
			)
		} else {
			content = enhanced
		}
	}

	audioURL := ""
	if req.Narrate && s.ai.Enabled() {
		audio, err := s.ai.SynthesizeNarration(ctx, content)
		if err != nil {
			s.logger.Warn("Narration synthesis failed, saving without audio",
				"title", req.Title,
				"error", err,
			)
		} else {
			audioURL = audio
		}
	}

	bookID, err := id.Generate("book")
	if err != nil {
		return nil, fmt.Errorf("generate book ID: %w", err)
	}

	book := &domain.Book{
		Entity:   domain.Entity{ID: bookID},
		Title:    req.Title,
		Author:   req.Author,
		CoverURL: req.CoverURL,
		Category: req.Category,
		Tags:     req.Tags,
	}
	book.InitTimestamps()

	if err := s.store.CreateBook(ctx, book); err != nil {
		return nil, fmt.Errorf("create book: %w", err)
	}

	summaryID, err := id.Generate("sum")
	if err != nil {
		return nil, fmt.Errorf("generate summary ID: %w", err)
	}

	summary := &domain.Summary{
		Entity:   domain.Entity{ID: summaryID},
		BookID:   bookID,
		Content:  content,
		AudioURL: audioURL,
	}
	summary.InitTimestamps()

	if err := s.store.CreateSummary(ctx, summary); err != nil {
		return nil, fmt.Errorf("create summary: %w", err)
	}

	s.indexBook(book, content)

	s.logger.Info("Book created",
		"book_id", bookID,
		"title", book.Title,
		"narrated", summary.HasNarration(),
	)

	return &CreateSummaryResponse{Book: book, Summary: summary}, nil
}

// UpdateBookRequest contains the mutable book fields. Nil pointers leave the
// current value unchanged; an empty string clears optional fields.
type UpdateBookRequest struct {
	Title    *string   `json:"title" validate:"omitempty,max=500"`
	Author   *string   `json:"author" validate:"omitempty,max=500"`
	CoverURL *string   `json:"cover_url"`
	Category *string   `json:"category" validate:"omitempty,max=100"`
	Tags     *[]string `json:"tags" validate:"omitempty,dive,max=100"`
	Content  *string   `json:"content"`
}

// UpdateBook applies a partial update to a book and, when content is
// provided, its summary.
func (s *BookService) UpdateBook(ctx context.Context, bookID string, req UpdateBookRequest) (*domain.Book, error) {
	if err := validate.Validate(req); err != nil {
		return nil, err
	}

	book, err := s.store.GetBook(ctx, bookID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.NotFound("book not found")
		}
		return nil, fmt.Errorf("get book: %w", err)
	}

	if req.Title != nil {
		if *req.Title == "" {
			return nil, domainerrors.Validation("title cannot be empty")
		}
		book.Title = *req.Title
	}
	if req.Author != nil {
		if *req.Author == "" {
			return nil, domainerrors.Validation("author cannot be empty")
		}
		book.Author = *req.Author
	}
	if req.CoverURL != nil {
		book.CoverURL = *req.CoverURL
	}
	if req.Category != nil {
		book.Category = *req.Category
	}
	if req.Tags != nil {
		book.Tags = *req.Tags
	}
	book.Touch()

	if err := s.store.UpdateBook(ctx, book); err != nil {
		return nil, fmt.Errorf("update book: %w", err)
	}

	content := ""
	if summary, err := s.store.GetSummaryForBook(ctx, bookID); err == nil {
		if req.Content != nil && *req.Content != summary.Content {
			summary.Content = *req.Content
			summary.Touch()
			if err := s.store.UpdateSummary(ctx, summary); err != nil {
				return nil, fmt.Errorf("update summary: %w", err)
			}
		}
		content = summary.Content
	}

	s.indexBook(book, content)

	s.logger.Info("Book updated", "book_id", bookID)

	return book, nil
}

// DeleteBook removes a book, its summaries, favorites and view events.
func (s *BookService) DeleteBook(ctx context.Context, bookID string) error {
	if err := s.store.DeleteBook(ctx, bookID); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domainerrors.NotFound("book not found")
		}
		return fmt.Errorf("delete book: %w", err)
	}

	if err := s.index.DeleteBook(bookID); err != nil {
		s.logger.Warn("Failed to remove book from search index",
			"book_id", bookID,
			"error", err,
		)
	}

	s.logger.Info("Book deleted", "book_id", bookID)

	return nil
}

// ReindexAll rebuilds the search index from the catalog.
// Used on startup and after index schema changes.
func (s *BookService) ReindexAll(ctx context.Context) error {
	entries, err := s.store.GetCatalog(ctx)
	if err != nil {
		return fmt.Errorf("load catalog: %w", err)
	}

	docs := make([]*search.BookDocument, 0, len(entries))
	for i := range entries {
		entry := &entries[i]
		content := ""
		if len(entry.Summaries) > 0 {
			content = entry.Summaries[len(entry.Summaries)-1].Content
		}
		docs = append(docs, search.BookToDocument(&entry.Book, content))
	}

	if err := s.index.IndexBooks(docs); err != nil {
		return fmt.Errorf("index catalog: %w", err)
	}

	s.logger.Info("Catalog reindexed", "count", len(docs))

	return nil
}

// indexBook upserts one book into the search index. Index failures are
// logged, not returned; the store is the source of truth and the index can
// always be rebuilt.
func (s *BookService) indexBook(book *domain.Book, summaryContent string) {
	if err := s.index.IndexBook(search.BookToDocument(book, summaryContent)); err != nil {
		s.logger.Warn("Failed to index book",
			"book_id", book.ID,
			"error", err,
		)
	}
}
