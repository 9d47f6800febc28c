// Package search provides full-text search over the book catalog using Bleve.
// Books are indexed with their summary text so a query can match content the
// title and author never mention.
package search

import (
	"github.com/bookbriefapp/bookbrief-server/internal/domain"
)

// BookDocument is the document structure stored in the Bleve index.
//
// Summary content is denormalized into the book document so one query covers
// everything a reader might remember about a book. The trade-off is index
// size for query simplicity, which is fine for a curated catalog.
type BookDocument struct {
	ID       string   `json:"id"`
	Title    string   `json:"title"`
	Author   string   `json:"author"`
	Category string   `json:"category,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Summary  string   `json:"summary,omitempty"`

	// Timestamps for sorting, Unix millis.
	CreatedAt int64 `json:"created_at"`
	UpdatedAt int64 `json:"updated_at"`
}

// ToMap converts the document to a map with lowercase field names.
// Bleve by default uses Go struct field names (capitalized), but our
// mapping uses lowercase names, so we convert explicitly.
func (d *BookDocument) ToMap() map[string]interface{} {
	m := map[string]interface{}{
		"id":         d.ID,
		"title":      d.Title,
		"author":     d.Author,
		"created_at": d.CreatedAt,
		"updated_at": d.UpdatedAt,
	}

	if d.Category != "" {
		m["category"] = d.Category
	}
	if len(d.Tags) > 0 {
		m["tags"] = d.Tags
	}
	if d.Summary != "" {
		m["summary"] = d.Summary
	}

	return m
}

// BookToDocument converts a domain Book to a BookDocument. The summary text
// is passed separately so this package doesn't depend on the store.
func BookToDocument(book *domain.Book, summaryContent string) *BookDocument {
	return &BookDocument{
		ID:        book.ID,
		Title:     book.Title,
		Author:    book.Author,
		Category:  book.Category,
		Tags:      book.UniqueTags(),
		Summary:   summaryContent,
		CreatedAt: book.CreatedAt.UnixMilli(),
		UpdatedAt: book.UpdatedAt.UnixMilli(),
	}
}
