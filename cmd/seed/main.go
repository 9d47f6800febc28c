// Package main provides a tool to seed the database with sample catalog data.
//
// This creates a set of books with summaries spread over the past months so
// the recency bonus and the personalized ranking have something to work with.
//
// Usage:
//
//	DB_PATH=~/BookBrief/data/bookbrief.db go run ./cmd/seed
package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/bookbriefapp/bookbrief-server/internal/domain"
	"github.com/bookbriefapp/bookbrief-server/internal/id"
	"github.com/bookbriefapp/bookbrief-server/internal/store/sqlite"
)

type seedBook struct {
	title    string
	author   string
	category string
	tags     []string
	summary  string
	ageDays  int
}

var catalog = []seedBook{
	{
		title:    "Deep Work",
		author:   "Cal Newport",
		category: "productivity",
		tags:     []string{"focus", "habits"},
		summary:  "Deep work is the ability to focus without distraction on a cognitively demanding task. Newport argues it is becoming both rarer and more valuable, and lays out rules for cultivating it.",
		ageDays:  5,
	},
	{
		title:    "Atomic Habits",
		author:   "James Clear",
		category: "productivity",
		tags:     []string{"habits", "behavior"},
		summary:  "Small improvements compound. Clear's framework of cue, craving, response and reward shows how tiny changes in systems produce remarkable results over time.",
		ageDays:  40,
	},
	{
		title:    "Project Hail Mary",
		author:   "Andy Weir",
		category: "fiction",
		tags:     []string{"space", "science"},
		summary:  "A lone astronaut wakes up on a spaceship with no memory of why he is there, and must science his way through an interstellar crisis threatening Earth.",
		ageDays:  70,
	},
	{
		title:    "Sapiens",
		author:   "Yuval Noah Harari",
		category: "history",
		tags:     []string{"anthropology", "civilization"},
		summary:  "A sweeping account of how an unremarkable ape came to dominate the planet through shared fictions, agriculture, money and science.",
		ageDays:  120,
	},
	{
		title:    "Thinking, Fast and Slow",
		author:   "Daniel Kahneman",
		category: "psychology",
		tags:     []string{"behavior", "decision-making"},
		summary:  "Two systems drive how we think. System 1 is fast and intuitive, System 2 slow and deliberate. Kahneman maps the biases that emerge from their interplay.",
		ageDays:  200,
	},
	{
		title:    "The Pragmatic Programmer",
		author:   "David Thomas and Andrew Hunt",
		category: "technology",
		tags:     []string{"craft", "engineering"},
		summary:  "Timeless advice on the craft of software, from tracer bullets and orthogonality to the importance of fixing broken windows before they spread.",
		ageDays:  300,
	},
}

func main() {
	dbPath := os.Getenv("DB_PATH")
	if dbPath == "" {
		dbPath = os.ExpandEnv("$HOME/BookBrief/data/bookbrief.db")
	}

	fmt.Printf("Opening database at: %s\n", dbPath)

	s, err := sqlite.Open(dbPath, nil)
	if err != nil {
		log.Fatalf("Failed to open store: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	now := time.Now()

	for _, sb := range catalog {
		createdAt := now.AddDate(0, 0, -sb.ageDays)

		book := &domain.Book{
			Entity: domain.Entity{
				ID:        id.MustGenerate("book"),
				CreatedAt: createdAt,
				UpdatedAt: createdAt,
			},
			Title:    sb.title,
			Author:   sb.author,
			Category: sb.category,
			Tags:     sb.tags,
		}

		if err := s.CreateBook(ctx, book); err != nil {
			log.Fatalf("Failed to create book %q: %v", sb.title, err)
		}

		summary := &domain.Summary{
			Entity: domain.Entity{
				ID:        id.MustGenerate("sum"),
				CreatedAt: createdAt,
				UpdatedAt: createdAt,
			},
			BookID:  book.ID,
			Content: sb.summary,
		}

		if err := s.CreateSummary(ctx, summary); err != nil {
			log.Fatalf("Failed to create summary for %q: %v", sb.title, err)
		}

		fmt.Printf("  Seeded %q (%s, %d days old)\n", sb.title, sb.category, sb.ageDays)
	}

	fmt.Printf("Seeded %d books. Restart the server to index them for search.\n", len(catalog))
}
