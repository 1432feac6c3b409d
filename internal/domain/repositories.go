package domain

import (
	"context"
)

// ContentRepository provides read access to the catalogue
type ContentRepository interface {
	// ListFightingBooks returns one page of books
	ListFightingBooks(ctx context.Context, params PageParams) (Page[FightingBook], error)

	// GetFightingBook returns a single book
	GetFightingBook(ctx context.Context, bookID int) (FightingBook, error)

	// ListChapters returns every chapter of a book, ordered by chapter number
	ListChapters(ctx context.Context, bookID int) ([]Chapter, error)

	// ListTechniques returns every technique of a chapter, ordered by order in chapter
	ListTechniques(ctx context.Context, chapterID int) ([]Technique, error)
}

// HealthChecker reports whether the content API is reachable
type HealthChecker interface {
	Health(ctx context.Context) (Health, error)
}
