package api

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/mmcdole/hema/internal/domain"
)

// Content implements domain.ContentRepository and domain.HealthChecker.
// It only shapes requests; response bodies are returned as decoded.
type Content struct {
	getter Getter
}

// NewContent creates the content access layer over a Getter
func NewContent(getter Getter) *Content {
	return &Content{getter: getter}
}

// ListFightingBooks returns one page of fighting books
func (c *Content) ListFightingBooks(ctx context.Context, params domain.PageParams) (domain.Page[domain.FightingBook], error) {
	query := url.Values{}
	if params.Page > 0 {
		query.Set("page", strconv.Itoa(params.Page))
	}
	if params.PageSize > 0 {
		query.Set("page_size", strconv.Itoa(params.PageSize))
	}
	// NO client-side defaults - omitted params let the server pick

	return GetJSON[domain.Page[domain.FightingBook]](ctx, c.getter, "/api/fighting-books", query)
}

// GetFightingBook returns a single fighting book
func (c *Content) GetFightingBook(ctx context.Context, bookID int) (domain.FightingBook, error) {
	path := fmt.Sprintf("/api/fighting-books/%d", bookID)
	return GetJSON[domain.FightingBook](ctx, c.getter, path, nil)
}

// ListChapters returns all chapters of a fighting book
func (c *Content) ListChapters(ctx context.Context, bookID int) ([]domain.Chapter, error) {
	path := fmt.Sprintf("/api/fighting-books/%d/chapters", bookID)
	return GetJSON[[]domain.Chapter](ctx, c.getter, path, nil)
}

// ListTechniques returns all techniques of a chapter
func (c *Content) ListTechniques(ctx context.Context, chapterID int) ([]domain.Technique, error) {
	path := fmt.Sprintf("/api/chapters/%d/techniques", chapterID)
	return GetJSON[[]domain.Technique](ctx, c.getter, path, nil)
}

// Health checks the API liveness endpoint
func (c *Content) Health(ctx context.Context) (domain.Health, error) {
	return GetJSON[domain.Health](ctx, c.getter, "/healthz", nil)
}
