package service

import (
	"context"
	"log/slog"

	"github.com/mmcdole/hema/internal/domain"
	"github.com/mmcdole/hema/internal/query"
)

// ContentService binds the catalogue repository to the query cache.
// Screens observe through it; the CLI fetches through it.
type ContentService struct {
	repo     domain.ContentRepository
	health   domain.HealthChecker
	queries  *query.Client
	pageSize int
	logger   *slog.Logger
}

// NewContentService creates a new content service. A zero pageSize leaves
// the page size to the server.
func NewContentService(
	repo domain.ContentRepository,
	health domain.HealthChecker,
	queries *query.Client,
	pageSize int,
	logger *slog.Logger,
) *ContentService {
	if logger == nil {
		logger = slog.Default()
	}
	return &ContentService{
		repo:     repo,
		health:   health,
		queries:  queries,
		pageSize: pageSize,
		logger:   logger,
	}
}

func (s *ContentService) booksQuery() query.InfiniteOptions[domain.FightingBook] {
	return query.InfiniteOptions[domain.FightingBook]{
		Key: booksKey(),
		FetchPage: func(ctx context.Context, page int) (domain.Page[domain.FightingBook], error) {
			result, err := s.repo.ListFightingBooks(ctx, domain.PageParams{Page: page, PageSize: s.pageSize})
			if err != nil {
				s.logger.Error("failed to fetch fighting books", "error", err, "page", page)
				return result, err
			}
			s.logger.Debug("fetched fighting books", "page", page, "count", len(result.Data), "totalPages", result.TotalPages)
			return result, nil
		},
	}
}

func (s *ContentService) chaptersQuery(bookID int) query.Options[[]domain.Chapter] {
	return query.Options[[]domain.Chapter]{
		Key: chaptersKey(bookID),
		Fetch: func(ctx context.Context) ([]domain.Chapter, error) {
			chapters, err := s.repo.ListChapters(ctx, bookID)
			if err != nil {
				s.logger.Error("failed to fetch chapters", "error", err, "bookID", bookID)
				return nil, err
			}
			s.logger.Debug("fetched chapters", "count", len(chapters), "bookID", bookID)
			return chapters, nil
		},
	}
}

func (s *ContentService) techniquesQuery(chapterID int) query.Options[[]domain.Technique] {
	return query.Options[[]domain.Technique]{
		Key: techniquesKey(chapterID),
		Fetch: func(ctx context.Context) ([]domain.Technique, error) {
			techniques, err := s.repo.ListTechniques(ctx, chapterID)
			if err != nil {
				s.logger.Error("failed to fetch techniques", "error", err, "chapterID", chapterID)
				return nil, err
			}
			s.logger.Debug("fetched techniques", "count", len(techniques), "chapterID", chapterID)
			return techniques, nil
		},
	}
}

// ObserveBooks follows the paginated book list
func (s *ContentService) ObserveBooks(notify func()) *query.InfiniteObserver[domain.FightingBook] {
	return query.ObserveInfinite(s.queries, s.booksQuery(), notify)
}

// ObserveChapters follows the chapters of a book
func (s *ContentService) ObserveChapters(bookID int, notify func()) *query.Observer[[]domain.Chapter] {
	return query.Observe(s.queries, s.chaptersQuery(bookID), notify)
}

// ObserveTechniques follows the techniques of a chapter
func (s *ContentService) ObserveTechniques(chapterID int, notify func()) *query.Observer[[]domain.Technique] {
	return query.Observe(s.queries, s.techniquesQuery(chapterID), notify)
}

// FetchBooksPage returns a single page of books
func (s *ContentService) FetchBooksPage(ctx context.Context, params domain.PageParams) (domain.Page[domain.FightingBook], error) {
	return query.Fetch(ctx, s.queries, query.Options[domain.Page[domain.FightingBook]]{
		Key: booksPageKey(params.Page, params.PageSize),
		Fetch: func(ctx context.Context) (domain.Page[domain.FightingBook], error) {
			return s.repo.ListFightingBooks(ctx, params)
		},
	})
}

// FetchAllBooks walks every page of the book list
func (s *ContentService) FetchAllBooks(ctx context.Context, onProgress func(loaded, total int)) ([]domain.FightingBook, error) {
	books, err := fetchAllPages(ctx, func(ctx context.Context, page int) (domain.Page[domain.FightingBook], error) {
		return s.FetchBooksPage(ctx, domain.PageParams{Page: page, PageSize: s.pageSize})
	}, onProgress)
	if err != nil {
		return nil, err
	}
	s.logger.Debug("fetched all fighting books", "count", len(books))
	return books, nil
}

// FetchBook returns a single book
func (s *ContentService) FetchBook(ctx context.Context, bookID int) (domain.FightingBook, error) {
	return query.Fetch(ctx, s.queries, query.Options[domain.FightingBook]{
		Key: bookKey(bookID),
		Fetch: func(ctx context.Context) (domain.FightingBook, error) {
			return s.repo.GetFightingBook(ctx, bookID)
		},
	})
}

// FetchChapters returns the chapters of a book
func (s *ContentService) FetchChapters(ctx context.Context, bookID int) ([]domain.Chapter, error) {
	return query.Fetch(ctx, s.queries, s.chaptersQuery(bookID))
}

// FetchTechniques returns the techniques of a chapter
func (s *ContentService) FetchTechniques(ctx context.Context, chapterID int) ([]domain.Technique, error) {
	return query.Fetch(ctx, s.queries, s.techniquesQuery(chapterID))
}

// Health pings the API. It is never cached.
func (s *ContentService) Health(ctx context.Context) (domain.Health, error) {
	return s.health.Health(ctx)
}

// RefreshAll marks every cached catalogue query stale; observed ones reload now
func (s *ContentService) RefreshAll() {
	for _, prefix := range CatalogueCachePrefixes() {
		s.queries.Invalidate(prefix)
	}
	s.logger.Info("invalidated catalogue cache")
}
