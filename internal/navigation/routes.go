package navigation

import (
	"fmt"

	"github.com/mmcdole/hema/internal/domain"
)

// Route is one of the four destinations of the browser.
// The set is closed: BooksRoute, ChaptersRoute, TechniquesRoute, TechniqueDetailRoute.
type Route interface {
	// Title is the header shown while the route is on top of the stack
	Title() string
	isRoute()
}

// BooksRoute is the root list of fighting books
type BooksRoute struct{}

// ChaptersRoute lists the chapters of one book
type ChaptersRoute struct {
	BookID    int
	BookTitle string
}

// TechniquesRoute lists the techniques of one chapter
type TechniquesRoute struct {
	ChapterID    int
	ChapterTitle string
}

// TechniqueDetailRoute shows one technique. The technique is carried by
// value so the screen needs no request.
type TechniqueDetailRoute struct {
	Technique domain.Technique
}

func (BooksRoute) Title() string { return "HEMA Lessons" }

func (r ChaptersRoute) Title() string { return r.BookTitle }

func (r TechniquesRoute) Title() string { return r.ChapterTitle }

func (r TechniqueDetailRoute) Title() string { return r.Technique.Name }

func (BooksRoute) isRoute()           {}
func (ChaptersRoute) isRoute()        {}
func (TechniquesRoute) isRoute()      {}
func (TechniqueDetailRoute) isRoute() {}

// ForBook returns the route that opens a book's chapters
func ForBook(book domain.FightingBook) ChaptersRoute {
	return ChaptersRoute{BookID: book.ID, BookTitle: book.Title}
}

// ForChapter returns the route that opens a chapter's techniques
func ForChapter(chapter domain.Chapter) TechniquesRoute {
	return TechniquesRoute{ChapterID: chapter.ID, ChapterTitle: chapter.Title}
}

// ForTechnique returns the route that opens a technique's detail
func ForTechnique(technique domain.Technique) TechniqueDetailRoute {
	return TechniqueDetailRoute{Technique: technique}
}

// Describe renders a route for logs
func Describe(r Route) string {
	switch r := r.(type) {
	case BooksRoute:
		return "books"
	case ChaptersRoute:
		return fmt.Sprintf("chapters(book=%d)", r.BookID)
	case TechniquesRoute:
		return fmt.Sprintf("techniques(chapter=%d)", r.ChapterID)
	case TechniqueDetailRoute:
		return fmt.Sprintf("technique(id=%d)", r.Technique.ID)
	default:
		return fmt.Sprintf("%T", r)
	}
}
