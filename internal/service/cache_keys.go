package service

import "github.com/mmcdole/hema/internal/query"

// Cache key prefixes for catalogue content
const (
	// PrefixFightingBooks is the key of the paginated book list; CLI page
	// fetches use fightingBooks:page:{n}:{size}
	PrefixFightingBooks = "fightingBooks"

	// PrefixFightingBook is the prefix for single book caches (fightingBook:{bookID})
	PrefixFightingBook = "fightingBook:"

	// PrefixChapters is the prefix for book chapter caches (chapters:{bookID})
	PrefixChapters = "chapters:"

	// PrefixTechniques is the prefix for chapter technique caches (techniques:{chapterID})
	PrefixTechniques = "techniques:"
)

func booksKey() query.Key {
	return query.KeyOf(PrefixFightingBooks)
}

func booksPageKey(page, pageSize int) query.Key {
	return query.KeyOf(PrefixFightingBooks, "page", page, pageSize)
}

func bookKey(bookID int) query.Key {
	return query.Key(PrefixFightingBook) + query.KeyOf(bookID)
}

func chaptersKey(bookID int) query.Key {
	return query.Key(PrefixChapters) + query.KeyOf(bookID)
}

func techniquesKey(chapterID int) query.Key {
	return query.Key(PrefixTechniques) + query.KeyOf(chapterID)
}

// CatalogueCachePrefixes returns every prefix invalidated by a full refresh
func CatalogueCachePrefixes() []string {
	return []string{PrefixFightingBooks, PrefixFightingBook, PrefixChapters, PrefixTechniques}
}
