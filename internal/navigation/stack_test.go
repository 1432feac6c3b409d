package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/hema/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestStack_RootIsNeverPopped(t *testing.T) {
	stack := NewStack[string](BooksRoute{}, "books")

	_, ok := stack.Pop()
	assert.False(t, ok)
	assert.Equal(t, 1, stack.Len())
	assert.False(t, stack.CanGoBack())
	assert.Equal(t, BooksRoute{}, stack.Top().Route)
}

func TestStack_PushPopRestoresPriorEntry(t *testing.T) {
	stack := NewStack[string](BooksRoute{}, "books")
	stack.Push(ChaptersRoute{BookID: 1, BookTitle: "Fior di Battaglia"}, "chapters")
	stack.Push(TechniquesRoute{ChapterID: 3, ChapterTitle: "Longsword"}, "techniques")

	assert.Equal(t, 2, stack.Depth())
	parent, ok := stack.Parent()
	require.True(t, ok)
	assert.Equal(t, "chapters", parent.Screen)

	popped, ok := stack.Pop()
	require.True(t, ok)
	assert.Equal(t, TechniquesRoute{ChapterID: 3, ChapterTitle: "Longsword"}, popped.Route)
	assert.Equal(t, "techniques", popped.Screen)

	top := stack.Top()
	assert.Equal(t, ChaptersRoute{BookID: 1, BookTitle: "Fior di Battaglia"}, top.Route)
	assert.Equal(t, "chapters", top.Screen)
}

func TestStack_Breadcrumb(t *testing.T) {
	stack := NewStack[int](BooksRoute{}, 0)
	stack.Push(ChaptersRoute{BookID: 1, BookTitle: "MS 3227a"}, 1)
	stack.Push(TechniquesRoute{ChapterID: 2, ChapterTitle: "Zettel"}, 2)

	assert.Equal(t, "HEMA Lessons › MS 3227a › Zettel", stack.Breadcrumb(" › "))
}

func TestStack_Get(t *testing.T) {
	stack := NewStack[int](BooksRoute{}, 0)
	_, ok := stack.Get(1)
	assert.False(t, ok)
	_, ok = stack.Get(-1)
	assert.False(t, ok)

	var screens []int
	stack.Push(ChaptersRoute{}, 1)
	stack.Each(func(e Entry[int]) { screens = append(screens, e.Screen) })
	assert.Equal(t, []int{0, 1}, screens)
}

func TestTechniqueDetailRoute_CarriesTechniqueByValue(t *testing.T) {
	technique := domain.Technique{
		ID:             7,
		ChapterID:      3,
		Name:           "Zornhau",
		Description:    "Wrath strike",
		Instructions:   "Strike diagonally from the roof guard",
		VideoURL:       strPtr("https://example.com/zornhau.mp4"),
		OrderInChapter: 1,
	}

	route := ForTechnique(technique)
	stack := NewStack[string](BooksRoute{}, "books")
	stack.Push(route, "detail")

	got, ok := stack.Top().Route.(TechniqueDetailRoute)
	require.True(t, ok)
	assert.Equal(t, technique, got.Technique)
	assert.Equal(t, "Zornhau", got.Title())
}

func TestRouteConstructors(t *testing.T) {
	assert.Equal(t,
		ChaptersRoute{BookID: 5, BookTitle: "Flos Duellatorum"},
		ForBook(domain.FightingBook{ID: 5, Title: "Flos Duellatorum"}),
	)
	assert.Equal(t,
		TechniquesRoute{ChapterID: 3, ChapterTitle: "Longsword"},
		ForChapter(domain.Chapter{ID: 3, ChapterNumber: 2, Title: "Longsword"}),
	)
}

func TestDescribe(t *testing.T) {
	assert.Equal(t, "books", Describe(BooksRoute{}))
	assert.Equal(t, "chapters(book=4)", Describe(ChaptersRoute{BookID: 4}))
	assert.Equal(t, "techniques(chapter=9)", Describe(TechniquesRoute{ChapterID: 9}))
	assert.Equal(t, "technique(id=2)", Describe(TechniqueDetailRoute{Technique: domain.Technique{ID: 2}}))
}
