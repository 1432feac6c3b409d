package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/hema/internal/domain"
	"github.com/mmcdole/hema/internal/navigation"
	"github.com/mmcdole/hema/internal/query"
	"github.com/mmcdole/hema/internal/service"
	"github.com/mmcdole/hema/internal/tui/components"
)

// Screen is the view kept in each navigation stack entry. Popping an entry
// closes its screen; the query cache keeps the data for the next visit.
type Screen interface {
	SetSize(width, height int)
	SetFocused(focused bool)
	SetSpinner(frame string)

	// Sync re-reads the observed query state into the view
	Sync()
	Update(msg tea.Msg) tea.Cmd
	View() string

	// Open returns the route for the selected item, if any
	Open() (navigation.Route, bool)
	Refresh()
	Busy() bool
	Close()
}

// filterable is implemented by screens that support "/" filtering
type filterable interface {
	ToggleFilter()
	IsFiltering() bool
	IsFilterTyping() bool
	ClearFilter()
}

// BooksScreen lists fighting books page by page, loading the next page as
// the viewport nears the end of the list
type BooksScreen struct {
	*components.ListColumn
	obs *query.InfiniteObserver[domain.FightingBook]

	// autoLoad is off while the last page load failed, so a failing
	// server is not polled; a refresh turns it back on
	autoLoad bool
}

func newBooksScreen(content *service.ContentService, notify func()) *BooksScreen {
	s := &BooksScreen{
		ListColumn: components.NewListColumn(components.ColumnTypeBooks, navigation.BooksRoute{}.Title()),
		autoLoad:   true,
	}
	s.obs = content.ObserveBooks(notify)
	s.Sync()
	return s
}

func (s *BooksScreen) Sync() {
	switch st := s.obs.State().(type) {
	case query.Loading[query.Pages[domain.FightingBook]]:
		s.SetLoading()
	case query.Failed[query.Pages[domain.FightingBook]]:
		s.SetFailed(errorMessage(st.Err), st.Retrying)
	case query.Ready[query.Pages[domain.FightingBook]]:
		s.SetItems(domain.AsListItems(st.Data.Items), st.Refetching, st.Data.FetchingNext)
		s.SetStaleError(staleError(st.Err))
		if !st.Refetching && !st.Data.FetchingNext {
			s.autoLoad = st.Err == nil
		}
		s.loadMore()
	}
}

func (s *BooksScreen) Update(msg tea.Msg) tea.Cmd {
	cmd := s.ListColumn.Update(msg)
	s.loadMore()
	return cmd
}

func (s *BooksScreen) SetSize(width, height int) {
	s.ListColumn.SetSize(width, height)
	s.loadMore()
}

// loadMore requests the next page when the rows left below the viewport
// are within half a viewport
func (s *BooksScreen) loadMore() {
	if s.autoLoad && s.NearEnd() {
		s.obs.FetchNextPage()
	}
}

func (s *BooksScreen) Open() (navigation.Route, bool) {
	book, ok := s.SelectedItem().(domain.FightingBook)
	if !ok {
		return nil, false
	}
	return navigation.ForBook(book), true
}

func (s *BooksScreen) Refresh() {
	s.autoLoad = true
	s.obs.Refetch()
}

func (s *BooksScreen) Busy() bool {
	return s.IsBusy()
}

func (s *BooksScreen) Close() {
	s.obs.Close()
}

// listScreen shows a non-paginated list query
type listScreen[T domain.ListItem] struct {
	*components.ListColumn
	obs   *query.Observer[[]T]
	route func(T) navigation.Route
}

// ChaptersScreen lists the chapters of one book
type ChaptersScreen = listScreen[domain.Chapter]

// TechniquesScreen lists the techniques of one chapter
type TechniquesScreen = listScreen[domain.Technique]

func newChaptersScreen(content *service.ContentService, route navigation.ChaptersRoute, notify func()) *ChaptersScreen {
	s := &ChaptersScreen{
		ListColumn: components.NewListColumn(components.ColumnTypeChapters, route.Title()),
		obs:        content.ObserveChapters(route.BookID, notify),
		route: func(c domain.Chapter) navigation.Route {
			return navigation.ForChapter(c)
		},
	}
	s.Sync()
	return s
}

func newTechniquesScreen(content *service.ContentService, route navigation.TechniquesRoute, notify func()) *TechniquesScreen {
	s := &TechniquesScreen{
		ListColumn: components.NewListColumn(components.ColumnTypeTechniques, route.Title()),
		obs:        content.ObserveTechniques(route.ChapterID, notify),
		route: func(t domain.Technique) navigation.Route {
			return navigation.ForTechnique(t)
		},
	}
	s.Sync()
	return s
}

func (s *listScreen[T]) Sync() {
	switch st := s.obs.State().(type) {
	case query.Loading[[]T]:
		s.SetLoading()
	case query.Failed[[]T]:
		s.SetFailed(errorMessage(st.Err), st.Retrying)
	case query.Ready[[]T]:
		s.SetItems(domain.AsListItems(st.Data), st.Refetching, false)
		s.SetStaleError(staleError(st.Err))
	}
}

func (s *listScreen[T]) Open() (navigation.Route, bool) {
	item, ok := s.SelectedItem().(T)
	if !ok {
		return nil, false
	}
	return s.route(item), true
}

func (s *listScreen[T]) Refresh() {
	s.obs.Refetch()
}

func (s *listScreen[T]) Busy() bool {
	return s.IsBusy()
}

func (s *listScreen[T]) Close() {
	s.obs.Close()
}

// TechniqueDetailScreen shows the technique carried by its route. It
// issues no request.
type TechniqueDetailScreen struct {
	*components.TechniqueDetail
}

func newTechniqueDetailScreen(route navigation.TechniqueDetailRoute) *TechniqueDetailScreen {
	return &TechniqueDetailScreen{TechniqueDetail: components.NewTechniqueDetail(route.Technique)}
}

func (s *TechniqueDetailScreen) SetFocused(bool)                {}
func (s *TechniqueDetailScreen) SetSpinner(string)              {}
func (s *TechniqueDetailScreen) Sync()                          {}
func (s *TechniqueDetailScreen) Open() (navigation.Route, bool) { return nil, false }
func (s *TechniqueDetailScreen) Refresh()                       {}
func (s *TechniqueDetailScreen) Busy() bool                     { return false }
func (s *TechniqueDetailScreen) Close()                         {}

// newScreen builds the screen for a route
func newScreen(route navigation.Route, content *service.ContentService, notify func()) Screen {
	switch r := route.(type) {
	case navigation.ChaptersRoute:
		return newChaptersScreen(content, r, notify)
	case navigation.TechniquesRoute:
		return newTechniquesScreen(content, r, notify)
	case navigation.TechniqueDetailRoute:
		return newTechniqueDetailScreen(r)
	default:
		return newBooksScreen(content, notify)
	}
}

// staleError is the footer text for a failed refresh or next page while
// earlier data is still shown
func staleError(err *domain.APIError) string {
	if err == nil {
		return ""
	}
	if err.Message == "" {
		return domain.DefaultErrorMessage
	}
	return err.Message
}

// errorMessage returns the server's message, or "" for the generic text
func errorMessage(err *domain.APIError) string {
	if err == nil {
		return ""
	}
	return err.Message
}
