package tui

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/mmcdole/hema/internal/api"
	"github.com/mmcdole/hema/internal/domain"
	"github.com/mmcdole/hema/internal/fakeapi"
	"github.com/mmcdole/hema/internal/navigation"
	"github.com/mmcdole/hema/internal/query"
	"github.com/mmcdole/hema/internal/service"
)

const (
	waitFor = 2 * time.Second
	tick    = 5 * time.Millisecond

	postaURL = "https://videos.example.com/posta-di-donna.mp4"
)

type recordingLauncher struct {
	mu   sync.Mutex
	urls []string
	err  error
}

func (l *recordingLauncher) Launch(url string) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.urls = append(l.urls, url)
	return l.err
}

func (l *recordingLauncher) URLs() []string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.urls...)
}

// appSuite drives the model against the fake backend over real HTTP
type appSuite struct {
	suite.Suite

	backend  *fakeapi.Server
	httpSrv  *httptest.Server
	launcher *recordingLauncher
	content  *service.ContentService
	model    Model
}

func TestAppSuite(t *testing.T) {
	suite.Run(t, new(appSuite))
}

func (s *appSuite) SetupTest() {
	s.backend = fakeapi.New(fakeapi.Sample())
	s.httpSrv = s.backend.Start()
	s.launcher = &recordingLauncher{}
}

func (s *appSuite) TearDownTest() {
	s.model.Close()
	s.httpSrv.Close()
}

// start builds the model with a fresh cache and sizes the window
func (s *appSuite) start() {
	client := api.NewClient(s.httpSrv.URL, time.Second, nil)
	content := api.NewContent(client)
	queries := query.NewClient(query.WithRetryDelay(func(int) time.Duration { return 0 }))
	s.content = service.NewContentService(content, content, queries, 2, nil)
	playback := service.NewPlaybackService(s.launcher, nil)

	s.model = NewModel(s.content, playback, nil)
	s.send(tea.WindowSizeMsg{Width: 120, Height: 40})
}

func (s *appSuite) send(msg tea.Msg) tea.Cmd {
	next, cmd := s.model.Update(msg)
	s.model = next.(Model)
	return cmd
}

func (s *appSuite) press(keys string) tea.Cmd {
	switch keys {
	case "enter":
		return s.send(tea.KeyMsg{Type: tea.KeyEnter})
	case "esc":
		return s.send(tea.KeyMsg{Type: tea.KeyEsc})
	default:
		return s.send(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(keys)})
	}
}

// eventually delivers query updates until cond holds
func (s *appSuite) eventually(cond func() bool) {
	s.T().Helper()
	require.Eventually(s.T(), func() bool {
		s.send(queryUpdatedMsg{})
		return cond()
	}, waitFor, tick)
}

func (s *appSuite) viewContains(text string) func() bool {
	return func() bool {
		return strings.Contains(s.model.View(), text)
	}
}

func (s *appSuite) fetchTechnique(chapterID, id int) domain.Technique {
	techniques, err := s.content.FetchTechniques(s.T().Context(), chapterID)
	require.NoError(s.T(), err)
	for _, t := range techniques {
		if t.ID == id {
			return t
		}
	}
	s.T().Fatalf("technique %d not found", id)
	return domain.Technique{}
}

func (s *appSuite) Test_BooksLoad() {
	s.start()

	assert.Contains(s.T(), s.model.View(), "Loading...")
	s.eventually(s.viewContains("Fior di Battaglia"))

	view := s.model.View()
	assert.Contains(s.T(), view, "Fiore dei Liberi, 1409")
	assert.Contains(s.T(), view, "HEMA Lessons")
}

func (s *appSuite) Test_BooksLoadNextPageWhileViewportHasRoom() {
	s.start()

	books := s.model.Top().(*BooksScreen)
	s.eventually(func() bool {
		return books.ItemCount() == 4 && !books.Busy()
	})
	assert.Equal(s.T(), 2, s.backend.Requests("/api/fighting-books"))
	assert.Contains(s.T(), s.model.View(), "Anonymous Gladiatoria")
}

func (s *appSuite) Test_EmptyChapters() {
	s.start()
	s.model.push(navigation.ChaptersRoute{BookID: 3, BookTitle: "Opera Nova"})

	s.eventually(s.viewContains("No chapters available yet."))
	chapters := s.model.Top().(*ChaptersScreen)
	assert.Equal(s.T(), 0, chapters.ItemCount())
	assert.Nil(s.T(), chapters.SelectedItem())

	_, ok := chapters.Open()
	assert.False(s.T(), ok)
}

func (s *appSuite) Test_SelectingChapterOpensItsTechniques() {
	s.start()
	s.model.push(navigation.ChaptersRoute{BookID: 1, BookTitle: "Fior di Battaglia"})

	chapters := s.model.Top().(*ChaptersScreen)
	s.eventually(func() bool { return chapters.ItemCount() == 3 })
	chapters.SetSelectedIndex(2)

	s.press("enter")

	assert.Equal(s.T(), navigation.TechniquesRoute{ChapterID: 3, ChapterTitle: "Longsword"}, s.model.Stack.Top().Route)
	assert.Equal(s.T(), 2, s.model.Stack.Depth())
	s.eventually(s.viewContains("Posta di Donna"))
	assert.Contains(s.T(), s.model.View(), "HEMA Lessons › Fior di Battaglia › Longsword")
}

func (s *appSuite) Test_SelectingBookOpensItsChapters() {
	s.start()
	s.eventually(s.viewContains("Fior di Battaglia"))

	s.press("enter")

	assert.Equal(s.T(), navigation.ChaptersRoute{BookID: 1, BookTitle: "Fior di Battaglia"}, s.model.Stack.Top().Route)
	s.eventually(s.viewContains("Abrazare"))
}

func (s *appSuite) Test_TechniqueIsPassedUnchangedToDetail() {
	s.start()
	s.model.push(navigation.TechniquesRoute{ChapterID: 3, ChapterTitle: "Longsword"})

	techniques := s.model.Top().(*TechniquesScreen)
	s.eventually(func() bool { return techniques.ItemCount() == 2 })

	s.press("enter")

	route, ok := s.model.Stack.Top().Route.(navigation.TechniqueDetailRoute)
	require.True(s.T(), ok)
	assert.Equal(s.T(), s.fetchTechnique(3, 1), route.Technique)
}

func (s *appSuite) Test_TechniqueWithoutVideoShowsPlaceholder() {
	s.start()
	technique := s.fetchTechnique(3, 2)
	s.model.push(navigation.ForTechnique(technique))

	view := s.model.View()
	assert.Contains(s.T(), view, "No video available yet")
	assert.NotContains(s.T(), view, "Play Video")

	s.press("enter")
	assert.Equal(s.T(), "No video available yet", s.model.StatusMsg)
	assert.Empty(s.T(), s.launcher.URLs())
}

func (s *appSuite) Test_PlayOpensExactVideoURL() {
	s.start()
	technique := s.fetchTechnique(3, 1)
	s.model.push(navigation.ForTechnique(technique))

	assert.Contains(s.T(), s.model.View(), "▶ Play Video")

	cmd := s.press("p")
	require.NotNil(s.T(), cmd)
	msg := cmd()
	require.IsType(s.T(), VideoOpenedMsg{}, msg)
	s.send(msg)

	assert.Equal(s.T(), []string{postaURL}, s.launcher.URLs())
	assert.Equal(s.T(), "Opened video: Posta di Donna", s.model.StatusMsg)
	assert.False(s.T(), s.model.StatusIsErr)
}

func (s *appSuite) Test_VideoLaunchFailureIsShown() {
	s.launcher.err = errors.New("no player found")
	s.start()
	s.model.push(navigation.ForTechnique(s.fetchTechnique(3, 1)))

	cmd := s.press("enter")
	require.NotNil(s.T(), cmd)
	s.send(cmd())

	assert.Equal(s.T(), "Could not open video: no player found", s.model.StatusMsg)
	assert.True(s.T(), s.model.StatusIsErr)
	assert.Equal(s.T(), 1, s.model.Stack.Depth())
}

func (s *appSuite) Test_BackReturnsToPriorScreen() {
	s.start()
	s.eventually(s.viewContains("Fior di Battaglia"))
	root := s.model.Top()
	root.(*BooksScreen).SetSelectedIndex(1)

	s.press("enter")
	require.Equal(s.T(), 1, s.model.Stack.Depth())

	s.press("h")
	assert.Equal(s.T(), 0, s.model.Stack.Depth())
	assert.Same(s.T(), root, s.model.Top())
	assert.Equal(s.T(), 1, root.(*BooksScreen).SelectedIndex())

	// the root is never popped
	s.press("esc")
	assert.Equal(s.T(), 0, s.model.Stack.Depth())
}

func (s *appSuite) Test_FailedLoadCanBeRetried() {
	s.backend.FailNext("/api/fighting-books", http.StatusInternalServerError, http.StatusInternalServerError, http.StatusInternalServerError)
	s.start()

	s.eventually(s.viewContains("Press r to retry"))
	assert.Equal(s.T(), 3, s.backend.Requests("/api/fighting-books"))

	s.press("r")
	s.eventually(s.viewContains("Fior di Battaglia"))
}

func (s *appSuite) Test_FailedRefreshKeepsRowsAndShowsError() {
	s.start()
	books := s.model.Top().(*BooksScreen)
	s.eventually(func() bool {
		return books.ItemCount() == 4 && !books.Busy()
	})

	s.backend.FailNext("/api/fighting-books", http.StatusInternalServerError, http.StatusInternalServerError, http.StatusInternalServerError)
	s.press("r")

	s.eventually(s.viewContains("Request failed with status code 500. Press r to retry"))
	assert.Contains(s.T(), s.model.View(), "Fior di Battaglia")

	s.press("r")
	s.eventually(func() bool {
		return !books.Busy() && !strings.Contains(s.model.View(), "Press r to retry")
	})
}

func (s *appSuite) Test_RefreshAllReloadsBookList() {
	s.start()
	books := s.model.Top().(*BooksScreen)
	s.eventually(func() bool {
		return books.ItemCount() == 4 && !books.Busy()
	})

	s.backend.SetBooks(fakeapi.Sample().Books[:1])
	s.press("R")

	s.eventually(func() bool {
		return books.ItemCount() == 1 && !books.Busy()
	})
}

func (s *appSuite) Test_RefreshAll() {
	s.start()
	s.eventually(func() bool { return s.backend.Requests("/api/fighting-books") == 2 })

	cmd := s.press("R")
	assert.NotNil(s.T(), cmd)
	assert.Equal(s.T(), "Refreshing all content...", s.model.StatusMsg)

	s.eventually(func() bool { return s.backend.Requests("/api/fighting-books") > 2 })
}

func (s *appSuite) Test_FilterTypingCapturesKeys() {
	s.start()
	s.model.push(navigation.ChaptersRoute{BookID: 1, BookTitle: "Fior di Battaglia"})
	chapters := s.model.Top().(*ChaptersScreen)
	s.eventually(func() bool { return chapters.ItemCount() == 3 })

	s.press("/")
	s.press("h")

	assert.Equal(s.T(), 1, s.model.Stack.Depth())
	assert.True(s.T(), chapters.IsFilterTyping())

	// esc clears the filter before it navigates
	s.press("esc")
	assert.False(s.T(), chapters.IsFiltering())
	assert.Equal(s.T(), 1, s.model.Stack.Depth())
}

func (s *appSuite) Test_HelpToggles() {
	s.start()

	s.press("?")
	assert.Equal(s.T(), StateHelp, s.model.State)
	assert.Contains(s.T(), s.model.View(), "refresh all")

	s.press("?")
	assert.Equal(s.T(), StateBrowsing, s.model.State)
}

func (s *appSuite) Test_HealthCheck() {
	s.start()

	msg := HealthCheckCmd(s.content)()
	require.IsType(s.T(), HealthCheckedMsg{}, msg)
	assert.NoError(s.T(), msg.(HealthCheckedMsg).Err)

	s.backend.FailNext("/healthz", http.StatusServiceUnavailable)
	s.send(HealthCheckCmd(s.content)())
	assert.True(s.T(), s.model.StatusIsErr)
	assert.True(s.T(), strings.HasPrefix(s.model.StatusMsg, "API unreachable: "))
}

func (s *appSuite) Test_SpinnerTicks() {
	s.start()

	cmd := s.send(TickMsg{})
	assert.NotNil(s.T(), cmd)
	assert.Equal(s.T(), 1, s.model.SpinnerFrame)
}
