package tui

import (
	"errors"
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/hema/internal/api"
	"github.com/mmcdole/hema/internal/domain"
	"github.com/mmcdole/hema/internal/navigation"
	"github.com/mmcdole/hema/internal/service"
	"github.com/mmcdole/hema/internal/tui/styles"
)

// ApplicationState represents the current state of the application
type ApplicationState int

const (
	StateBrowsing ApplicationState = iota
	StateHelp
)

// Layout proportions for Miller Columns
const (
	// Two columns: [Parent | Active]
	ParentColumnPercent2 = 35

	// Three columns: [Grandparent | Parent | Active]
	GrandparentColumnPercent = 22
	ParentColumnPercent3     = 28

	MinColumnWidth = 15

	// Below this width only the active column is shown
	MinMultiColumnWidth = 80

	// Vertical layout: breadcrumb header + footer line
	ChromeHeight = 2

	statusDuration = 3 * time.Second
)

// spinnerFrames drives every loading indicator
var spinnerFrames = spinner.MiniDot

// Model is the main Bubble Tea model for the application
type Model struct {
	// Application state
	State ApplicationState
	Ready bool

	// Services
	ContentSvc  *service.ContentService
	PlaybackSvc *service.PlaybackService

	// Navigation stack; each entry keeps its screen alive until popped
	Stack *navigation.Stack[Screen]

	updates *queryNotifier
	help    help.Model
	logger  *slog.Logger

	// Dimensions
	Width  int
	Height int

	// UI state
	StatusMsg    string
	StatusIsErr  bool
	SpinnerFrame int
}

// NewModel creates a new application model rooted at the book list
func NewModel(
	contentSvc *service.ContentService,
	playbackSvc *service.PlaybackService,
	logger *slog.Logger,
) Model {
	if logger == nil {
		logger = slog.Default()
	}

	h := help.New()
	h.Styles.ShortKey = styles.HelpKeyStyle
	h.Styles.ShortDesc = styles.HelpDescStyle
	h.Styles.FullKey = styles.HelpKeyStyle
	h.Styles.FullDesc = styles.HelpDescStyle

	updates := newQueryNotifier()
	root := newBooksScreen(contentSvc, updates.Notify)

	return Model{
		State:       StateBrowsing,
		ContentSvc:  contentSvc,
		PlaybackSvc: playbackSvc,
		Stack:       navigation.NewStack[Screen](navigation.BooksRoute{}, root),
		updates:     updates,
		help:        h,
		logger:      logger,
	}
}

// Init initializes the application
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		waitForQueryUpdateCmd(m.updates.ch),
		HealthCheckCmd(m.ContentSvc),
		TickCmd(spinnerFrames.FPS),
	)
}

// Close unsubscribes every screen still on the stack
func (m Model) Close() {
	m.Stack.Each(func(e navigation.Entry[Screen]) {
		e.Screen.Close()
	})
}

// Update handles all messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Ready = true
		m.help.Width = msg.Width
		m.updateLayout()
		return m, nil

	case tea.KeyMsg:
		return m.handleKeyMsg(msg)

	case queryUpdatedMsg:
		m.syncScreens()
		return m, waitForQueryUpdateCmd(m.updates.ch)

	case TickMsg:
		m.SpinnerFrame++
		frame := m.spinnerFrame()
		m.Stack.Each(func(e navigation.Entry[Screen]) {
			e.Screen.SetSpinner(frame)
		})
		return m, TickCmd(spinnerFrames.FPS)

	case ClearStatusMsg:
		m.StatusMsg = ""
		m.StatusIsErr = false
		return m, nil

	case HealthCheckedMsg:
		if msg.Err != nil {
			m.logger.Warn("health check failed", "error", msg.Err)
			m.StatusMsg = "API unreachable: " + api.NormalizeError(msg.Err).Message
			m.StatusIsErr = true
			return m, ClearStatusCmd(statusDuration)
		}
		m.logger.Debug("health check ok", "status", msg.Health.Status, "timestamp", msg.Health.Timestamp)
		return m, nil

	case VideoOpenedMsg:
		m.StatusMsg = "Opened video: " + msg.Technique.Name
		m.StatusIsErr = false
		return m, ClearStatusCmd(statusDuration)

	case VideoFailedMsg:
		if errors.Is(msg.Err, domain.ErrNoVideo) {
			m.StatusMsg = "No video available yet"
			m.StatusIsErr = false
		} else {
			cause := msg.Err
			if inner := errors.Unwrap(cause); inner != nil {
				cause = inner
			}
			m.StatusMsg = "Could not open video: " + cause.Error()
			m.StatusIsErr = true
		}
		return m, ClearStatusCmd(statusDuration)
	}

	return m, nil
}

// Top returns the screen on top of the navigation stack
func (m Model) Top() Screen {
	return m.Stack.Top().Screen
}

// syncScreens pulls fresh query state into every screen on the stack
func (m *Model) syncScreens() {
	m.Stack.Each(func(e navigation.Entry[Screen]) {
		e.Screen.Sync()
	})
}

func (m Model) spinnerFrame() string {
	return spinnerFrames.Frames[m.SpinnerFrame%len(spinnerFrames.Frames)]
}

// busy returns true while any screen shows a loading indicator
func (m Model) busy() bool {
	busy := false
	m.Stack.Each(func(e navigation.Entry[Screen]) {
		busy = busy || e.Screen.Busy()
	})
	return busy
}
