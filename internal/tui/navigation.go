package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/hema/internal/navigation"
)

// push opens a route on top of the stack. The new screen starts its
// query right away; cached data shows without a loading state.
func (m Model) push(route navigation.Route) (tea.Model, tea.Cmd) {
	screen := newScreen(route, m.ContentSvc, m.updates.Notify)
	screen.SetSpinner(m.spinnerFrame())
	m.Stack.Push(route, screen)
	m.logger.Debug("navigated", "route", navigation.Describe(route), "depth", m.Stack.Depth())

	m.updateLayout()
	return m, nil
}

// pop closes the top screen and returns to the one below it, with its
// selection and scroll position intact
func (m Model) pop() (tea.Model, tea.Cmd) {
	popped, ok := m.Stack.Pop()
	if !ok {
		return m, nil
	}
	popped.Screen.Close()
	m.logger.Debug("navigated back", "from", navigation.Describe(popped.Route), "depth", m.Stack.Depth())

	m.Top().Sync()
	m.updateLayout()
	return m, nil
}

// openSelection drills into the selected item of the top screen
func (m Model) openSelection() (tea.Model, tea.Cmd) {
	route, ok := m.Top().Open()
	if !ok {
		return m, nil
	}
	return m.push(route)
}
