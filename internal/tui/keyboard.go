package tui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// handleKeyMsg handles keyboard input
func (m Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.State == StateHelp {
		if key.Matches(msg, Keys.Escape, Keys.Help, Keys.Quit) {
			m.State = StateBrowsing
		}
		return m, nil
	}

	top := m.Top()

	// Filter typing captures every key
	if f, ok := top.(filterable); ok && f.IsFilterTyping() {
		if key.Matches(msg, Keys.Quit) && msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
		return m, top.Update(msg)
	}

	switch {
	case key.Matches(msg, Keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, Keys.Help):
		m.State = StateHelp
		return m, nil

	case key.Matches(msg, Keys.Escape):
		// Clear active filter first, otherwise go back
		if f, ok := top.(filterable); ok && f.IsFiltering() {
			f.ClearFilter()
			return m, nil
		}
		return m.pop()

	case key.Matches(msg, Keys.Back):
		return m.pop()

	case key.Matches(msg, Keys.Filter):
		if f, ok := top.(filterable); ok {
			f.ToggleFilter()
			m.updateLayout()
		}
		return m, nil

	case key.Matches(msg, Keys.Refresh):
		top.Refresh()
		return m, nil

	case key.Matches(msg, Keys.RefreshAll):
		m.ContentSvc.RefreshAll()
		m.StatusMsg = "Refreshing all content..."
		m.StatusIsErr = false
		return m, ClearStatusCmd(statusDuration)
	}

	if detail, ok := top.(*TechniqueDetailScreen); ok {
		if key.Matches(msg, Keys.Play) {
			technique := detail.Technique()
			if !technique.HasVideo() {
				m.StatusMsg = "No video available yet"
				m.StatusIsErr = false
				return m, ClearStatusCmd(statusDuration)
			}
			m.StatusMsg = "Opening video..."
			m.StatusIsErr = false
			return m, OpenVideoCmd(m.PlaybackSvc, technique)
		}
		return m, detail.Update(msg)
	}

	if key.Matches(msg, Keys.Enter) {
		return m.openSelection()
	}

	return m, top.Update(msg)
}
