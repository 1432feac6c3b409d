package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/hema/internal/tui/styles"
)

const breadcrumbSeparator = " › "

// View renders the application
func (m Model) View() string {
	if !m.Ready {
		return "Loading..."
	}

	if m.State == StateHelp {
		return m.renderHelp()
	}

	screens, _ := m.visibleColumns()
	views := make([]string, len(screens))
	for i, screen := range screens {
		views[i] = screen.View()
	}
	content := lipgloss.JoinHorizontal(lipgloss.Top, views...)

	return lipgloss.JoinVertical(
		lipgloss.Left,
		m.renderBreadcrumb(),
		content,
		m.renderFooter(),
	)
}

// renderBreadcrumb renders the route trail, keeping the tail when it
// does not fit
func (m Model) renderBreadcrumb() string {
	crumb := m.Stack.Breadcrumb(breadcrumbSeparator)
	if crumb == "" {
		crumb = " " // Ensure breadcrumb always takes up a line
	}
	if lipgloss.Width(crumb) > m.Width-1 {
		runes := []rune(crumb)
		for len(runes) > 0 && lipgloss.Width(string(runes))+3 > m.Width-1 {
			runes = runes[1:]
		}
		crumb = "..." + string(runes)
	}
	return styles.AccentStyle.Render(styles.Pad(crumb, m.Width))
}

// renderFooter renders a single-line minimal footer
func (m Model) renderFooter() string {
	// Left side: status message, or spinner while anything is loading
	var left string
	switch {
	case m.StatusMsg != "":
		if m.StatusIsErr {
			left = styles.ErrorStyle.Render(m.StatusMsg)
		} else {
			left = styles.DimStyle.Render(m.StatusMsg)
		}
	case m.busy():
		left = styles.SpinnerStyle.Render(m.spinnerFrame()) + " " + styles.DimStyle.Render("Loading...")
	}

	// Center section: context-specific hints
	var bindings []key.Binding
	if _, ok := m.Top().(*TechniqueDetailScreen); ok {
		bindings = Keys.detailHelp()
	} else {
		bindings = Keys.ShortHelp()
	}
	center := m.help.ShortHelpView(bindings)

	// Right side: "? help" hint
	right := styles.AccentStyle.Render("?") + styles.DimStyle.Render(" help")

	// Layout: left + centered hints + right
	leftWidth := lipgloss.Width(left)
	centerWidth := lipgloss.Width(center)
	rightWidth := lipgloss.Width(right)

	totalContent := leftWidth + centerWidth + rightWidth
	if totalContent >= m.Width {
		// Not enough space - just left + right
		gap := m.Width - leftWidth - rightWidth
		if gap < 0 {
			gap = 0
		}
		return left + strings.Repeat(" ", gap) + right
	}

	// Center the hints in available space
	available := m.Width - leftWidth - rightWidth
	leftPad := (available - centerWidth) / 2
	rightPad := available - centerWidth - leftPad

	return left + strings.Repeat(" ", leftPad) + center + strings.Repeat(" ", rightPad) + right
}

// renderHelp renders the help screen
func (m Model) renderHelp() string {
	title := styles.TitleStyle.Render("HEMA Lessons")
	body := m.help.FullHelpView(Keys.FullHelp())
	hint := styles.DimStyle.Render("Press ? or esc to return...")

	return lipgloss.Place(m.Width, m.Height,
		lipgloss.Center, lipgloss.Center,
		styles.ModalStyle.Render(title+"\n\n"+body+"\n\n"+hint))
}
