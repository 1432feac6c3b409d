package tui

import (
	"github.com/mmcdole/hema/internal/navigation"
)

// columnLayout holds calculated column widths for the View
type columnLayout struct {
	grandparentWidth int // 0 if not shown
	parentWidth      int // 0 if not shown
	activeWidth      int
}

// calculateColumnLayout computes column widths based on stack depth
func (m Model) calculateColumnLayout(availableWidth int) columnLayout {
	stackLen := m.Stack.Len()
	layout := columnLayout{}

	// Helper to apply minimum width
	applyMin := func(width int) int {
		return max(width, MinColumnWidth)
	}

	if availableWidth < MinMultiColumnWidth {
		stackLen = 1
	}

	switch stackLen {
	case 1:
		layout.activeWidth = availableWidth

	case 2:
		// [Parent | Active]
		layout.parentWidth = applyMin(availableWidth * ParentColumnPercent2 / 100)
		layout.activeWidth = applyMin(availableWidth - layout.parentWidth)

	default:
		// [Grandparent | Parent | Active]
		layout.grandparentWidth = applyMin(availableWidth * GrandparentColumnPercent / 100)
		layout.parentWidth = applyMin(availableWidth * ParentColumnPercent3 / 100)
		layout.activeWidth = applyMin(availableWidth - layout.grandparentWidth - layout.parentWidth)
	}

	return layout
}

// visibleColumns returns the screens shown side by side, leftmost first,
// with their widths
func (m Model) visibleColumns() ([]Screen, []int) {
	layout := m.calculateColumnLayout(m.Width)
	topIdx := m.Stack.Len() - 1

	var screens []Screen
	var widths []int
	add := func(idx, width int) {
		if width <= 0 {
			return
		}
		if e, ok := m.Stack.Get(idx); ok {
			screens = append(screens, e.Screen)
			widths = append(widths, width)
		}
	}
	add(topIdx-2, layout.grandparentWidth)
	add(topIdx-1, layout.parentWidth)
	add(topIdx, layout.activeWidth)
	return screens, widths
}

// updateLayout updates component sizes and focus based on window size
func (m *Model) updateLayout() {
	if m.Width == 0 || m.Height == 0 {
		return
	}

	contentHeight := m.Height - ChromeHeight
	top := m.Top()

	screens, widths := m.visibleColumns()
	for i, screen := range screens {
		screen.SetSize(widths[i], contentHeight)
	}
	m.Stack.Each(func(e navigation.Entry[Screen]) {
		e.Screen.SetFocused(e.Screen == top)
	})
}
