package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/hema/internal/domain"
	"github.com/mmcdole/hema/internal/search"
	"github.com/mmcdole/hema/internal/tui/styles"
)

// Layout constants for list columns
const (
	// Border adds 1 char on each side (left+right for width, top+bottom for height)
	BorderWidth  = 2
	BorderHeight = 2

	// Scroll indicators ("↑ more" and "↓ more") each take 1 line
	ScrollIndicatorLines = 2
)

type listState int

const (
	listLoading listState = iota
	listFailed
	listReady
)

// ListColumn is a scrollable, filterable list of catalogue items.
// It renders one of loading, failed or ready, never a mix of them.
type ListColumn struct {
	items      []domain.ListItem
	columnType ColumnType

	state       listState
	errMessage  string
	retrying    bool
	refreshing  bool
	loadingMore bool
	spinner     string

	// staleErr is the failure of the last refresh or next page; rows stay
	staleErr string

	// Selection
	cursor     int
	offset     int
	maxVisible int

	// Dimensions
	width   int
	height  int
	focused bool

	// Column title (shown in header)
	title string

	// Filter state
	filterActive bool
	filterInput  textinput.Model
	filterQuery  string
	filteredIdx  []int // indices into items
}

// NewListColumn creates a new list column in the loading state
func NewListColumn(colType ColumnType, title string) *ListColumn {
	ti := textinput.New()
	ti.Placeholder = "type to filter..."
	ti.Prompt = "/ "
	ti.PromptStyle = styles.FilterPromptStyle
	ti.TextStyle = styles.FilterStyle

	return &ListColumn{
		columnType:  colType,
		title:       title,
		filterInput: ti,
		focused:     true,
		spinner:     "⠋",
	}
}

// Update handles key input for scrolling and filtering
func (c *ListColumn) Update(msg tea.Msg) tea.Cmd {
	if !c.focused {
		return nil
	}

	// Handle filter input when active AND focused (typing mode)
	if c.filterActive && c.filterInput.Focused() {
		if msg, ok := msg.(tea.KeyMsg); ok {
			switch {
			case key.Matches(msg, ListColumnKeys.Escape):
				c.clearFilter()
				return nil
			case key.Matches(msg, ListColumnKeys.Enter):
				// Accept filter, blur input to allow navigation
				c.filterInput.Blur()
				return nil
			case msg.String() == "backspace" && c.filterInput.Value() == "":
				c.clearFilter()
				return nil
			}
		}

		var cmd tea.Cmd
		c.filterInput, cmd = c.filterInput.Update(msg)
		c.applyFilter()
		return cmd
	}

	count := c.ItemCount()
	if count == 0 {
		return nil
	}

	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	switch {
	case key.Matches(keyMsg, ListColumnKeys.Down):
		if c.cursor < count-1 {
			c.cursor++
			c.ensureVisible()
		}
	case key.Matches(keyMsg, ListColumnKeys.Up):
		if c.cursor > 0 {
			c.cursor--
			c.ensureVisible()
		}
	case key.Matches(keyMsg, ListColumnKeys.Home):
		c.cursor = 0
		c.offset = 0
	case key.Matches(keyMsg, ListColumnKeys.End):
		c.cursor = count - 1
		c.ensureVisible()
	case key.Matches(keyMsg, ListColumnKeys.HalfDown):
		c.moveCursor(c.maxVisible / 2)
	case key.Matches(keyMsg, ListColumnKeys.HalfUp):
		c.moveCursor(-c.maxVisible / 2)
	case key.Matches(keyMsg, ListColumnKeys.PageDown):
		c.moveCursor(c.maxVisible)
	case key.Matches(keyMsg, ListColumnKeys.PageUp):
		c.moveCursor(-c.maxVisible)
	}
	return nil
}

// View renders the column inside its border
func (c *ListColumn) View() string {
	style := styles.InactiveBorder
	if c.focused {
		style = styles.ActiveBorder
	}

	// Subtract frame (border) size so total rendered size equals c.width x c.height
	frameW, frameH := style.GetFrameSize()

	return style.
		Width(max(c.width-frameW, 0)).
		Height(max(c.height-frameH, 0)).
		Render(c.renderContent())
}

func (c *ListColumn) SetSize(width, height int) {
	c.width = width
	c.height = height
	c.recalcMaxVisible()
	c.ensureVisible()
}

func (c *ListColumn) SetFocused(focused bool) {
	c.focused = focused
}

func (c *ListColumn) Title() string {
	return c.title
}

// ColumnType returns the column's content type
func (c *ListColumn) ColumnType() ColumnType {
	return c.columnType
}

// SetSpinner sets the spinner frame drawn next to loading indicators
func (c *ListColumn) SetSpinner(frame string) {
	c.spinner = frame
}

// SetLoading shows the initial loading indicator
func (c *ListColumn) SetLoading() {
	c.state = listLoading
	c.errMessage = ""
	c.retrying = false
	c.refreshing = false
	c.loadingMore = false
}

// SetFailed shows an error. An empty message falls back to the column's
// generic failure text.
func (c *ListColumn) SetFailed(message string, retrying bool) {
	if message == "" {
		message = c.columnType.FailureMessage()
	}
	c.state = listFailed
	c.errMessage = message
	c.retrying = retrying
	c.refreshing = false
	c.loadingMore = false
}

// SetItems shows the items. The cursor and an active filter survive the
// update so pages appended below the viewport do not move the selection.
func (c *ListColumn) SetItems(items []domain.ListItem, refreshing, loadingMore bool) {
	c.state = listReady
	c.errMessage = ""
	c.retrying = false
	c.items = items
	c.refreshing = refreshing
	c.loadingMore = loadingMore

	if c.filterQuery != "" {
		c.filteredIdx = search.Filter(c.filterQuery, c.items)
	}
	c.clampCursor()
	c.ensureVisible()
}

// SetStaleError shows msg under the rows when a refresh or the next page
// failed while data is on screen. An empty msg clears it.
func (c *ListColumn) SetStaleError(msg string) {
	c.staleErr = msg
}

// IsLoading returns true while the first result is pending
func (c *ListColumn) IsLoading() bool {
	return c.state == listLoading
}

// IsBusy returns true while any indicator needs the spinner to animate
func (c *ListColumn) IsBusy() bool {
	return c.state == listLoading || c.retrying || c.refreshing || c.loadingMore
}

// SelectedItem returns the item under the cursor, or nil
func (c *ListColumn) SelectedItem() domain.ListItem {
	count := c.ItemCount()
	if c.state != listReady || count == 0 || c.cursor >= count {
		return nil
	}
	return c.items[c.mapIndex(c.cursor)]
}

func (c *ListColumn) SelectedIndex() int {
	return c.cursor
}

func (c *ListColumn) SetSelectedIndex(idx int) {
	c.cursor = idx
	c.clampCursor()
	c.ensureVisible()
}

// ItemCount returns the number of visible (filtered) items
func (c *ListColumn) ItemCount() int {
	if c.filteredIdx != nil {
		return len(c.filteredIdx)
	}
	return len(c.items)
}

// NearEnd reports whether the rows left below the viewport fit within half
// a viewport. Filtered lists never report near end.
func (c *ListColumn) NearEnd() bool {
	if c.state != listReady || c.filterActive || c.maxVisible <= 0 {
		return false
	}
	remaining := len(c.items) - (c.offset + c.maxVisible)
	if remaining < 0 {
		remaining = 0
	}
	return remaining*2 <= c.maxVisible
}

// ToggleFilter activates the filter input
func (c *ListColumn) ToggleFilter() {
	if c.state != listReady {
		return
	}
	if c.filterActive {
		c.filterInput.Focus()
		return
	}
	c.filterActive = true
	c.filterInput.Focus()
	c.recalcMaxVisible()
}

// IsFiltering returns true if filter mode is active
func (c *ListColumn) IsFiltering() bool {
	return c.filterActive
}

// IsFilterTyping returns true if filter is active AND input is focused
func (c *ListColumn) IsFilterTyping() bool {
	return c.filterActive && c.filterInput.Focused()
}

// ClearFilter deactivates the filter and shows all items
func (c *ListColumn) ClearFilter() {
	c.clearFilter()
}

// Internal methods

func (c *ListColumn) moveCursor(delta int) {
	c.cursor += delta
	c.clampCursor()
	c.ensureVisible()
}

func (c *ListColumn) clampCursor() {
	count := c.ItemCount()
	if c.cursor >= count {
		c.cursor = count - 1
	}
	if c.cursor < 0 {
		c.cursor = 0
	}
}

func (c *ListColumn) recalcMaxVisible() {
	// Interior height = total - border (top+bottom)
	// Reserve space for: title line + scroll indicators (header + footer)
	interiorHeight := c.height - BorderHeight
	c.maxVisible = interiorHeight - ScrollIndicatorLines - 1
	if c.filterActive {
		c.maxVisible--
	}
	if c.maxVisible < 1 {
		c.maxVisible = 1
	}
}

func (c *ListColumn) ensureVisible() {
	// Don't adjust offset if size hasn't been set yet
	if c.height <= 0 {
		return
	}
	if c.cursor < c.offset {
		c.offset = c.cursor
	}
	if c.cursor >= c.offset+c.maxVisible {
		c.offset = c.cursor - c.maxVisible + 1
	}
}

func (c *ListColumn) clearFilter() {
	c.filterActive = false
	c.filterQuery = ""
	c.filteredIdx = nil
	c.filterInput.SetValue("")
	c.filterInput.Blur()
	c.recalcMaxVisible()
	c.clampCursor()
	c.ensureVisible()
}

func (c *ListColumn) applyFilter() {
	query := c.filterInput.Value()
	c.filterQuery = query

	if query == "" {
		c.filteredIdx = nil
		return
	}
	c.filteredIdx = search.Filter(query, c.items)

	// Reset cursor to first match
	c.cursor = 0
	c.offset = 0
}

func (c *ListColumn) mapIndex(i int) int {
	if c.filteredIdx != nil && i < len(c.filteredIdx) {
		return c.filteredIdx[i]
	}
	return i
}

// Rendering

func (c *ListColumn) renderContent() string {
	// Content width = column width - border (2 chars for left+right border)
	itemWidth := c.width - BorderWidth
	if itemWidth < 10 {
		itemWidth = 10
	}

	title := c.title
	if c.refreshing {
		title = c.spinner + " " + title
	}
	titleLine := styles.AccentStyle.Render(styles.Truncate(title, itemWidth))

	switch c.state {
	case listLoading:
		loadingLine := styles.DimStyle.Render(c.spinner + " Loading...")
		return titleLine + "\n \n" + loadingLine + "\n "
	case listFailed:
		errLine := styles.ErrorStyle.Render(styles.Truncate(c.errMessage, itemWidth))
		hint := styles.DimStyle.Render("Press r to retry")
		if c.retrying {
			hint = styles.DimStyle.Render(c.spinner + " Retrying...")
		}
		return titleLine + "\n \n" + errLine + "\n" + hint
	}

	count := c.ItemCount()
	if count == 0 {
		emptyMsg := styles.DimStyle.Render(c.columnType.EmptyMessage())
		if c.filterActive && c.filterQuery != "" {
			emptyMsg = styles.DimStyle.Render("No matches")
		}
		content := titleLine + "\n \n" + emptyMsg + "\n "
		if c.filterActive {
			content += "\n" + c.renderFilterBar()
		}
		return content
	}

	end := c.offset + c.maxVisible
	if end > count {
		end = count
	}

	lines := make([]string, 0, end-c.offset)
	for i := c.offset; i < end; i++ {
		lines = append(lines, c.renderItem(c.items[c.mapIndex(i)], i == c.cursor, itemWidth))
	}

	// ALWAYS reserve space for header (even if empty) to prevent layout shifts
	header := " "
	if c.offset > 0 {
		header = styles.DimStyle.Render("↑ more")
	}

	// ALWAYS reserve space for footer (even if empty)
	footer := " "
	switch {
	case c.loadingMore:
		footer = styles.SpinnerStyle.Render(c.spinner) + styles.DimStyle.Render(" Loading more...")
	case c.staleErr != "" && !c.refreshing:
		footer = styles.ErrorStyle.Render(styles.Truncate(c.staleErr+". Press r to retry", itemWidth))
	case end < count:
		footer = styles.DimStyle.Render("↓ more")
	}

	content := titleLine + "\n" + header + "\n" + strings.Join(lines, "\n") + "\n" + footer

	if c.filterActive {
		content += "\n" + c.renderFilterBar()
	}
	return content
}

func (c *ListColumn) renderItem(item domain.ListItem, selected bool, width int) string {
	brass := styles.Brass
	dim := styles.DimGray
	green := styles.Green

	var parts []styles.RowPart
	used := 2 // margins

	if n := item.GetOrdinal(); n > 0 {
		prefix := fmt.Sprintf("%2d. ", n)
		parts = append(parts, styles.RowPart{Text: prefix, Foreground: &brass})
		used += lipgloss.Width(prefix)
	}
	if t, ok := item.(domain.Technique); ok {
		marker := "  "
		if t.HasVideo() {
			marker = "▶ "
		}
		parts = append(parts, styles.RowPart{Text: marker, Foreground: &green})
		used += lipgloss.Width(marker)
	}

	available := width - used
	if available < 5 {
		available = 5
	}
	title := styles.Truncate(item.GetTitle(), available)
	parts = append(parts, styles.RowPart{Text: title})

	secondary := item.GetDescription()
	if c.columnType == ColumnTypeBooks {
		secondary = item.GetSubtitle()
	}
	if rest := available - lipgloss.Width(title) - 2; secondary != "" && rest >= 5 {
		secondary = strings.Join(strings.Fields(secondary), " ")
		parts = append(parts, styles.RowPart{Text: "  " + styles.Truncate(secondary, rest), Foreground: &dim})
	}

	return styles.RenderListRow(parts, selected, width)
}

func (c *ListColumn) renderFilterBar() string {
	input := c.filterInput.View()

	// Show match count
	countStr := ""
	if c.filterQuery != "" {
		countStr = styles.DimStyle.Render(fmt.Sprintf(" [%d/%d]", c.ItemCount(), len(c.items)))
	}

	return input + countStr
}
