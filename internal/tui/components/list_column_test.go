package components

import (
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/hema/internal/domain"
)

func chapters(n int) []domain.ListItem {
	items := make([]domain.Chapter, n)
	for i := range items {
		items[i] = domain.Chapter{ID: i + 1, ChapterNumber: i + 1, Title: fmt.Sprintf("Chapter %d", i+1)}
	}
	return domain.AsListItems(items)
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestListColumn_Loading(t *testing.T) {
	col := NewListColumn(ColumnTypeChapters, "Fior di Battaglia")
	col.SetSize(60, 20)

	assert.True(t, col.IsLoading())
	assert.Contains(t, col.View(), "Loading...")
	assert.Nil(t, col.SelectedItem())
}

func TestListColumn_Failed(t *testing.T) {
	col := NewListColumn(ColumnTypeChapters, "Fior di Battaglia")
	col.SetSize(60, 20)

	col.SetFailed("Book not found", false)
	view := col.View()
	assert.Contains(t, view, "Book not found")
	assert.Contains(t, view, "Press r to retry")

	col.SetFailed("", true)
	view = col.View()
	assert.Contains(t, view, "Failed to load chapters")
	assert.Contains(t, view, "Retrying...")
	assert.NotContains(t, view, "Press r to retry")
}

func TestListColumn_EmptyMessages(t *testing.T) {
	tests := []struct {
		colType ColumnType
		want    string
	}{
		{ColumnTypeBooks, "No fighting books available yet."},
		{ColumnTypeChapters, "No chapters available yet."},
		{ColumnTypeTechniques, "No techniques available yet."},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			col := NewListColumn(tt.colType, "title")
			col.SetSize(60, 20)
			col.SetItems(nil, false, false)

			assert.Contains(t, col.View(), tt.want)
			assert.Equal(t, 0, col.ItemCount())
			assert.Nil(t, col.SelectedItem())
		})
	}
}

func TestListColumn_RendersRows(t *testing.T) {
	col := NewListColumn(ColumnTypeChapters, "Fior di Battaglia")
	col.SetSize(80, 20)
	col.SetItems(domain.AsListItems([]domain.Chapter{
		{ID: 3, ChapterNumber: 3, Title: "Longsword", Description: "The sword in two hands."},
	}), false, false)

	view := col.View()
	assert.Contains(t, view, "Longsword")
	assert.Contains(t, view, "The sword in two hands.")
	assert.Contains(t, view, " 3. ")
}

func TestListColumn_NavigationAndSelection(t *testing.T) {
	col := NewListColumn(ColumnTypeChapters, "title")
	col.SetSize(60, 10) // 5 visible rows
	col.SetItems(chapters(10), false, false)

	col.Update(runes("j"))
	col.Update(runes("j"))
	selected, ok := col.SelectedItem().(domain.Chapter)
	require.True(t, ok)
	assert.Equal(t, 3, selected.ID)

	col.Update(runes("G"))
	assert.Equal(t, 9, col.SelectedIndex())
	col.Update(runes("g"))
	assert.Equal(t, 0, col.SelectedIndex())
}

func TestListColumn_SetItemsKeepsSelection(t *testing.T) {
	col := NewListColumn(ColumnTypeBooks, "title")
	col.SetSize(60, 10)
	col.SetItems(chapters(5), false, false)
	col.SetSelectedIndex(4)

	col.SetItems(chapters(10), false, false)
	assert.Equal(t, 4, col.SelectedIndex())

	col.SetItems(chapters(2), false, false)
	assert.Equal(t, 1, col.SelectedIndex())
}

func TestListColumn_NearEnd(t *testing.T) {
	col := NewListColumn(ColumnTypeBooks, "title")
	col.SetSize(60, 10) // 5 visible rows
	col.SetItems(chapters(20), false, false)

	// 15 rows left below the viewport
	assert.False(t, col.NearEnd())

	// cursor 17 scrolls the viewport to rows 13..17, leaving 2 rows (<= 2.5)
	col.SetSelectedIndex(17)
	assert.True(t, col.NearEnd())

	// rows 12..16 leave 3 rows, more than half a viewport
	col.SetSelectedIndex(0)
	col.SetSelectedIndex(16)
	assert.False(t, col.NearEnd())
}

func TestListColumn_NearEndWhenListFitsViewport(t *testing.T) {
	col := NewListColumn(ColumnTypeBooks, "title")
	col.SetSize(60, 20)
	col.SetItems(chapters(3), false, false)

	assert.True(t, col.NearEnd())

	col.SetLoading()
	assert.False(t, col.NearEnd())
}

func TestListColumn_LoadingMoreFooter(t *testing.T) {
	col := NewListColumn(ColumnTypeBooks, "HEMA Lessons")
	col.SetSize(60, 20)
	col.SetItems(chapters(3), false, true)

	assert.Contains(t, col.View(), "Loading more...")
	assert.True(t, col.IsBusy())

	col.SetItems(chapters(3), false, false)
	assert.NotContains(t, col.View(), "Loading more...")
	assert.False(t, col.IsBusy())
}

func TestListColumn_FilterByTitleThenDescription(t *testing.T) {
	col := NewListColumn(ColumnTypeTechniques, "Longsword")
	col.SetSize(80, 20)
	col.SetItems(domain.AsListItems([]domain.Technique{
		{ID: 1, Name: "Posta di Donna", Description: "The woman's guard."},
		{ID: 2, Name: "Colpo di Villano", Description: "Defending against the peasant's blow."},
		{ID: 3, Name: "Zornhau", Description: "The strike of wrath."},
	}), false, false)

	col.ToggleFilter()
	require.True(t, col.IsFilterTyping())

	col.Update(runes("zorn"))
	require.Equal(t, 1, col.ItemCount())
	assert.Equal(t, 3, col.SelectedItem().GetID())
	assert.Contains(t, col.View(), "[1/3]")

	// Enter accepts the filter and leaves the matches navigable
	col.Update(tea.KeyMsg{Type: tea.KeyEnter})
	assert.True(t, col.IsFiltering())
	assert.False(t, col.IsFilterTyping())

	col.ClearFilter()
	assert.Equal(t, 3, col.ItemCount())

	// "peasant" only appears in a description
	col.ToggleFilter()
	col.Update(runes("peasant"))
	require.Equal(t, 1, col.ItemCount())
	assert.Equal(t, 2, col.SelectedItem().GetID())

	col.Update(tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, col.IsFiltering())
	assert.Equal(t, 3, col.ItemCount())
}

func TestListColumn_FilterDisablesNearEnd(t *testing.T) {
	col := NewListColumn(ColumnTypeBooks, "title")
	col.SetSize(60, 20)
	col.SetItems(chapters(3), false, false)

	col.ToggleFilter()
	assert.False(t, col.NearEnd())
}

func TestListColumn_FilterNoMatches(t *testing.T) {
	col := NewListColumn(ColumnTypeChapters, "title")
	col.SetSize(60, 20)
	col.SetItems(chapters(3), false, false)

	col.ToggleFilter()
	col.Update(runes("qqq"))

	assert.Equal(t, 0, col.ItemCount())
	assert.Contains(t, col.View(), "No matches")
}

func TestListColumn_StaleErrorFooter(t *testing.T) {
	col := NewListColumn(ColumnTypeBooks, "HEMA Lessons")
	col.SetSize(80, 20)
	col.SetItems(chapters(3), false, false)

	col.SetStaleError("Request failed with status code 500")
	view := col.View()
	assert.Contains(t, view, "Request failed with status code 500. Press r to retry")
	assert.Contains(t, view, "Chapter 1")

	// hidden while the refresh it asks for is running
	col.SetItems(chapters(3), true, false)
	assert.NotContains(t, col.View(), "Press r to retry")

	col.SetItems(chapters(3), false, false)
	col.SetStaleError("")
	assert.NotContains(t, col.View(), "Press r to retry")
}
