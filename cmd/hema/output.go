package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/mmcdole/hema/internal/domain"
	"github.com/mmcdole/hema/internal/tui/styles"
)

const descriptionWidth = 48

var (
	headerStyle = lipgloss.NewStyle().Foreground(styles.Brass).Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
	labelStyle  = lipgloss.NewStyle().Foreground(styles.Brass).Bold(true).Width(14)
)

func newTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.DimGray)).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		}).
		Headers(headers...)
}

func printBooks(w io.Writer, books []domain.FightingBook) {
	t := newTable("ID", "TITLE", "SWORD MASTER", "YEAR")
	for _, b := range books {
		t.Row(strconv.Itoa(b.ID), b.Title, b.SwordMasterName, b.YearLabel())
	}
	fmt.Fprintln(w, t.Render())
}

func printBook(w io.Writer, b domain.FightingBook) {
	field := func(label, value string) {
		fmt.Fprintln(w, labelStyle.Render(label)+value)
	}
	field("Title", b.Title)
	field("Sword master", b.SwordMasterName)
	field("Year", b.YearLabel())
	if b.Description != "" {
		field("Description", b.Description)
	}
}

func printChapters(w io.Writer, chapters []domain.Chapter) {
	t := newTable("#", "ID", "TITLE", "DESCRIPTION")
	for _, c := range chapters {
		t.Row(strconv.Itoa(c.ChapterNumber), strconv.Itoa(c.ID), c.Title, styles.Truncate(c.Description, descriptionWidth))
	}
	fmt.Fprintln(w, t.Render())
}

func printTechniques(w io.Writer, techniques []domain.Technique) {
	t := newTable("#", "ID", "NAME", "VIDEO")
	for _, tq := range techniques {
		video := "-"
		if tq.HasVideo() {
			video = tq.Video()
		}
		t.Row(strconv.Itoa(tq.OrderInChapter), strconv.Itoa(tq.ID), tq.Name, video)
	}
	fmt.Fprintln(w, t.Render())
}
