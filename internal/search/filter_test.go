package search

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmcdole/hema/internal/domain"
)

func chapters() []domain.ListItem {
	return domain.AsListItems([]domain.Chapter{
		{ID: 1, ChapterNumber: 1, Title: "Abrazare", Description: "Grappling at close quarters."},
		{ID: 2, ChapterNumber: 2, Title: "Daga", Description: "Dagger against dagger."},
		{ID: 3, ChapterNumber: 3, Title: "Longsword", Description: "The sword in two hands."},
	})
}

func TestFilter(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  []int
	}{
		{name: "empty query", query: "  ", want: nil},
		{name: "exact title", query: "Daga", want: []int{1}},
		{name: "case insensitive", query: "LONG", want: []int{2}},
		{name: "fuzzy title", query: "lngswd", want: []int{2}},
		{name: "description word", query: "grappl", want: []int{0}},
		{name: "title before description", query: "sword", want: []int{2}},
		{name: "no match", query: "zwerchau", want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(tt.query, chapters())
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFilterTitleMatchesRankFirst(t *testing.T) {
	items := domain.AsListItems([]domain.Technique{
		{ID: 1, Name: "Posta di Donna", Description: "Guard with the point behind."},
		{ID: 2, Name: "Colpo di Villano", Description: "Answer to the wide posta blow."},
		{ID: 3, Name: "Posta Longa", Description: "Arms extended."},
	})

	got := Filter("posta", items)

	assert.ElementsMatch(t, []int{0, 2}, got[:2])
	assert.Equal(t, 1, got[2])
}
