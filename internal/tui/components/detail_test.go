package components

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"

	"github.com/mmcdole/hema/internal/domain"
)

func strPtr(s string) *string { return &s }

func TestTechniqueDetail_NoVideoPlaceholder(t *testing.T) {
	d := NewTechniqueDetail(domain.Technique{
		Name:         "Colpo di Villano",
		Description:  "Defending against the peasant's blow.",
		Instructions: "Receive the wide blow with a rising cover.",
	})
	d.SetSize(80, 30)

	view := d.View()
	assert.Contains(t, view, "Colpo di Villano")
	assert.Contains(t, view, NoVideoLabel)
	assert.NotContains(t, view, PlayLabel)
	assert.Contains(t, view, "Description")
	assert.Contains(t, view, "Defending against the peasant's blow.")
	assert.Contains(t, view, "Instructions")
}

func TestTechniqueDetail_EmptyVideoURLIsPlaceholder(t *testing.T) {
	d := NewTechniqueDetail(domain.Technique{Name: "Zornhau", VideoURL: strPtr("")})
	d.SetSize(80, 30)

	assert.Contains(t, d.View(), NoVideoLabel)
}

func TestTechniqueDetail_PlayAffordance(t *testing.T) {
	url := "https://videos.example.com/posta-di-donna.mp4"
	d := NewTechniqueDetail(domain.Technique{Name: "Posta di Donna", VideoURL: strPtr(url)})
	d.SetSize(80, 30)

	view := d.View()
	assert.Contains(t, view, PlayLabel)
	assert.Contains(t, view, url)
	assert.NotContains(t, view, NoVideoLabel)
	assert.Contains(t, view, noDescription)
	assert.Contains(t, view, noInstructions)
}

func TestTechniqueDetail_Scrolls(t *testing.T) {
	d := NewTechniqueDetail(domain.Technique{
		Name:         "Zornhau",
		Instructions: strings.Repeat("Strike diagonally from the right shoulder.\n", 40),
	})
	d.SetSize(60, 16)

	assert.Contains(t, d.View(), "↓ more")
	assert.NotContains(t, d.View(), "↑ more")

	d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("G")})
	assert.Contains(t, d.View(), "↑ more")

	d.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("g")})
	assert.NotContains(t, d.View(), "↑ more")
}
