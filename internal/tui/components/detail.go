package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/hema/internal/domain"
	"github.com/mmcdole/hema/internal/tui/styles"
)

// Layout constants for the detail view
const (
	DetailBorderHeight     = 2
	DetailScrollIndicators = 2
)

const (
	PlayLabel      = "▶ Play Video"
	NoVideoLabel   = "No video available yet"
	noDescription  = "No description."
	noInstructions = "No instructions."
)

// TechniqueDetail shows one technique. The header (name and video
// section) stays fixed while the text below it scrolls.
type TechniqueDetail struct {
	technique domain.Technique
	viewport  viewport.Model
	width     int
	height    int
}

// NewTechniqueDetail creates a detail view for the technique
func NewTechniqueDetail(technique domain.Technique) *TechniqueDetail {
	vp := viewport.New(0, 0)
	vp.KeyMap = viewport.KeyMap{
		Up:           DetailKeys.Up,
		Down:         DetailKeys.Down,
		HalfPageUp:   DetailKeys.HalfUp,
		HalfPageDown: DetailKeys.HalfDown,
	}
	return &TechniqueDetail{technique: technique, viewport: vp}
}

// Technique returns the technique being shown
func (d *TechniqueDetail) Technique() domain.Technique {
	return d.technique
}

// SetSize updates the component dimensions and re-wraps the body
func (d *TechniqueDetail) SetSize(width, height int) {
	d.width = width
	d.height = height

	header := d.renderHeader(d.contentWidth())
	bodyHeight := height - DetailBorderHeight - DetailScrollIndicators - lipgloss.Height(header)
	if bodyHeight < 1 {
		bodyHeight = 1
	}
	d.viewport.Width = d.contentWidth()
	d.viewport.Height = bodyHeight
	d.viewport.SetContent(d.renderBody(d.contentWidth()))
}

// Update scrolls the body
func (d *TechniqueDetail) Update(msg tea.Msg) tea.Cmd {
	if msg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(msg, DetailKeys.Top):
			d.viewport.GotoTop()
			return nil
		case key.Matches(msg, DetailKeys.Bottom):
			d.viewport.GotoBottom()
			return nil
		}
	}
	var cmd tea.Cmd
	d.viewport, cmd = d.viewport.Update(msg)
	return cmd
}

// View renders the component
func (d *TechniqueDetail) View() string {
	style := styles.ActiveBorder
	width := d.contentWidth()

	top := " "
	if !d.viewport.AtTop() {
		top = styles.DimStyle.Render("↑ more")
	}
	bottom := " "
	if !d.viewport.AtBottom() {
		bottom = styles.DimStyle.Render("↓ more")
	}

	content := strings.Join([]string{
		d.renderHeader(width),
		top,
		d.viewport.View(),
		bottom,
	}, "\n")

	frameW, frameH := style.GetFrameSize()
	return style.
		Width(max(d.width-frameW, 0)).
		Height(max(d.height-frameH, 0)).
		Render(content)
}

func (d *TechniqueDetail) contentWidth() int {
	// Border takes 2 chars (1 each side), leave 1 char safety margin
	w := d.width - 3
	if w < 10 {
		w = 10
	}
	return w
}

func (d *TechniqueDetail) renderHeader(width int) string {
	name := styles.TitleStyle.Render(styles.Truncate(d.technique.Name, width))

	var video string
	if d.technique.HasVideo() {
		video = styles.PlayButtonStyle.Render(PlayLabel) + "\n" +
			styles.DimStyle.Render(styles.Truncate(d.technique.Video(), width))
	} else {
		video = styles.PlaceholderStyle.Render(NoVideoLabel)
	}

	return name + "\n\n" + video
}

func (d *TechniqueDetail) renderBody(width int) string {
	wrap := lipgloss.NewStyle().Width(width)

	description := d.technique.Description
	if strings.TrimSpace(description) == "" {
		description = styles.DimStyle.Render(noDescription)
	}
	instructions := d.technique.Instructions
	if strings.TrimSpace(instructions) == "" {
		instructions = styles.DimStyle.Render(noInstructions)
	}

	return strings.Join([]string{
		styles.SectionStyle.Render("Description"),
		wrap.Render(description),
		styles.SectionStyle.Render("Instructions"),
		wrap.Render(instructions),
	}, "\n")
}
