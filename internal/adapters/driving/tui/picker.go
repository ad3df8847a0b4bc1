// Package tui provides the interactive result picker: a navigable list of
// final hits from which the user opens a file in the configured editor.
package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/coral-tools/coralsearch/internal/core/domain"
)

// Styles groups the lipgloss styles used by the picker.
type Styles struct {
	Title    lipgloss.Style
	Selected lipgloss.Style
	Normal   lipgloss.Style
	Detail   lipgloss.Style
	Muted    lipgloss.Style
}

// DefaultStyles returns the default picker theme.
func DefaultStyles() *Styles {
	return &Styles{
		Title:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		Selected: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		Normal:   lipgloss.NewStyle(),
		Detail:   lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
		Muted:    lipgloss.NewStyle().Faint(true),
	}
}

// Picker is a bubbletea model listing the result set.
type Picker struct {
	results  domain.ResultSet
	styles   *Styles
	selected int
	height   int
	choice   *domain.SearchHit
}

// NewPicker creates a picker over a sorted result set.
func NewPicker(rs domain.ResultSet, s *Styles) *Picker {
	if s == nil {
		s = DefaultStyles()
	}
	return &Picker{results: rs, styles: s, height: 20}
}

// Choice returns the hit picked by the user, or nil when the picker was
// dismissed.
func (p *Picker) Choice() *domain.SearchHit { return p.choice }

// Init implements tea.Model.
func (p *Picker) Init() tea.Cmd { return nil }

// Update handles navigation and selection keys.
func (p *Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.height = msg.Height
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			p.moveUp()
		case "down", "j":
			p.moveDown()
		case "enter":
			if len(p.results) > 0 {
				hit := p.results[p.selected]
				p.choice = &hit
			}
			return p, tea.Quit
		case "q", "esc", "ctrl+c":
			return p, tea.Quit
		}
	}
	return p, nil
}

// View renders the navigable list.
func (p *Picker) View() string {
	if len(p.results) == 0 {
		return p.styles.Muted.Render("No matches") + "\n"
	}

	lines := make([]string, 0, len(p.results)+3)
	lines = append(lines, p.styles.Title.Render(fmt.Sprintf("Matches (%d)", len(p.results))), "")

	visible := p.height - 4
	if visible < 1 {
		visible = 1
	}
	start := 0
	if p.selected >= visible {
		start = p.selected - visible + 1
	}
	end := start + visible
	if end > len(p.results) {
		end = len(p.results)
	}

	for i := start; i < end; i++ {
		lines = append(lines, p.renderHit(i))
	}
	lines = append(lines, "", p.styles.Muted.Render("j/k navigate · enter open · q quit"))
	return strings.Join(lines, "\n")
}

func (p *Picker) renderHit(i int) string {
	hit := p.results[i]
	indicator := "  "
	style := p.styles.Normal
	if i == p.selected {
		indicator = "> "
		style = p.styles.Selected
	}

	line := indicator + style.Render(hit.Path)
	if hit.Origin == domain.OriginContent && hit.Snippet != "" {
		line += "\n    " + p.styles.Detail.Render(fmt.Sprintf("%d: %s", hit.Line, hit.Snippet))
	}
	return line
}

func (p *Picker) moveUp() {
	if p.selected > 0 {
		p.selected--
	}
}

func (p *Picker) moveDown() {
	if p.selected < len(p.results)-1 {
		p.selected++
	}
}

// Run shows the picker and returns the user's choice, nil when dismissed.
func Run(rs domain.ResultSet) (*domain.SearchHit, error) {
	picker := NewPicker(rs, nil)
	model, err := tea.NewProgram(picker).Run()
	if err != nil {
		return nil, fmt.Errorf("run picker: %w", err)
	}
	final, ok := model.(*Picker)
	if !ok {
		return nil, nil
	}
	return final.Choice(), nil
}
