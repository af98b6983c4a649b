// Package tui is the terminal front end of the recipe finder. It renders
// the state of a finder.Controller and forwards key presses to it.
package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/windoze95/recipefinder/internal/finder"
	"github.com/windoze95/recipefinder/internal/models"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// Lines used by the title, input, status and help around the body.
	chromeHeight = 8
)

// stateMsg carries a fresh controller snapshot into Update.
type stateMsg finder.State

// closedMsg reports that the controller has shut down.
type closedMsg struct{}

// Model is the bubbletea model for one search session.
type Model struct {
	ctrl     *finder.Controller
	input    textinput.Model
	spinner  spinner.Model
	viewport viewport.Model

	state  finder.State
	shown  *models.RecipeDetail
	cursor int
	width  int
	height int
}

// New creates a model bound to ctrl. The caller owns ctrl and closes it
// after the program exits.
func New(ctrl *finder.Controller) Model {
	ti := textinput.New()
	ti.Placeholder = "Search for a recipe..."
	ti.Prompt = "> "
	ti.CharLimit = 200
	ti.Focus()

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))

	return Model{
		ctrl:     ctrl,
		input:    ti,
		spinner:  sp,
		viewport: viewport.New(defaultWidth, defaultHeight-chromeHeight),
		state:    ctrl.State(),
		width:    defaultWidth,
		height:   defaultHeight,
	}
}

// waitForChange blocks until the controller signals a change.
func waitForChange(ctrl *finder.Controller) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ctrl.Changes(); !ok {
			return closedMsg{}
		}
		return stateMsg(ctrl.State())
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, waitForChange(m.ctrl))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.input.Width = msg.Width - 4
		m.viewport.Width = msg.Width
		m.viewport.Height = max(msg.Height-chromeHeight, 3)
		if m.state.ShowingDetail() {
			m.viewport.SetContent(renderDetail(m.state.Selected, m.width))
		}
		return m, nil

	case stateMsg:
		m.applyState(finder.State(msg))
		return m, waitForChange(m.ctrl)

	case closedMsg:
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.state.ShowingDetail() {
		switch msg.String() {
		case "esc", "backspace", "left":
			m.ctrl.Back()
			m.applyState(m.ctrl.State())
			return m, nil
		}
		var cmd tea.Cmd
		m.viewport, cmd = m.viewport.Update(msg)
		return m, cmd
	}

	switch msg.String() {
	case "up":
		if m.cursor > 0 {
			m.cursor--
		}
		return m, nil
	case "down":
		if m.cursor < len(m.state.Results)-1 {
			m.cursor++
		}
		return m, nil
	case "enter":
		if m.state.ShowingGrid() && m.cursor < len(m.state.Results) {
			m.ctrl.Select(m.state.Results[m.cursor].ID)
			m.applyState(m.ctrl.State())
		}
		return m, nil
	case "esc":
		m.input.SetValue("")
		m.ctrl.SetQuery("")
		m.applyState(m.ctrl.State())
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != m.state.Query {
		m.ctrl.SetQuery(m.input.Value())
		m.applyState(m.ctrl.State())
	}
	return m, cmd
}

// applyState stores s, keeps the cursor on the grid and loads the detail
// view when a different recipe opens.
func (m *Model) applyState(s finder.State) {
	m.state = s

	if m.cursor >= len(s.Results) {
		m.cursor = max(len(s.Results)-1, 0)
	}

	if !s.ShowingDetail() {
		m.shown = nil
		return
	}
	if s.Selected != m.shown {
		m.shown = s.Selected
		m.viewport.SetContent(renderDetail(s.Selected, m.width))
		m.viewport.GotoTop()
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("Recipe Finder"))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")

	if m.state.Error != "" {
		b.WriteString(errorStyle.Render(m.state.Error))
		b.WriteString("\n\n")
	}

	switch {
	case m.state.ShowingDetail():
		b.WriteString(m.viewport.View())
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓ scroll • esc back • ctrl+c quit"))
		return b.String()

	case m.state.DetailLoading:
		b.WriteString(fmt.Sprintf("%s Loading recipe...", m.spinner.View()))
		b.WriteString("\n")
		return b.String()
	}

	b.WriteString(m.gridView())
	b.WriteString(helpStyle.Render("type to search • ↑/↓ move • enter open • esc clear • ctrl+c quit"))
	return b.String()
}

func (m Model) gridView() string {
	var b strings.Builder

	if m.state.Loading {
		b.WriteString(fmt.Sprintf("%s Searching...\n", m.spinner.View()))
	}

	if len(m.state.Results) == 0 {
		if !m.state.Loading && m.state.Error == "" && strings.TrimSpace(m.state.DebouncedQuery) != "" {
			b.WriteString(dimStyle.Render("No recipes found."))
			b.WriteString("\n")
		}
		return b.String()
	}

	visible := max(m.height-chromeHeight, 3)
	start := 0
	if m.cursor >= visible {
		start = m.cursor - visible + 1
	}
	end := min(start+visible, len(m.state.Results))

	for i := start; i < end; i++ {
		r := m.state.Results[i]
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("▸ " + r.Title))
		} else {
			b.WriteString(itemStyle.Render(r.Title))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// renderDetail formats a recipe for the viewport.
func renderDetail(d *models.RecipeDetail, width int) string {
	wrap := lipgloss.NewStyle().Width(max(width-2, 20))

	var b strings.Builder
	b.WriteString(titleStyle.Render(d.Title))
	b.WriteString("\n")
	if d.Image != "" {
		b.WriteString(dimStyle.Render(d.Image))
		b.WriteString("\n")
	}

	b.WriteString(headingStyle.Render("Ingredients:"))
	b.WriteString("\n")
	for _, ing := range d.Ingredients {
		b.WriteString(wrap.Render("• " + ing.Original))
		b.WriteString("\n")
	}

	b.WriteString(headingStyle.Render("Instructions:"))
	b.WriteString("\n")
	steps := finder.NumberSteps(finder.SplitInstructions(d.Instructions))
	if len(steps) == 0 {
		b.WriteString(dimStyle.Render("No instructions available."))
		b.WriteString("\n")
	}
	for _, step := range steps {
		b.WriteString(wrap.Render(step))
		b.WriteString("\n")
	}
	return b.String()
}
