// Package ui is the interactive completion explorer: type an identifier
// prefix or "expr.seed" and watch the suggestions the engine computes for
// the end of the loaded script.
package ui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"scriptsense/internal/complete"
)

// Options configure the explorer.
type Options struct {
	Engine *complete.Engine
	Source string
	Title  string
	// Warm runs in the background on start, e.g. preloading imported
	// modules. Optional.
	Warm func(context.Context) error
}

// Explorer is the Bubble Tea model.
type Explorer struct {
	opts    Options
	ctx     context.Context
	input   textinput.Model
	spinner spinner.Model
	warming bool
	warmErr error
	items   []complete.Item
	cursor  int
	elapsed float64
	width   int
	height  int
}

type warmDoneMsg struct{ err error }

// New builds the model and computes the initial (empty prefix) listing.
func New(opts Options) *Explorer {
	in := textinput.New()
	in.Prompt = "> "
	in.Placeholder = "name prefix or expr.seed"
	in.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))

	m := &Explorer{
		opts:    opts,
		ctx:     context.Background(),
		input:   in,
		spinner: sp,
		warming: opts.Warm != nil,
		width:   80,
		height:  24,
	}
	m.refresh()
	return m
}

// Run starts the explorer on the alternate screen.
func Run(opts Options) error {
	_, err := tea.NewProgram(New(opts), tea.WithAltScreen()).Run()
	return err
}

func (m *Explorer) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.opts.Warm != nil {
		warm := m.opts.Warm
		ctx := m.ctx
		cmds = append(cmds, m.spinner.Tick, func() tea.Msg {
			return warmDoneMsg{err: warm(ctx)}
		})
	}
	return tea.Batch(cmds...)
}

func (m *Explorer) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyUp:
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case tea.KeyDown:
			if m.cursor < len(m.items)-1 {
				m.cursor++
			}
			return m, nil
		case tea.KeyEnter, tea.KeyTab:
			m.accept()
			return m, nil
		}
		var cmd tea.Cmd
		before := m.input.Value()
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != before {
			m.refresh()
		}
		return m, cmd
	case warmDoneMsg:
		m.warming = false
		m.warmErr = msg.err
		m.refresh()
		return m, nil
	case spinner.TickMsg:
		if !m.warming {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	case tea.WindowSizeMsg:
		if msg.Width > 0 {
			m.width = msg.Width
		}
		if msg.Height > 0 {
			m.height = msg.Height
		}
		return m, nil
	}
	return m, nil
}

func (m *Explorer) refresh() {
	if m.opts.Engine == nil {
		return
	}
	m.items = m.opts.Engine.Query(m.ctx, m.opts.Source, "", m.input.Value())
	m.elapsed = m.opts.Engine.Timings().Report().TotalMS
	if m.cursor >= len(m.items) {
		m.cursor = max(len(m.items)-1, 0)
	}
}

// accept replaces the seed with the selected item.
func (m *Explorer) accept() {
	if m.cursor >= len(m.items) {
		return
	}
	text := m.items[m.cursor].Text
	if expr, _, ok := complete.SplitQuery(m.input.Value()); ok {
		text = expr + "." + text
	}
	m.input.SetValue(text)
	m.input.CursorEnd()
	m.cursor = 0
	m.refresh()
}

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("7"))
	dimStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	selectedStyle = lipgloss.NewStyle().Reverse(true)
	errorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
)

func (m *Explorer) View() string {
	var b strings.Builder
	title := m.opts.Title
	if title == "" {
		title = "scriptsense"
	}
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n")

	status := fmt.Sprintf("%d items  %.2f ms", len(m.items), m.elapsed)
	switch {
	case m.warming:
		status = m.spinner.View() + " loading modules  " + status
	case m.warmErr != nil:
		status = errorStyle.Render("module warm-up failed: "+m.warmErr.Error()) + "  " + status
	}
	b.WriteString(dimStyle.Render(status))
	b.WriteString("\n\n")

	rows := m.height - 5
	if rows < 1 {
		rows = 1
	}
	start := 0
	if m.cursor >= rows {
		start = m.cursor - rows + 1
	}
	kindWidth := 12
	nameWidth := (m.width - kindWidth - 4) * 2 / 3
	if nameWidth < 16 {
		nameWidth = 16
	}
	detailWidth := m.width - kindWidth - nameWidth - 4
	for i := start; i < len(m.items) && i < start+rows; i++ {
		it := m.items[i]
		name := pad(truncate(it.Display, nameWidth), nameWidth)
		line := fmt.Sprintf("%s %s %s", styleKind(it.Kind).Render(fmt.Sprintf("%-12s", it.Kind)), name, dimStyle.Render(truncate(it.Detail, detailWidth)))
		if i == m.cursor {
			line = selectedStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return b.String()
}

func styleKind(k complete.Kind) lipgloss.Style {
	switch k {
	case complete.KindClass, complete.KindConstructor:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	case complete.KindMethod, complete.KindFunction:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	case complete.KindModule:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("5"))
	case complete.KindBuiltin:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	}
}

func truncate(value string, width int) string {
	if width <= 0 {
		return ""
	}
	if runewidth.StringWidth(value) <= width {
		return value
	}
	if width <= 3 {
		return runewidth.Truncate(value, width, "")
	}
	return runewidth.Truncate(value, width, "...")
}

func pad(value string, width int) string {
	return runewidth.FillRight(value, width)
}
