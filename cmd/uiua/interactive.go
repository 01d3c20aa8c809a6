package main

import (
	"errors"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Jacob-Lockwood/uiua/engine"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	topStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	stackStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	echoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888888"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const historyLines = 8

type replModel struct {
	machine *engine.Machine
	opts    []engine.Option
	input   textinput.Model
	pending []string
	history []string
}

func newReplModel(limit int) *replModel {
	var opts []engine.Option
	if limit > 0 {
		opts = append(opts, engine.WithLimit(limit))
	}
	ti := textinput.New()
	ti.Prompt = "» "
	ti.Width = 60
	ti.Focus()
	return &replModel{
		machine: engine.NewMachine(engine.DefaultTable(), opts...),
		opts:    opts,
		input:   ti,
	}
}

func (m *replModel) Init() tea.Cmd {
	return textinput.Blink
}

func (m *replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "ctrl+d":
			return m, tea.Quit

		case "esc":
			m.pending = nil
			m.input.SetValue("")
			m.input.Prompt = "» "
			return m, nil

		case "enter":
			m.submit(m.input.Value())
			m.input.SetValue("")
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

// submit accumulates the line and evaluates once the listing parses. A line
// that opens an fn body leaves the parser waiting for its ), so the prompt
// switches to a continuation marker until the block closes.
func (m *replModel) submit(line string) {
	if strings.TrimSpace(line) == "" && len(m.pending) == 0 {
		return
	}
	m.pending = append(m.pending, line)
	src := strings.Join(m.pending, "\n")

	instrs, err := parseListing(src)
	if errors.Is(err, errOpenBlock) {
		m.input.Prompt = "… "
		return
	}
	m.pending = nil
	m.input.Prompt = "» "
	for _, l := range strings.Split(src, "\n") {
		m.record(echoStyle.Render("» " + l))
	}
	if err != nil {
		m.record(errorStyle.Render(err.Error()))
		return
	}

	// evaluate transactionally: a failed line leaves the stack untouched
	snapshot := m.machine.Stack()
	if err := m.machine.Run(instrs); err != nil {
		m.machine = engine.NewMachine(engine.DefaultTable(), m.opts...)
		for _, v := range snapshot {
			m.machine.Push(v)
		}
		m.record(errorStyle.Render(err.Error()))
	}
}

func (m *replModel) record(line string) {
	m.history = append(m.history, line)
	if len(m.history) > historyLines {
		m.history = m.history[len(m.history)-historyLines:]
	}
}

func (m *replModel) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("uiua"))
	b.WriteString(" interactive evaluator\n\n")

	for _, h := range m.history {
		b.WriteString(h)
		b.WriteString("\n")
	}
	if len(m.history) > 0 {
		b.WriteString("\n")
	}

	b.WriteString("Stack:\n")
	stack := m.machine.Stack()
	if len(stack) == 0 {
		b.WriteString(helpStyle.Render("  (empty)"))
		b.WriteString("\n")
	}
	for i := len(stack) - 1; i >= 0; i-- {
		line := "  " + formatValue(stack[i])
		if i == len(stack)-1 {
			b.WriteString(topStyle.Render(line))
		} else {
			b.WriteString(stackStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.input.View())
	b.WriteString("\n\n")
	b.WriteString(helpStyle.Render("enter evaluate • esc cancel block • ctrl+c quit"))
	return b.String()
}

func runInteractive(limit int) error {
	p := tea.NewProgram(newReplModel(limit), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
