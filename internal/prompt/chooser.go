package prompt

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var (
	promptStyle   = lipgloss.NewStyle().Bold(true)
	cursorStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	selectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("212")).Bold(true)
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
}

var defaultKeyMap = keyMap{
	Up:     key.NewBinding(key.WithKeys("up", "k")),
	Down:   key.NewBinding(key.WithKeys("down", "j")),
	Select: key.NewBinding(key.WithKeys("enter")),
	Cancel: key.NewBinding(key.WithKeys("esc", "q", "ctrl+c")),
}

// chooserModel is a minimal single-select list.
type chooserModel struct {
	prompt   string
	options  []string
	cursor   int
	chosen   bool
	canceled bool
	keys     keyMap
}

func newChooserModel(prompt string, options []string, defaultIndex int) chooserModel {
	if defaultIndex < 0 || defaultIndex >= len(options) {
		defaultIndex = 0
	}
	return chooserModel{
		prompt:  prompt,
		options: options,
		cursor:  defaultIndex,
		keys:    defaultKeyMap,
	}
}

// Init implements tea.Model.
func (m chooserModel) Init() tea.Cmd { return nil }

// Update implements tea.Model.
func (m chooserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, m.keys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
	case key.Matches(keyMsg, m.keys.Down):
		if m.cursor < len(m.options)-1 {
			m.cursor++
		}
	case key.Matches(keyMsg, m.keys.Select):
		m.chosen = true
		return m, tea.Quit
	case key.Matches(keyMsg, m.keys.Cancel):
		m.canceled = true
		return m, tea.Quit
	}
	return m, nil
}

// View implements tea.Model.
func (m chooserModel) View() string {
	var b strings.Builder
	b.WriteString(promptStyle.Render(m.prompt))
	b.WriteString("\n\n")
	for i, option := range m.options {
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> "))
			b.WriteString(selectedStyle.Render(option))
		} else {
			b.WriteString("  ")
			b.WriteString(option)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("up/down: move • enter: select • esc: cancel"))
	b.WriteString("\n")
	return b.String()
}

// Terminal is the production ChoiceProvider, backed by a Bubble Tea list.
type Terminal struct{}

// Choose runs the chooser and returns the selected option. A zero-option
// list resolves to an empty choice without entering the terminal UI.
func (Terminal) Choose(prompt string, options []string, defaultIndex int) (string, error) {
	if len(options) == 0 {
		return "", nil
	}

	final, err := tea.NewProgram(newChooserModel(prompt, options, defaultIndex)).Run()
	if err != nil {
		return "", fmt.Errorf("running chooser: %w", err)
	}

	m, ok := final.(chooserModel)
	if !ok || !m.chosen || m.canceled {
		return "", ErrCanceled
	}
	return m.options[m.cursor], nil
}
