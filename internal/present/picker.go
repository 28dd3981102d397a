// SPDX-License-Identifier: AGPL-3.0-or-later

package present

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bartekus/concommit/internal/cochange"
)

// ErrNoSelection is returned when the user leaves the picker without choosing.
var ErrNoSelection = errors.New("no file selected")

// Presenter lets the user choose one of the ranked files.
type Presenter interface {
	Select(ctx context.Context, title string, entries []cochange.Entry) (string, error)
}

// Compile-time interface conformance check.
var _ Presenter = (*PickerPresenter)(nil)

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FFFF"))
	selectedStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#00FF00"))
	countStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	helpStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("8")).Italic(true)
)

// PickerPresenter shows an interactive terminal list.
type PickerPresenter struct {
	In  io.Reader
	Out io.Writer
}

// Select runs the picker until the user chooses a file or cancels.
func (p *PickerPresenter) Select(ctx context.Context, title string, entries []cochange.Entry) (string, error) {
	if len(entries) == 0 {
		return "", ErrNoSelection
	}

	opts := []tea.ProgramOption{tea.WithContext(ctx)}
	if p.In != nil {
		opts = append(opts, tea.WithInput(p.In))
	}
	if p.Out != nil {
		opts = append(opts, tea.WithOutput(p.Out))
	}

	final, err := tea.NewProgram(newPicker(title, entries), opts...).Run()
	if err != nil {
		return "", fmt.Errorf("running picker: %w", err)
	}
	return final.(picker).Choice()
}

// picker is the bubbletea model behind PickerPresenter.
type picker struct {
	title   string
	entries []cochange.Entry
	cursor  int
	chosen  int
	done    bool
}

func newPicker(title string, entries []cochange.Entry) picker {
	return picker{title: title, entries: entries, chosen: -1}
}

func (m picker) Init() tea.Cmd { return nil }

func (m picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		m.done = true
		m.chosen = -1
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.entries)-1 {
			m.cursor++
		}
	case "home", "g":
		m.cursor = 0
	case "end", "G":
		m.cursor = len(m.entries) - 1
	case "enter":
		m.done = true
		m.chosen = m.cursor
		return m, tea.Quit
	}
	return m, nil
}

func (m picker) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(m.title))
	b.WriteString("\n\n")
	for i, e := range m.entries {
		count := countStyle.Render(fmt.Sprintf("(%d)", e.Count))
		if i == m.cursor {
			b.WriteString(selectedStyle.Render("> "+e.Path) + " " + count)
		} else {
			b.WriteString("  " + e.Path + " " + count)
		}
		b.WriteString("\n")
	}
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("↑/k up • ↓/j down • enter open • esc/q cancel"))
	b.WriteString("\n")
	return b.String()
}

// Choice returns the chosen path, or ErrNoSelection.
func (m picker) Choice() (string, error) {
	if m.chosen < 0 || m.chosen >= len(m.entries) {
		return "", ErrNoSelection
	}
	return m.entries[m.chosen].Path, nil
}
