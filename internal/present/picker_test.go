package present

import (
	"context"
	"fmt"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bartekus/concommit/internal/cochange"
)

var pickEntries = []cochange.Entry{
	{Path: "b.go", Count: 3},
	{Path: "c.go", Count: 2},
	{Path: "d.go", Count: 1},
}

func press(t *testing.T, m picker, keys ...tea.KeyMsg) picker {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(picker)
	}
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestPicker_Navigate(t *testing.T) {
	m := newPicker("title", pickEntries)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown}, runes("j"), runes("j"))
	assert.Equal(t, 2, m.cursor, "cursor stops at the last entry")

	m = press(t, m, tea.KeyMsg{Type: tea.KeyUp})
	assert.Equal(t, 1, m.cursor)

	m = press(t, m, runes("k"), runes("k"))
	assert.Equal(t, 0, m.cursor, "cursor stops at the first entry")

	m = press(t, m, runes("G"))
	assert.Equal(t, 2, m.cursor)
	m = press(t, m, runes("g"))
	assert.Equal(t, 0, m.cursor)
}

func TestPicker_Enter(t *testing.T) {
	m := newPicker("title", pickEntries)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	require.NotNil(t, cmd)
	got, err := next.(picker).Choice()
	require.NoError(t, err)
	assert.Equal(t, "c.go", got)
	assert.Empty(t, next.View())
}

func TestPicker_Cancel(t *testing.T) {
	for _, k := range []tea.KeyMsg{{Type: tea.KeyEsc}, runes("q"), {Type: tea.KeyCtrlC}} {
		m := press(t, newPicker("title", pickEntries), k)
		_, err := m.Choice()
		assert.ErrorIs(t, err, ErrNoSelection)
	}
}

func TestPicker_View(t *testing.T) {
	m := newPicker("Pick a file", pickEntries)
	view := m.View()
	assert.Contains(t, view, "Pick a file")
	assert.Contains(t, view, "> b.go")
	assert.Contains(t, view, "  c.go")

	// Counts follow the path on the selected line and on the others.
	for _, e := range pickEntries {
		assert.Contains(t, view, fmt.Sprintf("(%d)", e.Count))
	}
	m = press(t, m, tea.KeyMsg{Type: tea.KeyDown})
	assert.Contains(t, m.View(), "> c.go")
	assert.Contains(t, m.View(), "  b.go")
	assert.Contains(t, m.View(), "(3)")
}

func TestPickerPresenter_NoEntries(t *testing.T) {
	p := &PickerPresenter{}
	_, err := p.Select(context.Background(), "title", nil)
	assert.ErrorIs(t, err, ErrNoSelection)
}
