package main

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestUpdate_AllocFreeCycle(t *testing.T) {
	m, err := NewModel(32, 8)
	require.NoError(t, err)

	// Allocate two blocks.
	next, _ := m.Update(keyMsg("a"))
	m = next.(Model)
	next, _ = m.Update(keyMsg("a"))
	m = next.(Model)

	assert.Equal(t, 6, m.pool.FreeCount())
	assert.Len(t, m.refs, 2)
	assert.Equal(t, 1, m.cursor, "cursor follows the newest allocation")

	// Free the block under the cursor.
	next, _ = m.Update(keyMsg("f"))
	m = next.(Model)
	assert.Equal(t, 7, m.pool.FreeCount())
	assert.Len(t, m.refs, 1)

	// Freeing the same slot again is rejected and surfaces a status message.
	next, _ = m.Update(keyMsg("f"))
	m = next.(Model)
	assert.Equal(t, 7, m.pool.FreeCount())
	assert.True(t, m.statusIsError)
}

func TestUpdate_BadFreeLeavesPoolIntact(t *testing.T) {
	m, err := NewModel(32, 4)
	require.NoError(t, err)

	next, _ := m.Update(keyMsg("a"))
	m = next.(Model)

	next, _ = m.Update(keyMsg("x"))
	m = next.(Model)

	assert.Equal(t, 3, m.pool.FreeCount())
	assert.True(t, m.statusIsError)
}

func TestUpdate_ResetClearsEverything(t *testing.T) {
	m, err := NewModel(32, 4)
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		next, _ := m.Update(keyMsg("a"))
		m = next.(Model)
	}
	require.Equal(t, 1, m.pool.FreeCount())

	next, _ := m.Update(keyMsg("r"))
	m = next.(Model)
	assert.Equal(t, 4, m.pool.FreeCount())
	assert.Empty(t, m.refs)
}

func TestUpdate_CursorClamped(t *testing.T) {
	m, err := NewModel(32, 8)
	require.NoError(t, err)
	m.cols = 4

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m = next.(Model)
	assert.Equal(t, 0, m.cursor, "cursor must not move before block 0")

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(Model)
	assert.Equal(t, 4, m.cursor)

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m = next.(Model)
	assert.Equal(t, 4, m.cursor, "cursor must not move past the last row")
}

func TestView_RendersGrid(t *testing.T) {
	m, err := NewModel(32, 8)
	require.NoError(t, err)

	next, _ := m.Update(keyMsg("a"))
	m = next.(Model)

	out := m.View()
	assert.Contains(t, out, "■", "allocated block marker missing")
	assert.Contains(t, out, "·", "free block marker missing")
	assert.Contains(t, out, "free 7/8")
}
