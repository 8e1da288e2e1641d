package main

import (
	"fmt"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/poolkit/poolkit/cmd/poolview/logger"
	"github.com/poolkit/poolkit/pool"
)

// Update handles all messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if m.showHelp {
			// Any bound key closes the help overlay except quit.
			if key.Matches(msg, m.keys.Quit) {
				return m, tea.Quit
			}
			m.showHelp = false
			return m, nil
		}
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-m.cols)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(m.cols)
	case key.Matches(msg, m.keys.Left):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Right):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Home):
		m.cursor = 0
	case key.Matches(msg, m.keys.End):
		m.cursor = m.pool.Cap() - 1

	case key.Matches(msg, m.keys.Alloc):
		ref, buf, err := m.pool.Alloc()
		if err != nil {
			logger.Info("alloc rejected", "error", err)
			m.setStatus(fmt.Sprintf("alloc failed: %v", err), true)
			break
		}
		m.refs[ref] = buf
		m.cursor = int(ref)
		m.setStatus(fmt.Sprintf("allocated block %d", ref), false)

	case key.Matches(msg, m.keys.Free):
		ref := pool.Ref(m.cursor)
		if err := m.pool.Free(ref); err != nil {
			logger.Info("free rejected", "ref", m.cursor, "error", err)
			m.setStatus(fmt.Sprintf("free block %d failed: %v", ref, err), true)
			break
		}
		delete(m.refs, ref)
		m.setStatus(fmt.Sprintf("freed block %d", ref), false)

	case key.Matches(msg, m.keys.FreeStale):
		// Deliberately invalid: one past the end. Shows the validation
		// rejecting it while the pool stays intact.
		bad := pool.Ref(m.pool.Cap())
		err := m.pool.Free(bad)
		m.setStatus(fmt.Sprintf("free block %d: %v (pool unchanged)", bad, err), true)

	case key.Matches(msg, m.keys.Reset):
		m.pool.Reset()
		m.refs = make(map[pool.Ref][]byte)
		m.setStatus("pool reset, all blocks free", false)
	}

	return m, nil
}

// moveCursor clamps cursor movement to the grid.
func (m *Model) moveCursor(delta int) {
	next := m.cursor + delta
	if next < 0 || next >= m.pool.Cap() {
		return
	}
	m.cursor = next
}
