package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/poolkit/poolkit/pool"
)

// View renders the entire UI
func (m Model) View() string {
	if m.showHelp {
		return m.renderHelp()
	}

	header := headerStyle.Render(fmt.Sprintf("poolview — %d blocks × %d bytes",
		m.pool.Cap(), m.pool.BlockSize()))
	grid := gridStyle.Render(m.renderGrid())
	status := m.renderStatus()
	help := helpStyle.Render("a alloc · f free · x bad free · r reset · ? help · q quit")

	return lipgloss.JoinVertical(lipgloss.Left, header, grid, status, help)
}

// renderGrid draws one styled rune per block: ■ allocated, · free.
func (m Model) renderGrid() string {
	var b strings.Builder
	for i := 0; i < m.pool.Cap(); i++ {
		_, allocated := m.refs[pool.Ref(i)]

		cell := "·"
		style := freeCellStyle
		if allocated {
			cell = "■"
			style = usedCellStyle
		}
		if i == m.cursor {
			style = cursorCellStyle
		}
		b.WriteString(style.Render(cell))

		if (i+1)%m.cols == 0 {
			b.WriteString("\n")
		} else {
			b.WriteString(" ")
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) renderStatus() string {
	s := m.pool.Stats()
	counts := fmt.Sprintf("free %d/%d · allocs %d · frees %d · rejected %d",
		m.pool.FreeCount(), m.pool.Cap(), s.AllocCalls, s.FreeCalls, s.FreeFailures)

	if m.statusMessage == "" {
		return statusStyle.Render(counts)
	}
	msg := m.statusMessage
	if m.statusIsError {
		msg = statusErrorStyle.Render(msg)
	}
	return statusStyle.Render(counts + " — " + msg)
}

func (m Model) renderHelp() string {
	lines := []string{
		headerStyle.Render("poolview keys"),
		"  ↑/↓/←/→, hjkl  move cursor",
		"  g / G          first / last block",
		"  a              allocate the lowest-index free block",
		"  f              free the block under the cursor",
		"  x              attempt an out-of-range free (rejected)",
		"  r              reset the pool",
		"  q              quit",
		"",
		helpStyle.Render("press any key to close"),
	}
	return strings.Join(lines, "\n")
}
