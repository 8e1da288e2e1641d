package main

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/poolkit/poolkit/pool"
)

// Model is the main application model: one pool plus cursor/UI state.
type Model struct {
	pool *pool.Pool
	keys KeyMap

	// Grid geometry
	cols   int
	cursor int // block index under the cursor

	// Live block refs, so freeing via the cursor goes through the same
	// handle API a real caller would use.
	refs map[pool.Ref][]byte

	width  int
	height int

	showHelp bool

	// statusMessage carries transient feedback (e.g. rejected frees).
	statusMessage string
	statusIsError bool
}

// NewModel builds the TUI model around a fresh pool.
func NewModel(blockSize, blockCount int) (Model, error) {
	p, err := pool.New(blockSize, blockCount)
	if err != nil {
		return Model{}, err
	}
	return Model{
		pool: p,
		keys: DefaultKeyMap(),
		cols: 16,
		refs: make(map[pool.Ref][]byte),
	}, nil
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return nil
}

func (m *Model) setStatus(msg string, isErr bool) {
	m.statusMessage = msg
	m.statusIsError = isErr
}
