package app

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ryan-rushton/toolhub/internal/hub"
	"github.com/ryan-rushton/toolhub/internal/messages"
	"github.com/ryan-rushton/toolhub/internal/registry"
)

// Model is the top-level application model that manages screen transitions.
// The hub is kept while a tool has the screen so going back restores the
// search, expansion and widget state.
type Model struct {
	hub        hub.Model
	current    tea.Model
	theme      string
	windowSize tea.WindowSizeMsg
}

func New(load hub.LoadFunc, opts hub.Options) Model {
	h := hub.New(load, opts)
	return Model{
		hub:     h,
		current: h,
		theme:   opts.Theme,
	}
}

func (m Model) Init() tea.Cmd {
	return m.current.Init()
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.windowSize = ws
	}

	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch msg := msg.(type) {
	case messages.BackMsg:
		if _, onHub := m.current.(hub.Model); onHub {
			return m, nil
		}
		m.current = m.hub
		return m, func() tea.Msg { return m.windowSize }

	case messages.ToolSelectedMsg:
		if t := registry.Get(msg.ID); t != nil {
			if h, onHub := m.current.(hub.Model); onHub {
				m.hub = h
				m.theme = h.Theme()
			}
			tool := t.New(registry.Options{
				Theme:  m.theme,
				Width:  m.windowSize.Width,
				Height: m.windowSize.Height,
			})
			m.current = tool
			return m, tea.Batch(tool.Init(), func() tea.Msg { return m.windowSize })
		}
		return m, nil
	}

	updated, cmd := m.current.Update(msg)
	m.current = updated
	if h, onHub := updated.(hub.Model); onHub {
		m.hub = h
		return m, cmd
	}

	// Loads started by the hub's frames keep arriving while a tool has the
	// screen. Input stays with the tool.
	switch msg.(type) {
	case tea.KeyMsg, tea.WindowSizeMsg:
		return m, cmd
	}
	h, hubCmd := m.hub.Update(msg)
	m.hub = h.(hub.Model)
	return m, tea.Batch(cmd, hubCmd)
}

func (m Model) View() string {
	return m.current.View()
}
