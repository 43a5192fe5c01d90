package messages

import (
	"encoding/json"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
)

// BackMsg is sent by tools when they want to leave their screen.
type BackMsg struct{}

// ToolSelectedMsg asks the app to run a native tool on its own screen.
type ToolSelectedMsg struct {
	ID string
}

// ActionThemeChanged is the only host action embedded tools understand.
const ActionThemeChanged = "themeChanged"

// HostMsg is delivered by the hub to a tool mounted in an embedded frame.
// It mirrors the {action, theme} payload a web host would post to a frame.
type HostMsg struct {
	Action string `json:"action"`
	Theme  string `json:"theme"`
}

// ParseHostMsg decodes a host payload, rejecting unknown actions and themes.
func ParseHostMsg(b []byte) (HostMsg, error) {
	var m HostMsg
	if err := json.Unmarshal(b, &m); err != nil {
		return HostMsg{}, fmt.Errorf("decoding host message: %w", err)
	}
	if m.Action != ActionThemeChanged {
		return HostMsg{}, fmt.Errorf("unknown host action %q", m.Action)
	}
	if m.Theme != "dark" && m.Theme != "light" {
		return HostMsg{}, fmt.Errorf("unknown theme %q", m.Theme)
	}
	return m, nil
}

// ThemeChanged builds the host message for a theme switch.
func ThemeChanged(theme string) HostMsg {
	return HostMsg{Action: ActionThemeChanged, Theme: theme}
}

// standalone wraps a tool model so that BackMsg causes a quit instead of
// navigating back, used when a tool is launched directly via CLI.
type standalone struct {
	inner tea.Model
}

// Standalone wraps a model for direct CLI invocation.
func Standalone(m tea.Model) tea.Model {
	return standalone{inner: m}
}

func (s standalone) Init() tea.Cmd {
	return s.inner.Init()
}

func (s standalone) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "ctrl+c" {
		return s, tea.Quit
	}
	if _, ok := msg.(BackMsg); ok {
		return s, tea.Quit
	}
	m, cmd := s.inner.Update(msg)
	s.inner = m
	return s, cmd
}

func (s standalone) View() string {
	return s.inner.View()
}
