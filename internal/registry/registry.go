package registry

import tea "github.com/charmbracelet/bubbletea"

// Options are passed to a tool when it is mounted.
type Options struct {
	// ResultsOnly asks for the compact rendering used by embedded widgets.
	ResultsOnly bool
	Theme       string
	Width       int
	Height      int
}

// Tool defines a native tool that can be mounted in an embedded frame
// (toolhub://<id>/...) or run from its own command.
type Tool struct {
	ID          string
	Name        string
	Description string
	New         func(Options) tea.Model
}

var tools []Tool

// Register adds a tool to the registry.
func Register(t Tool) {
	tools = append(tools, t)
}

// All returns all registered tools.
func All() []Tool {
	return tools
}

// Get returns the tool with the given ID, or nil if not found.
func Get(id string) *Tool {
	for i := range tools {
		if tools[i].ID == id {
			return &tools[i]
		}
	}
	return nil
}
