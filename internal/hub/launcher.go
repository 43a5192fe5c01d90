package hub

import (
	"fmt"
	"net/url"
	"os/exec"
	"runtime"

	"github.com/ryan-rushton/toolhub/internal/catalog"
)

// ActionKind is the behaviour chosen for a tool activation.
type ActionKind int

const (
	ActionNone ActionKind = iota
	ActionOpenExternal
	ActionFullView
	ActionNotice
	ActionNative
)

// Action is what activating a tool should do.
type Action struct {
	Kind   ActionKind
	URL    string
	Title  string
	Notice string
	ToolID string
}

// Launch routes a tool activation by its type. It has no side effects; the
// hub carries out the returned action.
func Launch(t catalog.Tool) Action {
	switch t.Type {
	case catalog.TypeLink:
		if !t.HasURL() {
			return Action{Kind: ActionNone}
		}
		// Native tools have no browser to open in, so they take over the
		// screen instead.
		u, err := url.Parse(t.URL)
		if err != nil {
			return Action{Kind: ActionNone}
		}
		if u.Scheme == catalog.NativeScheme && u.Host != "" {
			return Action{Kind: ActionNative, ToolID: u.Host}
		}
		// Only web pages go to the system handler.
		if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return Action{Kind: ActionNone}
		}
		return Action{Kind: ActionOpenExternal, URL: t.URL}

	case catalog.TypeIframe:
		if !catalog.ValidEmbedURL(t.URL) {
			return Action{Kind: ActionNone}
		}
		return Action{Kind: ActionFullView, URL: t.URL, Title: t.Name}

	default:
		return Action{Kind: ActionNotice, Notice: fmt.Sprintf("%q is not available yet.", t.Name)}
	}
}

// openExternal starts the platform's URL handler as a detached process.
// The child gets no handle back to the hub.
var openExternal = func(target string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", target)
	case "windows":
		cmd = exec.Command("rundll32", "url.dll,FileProtocolHandler", target)
	default:
		cmd = exec.Command("xdg-open", target)
	}
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("opening %s: %w", target, err)
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
