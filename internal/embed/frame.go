// Package embed renders another tool inside the hub. A frame either mounts a
// native tool from the registry (toolhub://<id>/...) or fetches an http page
// and shows its text.
package embed

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ryan-rushton/toolhub/internal/catalog"
	"github.com/ryan-rushton/toolhub/internal/messages"
	"github.com/ryan-rushton/toolhub/internal/registry"
)

// Blank is the neutral location a frame shows when it is closed.
const Blank = "about:blank"

const pageTimeout = 20 * time.Second

var httpClient = &http.Client{Timeout: pageTimeout}

// loadedMsg carries a fetched page back to the frame that asked for it.
type loadedMsg struct {
	frame string
	seq   uint64
	title string
	text  string
	err   error
}

// Frame is the terminal stand-in for an iframe.
type Frame struct {
	name  string
	src   string
	seq   uint64
	theme string

	native   tea.Model
	title    string
	loading  bool
	err      string
	viewport viewport.Model
	width    int
	height   int
}

// New returns a blank frame. name must be unique among live frames.
func New(name, theme string) Frame {
	return Frame{
		name:     name,
		src:      Blank,
		theme:    theme,
		viewport: viewport.New(0, 0),
	}
}

// Src returns the location the frame currently shows.
func (f Frame) Src() string { return f.src }

// Title returns the page title of an http frame, if any.
func (f Frame) Title() string { return f.title }

// Loading reports whether an http page is still being fetched.
func (f Frame) Loading() bool { return f.loading }

// Mounted reports whether a native tool is running inside the frame.
func (f Frame) Mounted() bool { return f.native != nil }

// Navigate points the frame at src. Navigating to the location already shown
// does nothing, so re-evaluations that reach the same outcome never reload.
func (f Frame) Navigate(src string) (Frame, tea.Cmd) {
	if src == f.src {
		return f, nil
	}

	// Everything belonging to the previous page goes: pending loads are
	// invalidated by the sequence bump and the mounted model is dropped.
	f.seq++
	f.src = src
	f.native = nil
	f.title = ""
	f.err = ""
	f.loading = false
	f.viewport.SetContent("")
	f.viewport.GotoTop()

	if src == Blank {
		return f, nil
	}

	u, err := url.Parse(src)
	if err != nil || !catalog.ValidEmbedURL(src) {
		f.err = fmt.Sprintf("cannot embed %q", src)
		return f, nil
	}

	if u.Scheme == catalog.NativeScheme {
		tool := registry.Get(u.Host)
		if tool == nil {
			f.err = fmt.Sprintf("no tool registered as %q", u.Host)
			return f, nil
		}
		f.native = tool.New(registry.Options{
			ResultsOnly: path.Base(u.Path) == catalog.ResultsFile,
			Theme:       f.theme,
			Width:       f.width,
			Height:      f.height,
		})
		return f, f.native.Init()
	}

	f.loading = true
	return f, fetchPage(f.name, f.seq, src)
}

// SetSize resizes the frame's content area.
func (f Frame) SetSize(width, height int) (Frame, tea.Cmd) {
	f.width = width
	f.height = height
	f.viewport.Width = width
	f.viewport.Height = height
	if f.native == nil {
		return f, nil
	}
	var cmd tea.Cmd
	f.native, cmd = f.native.Update(tea.WindowSizeMsg{Width: width, Height: height})
	return f, cmd
}

func (f Frame) Update(msg tea.Msg) (Frame, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		if msg.frame != f.name || msg.seq != f.seq {
			return f, nil
		}
		f.loading = false
		if msg.err != nil {
			f.err = msg.err.Error()
			return f, nil
		}
		f.title = msg.title
		f.viewport.SetContent(msg.text)
		f.viewport.GotoTop()
		return f, nil

	case messages.HostMsg:
		if msg.Action == messages.ActionThemeChanged {
			f.theme = msg.Theme
		}

	case tea.KeyMsg:
		if f.native == nil {
			var cmd tea.Cmd
			f.viewport, cmd = f.viewport.Update(msg)
			return f, cmd
		}
	}

	if f.native == nil {
		return f, nil
	}
	var cmd tea.Cmd
	f.native, cmd = f.native.Update(msg)
	return f, cmd
}

func (f Frame) View() string {
	switch {
	case f.err != "":
		return "Unable to load " + f.src + ": " + f.err
	case f.native != nil:
		return f.native.View()
	case f.loading:
		return "Loading " + f.src + "..."
	case f.src == Blank:
		return ""
	}
	return f.viewport.View()
}

func fetchPage(frame string, seq uint64, src string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), pageTimeout)
		defer cancel()
		title, text, err := loadPage(ctx, src)
		return loadedMsg{frame: frame, seq: seq, title: title, text: text, err: err}
	}
}

func loadPage(ctx context.Context, src string) (string, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, src, nil)
	if err != nil {
		return "", "", fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "text/html")

	resp, err := httpClient.Do(req)
	if err != nil {
		return "", "", fmt.Errorf("fetching page: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", "", fmt.Errorf("page returned status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return "", "", fmt.Errorf("parsing page: %w", err)
	}
	title, text := PageText(doc)
	return title, text, nil
}

// blockSelector lists the elements that become lines of text.
const blockSelector = "h1, h2, h3, h4, h5, h6, p, li, pre, blockquote, tr, dt, dd"

// PageText flattens an html document into a title and readable lines.
func PageText(doc *goquery.Document) (string, string) {
	doc.Find("script, style, noscript, template, svg").Remove()
	title := collapse(doc.Find("title").First().Text())

	var lines []string
	doc.Find(blockSelector).Each(func(_ int, s *goquery.Selection) {
		// Nested blocks are emitted by their own match.
		if s.Find(blockSelector).Length() > 0 && goquery.NodeName(s) != "tr" {
			return
		}
		line := collapse(s.Text())
		if goquery.NodeName(s) == "tr" {
			var cells []string
			s.Find("td, th").Each(func(_ int, c *goquery.Selection) {
				cells = append(cells, collapse(c.Text()))
			})
			line = strings.Join(cells, "  ")
		}
		if line == "" {
			return
		}
		switch goquery.NodeName(s) {
		case "h1", "h2", "h3", "h4", "h5", "h6":
			lines = append(lines, "", strings.ToUpper(line))
		case "li":
			lines = append(lines, "• "+line)
		default:
			lines = append(lines, line)
		}
	})

	if len(lines) == 0 {
		if body := collapse(doc.Find("body").Text()); body != "" {
			lines = append(lines, body)
		}
	}
	return title, strings.TrimSpace(strings.Join(lines, "\n"))
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
