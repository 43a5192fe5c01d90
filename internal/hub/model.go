// Package hub is the dashboard: a searchable list of tool categories, a
// full view for embedded tools and a side widget for the designated one.
package hub

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ryan-rushton/toolhub/internal/catalog"
	"github.com/ryan-rushton/toolhub/internal/embed"
	"github.com/ryan-rushton/toolhub/internal/messages"
	"github.com/ryan-rushton/toolhub/internal/styles"
)

const (
	fullFrame   = "full"
	widgetFrame = "widget"

	// DefaultCellWidth is how many logical pixels one terminal column counts
	// for when the widget threshold is checked.
	DefaultCellWidth = 8
)

// LoadFunc produces the catalog. It runs off the event loop.
type LoadFunc func() (catalog.Catalog, error)

// Options configures a hub.
type Options struct {
	Version   string
	Theme     string
	MinWidth  int
	CellWidth int
}

type catalogLoadedMsg struct {
	catalog catalog.Catalog
	err     error
}

type openedMsg struct {
	url string
	err error
}

// Model is the dashboard screen.
type Model struct {
	load    LoadFunc
	version string

	catalog  catalog.Catalog
	filtered catalog.Catalog
	loaded   bool
	loadErr  string

	view      ViewState
	rows      []row
	cursor    int
	search    textinput.Model
	searching bool
	notice    string

	theme  string
	styles styles.Styles

	full      embed.Frame
	fullOpen  bool
	fullTitle string

	widget      embed.Frame
	widgetShown bool
	collapsed   bool
	autoEmbed   AutoEmbed
	minWidth    int
	cellWidth   int
	width       int
	height      int
}

func New(load LoadFunc, opts Options) Model {
	theme := opts.Theme
	if theme != styles.ThemeLight {
		theme = styles.ThemeDark
	}
	cellWidth := opts.CellWidth
	if cellWidth <= 0 {
		cellWidth = DefaultCellWidth
	}
	minWidth := opts.MinWidth
	if minWidth <= 0 {
		minWidth = DefaultMinWidth
	}

	ti := textinput.New()
	ti.Placeholder = "Search tools"
	ti.Prompt = "/ "
	ti.CharLimit = 64

	return Model{
		load:      load,
		version:   opts.Version,
		view:      NewViewState(),
		search:    ti,
		theme:     theme,
		styles:    styles.For(theme),
		full:      embed.New(fullFrame, theme),
		widget:    embed.New(widgetFrame, theme),
		minWidth:  minWidth,
		cellWidth: cellWidth,
	}
}

func (m Model) Init() tea.Cmd {
	load := m.load
	return func() tea.Msg {
		c, err := load()
		return catalogLoadedMsg{catalog: c, err: err}
	}
}

// FullViewOpen reports whether an embedded tool fills the screen.
func (m Model) FullViewOpen() bool { return m.fullOpen }

// FullViewSrc is the location shown by the full view frame.
func (m Model) FullViewSrc() string { return m.full.Src() }

// WidgetShown reports whether the auto-embed widget is visible.
func (m Model) WidgetShown() bool { return m.widgetShown }

// WidgetSrc is the location shown by the widget frame.
func (m Model) WidgetSrc() string { return m.widget.Src() }

// Term is the current search term.
func (m Model) Term() string { return m.search.Value() }

// Theme is the active theme name.
func (m Model) Theme() string { return m.theme }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m.relayout()

	case catalogLoadedMsg:
		m.loaded = true
		if msg.err != nil {
			m.loadErr = msg.err.Error()
			return m, nil
		}
		m.loadErr = ""
		m.catalog = msg.catalog
		m.autoEmbed = NewAutoEmbed(msg.catalog, m.minWidth)
		m = m.refilter(false)
		return m.relayout()

	case openedMsg:
		if msg.err != nil {
			m.notice = msg.err.Error()
		}
		return m, nil

	case messages.HostMsg:
		return m.broadcast(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	// Anything else belongs to whatever the frames are running.
	return m.forward(msg)
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.fullOpen {
		switch msg.String() {
		case "esc", "q":
			return m.closeFullView()
		}
		var cmd tea.Cmd
		m.full, cmd = m.full.Update(msg)
		return m, cmd
	}

	if m.searching {
		switch msg.String() {
		case "esc", "enter":
			m.searching = false
			m.search.Blur()
			return m, nil
		}
		before := m.search.Value()
		var cmd tea.Cmd
		m.search, cmd = m.search.Update(msg)
		if m.search.Value() != before {
			m = m.refilter(true)
		}
		return m, cmd
	}

	m.notice = ""
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "/":
		m.searching = true
		return m, m.search.Focus()
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.rows)-1 {
			m.cursor++
		}
	case "enter", " ":
		return m.activate()
	case "w":
		m.collapsed = !m.collapsed
		return m.relayout()
	case "t":
		next := styles.ThemeLight
		if m.theme == styles.ThemeLight {
			next = styles.ThemeDark
		}
		return m.broadcast(messages.ThemeChanged(next))
	}
	return m, nil
}

// refilter recomputes the filtered catalog. A changed term forgets every
// manual toggle before the single-category rule applies.
func (m Model) refilter(termChanged bool) Model {
	m.filtered = catalog.Filter(m.catalog, m.search.Value())
	if termChanged {
		m.view = m.view.Reset()
	}
	m.view = m.view.Apply(m.filtered)
	m.rows = buildRows(m.filtered, m.view)
	if termChanged || m.cursor >= len(m.rows) {
		m.cursor = 0
	}
	return m
}

func (m Model) activate() (tea.Model, tea.Cmd) {
	if m.cursor >= len(m.rows) {
		return m, nil
	}
	r := m.rows[m.cursor]
	if r.role == roleCategory {
		m.view = m.view.Toggle(r.category.ID)
		m.rows = buildRows(m.filtered, m.view)
		return m, nil
	}

	a := Launch(r.tool)
	switch a.Kind {
	case ActionOpenExternal:
		target := a.URL
		return m, func() tea.Msg {
			return openedMsg{url: target, err: openExternal(target)}
		}
	case ActionNative:
		id := a.ToolID
		return m, func() tea.Msg { return messages.ToolSelectedMsg{ID: id} }
	case ActionNotice:
		m.notice = a.Notice
	case ActionFullView:
		return m.openFullView(a.Title, a.URL)
	}
	return m, nil
}

func (m Model) openFullView(title, src string) (tea.Model, tea.Cmd) {
	m.fullOpen = true
	m.fullTitle = title
	m.cursor = 0
	m, layoutCmd := m.relayout()
	var navCmd tea.Cmd
	m.full, navCmd = m.full.Navigate(src)
	return m, tea.Batch(layoutCmd, navCmd)
}

func (m Model) closeFullView() (tea.Model, tea.Cmd) {
	m.fullOpen = false
	m.fullTitle = ""
	m.full, _ = m.full.Navigate(embed.Blank)
	return m.relayout()
}

// relayout sizes both frames and re-runs the widget rule. Calling it with
// unchanged inputs issues no navigation.
func (m Model) relayout() (Model, tea.Cmd) {
	show := m.autoEmbed.ShouldShow(m.width*m.cellWidth, m.fullOpen, m.collapsed)
	m.widgetShown = show

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.full, cmd = m.full.SetSize(max(m.width-4, 0), max(m.height-6, 0))
	cmds = append(cmds, cmd)
	m.widget, cmd = m.widget.SetSize(m.widgetWidth(), max(m.height-6, 0))
	cmds = append(cmds, cmd)

	// A hidden widget keeps its location so showing it again is free.
	if show {
		m.widget, cmd = m.widget.Navigate(m.autoEmbed.URL())
		cmds = append(cmds, cmd)
	}
	return m, tea.Batch(cmds...)
}

func (m Model) widgetWidth() int {
	return max(m.width*2/5-4, 0)
}

func (m Model) broadcast(msg messages.HostMsg) (tea.Model, tea.Cmd) {
	if msg.Action == messages.ActionThemeChanged && msg.Theme != m.theme {
		m.theme = msg.Theme
		m.styles = styles.For(msg.Theme)
	}
	var fullCmd, widgetCmd tea.Cmd
	m.full, fullCmd = m.full.Update(msg)
	m.widget, widgetCmd = m.widget.Update(msg)
	return m, tea.Batch(fullCmd, widgetCmd)
}

func (m Model) forward(msg tea.Msg) (tea.Model, tea.Cmd) {
	var fullCmd, widgetCmd tea.Cmd
	m.full, fullCmd = m.full.Update(msg)
	m.widget, widgetCmd = m.widget.Update(msg)
	return m, tea.Batch(fullCmd, widgetCmd)
}

func (m Model) View() string {
	s := m.styles
	if m.fullOpen {
		content := s.Title.Render(m.fullTitle) + "\n"
		content += s.Dimmed.Render(m.full.Src()) + "\n\n"
		content += m.full.View() + "\n\n"
		content += s.Help.Render("esc/q close")
		return s.Box.Render(content)
	}

	content := s.Title.Render("toolhub") + "\n"
	subtitle := "Tools at hand"
	if m.version != "" {
		subtitle += "  " + m.version
	}
	content += s.Subtitle.Render(subtitle) + "\n\n"
	content += m.search.View() + "\n\n"
	content += m.list()
	if m.notice != "" {
		content += "\n" + s.Notice.Render(m.notice) + "\n"
	}
	content += "\n" + s.Help.Render(m.help())

	main := s.Box.Render(content)
	if !m.widgetShown {
		return main
	}
	widget := s.Widget.Width(m.widgetWidth()).Render(
		s.Category.Render("Latest vulnerabilities") + "\n" + m.widget.View(),
	)
	return lipgloss.JoinHorizontal(lipgloss.Top, main, widget)
}

func (m Model) help() string {
	parts := []string{"/ search", "↑↓/jk navigate", "enter select"}
	if m.autoEmbed.Enabled() {
		parts = append(parts, "w widget")
	}
	parts = append(parts, "t theme", "q quit")
	return strings.Join(parts, "  ")
}

func (m Model) list() string {
	s := m.styles
	switch {
	case !m.loaded:
		return s.Dimmed.Render("Loading catalog...") + "\n"
	case m.loadErr != "":
		return s.Err.Render("Error: "+m.loadErr) + "\n"
	case len(m.rows) == 0 && strings.TrimSpace(m.search.Value()) != "":
		return s.Dimmed.Render(fmt.Sprintf("No results for %q", m.search.Value())) + "\n"
	}

	var b strings.Builder
	for i, r := range m.rows {
		cursor := "  "
		if i == m.cursor {
			cursor = s.Selected.Render("> ")
		}
		switch r.role {
		case roleCategory:
			marker := "▸"
			if m.view.Expanded(r.category.ID) {
				marker = "▾"
			}
			name := r.category.Name
			if r.category.Icon != "" {
				name = r.category.Icon + " " + name
			}
			fmt.Fprintf(&b, "%s%s %s\n", cursor, marker, s.Category.Render(name))
		case roleTool:
			nameStyle := lipgloss.NewStyle()
			descStyle := s.Dimmed
			if i == m.cursor {
				nameStyle = s.Selected
				descStyle = s.Subtitle
			}
			fmt.Fprintf(&b, "%s    %-22s %s\n",
				cursor,
				nameStyle.Render(r.tool.Name),
				descStyle.Render(r.tool.Description),
			)
		}
	}
	return b.String()
}
