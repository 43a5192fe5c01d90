package nvdnews

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"

	"github.com/ryan-rushton/toolhub/internal/messages"
	"github.com/ryan-rushton/toolhub/internal/registry"
	"github.com/ryan-rushton/toolhub/internal/styles"
	"github.com/ryan-rushton/toolhub/internal/vuln"
)

// ID is the registry id, so toolhub://nvd-news/ mounts this tool.
const ID = "nvd-news"

const fetchTimeout = 45 * time.Second

// Register makes the tool mountable from the hub, backed by the API at
// endpoint.
func Register(endpoint string) {
	registry.Register(registry.Tool{
		ID:          ID,
		Name:        "NVD News",
		Description: "Latest vulnerabilities filtered by severity and source",
		New: func(o registry.Options) tea.Model {
			return New(NewClient(endpoint), o)
		},
	})
}

type status int

const (
	statusIdle status = iota
	statusLoading
	statusSuccess
	statusPartial
	statusError
)

func (s status) String() string {
	switch s {
	case statusIdle:
		return "idle"
	case statusLoading:
		return "loading"
	case statusSuccess:
		return "success"
	case statusPartial:
		return "partial"
	case statusError:
		return "error"
	}
	return "unknown"
}

// fetchedMsg is addressed to one model instance; two frames may mount the
// tool at the same time.
type fetchedMsg struct {
	instance string
	seq      uint64
	result   Result
	err      error
}

// Model is the vulnerability news TUI model.
type Model struct {
	id      string
	fetcher Fetcher
	opts    registry.Options
	styles  styles.Styles

	severities map[vuln.Severity]bool
	sources    map[vuln.Source]bool

	status  status
	loading bool
	vulns   []vuln.Vulnerability
	errMsg  string

	// seq is the last issued request, applied the last response shown.
	seq     uint64
	applied uint64

	cursor  int
	spinner spinner.Model
	width   int
	height  int
}

func New(f Fetcher, opts registry.Options) Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot

	m := Model{
		id:         uuid.NewString(),
		fetcher:    f,
		opts:       opts,
		styles:     styles.For(opts.Theme),
		severities: make(map[vuln.Severity]bool),
		sources:    make(map[vuln.Source]bool),
		spinner:    sp,
		width:      opts.Width,
		height:     opts.Height,
	}
	for _, s := range vuln.Severities {
		m.severities[s] = true
	}
	for _, s := range vuln.Sources {
		m.sources[s] = true
	}
	// Init always issues the first request, so the model starts out loading
	// with that request's sequence number already reserved.
	m.seq = 1
	m.loading = true
	m.status = statusLoading
	return m
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchCmd(), m.spinner.Tick)
}

// Dark reports whether the dark palette is active.
func (m Model) Dark() bool {
	return m.styles.Name == styles.ThemeDark
}

// SelectedSeverities returns the active severity filter in canonical order.
func (m Model) SelectedSeverities() []vuln.Severity {
	return selected(m.severities, vuln.Severities)
}

// SelectedSources returns the active source filter in canonical order.
func (m Model) SelectedSources() []vuln.Source {
	return selected(m.sources, vuln.Sources)
}

func selected[K comparable](set map[K]bool, order []K) []K {
	var out []K
	for _, k := range order {
		if set[k] {
			out = append(out, k)
		}
	}
	return out
}

// toggled returns a copy of set with k flipped. Deselecting the last
// selected value is refused.
func toggled[K comparable](set map[K]bool, k K) (map[K]bool, bool) {
	if set[k] {
		n := 0
		for _, on := range set {
			if on {
				n++
			}
		}
		if n <= 1 {
			return set, false
		}
	}
	out := make(map[K]bool, len(set))
	for key, on := range set {
		out[key] = on
	}
	out[k] = !set[k]
	return out, true
}

// startFetch issues a new request. In-flight requests are not cancelled;
// their responses are discarded on arrival if a newer one was already shown.
func (m Model) startFetch() (Model, tea.Cmd) {
	m.seq++
	m.loading = true
	m.status = statusLoading
	return m, tea.Batch(m.fetchCmd(), m.spinner.Tick)
}

// fetchCmd queries the API for the current filters under the current
// sequence number.
func (m Model) fetchCmd() tea.Cmd {
	var (
		seq      = m.seq
		instance = m.id
		fetcher  = m.fetcher
		sev      = m.SelectedSeverities()
		src      = m.SelectedSources()
	)
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), fetchTimeout)
		defer cancel()
		res, err := fetcher.Fetch(ctx, sev, src)
		return fetchedMsg{instance: instance, seq: seq, result: res, err: err}
	}
}

func (m Model) applyResult(msg fetchedMsg) Model {
	if msg.seq == m.seq {
		m.loading = false
	}
	if msg.seq <= m.applied {
		return m
	}
	m.applied = msg.seq

	switch {
	case msg.err != nil:
		// Prior data stays on screen under the banner.
		m.status = statusError
		m.errMsg = msg.err.Error()
	case msg.result.Partial():
		m.status = statusPartial
		m.vulns = msg.result.Vulns
		m.errMsg = msg.result.Err
	default:
		m.status = statusSuccess
		m.vulns = msg.result.Vulns
		m.errMsg = ""
	}
	if m.cursor >= len(m.vulns) {
		m.cursor = max(len(m.vulns)-1, 0)
	}
	return m
}

func (m Model) setTheme(theme string) Model {
	if theme == m.styles.Name {
		return m
	}
	m.styles = styles.For(theme)
	return m
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case fetchedMsg:
		if msg.instance != m.id {
			return m, nil
		}
		return m.applyResult(msg), nil

	case messages.HostMsg:
		if msg.Action == messages.ActionThemeChanged {
			m = m.setTheme(msg.Theme)
		}
		return m, nil

	case spinner.TickMsg:
		if !m.loading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch key := msg.String(); key {
	case "ctrl+c":
		return m, tea.Quit
	case "q", "esc":
		return m, func() tea.Msg { return messages.BackMsg{} }
	case "1", "2", "3", "4":
		sev := vuln.Severities[key[0]-'1']
		next, ok := toggled(m.severities, sev)
		if !ok {
			return m, nil
		}
		m.severities = next
		return m.startFetch()
	case "n", "g":
		src := vuln.SourceNVD
		if key == "g" {
			src = vuln.SourceGitHub
		}
		next, ok := toggled(m.sources, src)
		if !ok {
			return m, nil
		}
		m.sources = next
		return m.startFetch()
	case "r":
		return m.startFetch()
	case "d":
		if m.Dark() {
			return m.setTheme(styles.ThemeLight), nil
		}
		return m.setTheme(styles.ThemeDark), nil
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.vulns)-1 {
			m.cursor++
		}
	}
	return m, nil
}

func (m Model) View() string {
	s := m.styles
	var b strings.Builder

	if !m.opts.ResultsOnly {
		b.WriteString(s.Title.Render("NVD News") + "\n\n")
		b.WriteString(m.filterBar() + "\n\n")
	}

	if m.loading {
		b.WriteString(s.Selected.Render(m.spinner.View()) + " " + s.Dimmed.Render("Fetching vulnerabilities...") + "\n")
	}
	if m.errMsg != "" {
		label := "Error: "
		if m.status == statusPartial {
			label = "Partial results: "
		}
		b.WriteString(s.Err.Render(label+m.errMsg) + "\n")
	}
	if m.loading || m.errMsg != "" {
		b.WriteString("\n")
	}

	b.WriteString(m.list())

	if m.opts.ResultsOnly {
		return b.String()
	}
	b.WriteString("\n" + s.Help.Render("1-4 severity  n/g source  r refresh  d theme  ↑↓/jk move  esc/q back"))
	return s.Box.Render(b.String())
}

func (m Model) filterBar() string {
	s := m.styles
	var chips []string
	for i, sev := range vuln.Severities {
		chips = append(chips, chip(s, fmt.Sprintf("%d %s", i+1, sev), m.severities[sev]))
	}
	chips = append(chips, " ")
	chips = append(chips, chip(s, "n NVD", m.sources[vuln.SourceNVD]))
	chips = append(chips, chip(s, "g GITHUB", m.sources[vuln.SourceGitHub]))
	return strings.Join(chips, " ")
}

func chip(s styles.Styles, label string, on bool) string {
	if on {
		return s.ChipOn.Render("[" + label + "]")
	}
	return s.Chip.Render("[" + label + "]")
}

func (m Model) list() string {
	s := m.styles
	if len(m.vulns) == 0 {
		// A failed fetch already shows its banner; an empty list would
		// read as a filter miss.
		if m.status == statusIdle || m.status == statusLoading || m.status == statusError {
			return ""
		}
		return s.Dimmed.Render("No vulnerabilities match the current filters.") + "\n"
	}

	descWidth := m.width - 50
	if descWidth < 20 {
		descWidth = 60
	}

	var b strings.Builder
	for i, v := range m.vulns {
		cursor := "  "
		idStyle := s.Subtitle
		if i == m.cursor && !m.opts.ResultsOnly {
			cursor = s.Selected.Render("> ")
			idStyle = s.Selected
		}
		fmt.Fprintf(&b, "%s%s %s %s %s\n",
			cursor,
			idStyle.Render(fmt.Sprintf("%-20s", v.ID)),
			s.Severity(string(v.Severity)).Render(fmt.Sprintf("%-8s", v.Severity)),
			s.Dimmed.Render(fmt.Sprintf("%-6s %s", v.Source, v.Published.Format("2006-01-02"))),
			truncate(v.Description, descWidth),
		)
	}
	return b.String()
}

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
