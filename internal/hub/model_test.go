package hub

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ryan-rushton/toolhub/internal/catalog"
	"github.com/ryan-rushton/toolhub/internal/embed"
	"github.com/ryan-rushton/toolhub/internal/messages"
)

func keyRune(r rune) tea.KeyMsg        { return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}} }
func keyType(t tea.KeyType) tea.KeyMsg { return tea.KeyMsg{Type: t} }

func testCatalog() catalog.Catalog {
	return catalog.Catalog{Categories: []catalog.Category{
		{
			ID:   "security",
			Name: "Security",
			Tools: []catalog.Tool{
				{
					Name:        "NVD News",
					Description: "Latest CVEs",
					URL:         "https://tools.example.com/NVD_News/index.html",
					Type:        catalog.TypeIframe,
					AutoEmbed:   true,
				},
				{Name: "CVSS Calculator", Description: "Score a vector", URL: "#", Type: catalog.TypePlaceholder},
			},
		},
		{
			ID:   "docs",
			Name: "Docs",
			Tools: []catalog.Tool{
				{Name: "Go Packages", Description: "Package index", URL: "https://pkg.go.dev", Type: catalog.TypeLink},
				{Name: "Scanner", URL: "toolhub://scanner/index.html", Type: catalog.TypeLink},
			},
		},
	}}
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	r, cmd := m.Update(msg)
	got, ok := r.(Model)
	if !ok {
		t.Fatalf("expected hub.Model, got %T", r)
	}
	return got, cmd
}

// loaded returns a hub that has received the catalog and a window of the
// given width in columns.
func loaded(t *testing.T, cols int) Model {
	t.Helper()
	c := testCatalog()
	m := New(func() (catalog.Catalog, error) { return c, nil }, Options{Theme: "dark"})
	m, _ = update(t, m, tea.WindowSizeMsg{Width: cols, Height: 40})
	m, _ = update(t, m, m.Init()())
	return m
}

func typeTerm(t *testing.T, m Model, term string) Model {
	t.Helper()
	m, _ = update(t, m, keyRune('/'))
	for _, r := range term {
		m, _ = update(t, m, keyRune(r))
	}
	m, _ = update(t, m, keyType(tea.KeyEnter))
	return m
}

func TestInit_LoadsCatalog(t *testing.T) {
	m := loaded(t, 80)
	if len(m.rows) != 2 {
		t.Fatalf("expected 2 category rows, got %d", len(m.rows))
	}
	if !strings.Contains(m.View(), "Security") {
		t.Error("expected Security category in view")
	}
}

func TestInit_LoadErrorRendersInline(t *testing.T) {
	m := New(func() (catalog.Catalog, error) {
		return catalog.Catalog{}, errors.New("loading catalog x: 404")
	}, Options{})
	m, _ = update(t, m, m.Init()())

	if !strings.Contains(m.View(), "Error: loading catalog x: 404") {
		t.Errorf("expected inline load error, got:\n%s", m.View())
	}

	// Search still works on the empty catalog.
	m = typeTerm(t, m, "go")
	if m.Term() != "go" {
		t.Errorf("expected term 'go', got %q", m.Term())
	}
}

func TestSearch_SingleCategoryAlwaysExpanded(t *testing.T) {
	m := loaded(t, 80)

	// Open then close Security by hand.
	m, _ = update(t, m, keyType(tea.KeyEnter))
	m, _ = update(t, m, keyType(tea.KeyEnter))
	if m.view.Expanded("security") {
		t.Fatal("expected security collapsed after two toggles")
	}

	m = typeTerm(t, m, "calc")
	if len(m.filtered.Categories) != 1 {
		t.Fatalf("expected one category, got %d", len(m.filtered.Categories))
	}
	if !m.view.Expanded("security") {
		t.Error("expected the single result to be expanded")
	}
	if !strings.Contains(m.View(), "CVSS Calculator") {
		t.Error("expected matching tool to be listed")
	}
}

func TestSearch_NoResults(t *testing.T) {
	m := loaded(t, 80)
	m = typeTerm(t, m, "zzz")
	if !strings.Contains(m.View(), `No results for "zzz"`) {
		t.Errorf("expected no-results message, got:\n%s", m.View())
	}
}

func TestSearch_TypingQDoesNotQuit(t *testing.T) {
	m := loaded(t, 80)
	m, _ = update(t, m, keyRune('/'))
	m, _ = update(t, m, keyRune('q'))
	if !m.searching {
		t.Error("expected to stay in the search box")
	}
	if m.Term() != "q" {
		t.Errorf("expected q typed into the search box, got %q", m.Term())
	}
}

func TestLaunch_IframeThenCloseRestoresList(t *testing.T) {
	m := loaded(t, 80)

	m, _ = update(t, m, keyType(tea.KeyEnter)) // expand Security
	m, _ = update(t, m, keyRune('j'))          // NVD News
	m, cmd := update(t, m, keyType(tea.KeyEnter))

	if !m.FullViewOpen() {
		t.Fatal("expected full view to open")
	}
	if m.FullViewSrc() != "https://tools.example.com/NVD_News/index.html" {
		t.Errorf("unexpected full view src %q", m.FullViewSrc())
	}
	if cmd == nil {
		t.Error("expected a page load cmd")
	}
	if strings.Contains(m.View(), "Docs") {
		t.Error("expected the dashboard list to be hidden")
	}

	m, _ = update(t, m, keyType(tea.KeyEsc))
	if m.FullViewOpen() {
		t.Fatal("expected full view closed")
	}
	if m.FullViewSrc() != embed.Blank {
		t.Errorf("expected blank src after close, got %q", m.FullViewSrc())
	}
	if !strings.Contains(m.View(), "Docs") {
		t.Error("expected the dashboard list to be restored")
	}
}

func TestLaunch_FullViewResetsListToTop(t *testing.T) {
	m := loaded(t, 80)
	m, _ = update(t, m, keyType(tea.KeyEnter)) // expand Security
	m, _ = update(t, m, keyRune('j'))          // NVD News
	m, _ = update(t, m, keyType(tea.KeyEnter))
	if !m.FullViewOpen() {
		t.Fatal("expected full view to open")
	}
	if m.cursor != 0 {
		t.Errorf("expected cursor at top, got %d", m.cursor)
	}

	m, _ = update(t, m, keyType(tea.KeyEsc))
	if m.cursor != 0 {
		t.Errorf("expected cursor at top after close, got %d", m.cursor)
	}
}

func TestView_ShowsVersion(t *testing.T) {
	c := testCatalog()
	m := New(func() (catalog.Catalog, error) { return c, nil }, Options{Version: "v1.4.2"})
	m, _ = update(t, m, m.Init()())
	if !strings.Contains(m.View(), "v1.4.2") {
		t.Errorf("expected version in view, got:\n%s", m.View())
	}
}

func TestLaunch_PlaceholderShowsNotice(t *testing.T) {
	m := loaded(t, 80)
	m, _ = update(t, m, keyType(tea.KeyEnter))
	m, _ = update(t, m, keyRune('j'))
	m, _ = update(t, m, keyRune('j'))
	m, cmd := update(t, m, keyType(tea.KeyEnter))

	if cmd != nil {
		t.Error("expected no cmd for a placeholder")
	}
	if m.FullViewOpen() {
		t.Error("expected no navigation for a placeholder")
	}
	if !strings.Contains(m.View(), `"CVSS Calculator" is not available yet.`) {
		t.Errorf("expected notice, got:\n%s", m.View())
	}
}

func TestLaunch_LinkOpensExternally(t *testing.T) {
	var opened string
	orig := openExternal
	openExternal = func(target string) error {
		opened = target
		return nil
	}
	defer func() { openExternal = orig }()

	m := loaded(t, 80)
	m, _ = update(t, m, keyRune('j'))          // Docs
	m, _ = update(t, m, keyType(tea.KeyEnter)) // expand
	m, _ = update(t, m, keyRune('j'))          // Go Packages
	_, cmd := update(t, m, keyType(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected open cmd")
	}
	if _, ok := cmd().(openedMsg); !ok {
		t.Error("expected openedMsg")
	}
	if opened != "https://pkg.go.dev" {
		t.Errorf("expected pkg.go.dev to be opened, got %q", opened)
	}
}

func TestLaunch_NativeLinkSelectsTool(t *testing.T) {
	m := loaded(t, 80)
	m, _ = update(t, m, keyRune('j'))
	m, _ = update(t, m, keyType(tea.KeyEnter))
	m, _ = update(t, m, keyRune('j'))
	m, _ = update(t, m, keyRune('j')) // Scanner
	_, cmd := update(t, m, keyType(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("expected cmd")
	}
	sel, ok := cmd().(messages.ToolSelectedMsg)
	if !ok {
		t.Fatalf("expected ToolSelectedMsg, got %T", cmd())
	}
	if sel.ID != "scanner" {
		t.Errorf("expected scanner, got %q", sel.ID)
	}
}

func TestWidget_HiddenOnNarrowTerminal(t *testing.T) {
	m := loaded(t, 100) // 800px
	if m.WidgetShown() {
		t.Error("expected widget hidden at 800px")
	}
	if m.WidgetSrc() != embed.Blank {
		t.Errorf("expected widget never loaded, got %q", m.WidgetSrc())
	}
}

func TestWidget_ShownOnWideTerminal(t *testing.T) {
	m := loaded(t, 150) // 1200px
	if !m.WidgetShown() {
		t.Fatal("expected widget shown at 1200px")
	}
	if m.WidgetSrc() != widgetURL {
		t.Errorf("expected %q, got %q", widgetURL, m.WidgetSrc())
	}
}

func TestWidget_ResizeWithSameOutcomeDoesNotReload(t *testing.T) {
	m := loaded(t, 150)
	_, cmd := update(t, m, tea.WindowSizeMsg{Width: 160, Height: 40})
	if cmd != nil {
		t.Error("expected no reload when the widget stays on the same URL")
	}
}

func TestWidget_ShowsAfterGrowing(t *testing.T) {
	m := loaded(t, 100)
	m, cmd := update(t, m, tea.WindowSizeMsg{Width: 150, Height: 40})
	if !m.WidgetShown() {
		t.Fatal("expected widget to appear after resize")
	}
	if cmd == nil {
		t.Error("expected widget load cmd")
	}
}

func TestWidget_CollapseToggle(t *testing.T) {
	m := loaded(t, 150)
	m, _ = update(t, m, keyRune('w'))
	if m.WidgetShown() {
		t.Error("expected widget hidden after w")
	}
	m, _ = update(t, m, keyRune('w'))
	if !m.WidgetShown() {
		t.Error("expected widget shown after second w")
	}
}

func TestWidget_HiddenWhileFullViewOpen(t *testing.T) {
	m := loaded(t, 150)
	m, _ = update(t, m, keyType(tea.KeyEnter))
	m, _ = update(t, m, keyRune('j'))
	m, _ = update(t, m, keyType(tea.KeyEnter))
	if m.WidgetShown() {
		t.Error("expected widget hidden while full view is open")
	}
	m, _ = update(t, m, keyRune('q'))
	if !m.WidgetShown() {
		t.Error("expected widget back after closing the full view")
	}
}

func TestThemeToggle(t *testing.T) {
	m := loaded(t, 80)
	m, _ = update(t, m, keyRune('t'))
	if m.Theme() != "light" {
		t.Errorf("expected light theme, got %q", m.Theme())
	}
	m, _ = update(t, m, keyRune('t'))
	if m.Theme() != "dark" {
		t.Errorf("expected dark theme, got %q", m.Theme())
	}
}

func TestQuit_Q(t *testing.T) {
	m := loaded(t, 80)
	_, cmd := update(t, m, keyRune('q'))
	if cmd == nil {
		t.Fatal("expected quit cmd on q")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("expected tea.QuitMsg")
	}
}
