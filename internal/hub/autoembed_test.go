package hub

import (
	"testing"

	"github.com/ryan-rushton/toolhub/internal/catalog"
)

const widgetURL = "https://tools.example.com/NVD_News/results.html"

func TestAutoEmbed_HiddenBelowMinWidth(t *testing.T) {
	if ShouldShowAutoEmbed(testCatalog(), 800, false, false) {
		t.Error("expected widget hidden at 800px")
	}
}

func TestAutoEmbed_ShownAtWideViewport(t *testing.T) {
	a := NewAutoEmbed(testCatalog(), DefaultMinWidth)
	if !a.ShouldShow(1200, false, false) {
		t.Fatal("expected widget shown at 1200px")
	}
	if a.URL() != widgetURL {
		t.Errorf("expected URL %q, got %q", widgetURL, a.URL())
	}
}

func TestAutoEmbed_Conditions(t *testing.T) {
	a := NewAutoEmbed(testCatalog(), DefaultMinWidth)
	tests := []struct {
		name      string
		width     int
		fullOpen  bool
		collapsed bool
		want      bool
	}{
		{name: "exact threshold", width: 1024, want: true},
		{name: "one below", width: 1023, want: false},
		{name: "full view open", width: 1600, fullOpen: true, want: false},
		{name: "user collapsed", width: 1600, collapsed: true, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.ShouldShow(tt.width, tt.fullOpen, tt.collapsed); got != tt.want {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestAutoEmbed_NoDesignatedTool(t *testing.T) {
	c := catalog.Catalog{Categories: []catalog.Category{{
		ID:    "docs",
		Tools: []catalog.Tool{{Name: "Go Blog", URL: "https://go.dev/blog/", Type: catalog.TypeIframe}},
	}}}
	a := NewAutoEmbed(c, DefaultMinWidth)
	if a.Enabled() || a.ShouldShow(4000, false, false) {
		t.Error("expected widget disabled without a designated tool")
	}
}

func TestAutoEmbed_UnderivableURL(t *testing.T) {
	c := catalog.Catalog{Categories: []catalog.Category{{
		ID: "security",
		Tools: []catalog.Tool{{
			Name:      "NVD News",
			URL:       "https://tools.example.com/NVD_News/feed.xml",
			Type:      catalog.TypeIframe,
			AutoEmbed: true,
		}},
	}}}
	if NewAutoEmbed(c, DefaultMinWidth).Enabled() {
		t.Error("expected widget disabled when no results-only URL can be derived")
	}
}

func TestAutoEmbed_ZeroMinWidthUsesDefault(t *testing.T) {
	a := NewAutoEmbed(testCatalog(), 0)
	if a.ShouldShow(1000, false, false) {
		t.Error("expected default threshold to apply")
	}
}
