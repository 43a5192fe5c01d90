package hub

import "github.com/ryan-rushton/toolhub/internal/catalog"

// DefaultMinWidth is the narrowest viewport, in logical pixels, that shows
// the auto-embed widget.
const DefaultMinWidth = 1024

// AutoEmbed decides whether the side widget is shown. It is built once per
// catalog; without a designated tool the feature stays off for the session.
type AutoEmbed struct {
	minWidth int
	url      string
}

// NewAutoEmbed locates the designated tool in c and derives its
// results-only URL. Failures silently disable the widget.
func NewAutoEmbed(c catalog.Catalog, minWidth int) AutoEmbed {
	a := AutoEmbed{minWidth: minWidth}
	if a.minWidth <= 0 {
		a.minWidth = DefaultMinWidth
	}
	tool, ok := catalog.Designated(c)
	if !ok {
		return a
	}
	if u, ok := catalog.ResultsOnlyURL(tool.URL); ok {
		a.url = u
	}
	return a
}

// URL is the results-only location the widget shows, or "" when disabled.
func (a AutoEmbed) URL() string { return a.url }

// Enabled reports whether a designated tool with a usable URL was found.
func (a AutoEmbed) Enabled() bool { return a.url != "" }

// ShouldShow is a pure function of its inputs, so re-evaluating on resize
// and on load in any order converges on the same answer.
func (a AutoEmbed) ShouldShow(viewportWidth int, fullViewOpen, userCollapsed bool) bool {
	return viewportWidth >= a.minWidth &&
		!fullViewOpen &&
		a.url != "" &&
		!userCollapsed
}

// ShouldShowAutoEmbed evaluates the widget rule against the default
// threshold.
func ShouldShowAutoEmbed(c catalog.Catalog, viewportWidth int, fullViewOpen, userCollapsed bool) bool {
	return NewAutoEmbed(c, DefaultMinWidth).ShouldShow(viewportWidth, fullViewOpen, userCollapsed)
}
