// Package catalog holds the categories and tools shown by the hub, and the
// pure functions that derive views from them.
package catalog

import (
	"encoding/json"
	"net/url"
	"strings"
)

// ToolType controls what happens when a tool is activated.
type ToolType string

const (
	TypeLink        ToolType = "link"
	TypeIframe      ToolType = "iframe"
	TypePlaceholder ToolType = "placeholder"
)

// PlaceholderURL marks a tool whose destination has not been decided yet.
const PlaceholderURL = "#"

// NativeScheme addresses a tool registered inside this binary,
// e.g. toolhub://nvd-news/index.html.
const NativeScheme = "toolhub"

// UnmarshalJSON decodes unknown tool types as placeholders so a typo in the
// catalog never makes a tool navigate somewhere unexpected.
func (t *ToolType) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	switch ToolType(strings.ToLower(s)) {
	case TypeLink:
		*t = TypeLink
	case TypeIframe:
		*t = TypeIframe
	default:
		*t = TypePlaceholder
	}
	return nil
}

// Tool is a single launchable entry. It has no identity beyond its
// category and name.
type Tool struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	URL         string   `json:"url,omitempty"`
	Type        ToolType `json:"type"`
	AutoEmbed   bool     `json:"autoEmbed,omitempty"`
}

// HasURL reports whether the tool points somewhere real.
func (t Tool) HasURL() bool {
	u := strings.TrimSpace(t.URL)
	return u != "" && u != PlaceholderURL
}

// Category groups tools under a stable id.
type Category struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Icon  string `json:"icon,omitempty"`
	Tools []Tool `json:"tools"`
}

// Catalog is the full set of categories loaded at startup.
type Catalog struct {
	Categories []Category `json:"categories"`
}

// Len returns the number of tools across all categories.
func (c Catalog) Len() int {
	n := 0
	for _, cat := range c.Categories {
		n += len(cat.Tools)
	}
	return n
}

// Parse decodes a catalog document.
func Parse(b []byte) (Catalog, error) {
	var c Catalog
	if err := json.Unmarshal(b, &c); err != nil {
		return Catalog{}, err
	}
	return c, nil
}

// ValidEmbedURL reports whether raw can be shown inside an embedded frame:
// an absolute http, https or toolhub URL with a host.
func ValidEmbedURL(raw string) bool {
	if raw == "" || raw == PlaceholderURL {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return false
	}
	switch u.Scheme {
	case "http", "https", NativeScheme:
		return true
	}
	return false
}
