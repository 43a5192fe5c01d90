package catalog

import (
	"net/url"
	"path"
	"strings"
)

const (
	IndexFile   = "index.html"
	ResultsFile = "results.html"

	designatedPathMarker = "/NVD_News/"
)

// designatedNames are matched case-insensitively against tool names when no
// tool in the catalog sets autoEmbed.
var designatedNames = []string{"nvd news", "nvd_news", "nvd-news"}

// Designated finds the tool surfaced by the auto-embed widget. A tool with
// AutoEmbed set always wins; otherwise the first tool whose name or URL
// looks like the vulnerability news app is used.
func Designated(c Catalog) (Tool, bool) {
	for _, cat := range c.Categories {
		for _, t := range cat.Tools {
			if t.AutoEmbed {
				return t, true
			}
		}
	}
	for _, cat := range c.Categories {
		for _, t := range cat.Tools {
			if looksDesignated(t) {
				return t, true
			}
		}
	}
	return Tool{}, false
}

func looksDesignated(t Tool) bool {
	name := strings.ToLower(strings.TrimSpace(t.Name))
	for _, n := range designatedNames {
		if name == n {
			return true
		}
	}
	return strings.Contains(t.URL, designatedPathMarker)
}

// ResultsOnlyURL derives the compact results-only variant of a tool URL.
// index.html is swapped for results.html, and a path without a filename has
// results.html appended. Anything else yields false.
func ResultsOnlyURL(raw string) (string, bool) {
	if !ValidEmbedURL(raw) {
		return "", false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", false
	}

	dir, file := path.Split(u.Path)
	switch {
	case file == "":
		u.Path = path.Join("/", dir, ResultsFile)
	case file == IndexFile, file == ResultsFile:
		u.Path = path.Join("/", dir, ResultsFile)
	case path.Ext(file) == "":
		// A trailing segment without an extension is a directory.
		u.Path = path.Join("/", u.Path, ResultsFile)
	default:
		return "", false
	}
	return u.String(), true
}
