package catalog

import (
	"strings"

	"github.com/samber/lo"
)

// Filter returns the part of c that matches term.
//
// A blank term returns c itself. Otherwise a category whose name contains
// the term is kept whole, a category with matching tools keeps only those
// tools, and everything else is dropped. Matching is case-insensitive and
// ordering is preserved. c is never modified.
func Filter(c Catalog, term string) Catalog {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" {
		return c
	}

	var out []Category
	for _, cat := range c.Categories {
		if contains(cat.Name, needle) {
			out = append(out, cat)
			continue
		}
		tools := lo.Filter(cat.Tools, func(t Tool, _ int) bool {
			return contains(t.Name, needle) || contains(t.Description, needle)
		})
		if len(tools) == 0 {
			continue
		}
		cat.Tools = tools
		out = append(out, cat)
	}
	return Catalog{Categories: out}
}

// Matches reports whether cat would survive Filter for term.
func Matches(cat Category, term string) bool {
	needle := strings.ToLower(strings.TrimSpace(term))
	if needle == "" || contains(cat.Name, needle) {
		return true
	}
	return lo.ContainsBy(cat.Tools, func(t Tool) bool {
		return contains(t.Name, needle) || contains(t.Description, needle)
	})
}

func contains(s, lowerNeedle string) bool {
	return strings.Contains(strings.ToLower(s), lowerNeedle)
}
