package catalog

import (
	"testing"

	"github.com/kylelemons/godebug/pretty"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testCatalog = Catalog{Categories: []Category{
	{ID: "security", Name: "Security", Tools: []Tool{
		{Name: "NVD News", Description: "Latest CVEs", Type: TypeIframe},
		{Name: "KEV", Description: "Known exploited", Type: TypeLink},
	}},
	{ID: "docs", Name: "Documentation", Tools: []Tool{
		{Name: "Go Packages", Description: "pkg.go.dev search", Type: TypeLink},
		{Name: "Go Blog", Description: "News from the Go team", Type: TypeIframe},
		{Name: "Style guide", Type: TypePlaceholder},
	}},
	{ID: "net", Name: "Network", Tools: []Tool{
		{Name: "DNS", Description: "Resolve records", Type: TypeLink},
	}},
}}

func TestFilter(t *testing.T) {
	tests := []struct {
		name string
		term string
		want Catalog
	}{
		{
			name: "empty term returns catalog",
			term: "",
			want: testCatalog,
		},
		{
			name: "whitespace term returns catalog",
			term: "   \t",
			want: testCatalog,
		},
		{
			name: "category name match keeps all tools",
			term: "secur",
			want: Catalog{Categories: []Category{testCatalog.Categories[0]}},
		},
		{
			name: "tool match keeps only matching tools",
			term: "go ",
			want: Catalog{Categories: []Category{
				{ID: "docs", Name: "Documentation", Tools: []Tool{
					{Name: "Go Packages", Description: "pkg.go.dev search", Type: TypeLink},
					{Name: "Go Blog", Description: "News from the Go team", Type: TypeIframe},
				}},
			}},
		},
		{
			name: "description match is case insensitive and spans categories",
			term: "NEWS",
			want: Catalog{Categories: []Category{
				{ID: "security", Name: "Security", Tools: []Tool{
					{Name: "NVD News", Description: "Latest CVEs", Type: TypeIframe},
				}},
				{ID: "docs", Name: "Documentation", Tools: []Tool{
					{Name: "Go Blog", Description: "News from the Go team", Type: TypeIframe},
				}},
			}},
		},
		{
			name: "no match drops everything",
			term: "kubernetes",
			want: Catalog{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Filter(testCatalog, tt.term)
			if diff := pretty.Compare(got, tt.want); diff != "" {
				t.Errorf("Filter(%q) diff: (-got +want)\n%s", tt.term, diff)
			}
		})
	}
}

func TestFilter_EveryResultMatches(t *testing.T) {
	for _, term := range []string{"o", "go", "news", "dns", "e", "style", "zzz"} {
		for _, cat := range Filter(testCatalog, term).Categories {
			assert.True(t, Matches(cat, term), "category %q returned for %q", cat.ID, term)
		}
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	before := pretty.Sprint(testCatalog)
	_ = Filter(testCatalog, "go")
	_ = Filter(testCatalog, "news")
	require.Equal(t, before, pretty.Sprint(testCatalog))
}
