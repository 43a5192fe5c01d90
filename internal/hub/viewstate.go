package hub

import "github.com/ryan-rushton/toolhub/internal/catalog"

// ViewState tracks which categories are expanded. Unset means collapsed.
// Methods return a new value; the receiver is never modified.
type ViewState struct {
	expanded map[string]bool
}

func NewViewState() ViewState {
	return ViewState{expanded: map[string]bool{}}
}

// Expanded reports whether category id is expanded.
func (v ViewState) Expanded(id string) bool {
	return v.expanded[id]
}

// Toggle flips category id. It is the only user-driven transition.
func (v ViewState) Toggle(id string) ViewState {
	return v.with(id, !v.expanded[id])
}

// Reset forgets every category. A new search starts from here.
func (v ViewState) Reset() ViewState {
	return NewViewState()
}

// Apply forces the only category of a single-category result open and
// records that in the state. Other entries, including categories not in
// filtered, are left alone.
func (v ViewState) Apply(filtered catalog.Catalog) ViewState {
	if len(filtered.Categories) != 1 {
		return v
	}
	id := filtered.Categories[0].ID
	if v.expanded[id] {
		return v
	}
	return v.with(id, true)
}

func (v ViewState) with(id string, on bool) ViewState {
	next := make(map[string]bool, len(v.expanded)+1)
	for k, val := range v.expanded {
		next[k] = val
	}
	next[id] = on
	return ViewState{expanded: next}
}
