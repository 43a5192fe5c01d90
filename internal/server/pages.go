package server

import (
	"html/template"
	"log"
	"net/http"

	"github.com/ryan-rushton/toolhub/internal/vuln"
)

type pageData struct {
	ResultsOnly bool
	Theme       string
	Severities  []option
	Sources     []option
	Vulns       []vuln.Vulnerability
	Error       string
	Partial     bool
}

type option struct {
	Value   string
	Checked bool
}

var page = template.Must(template.New("nvd-news").Parse(pageTemplate))

func (s *Server) handlePage(resultsOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		data := pageData{ResultsOnly: resultsOnly, Theme: "dark"}
		if r.URL.Query().Get("theme") == "light" {
			data.Theme = "light"
		}

		sel, err := parseSelection(r)
		if err != nil {
			w.WriteHeader(http.StatusBadRequest)
			data.Error = err.Error()
			render(w, data)
			return
		}
		data.Severities = options(vuln.Severities, sel.severities)
		data.Sources = options(vuln.Sources, sel.sources)

		res, err := s.feed.Fetch(r.Context(), sel.severities, sel.sources)
		switch {
		case err != nil:
			data.Error = err.Error()
		case res.Partial != nil:
			data.Partial = true
			data.Error = res.Partial.Error()
			data.Vulns = res.Vulns
		default:
			data.Vulns = res.Vulns
		}
		render(w, data)
	}
}

func render(w http.ResponseWriter, data pageData) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := page.Execute(w, data); err != nil {
		log.Printf("rendering page: %v", err)
	}
}

func options[T ~string](all, selected []T) []option {
	on := make(map[T]bool, len(selected))
	for _, v := range selected {
		on[v] = true
	}
	out := make([]option, len(all))
	for i, v := range all {
		out[i] = option{Value: string(v), Checked: on[v]}
	}
	return out
}
