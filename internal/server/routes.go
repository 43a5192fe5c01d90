package server

import (
	"net/http"
	"strings"

	"github.com/ryan-rushton/toolhub/internal/vuln"
)

type selection struct {
	severities []vuln.Severity
	sources    []vuln.Source
}

// parseSelection accepts both severity=A,B and repeated severity=A&severity=B,
// the latter being what the page form submits.
func parseSelection(r *http.Request) (selection, error) {
	q := r.URL.Query()
	sevs, err := vuln.ParseSeverities(strings.Join(q["severity"], ","))
	if err != nil {
		return selection{}, err
	}
	srcs, err := vuln.ParseSources(strings.Join(q["source"], ","))
	if err != nil {
		return selection{}, err
	}
	return selection{severities: sevs, sources: srcs}, nil
}

// handleVulnerabilities answers with a plain list when every source worked,
// a {data, error} envelope when some failed and 502 when all failed.
func (s *Server) handleVulnerabilities(w http.ResponseWriter, r *http.Request) {
	sel, err := parseSelection(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	res, err := s.feed.Fetch(r.Context(), sel.severities, sel.sources)
	if err != nil {
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	if res.Partial != nil {
		writeJSON(w, http.StatusOK, vuln.Envelope{Data: res.Vulns, Error: res.Partial.Error()})
		return
	}
	writeJSON(w, http.StatusOK, res.Vulns)
}
