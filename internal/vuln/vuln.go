// Package vuln defines the vulnerability records exchanged between the feed
// service and the news tool.
package vuln

import (
	"fmt"
	"strings"
	"time"
)

type Severity string

const (
	Critical Severity = "CRITICAL"
	High     Severity = "HIGH"
	Medium   Severity = "MEDIUM"
	Low      Severity = "LOW"
)

// Severities lists every severity, most severe first.
var Severities = []Severity{Critical, High, Medium, Low}

type Source string

const (
	SourceNVD    Source = "NVD"
	SourceGitHub Source = "GITHUB"
)

// Sources lists every supported feed source.
var Sources = []Source{SourceNVD, SourceGitHub}

// Vulnerability is a single advisory. Records are replaced wholesale on each
// fetch and never edited.
type Vulnerability struct {
	ID          string    `json:"id"`
	Severity    Severity  `json:"severity"`
	Source      Source    `json:"source"`
	Description string    `json:"description"`
	Published   time.Time `json:"published"`
	URL         string    `json:"url,omitempty"`
}

// Envelope is the partial-success response: usable data plus a non-fatal
// error.
type Envelope struct {
	Data  []Vulnerability `json:"data"`
	Error string          `json:"error"`
}

// ParseSeverities reads a comma separated list such as "critical,HIGH".
// An empty string selects every severity.
func ParseSeverities(s string) ([]Severity, error) {
	return parseList(s, Severities, "severity")
}

// ParseSources reads a comma separated list such as "nvd,github".
// An empty string selects every source.
func ParseSources(s string) ([]Source, error) {
	return parseList(s, Sources, "source")
}

func parseList[T ~string](s string, known []T, what string) ([]T, error) {
	if strings.TrimSpace(s) == "" {
		return append([]T(nil), known...), nil
	}
	seen := make(map[T]bool)
	for _, part := range strings.Split(s, ",") {
		v := T(strings.ToUpper(strings.TrimSpace(part)))
		if v == "" {
			continue
		}
		if !contains(known, v) {
			return nil, fmt.Errorf("unknown %s %q", what, part)
		}
		seen[v] = true
	}
	// Canonical order keeps query strings and cache keys stable.
	var out []T
	for _, k := range known {
		if seen[k] {
			out = append(out, k)
		}
	}
	// A list of only separators means the same as no list at all.
	if len(out) == 0 {
		return append([]T(nil), known...), nil
	}
	return out, nil
}

func contains[T comparable](list []T, v T) bool {
	for _, x := range list {
		if x == v {
			return true
		}
	}
	return false
}

// Join renders a list as the comma separated form accepted by the parsers.
func Join[T ~string](list []T) string {
	parts := make([]string, len(list))
	for i, v := range list {
		parts[i] = string(v)
	}
	return strings.Join(parts, ",")
}
