// Package feed fetches recent vulnerabilities from upstream advisory
// databases and merges them into one list.
package feed

import (
	"context"

	"github.com/ryan-rushton/toolhub/internal/vuln"
)

// Source is one upstream advisory database.
type Source interface {
	Name() vuln.Source
	Fetch(ctx context.Context, severities []vuln.Severity) ([]vuln.Vulnerability, error)
}
