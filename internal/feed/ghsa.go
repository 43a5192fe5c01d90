package feed

import (
	"context"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	githubql "github.com/shurcooL/githubv4"
	"golang.org/x/oauth2"
	"golang.org/x/xerrors"

	"github.com/ryan-rushton/toolhub/internal/vuln"
)

const maxResponseSize = 100

// SecurityAdvisorySeverity is the GraphQL enum; the type name is sent as the
// variable type.
type SecurityAdvisorySeverity string

const moderate SecurityAdvisorySeverity = "MODERATE"

type GithubClient interface {
	Query(ctx context.Context, q interface{}, variables map[string]interface{}) error
}

type securityVulnerabilitiesQuery struct {
	SecurityVulnerabilities struct {
		Nodes []securityVulnerability
	} `graphql:"securityVulnerabilities(first: $total, severities: $severities, orderBy: {field: UPDATED_AT, direction: DESC})"`
}

type securityVulnerability struct {
	Severity SecurityAdvisorySeverity
	Package  struct {
		Ecosystem string
		Name      string
	}
	Advisory struct {
		GhsaId      string
		Summary     string
		Permalink   string
		PublishedAt string
	}
}

// GHSA reads the GitHub Security Advisory database.
type GHSA struct {
	client GithubClient
}

func NewGHSA(client GithubClient) GHSA {
	return GHSA{client: client}
}

// NewGHSAFromToken builds a GHSA source authenticated with a personal access
// token. An empty token yields a source that always fails.
func NewGHSAFromToken(ctx context.Context, token string) GHSA {
	if token == "" {
		return GHSA{}
	}
	src := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	)
	httpClient := oauth2.NewClient(ctx, src)
	return NewGHSA(githubql.NewClient(httpClient))
}

func (GHSA) Name() vuln.Source { return vuln.SourceGitHub }

func (g GHSA) Fetch(ctx context.Context, severities []vuln.Severity) ([]vuln.Vulnerability, error) {
	if g.client == nil {
		return nil, xerrors.New("github token not configured")
	}

	var q securityVulnerabilitiesQuery
	variables := map[string]interface{}{
		"total":      githubql.Int(maxResponseSize),
		"severities": toAdvisorySeverities(severities),
	}
	if err := g.client.Query(ctx, &q, variables); err != nil {
		return nil, xerrors.Errorf("graphql api error: %w", err)
	}

	var out []vuln.Vulnerability
	for _, node := range q.SecurityVulnerabilities.Nodes {
		// GitHub may return partially empty nodes; skip them.
		if node.Advisory.GhsaId == "" {
			continue
		}
		v := vuln.Vulnerability{
			ID:          node.Advisory.GhsaId,
			Severity:    fromAdvisorySeverity(node.Severity),
			Source:      vuln.SourceGitHub,
			Description: strings.TrimSpace(node.Advisory.Summary),
			URL:         node.Advisory.Permalink,
		}
		if t, err := dateparse.ParseIn(node.Advisory.PublishedAt, time.UTC); err == nil {
			v.Published = t
		}
		out = append(out, v)
	}
	return out, nil
}

func toAdvisorySeverities(severities []vuln.Severity) []SecurityAdvisorySeverity {
	out := make([]SecurityAdvisorySeverity, len(severities))
	for i, s := range severities {
		if s == vuln.Medium {
			out[i] = moderate
			continue
		}
		out[i] = SecurityAdvisorySeverity(s)
	}
	return out
}

func fromAdvisorySeverity(s SecurityAdvisorySeverity) vuln.Severity {
	if s == moderate {
		return vuln.Medium
	}
	return vuln.Severity(s)
}
