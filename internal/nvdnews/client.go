package nvdnews

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/ryan-rushton/toolhub/internal/vuln"
)

// Result is one decoded API response. A non-empty Err means the service
// returned partial data alongside a non-fatal error.
type Result struct {
	Vulns []vuln.Vulnerability
	Err   string
}

// Partial reports whether the response carried an error next to its data.
func (r Result) Partial() bool {
	return r.Err != ""
}

// Fetcher queries vulnerabilities for the selected filters.
type Fetcher interface {
	Fetch(ctx context.Context, severities []vuln.Severity, sources []vuln.Source) (Result, error)
}

// Client talks to the vulnerability API served by `toolhub serve` or any
// service with the same contract.
type Client struct {
	endpoint string
	http     *http.Client
}

func NewClient(endpoint string) *Client {
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 30 * time.Second},
	}
}

// Fetch issues GET <endpoint>?severity=..&source=.. and decodes either a
// plain list or a {data, error} envelope.
func (c *Client) Fetch(ctx context.Context, severities []vuln.Severity, sources []vuln.Source) (Result, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return Result{}, fmt.Errorf("parsing api url: %w", err)
	}
	q := u.Query()
	q.Set("severity", vuln.Join(severities))
	q.Set("source", vuln.Join(sources))
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return Result{}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return Result{}, fmt.Errorf("fetching vulnerabilities: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, fmt.Errorf("reading response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		var apiErr struct {
			Error string `json:"error"`
		}
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Error != "" {
			return Result{}, fmt.Errorf("vulnerability api returned status %d: %s", resp.StatusCode, apiErr.Error)
		}
		return Result{}, fmt.Errorf("vulnerability api returned status %d", resp.StatusCode)
	}
	return decodeResult(body)
}

func decodeResult(body []byte) (Result, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) == 0 {
		return Result{}, fmt.Errorf("empty response")
	}

	if trimmed[0] == '[' {
		var list []vuln.Vulnerability
		if err := json.Unmarshal(trimmed, &list); err != nil {
			return Result{}, fmt.Errorf("decoding vulnerability list: %w", err)
		}
		return Result{Vulns: list}, nil
	}

	var env vuln.Envelope
	if err := json.Unmarshal(trimmed, &env); err != nil {
		return Result{}, fmt.Errorf("decoding vulnerability envelope: %w", err)
	}
	return Result{Vulns: env.Data, Err: env.Error}, nil
}
