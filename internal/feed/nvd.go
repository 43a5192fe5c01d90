package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"golang.org/x/xerrors"

	"github.com/ryan-rushton/toolhub/internal/vuln"
)

const (
	nvdURL        = "https://services.nvd.nist.gov/rest/json/cves/2.0/"
	nvdDetailURL  = "https://nvd.nist.gov/vuln/detail/"
	nvdTimeFormat = "2006-01-02T15:04:05.000"
)

type nvdResponse struct {
	Vulnerabilities []struct {
		CVE nvdCVE `json:"cve"`
	} `json:"vulnerabilities"`
}

type nvdCVE struct {
	ID           string `json:"id"`
	Published    string `json:"published"`
	Descriptions []struct {
		Lang  string `json:"lang"`
		Value string `json:"value"`
	} `json:"descriptions"`
	Metrics struct {
		V31 []nvdMetric `json:"cvssMetricV31"`
		V30 []nvdMetric `json:"cvssMetricV30"`
	} `json:"metrics"`
}

type nvdMetric struct {
	CVSSData struct {
		BaseSeverity string `json:"baseSeverity"`
	} `json:"cvssData"`
}

type nvdOptions struct {
	baseURL        string
	apiKey         string
	days           int
	resultsPerPage int
	client         *http.Client
	now            func() time.Time
}

type NVDOption func(*nvdOptions)

func WithNVDBaseURL(u string) NVDOption {
	return func(o *nvdOptions) { o.baseURL = u }
}

func WithNVDAPIKey(key string) NVDOption {
	return func(o *nvdOptions) { o.apiKey = key }
}

// WithNVDDays sets how far back, in days, published CVEs are requested.
func WithNVDDays(days int) NVDOption {
	return func(o *nvdOptions) { o.days = days }
}

func WithNVDResultsPerPage(n int) NVDOption {
	return func(o *nvdOptions) { o.resultsPerPage = n }
}

func WithNVDHTTPClient(c *http.Client) NVDOption {
	return func(o *nvdOptions) { o.client = c }
}

func withNVDClock(now func() time.Time) NVDOption {
	return func(o *nvdOptions) { o.now = now }
}

// NVD reads the NIST CVE 2.0 API.
type NVD struct {
	*nvdOptions
}

func NewNVD(opts ...NVDOption) NVD {
	o := &nvdOptions{
		baseURL:        nvdURL,
		days:           7,
		resultsPerPage: 50,
		client:         &http.Client{Timeout: 30 * time.Second},
		now:            time.Now,
	}
	for _, opt := range opts {
		opt(o)
	}
	return NVD{nvdOptions: o}
}

func (NVD) Name() vuln.Source { return vuln.SourceNVD }

// Fetch issues one request per severity; the API filters on a single
// cvssV3Severity value at a time.
func (n NVD) Fetch(ctx context.Context, severities []vuln.Severity) ([]vuln.Vulnerability, error) {
	end := n.now().UTC()
	start := end.Add(-time.Duration(n.days) * 24 * time.Hour)

	var out []vuln.Vulnerability
	for _, sev := range severities {
		u, err := n.urlWithParams(sev, start, end)
		if err != nil {
			return nil, err
		}
		resp, err := n.get(ctx, u)
		if err != nil {
			return nil, xerrors.Errorf("unable to fetch %s CVEs: %w", sev, err)
		}
		for _, v := range resp.Vulnerabilities {
			out = append(out, v.CVE.toVulnerability(sev))
		}
	}
	return out, nil
}

func (n NVD) urlWithParams(sev vuln.Severity, start, end time.Time) (string, error) {
	u, err := url.Parse(n.baseURL)
	if err != nil {
		return "", xerrors.Errorf("unable to parse %q base url: %w", n.baseURL, err)
	}
	q := u.Query()
	q.Set("cvssV3Severity", string(sev))
	q.Set("pubStartDate", start.Format(nvdTimeFormat))
	q.Set("pubEndDate", end.Format(nvdTimeFormat))
	q.Set("resultsPerPage", strconv.Itoa(n.resultsPerPage))
	u.RawQuery = q.Encode()
	return u.String(), nil
}

func (n NVD) get(ctx context.Context, u string) (nvdResponse, error) {
	var r nvdResponse
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return r, xerrors.Errorf("unable to build request for %q: %w", u, err)
	}
	if n.apiKey != "" {
		req.Header.Set("apiKey", n.apiKey)
	}
	resp, err := n.client.Do(req)
	if err != nil {
		return r, xerrors.Errorf("unable to get %q: %w", u, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return r, xerrors.Errorf("unexpected status %d from %q", resp.StatusCode, u)
	}
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return r, xerrors.Errorf("unable to decode response for %q: %w", u, err)
	}
	return r, nil
}

func (c nvdCVE) toVulnerability(requested vuln.Severity) vuln.Vulnerability {
	v := vuln.Vulnerability{
		ID:       c.ID,
		Severity: requested,
		Source:   vuln.SourceNVD,
		URL:      nvdDetailURL + c.ID,
	}
	if sev := c.severity(); sev != "" {
		v.Severity = sev
	}
	for _, d := range c.Descriptions {
		if d.Lang == "en" {
			v.Description = d.Value
			break
		}
	}
	if t, err := dateparse.ParseIn(c.Published, time.UTC); err == nil {
		v.Published = t
	}
	return v
}

// severity prefers CVSS v3.1 over v3.0.
func (c nvdCVE) severity() vuln.Severity {
	for _, metrics := range [][]nvdMetric{c.Metrics.V31, c.Metrics.V30} {
		for _, m := range metrics {
			if s := strings.ToUpper(m.CVSSData.BaseSeverity); s != "" {
				return vuln.Severity(s)
			}
		}
	}
	return ""
}
