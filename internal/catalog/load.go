package catalog

import (
	_ "embed"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/parnurzeal/gorequest"
	"github.com/spf13/afero"
)

//go:embed default_catalog.json
var defaultCatalog []byte

// Default returns the catalog compiled into the binary.
func Default() Catalog {
	c, err := Parse(defaultCatalog)
	if err != nil {
		panic(fmt.Sprintf("embedded catalog is invalid: %v", err))
	}
	return c
}

// Loader reads a catalog document from disk or over HTTP.
type Loader struct {
	fs      afero.Fs
	timeout time.Duration
}

type LoaderOption func(*Loader)

// WithFs replaces the file system used for local catalogs.
func WithFs(fs afero.Fs) LoaderOption {
	return func(l *Loader) { l.fs = fs }
}

// WithTimeout bounds remote catalog requests.
func WithTimeout(d time.Duration) LoaderOption {
	return func(l *Loader) { l.timeout = d }
}

func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		fs:      afero.NewOsFs(),
		timeout: 10 * time.Second,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load fetches the catalog named by source: an http(s) URL, a file path, or
// "" for the embedded default. It is called once per session and never
// retries.
func (l *Loader) Load(source string) (Catalog, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return Default(), nil
	}

	var (
		b   []byte
		err error
	)
	if strings.HasPrefix(source, "http://") || strings.HasPrefix(source, "https://") {
		b, err = l.fetch(source)
	} else {
		b, err = afero.ReadFile(l.fs, source)
	}
	if err != nil {
		return Catalog{}, fmt.Errorf("loading catalog %s: %w", source, err)
	}

	c, err := Parse(b)
	if err != nil {
		return Catalog{}, fmt.Errorf("parsing catalog %s: %w", source, err)
	}
	return c, nil
}

func (l *Loader) fetch(url string) ([]byte, error) {
	resp, body, errs := gorequest.New().
		Timeout(l.timeout).
		Get(url).
		Set("Accept", "application/json").
		EndBytes()
	if len(errs) > 0 {
		return nil, errs[0]
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	return body, nil
}
