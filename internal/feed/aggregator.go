package feed

import (
	"context"
	"log"
	"sort"
	"strings"
	"sync"

	"github.com/hashicorp/go-multierror"
	"github.com/samber/lo"
	"golang.org/x/xerrors"

	"github.com/ryan-rushton/toolhub/internal/vuln"
)

// Result is a merged fetch. Partial is set when some, but not all, sources
// failed.
type Result struct {
	Vulns   []vuln.Vulnerability
	Partial error
}

// Aggregator fans a request out to the selected sources.
type Aggregator struct {
	sources map[vuln.Source]Source
}

func NewAggregator(sources ...Source) *Aggregator {
	a := &Aggregator{sources: make(map[vuln.Source]Source, len(sources))}
	for _, s := range sources {
		a.sources[s.Name()] = s
	}
	return a
}

type sourceResult struct {
	vulns []vuln.Vulnerability
	err   error
}

// Fetch queries every selected source concurrently. It returns an error only
// when all of them fail.
func (a *Aggregator) Fetch(ctx context.Context, severities []vuln.Severity, sources []vuln.Source) (Result, error) {
	results := make([]sourceResult, len(sources))

	var wg sync.WaitGroup
	for i, name := range sources {
		src, ok := a.sources[name]
		if !ok {
			results[i].err = xerrors.Errorf("source %s is not configured", name)
			continue
		}
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			vulns, err := src.Fetch(ctx, severities)
			if err != nil {
				err = xerrors.Errorf("%s: %w", src.Name(), err)
			}
			results[i] = sourceResult{vulns: vulns, err: err}
		}(i, src)
	}
	wg.Wait()

	var errs *multierror.Error
	var all []vuln.Vulnerability
	for _, r := range results {
		if r.err != nil {
			log.Printf("feed: %v", r.err)
			errs = multierror.Append(errs, r.err)
			continue
		}
		all = append(all, r.vulns...)
	}

	if errs != nil {
		errs.ErrorFormat = joinErrors
	}
	if errs != nil && len(errs.Errors) == len(sources) {
		return Result{}, xerrors.Errorf("all sources failed: %w", errs.ErrorOrNil())
	}

	all = lo.UniqBy(all, func(v vuln.Vulnerability) string {
		return string(v.Source) + "/" + v.ID
	})
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Published.After(all[j].Published)
	})
	if all == nil {
		all = []vuln.Vulnerability{}
	}

	return Result{Vulns: all, Partial: errs.ErrorOrNil()}, nil
}

// joinErrors keeps the combined message on one line so it fits a banner.
func joinErrors(errs []error) string {
	msgs := lo.Map(errs, func(err error, _ int) string { return err.Error() })
	return strings.Join(msgs, "; ")
}
