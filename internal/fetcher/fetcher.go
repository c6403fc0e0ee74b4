// Package fetcher is the audit pipeline's I/O boundary: it retrieves one
// page's raw markup and attaches the robots verdict for that URL. No scoring
// logic lives here.
package fetcher

import (
	"context"
	"fmt"
	"net/url"

	"github.com/tmarchev/beacon/internal/logging"
	"github.com/tmarchev/beacon/internal/model"
	"github.com/tmarchev/beacon/internal/robots"
	"github.com/tmarchev/beacon/internal/webclient"
)

// FetchError marks a per-page retrieval failure: network error, timeout or a
// non-success status. The crawler records it and moves on; it never aborts
// the run.
type FetchError struct {
	URL        string
	StatusCode int
	Err        error
}

func (e *FetchError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetch %s: %v", e.URL, e.Err)
	}
	return fmt.Sprintf("fetch %s: status %d", e.URL, e.StatusCode)
}

func (e *FetchError) Unwrap() error { return e.Err }

// PageFetch is the result of retrieving one URL.
type PageFetch struct {
	URL        string
	StatusCode int
	HTML       []byte
	Robots     model.RobotsPolicy
}

// Fetcher retrieves pages through a webclient backend and evaluates the
// origin's robots policy for each URL.
type Fetcher struct {
	wc     webclient.WebClient
	policy *robots.Policy
	logger logging.Logger
}

// New creates a Fetcher. policy may be nil, which evaluates as allow-all.
func New(wc webclient.WebClient, policy *robots.Policy, logger logging.Logger) *Fetcher {
	return &Fetcher{
		wc:     wc,
		policy: policy,
		logger: logger.With(logging.Field{Key: "component", Value: "fetcher"}),
	}
}

// Fetch retrieves pageURL. Non-2xx statuses, network errors and timeouts all
// surface as *FetchError.
func (f *Fetcher) Fetch(ctx context.Context, pageURL string) (*PageFetch, error) {
	if f.wc == nil {
		return nil, fmt.Errorf("fetcher: webclient is nil")
	}

	resp, err := f.wc.Get(ctx, pageURL)
	if err != nil {
		return nil, &FetchError{URL: pageURL, Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		f.logger.Debug("non-success status",
			logging.Field{Key: "url", Value: pageURL},
			logging.Field{Key: "status", Value: resp.StatusCode})
		return nil, &FetchError{URL: pageURL, StatusCode: resp.StatusCode}
	}

	return &PageFetch{
		URL:        pageURL,
		StatusCode: resp.StatusCode,
		HTML:       resp.Body,
		Robots:     f.policy.Evaluate(pathOf(pageURL)),
	}, nil
}

func pathOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" {
		return "/"
	}
	return u.Path
}
