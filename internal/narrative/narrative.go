// Package narrative produces the optional prose summary appended to a
// report. Generation happens after scoring and never influences scores; a
// missing or failing generator degrades the report, it does not fail it.
package narrative

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/tmarchev/beacon/internal/logging"
	"github.com/tmarchev/beacon/internal/model"
	"github.com/tmarchev/beacon/internal/report"
	"github.com/tmarchev/beacon/internal/webclient"
)

// ErrNoService marks a generator configured without an endpoint.
var ErrNoService = errors.New("narrative: no service endpoint configured")

// Generator turns a finished report into a prose summary.
type Generator interface {
	Generate(ctx context.Context, r *model.SiteReport) (string, error)
}

// Config for the HTTP generator.
type Config struct {
	// Endpoint of the text-generation service. Empty disables narration.
	Endpoint string

	// APIKey is sent as a bearer token when set.
	APIKey string
}

// HTTPGenerator posts a compact report summary to an external
// text-generation service and returns its prose.
type HTTPGenerator struct {
	cfg    Config
	wc     webclient.WebClient
	logger logging.Logger
}

func NewHTTPGenerator(cfg Config, wc webclient.WebClient, logger logging.Logger) *HTTPGenerator {
	return &HTTPGenerator{
		cfg:    cfg,
		wc:     wc,
		logger: logger.With(logging.Field{Key: "component", Value: "narrative"}),
	}
}

// request is the payload sent to the service: only the aggregates and
// per-page verdict failures, never raw page text.
type request struct {
	SeedURL   string            `json:"seed_url"`
	SiteScore int               `json:"site_score"`
	Rating    string            `json:"rating"`
	Issues    model.IssueCounts `json:"issues"`
	Pages     []pageSummary     `json:"pages"`
}

type pageSummary struct {
	URL          string   `json:"url"`
	Score        int      `json:"score"`
	Tier         string   `json:"tier"`
	FailedChecks []string `json:"failed_checks,omitempty"`
}

type response struct {
	Text string `json:"text"`
}

func (g *HTTPGenerator) Generate(ctx context.Context, r *model.SiteReport) (string, error) {
	if g.cfg.Endpoint == "" {
		return "", ErrNoService
	}

	payload := request{
		SeedURL:   r.SeedURL,
		SiteScore: r.SiteScore,
		Rating:    report.RatingOf(r.SiteScore),
		Issues:    r.Issues,
	}
	for _, p := range r.Pages {
		s := pageSummary{URL: p.URL, Score: p.Score, Tier: string(p.Tier)}
		for _, v := range p.Verdicts {
			if !v.Passed {
				s.FailedChecks = append(s.FailedChecks, v.Check)
			}
		}
		payload.Pages = append(payload.Pages, s)
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("narrative: marshal request: %w", err)
	}

	req := &webclient.Request{
		Method:  http.MethodPost,
		URL:     g.cfg.Endpoint,
		Headers: http.Header{"Content-Type": []string{"application/json"}},
		Body:    body,
	}
	if g.cfg.APIKey != "" {
		req.Headers.Set("Authorization", "Bearer "+g.cfg.APIKey)
	}

	resp, err := g.wc.Do(ctx, req)
	if err != nil {
		return "", fmt.Errorf("narrative: service call: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("narrative: service returned status %d", resp.StatusCode)
	}

	var out response
	if err := json.Unmarshal(resp.Body, &out); err != nil {
		return "", fmt.Errorf("narrative: decode response: %w", err)
	}
	if out.Text == "" {
		return "", errors.New("narrative: service returned empty text")
	}

	g.logger.Debug("narrative generated",
		logging.Field{Key: "report_id", Value: r.ID},
		logging.Field{Key: "chars", Value: len(out.Text)})
	return out.Text, nil
}
