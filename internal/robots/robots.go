// Package robots fetches and evaluates a site's robots.txt for both the
// wildcard agent and a named set of AI-crawler agents. A missing, unreachable
// or unparseable robots.txt is an implicit allow, matching the RFC default.
package robots

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/temoto/robotstxt"

	"github.com/tmarchev/beacon/internal/logging"
	"github.com/tmarchev/beacon/internal/model"
	"github.com/tmarchev/beacon/internal/webclient"
)

// AIAgents are the user-agent tokens evaluated in addition to the wildcard.
// Sites increasingly block these while still allowing general crawling, so
// both verdicts are reported distinctly.
var AIAgents = []string{
	"GPTBot",
	"ClaudeBot",
	"PerplexityBot",
	"Google-Extended",
	"CCBot",
}

// Policy is one origin's parsed robots policy. The zero value (or a Policy
// from a missing robots.txt) allows everything.
type Policy struct {
	found bool
	data  *robotstxt.RobotsData
}

// FetchPolicy retrieves <origin>/robots.txt through the given webclient.
// Network errors and non-200 statuses yield an allow-all policy, never an
// error; crawling must not fail because robots.txt is absent.
func FetchPolicy(ctx context.Context, wc webclient.WebClient, origin string, logger logging.Logger) *Policy {
	robotsURL, err := url.JoinPath(origin, "robots.txt")
	if err != nil {
		logger.Warn("robots: building robots.txt url",
			logging.Field{Key: "origin", Value: origin},
			logging.Field{Key: "error", Value: err.Error()})
		return &Policy{}
	}

	resp, err := wc.Get(ctx, robotsURL)
	if err != nil {
		logger.Debug("robots: fetch failed, treating as allow-all",
			logging.Field{Key: "url", Value: robotsURL},
			logging.Field{Key: "error", Value: err.Error()})
		return &Policy{}
	}
	if resp.StatusCode != http.StatusOK {
		return &Policy{}
	}

	data, err := robotstxt.FromBytes(resp.Body)
	if err != nil {
		logger.Warn("robots: unparseable robots.txt, treating as allow-all",
			logging.Field{Key: "url", Value: robotsURL},
			logging.Field{Key: "error", Value: err.Error()})
		return &Policy{}
	}

	return &Policy{found: true, data: data}
}

// ParsePolicy builds a Policy from raw robots.txt bytes. Used by tests and by
// callers that already hold the file.
func ParsePolicy(body []byte) (*Policy, error) {
	data, err := robotstxt.FromBytes(body)
	if err != nil {
		return nil, fmt.Errorf("parse robots.txt: %w", err)
	}
	return &Policy{found: true, data: data}, nil
}

// Evaluate reports the wildcard and AI-agent verdicts for one URL path.
func (p *Policy) Evaluate(path string) model.RobotsPolicy {
	if p == nil || !p.found || p.data == nil {
		return model.RobotsPolicy{Found: false, WildcardAllowed: true, AIAllowed: true}
	}
	if path == "" {
		path = "/"
	}

	out := model.RobotsPolicy{
		Found:           true,
		WildcardAllowed: p.data.TestAgent(path, "*"),
		AIAllowed:       true,
	}
	for _, agent := range AIAgents {
		if !p.data.TestAgent(path, agent) {
			out.AIAllowed = false
			out.BlockedAgents = append(out.BlockedAgents, agent)
		}
	}
	return out
}
