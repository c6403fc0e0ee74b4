package robots_test

import (
	"context"
	"testing"

	"github.com/tmarchev/beacon/internal/robots"
	"github.com/tmarchev/beacon/internal/testutil"
)

func TestEvaluateMissingRobots(t *testing.T) {
	t.Parallel()

	// Fetch failure (404 from the static client) must yield allow-all.
	wc := &testutil.StaticWebClient{Pages: map[string]string{}}
	p := robots.FetchPolicy(context.Background(), wc, "https://example.com", &testutil.DummyLogger{})

	got := p.Evaluate("/page")
	if got.Found {
		t.Error("missing robots.txt should report Found=false")
	}
	if !got.WildcardAllowed || !got.AIAllowed {
		t.Error("missing robots.txt must allow everything")
	}
	if len(got.BlockedAgents) != 0 {
		t.Errorf("unexpected blocked agents: %v", got.BlockedAgents)
	}
}

func TestEvaluateNetworkError(t *testing.T) {
	t.Parallel()

	wc := &testutil.StaticWebClient{
		FailURLs: map[string]bool{"https://example.com/robots.txt": true},
	}
	p := robots.FetchPolicy(context.Background(), wc, "https://example.com", &testutil.DummyLogger{})

	if got := p.Evaluate("/"); !got.AIAllowed || got.Found {
		t.Errorf("unreachable robots.txt should evaluate as allow-all, got %+v", got)
	}
}

func TestEvaluateAIBlocked(t *testing.T) {
	t.Parallel()

	p, err := robots.ParsePolicy([]byte(`User-agent: *
Allow: /

User-agent: GPTBot
Disallow: /

User-agent: ClaudeBot
Disallow: /
`))
	if err != nil {
		t.Fatal(err)
	}

	got := p.Evaluate("/article")
	if !got.Found {
		t.Error("expected Found=true")
	}
	if !got.WildcardAllowed {
		t.Error("wildcard agent should be allowed")
	}
	if got.AIAllowed {
		t.Error("AI agents should be blocked")
	}
	want := map[string]bool{"GPTBot": true, "ClaudeBot": true}
	if len(got.BlockedAgents) != len(want) {
		t.Fatalf("blocked agents = %v, want GPTBot and ClaudeBot", got.BlockedAgents)
	}
	for _, a := range got.BlockedAgents {
		if !want[a] {
			t.Errorf("unexpected blocked agent %q", a)
		}
	}
}

func TestEvaluateWildcardBlockedAIAllowed(t *testing.T) {
	t.Parallel()

	p, err := robots.ParsePolicy([]byte(`User-agent: *
Disallow: /

User-agent: GPTBot
Allow: /

User-agent: ClaudeBot
Allow: /

User-agent: PerplexityBot
Allow: /

User-agent: Google-Extended
Allow: /

User-agent: CCBot
Allow: /
`))
	if err != nil {
		t.Fatal(err)
	}

	got := p.Evaluate("/")
	if got.WildcardAllowed {
		t.Error("wildcard agent should be blocked")
	}
	if !got.AIAllowed {
		t.Errorf("AI agents should be allowed, blocked: %v", got.BlockedAgents)
	}
}

func TestEvaluatePathSpecific(t *testing.T) {
	t.Parallel()

	p, err := robots.ParsePolicy([]byte(`User-agent: GPTBot
Disallow: /private/
`))
	if err != nil {
		t.Fatal(err)
	}

	if got := p.Evaluate("/public"); !got.AIAllowed {
		t.Errorf("/public should be allowed, blocked: %v", got.BlockedAgents)
	}
	if got := p.Evaluate("/private/doc"); got.AIAllowed {
		t.Error("/private/doc should be blocked for GPTBot")
	}
}

func TestEvaluateNilPolicy(t *testing.T) {
	t.Parallel()

	var p *robots.Policy
	if got := p.Evaluate("/"); !got.AIAllowed || !got.WildcardAllowed {
		t.Error("nil policy must allow everything")
	}
}
