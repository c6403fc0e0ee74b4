// Package demosite serves a small fixed website whose pages exercise the
// audit checks: well-structured pages, pages missing headings or alt text,
// script-dependent shells and near-duplicate articles.
package demosite

import (
	"fmt"
	"net/http"
	"sync"
)

// DemoSite is a simple HTTP server for demonstrating audits.
type DemoSite struct {
	cfg   Config
	pages map[string]string
	mu    sync.RWMutex
}

// NewDemoSite creates a demo site instance with the built-in page set.
func NewDemoSite(cfg Config) *DemoSite {
	return &DemoSite{cfg: cfg, pages: allPages()}
}

// Handler returns the site as an http.Handler, usable with httptest.
func (s *DemoSite) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/robots.txt", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		fmt.Fprint(w, s.robotsTxt())
	})

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		s.mu.RLock()
		body, ok := s.pages[r.URL.Path]
		s.mu.RUnlock()
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		fmt.Fprint(w, body)
	})

	return mux
}

// Start starts the demo site on the configured port.
func (s *DemoSite) Start() error {
	addr := fmt.Sprintf(":%d", s.cfg.Port)
	fmt.Printf("Demo site starting on http://localhost%s\n", addr)
	return http.ListenAndServe(addr, s.Handler())
}

func (s *DemoSite) robotsTxt() string {
	if s.cfg.BlockAIAgents {
		return "User-agent: *\nAllow: /\n\nUser-agent: GPTBot\nDisallow: /\n\nUser-agent: ClaudeBot\nDisallow: /\n"
	}
	return "User-agent: *\nAllow: /\n"
}
