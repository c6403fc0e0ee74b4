// Package crawler performs the bounded breadth-first traversal that drives
// an audit: fetch, analyze, check and score every discovered page up to the
// configured depth, without ever letting one bad page abort the run.
package crawler

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/tmarchev/beacon/internal/analyzer"
	"github.com/tmarchev/beacon/internal/checks"
	"github.com/tmarchev/beacon/internal/fetcher"
	"github.com/tmarchev/beacon/internal/logging"
	"github.com/tmarchev/beacon/internal/model"
	"github.com/tmarchev/beacon/internal/scoring"
	"github.com/tmarchev/beacon/internal/urlutil"
)

// Config bounds one crawl.
type Config struct {
	// MaxDepth is the number of crawl levels, 1-based: 1 audits only the
	// seed page, 2 adds pages the seed links to, and so on.
	MaxDepth int

	// MaxPages is the global safety cap on fetched pages, bounding
	// worst-case fan-out from degenerate sites.
	MaxPages int

	// Concurrency is the fetch worker pool size.
	Concurrency int

	// SameOriginOnly restricts discovered links to the seed's host.
	SameOriginOnly bool
}

// DefaultConfig mirrors the limits a polite single-site audit needs.
func DefaultConfig() Config {
	return Config{
		MaxDepth:       1,
		MaxPages:       50,
		Concurrency:    4,
		SameOriginOnly: true,
	}
}

// Result is everything one traversal produced.
type Result struct {
	Pages    []model.PageRecord
	Failures []model.PageFailure
}

// Crawler wires the per-page pipeline (fetch, analyze, checks, score) into a
// breadth-first traversal.
type Crawler struct {
	cfg      Config
	fetcher  *fetcher.Fetcher
	analyzer *analyzer.Analyzer
	scorer   *scoring.Scorer
	logger   logging.Logger
}

func New(cfg Config, f *fetcher.Fetcher, a *analyzer.Analyzer, s *scoring.Scorer, logger logging.Logger) *Crawler {
	if cfg.MaxDepth < 1 {
		cfg.MaxDepth = 1
	}
	if cfg.MaxPages < 1 {
		cfg.MaxPages = DefaultConfig().MaxPages
	}
	if cfg.Concurrency < 1 {
		cfg.Concurrency = DefaultConfig().Concurrency
	}
	return &Crawler{
		cfg:      cfg,
		fetcher:  f,
		analyzer: a,
		scorer:   s,
		logger:   logger.With(logging.Field{Key: "component", Value: "crawler"}),
	}
}

type target struct {
	url   string
	depth int
}

type pageOutcome struct {
	order   int
	record  *model.PageRecord
	failure *model.PageFailure
	links   []string
	depth   int
}

// Crawl traverses from seedURL. Only a malformed seed returns an error;
// every per-page problem is recorded on the Result instead.
func (c *Crawler) Crawl(ctx context.Context, seedURL string) (*Result, error) {
	seed, err := urlutil.Normalize(seedURL)
	if err != nil {
		return nil, fmt.Errorf("invalid seed url: %w", err)
	}

	visited := map[string]bool{seed: true}
	var mu sync.Mutex // guards visited and fetched across workers
	fetched := 0

	res := &Result{}
	frontier := []target{{url: seed, depth: 0}}

	for len(frontier) > 0 {
		if ctx.Err() != nil {
			break
		}

		// Trim the level to whatever the page cap still allows; links
		// beyond it are discarded, not errored.
		mu.Lock()
		room := c.cfg.MaxPages - fetched
		mu.Unlock()
		if room <= 0 {
			c.logger.Info("page cap reached, stopping traversal",
				logging.Field{Key: "max_pages", Value: c.cfg.MaxPages})
			break
		}
		if len(frontier) > room {
			frontier = frontier[:room]
		}
		mu.Lock()
		fetched += len(frontier)
		mu.Unlock()

		outcomes := c.processLevel(ctx, frontier)

		var next []target
		for _, out := range outcomes {
			if out.failure != nil {
				res.Failures = append(res.Failures, *out.failure)
			}
			if out.record != nil {
				res.Pages = append(res.Pages, *out.record)
			}

			if out.depth+1 >= c.cfg.MaxDepth {
				continue
			}
			for _, link := range out.links {
				if c.cfg.SameOriginOnly && !urlutil.SameHost(seed, link) {
					continue
				}
				mu.Lock()
				if !visited[link] {
					visited[link] = true
					next = append(next, target{url: link, depth: out.depth + 1})
				}
				mu.Unlock()
			}
		}

		frontier = next
	}

	c.logger.Info("crawl finished",
		logging.Field{Key: "seed", Value: seed},
		logging.Field{Key: "pages", Value: len(res.Pages)},
		logging.Field{Key: "failures", Value: len(res.Failures)})

	return res, nil
}

// processLevel runs one frontier through the worker pool and returns the
// outcomes in frontier order, keeping reports deterministic.
func (c *Crawler) processLevel(ctx context.Context, frontier []target) []pageOutcome {
	jobs := make(chan int, len(frontier))
	results := make(chan pageOutcome, len(frontier))

	workers := c.cfg.Concurrency
	if workers > len(frontier) {
		workers = len(frontier)
	}

	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				select {
				case <-ctx.Done():
					return
				default:
				}
				out := c.processPage(ctx, frontier[idx])
				out.order = idx
				results <- out
			}
		}()
	}

	for i := range frontier {
		jobs <- i
	}
	close(jobs)

	go func() {
		wg.Wait()
		close(results)
	}()

	outcomes := make([]pageOutcome, 0, len(frontier))
	for out := range results {
		outcomes = append(outcomes, out)
	}
	sort.Slice(outcomes, func(i, j int) bool { return outcomes[i].order < outcomes[j].order })
	return outcomes
}

// processPage runs the full per-page pipeline. All errors are converted to
// recorded failures here, at the page-processing boundary.
func (c *Crawler) processPage(ctx context.Context, t target) (out pageOutcome) {
	out.depth = t.depth

	// A scorer defect must not crash the run: log it and exclude the page
	// from the aggregate.
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("scoring defect, excluding page",
				logging.Field{Key: "url", Value: t.url},
				logging.Field{Key: "panic", Value: fmt.Sprint(r)})
			out.record = nil
			out.failure = &model.PageFailure{
				URL:     t.url,
				Depth:   t.depth,
				Kind:    model.FailureScore,
				Message: fmt.Sprint(r),
			}
		}
	}()

	fetch, err := c.fetcher.Fetch(ctx, t.url)
	if err != nil {
		c.logger.Warn("page fetch failed",
			logging.Field{Key: "url", Value: t.url},
			logging.Field{Key: "error", Value: err.Error()})
		out.failure = &model.PageFailure{
			URL: t.url, Depth: t.depth, Kind: model.FailureFetch, Message: err.Error(),
		}
		return out
	}

	content, err := c.analyzer.Analyze(fetch.HTML, t.url)
	if err != nil {
		c.logger.Warn("page analysis failed",
			logging.Field{Key: "url", Value: t.url},
			logging.Field{Key: "error", Value: err.Error()})
		out.failure = &model.PageFailure{
			URL: t.url, Depth: t.depth, Kind: model.FailureParse, Message: err.Error(),
		}
		return out
	}

	verdicts := checks.RunAll(checks.Input{Content: content, Robots: fetch.Robots})
	sub, score, tier := c.scorer.ScorePage(content, verdicts)

	out.links = content.Links
	out.record = &model.PageRecord{
		URL:        t.url,
		Depth:      t.depth,
		StatusCode: fetch.StatusCode,
		Content:    content,
		Robots:     fetch.Robots,
		Verdicts:   verdicts,
		SubScores:  sub,
		Score:      score,
		Tier:       tier,
	}
	return out
}
