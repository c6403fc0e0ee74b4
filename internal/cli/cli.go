// Package cli parses command-line arguments for the beacon binary.
package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"
)

// CLIArgs control either a one-shot audit or the API server.
type CLIArgs struct {
	// URL is the seed to audit. Required unless Serve is set.
	URL string

	// Depth is the crawl depth, 1-3.
	Depth int

	// Format selects the report rendering for one-shot runs: text or json.
	Format string

	// Serve starts the HTTP API server instead of a one-shot audit.
	Serve bool

	// Addr is the listen address when serving.
	Addr string

	// StorageRoot overrides the audit database location; empty uses the default.
	StorageRoot string

	// Concurrency overrides the crawl worker count; 0 means "use config default".
	Concurrency int

	// MaxPages overrides the crawl page cap; 0 means "use config default".
	MaxPages int

	// RawArgs is the original args slice (useful for debugging/tests).
	RawArgs []string
}

// ParseArgs parses a slice of args and returns CLIArgs. Use in tests by
// passing arbitrary slices. The function is deterministic and does not read
// os.Args.
func ParseArgs(args []string) (*CLIArgs, error) {
	fs := flag.NewFlagSet("beacon", flag.ContinueOnError)
	var (
		url         = fs.String("url", "", "Seed URL to audit (required unless -serve)")
		depth       = fs.Int("depth", 1, "Crawl depth, 1-3")
		format      = fs.String("format", "text", "Report output format: text|json")
		serve       = fs.Bool("serve", false, "Start the HTTP API server instead of a one-shot audit")
		addr        = fs.String("addr", ":8080", "Listen address when serving")
		storage     = fs.String("storage", "", "Storage root for the audit database (empty=default)")
		concurrency = fs.Int("concurrency", 0, "Crawl worker count for this run (0=use default)")
		maxPages    = fs.Int("max-pages", 0, "Page cap for this run (0=use default)")
	)

	// Ensure Parse doesn't write to stdout/stderr in tests
	fs.SetOutput(io.Discard)

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	if !*serve && strings.TrimSpace(*url) == "" {
		return nil, fmt.Errorf("missing required -url argument")
	}
	if *depth < 1 || *depth > 3 {
		return nil, fmt.Errorf("-depth must be between 1 and 3")
	}
	if *format != "text" && *format != "json" {
		return nil, fmt.Errorf("-format must be text or json")
	}

	return &CLIArgs{
		URL:         *url,
		Depth:       *depth,
		Format:      *format,
		Serve:       *serve,
		Addr:        *addr,
		StorageRoot: *storage,
		Concurrency: *concurrency,
		MaxPages:    *maxPages,
		RawArgs:     args,
	}, nil
}
