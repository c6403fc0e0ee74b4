package app

import (
	"path/filepath"

	"github.com/tmarchev/beacon/internal/crawler"
	"github.com/tmarchev/beacon/internal/dedup"
	"github.com/tmarchev/beacon/internal/narrative"
	"github.com/tmarchev/beacon/internal/scoring"
	"github.com/tmarchev/beacon/internal/webclient"
)

// Config ties together the per-module configurations one audit run needs.
type Config struct {
	// StorageRoot is the base directory for the audit database.
	StorageRoot string

	WebClientCfg webclient.Config
	CrawlerCfg   crawler.Config
	NarrativeCfg narrative.Config

	// Weights for the page score combination.
	Weights scoring.Weights

	// DedupThreshold is the cosine similarity above which pages cluster as
	// near-duplicates.
	DedupThreshold float64
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		StorageRoot:    "~/.config/beacon",
		WebClientCfg:   webclient.DefaultConfig(),
		CrawlerCfg:     crawler.DefaultConfig(),
		NarrativeCfg:   narrative.Config{},
		Weights:        scoring.DefaultWeights,
		DedupThreshold: dedup.SimilarityThreshold,
	}
}

// DatabasePath is where the audit store lives under StorageRoot.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.StorageRoot, "beacon.db")
}
