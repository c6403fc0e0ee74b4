package model

import "time"

// DuplicateCluster is a set of pages whose extracted text exceeded the
// similarity threshold, closed transitively. Singleton pages never form a
// cluster.
type DuplicateCluster struct {
	// URLs are the member pages, in crawl order.
	URLs []string `json:"urls"`

	// MaxSimilarity is the highest pairwise cosine similarity inside the
	// cluster, rounded to three decimals.
	MaxSimilarity float64 `json:"max_similarity"`

	// CommonTextRatio is the share of text the two most similar members have
	// in common, diff-derived, 0..1.
	CommonTextRatio float64 `json:"common_text_ratio"`
}

// IssueCounts buckets every failed verdict across all pages by severity.
// Critical+Important+Suggested always equals the total number of failed
// verdicts on the report.
type IssueCounts struct {
	Critical  int `json:"critical"`
	Important int `json:"important"`
	Suggested int `json:"suggested"`
}

// Total returns the number of failed verdicts across all buckets.
func (i IssueCounts) Total() int { return i.Critical + i.Important + i.Suggested }

// TierBreakdown counts pages per accessibility tier label.
type TierBreakdown struct {
	High   int `json:"high"`
	Medium int `json:"medium"`
	Low    int `json:"low"`
}

// ContentAnalysis holds site-wide content averages.
type ContentAnalysis struct {
	AvgReadabilityScore       int `json:"avg_readability_score"`
	AvgStructuredDataRichness int `json:"avg_structured_data_richness"`
	TotalStructuredSchemas    int `json:"total_structured_schemas"`
}

// SiteReport is the aggregate over all PageRecords for one audit run.
// Built once by the aggregator and never mutated afterwards.
type SiteReport struct {
	ID          string    `json:"id"`
	SeedURL     string    `json:"seed_url"`
	Depth       int       `json:"depth"`
	GeneratedAt time.Time `json:"generated_at"`

	Pages    []PageRecord  `json:"pages"`
	Failures []PageFailure `json:"failures,omitempty"`

	// SiteScore is the mean of all successfully scored page scores, rounded.
	// Zero pages yields 0, not an error.
	SiteScore int `json:"site_score"`

	Issues          IssueCounts     `json:"issues"`
	Accessibility   TierBreakdown   `json:"accessibility_breakdown"`
	ContentAnalysis ContentAnalysis `json:"content_analysis"`

	DuplicateClusters []DuplicateCluster `json:"duplicate_clusters,omitempty"`

	// Narrative is the prose section from the external report generator.
	// Empty when the generator is absent or failed; never fatal.
	Narrative string `json:"narrative,omitempty"`
}
