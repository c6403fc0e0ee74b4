package model

// ElementCounts holds the per-tag counts the analyzer extracts from one page.
// The three tier totals partition every counted element: an element belongs to
// exactly one of EasilyAccessible/Challenging/Inaccessible.
type ElementCounts struct {
	// Easily accessible for automated consumers.
	Headings         int `json:"headings"`
	Paragraphs       int `json:"paragraphs"`
	Lists            int `json:"lists"`
	ImagesWithAlt    int `json:"images_with_alt"`
	StructuredBlocks int `json:"structured_blocks"`

	// Challenging.
	Tables           int `json:"tables"`
	Forms            int `json:"forms"`
	IFrames          int `json:"iframes"`
	ImagesWithoutAlt int `json:"images_without_alt"`

	// Inaccessible.
	Canvas          int `json:"canvas"`
	SVG             int `json:"svg"`
	Media           int `json:"media"`
	ScriptDependent int `json:"script_dependent"`
}

// EasilyAccessible returns the count of elements automated consumers read directly.
func (c ElementCounts) EasilyAccessible() int {
	return c.Headings + c.Paragraphs + c.Lists + c.ImagesWithAlt + c.StructuredBlocks
}

// Challenging returns the count of elements consumers parse with difficulty.
func (c ElementCounts) Challenging() int {
	return c.Tables + c.Forms + c.IFrames + c.ImagesWithoutAlt
}

// Inaccessible returns the count of elements consumers cannot read at all.
func (c ElementCounts) Inaccessible() int {
	return c.Canvas + c.SVG + c.Media + c.ScriptDependent
}

// Total returns the number of classified elements across all three tiers.
func (c ElementCounts) Total() int {
	return c.EasilyAccessible() + c.Challenging() + c.Inaccessible()
}

// PageContent is the structured content model the analyzer produces from one
// page's static markup. It carries everything checks and scoring need so that
// neither ever re-parses HTML.
type PageContent struct {
	// Title is the <title> text, trimmed.
	Title string `json:"title"`

	// MetaDescription is the content of <meta name="description">, trimmed.
	MetaDescription string `json:"meta_description,omitempty"`

	// MetaRobots is the content of <meta name="robots">, lower-cased.
	// Empty when the page carries no such tag.
	MetaRobots string `json:"meta_robots,omitempty"`

	// H1Texts holds the trimmed text of every <h1>, in document order.
	// Empty strings are preserved so checks can flag empty headings.
	H1Texts []string `json:"h1_texts,omitempty"`

	// Counts holds the per-tier element counts.
	Counts ElementCounts `json:"counts"`

	// SchemaTypes enumerates every @type found in JSON-LD blocks, deduplicated.
	SchemaTypes []string `json:"schema_types,omitempty"`

	// HighValueSchemas is the subset of SchemaTypes in the high-value set
	// (FAQPage, Article, HowTo, Product, ...).
	HighValueSchemas []string `json:"high_value_schemas,omitempty"`

	// Text is the extracted plain text with nav/footer/aside/header and
	// script/style content removed, whitespace-collapsed.
	Text string `json:"-"`

	// WordCount is the number of whitespace-separated tokens in Text.
	WordCount int `json:"word_count"`

	// Links holds absolute, fragment-stripped, deduplicated link targets
	// found on the page, in discovery order. Cross-origin links included;
	// the crawler applies its own origin filter.
	Links []string `json:"-"`
}

// RobotsPolicy is the outcome of evaluating a site's robots.txt for one URL.
// Wildcard and AI-agent verdicts are reported distinctly: a site may allow
// general crawling while blocking AI-specific agents.
type RobotsPolicy struct {
	// Found is false when robots.txt was missing or unreachable, which is
	// treated as allow-by-default.
	Found bool `json:"found"`

	// WildcardAllowed reports whether the `*` agent may fetch the URL.
	WildcardAllowed bool `json:"wildcard_allowed"`

	// AIAllowed reports whether every known AI-crawler agent may fetch the URL.
	AIAllowed bool `json:"ai_allowed"`

	// BlockedAgents lists the AI agent tokens disallowed for the URL.
	BlockedAgents []string `json:"blocked_agents,omitempty"`
}

// Verdict is one check's result for one page.
type Verdict struct {
	// Check is the registered check identifier, e.g. "h1" or "alt_text".
	Check string `json:"check"`

	Passed  bool   `json:"passed"`
	Message string `json:"message"`
}

// Severity buckets for failed checks.
type Severity string

const (
	SeverityCritical  Severity = "critical"
	SeverityImportant Severity = "important"
	SeveritySuggested Severity = "suggested"
)

// Accessibility tier labels assigned to whole pages from their score.
type Tier string

const (
	TierHigh   Tier = "high"
	TierMedium Tier = "medium"
	TierLow    Tier = "low"
)

// SubScores are the per-dimension 0-100 scores computed for one page.
type SubScores struct {
	// Readability is the banded Flesch Reading Ease score.
	Readability int `json:"readability"`

	// StructuredDataRichness is the weighted high-value schema score.
	StructuredDataRichness int `json:"structured_data_richness"`

	// TierComposition reflects the ratio of easily-accessible elements.
	TierComposition int `json:"tier_composition"`
}

// PageRecord is one page's full analysis result. Immutable after scoring.
type PageRecord struct {
	URL        string `json:"url"`
	Depth      int    `json:"depth"`
	StatusCode int    `json:"status_code"`

	Content  *PageContent `json:"content"`
	Robots   RobotsPolicy `json:"robots"`
	Verdicts []Verdict    `json:"verdicts"`

	SubScores SubScores `json:"sub_scores"`
	Score     int       `json:"score"`
	Tier      Tier      `json:"tier"`
}

// FailureKind classifies a recorded per-page failure.
type FailureKind string

const (
	FailureFetch FailureKind = "fetch"
	FailureParse FailureKind = "parse"
	FailureScore FailureKind = "score"
)

// PageFailure records a page that could not be analyzed. Failures never abort
// a crawl; they are carried on the report instead.
type PageFailure struct {
	URL     string      `json:"url"`
	Depth   int         `json:"depth"`
	Kind    FailureKind `json:"kind"`
	Message string      `json:"message"`
}
