// Package scoring computes the per-page sub-scores and the overall page
// score. Every weight and threshold is a documented constant or part of the
// immutable Weights struct, so a page always scores identically between the
// preview and the stored report.
package scoring

import (
	"math"

	"github.com/tmarchev/beacon/internal/logging"
	"github.com/tmarchev/beacon/internal/model"
)

// Weights is the fixed linear combination producing the page score. Weights
// must sum to 1. They are set once at construction, never tuned per run.
type Weights struct {
	// ChecksPassed weighs the fraction of passed checks, scaled to 0-100.
	ChecksPassed float64

	// TierComposition weighs the accessibility-tier composition sub-score.
	TierComposition float64

	// Readability weighs the banded Flesch Reading Ease sub-score.
	Readability float64

	// Richness weighs the structured-data richness sub-score.
	Richness float64
}

// DefaultWeights favors the check verdicts, then splits the remainder across
// the content sub-scores.
var DefaultWeights = Weights{
	ChecksPassed:    0.35,
	TierComposition: 0.25,
	Readability:     0.25,
	Richness:        0.15,
}

const (
	// CompositionPassThreshold is the tier-composition score the
	// llm_content_analysis check must reach to pass.
	CompositionPassThreshold = 40

	// Page tier thresholds on the page score. Distinct from the site-score
	// display thresholds in the report package; do not unify.
	TierHighThreshold   = 70
	TierMediumThreshold = 40
)

// Scorer applies a Weights configuration to analyzed pages.
type Scorer struct {
	weights Weights
	logger  logging.Logger
}

func NewScorer(w Weights, logger logging.Logger) *Scorer {
	return &Scorer{
		weights: w,
		logger:  logger.With(logging.Field{Key: "component", Value: "scorer"}),
	}
}

// ScorePage computes the sub-scores and overall score for one analyzed page.
// Pure given its inputs: no I/O, no cross-page state.
func (s *Scorer) ScorePage(content *model.PageContent, verdicts []model.Verdict) (model.SubScores, int, model.Tier) {
	sub := model.SubScores{
		Readability:            Readability(content.Text),
		StructuredDataRichness: Richness(content.HighValueSchemas),
		TierComposition:        TierComposition(content.Counts),
	}

	passed := 0
	for _, v := range verdicts {
		if v.Passed {
			passed++
		}
	}
	checkFraction := 0.0
	if len(verdicts) > 0 {
		checkFraction = float64(passed) / float64(len(verdicts))
	}

	raw := s.weights.ChecksPassed*checkFraction*100 +
		s.weights.TierComposition*float64(sub.TierComposition) +
		s.weights.Readability*float64(sub.Readability) +
		s.weights.Richness*float64(sub.StructuredDataRichness)

	score := int(math.Round(raw))
	if score > 100 {
		score = 100
	}
	if score < 0 {
		score = 0
	}

	return sub, score, TierOf(score)
}

// TierOf maps a page score to its accessibility tier label.
func TierOf(score int) model.Tier {
	switch {
	case score >= TierHighThreshold:
		return model.TierHigh
	case score >= TierMediumThreshold:
		return model.TierMedium
	default:
		return model.TierLow
	}
}

// TierComposition scores how much of the page's classified content sits in
// the easily-accessible tier. Accessible elements earn points, challenging
// and inaccessible ones cost them, each band capped so one element class
// cannot dominate. Result is 0-100.
func TierComposition(c model.ElementCounts) int {
	accessible := capInt(3*c.Headings+2*c.Paragraphs+2*c.Lists+2*c.ImagesWithAlt+5*c.StructuredBlocks, 50)
	challenging := capInt(2*c.Tables+c.Forms+c.IFrames+3*c.ImagesWithoutAlt, 20)
	// SVGs count toward the inaccessible tier but carry no penalty weight.
	inaccessible := capInt(5*c.Canvas+3*c.Media+2*c.ScriptDependent, 30)

	raw := accessible - challenging - inaccessible
	if raw < 0 {
		raw = 0
	}
	// raw is 0-50; scale to the common 0-100 range.
	return raw * 2
}

// Richness scores the high-value schema types present, weighted by type and
// capped at 100.
func Richness(highValue []string) int {
	total := 0
	for _, t := range highValue {
		total += model.SchemaTypeWeights[t]
	}
	return capInt(total*2, 100)
}

// SeverityOf maps a failed check to its severity bucket. The mapping is
// static; it is never inferred from page content.
func SeverityOf(check string) model.Severity {
	switch check {
	case "robots", "h1", "jsonld":
		return model.SeverityCritical
	case "alt_text", "meta_robots", "meta_description":
		return model.SeverityImportant
	default:
		// structured_data_richness, llm_content_analysis and any
		// later-registered check.
		return model.SeveritySuggested
	}
}

func capInt(v, max int) int {
	if v > max {
		return max
	}
	return v
}
