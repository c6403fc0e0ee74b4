// Package report folds per-page records into the site-level report and
// renders it for download.
package report

import (
	"math"
	"time"

	"github.com/google/uuid"

	"github.com/tmarchev/beacon/internal/logging"
	"github.com/tmarchev/beacon/internal/model"
	"github.com/tmarchev/beacon/internal/scoring"
)

// Site-score display thresholds. These color the whole-site headline and are
// deliberately distinct from the per-page tier thresholds in scoring.
const (
	SiteScoreGreen = 80
	SiteScoreAmber = 60
	SiteScoreRed   = 40
)

// RatingOf maps a site score to its display label.
func RatingOf(score int) string {
	switch {
	case score >= SiteScoreGreen:
		return "excellent"
	case score >= SiteScoreAmber:
		return "good"
	case score >= SiteScoreRed:
		return "fair"
	default:
		return "poor"
	}
}

// Aggregator builds the immutable SiteReport for one finished crawl.
type Aggregator struct {
	logger logging.Logger
}

func NewAggregator(logger logging.Logger) *Aggregator {
	return &Aggregator{
		logger: logger.With(logging.Field{Key: "component", Value: "report"}),
	}
}

// Build computes every aggregate from the page set. The site score is the
// rounded mean of page scores; an empty page set scores 0 rather than erroring
// so a fully failed crawl still yields a well-formed report.
func (a *Aggregator) Build(seedURL string, depth int, pages []model.PageRecord, failures []model.PageFailure) *model.SiteReport {
	r := &model.SiteReport{
		ID:          uuid.NewString(),
		SeedURL:     seedURL,
		Depth:       depth,
		GeneratedAt: time.Now().UTC(),
		Pages:       pages,
		Failures:    failures,
	}

	if len(pages) == 0 {
		a.logger.Warn("no pages scored, report is empty",
			logging.Field{Key: "seed", Value: seedURL})
		return r
	}

	scoreSum := 0
	readabilitySum := 0
	richnessSum := 0
	schemaSet := map[string]bool{}

	for _, p := range pages {
		scoreSum += p.Score
		readabilitySum += p.SubScores.Readability
		richnessSum += p.SubScores.StructuredDataRichness

		switch p.Tier {
		case model.TierHigh:
			r.Accessibility.High++
		case model.TierMedium:
			r.Accessibility.Medium++
		default:
			r.Accessibility.Low++
		}

		for _, v := range p.Verdicts {
			if v.Passed {
				continue
			}
			switch scoring.SeverityOf(v.Check) {
			case model.SeverityCritical:
				r.Issues.Critical++
			case model.SeverityImportant:
				r.Issues.Important++
			default:
				r.Issues.Suggested++
			}
		}

		for _, t := range p.Content.SchemaTypes {
			schemaSet[t] = true
		}
	}

	n := len(pages)
	r.SiteScore = int(math.Round(float64(scoreSum) / float64(n)))
	r.ContentAnalysis = model.ContentAnalysis{
		AvgReadabilityScore:       int(math.Round(float64(readabilitySum) / float64(n))),
		AvgStructuredDataRichness: int(math.Round(float64(richnessSum) / float64(n))),
		TotalStructuredSchemas:    len(schemaSet),
	}

	a.logger.Info("report built",
		logging.Field{Key: "report_id", Value: r.ID},
		logging.Field{Key: "pages", Value: n},
		logging.Field{Key: "site_score", Value: r.SiteScore},
		logging.Field{Key: "issues", Value: r.Issues.Total()})

	return r
}
