package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/tmarchev/beacon/internal/model"
	"github.com/tmarchev/beacon/internal/scoring"
)

// WriteJSON renders the full report as indented JSON.
func WriteJSON(w io.Writer, r *model.SiteReport) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}

// WriteText renders the human-readable plain-text report.
func WriteText(w io.Writer, r *model.SiteReport) error {
	var b strings.Builder

	line := strings.Repeat("=", 64)
	fmt.Fprintln(&b, line)
	fmt.Fprintln(&b, "MACHINE READABILITY AUDIT")
	fmt.Fprintln(&b, line)
	fmt.Fprintf(&b, "Site:      %s\n", r.SeedURL)
	fmt.Fprintf(&b, "Depth:     %d\n", r.Depth)
	fmt.Fprintf(&b, "Generated: %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05 UTC"))
	fmt.Fprintf(&b, "Report ID: %s\n", r.ID)
	fmt.Fprintln(&b)
	fmt.Fprintf(&b, "SITE SCORE: %d/100 (%s)\n", r.SiteScore, RatingOf(r.SiteScore))
	fmt.Fprintf(&b, "Pages audited: %d", len(r.Pages))
	if len(r.Failures) > 0 {
		fmt.Fprintf(&b, " (%d failed)", len(r.Failures))
	}
	fmt.Fprintln(&b)
	fmt.Fprintln(&b)

	fmt.Fprintf(&b, "Issues: %d critical, %d important, %d suggested\n",
		r.Issues.Critical, r.Issues.Important, r.Issues.Suggested)
	fmt.Fprintf(&b, "Accessibility tiers: %d high, %d medium, %d low\n",
		r.Accessibility.High, r.Accessibility.Medium, r.Accessibility.Low)
	fmt.Fprintf(&b, "Avg readability: %d  Avg structured-data richness: %d  Schema types: %d\n",
		r.ContentAnalysis.AvgReadabilityScore,
		r.ContentAnalysis.AvgStructuredDataRichness,
		r.ContentAnalysis.TotalStructuredSchemas)

	if len(r.DuplicateClusters) > 0 {
		fmt.Fprintln(&b)
		fmt.Fprintf(&b, "NEAR-DUPLICATE CONTENT (%d clusters)\n", len(r.DuplicateClusters))
		for i, c := range r.DuplicateClusters {
			fmt.Fprintf(&b, "  cluster %d: similarity %.3f, common text %.0f%%\n",
				i+1, c.MaxSimilarity, c.CommonTextRatio*100)
			for _, u := range c.URLs {
				fmt.Fprintf(&b, "    - %s\n", u)
			}
		}
	}

	for _, p := range r.Pages {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, strings.Repeat("-", 64))
		fmt.Fprintf(&b, "%s\n", p.URL)
		fmt.Fprintf(&b, "Score %d/100, tier %s (readability %d, composition %d, richness %d)\n",
			p.Score, p.Tier,
			p.SubScores.Readability, p.SubScores.TierComposition, p.SubScores.StructuredDataRichness)
		for _, v := range p.Verdicts {
			mark := "PASS"
			if !v.Passed {
				mark = strings.ToUpper(string(scoring.SeverityOf(v.Check)))
			}
			fmt.Fprintf(&b, "  [%-9s] %s: %s\n", mark, v.Check, v.Message)
		}
	}

	if len(r.Failures) > 0 {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, "FAILED PAGES")
		for _, f := range r.Failures {
			fmt.Fprintf(&b, "  %s (%s): %s\n", f.URL, f.Kind, f.Message)
		}
	}

	if r.Narrative != "" {
		fmt.Fprintln(&b)
		fmt.Fprintln(&b, line)
		fmt.Fprintln(&b, "SUMMARY")
		fmt.Fprintln(&b, line)
		fmt.Fprintln(&b, r.Narrative)
	}

	_, err := io.WriteString(w, b.String())
	return err
}
