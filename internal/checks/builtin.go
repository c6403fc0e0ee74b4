package checks

import (
	"fmt"
	"strings"

	"github.com/tmarchev/beacon/internal/model"
	"github.com/tmarchev/beacon/internal/scoring"
)

// Canonical check identifiers.
const (
	CheckRobots          = "robots"
	CheckMetaRobots      = "meta_robots"
	CheckH1              = "h1"
	CheckMetaDescription = "meta_description"
	CheckAltText         = "alt_text"
	CheckJSONLD          = "jsonld"
	CheckRichness        = "structured_data_richness"
	CheckContentAnalysis = "llm_content_analysis"
)

func init() {
	Register(CheckRobots, checkRobots)
	Register(CheckMetaRobots, checkMetaRobots)
	Register(CheckH1, checkH1)
	Register(CheckMetaDescription, checkMetaDescription)
	Register(CheckAltText, checkAltText)
	Register(CheckJSONLD, checkJSONLD)
	Register(CheckRichness, checkRichness)
	Register(CheckContentAnalysis, checkContentAnalysis)
}

// checkRobots passes when no AI-crawler agent is disallowed. A missing
// robots.txt is an implicit allow.
func checkRobots(in Input) model.Verdict {
	r := in.Robots
	if !r.Found {
		return model.Verdict{Passed: true, Message: "no robots.txt found (allows crawling)"}
	}
	if !r.AIAllowed {
		return model.Verdict{
			Passed:  false,
			Message: fmt.Sprintf("robots.txt disallows AI crawlers: %s", strings.Join(r.BlockedAgents, ", ")),
		}
	}
	if !r.WildcardAllowed {
		return model.Verdict{Passed: true, Message: "robots.txt blocks the wildcard agent but allows AI crawlers"}
	}
	return model.Verdict{Passed: true, Message: "robots.txt allows crawling"}
}

func checkMetaRobots(in Input) model.Verdict {
	mr := in.Content.MetaRobots
	if mr == "" {
		return model.Verdict{Passed: true, Message: "no meta robots tag (allows indexing)"}
	}
	if strings.Contains(mr, "noindex") || strings.Contains(mr, "none") {
		return model.Verdict{Passed: false, Message: fmt.Sprintf("meta robots restricts indexing: %q", mr)}
	}
	return model.Verdict{Passed: true, Message: "meta robots allows indexing"}
}

func checkH1(in Input) model.Verdict {
	h1s := in.Content.H1Texts
	if len(h1s) == 0 {
		return model.Verdict{Passed: false, Message: "no H1 tag found - add a clear main heading"}
	}
	if len(h1s) > 1 {
		return model.Verdict{Passed: false, Message: fmt.Sprintf("multiple H1 tags found (%d), should have exactly one", len(h1s))}
	}
	if h1s[0] == "" {
		return model.Verdict{Passed: false, Message: "H1 tag is empty"}
	}
	return model.Verdict{Passed: true, Message: fmt.Sprintf("H1 tag found: %q", truncate(h1s[0], 50))}
}

func checkMetaDescription(in Input) model.Verdict {
	desc := in.Content.MetaDescription
	if desc == "" {
		return model.Verdict{Passed: false, Message: "no meta description found"}
	}
	switch n := len(desc); {
	case n < 120:
		return model.Verdict{Passed: false, Message: fmt.Sprintf("meta description too short (%d chars, recommend 120-160)", n)}
	case n > 160:
		return model.Verdict{Passed: false, Message: fmt.Sprintf("meta description too long (%d chars, recommend 120-160)", n)}
	default:
		return model.Verdict{Passed: true, Message: fmt.Sprintf("good meta description (%d chars)", n)}
	}
}

func checkAltText(in Input) model.Verdict {
	c := in.Content.Counts
	total := c.ImagesWithAlt + c.ImagesWithoutAlt
	if total == 0 {
		return model.Verdict{Passed: true, Message: "no images found"}
	}
	if c.ImagesWithoutAlt == 0 {
		return model.Verdict{Passed: true, Message: fmt.Sprintf("all %d images have alt text", total)}
	}
	return model.Verdict{
		Passed:  false,
		Message: fmt.Sprintf("%d/%d images missing alt text", c.ImagesWithoutAlt, total),
	}
}

func checkJSONLD(in Input) model.Verdict {
	if in.Content.Counts.StructuredBlocks == 0 {
		return model.Verdict{Passed: false, Message: "no structured data (JSON-LD) found"}
	}
	return model.Verdict{Passed: true, Message: fmt.Sprintf("%d structured data blocks found", in.Content.Counts.StructuredBlocks)}
}

func checkRichness(in Input) model.Verdict {
	hv := in.Content.HighValueSchemas
	if len(hv) == 0 {
		if n := len(in.Content.SchemaTypes); n > 0 {
			return model.Verdict{Passed: false, Message: fmt.Sprintf("found %d schema types but none are high-value", n)}
		}
		return model.Verdict{Passed: false, Message: "no high-value schema types found"}
	}
	return model.Verdict{Passed: true, Message: fmt.Sprintf("high-value schema types present: %s", strings.Join(hv, ", "))}
}

// checkContentAnalysis passes when the tier-composition sub-score clears the
// fixed threshold. The score is a pure function of element counts, so the
// check stays independent of the scorer's per-page run.
func checkContentAnalysis(in Input) model.Verdict {
	score := scoring.TierComposition(in.Content.Counts)
	if score < scoring.CompositionPassThreshold {
		return model.Verdict{Passed: false, Message: fmt.Sprintf("low content accessibility (composition score %d)", score)}
	}
	return model.Verdict{Passed: true, Message: fmt.Sprintf("content accessibility composition score %d", score)}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
