package scoring_test

import (
	"strings"
	"testing"

	"github.com/tmarchev/beacon/internal/model"
	"github.com/tmarchev/beacon/internal/scoring"
	"github.com/tmarchev/beacon/internal/testutil"
)

func TestTierComposition(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name   string
		counts model.ElementCounts
		want   int
	}{
		{"empty page", model.ElementCounts{}, 0},
		{
			// 3*2 + 2*4 + 2*1 + 2*1 + 5*1 = 23, no penalties, *2 = 46
			"modest structure",
			model.ElementCounts{Headings: 2, Paragraphs: 4, Lists: 1, ImagesWithAlt: 1, StructuredBlocks: 1},
			46,
		},
		{
			// accessible caps at 50 -> 100
			"accessible band caps",
			model.ElementCounts{Headings: 10, Paragraphs: 20, StructuredBlocks: 5},
			100,
		},
		{
			// 3*2+2*4=14; challenging 2*1+3*2=8; 14-8=6 -> 12
			"penalties subtract",
			model.ElementCounts{Headings: 2, Paragraphs: 4, Tables: 1, ImagesWithoutAlt: 2},
			12,
		},
		{
			// heavy penalties floor at zero
			"floors at zero",
			model.ElementCounts{Paragraphs: 1, Canvas: 3, ScriptDependent: 5, ImagesWithoutAlt: 4},
			0,
		},
		{
			// SVGs are classified inaccessible but not penalized
			"svg carries no penalty",
			model.ElementCounts{Headings: 10, Paragraphs: 10, SVG: 10},
			100,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := scoring.TierComposition(tc.counts); got != tc.want {
				t.Errorf("TierComposition = %d, want %d", got, tc.want)
			}
		})
	}
}

func TestReadabilityShortText(t *testing.T) {
	t.Parallel()

	if got := scoring.Readability("Too short to score."); got != 0 {
		t.Errorf("short text score = %d, want 0", got)
	}
	if got := scoring.Readability(""); got != 0 {
		t.Errorf("empty text score = %d, want 0", got)
	}
}

func TestReadabilityBands(t *testing.T) {
	t.Parallel()

	// Short common words in short sentences read very easily.
	easy := strings.Repeat("The cat sat on the mat. The dog ran to the park. ", 10)
	easyScore := scoring.Readability(easy)
	if easyScore < 90 {
		t.Errorf("easy text score = %d, want >= 90", easyScore)
	}

	// Long sentences stuffed with polysyllabic words read poorly.
	hard := strings.Repeat("Institutional recalibration of multidimensional infrastructural interdependencies necessitates comprehensive organizational transformation initiatives. ", 10)
	hardScore := scoring.Readability(hard)
	if hardScore > 50 {
		t.Errorf("hard text score = %d, want <= 50", hardScore)
	}

	if easyScore <= hardScore {
		t.Errorf("easy (%d) should outscore hard (%d)", easyScore, hardScore)
	}
}

func TestRichness(t *testing.T) {
	t.Parallel()

	if got := scoring.Richness(nil); got != 0 {
		t.Errorf("no schemas = %d, want 0", got)
	}
	// Article weighs 10 -> 20
	if got := scoring.Richness([]string{"Article"}); got != 20 {
		t.Errorf("Article = %d, want 20", got)
	}
	// 10+10+9+8+7+6 = 50 -> capped at 100
	got := scoring.Richness([]string{"Article", "FAQPage", "HowTo", "Product", "Event", "Person"})
	if got != 100 {
		t.Errorf("stacked schemas = %d, want 100", got)
	}
}

func TestScorePageWeighting(t *testing.T) {
	t.Parallel()

	s := scoring.NewScorer(scoring.DefaultWeights, &testutil.DummyLogger{})

	content := &model.PageContent{
		Counts: model.ElementCounts{Headings: 2, Paragraphs: 4, Lists: 1, ImagesWithAlt: 1, StructuredBlocks: 1},
	}
	verdicts := []model.Verdict{
		{Check: "a", Passed: true},
		{Check: "b", Passed: true},
		{Check: "c", Passed: false},
		{Check: "d", Passed: false},
	}

	sub, score, tier := s.ScorePage(content, verdicts)

	if sub.TierComposition != 46 {
		t.Errorf("TierComposition = %d, want 46", sub.TierComposition)
	}
	if sub.Readability != 0 {
		t.Errorf("Readability = %d, want 0 for empty text", sub.Readability)
	}
	if sub.StructuredDataRichness != 0 {
		t.Errorf("Richness = %d, want 0 without high-value schemas", sub.StructuredDataRichness)
	}

	// 0.35*50 + 0.25*46 + 0.25*0 + 0.15*0 = 29
	if score != 29 {
		t.Errorf("score = %d, want 29", score)
	}
	if tier != model.TierLow {
		t.Errorf("tier = %s, want low", tier)
	}
}

func TestScorePageDeterministic(t *testing.T) {
	t.Parallel()

	s := scoring.NewScorer(scoring.DefaultWeights, &testutil.DummyLogger{})
	content := &model.PageContent{
		Text:             strings.Repeat("Plain words in short sentences make reading easy for everyone. ", 20),
		HighValueSchemas: []string{"Article"},
		Counts:           model.ElementCounts{Headings: 3, Paragraphs: 6, Lists: 2, StructuredBlocks: 1},
	}
	verdicts := []model.Verdict{{Check: "a", Passed: true}}

	_, first, _ := s.ScorePage(content, verdicts)
	for i := 0; i < 5; i++ {
		if _, again, _ := s.ScorePage(content, verdicts); again != first {
			t.Fatalf("score changed between runs: %d vs %d", first, again)
		}
	}
}

func TestTierOf(t *testing.T) {
	t.Parallel()

	cases := []struct {
		score int
		want  model.Tier
	}{
		{100, model.TierHigh},
		{70, model.TierHigh},
		{69, model.TierMedium},
		{40, model.TierMedium},
		{39, model.TierLow},
		{0, model.TierLow},
	}
	for _, tc := range cases {
		if got := scoring.TierOf(tc.score); got != tc.want {
			t.Errorf("TierOf(%d) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestSeverityOf(t *testing.T) {
	t.Parallel()

	cases := []struct {
		check string
		want  model.Severity
	}{
		{"robots", model.SeverityCritical},
		{"h1", model.SeverityCritical},
		{"jsonld", model.SeverityCritical},
		{"alt_text", model.SeverityImportant},
		{"meta_robots", model.SeverityImportant},
		{"meta_description", model.SeverityImportant},
		{"structured_data_richness", model.SeveritySuggested},
		{"llm_content_analysis", model.SeveritySuggested},
		{"some_future_check", model.SeveritySuggested},
	}
	for _, tc := range cases {
		if got := scoring.SeverityOf(tc.check); got != tc.want {
			t.Errorf("SeverityOf(%q) = %s, want %s", tc.check, got, tc.want)
		}
	}
}
