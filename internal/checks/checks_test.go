package checks_test

import (
	"strings"
	"testing"

	"github.com/tmarchev/beacon/internal/checks"
	"github.com/tmarchev/beacon/internal/model"
)

func runOne(t *testing.T, name string, in checks.Input) model.Verdict {
	t.Helper()
	for _, v := range checks.RunAll(in) {
		if v.Check == name {
			return v
		}
	}
	t.Fatalf("check %q not registered", name)
	return model.Verdict{}
}

func allowAllRobots() model.RobotsPolicy {
	return model.RobotsPolicy{Found: true, WildcardAllowed: true, AIAllowed: true}
}

func contentWith(counts model.ElementCounts) *model.PageContent {
	return &model.PageContent{Counts: counts}
}

func TestRunAllOrderAndNames(t *testing.T) {
	t.Parallel()

	verdicts := checks.RunAll(checks.Input{
		Content: contentWith(model.ElementCounts{}),
		Robots:  allowAllRobots(),
	})

	want := []string{
		checks.CheckRobots,
		checks.CheckMetaRobots,
		checks.CheckH1,
		checks.CheckMetaDescription,
		checks.CheckAltText,
		checks.CheckJSONLD,
		checks.CheckRichness,
		checks.CheckContentAnalysis,
	}
	if len(verdicts) != len(want) {
		t.Fatalf("got %d verdicts, want %d", len(verdicts), len(want))
	}
	for i, w := range want {
		if verdicts[i].Check != w {
			t.Errorf("verdict[%d] = %q, want %q", i, verdicts[i].Check, w)
		}
	}
}

func TestCheckRobots(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		robots  model.RobotsPolicy
		pass    bool
		message string
	}{
		{"missing robots passes", model.RobotsPolicy{Found: false, WildcardAllowed: true, AIAllowed: true}, true, "no robots.txt"},
		{"allowed passes", allowAllRobots(), true, "allows crawling"},
		{
			"ai blocked fails",
			model.RobotsPolicy{Found: true, WildcardAllowed: true, AIAllowed: false, BlockedAgents: []string{"GPTBot", "CCBot"}},
			false, "GPTBot, CCBot",
		},
		{
			"wildcard blocked but ai allowed passes",
			model.RobotsPolicy{Found: true, WildcardAllowed: false, AIAllowed: true},
			true, "wildcard",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := runOne(t, checks.CheckRobots, checks.Input{
				Content: contentWith(model.ElementCounts{}),
				Robots:  tc.robots,
			})
			if v.Passed != tc.pass {
				t.Errorf("Passed = %v, want %v (%s)", v.Passed, tc.pass, v.Message)
			}
			if !strings.Contains(v.Message, tc.message) {
				t.Errorf("Message = %q, want substring %q", v.Message, tc.message)
			}
		})
	}
}

func TestCheckMetaRobots(t *testing.T) {
	t.Parallel()

	cases := []struct {
		meta string
		pass bool
	}{
		{"", true},
		{"index, follow", true},
		{"noindex", false},
		{"noindex, nofollow", false},
		{"none", false},
	}

	for _, tc := range cases {
		c := contentWith(model.ElementCounts{})
		c.MetaRobots = tc.meta
		v := runOne(t, checks.CheckMetaRobots, checks.Input{Content: c, Robots: allowAllRobots()})
		if v.Passed != tc.pass {
			t.Errorf("meta robots %q: Passed = %v, want %v", tc.meta, v.Passed, tc.pass)
		}
	}
}

func TestCheckH1(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		h1s     []string
		pass    bool
		message string
	}{
		{"no h1", nil, false, "no H1 tag found"},
		{"single h1", []string{"Welcome"}, true, `"Welcome"`},
		{"multiple h1s", []string{"One", "Two", "Three"}, false, "multiple H1 tags found (3)"},
		{"empty h1", []string{""}, false, "H1 tag is empty"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := contentWith(model.ElementCounts{})
			c.H1Texts = tc.h1s
			v := runOne(t, checks.CheckH1, checks.Input{Content: c, Robots: allowAllRobots()})
			if v.Passed != tc.pass {
				t.Errorf("Passed = %v, want %v (%s)", v.Passed, tc.pass, v.Message)
			}
			if !strings.Contains(v.Message, tc.message) {
				t.Errorf("Message = %q, want substring %q", v.Message, tc.message)
			}
		})
	}
}

func TestCheckMetaDescription(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		desc string
		pass bool
	}{
		{"missing", "", false},
		{"too short", "Short description.", false},
		{"in range", strings.Repeat("a", 140), true},
		{"too long", strings.Repeat("a", 200), false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := contentWith(model.ElementCounts{})
			c.MetaDescription = tc.desc
			v := runOne(t, checks.CheckMetaDescription, checks.Input{Content: c, Robots: allowAllRobots()})
			if v.Passed != tc.pass {
				t.Errorf("Passed = %v, want %v (%s)", v.Passed, tc.pass, v.Message)
			}
		})
	}
}

func TestCheckAltText(t *testing.T) {
	t.Parallel()

	// No images at all passes.
	v := runOne(t, checks.CheckAltText, checks.Input{
		Content: contentWith(model.ElementCounts{}),
		Robots:  allowAllRobots(),
	})
	if !v.Passed {
		t.Errorf("no images should pass: %s", v.Message)
	}

	// 3 of 5 described: fails, message counts the missing ones.
	v = runOne(t, checks.CheckAltText, checks.Input{
		Content: contentWith(model.ElementCounts{ImagesWithAlt: 3, ImagesWithoutAlt: 2}),
		Robots:  allowAllRobots(),
	})
	if v.Passed {
		t.Error("missing alt text should fail")
	}
	if !strings.Contains(v.Message, "2/5 images missing alt text") {
		t.Errorf("Message = %q", v.Message)
	}

	// All described passes.
	v = runOne(t, checks.CheckAltText, checks.Input{
		Content: contentWith(model.ElementCounts{ImagesWithAlt: 4}),
		Robots:  allowAllRobots(),
	})
	if !v.Passed {
		t.Errorf("fully described images should pass: %s", v.Message)
	}
}

func TestCheckJSONLD(t *testing.T) {
	t.Parallel()

	v := runOne(t, checks.CheckJSONLD, checks.Input{
		Content: contentWith(model.ElementCounts{}),
		Robots:  allowAllRobots(),
	})
	if v.Passed {
		t.Error("no JSON-LD should fail")
	}

	v = runOne(t, checks.CheckJSONLD, checks.Input{
		Content: contentWith(model.ElementCounts{StructuredBlocks: 2}),
		Robots:  allowAllRobots(),
	})
	if !v.Passed {
		t.Errorf("JSON-LD present should pass: %s", v.Message)
	}
}

func TestCheckRichness(t *testing.T) {
	t.Parallel()

	c := contentWith(model.ElementCounts{})
	c.SchemaTypes = []string{"WebPage", "BreadcrumbList"}
	v := runOne(t, checks.CheckRichness, checks.Input{Content: c, Robots: allowAllRobots()})
	if v.Passed {
		t.Error("low-value-only schemas should fail")
	}
	if !strings.Contains(v.Message, "none are high-value") {
		t.Errorf("Message = %q", v.Message)
	}

	c = contentWith(model.ElementCounts{})
	c.SchemaTypes = []string{"Article", "FAQPage"}
	c.HighValueSchemas = []string{"Article", "FAQPage"}
	v = runOne(t, checks.CheckRichness, checks.Input{Content: c, Robots: allowAllRobots()})
	if !v.Passed {
		t.Errorf("high-value schemas should pass: %s", v.Message)
	}
	if !strings.Contains(v.Message, "Article, FAQPage") {
		t.Errorf("Message = %q", v.Message)
	}
}

func TestCheckContentAnalysis(t *testing.T) {
	t.Parallel()

	// Rich structure clears the composition threshold.
	v := runOne(t, checks.CheckContentAnalysis, checks.Input{
		Content: contentWith(model.ElementCounts{Headings: 5, Paragraphs: 10, Lists: 2, StructuredBlocks: 1}),
		Robots:  allowAllRobots(),
	})
	if !v.Passed {
		t.Errorf("structured page should pass: %s", v.Message)
	}

	// A script-heavy shell does not.
	v = runOne(t, checks.CheckContentAnalysis, checks.Input{
		Content: contentWith(model.ElementCounts{Canvas: 2, ScriptDependent: 3}),
		Robots:  allowAllRobots(),
	})
	if v.Passed {
		t.Errorf("script shell should fail: %s", v.Message)
	}
}
