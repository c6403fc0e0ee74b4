package analyzer_test

import (
	"errors"
	"strings"
	"testing"

	"github.com/tmarchev/beacon/internal/analyzer"
	"github.com/tmarchev/beacon/internal/testutil"
)

const samplePage = `<!DOCTYPE html>
<html>
<head>
<title> Sample Page </title>
<meta name="description" content=" A fine description. ">
<meta name="robots" content="NOINDEX, nofollow">
<script type="application/ld+json">
{"@context":"https://schema.org","@type":"Article","headline":"Sample"}
</script>
</head>
<body>
<nav><a href="/nav-link">Navigation text</a></nav>
<h1>Main Heading</h1>
<h2>Sub</h2>
<p>First paragraph with actual body text.</p>
<p>Second paragraph.</p>
<ul><li>one</li><li>two</li></ul>
<img src="a.jpg" alt="described">
<img src="b.jpg">
<img src="c.jpg" alt="   ">
<table><tr><td>x</td></tr></table>
<form><input name="q"></form>
<iframe src="embed.html"></iframe>
<canvas></canvas>
<svg></svg>
<video src="v.mp4"></video>
<div id="root"></div>
<button onclick="go()">Go</button>
<a href="/other">Other</a>
<a href="/other#frag">Other again</a>
<a href="mailto:x@example.com">Mail</a>
<a href="javascript:void(0)">JS</a>
<a href="https://elsewhere.example/page">Elsewhere</a>
<footer>Footer text</footer>
</body>
</html>`

func TestAnalyzeCounts(t *testing.T) {
	t.Parallel()

	a := analyzer.New(&testutil.DummyLogger{})
	content, err := a.Analyze([]byte(samplePage), "https://example.com/sample")
	if err != nil {
		t.Fatal(err)
	}

	c := content.Counts
	if c.Headings != 2 {
		t.Errorf("Headings = %d, want 2", c.Headings)
	}
	if c.Paragraphs != 2 {
		t.Errorf("Paragraphs = %d, want 2", c.Paragraphs)
	}
	if c.Lists != 1 {
		t.Errorf("Lists = %d, want 1", c.Lists)
	}
	if c.ImagesWithAlt != 1 {
		t.Errorf("ImagesWithAlt = %d, want 1", c.ImagesWithAlt)
	}
	// Whitespace-only alt counts as missing.
	if c.ImagesWithoutAlt != 2 {
		t.Errorf("ImagesWithoutAlt = %d, want 2", c.ImagesWithoutAlt)
	}
	if c.StructuredBlocks != 1 {
		t.Errorf("StructuredBlocks = %d, want 1", c.StructuredBlocks)
	}
	if c.Tables != 1 || c.Forms != 1 || c.IFrames != 1 {
		t.Errorf("challenging counts = %d/%d/%d, want 1/1/1", c.Tables, c.Forms, c.IFrames)
	}
	if c.Canvas != 1 || c.SVG != 1 || c.Media != 1 {
		t.Errorf("inaccessible counts = %d/%d/%d, want 1/1/1", c.Canvas, c.SVG, c.Media)
	}
	// Empty #root mount point plus the onclick button.
	if c.ScriptDependent != 2 {
		t.Errorf("ScriptDependent = %d, want 2", c.ScriptDependent)
	}
}

func TestAnalyzeMeta(t *testing.T) {
	t.Parallel()

	a := analyzer.New(&testutil.DummyLogger{})
	content, err := a.Analyze([]byte(samplePage), "https://example.com/sample")
	if err != nil {
		t.Fatal(err)
	}

	if content.Title != "Sample Page" {
		t.Errorf("Title = %q", content.Title)
	}
	if content.MetaDescription != "A fine description." {
		t.Errorf("MetaDescription = %q", content.MetaDescription)
	}
	if content.MetaRobots != "noindex, nofollow" {
		t.Errorf("MetaRobots = %q, want lower-cased", content.MetaRobots)
	}
	if len(content.H1Texts) != 1 || content.H1Texts[0] != "Main Heading" {
		t.Errorf("H1Texts = %v", content.H1Texts)
	}
}

func TestAnalyzeStructuredData(t *testing.T) {
	t.Parallel()

	a := analyzer.New(&testutil.DummyLogger{})
	content, err := a.Analyze([]byte(samplePage), "https://example.com/sample")
	if err != nil {
		t.Fatal(err)
	}

	if len(content.SchemaTypes) != 1 || content.SchemaTypes[0] != "Article" {
		t.Errorf("SchemaTypes = %v, want [Article]", content.SchemaTypes)
	}
	if len(content.HighValueSchemas) != 1 || content.HighValueSchemas[0] != "Article" {
		t.Errorf("HighValueSchemas = %v, want [Article]", content.HighValueSchemas)
	}
}

func TestAnalyzeGraphAndArraySchemas(t *testing.T) {
	t.Parallel()

	page := `<html><head>
<script type="application/ld+json">
{"@graph":[{"@type":"Organization"},{"@type":["FAQPage","WebPage"]}]}
</script>
</head><body><p>x</p></body></html>`

	a := analyzer.New(&testutil.DummyLogger{})
	content, err := a.Analyze([]byte(page), "https://example.com/")
	if err != nil {
		t.Fatal(err)
	}

	got := map[string]bool{}
	for _, s := range content.SchemaTypes {
		got[s] = true
	}
	for _, want := range []string{"Organization", "FAQPage", "WebPage"} {
		if !got[want] {
			t.Errorf("SchemaTypes missing %q: %v", want, content.SchemaTypes)
		}
	}

	hv := map[string]bool{}
	for _, s := range content.HighValueSchemas {
		hv[s] = true
	}
	if !hv["FAQPage"] {
		t.Errorf("HighValueSchemas missing FAQPage: %v", content.HighValueSchemas)
	}
	if hv["WebPage"] {
		t.Errorf("WebPage is not high-value: %v", content.HighValueSchemas)
	}
}

func TestAnalyzeLinks(t *testing.T) {
	t.Parallel()

	a := analyzer.New(&testutil.DummyLogger{})
	content, err := a.Analyze([]byte(samplePage), "https://example.com/sample")
	if err != nil {
		t.Fatal(err)
	}

	want := []string{
		"https://example.com/nav-link",
		"https://example.com/other",
		"https://elsewhere.example/page",
	}
	if len(content.Links) != len(want) {
		t.Fatalf("Links = %v, want %v", content.Links, want)
	}
	for i, w := range want {
		if content.Links[i] != w {
			t.Errorf("Links[%d] = %q, want %q", i, content.Links[i], w)
		}
	}
}

func TestAnalyzeTextExcludesChrome(t *testing.T) {
	t.Parallel()

	a := analyzer.New(&testutil.DummyLogger{})
	content, err := a.Analyze([]byte(samplePage), "https://example.com/sample")
	if err != nil {
		t.Fatal(err)
	}

	if strings.Contains(content.Text, "Navigation text") {
		t.Error("nav content leaked into extracted text")
	}
	if strings.Contains(content.Text, "Footer text") {
		t.Error("footer content leaked into extracted text")
	}
	if !strings.Contains(content.Text, "First paragraph with actual body text.") {
		t.Errorf("body text missing from extracted text: %q", content.Text)
	}
	if content.WordCount != len(strings.Fields(content.Text)) {
		t.Errorf("WordCount = %d, inconsistent with Text", content.WordCount)
	}
}

func TestAnalyzeEmptyDocument(t *testing.T) {
	t.Parallel()

	a := analyzer.New(&testutil.DummyLogger{})
	_, err := a.Analyze([]byte("   "), "https://example.com/empty")
	if err == nil {
		t.Fatal("expected error for empty document")
	}
	var perr *analyzer.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("error type = %T, want *ParseError", err)
	}
	if perr.URL != "https://example.com/empty" {
		t.Errorf("ParseError.URL = %q", perr.URL)
	}
}
