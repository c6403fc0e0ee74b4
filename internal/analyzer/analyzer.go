// Package analyzer parses one page's static markup into the structured
// content model that drives checks and scoring. Classification into the three
// accessibility tiers happens here and nowhere else.
package analyzer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tmarchev/beacon/internal/logging"
	"github.com/tmarchev/beacon/internal/model"
)

// ParseError marks a page whose markup could not be analyzed. Like a fetch
// failure it is page-level, never crawl-level.
type ParseError struct {
	URL string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.URL, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Analyzer turns raw HTML into a model.PageContent.
type Analyzer struct {
	logger logging.Logger
}

func New(logger logging.Logger) *Analyzer {
	return &Analyzer{logger: logger.With(logging.Field{Key: "component", Value: "analyzer"})}
}

// Analyze parses html fetched from pageURL. Empty input yields a *ParseError.
func (a *Analyzer) Analyze(html []byte, pageURL string) (*model.PageContent, error) {
	if len(bytes.TrimSpace(html)) == 0 {
		return nil, &ParseError{URL: pageURL, Err: fmt.Errorf("empty document")}
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(html))
	if err != nil {
		return nil, &ParseError{URL: pageURL, Err: err}
	}

	content := &model.PageContent{
		Title: strings.TrimSpace(doc.Find("title").First().Text()),
	}

	a.extractMeta(doc, content)
	a.extractCounts(doc, content)
	a.extractStructuredData(doc, content, pageURL)
	content.Links = extractLinks(doc, pageURL)

	// Text extraction mutates the document, so it runs last.
	content.Text = extractText(doc)
	content.WordCount = len(strings.Fields(content.Text))

	return content, nil
}

func (a *Analyzer) extractMeta(doc *goquery.Document, content *model.PageContent) {
	doc.Find("meta[name]").Each(func(_ int, sel *goquery.Selection) {
		name, _ := sel.Attr("name")
		val, _ := sel.Attr("content")
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "description":
			if content.MetaDescription == "" {
				content.MetaDescription = strings.TrimSpace(val)
			}
		case "robots":
			if content.MetaRobots == "" {
				content.MetaRobots = strings.ToLower(strings.TrimSpace(val))
			}
		}
	})

	doc.Find("h1").Each(func(_ int, sel *goquery.Selection) {
		content.H1Texts = append(content.H1Texts, strings.TrimSpace(sel.Text()))
	})
}

func (a *Analyzer) extractCounts(doc *goquery.Document, content *model.PageContent) {
	c := &content.Counts

	c.Headings = doc.Find("h1, h2, h3, h4, h5, h6").Length()
	c.Paragraphs = doc.Find("p").Length()
	c.Lists = doc.Find("ul, ol").Length()
	c.Tables = doc.Find("table").Length()
	c.Forms = doc.Find("form").Length()
	c.IFrames = doc.Find("iframe").Length()
	c.Canvas = doc.Find("canvas").Length()
	c.SVG = doc.Find("svg").Length()
	c.Media = doc.Find("audio, video").Length()
	c.StructuredBlocks = doc.Find(`script[type="application/ld+json"]`).Length()

	doc.Find("img").Each(func(_ int, sel *goquery.Selection) {
		if alt, ok := sel.Attr("alt"); ok && strings.TrimSpace(alt) != "" {
			c.ImagesWithAlt++
		} else {
			c.ImagesWithoutAlt++
		}
	})

	c.ScriptDependent = countScriptDependent(doc)
}

// countScriptDependent finds content that only exists after script execution,
// detected structurally: inline event handlers plus empty containers carrying
// framework mount markers. Scripts are never executed.
func countScriptDependent(doc *goquery.Document) int {
	n := doc.Find("[onclick], [onload]").Length()

	doc.Find("[data-reactroot], [ng-app], [v-app], #root, #app, #__next").Each(func(_ int, sel *goquery.Selection) {
		if strings.TrimSpace(sel.Text()) == "" {
			n++
		}
	})

	return n
}
