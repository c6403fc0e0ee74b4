package analyzer

import (
	"encoding/json"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/tmarchev/beacon/internal/logging"
	"github.com/tmarchev/beacon/internal/model"
	"github.com/tmarchev/beacon/internal/urlutil"
)

// extractStructuredData parses every JSON-LD block and enumerates the @type
// values found, classifying each into the high-value set. Blocks that fail to
// parse are skipped; a broken block is not worth failing the page over.
func (a *Analyzer) extractStructuredData(doc *goquery.Document, content *model.PageContent, pageURL string) {
	seen := map[string]bool{}

	doc.Find(`script[type="application/ld+json"]`).Each(func(_ int, sel *goquery.Selection) {
		var payload any
		if err := json.Unmarshal([]byte(sel.Text()), &payload); err != nil {
			a.logger.Debug("skipping unparseable JSON-LD block",
				logging.Field{Key: "url", Value: pageURL},
				logging.Field{Key: "error", Value: err.Error()})
			return
		}
		for _, t := range schemaTypesOf(payload) {
			if seen[t] {
				continue
			}
			seen[t] = true
			content.SchemaTypes = append(content.SchemaTypes, t)
			if model.IsHighValueSchema(t) {
				content.HighValueSchemas = append(content.HighValueSchemas, t)
			}
		}
	})
}

// schemaTypesOf walks a decoded JSON-LD payload and collects @type values.
// Handles single objects, arrays, @graph containers and array-valued @type.
func schemaTypesOf(payload any) []string {
	var types []string

	switch v := payload.(type) {
	case []any:
		for _, item := range v {
			types = append(types, schemaTypesOf(item)...)
		}
	case map[string]any:
		switch t := v["@type"].(type) {
		case string:
			types = append(types, t)
		case []any:
			for _, e := range t {
				if s, ok := e.(string); ok {
					types = append(types, s)
				}
			}
		}
		if graph, ok := v["@graph"]; ok {
			types = append(types, schemaTypesOf(graph)...)
		}
	}

	return types
}

// extractLinks collects absolute, fragment-stripped link targets in document
// order, deduplicated. The crawler applies the same-origin filter.
func extractLinks(doc *goquery.Document, baseURL string) []string {
	var links []string
	seen := map[string]bool{}

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		href = strings.TrimSpace(href)
		if href == "" || strings.HasPrefix(href, "javascript:") || strings.HasPrefix(href, "mailto:") {
			return
		}

		resolved, err := urlutil.Resolve(baseURL, href)
		if err != nil {
			return
		}
		if !seen[resolved] {
			seen[resolved] = true
			links = append(links, resolved)
		}
	})

	return links
}

var whitespaceRe = regexp.MustCompile(`\s+`)

// extractText strips chrome (nav/footer/aside/header) and non-content nodes
// (script/style/noscript), then returns the remaining text with whitespace
// collapsed. Mutates the document.
func extractText(doc *goquery.Document) string {
	doc.Find("script, style, noscript").Remove()
	doc.Find("nav, footer, aside, header").Remove()

	text := doc.Find("body").Text()
	if text == "" {
		text = doc.Text()
	}
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
}
