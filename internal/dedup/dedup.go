// Package dedup flags near-duplicate pages by comparing their extracted
// plain text. Runs once after the crawl completes, over the whole page set.
package dedup

import (
	"math"
	"strings"

	diffmatchpatch "github.com/sergi/go-diff/diffmatchpatch"

	"github.com/tmarchev/beacon/internal/logging"
	"github.com/tmarchev/beacon/internal/model"
)

const (
	// SimilarityThreshold is the cosine similarity above which two pages
	// are considered near-duplicates.
	SimilarityThreshold = 0.80

	// minTextRunes excludes empty and near-empty pages from comparison;
	// degenerate vectors make the similarity meaningless.
	minTextRunes = 100
)

// stopwords are excluded from term vectors so shared function words do not
// inflate similarity between unrelated pages.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "but": true, "by": true, "for": true, "from": true, "has": true,
	"have": true, "he": true, "her": true, "his": true, "if": true, "in": true,
	"is": true, "it": true, "its": true, "not": true, "of": true, "on": true,
	"or": true, "our": true, "she": true, "that": true, "the": true,
	"their": true, "they": true, "this": true, "to": true, "was": true,
	"we": true, "were": true, "will": true, "with": true, "you": true,
	"your": true,
}

// Detector groups near-duplicate pages into clusters.
type Detector struct {
	threshold float64
	logger    logging.Logger
}

func New(logger logging.Logger) *Detector {
	return NewWithThreshold(SimilarityThreshold, logger)
}

func NewWithThreshold(threshold float64, logger logging.Logger) *Detector {
	return &Detector{
		threshold: threshold,
		logger:    logger.With(logging.Field{Key: "component", Value: "dedup"}),
	}
}

// Clusters computes pairwise similarity across all pages and returns the
// transitive closure of the above-threshold relation. Singleton pages produce
// no cluster. Order inside a cluster follows crawl order.
func (d *Detector) Clusters(pages []model.PageRecord) []model.DuplicateCluster {
	type candidate struct {
		url    string
		text   string
		vector map[string]float64
		norm   float64
	}

	var cands []candidate
	for _, p := range pages {
		if p.Content == nil {
			continue
		}
		if len([]rune(p.Content.Text)) < minTextRunes {
			continue
		}
		vec := termVector(p.Content.Text)
		cands = append(cands, candidate{
			url:    p.URL,
			text:   p.Content.Text,
			vector: vec,
			norm:   vectorNorm(vec),
		})
	}
	if len(cands) < 2 {
		return nil
	}

	// Union-find over candidate indices keeps clustering transitive: if
	// A~B and B~C, all three land in one cluster.
	parent := make([]int, len(cands))
	for i := range parent {
		parent[i] = i
	}
	var find func(int) int
	find = func(i int) int {
		if parent[i] != i {
			parent[i] = find(parent[i])
		}
		return parent[i]
	}
	union := func(i, j int) {
		parent[find(i)] = find(j)
	}

	type pair struct {
		i, j int
		sim  float64
	}
	var above []pair

	for i := 0; i < len(cands); i++ {
		for j := i + 1; j < len(cands); j++ {
			sim := cosine(cands[i].vector, cands[i].norm, cands[j].vector, cands[j].norm)
			if sim >= d.threshold {
				union(i, j)
				above = append(above, pair{i: i, j: j, sim: sim})
			}
		}
	}
	if len(above) == 0 {
		return nil
	}

	// Group members by root, preserving crawl order.
	members := map[int][]int{}
	for i := range cands {
		root := find(i)
		members[root] = append(members[root], i)
	}

	var clusters []model.DuplicateCluster
	for i := 0; i < len(cands); i++ {
		idxs, ok := members[find(i)]
		if !ok || len(idxs) < 2 || idxs[0] != i {
			continue
		}

		var urls []string
		for _, idx := range idxs {
			urls = append(urls, cands[idx].url)
		}

		best := pair{sim: -1}
		root := find(i)
		for _, p := range above {
			if find(p.i) == root && p.sim > best.sim {
				best = p
			}
		}

		clusters = append(clusters, model.DuplicateCluster{
			URLs:            urls,
			MaxSimilarity:   round3(best.sim),
			CommonTextRatio: round3(commonTextRatio(cands[best.i].text, cands[best.j].text)),
		})
	}

	d.logger.Info("duplicate detection complete",
		logging.Field{Key: "pages_compared", Value: len(cands)},
		logging.Field{Key: "clusters", Value: len(clusters)})

	return clusters
}

// termVector builds a term-frequency vector from text, lower-cased, with
// stopwords and non-letter runes removed.
func termVector(text string) map[string]float64 {
	vec := map[string]float64{}
	for _, field := range strings.Fields(strings.ToLower(text)) {
		term := strings.TrimFunc(field, func(r rune) bool {
			return (r < 'a' || r > 'z') && (r < '0' || r > '9')
		})
		if term == "" || stopwords[term] {
			continue
		}
		vec[term]++
	}
	return vec
}

func vectorNorm(vec map[string]float64) float64 {
	var sum float64
	for _, v := range vec {
		sum += v * v
	}
	return math.Sqrt(sum)
}

func cosine(a map[string]float64, normA float64, b map[string]float64, normB float64) float64 {
	if normA == 0 || normB == 0 {
		return 0
	}
	// Iterate the smaller vector.
	if len(b) < len(a) {
		a, b = b, a
	}
	var dot float64
	for term, av := range a {
		if bv, ok := b[term]; ok {
			dot += av * bv
		}
	}
	return dot / (normA * normB)
}

// commonTextRatio is the diff-derived share of text two pages have in
// common, 0..1. Reported alongside the cosine score as human-checkable
// evidence for the cluster.
func commonTextRatio(a, b string) float64 {
	if len(a)+len(b) == 0 {
		return 0
	}
	dmp := diffmatchpatch.New()
	diffs := dmp.DiffMain(a, b, false)
	common := 0
	for _, d := range diffs {
		if d.Type == diffmatchpatch.DiffEqual {
			common += len(d.Text)
		}
	}
	return float64(2*common) / float64(len(a)+len(b))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
