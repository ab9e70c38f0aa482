// Package extract pulls structured signals (CVE ids, vendors, actors,
// keywords) out of normalized item text.
package extract

import (
	"regexp"
	"sort"
	"strings"

	"SecNewsRadar/internal/rules"
)

var (
	cveExpr   = regexp.MustCompile(`(?i)\bCVE-\d{4}-\d{4,7}\b`)
	tokenExpr = regexp.MustCompile(`[a-z0-9\-]+`)
)

const minTokenLen = 3

// Extractor runs the four extraction passes against one rule set.
type Extractor struct {
	set *rules.Set
}

// New builds an Extractor over an immutable rule set.
func New(set *rules.Set) *Extractor {
	return &Extractor{set: set}
}

// Result bundles the extraction output for one item. Every field is a
// sorted, duplicate-free slice; empty results stay nil.
type Result struct {
	CVEs     []string
	Vendors  []string
	Actors   []string
	Keywords []string
}

// Extract runs all passes over the case-folded item text.
func (e *Extractor) Extract(text string) Result {
	return Result{
		CVEs:     CVEs(text),
		Vendors:  e.set.MatchVendors(text),
		Actors:   e.set.MatchActors(text),
		Keywords: e.Keywords(text),
	}
}

// CVEs returns the CVE identifiers found in text, uppercased, sorted,
// and deduplicated.
func CVEs(text string) []string {
	matches := cveExpr.FindAllString(text, -1)
	if len(matches) == 0 {
		return nil
	}

	seen := map[string]struct{}{}
	for _, m := range matches {
		seen[strings.ToUpper(m)] = struct{}{}
	}

	out := make([]string, 0, len(seen))
	for cve := range seen {
		out = append(out, cve)
	}
	sort.Strings(out)
	return out
}

// Keywords tokenizes text and keeps tokens of at least three characters
// that are not stopwords. Output is sorted and deduplicated.
func (e *Extractor) Keywords(text string) []string {
	seen := map[string]struct{}{}
	for _, token := range tokenExpr.FindAllString(strings.ToLower(text), -1) {
		if len(token) < minTokenLen {
			continue
		}
		if e.set.IsStopword(token) {
			continue
		}
		seen[token] = struct{}{}
	}

	if len(seen) == 0 {
		return nil
	}

	out := make([]string, 0, len(seen))
	for token := range seen {
		out = append(out, token)
	}
	sort.Strings(out)
	return out
}

// TrendingTerms returns the display labels of the trending terms whose
// phrase appears in text.
func (e *Extractor) TrendingTerms(text string) []string {
	var hits []string
	for phrase, label := range e.set.TrendingTerms {
		if strings.Contains(text, strings.ToLower(phrase)) {
			hits = append(hits, label)
		}
	}
	sort.Strings(hits)
	return hits
}
