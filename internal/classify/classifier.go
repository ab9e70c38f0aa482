// Package classify assigns smart-group labels and the curated flag to
// news items. Both are pure functions of the item text and the rule set.
package classify

import (
	"sort"
	"strings"

	"SecNewsRadar/internal/rules"
)

// NormalizedText builds the case-folded text every rule evaluates
// against. Classifier, flagger, and extractor all use the same input so
// their outputs stay consistent with each other.
func NormalizedText(title, summary string) string {
	return strings.ToLower(strings.TrimSpace(title + " " + summary))
}

// Classifier evaluates the group taxonomy.
type Classifier struct {
	set *rules.Set
}

// New builds a Classifier over an immutable rule set.
func New(set *rules.Set) *Classifier {
	return &Classifier{set: set}
}

// Labels returns the set of smart-group labels whose rules match text.
// Every matching rule contributes; the result does not depend on rule
// evaluation order and is sorted for stable serialization.
func (c *Classifier) Labels(text string) []string {
	var labels []string
	for i := range c.set.Groups {
		if c.set.Groups[i].Match(text) {
			labels = append(labels, c.set.Groups[i].Label)
		}
	}
	sort.Strings(labels)
	return labels
}

// PrimaryLabel projects a single label for UI contexts that cannot show
// a set: the matching rule with the lowest priority tier wins, ties
// broken by lexical order of the label. The projection never feeds back
// into the stored label set.
func (c *Classifier) PrimaryLabel(text string) string {
	best := ""
	bestPriority := 0
	for i := range c.set.Groups {
		g := &c.set.Groups[i]
		if !g.Match(text) {
			continue
		}
		if best == "" || g.Priority < bestPriority ||
			(g.Priority == bestPriority && g.Label < best) {
			best = g.Label
			bestPriority = g.Priority
		}
	}
	return best
}
