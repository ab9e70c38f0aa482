package classify

import "SecNewsRadar/internal/rules"

// Flagger decides the curated flag. It runs over the same normalized
// text as the Classifier but its rule set is independent of the group
// taxonomy.
type Flagger struct {
	set *rules.Set
}

// NewFlagger builds a Flagger over an immutable rule set.
func NewFlagger(set *rules.Set) *Flagger {
	return &Flagger{set: set}
}

// Curated reports whether any signal rule matches text.
func (f *Flagger) Curated(text string) bool {
	for i := range f.set.Signals {
		if f.set.Signals[i].Match(text) {
			return true
		}
	}
	return false
}

// MatchedSignals returns the names of the signal rules that fired, in
// declaration order. Used for operator-facing logging only.
func (f *Flagger) MatchedSignals(text string) []string {
	var names []string
	for i := range f.set.Signals {
		if f.set.Signals[i].Match(text) {
			names = append(names, f.set.Signals[i].Name)
		}
	}
	return names
}
