// Package rules holds the classification taxonomy, the curated-signal
// rule set, and the extraction lexicons. A Set is loaded once per run
// and passed explicitly into the classifier and extractor; it is never
// mutated afterwards.
package rules

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// GroupRule assigns a smart-group label when any of its keywords or
// patterns matches the normalized item text. Priority only matters for
// the primary-label projection; the stored label set ignores it.
type GroupRule struct {
	Label    string   `yaml:"label"`
	Priority int      `yaml:"priority"`
	Keywords []string `yaml:"keywords"`
	Patterns []string `yaml:"patterns"`

	compiled []*regexp.Regexp
}

// SignalRule marks an item as curated when any of its keywords or
// patterns matches. Signal rules are independent of the group taxonomy.
type SignalRule struct {
	Name     string   `yaml:"name"`
	Keywords []string `yaml:"keywords"`
	Patterns []string `yaml:"patterns"`

	compiled []*regexp.Regexp
}

// Set is the full immutable rule configuration for one run.
type Set struct {
	Groups        []GroupRule         `yaml:"groups"`
	Signals       []SignalRule        `yaml:"signals"`
	Vendors       map[string][]string `yaml:"vendors"`
	Actors        []string            `yaml:"actors"`
	ActorPatterns []string            `yaml:"actor_patterns"`
	Stopwords     []string            `yaml:"stopwords"`
	TrendingTerms map[string]string   `yaml:"trending_terms"`

	stopwords      map[string]struct{}
	vendorMatchers map[string][]*regexp.Regexp
	actorMatchers  map[string]*regexp.Regexp
	actorGeneric   []*regexp.Regexp
}

// Load reads a YAML rule file and compiles it. An empty path returns the
// built-in default set.
func Load(path string) (*Set, error) {
	if path == "" {
		return Default()
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read rules %s: %w", path, err)
	}

	var set Set
	if err := yaml.Unmarshal(raw, &set); err != nil {
		return nil, fmt.Errorf("parse rules %s: %w", path, err)
	}

	if err := set.compile(); err != nil {
		return nil, fmt.Errorf("compile rules %s: %w", path, err)
	}

	return &set, nil
}

// Default returns the built-in rule set compiled and ready to use.
func Default() (*Set, error) {
	set := defaultSet()
	if err := set.compile(); err != nil {
		return nil, fmt.Errorf("compile default rules: %w", err)
	}
	return set, nil
}

// Compile prepares a hand-built Set for use. Load and Default call it
// automatically; tests building custom sets call it directly.
func Compile(set *Set) error {
	return set.compile()
}

func (s *Set) compile() error {
	for i := range s.Groups {
		compiled, err := compilePatterns(s.Groups[i].Patterns)
		if err != nil {
			return fmt.Errorf("group %s: %w", s.Groups[i].Label, err)
		}
		s.Groups[i].compiled = compiled
	}

	for i := range s.Signals {
		compiled, err := compilePatterns(s.Signals[i].Patterns)
		if err != nil {
			return fmt.Errorf("signal %s: %w", s.Signals[i].Name, err)
		}
		s.Signals[i].compiled = compiled
	}

	s.stopwords = make(map[string]struct{}, len(s.Stopwords))
	for _, w := range s.Stopwords {
		s.stopwords[strings.ToLower(w)] = struct{}{}
	}

	s.vendorMatchers = make(map[string][]*regexp.Regexp, len(s.Vendors))
	for vendor, terms := range s.Vendors {
		matchers := make([]*regexp.Regexp, 0, len(terms))
		for _, term := range terms {
			re, err := wholeWord(term)
			if err != nil {
				return fmt.Errorf("vendor %s term %q: %w", vendor, term, err)
			}
			matchers = append(matchers, re)
		}
		s.vendorMatchers[vendor] = matchers
	}

	s.actorMatchers = make(map[string]*regexp.Regexp, len(s.Actors))
	for _, actor := range s.Actors {
		re, err := wholeWord(actor)
		if err != nil {
			return fmt.Errorf("actor %q: %w", actor, err)
		}
		s.actorMatchers[actor] = re
	}

	s.actorGeneric = s.actorGeneric[:0]
	for _, pat := range s.ActorPatterns {
		re, err := regexp.Compile("(?i)" + pat)
		if err != nil {
			return fmt.Errorf("actor pattern %q: %w", pat, err)
		}
		s.actorGeneric = append(s.actorGeneric, re)
	}

	return nil
}

// Match reports whether any predicate of the rule matches text.
// Text is expected to be already case-folded by the caller.
func (g *GroupRule) Match(text string) bool {
	for _, kw := range g.Keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	for _, re := range g.compiled {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// Match reports whether any predicate of the signal rule matches text.
func (r *SignalRule) Match(text string) bool {
	for _, kw := range r.Keywords {
		if strings.Contains(text, strings.ToLower(kw)) {
			return true
		}
	}
	for _, re := range r.compiled {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// IsStopword reports membership in the stopword set.
func (s *Set) IsStopword(token string) bool {
	_, ok := s.stopwords[token]
	return ok
}

// MatchVendors returns the vendors whose lexicon terms appear whole-word
// in text, sorted alphabetically.
func (s *Set) MatchVendors(text string) []string {
	var hits []string
	for vendor, matchers := range s.vendorMatchers {
		for _, re := range matchers {
			if re.MatchString(text) {
				hits = append(hits, vendor)
				break
			}
		}
	}
	sort.Strings(hits)
	return hits
}

// MatchActors returns the actor names appearing whole-word in text plus
// any generic-pattern hits (APT12, Storm-0501, ...), sorted and deduped.
func (s *Set) MatchActors(text string) []string {
	seen := map[string]struct{}{}
	for actor, re := range s.actorMatchers {
		if re.MatchString(text) {
			seen[actor] = struct{}{}
		}
	}
	for _, re := range s.actorGeneric {
		for _, m := range re.FindAllString(text, -1) {
			seen[strings.ToUpper(m)] = struct{}{}
		}
	}

	hits := make([]string, 0, len(seen))
	for actor := range seen {
		hits = append(hits, actor)
	}
	sort.Strings(hits)
	return hits
}

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, pat := range patterns {
		re, err := regexp.Compile("(?i)" + pat)
		if err != nil {
			return nil, fmt.Errorf("pattern %q: %w", pat, err)
		}
		compiled = append(compiled, re)
	}
	return compiled, nil
}

func wholeWord(term string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)\b` + regexp.QuoteMeta(strings.ToLower(term)) + `\b`)
}
