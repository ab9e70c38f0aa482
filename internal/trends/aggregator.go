// Package trends computes the windowed statistics consumed by the
// dashboards. Everything here is a pure function of the item set, the
// window, and the run's "now"; identical inputs reproduce identical
// output, including ordering.
package trends

import (
	"sort"
	"time"

	"SecNewsRadar/internal/classify"
	"SecNewsRadar/internal/domain"
	"SecNewsRadar/internal/extract"
)

// Aggregator builds trend reports for the supported windows.
type Aggregator struct {
	extractor *extract.Extractor
}

// New builds an Aggregator; the extractor is used for trending-term
// detection, which is not stored on items.
func New(extractor *extract.Extractor) *Aggregator {
	return &Aggregator{extractor: extractor}
}

// Aggregate computes one report per supported window from the combined
// archive-and-snapshot item set. Items are expected to be deduplicated
// by identity already.
func (a *Aggregator) Aggregate(items []domain.NewsItem, now time.Time) domain.TrendSet {
	now = now.UTC()
	set := domain.TrendSet{
		GeneratedAt: now,
		Windows:     domain.Windows,
		Reports:     make(map[domain.Window]domain.TrendReport, len(domain.Windows)),
	}
	for _, window := range domain.Windows {
		set.Reports[window] = a.report(items, window, now)
	}
	return set
}

func (a *Aggregator) report(items []domain.NewsItem, window domain.Window, now time.Time) domain.TrendReport {
	cutoff := now.Add(-window.Duration())

	daily := map[string]int{}
	groups := map[string]int{}
	keywords := map[string]int{}
	vendors := map[string]int{}
	cves := map[string]int{}
	actorDaily := map[string]map[string]int{}
	trending := map[string]int{}

	for _, item := range items {
		if !inWindow(item.PublishedAt, cutoff, now) {
			continue
		}

		date := item.PublishedAt.UTC().Format("2006-01-02")
		daily[date]++

		for _, label := range item.SmartGroups {
			groups[label]++
		}
		for _, token := range item.Keywords {
			keywords[token]++
		}
		for _, vendor := range item.Vendors {
			vendors[vendor]++
		}
		for _, cve := range item.CVEs {
			cves[cve]++
		}
		for _, actor := range item.Actors {
			if actorDaily[actor] == nil {
				actorDaily[actor] = map[string]int{}
			}
			actorDaily[actor][date]++
		}

		text := classify.NormalizedText(item.Title, item.Summary)
		for _, term := range a.extractor.TrendingTerms(text) {
			trending[term]++
		}
	}

	timelines := make(map[string][]domain.DateCount, len(actorDaily))
	for actor, days := range actorDaily {
		timelines[actor] = volumeSeries(days)
	}

	return domain.TrendReport{
		Window:            window,
		GeneratedAt:       now,
		DailyVolume:       volumeSeries(daily),
		GroupDistribution: groups,
		TopKeywords:       rank(keywords),
		VendorActivity:    rank(vendors),
		CVERankings:       rank(cves),
		ActorTimelines:    timelines,
		TrendingTerms:     trending,
	}
}

// inWindow applies the inclusive lower bound: published exactly at
// now-window still counts.
func inWindow(published, cutoff, now time.Time) bool {
	return !published.Before(cutoff) && !published.After(now)
}

// volumeSeries turns a date->count map into a chronologically ordered
// series, omitting nothing the map holds (zero-count days simply never
// enter the map, which yields the sparse representation).
func volumeSeries(byDate map[string]int) []domain.DateCount {
	dates := make([]string, 0, len(byDate))
	for date := range byDate {
		dates = append(dates, date)
	}
	sort.Strings(dates)

	series := make([]domain.DateCount, 0, len(dates))
	for _, date := range dates {
		series = append(series, domain.DateCount{Date: date, Count: byDate[date]})
	}
	return series
}

// rank orders terms by count descending, ties broken alphabetically.
func rank(counts map[string]int) []domain.RankedEntry {
	entries := make([]domain.RankedEntry, 0, len(counts))
	for term, count := range counts {
		entries = append(entries, domain.RankedEntry{Term: term, Count: count})
	}
	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Count != entries[j].Count {
			return entries[i].Count > entries[j].Count
		}
		return entries[i].Term < entries[j].Term
	})
	return entries
}
