package domain

import "time"

// RawEntry is a feed entry as delivered by an upstream source, before
// normalization. Nothing about it is trusted yet.
type RawEntry struct {
	Title     string
	Link      string
	Published string
	Summary   string
	Source    string
	Category  string
}

// NewsItem is the canonical item flowing through the pipeline. ID is a
// stable hash of the normalized link and title and never changes across
// runs for the same underlying entry.
type NewsItem struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Link        string    `json:"link"`
	Summary     string    `json:"summary"`
	Source      string    `json:"source"`
	Category    string    `json:"category,omitempty"`
	PublishedAt time.Time `json:"published"`
	SmartGroups []string  `json:"smart_groups"`
	Curated     bool      `json:"curated"`
	CVEs        []string  `json:"cves,omitempty"`
	Vendors     []string  `json:"vendors,omitempty"`
	Actors      []string  `json:"actors,omitempty"`
	Keywords    []string  `json:"keywords,omitempty"`
}

// Snapshot is the ephemeral rolling-window view rebuilt every run.
type Snapshot struct {
	GeneratedAt time.Time  `json:"generated_at"`
	DaysBack    int        `json:"days_back"`
	TotalItems  int        `json:"total_items"`
	Items       []NewsItem `json:"items"`
}

// Partition is a durable archive unit covering one month (period
// "YYYY-MM") or one year (period "YYYY"). Items are deduplicated by ID
// and ordered by published-at descending; counts are always recomputed
// from the current contents.
type Partition struct {
	Period       string     `json:"period"`
	TotalItems   int        `json:"total_items"`
	CuratedCount int        `json:"curated_count"`
	Items        []NewsItem `json:"items"`
}

// MergeConflict records an identity collision with differing content.
// Resolution always keeps the item with the newer published-at.
type MergeConflict struct {
	ID       string
	Period   string
	Kept     time.Time
	Rejected time.Time
}

// Window is a relative time range scoping trend computation.
type Window string

const (
	Window24h Window = "24h"
	Window7d  Window = "7d"
	Window30d Window = "30d"
	Window90d Window = "90d"
)

// Windows lists the supported trend windows in display order.
var Windows = []Window{Window24h, Window7d, Window30d, Window90d}

// Duration returns the span a window covers.
func (w Window) Duration() time.Duration {
	switch w {
	case Window24h:
		return 24 * time.Hour
	case Window7d:
		return 7 * 24 * time.Hour
	case Window30d:
		return 30 * 24 * time.Hour
	case Window90d:
		return 90 * 24 * time.Hour
	}
	return 0
}

// DateCount is one day of a volume series or actor timeline.
type DateCount struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// RankedEntry pairs a term with its frequency inside a window.
type RankedEntry struct {
	Term  string `json:"term"`
	Count int    `json:"count"`
}

// TrendReport holds the windowed statistics for one window.
type TrendReport struct {
	Window            Window                 `json:"window"`
	GeneratedAt       time.Time              `json:"generated_at"`
	DailyVolume       []DateCount            `json:"daily_volume"`
	GroupDistribution map[string]int         `json:"group_distribution"`
	TopKeywords       []RankedEntry          `json:"top_keywords"`
	VendorActivity    []RankedEntry          `json:"vendor_activity"`
	CVERankings       []RankedEntry          `json:"cve_rankings"`
	ActorTimelines    map[string][]DateCount `json:"actor_timelines"`
	TrendingTerms     map[string]int         `json:"trending_terms"`
}

// TrendSet bundles every window's report for a single run.
type TrendSet struct {
	GeneratedAt time.Time              `json:"generated_at"`
	Windows     []Window               `json:"windows"`
	Reports     map[Window]TrendReport `json:"reports"`
}
