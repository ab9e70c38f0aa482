package trends

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SecNewsRadar/internal/domain"
	"SecNewsRadar/internal/extract"
	"SecNewsRadar/internal/rules"
)

func testAggregator(t *testing.T) *Aggregator {
	t.Helper()
	set, err := rules.Default()
	require.NoError(t, err)
	return New(extract.New(set))
}

func newsItem(id string, published time.Time, mutate func(*domain.NewsItem)) domain.NewsItem {
	item := domain.NewsItem{
		ID:          id,
		Title:       "item " + id,
		Link:        "https://example.com/" + id,
		PublishedAt: published,
	}
	if mutate != nil {
		mutate(&item)
	}
	return item
}

func TestWindowBoundaryInclusive(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)
	agg := testAggregator(t)

	items := []domain.NewsItem{
		newsItem("inside", now.Add(-23*time.Hour), nil),
		newsItem("outside", now.Add(-25*time.Hour), nil),
		newsItem("exact", now.Add(-24*time.Hour), nil),
	}

	set := agg.Aggregate(items, now)
	daily := set.Reports[domain.Window24h].DailyVolume

	total := 0
	for _, day := range daily {
		total += day.Count
	}
	assert.Equal(t, 2, total, "T-23h and the exact lower bound count, T-25h does not")

	// The 7d window sees all three.
	total = 0
	for _, day := range set.Reports[domain.Window7d].DailyVolume {
		total += day.Count
	}
	assert.Equal(t, 3, total)
}

func TestDailyVolumeChronological(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)
	agg := testAggregator(t)

	items := []domain.NewsItem{
		newsItem("c", now.Add(-2*time.Hour), nil),
		newsItem("a", now.Add(-72*time.Hour), nil),
		newsItem("b", now.Add(-48*time.Hour), nil),
	}

	daily := agg.Aggregate(items, now).Reports[domain.Window7d].DailyVolume
	require.Len(t, daily, 3)
	assert.Equal(t, "2025-11-07", daily[0].Date)
	assert.Equal(t, "2025-11-08", daily[1].Date)
	assert.Equal(t, "2025-11-10", daily[2].Date)
}

func TestGroupDistributionMultiCounts(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)
	agg := testAggregator(t)

	items := []domain.NewsItem{
		newsItem("a", now.Add(-time.Hour), func(i *domain.NewsItem) {
			i.SmartGroups = []string{"Ransomware", "Windows / Microsoft"}
		}),
		newsItem("b", now.Add(-time.Hour), func(i *domain.NewsItem) {
			i.SmartGroups = []string{"Ransomware"}
		}),
	}

	dist := agg.Aggregate(items, now).Reports[domain.Window24h].GroupDistribution
	assert.Equal(t, 2, dist["Ransomware"])
	assert.Equal(t, 1, dist["Windows / Microsoft"])
}

func TestRankingTieBreakAlphabetical(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)
	agg := testAggregator(t)

	items := []domain.NewsItem{
		newsItem("a", now.Add(-time.Hour), func(i *domain.NewsItem) {
			i.Keywords = []string{"zulu", "alpha", "mike"}
		}),
		newsItem("b", now.Add(-time.Hour), func(i *domain.NewsItem) {
			i.Keywords = []string{"mike"}
		}),
	}

	keywords := agg.Aggregate(items, now).Reports[domain.Window24h].TopKeywords
	require.Len(t, keywords, 3)
	assert.Equal(t, domain.RankedEntry{Term: "mike", Count: 2}, keywords[0])
	assert.Equal(t, domain.RankedEntry{Term: "alpha", Count: 1}, keywords[1])
	assert.Equal(t, domain.RankedEntry{Term: "zulu", Count: 1}, keywords[2])
}

func TestActorTimelinesSparse(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)
	agg := testAggregator(t)

	items := []domain.NewsItem{
		newsItem("a", now.Add(-time.Hour), func(i *domain.NewsItem) {
			i.Actors = []string{"Lazarus Group"}
		}),
		newsItem("b", now.Add(-49*time.Hour), func(i *domain.NewsItem) {
			i.Actors = []string{"Lazarus Group"}
		}),
		newsItem("c", now.Add(-2*time.Hour), nil),
	}

	timelines := agg.Aggregate(items, now).Reports[domain.Window7d].ActorTimelines
	series, ok := timelines["Lazarus Group"]
	require.True(t, ok)

	// Two active days, the quiet day between them omitted.
	require.Len(t, series, 2)
	assert.Equal(t, "2025-11-08", series[0].Date)
	assert.Equal(t, "2025-11-10", series[1].Date)
}

func TestCVEAndVendorRankings(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)
	agg := testAggregator(t)

	items := []domain.NewsItem{
		newsItem("a", now.Add(-time.Hour), func(i *domain.NewsItem) {
			i.CVEs = []string{"CVE-2025-0001"}
			i.Vendors = []string{"Microsoft"}
		}),
		newsItem("b", now.Add(-time.Hour), func(i *domain.NewsItem) {
			i.CVEs = []string{"CVE-2025-0001", "CVE-2025-0002"}
			i.Vendors = []string{"Cisco", "Microsoft"}
		}),
	}

	report := agg.Aggregate(items, now).Reports[domain.Window24h]
	require.NotEmpty(t, report.CVERankings)
	assert.Equal(t, domain.RankedEntry{Term: "CVE-2025-0001", Count: 2}, report.CVERankings[0])
	assert.Equal(t, domain.RankedEntry{Term: "Microsoft", Count: 2}, report.VendorActivity[0])
}

func TestTrendingTermsCounted(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)
	agg := testAggregator(t)

	items := []domain.NewsItem{
		newsItem("a", now.Add(-time.Hour), func(i *domain.NewsItem) {
			i.Title = "Ransomware gang launches supply chain attack"
		}),
	}

	trending := agg.Aggregate(items, now).Reports[domain.Window24h].TrendingTerms
	assert.Equal(t, 1, trending["Ransomware"])
	assert.Equal(t, 1, trending["Supply chain"])
	assert.Zero(t, trending["Phishing"])
}

func TestAggregateDeterministic(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 11, 10, 12, 0, 0, 0, time.UTC)
	agg := testAggregator(t)

	items := []domain.NewsItem{
		newsItem("a", now.Add(-time.Hour), func(i *domain.NewsItem) {
			i.Keywords = []string{"alpha", "beta"}
			i.SmartGroups = []string{"Ransomware"}
			i.Actors = []string{"Turla"}
		}),
		newsItem("b", now.Add(-30*time.Hour), func(i *domain.NewsItem) {
			i.Keywords = []string{"beta"}
		}),
	}

	first := agg.Aggregate(items, now)
	second := agg.Aggregate(items, now)
	assert.Equal(t, first, second)

	// Input order must not matter either.
	swapped := []domain.NewsItem{items[1], items[0]}
	third := agg.Aggregate(swapped, now)
	assert.Equal(t, first, third)
}

func TestAllWindowsPresent(t *testing.T) {
	t.Parallel()

	agg := testAggregator(t)
	set := agg.Aggregate(nil, time.Date(2025, 11, 10, 0, 0, 0, 0, time.UTC))

	assert.Equal(t, domain.Windows, set.Windows)
	for _, window := range domain.Windows {
		report, ok := set.Reports[window]
		require.True(t, ok)
		assert.Equal(t, window, report.Window)
		assert.Empty(t, report.DailyVolume)
	}
}
