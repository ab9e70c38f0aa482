// Package archive incorporates news items into the durable monthly and
// yearly partitions.
package archive

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"SecNewsRadar/internal/domain"
	"SecNewsRadar/internal/ports"
)

// Merger applies incoming items to the archive. Merging is idempotent:
// replaying an identical batch never changes partition contents or
// counts.
type Merger struct {
	store  ports.ArchiveStore
	logger *slog.Logger
}

// New builds a Merger over an archive store; logger may be nil.
func New(store ports.ArchiveStore, logger *slog.Logger) *Merger {
	return &Merger{store: store, logger: logger}
}

// Report summarizes one merge run.
type Report struct {
	MonthsTouched []string
	YearsTouched  []string
	Added         int
	Conflicts     []domain.MergeConflict
}

// Merge buckets items into monthly partitions, resolves identity
// collisions newest-published-wins, recounts every touched partition,
// and rebuilds the affected yearly partitions from their months.
func (m *Merger) Merge(items []domain.NewsItem) (*Report, error) {
	report := &Report{}

	buckets := map[string][]domain.NewsItem{}
	for _, item := range items {
		if item.PublishedAt.IsZero() {
			m.warn("item without published-at skipped", "id", item.ID)
			continue
		}
		period := MonthPeriod(item)
		buckets[period] = append(buckets[period], item)
	}

	years := map[string]struct{}{}
	for period, monthItems := range buckets {
		added, conflicts, err := m.mergeMonth(period, monthItems)
		if err != nil {
			return nil, err
		}
		report.MonthsTouched = append(report.MonthsTouched, period)
		report.Added += added
		report.Conflicts = append(report.Conflicts, conflicts...)
		years[period[:4]] = struct{}{}
	}
	sort.Strings(report.MonthsTouched)

	for year := range years {
		if err := m.rebuildYear(year); err != nil {
			return nil, err
		}
		report.YearsTouched = append(report.YearsTouched, year)
	}
	sort.Strings(report.YearsTouched)

	return report, nil
}

func (m *Merger) mergeMonth(period string, incoming []domain.NewsItem) (int, []domain.MergeConflict, error) {
	partition, err := m.store.LoadPartition(period)
	if err != nil {
		return 0, nil, fmt.Errorf("load partition %s: %w", period, err)
	}

	byID := make(map[string]domain.NewsItem, len(partition.Items))
	for _, item := range partition.Items {
		byID[item.ID] = item
	}

	added := 0
	var conflicts []domain.MergeConflict
	for _, item := range incoming {
		existing, ok := byID[item.ID]
		if !ok {
			byID[item.ID] = item
			added++
			continue
		}
		if sameContent(existing, item) {
			continue
		}

		// Same identity, different content: newer published-at wins.
		kept, rejected := existing, item
		if item.PublishedAt.After(existing.PublishedAt) {
			kept, rejected = item, existing
			byID[item.ID] = item
		}
		conflict := domain.MergeConflict{
			ID:       item.ID,
			Period:   period,
			Kept:     kept.PublishedAt,
			Rejected: rejected.PublishedAt,
		}
		conflicts = append(conflicts, conflict)
		m.warn("merge conflict resolved",
			"id", conflict.ID, "period", period,
			"kept", conflict.Kept, "rejected", conflict.Rejected)
	}

	partition = Rebuild(period, byID)
	if err := m.store.SavePartition(partition); err != nil {
		return 0, nil, fmt.Errorf("save partition %s: %w", period, err)
	}
	if err := m.store.SaveCurated(CuratedPack(partition)); err != nil {
		return 0, nil, fmt.Errorf("save curated pack %s: %w", period, err)
	}

	return added, conflicts, nil
}

// rebuildYear recomputes a yearly partition as the union of its monthly
// partitions. It is never merged into independently, which keeps
// yearly.total equal to the sum of its months.
func (m *Merger) rebuildYear(year string) error {
	months, err := m.store.MonthsOfYear(year)
	if err != nil {
		return fmt.Errorf("list months of %s: %w", year, err)
	}

	byID := map[string]domain.NewsItem{}
	for _, month := range months {
		partition, err := m.store.LoadPartition(month)
		if err != nil {
			return fmt.Errorf("load partition %s: %w", month, err)
		}
		for _, item := range partition.Items {
			byID[item.ID] = item
		}
	}

	partition := Rebuild(year, byID)
	if err := m.store.SavePartition(partition); err != nil {
		return fmt.Errorf("save partition %s: %w", year, err)
	}
	if err := m.store.SaveCurated(CuratedPack(partition)); err != nil {
		return fmt.Errorf("save curated pack %s: %w", year, err)
	}

	return nil
}

// Rebuild assembles a partition from an identity-keyed item set,
// ordering by published-at descending (ID as a deterministic tie-break)
// and recounting metadata from scratch.
func Rebuild(period string, byID map[string]domain.NewsItem) domain.Partition {
	items := make([]domain.NewsItem, 0, len(byID))
	for _, item := range byID {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool {
		if !items[i].PublishedAt.Equal(items[j].PublishedAt) {
			return items[i].PublishedAt.After(items[j].PublishedAt)
		}
		return items[i].ID < items[j].ID
	})

	curated := 0
	for _, item := range items {
		if item.Curated {
			curated++
		}
	}

	return domain.Partition{
		Period:       period,
		TotalItems:   len(items),
		CuratedCount: curated,
		Items:        items,
	}
}

// CuratedPack derives the curated-only view of a partition. It is a
// filtered projection, never edited on its own.
func CuratedPack(p domain.Partition) domain.Partition {
	items := make([]domain.NewsItem, 0, p.CuratedCount)
	for _, item := range p.Items {
		if item.Curated {
			items = append(items, item)
		}
	}
	return domain.Partition{
		Period:       p.Period,
		TotalItems:   len(items),
		CuratedCount: len(items),
		Items:        items,
	}
}

// MonthPeriod returns the YYYY-MM partition key for an item.
func MonthPeriod(item domain.NewsItem) string {
	return item.PublishedAt.UTC().Format("2006-01")
}

func sameContent(a, b domain.NewsItem) bool {
	return a.Title == b.Title &&
		a.Link == b.Link &&
		a.Summary == b.Summary &&
		a.PublishedAt.Equal(b.PublishedAt) &&
		a.Curated == b.Curated &&
		strings.Join(a.SmartGroups, "|") == strings.Join(b.SmartGroups, "|")
}

func (m *Merger) warn(msg string, args ...any) {
	if m.logger != nil {
		m.logger.Warn(msg, args...)
	}
}
