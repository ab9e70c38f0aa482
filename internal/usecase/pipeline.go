package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"SecNewsRadar/internal/archive"
	"SecNewsRadar/internal/classify"
	"SecNewsRadar/internal/domain"
	"SecNewsRadar/internal/extract"
	"SecNewsRadar/internal/normalize"
	"SecNewsRadar/internal/ports"
	"SecNewsRadar/internal/trends"
)

// PipelineDeps wires all collaborators into the batch pipeline.
type PipelineDeps struct {
	Source     ports.EntrySource
	Snapshots  ports.SnapshotStore
	Archive    ports.ArchiveStore
	Trends     ports.TrendSink
	Normalizer *normalize.Normalizer
	Classifier *classify.Classifier
	Flagger    *classify.Flagger
	Extractor  *extract.Extractor
	Merger     *archive.Merger
	Aggregator *trends.Aggregator
	Brief      ports.BriefWriter
	Notifier   ports.Notifier
	Logger     *slog.Logger
	DaysBack   int
	Clock      func() time.Time
}

// Pipeline implements the batch run: fetch, normalize, enrich, snapshot,
// merge, aggregate. Each run reads the persisted state, computes new
// derived state, and writes full replacement outputs.
type Pipeline struct {
	source       ports.EntrySource
	snapshots    ports.SnapshotStore
	archiveStore ports.ArchiveStore
	trendSink    ports.TrendSink
	normalizer   *normalize.Normalizer
	classifier   *classify.Classifier
	flagger      *classify.Flagger
	extractor    *extract.Extractor
	merger       *archive.Merger
	aggregator   *trends.Aggregator
	brief        ports.BriefWriter
	notifier     ports.Notifier
	logger       *slog.Logger
	daysBack     int
	clock        func() time.Time
}

// NewPipeline constructs the orchestration component.
func NewPipeline(deps PipelineDeps) *Pipeline {
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	daysBack := deps.DaysBack
	if daysBack <= 0 {
		daysBack = 30
	}
	return &Pipeline{
		source:       deps.Source,
		snapshots:    deps.Snapshots,
		archiveStore: deps.Archive,
		trendSink:    deps.Trends,
		normalizer:   deps.Normalizer,
		classifier:   deps.Classifier,
		flagger:      deps.Flagger,
		extractor:    deps.Extractor,
		merger:       deps.Merger,
		aggregator:   deps.Aggregator,
		brief:        deps.Brief,
		notifier:     deps.Notifier,
		logger:       deps.Logger,
		daysBack:     daysBack,
		clock:        clock,
	}
}

// Run executes the full pipeline once.
func (p *Pipeline) Run(ctx context.Context) error {
	snap, err := p.Refresh(ctx)
	if err != nil {
		return err
	}

	if _, err := p.Archive(snap); err != nil {
		return err
	}

	if err := p.Trends(snap); err != nil {
		return err
	}

	return p.Publish(ctx, snap)
}

// Refresh fetches feeds, normalizes and enriches the entries, folds the
// still-valid items of the previous snapshot back in, and writes the
// replacement snapshot.
func (p *Pipeline) Refresh(ctx context.Context) (domain.Snapshot, error) {
	now := p.clock().UTC()
	cutoff := now.Add(-time.Duration(p.daysBack) * 24 * time.Hour)

	raw, err := p.source.FetchEntries(ctx)
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("fetch entries: %w", err)
	}
	p.info("entries fetched", "count", len(raw))

	fresh := p.normalizer.NormalizeAll(raw)
	for i := range fresh {
		p.enrich(&fresh[i])
	}

	byID := map[string]domain.NewsItem{}

	// Previous snapshot pre-load keeps items the feeds have already
	// rotated out but that are still inside the window.
	previous, err := p.snapshots.LoadSnapshot()
	if err != nil {
		p.warn("previous snapshot unreadable, rebuilding from scratch", "error", err)
	} else {
		for _, item := range previous.Items {
			if item.PublishedAt.Before(cutoff) {
				continue
			}
			byID[item.ID] = item
		}
	}

	for _, item := range fresh {
		if item.PublishedAt.Before(cutoff) || item.PublishedAt.After(now) {
			continue
		}
		existing, ok := byID[item.ID]
		if ok && existing.PublishedAt.After(item.PublishedAt) {
			continue
		}
		byID[item.ID] = item
	}

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

	snap := domain.Snapshot{
		GeneratedAt: now,
		DaysBack:    p.daysBack,
		TotalItems:  len(items),
		Items:       items,
	}
	if err := p.snapshots.SaveSnapshot(snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("save snapshot: %w", err)
	}

	p.info("snapshot written", "items", snap.TotalItems, "days_back", snap.DaysBack)
	return snap, nil
}

// Archive merges snapshot items into the durable partitions.
func (p *Pipeline) Archive(snap domain.Snapshot) (*archive.Report, error) {
	report, err := p.merger.Merge(snap.Items)
	if err != nil {
		return nil, fmt.Errorf("merge archive: %w", err)
	}

	p.info("archive merged",
		"months", len(report.MonthsTouched),
		"years", len(report.YearsTouched),
		"added", report.Added,
		"conflicts", len(report.Conflicts))
	return report, nil
}

// Trends computes and persists the windowed trend reports from the
// archive plus the snapshot.
func (p *Pipeline) Trends(snap domain.Snapshot) error {
	now := snap.GeneratedAt
	if now.IsZero() {
		now = p.clock().UTC()
	}

	items, err := p.windowInput(snap, now)
	if err != nil {
		return err
	}

	set := p.aggregator.Aggregate(items, now)
	if err := p.trendSink.SaveTrends(set); err != nil {
		return fmt.Errorf("save trends: %w", err)
	}

	p.info("trends written", "items", len(items), "windows", len(set.Windows))
	return nil
}

// Publish hands curated items to the optional briefing generator and
// notifier. Both are best-effort collaborators; their failures are
// logged, not propagated.
func (p *Pipeline) Publish(ctx context.Context, snap domain.Snapshot) error {
	curated := make([]domain.NewsItem, 0)
	for _, item := range snap.Items {
		if item.Curated {
			curated = append(curated, item)
		}
	}
	if len(curated) == 0 {
		return nil
	}

	if p.brief != nil {
		if err := p.brief.WriteBrief(ctx, curated); err != nil {
			p.warn("briefing generation failed", "error", err)
		}
	}

	if p.notifier != nil {
		if err := p.notifier.PublishDigest(ctx, p.digestMessage(curated)); err != nil {
			p.warn("digest notification failed", "error", err)
		}
	}

	return nil
}

// windowInput unions the snapshot with the archive partitions covering
// the widest trend window, deduplicated by identity.
func (p *Pipeline) windowInput(snap domain.Snapshot, now time.Time) ([]domain.NewsItem, error) {
	byID := map[string]domain.NewsItem{}

	widest := domain.Window90d.Duration()
	for _, period := range monthsCovering(now.Add(-widest), now) {
		partition, err := p.archiveStore.LoadPartition(period)
		if err != nil {
			return nil, fmt.Errorf("load partition %s: %w", period, err)
		}
		for _, item := range partition.Items {
			byID[item.ID] = item
		}
	}

	for _, item := range snap.Items {
		byID[item.ID] = item
	}

	items := make([]domain.NewsItem, 0, len(byID))
	for _, item := range byID {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].ID < items[j].ID })
	return items, nil
}

func (p *Pipeline) enrich(item *domain.NewsItem) {
	text := classify.NormalizedText(item.Title, item.Summary)
	item.SmartGroups = p.classifier.Labels(text)
	item.Curated = p.flagger.Curated(text)
	if item.Curated {
		p.debug("item flagged curated", "id", item.ID, "signals", p.flagger.MatchedSignals(text))
	}

	result := p.extractor.Extract(text)
	item.CVEs = result.CVEs
	item.Vendors = result.Vendors
	item.Actors = result.Actors
	item.Keywords = result.Keywords
}

// monthsCovering lists the YYYY-MM periods overlapping [from, to].
func monthsCovering(from, to time.Time) []string {
	from = from.UTC()
	to = to.UTC()

	var periods []string
	cursor := time.Date(from.Year(), from.Month(), 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(to.Year(), to.Month(), 1, 0, 0, 0, 0, time.UTC)
	for !cursor.After(end) {
		periods = append(periods, cursor.Format("2006-01"))
		cursor = cursor.AddDate(0, 1, 0)
	}
	return periods
}

func (p *Pipeline) digestMessage(curated []domain.NewsItem) string {
	msg := fmt.Sprintf("%d high-signal items:\n", len(curated))
	limit := len(curated)
	if limit > 10 {
		limit = 10
	}
	for _, item := range curated[:limit] {
		label := p.classifier.PrimaryLabel(classify.NormalizedText(item.Title, item.Summary))
		if label != "" {
			msg += fmt.Sprintf("- [%s] %s\n%s\n", label, item.Title, item.Link)
		} else {
			msg += fmt.Sprintf("- %s\n%s\n", item.Title, item.Link)
		}
	}
	return msg
}

func (p *Pipeline) info(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Info(msg, args...)
	}
}

func (p *Pipeline) warn(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Warn(msg, args...)
	}
}

func (p *Pipeline) debug(msg string, args ...any) {
	if p.logger != nil {
		p.logger.Debug(msg, args...)
	}
}
