package ports

import (
	"context"

	"SecNewsRadar/internal/domain"
)

// EntrySource pulls raw entries from upstream feeds. Implementations
// absorb per-feed failures and return whatever was fetched.
type EntrySource interface {
	FetchEntries(ctx context.Context) ([]domain.RawEntry, error)
}

// SnapshotStore persists the ephemeral rolling-window snapshot.
type SnapshotStore interface {
	LoadSnapshot() (domain.Snapshot, error)
	SaveSnapshot(snap domain.Snapshot) error
}

// ArchiveStore persists archive partitions and their curated packs.
// LoadPartition returns an empty partition when the period has never
// been written. Partitions load independently so a run touching one
// month never pulls the full history into memory.
type ArchiveStore interface {
	LoadPartition(period string) (domain.Partition, error)
	SavePartition(p domain.Partition) error
	SaveCurated(p domain.Partition) error
	MonthsOfYear(year string) ([]string, error)
}

// TrendSink persists the per-run trend reports.
type TrendSink interface {
	SaveTrends(set domain.TrendSet) error
}

// BriefWriter emits the optional curated briefing plus its latest alias.
type BriefWriter interface {
	WriteBrief(ctx context.Context, items []domain.NewsItem) error
}

// Notifier pushes a short curated digest to an external channel.
type Notifier interface {
	PublishDigest(ctx context.Context, digest string) error
}

// Scheduler drives recurring pipeline runs in watch mode.
type Scheduler interface {
	Start(ctx context.Context, job func()) error
	Stop(ctx context.Context) error
}
