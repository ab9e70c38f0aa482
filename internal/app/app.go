package app

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"

	"SecNewsRadar/internal/archive"
	"SecNewsRadar/internal/classify"
	"SecNewsRadar/internal/config"
	"SecNewsRadar/internal/extract"
	"SecNewsRadar/internal/infrastructure/feed"
	"SecNewsRadar/internal/infrastructure/llm"
	"SecNewsRadar/internal/infrastructure/scheduler"
	"SecNewsRadar/internal/infrastructure/store"
	"SecNewsRadar/internal/infrastructure/telegram"
	"SecNewsRadar/internal/logging"
	"SecNewsRadar/internal/normalize"
	"SecNewsRadar/internal/ports"
	"SecNewsRadar/internal/rules"
	"SecNewsRadar/internal/source"
	"SecNewsRadar/internal/trends"
	"SecNewsRadar/internal/usecase"
)

// Application wires configs to use cases and lifecycle orchestration.
type Application struct {
	cfg       config.Config
	logger    *slog.Logger
	store     *store.JSONStore
	pipeline  *usecase.Pipeline
	scheduler *usecase.Scheduler
}

// New builds a runnable application instance.
func New(cfg config.Config, baseLogger *slog.Logger) (*Application, error) {
	if baseLogger == nil {
		baseLogger = logging.New(cfg.Logging.Level)
	}

	ruleSet, err := rules.Load(cfg.Rules.Path)
	if err != nil {
		return nil, fmt.Errorf("load rules: %w", err)
	}

	registry := source.NewRegistry()
	registry.Register(feed.NewRSSSource(nil, baseLogger.With("component", "source.rss")))

	groups, err := feed.ParseOPML(cfg.Feeds.OPMLPath)
	if err != nil {
		// Merge/trends over persisted data must keep working without a
		// feed catalog.
		baseLogger.Warn("feed catalog unavailable", "path", cfg.Feeds.OPMLPath, "error", err)
	}
	catalog := feed.NewCatalogSource(registry, groups, baseLogger.With("component", "source"))

	dataStore := store.New(cfg.Data.Dir)
	merger := archive.New(dataStore, baseLogger.With("component", "archive"))
	extractor := extract.New(ruleSet)

	var brief ports.BriefWriter
	if cfg.Briefing.APIKey != "" {
		brief = llm.NewBriefingWriter(cfg.Briefing, filepath.Join(cfg.Data.Dir, "briefings"))
	}

	var notifier ports.Notifier
	if cfg.Notifications.Telegram.BotToken != "" && cfg.Notifications.Telegram.ChatID != "" {
		notifier = telegram.NewNotifier(cfg.Notifications.Telegram.BotToken, cfg.Notifications.Telegram.ChatID)
	}

	pipeline := usecase.NewPipeline(usecase.PipelineDeps{
		Source:     catalog,
		Snapshots:  dataStore,
		Archive:    dataStore,
		Trends:     dataStore,
		Normalizer: normalize.New(baseLogger.With("component", "normalizer")),
		Classifier: classify.New(ruleSet),
		Flagger:    classify.NewFlagger(ruleSet),
		Extractor:  extractor,
		Merger:     merger,
		Aggregator: trends.New(extractor),
		Brief:      brief,
		Notifier:   notifier,
		Logger:     baseLogger.With("component", "pipeline"),
		DaysBack:   cfg.Feeds.DaysBack,
	})

	driver := scheduler.NewTickerScheduler(cfg.Watch.Interval)

	return &Application{
		cfg:       cfg,
		logger:    baseLogger,
		store:     dataStore,
		pipeline:  pipeline,
		scheduler: usecase.NewScheduler(driver, pipeline),
	}, nil
}

// Run performs a single full pipeline execution.
func (a *Application) Run(ctx context.Context) error {
	return a.pipeline.Run(ctx)
}

// Refresh fetches feeds and rebuilds the recent snapshot only.
func (a *Application) Refresh(ctx context.Context) error {
	_, err := a.pipeline.Refresh(ctx)
	return err
}

// Merge folds the persisted snapshot into the archive partitions.
func (a *Application) Merge(ctx context.Context) error {
	snap, err := a.store.LoadSnapshot()
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	_, err = a.pipeline.Archive(snap)
	return err
}

// Trends recomputes the trend reports from archive plus snapshot.
func (a *Application) Trends(ctx context.Context) error {
	snap, err := a.store.LoadSnapshot()
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	return a.pipeline.Trends(snap)
}

// Brief generates the curated briefing and digest notification.
func (a *Application) Brief(ctx context.Context) error {
	snap, err := a.store.LoadSnapshot()
	if err != nil {
		return fmt.Errorf("load snapshot: %w", err)
	}
	return a.pipeline.Publish(ctx, snap)
}

// Watch runs the pipeline on the configured interval until ctx is done.
func (a *Application) Watch(ctx context.Context) error {
	if err := a.scheduler.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	return a.scheduler.Stop(context.Background())
}
