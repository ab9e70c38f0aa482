package feed

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"SecNewsRadar/internal/domain"
	"SecNewsRadar/internal/source"
)

const (
	defaultFetchTimeout = 20 * time.Second
	fetchAttempts       = 3
	retryBackoff        = 2 * time.Second
)

// RSSSource fetches RSS/Atom feeds with gofeed. A feed that keeps
// failing after bounded retries is skipped for the run; the group and
// the run carry on.
type RSSSource struct {
	client *http.Client
	logger *slog.Logger
}

// NewRSSSource wires an HTTP client; a nil client gets a default with a
// fetch timeout.
func NewRSSSource(client *http.Client, logger *slog.Logger) *RSSSource {
	if client == nil {
		client = &http.Client{Timeout: defaultFetchTimeout}
	}
	return &RSSSource{client: client, logger: logger}
}

// Name identifies the strategy inside the registry.
func (s *RSSSource) Name() string {
	return "rss"
}

// Fetch walks every feed of the group and returns the raw entries it
// could collect. Per-feed failures are logged and absorbed.
func (s *RSSSource) Fetch(ctx context.Context, req source.Request) ([]domain.RawEntry, error) {
	parser := gofeed.NewParser()
	parser.Client = s.client
	parser.UserAgent = "SecNewsRadar/1.0"

	var entries []domain.RawEntry
	for _, ref := range req.Feeds {
		parsed, err := s.fetchFeed(ctx, parser, ref.URL)
		if err != nil {
			s.warn("feed skipped", "feed", ref.Title, "url", ref.URL, "error", err)
			continue
		}

		for _, item := range parsed.Items {
			if item == nil {
				continue
			}
			entries = append(entries, toRawEntry(item, ref.Title, req.Category))
		}
		s.debug("feed fetched", "feed", ref.Title, "entries", len(parsed.Items))
	}

	return entries, nil
}

func (s *RSSSource) fetchFeed(ctx context.Context, parser *gofeed.Parser, url string) (*gofeed.Feed, error) {
	var lastErr error
	for attempt := 1; attempt <= fetchAttempts; attempt++ {
		parsed, err := parser.ParseURLWithContext(url, ctx)
		if err == nil {
			return parsed, nil
		}
		lastErr = err
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		if attempt < fetchAttempts {
			select {
			case <-time.After(time.Duration(attempt) * retryBackoff):
			case <-ctx.Done():
				return nil, ctx.Err()
			}
		}
	}
	return nil, lastErr
}

func toRawEntry(item *gofeed.Item, feedTitle, category string) domain.RawEntry {
	published := item.Published
	if item.PublishedParsed != nil {
		published = item.PublishedParsed.UTC().Format(time.RFC3339)
	} else if item.UpdatedParsed != nil {
		published = item.UpdatedParsed.UTC().Format(time.RFC3339)
	} else if published == "" {
		published = item.Updated
	}

	summary := item.Description
	if summary == "" {
		summary = item.Content
	}

	return domain.RawEntry{
		Title:     item.Title,
		Link:      item.Link,
		Published: published,
		Summary:   summary,
		Source:    feedTitle,
		Category:  category,
	}
}

func (s *RSSSource) warn(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Warn(msg, args...)
	}
}

func (s *RSSSource) debug(msg string, args ...any) {
	if s.logger != nil {
		s.logger.Debug(msg, args...)
	}
}
