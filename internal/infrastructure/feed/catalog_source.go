package feed

import (
	"context"
	"fmt"
	"log/slog"

	"SecNewsRadar/internal/domain"
	"SecNewsRadar/internal/ports"
	"SecNewsRadar/internal/source"
)

// CatalogSource implements ports.EntrySource by walking the feed
// catalog and executing the registered strategy of each group.
type CatalogSource struct {
	registry *source.Registry
	groups   []Group
	logger   *slog.Logger
}

var _ ports.EntrySource = (*CatalogSource)(nil)

// NewCatalogSource wires the source registry with catalog groups.
func NewCatalogSource(reg *source.Registry, groups []Group, logger *slog.Logger) *CatalogSource {
	return &CatalogSource{registry: reg, groups: groups, logger: logger}
}

// FetchEntries iterates over the catalog groups and aggregates their
// raw entries. A group whose strategy fails wholesale is skipped; the
// run never aborts because of one group.
func (c *CatalogSource) FetchEntries(ctx context.Context) ([]domain.RawEntry, error) {
	if c.registry == nil {
		return nil, fmt.Errorf("source registry is not configured")
	}

	c.debug("fetch entries", "groups", len(c.groups))

	var aggregated []domain.RawEntry
	for _, group := range c.groups {
		strategy := group.Strategy
		if strategy == "" {
			strategy = "rss"
		}

		src, err := c.registry.Resolve(strategy)
		if err != nil {
			c.warn("group skipped", "group", group.Title, "error", err)
			continue
		}

		req := source.Request{
			GroupName: group.Title,
			Category:  group.Category,
			Feeds:     group.Feeds,
		}
		entries, err := src.Fetch(ctx, req)
		if err != nil {
			c.warn("group fetch failed", "group", group.Title, "error", err)
			continue
		}

		c.debug("group fetched", "group", group.Title, "entries", len(entries))
		aggregated = append(aggregated, entries...)
	}

	c.debug("catalog source done", "total_entries", len(aggregated))
	return aggregated, nil
}

func (c *CatalogSource) warn(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Warn(msg, args...)
	}
}

func (c *CatalogSource) debug(msg string, args ...any) {
	if c.logger != nil {
		c.logger.Debug(msg, args...)
	}
}
