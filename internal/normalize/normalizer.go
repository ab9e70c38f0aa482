// Package normalize turns raw feed entries into canonical news items
// with a stable identity.
package normalize

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"SecNewsRadar/internal/domain"
)

var whitespace = regexp.MustCompile(`\s+`)

// Accepted published-at layouts, tried in order. Feeds are wildly
// inconsistent here; RFC1123 variants cover most RSS, RFC3339 most Atom.
var timeLayouts = []string{
	time.RFC3339,
	time.RFC1123Z,
	time.RFC1123,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// Normalizer converts raw entries into NewsItems. Malformed entries are
// skipped with a warning and never abort the run.
type Normalizer struct {
	logger *slog.Logger
}

// New builds a Normalizer; logger may be nil.
func New(logger *slog.Logger) *Normalizer {
	return &Normalizer{logger: logger}
}

// Normalize converts one raw entry. It returns an error when the entry
// is missing a link or title or carries no parsable timestamp.
func (n *Normalizer) Normalize(raw domain.RawEntry) (domain.NewsItem, error) {
	title := strings.TrimSpace(raw.Title)
	link := strings.TrimSpace(raw.Link)
	if link == "" || title == "" {
		return domain.NewsItem{}, fmt.Errorf("entry missing link or title (source %s)", raw.Source)
	}

	published, err := ParseTime(raw.Published)
	if err != nil {
		return domain.NewsItem{}, fmt.Errorf("entry %s: %w", link, err)
	}

	return domain.NewsItem{
		ID:          Identity(link, title),
		Title:       title,
		Link:        link,
		Summary:     CleanSummary(raw.Summary),
		Source:      raw.Source,
		Category:    raw.Category,
		PublishedAt: published.UTC(),
	}, nil
}

// NormalizeAll converts a batch, skipping malformed entries with a
// warning.
func (n *Normalizer) NormalizeAll(raw []domain.RawEntry) []domain.NewsItem {
	items := make([]domain.NewsItem, 0, len(raw))
	for _, entry := range raw {
		item, err := n.Normalize(entry)
		if err != nil {
			n.warn("skipping malformed entry", "error", err)
			continue
		}
		items = append(items, item)
	}
	return items
}

// Identity computes the stable dedup key: a truncated sha256 over the
// lower-cased, whitespace-collapsed link and title.
func Identity(link, title string) string {
	canonical := fold(link) + "\n" + fold(title)
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:8])
}

// ParseTime parses a feed timestamp, trying common layouts. Zone-less
// layouts are interpreted as UTC.
func ParseTime(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}

	for _, layout := range timeLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("unparsable timestamp %q", value)
}

// CleanSummary strips HTML markup from a feed summary and collapses
// whitespace.
func CleanSummary(raw string) string {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(raw))
	if err != nil {
		return strings.TrimSpace(whitespace.ReplaceAllString(raw, " "))
	}

	text := doc.Text()
	return strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
}

func fold(value string) string {
	return whitespace.ReplaceAllString(strings.ToLower(strings.TrimSpace(value)), " ")
}

func (n *Normalizer) warn(msg string, args ...any) {
	if n.logger != nil {
		n.logger.Warn(msg, args...)
	}
}
