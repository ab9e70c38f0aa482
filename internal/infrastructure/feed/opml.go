package feed

import (
	"encoding/xml"
	"fmt"
	"os"
	"regexp"
	"strings"

	"SecNewsRadar/internal/source"
)

// Group is one OPML outline group: a named set of feeds sharing a
// category slug.
type Group struct {
	Title    string
	Category string
	Strategy string
	Feeds    []source.FeedRef
}

// categorySlugs maps known OPML group titles to stable category slugs.
// Unknown titles fall back to slugify.
var categorySlugs = map[string]string{
	"Crypto & Blockchain Security":    "crypto",
	"Cybercrime, Darknet & Leaks":     "cybercrime",
	"DFIR & Forensics":                "dfir",
	"General Security & Blogs":        "general",
	"General Security":                "general",
	"Government, CERT & Advisories":   "government",
	"Government, CERT":                "government",
	"Leaks & Breaches":                "leaks",
	"Malware":                         "malware",
	"Threat Intel":                    "threat_intel",
	"Malware Analysis":                "malware_analysis",
	"OSINT, Communities & Subreddits": "osint",
	"OSINT & Communities":             "osint",
	"Podcasts & YouTube":              "podcasts",
	"Podcasts":                        "podcasts",
	"Vendors & Product Blogs":         "vendors",
	"Vendors":                         "vendors",
	"Vulnerabilities & CVEs":          "vulns",
	"Exploits":                        "exploits",
	"Vulnerability Advisories":        "vuln_advisories",
}

var nonSlug = regexp.MustCompile(`[^a-z0-9]+`)

type opmlOutline struct {
	Title    string        `xml:"title,attr"`
	Text     string        `xml:"text,attr"`
	XMLURL   string        `xml:"xmlUrl,attr"`
	Outlines []opmlOutline `xml:"outline"`
}

type opmlDoc struct {
	XMLName xml.Name `xml:"opml"`
	Body    struct {
		Outlines []opmlOutline `xml:"outline"`
	} `xml:"body"`
}

// ParseOPML reads an OPML feed catalog and returns its groups. Feeds
// without an xmlUrl are ignored.
func ParseOPML(path string) ([]Group, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read opml %s: %w", path, err)
	}

	var doc opmlDoc
	if err := xml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse opml %s: %w", path, err)
	}

	var groups []Group
	for _, outline := range doc.Body.Outlines {
		title := outline.Title
		if title == "" {
			title = outline.Text
		}
		if title == "" {
			title = "General"
		}

		group := Group{
			Title:    title,
			Category: CategorySlug(title),
			Strategy: "rss",
		}
		for _, child := range outline.Outlines {
			if child.XMLURL == "" {
				continue
			}
			feedTitle := child.Title
			if feedTitle == "" {
				feedTitle = child.Text
			}
			if feedTitle == "" {
				feedTitle = child.XMLURL
			}
			group.Feeds = append(group.Feeds, source.FeedRef{Title: feedTitle, URL: child.XMLURL})
		}
		if len(group.Feeds) > 0 {
			groups = append(groups, group)
		}
	}

	return groups, nil
}

// CategorySlug resolves a group title to its category slug.
func CategorySlug(title string) string {
	title = strings.TrimSpace(title)
	if slug, ok := categorySlugs[title]; ok {
		return slug
	}
	return slugify(title)
}

func slugify(text string) string {
	slug := nonSlug.ReplaceAllString(strings.ToLower(text), "-")
	slug = strings.Trim(slug, "-")
	if slug == "" {
		return "unknown"
	}
	return slug
}
