package feed

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleOPML = `<?xml version="1.0" encoding="UTF-8"?>
<opml version="1.0">
  <head><title>Security Feeds</title></head>
  <body>
    <outline title="Threat Intel" text="Threat Intel">
      <outline title="Intel Blog" text="Intel Blog" xmlUrl="https://intel.example.com/rss"/>
      <outline title="No URL" text="No URL"/>
    </outline>
    <outline title="Custom Research Group">
      <outline xmlUrl="https://research.example.com/feed" text="Research Feed"/>
    </outline>
    <outline title="Empty Group"/>
  </body>
</opml>`

func TestParseOPML(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "feeds.xml")
	require.NoError(t, os.WriteFile(path, []byte(sampleOPML), 0o644))

	groups, err := ParseOPML(path)
	require.NoError(t, err)
	require.Len(t, groups, 2, "empty groups and url-less feeds are dropped")

	intel := groups[0]
	assert.Equal(t, "Threat Intel", intel.Title)
	assert.Equal(t, "threat_intel", intel.Category)
	assert.Equal(t, "rss", intel.Strategy)
	require.Len(t, intel.Feeds, 1)
	assert.Equal(t, "Intel Blog", intel.Feeds[0].Title)
	assert.Equal(t, "https://intel.example.com/rss", intel.Feeds[0].URL)

	custom := groups[1]
	assert.Equal(t, "custom-research-group", custom.Category, "unknown titles slugify")
	assert.Equal(t, "Research Feed", custom.Feeds[0].Title)
}

func TestParseOPMLMissingFile(t *testing.T) {
	t.Parallel()

	_, err := ParseOPML(filepath.Join(t.TempDir(), "absent.xml"))
	assert.Error(t, err)
}

func TestCategorySlug(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "vulns", CategorySlug("Vulnerabilities & CVEs"))
	assert.Equal(t, "government", CategorySlug("Government, CERT"))
	assert.Equal(t, "my-odd-group", CategorySlug("My Odd  Group!"))
	assert.Equal(t, "unknown", CategorySlug("!!!"))
}
