package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SecNewsRadar/internal/rules"
)

func testExtractor(t *testing.T) *Extractor {
	t.Helper()
	set, err := rules.Default()
	require.NoError(t, err)
	return New(set)
}

func TestCVEs(t *testing.T) {
	t.Parallel()

	assert.Equal(t, []string{"CVE-2023-1234"}, CVEs("cve-2023-1234 affects Product X"))
	assert.Empty(t, CVEs("no vulnerabilities here"))

	// Duplicates collapse, case normalizes, short sequence numbers are
	// rejected.
	got := CVEs("CVE-2024-99999 and cve-2024-99999 but not CVE-2024-123")
	assert.Equal(t, []string{"CVE-2024-99999"}, got)
}

func TestVendorWholeWord(t *testing.T) {
	t.Parallel()

	e := testExtractor(t)

	hits := e.set.MatchVendors("critical flaw in cisco routers patched")
	assert.Equal(t, []string{"Cisco"}, hits)

	// "francisco" must not match the vendor term "cisco".
	assert.Empty(t, e.set.MatchVendors("san francisco conference recap"))
}

func TestActorExtraction(t *testing.T) {
	t.Parallel()

	e := testExtractor(t)

	hits := e.set.MatchActors("lazarus group activity overlaps with apt38 and storm-0501")
	assert.Contains(t, hits, "Lazarus Group")
	assert.Contains(t, hits, "APT38")
	assert.Contains(t, hits, "STORM-0501")
}

func TestKeywordsDropStopwordsAndShortTokens(t *testing.T) {
	t.Parallel()

	e := testExtractor(t)

	got := e.Keywords("the new ransomware campaign hits eu banks")
	assert.Contains(t, got, "ransomware")
	assert.Contains(t, got, "campaign")
	assert.Contains(t, got, "banks")
	assert.NotContains(t, got, "the", "stopword")
	assert.NotContains(t, got, "new", "stopword")
	assert.NotContains(t, got, "eu", "below minimum length")
}

func TestExtractBundlesAllPasses(t *testing.T) {
	t.Parallel()

	e := testExtractor(t)
	result := e.Extract("lazarus group abuses cve-2025-0001 in microsoft azure tenants")

	assert.Equal(t, []string{"CVE-2025-0001"}, result.CVEs)
	assert.Contains(t, result.Vendors, "Microsoft")
	assert.Contains(t, result.Actors, "Lazarus Group")
	assert.NotEmpty(t, result.Keywords)
}

func TestExtractEmptyText(t *testing.T) {
	t.Parallel()

	e := testExtractor(t)
	result := e.Extract("")

	assert.Empty(t, result.CVEs)
	assert.Empty(t, result.Vendors)
	assert.Empty(t, result.Actors)
	assert.Empty(t, result.Keywords)
}

func TestTrendingTerms(t *testing.T) {
	t.Parallel()

	e := testExtractor(t)

	hits := e.TrendingTerms("ransomware crew claims double extortion data breach")
	assert.Contains(t, hits, "Ransomware")
	assert.Contains(t, hits, "Double extortion")
	assert.Contains(t, hits, "Data breach")
	assert.NotContains(t, hits, "Phishing")
}
