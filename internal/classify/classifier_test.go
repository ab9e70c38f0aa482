package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SecNewsRadar/internal/rules"
)

func testSet(t *testing.T) *rules.Set {
	t.Helper()
	set, err := rules.Default()
	require.NoError(t, err)
	return set
}

func TestLabelsMultiLabel(t *testing.T) {
	t.Parallel()

	c := New(testSet(t))
	text := NormalizedText(
		"LockBit ransomware exploits CVE-2025-1111 in Windows servers",
		"The gang deployed the exploit against exchange server targets.")

	labels := c.Labels(text)
	assert.Contains(t, labels, "Ransomware")
	assert.Contains(t, labels, "Vulnerabilities / CVEs")
	assert.Contains(t, labels, "Windows / Microsoft")
	assert.Contains(t, labels, "Exploit / PoC")
}

func TestLabelsOrderIndependent(t *testing.T) {
	t.Parallel()

	set := testSet(t)
	c := New(set)
	text := NormalizedText("Ransomware hits linux kernel module vendors", "")

	first := c.Labels(text)

	// Reversing the rule declaration order must not change the result.
	reversed, err := rules.Default()
	require.NoError(t, err)
	for i, j := 0, len(reversed.Groups)-1; i < j; i, j = i+1, j-1 {
		reversed.Groups[i], reversed.Groups[j] = reversed.Groups[j], reversed.Groups[i]
	}
	second := New(reversed).Labels(text)

	assert.Equal(t, first, second)
}

func TestLabelsIdempotent(t *testing.T) {
	t.Parallel()

	c := New(testSet(t))
	text := NormalizedText("Phishing campaign drops infostealer malware", "")

	assert.Equal(t, c.Labels(text), c.Labels(text))
}

func TestLabelsNoMatch(t *testing.T) {
	t.Parallel()

	c := New(testSet(t))
	assert.Empty(t, c.Labels(NormalizedText("Company announces quarterly earnings call", "")))
}

func TestPrimaryLabelTieBreak(t *testing.T) {
	t.Parallel()

	set := &rules.Set{
		Groups: []rules.GroupRule{
			{Label: "Zebra", Priority: 1, Keywords: []string{"widget"}},
			{Label: "Apple", Priority: 1, Keywords: []string{"widget"}},
			{Label: "Urgent", Priority: 0, Keywords: []string{"gadget"}},
		},
	}
	require.NoError(t, rules.Compile(set))
	c := New(set)

	// Same tier: lexical order of the label decides.
	assert.Equal(t, "Apple", c.PrimaryLabel("a widget appeared"))
	// Lower tier wins regardless of declaration order.
	assert.Equal(t, "Urgent", c.PrimaryLabel("a widget and a gadget"))
	// The projection never shrinks the stored set.
	assert.Len(t, c.Labels("a widget and a gadget"), 3)
}

func TestCuratedFlagging(t *testing.T) {
	t.Parallel()

	f := NewFlagger(testSet(t))

	assert.True(t, f.Curated(NormalizedText("Zero-day actively exploited in Widget", "")))
	assert.False(t, f.Curated(NormalizedText("Company releases quarterly report", "")))
	assert.True(t, f.Curated(NormalizedText("Supply chain attack hits npm registry", "")))
}

func TestCuratedIndependentOfLabels(t *testing.T) {
	t.Parallel()

	set := testSet(t)
	text := NormalizedText("Zero-day actively exploited in Widget", "")

	withoutGroups, err := rules.Default()
	require.NoError(t, err)
	withoutGroups.Groups = nil
	require.NoError(t, rules.Compile(withoutGroups))

	assert.Equal(t,
		NewFlagger(set).Curated(text),
		NewFlagger(withoutGroups).Curated(text),
		"curated flag must not depend on the group taxonomy")
}

func TestMatchedSignals(t *testing.T) {
	t.Parallel()

	f := NewFlagger(testSet(t))
	names := f.MatchedSignals(NormalizedText("Zero-day actively exploited in Widget", ""))
	assert.Contains(t, names, "zero-day-disclosure")
	assert.Contains(t, names, "active-exploitation")
}
