package rules

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultCompiles(t *testing.T) {
	t.Parallel()

	set, err := Default()
	require.NoError(t, err)

	assert.NotEmpty(t, set.Groups)
	assert.NotEmpty(t, set.Signals)
	assert.NotEmpty(t, set.Vendors)
	assert.NotEmpty(t, set.Actors)
	assert.True(t, set.IsStopword("the"))
	assert.False(t, set.IsStopword("ransomware"))
}

func TestLoadFromYAML(t *testing.T) {
	t.Parallel()

	raw := `
groups:
  - label: "Test Group"
    priority: 1
    keywords: ["testword"]
signals:
  - name: "test-signal"
    keywords: ["alarm"]
vendors:
  Acme: ["acme"]
actors: ["Test Actor"]
stopwords: ["and"]
`
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	set, err := Load(path)
	require.NoError(t, err)

	require.Len(t, set.Groups, 1)
	assert.True(t, set.Groups[0].Match("contains testword here"))
	assert.False(t, set.Groups[0].Match("nothing relevant"))
	assert.Equal(t, []string{"Acme"}, set.MatchVendors("acme breached"))
	assert.Equal(t, []string{"Test Actor"}, set.MatchActors("blamed on test actor"))
}

func TestLoadEmptyPathFallsBackToDefault(t *testing.T) {
	t.Parallel()

	set, err := Load("")
	require.NoError(t, err)
	assert.NotEmpty(t, set.Groups)
}

func TestLoadRejectsBadPattern(t *testing.T) {
	t.Parallel()

	raw := `
groups:
  - label: "Broken"
    patterns: ["["]
`
	path := filepath.Join(t.TempDir(), "rules.yaml")
	require.NoError(t, os.WriteFile(path, []byte(raw), 0o644))

	_, err := Load(path)
	assert.Error(t, err)
}
