package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SecNewsRadar/internal/config"
	"SecNewsRadar/internal/domain"
)

func TestWriteBrief(t *testing.T) {
	t.Parallel()

	var gotAuth string
	var gotBody map[string]any
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		_ = json.NewEncoder(w).Encode(map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": "# Daily briefing\n\nOne item."}},
			},
		})
	}))
	defer srv.Close()

	dir := t.TempDir()
	w := NewBriefingWriter(config.BriefingConfig{
		Endpoint: srv.URL,
		Model:    "gpt-4o-mini",
		APIKey:   "key",
	}, dir)
	w.clock = func() time.Time { return time.Date(2025, 11, 10, 8, 0, 0, 0, time.UTC) }

	items := []domain.NewsItem{{
		Title:       "Zero-day actively exploited in Widget",
		Link:        "https://feeds.example.com/widget",
		SmartGroups: []string{"vulns"},
		Curated:     true,
	}}
	require.NoError(t, w.WriteBrief(context.Background(), items))

	assert.Equal(t, "Bearer key", gotAuth)
	assert.Equal(t, "gpt-4o-mini", gotBody["model"])

	dated, err := os.ReadFile(filepath.Join(dir, "brief-2025-11-10.md"))
	require.NoError(t, err)
	assert.Equal(t, "# Daily briefing\n\nOne item.", string(dated))

	latest, err := os.ReadFile(filepath.Join(dir, "latest.md"))
	require.NoError(t, err)
	assert.Equal(t, string(dated), string(latest), "latest alias mirrors the dated briefing")
}

func TestWriteBriefAPIError(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "quota exceeded", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	w := NewBriefingWriter(config.BriefingConfig{
		Endpoint: srv.URL,
		Model:    "gpt-4o-mini",
		APIKey:   "key",
	}, t.TempDir())

	err := w.WriteBrief(context.Background(), []domain.NewsItem{{Title: "x"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "quota exceeded")
}

func TestWriteBriefMisconfigured(t *testing.T) {
	t.Parallel()

	w := NewBriefingWriter(config.BriefingConfig{}, t.TempDir())
	assert.Error(t, w.WriteBrief(context.Background(), nil))
}
