package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"SecNewsRadar/internal/config"
	"SecNewsRadar/internal/domain"
	"SecNewsRadar/internal/ports"
)

// BriefingWriter turns curated items into a daily briefing via an
// OpenAI-compatible chat API and writes it to a dated file plus a
// "latest" alias.
type BriefingWriter struct {
	endpoint     string
	model        string
	apiKey       string
	systemPrompt string
	outputDir    string
	httpClient   *http.Client
	clock        func() time.Time
}

var _ ports.BriefWriter = (*BriefingWriter)(nil)

// NewBriefingWriter builds a writer from configuration.
func NewBriefingWriter(cfg config.BriefingConfig, outputDir string) *BriefingWriter {
	return &BriefingWriter{
		endpoint:     cfg.Endpoint,
		model:        cfg.Model,
		apiKey:       cfg.APIKey,
		systemPrompt: cfg.SystemPrompt,
		outputDir:    outputDir,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
		clock: time.Now,
	}
}

// WriteBrief posts the curated items as a JSON digest and persists the
// returned briefing.
func (b *BriefingWriter) WriteBrief(ctx context.Context, items []domain.NewsItem) error {
	if b == nil {
		return fmt.Errorf("briefing writer is nil")
	}
	if b.apiKey == "" || b.endpoint == "" || b.model == "" {
		return fmt.Errorf("briefing writer misconfigured")
	}

	payload, err := digestJSON(items)
	if err != nil {
		return fmt.Errorf("build briefing payload: %w", err)
	}

	briefing, err := b.complete(ctx, payload)
	if err != nil {
		return err
	}

	return b.persist(briefing)
}

func (b *BriefingWriter) complete(ctx context.Context, payload []byte) (string, error) {
	body, err := json.Marshal(map[string]any{
		"model": b.model,
		"messages": []map[string]string{
			{"role": "system", "content": safePrompt(b.systemPrompt)},
			{"role": "user", "content": string(payload)},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal chat payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, b.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("new request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+b.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := b.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("request briefing: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return "", fmt.Errorf("chat api error %s: %s", resp.Status, strings.TrimSpace(string(detail)))
	}

	var parsed struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
		} `json:"choices"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode chat response: %w", err)
	}
	if len(parsed.Choices) == 0 || strings.TrimSpace(parsed.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("chat api returned no briefing content")
	}

	return parsed.Choices[0].Message.Content, nil
}

func (b *BriefingWriter) persist(briefing string) error {
	if err := os.MkdirAll(b.outputDir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", b.outputDir, err)
	}

	day := b.clock().UTC().Format("2006-01-02")
	dated := filepath.Join(b.outputDir, fmt.Sprintf("brief-%s.md", day))
	latest := filepath.Join(b.outputDir, "latest.md")

	if err := writeAtomic(dated, []byte(briefing)); err != nil {
		return err
	}
	return writeAtomic(latest, []byte(briefing))
}

func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

func digestJSON(items []domain.NewsItem) ([]byte, error) {
	type entry struct {
		Title   string   `json:"title"`
		Link    string   `json:"link"`
		Source  string   `json:"source"`
		Summary string   `json:"summary"`
		Groups  []string `json:"smart_groups"`
		CVEs    []string `json:"cves,omitempty"`
	}

	payload := make([]entry, 0, len(items))
	for _, item := range items {
		payload = append(payload, entry{
			Title:   item.Title,
			Link:    item.Link,
			Source:  item.Source,
			Summary: item.Summary,
			Groups:  item.SmartGroups,
			CVEs:    item.CVEs,
		})
	}

	return json.Marshal(payload)
}

func safePrompt(prompt string) string {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "You are a security analyst. Write a concise daily briefing from the high-signal news items you receive."
	}
	return prompt
}
