// Package store persists snapshots, archive partitions, and trend
// reports as JSON files. Every write goes through a temp-file-then-
// rename so an interrupted run never leaves a partially written file
// visible to readers.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"SecNewsRadar/internal/domain"
	"SecNewsRadar/internal/ports"
)

const (
	snapshotFile = "news_recent.json"
	trendsFile   = "trends.json"
	monthlyDir   = "archive/monthly"
	yearlyDir    = "archive/yearly"
	curatedDir   = "archive/curated"
)

// JSONStore reads and writes the pipeline's data files under one root
// directory.
type JSONStore struct {
	root string
}

var (
	_ ports.SnapshotStore = (*JSONStore)(nil)
	_ ports.ArchiveStore  = (*JSONStore)(nil)
	_ ports.TrendSink     = (*JSONStore)(nil)
)

// New builds a JSONStore rooted at dir.
func New(dir string) *JSONStore {
	return &JSONStore{root: dir}
}

// LoadSnapshot reads the recent snapshot; a missing file yields an
// empty snapshot, not an error.
func (s *JSONStore) LoadSnapshot() (domain.Snapshot, error) {
	var snap domain.Snapshot
	err := s.readJSON(filepath.Join(s.root, snapshotFile), &snap)
	if os.IsNotExist(err) {
		return domain.Snapshot{}, nil
	}
	if err != nil {
		return domain.Snapshot{}, err
	}
	return snap, nil
}

// SaveSnapshot atomically replaces the recent snapshot.
func (s *JSONStore) SaveSnapshot(snap domain.Snapshot) error {
	return s.writeJSON(filepath.Join(s.root, snapshotFile), snap)
}

// LoadPartition reads one partition by period ("YYYY-MM" or "YYYY").
// A period that has never been written yields an empty partition.
func (s *JSONStore) LoadPartition(period string) (domain.Partition, error) {
	path, err := s.partitionPath(period)
	if err != nil {
		return domain.Partition{}, err
	}

	var p domain.Partition
	err = s.readJSON(path, &p)
	if os.IsNotExist(err) {
		return domain.Partition{Period: period}, nil
	}
	if err != nil {
		return domain.Partition{}, err
	}
	return p, nil
}

// SavePartition atomically replaces one partition file.
func (s *JSONStore) SavePartition(p domain.Partition) error {
	path, err := s.partitionPath(p.Period)
	if err != nil {
		return err
	}
	return s.writeJSON(path, p)
}

// SaveCurated atomically replaces the curated signal pack of a
// partition.
func (s *JSONStore) SaveCurated(p domain.Partition) error {
	path, err := s.curatedPath(p.Period)
	if err != nil {
		return err
	}
	return s.writeJSON(path, p)
}

// MonthsOfYear lists the monthly periods present on disk for a year,
// sorted ascending.
func (s *JSONStore) MonthsOfYear(year string) ([]string, error) {
	dir := filepath.Join(s.root, monthlyDir, year)
	files, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	var months []string
	for _, f := range files {
		name := f.Name()
		if f.IsDir() || !strings.HasSuffix(name, ".json") {
			continue
		}
		months = append(months, strings.TrimSuffix(name, ".json"))
	}
	sort.Strings(months)
	return months, nil
}

// SaveTrends atomically replaces the trend report file.
func (s *JSONStore) SaveTrends(set domain.TrendSet) error {
	return s.writeJSON(filepath.Join(s.root, trendsFile), set)
}

func (s *JSONStore) partitionPath(period string) (string, error) {
	switch {
	case len(period) == 7: // YYYY-MM
		return filepath.Join(s.root, monthlyDir, period[:4], period+".json"), nil
	case len(period) == 4: // YYYY
		return filepath.Join(s.root, yearlyDir, period+".json"), nil
	default:
		return "", fmt.Errorf("invalid partition period %q", period)
	}
}

func (s *JSONStore) curatedPath(period string) (string, error) {
	switch {
	case len(period) == 7:
		return filepath.Join(s.root, curatedDir, period[:4], period+".json"), nil
	case len(period) == 4:
		return filepath.Join(s.root, curatedDir, period+".json"), nil
	default:
		return "", fmt.Errorf("invalid partition period %q", period)
	}
}

func (s *JSONStore) readJSON(path string, v any) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}

// writeJSON writes v to a temp file in the target directory and renames
// it into place. Rename within one directory is atomic on POSIX, so a
// previously committed file survives any mid-write failure.
func (s *JSONStore) writeJSON(path string, v any) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}

	raw, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", path, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(raw); err != nil {
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
