package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Urushihara24/exportum/internal/metrics"
)

// Persister abstracts the durable snapshot medium. Each named aggregate
// is written as a full replacement; the only integrity guarantee is
// last write wins.
type Persister interface {
	// Save writes a full snapshot of the named aggregate.
	Save(name string, v any) error
	// Load reads the named aggregate into v. A missing or unreadable
	// snapshot is reported as found=false, never as an error.
	Load(name string, v any) (found bool, err error)
}

// FilePersister stores each aggregate as a JSON file in a directory.
// Writes go through a temp file and rename so a crash mid-write leaves
// the previous snapshot intact, and are retried a bounded number of
// times before being logged as a durability warning.
type FilePersister struct {
	dir     string
	retries int
	logger  *slog.Logger
}

// NewFilePersister creates the data directory if needed and returns a
// persister writing into it.
func NewFilePersister(dir string, logger *slog.Logger) (*FilePersister, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	return &FilePersister{dir: dir, retries: 3, logger: logger}, nil
}

// Save marshals v and replaces the named snapshot file atomically.
func (p *FilePersister) Save(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot %s: %w", name, err)
	}

	path := filepath.Join(p.dir, name+".json")
	tmp := path + ".tmp"

	var lastErr error
	for attempt := 1; attempt <= p.retries; attempt++ {
		if lastErr = p.writeAndRename(tmp, path, data); lastErr == nil {
			return nil
		}
		time.Sleep(time.Duration(attempt) * 50 * time.Millisecond)
	}

	metrics.SnapshotFailures.Inc()
	p.logger.Warn("snapshot write failed, in-memory state remains authoritative",
		slog.String("snapshot", name),
		slog.String("error", lastErr.Error()))
	return fmt.Errorf("write snapshot %s: %w", name, lastErr)
}

func (p *FilePersister) writeAndRename(tmp, path string, data []byte) error {
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// Load reads the named snapshot file. Missing and corrupt files are
// both treated as "collection absent": corrupt files additionally log
// a warning. Startup never fails on a bad snapshot.
func (p *FilePersister) Load(name string, v any) (bool, error) {
	path := filepath.Join(p.dir, name+".json")
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		p.logger.Warn("snapshot unreadable, starting from empty collection",
			slog.String("snapshot", name),
			slog.String("error", err.Error()))
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		p.logger.Warn("snapshot corrupt, starting from empty collection",
			slog.String("snapshot", name),
			slog.String("error", err.Error()))
		return false, nil
	}
	return true, nil
}

// NopPersister keeps nothing. Used by tests that exercise the stores
// and engine without a filesystem.
type NopPersister struct{}

func (NopPersister) Save(string, any) error { return nil }

func (NopPersister) Load(string, any) (bool, error) { return false, nil }
