package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"catalogscraper/internal/model"
)

// ErrCorruptStore is returned when a daily file exists on disk but cannot be
// parsed as JSON. The file is left untouched so whatever is salvageable is
// not destroyed by a fresh write.
var ErrCorruptStore = errors.New("daily file is not valid JSON")

const tempFilePattern = "products-*.tmp"

// DailyFile maps string product identifiers to their merged records for one
// calendar day. It only grows within a day: new identifiers are appended and
// existing ones overwritten, never removed.
type DailyFile map[string]model.Product

// Upsert inserts or overwrites the record keyed by its identifier.
func (f DailyFile) Upsert(p model.Product) {
	f[p.Key()] = p
}

// DailyStore reads and writes one JSON file per calendar day under dir.
type DailyStore struct {
	dir string
}

func NewDailyStore(dir string) (*DailyStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory %s: %w", dir, err)
	}
	return &DailyStore{dir: dir}, nil
}

// Path returns the file path for the given day's file.
func (s *DailyStore) Path(day time.Time) string {
	return filepath.Join(s.dir, fmt.Sprintf("products_%s.json", day.Format("20060102")))
}

// Open loads the day's file if present, or an empty mapping otherwise.
func (s *DailyStore) Open(day time.Time) (DailyFile, error) {
	path := s.Path(day)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DailyFile{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var f DailyFile
	if err := json.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorruptStore, path, err)
	}
	if f == nil {
		f = DailyFile{}
	}
	return f, nil
}

// Flush serializes the full mapping back to the day's file. The write goes to
// a temp file in the same directory, is synced, then renamed over the target,
// so a crash mid-write never leaves a truncated file.
func (s *DailyStore) Flush(f DailyFile, day time.Time) error {
	path := s.Path(day)

	data, err := json.MarshalIndent(f, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal daily file: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, tempFilePattern)
	if err != nil {
		return fmt.Errorf("failed to create temp file in %s: %w", s.dir, err)
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmpPath, err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync %s: %w", tmpPath, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmpPath, err)
	}

	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to rename %s to %s: %w", tmpPath, path, err)
	}

	log.WithFields(log.Fields{
		"file":  path,
		"count": len(f),
	}).Debug("daily file flushed")
	return nil
}
