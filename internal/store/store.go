// Package store implements the per-project collection store: generic
// load/save with schema-tolerant backfilling, monotonic ID allocation, and
// the CRUD surface for all five record kinds.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/quietriot-sec/fieldcase/internal/observability"
	"github.com/quietriot-sec/fieldcase/internal/project"
)

// Collection file locations relative to the project root.
const (
	todosFile    = "notes/todos.json"
	pluginsFile  = "findings/plugins.json"
	ajaxFile     = "findings/ajax_actions.json"
	assetsFile   = "findings/assets.json"
	findingsFile = "findings/general_findings.json"
)

// Store provides collection access for one project. It is not safe for
// concurrent use; the design assumes a single operator.
type Store struct {
	project *project.Project
	log     *zap.Logger
	now     func() time.Time

	// lastID tracks the highest ID handed out per collection during this
	// store's lifetime, so removing the newest record does not free its ID
	// for reuse.
	lastID map[string]int
}

// New returns a store for the given project. A nil logger falls back to the
// global one.
func New(p *project.Project, log *zap.Logger) *Store {
	if log == nil {
		log = observability.Logger()
	}
	return &Store{
		project: p,
		log:     log,
		now:     func() time.Time { return time.Now().UTC() },
		lastID:  make(map[string]int),
	}
}

// WithClock replaces the store's UTC clock. Intended for tests.
func (s *Store) WithClock(now func() time.Time) *Store {
	s.now = now
	return s
}

// Project returns the project this store operates on.
func (s *Store) Project() *project.Project {
	return s.project
}

// Now returns the store's current UTC time.
func (s *Store) Now() time.Time {
	return s.now()
}

// nextID allocates max(existing IDs, previously allocated IDs) + 1 for the
// named collection. IDs are never reissued within this store's lifetime,
// even after the record holding the maximum ID is removed.
func (s *Store) nextID(collection string, ids []int) int {
	max := s.lastID[collection]
	for _, id := range ids {
		if id > max {
			max = id
		}
	}
	next := max + 1
	s.lastID[collection] = next
	return next
}

// loadCollection reads a collection file and decodes it record by record.
// A missing file yields an empty collection. A file that fails to parse as
// a JSON array is logged and treated as empty. Records that fail to decode
// individually are skipped with a warning so one bad record cannot take the
// rest of the collection with it. Every decoded record is backfilled.
func loadCollection[T any](s *Store, relPath string, backfill func(*T, time.Time)) []T {
	path := s.project.Path(relPath)
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.log.Warn("collection unreadable, treating as empty",
				zap.String("path", path), zap.Error(err))
		}
		return nil
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		s.log.Warn("collection corrupt, treating as empty",
			zap.String("path", path), zap.Error(err))
		return nil
	}

	now := s.now()
	out := make([]T, 0, len(raws))
	for i, raw := range raws {
		var rec T
		if err := json.Unmarshal(raw, &rec); err != nil {
			s.log.Warn("skipping malformed record",
				zap.String("path", path), zap.Int("index", i), zap.Error(err))
			continue
		}
		backfill(&rec, now)
		out = append(out, rec)
	}
	return out
}

// saveCollection writes the full collection as a pretty-printed JSON array
// using the temp-file, fsync, rename pattern. Parent directories are
// created if absent.
func saveCollection[T any](s *Store, relPath string, records []T) error {
	path := s.project.Path(relPath)
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating collection dir: %w", err)
	}

	if records == nil {
		records = []T{}
	}
	data, err := json.MarshalIndent(records, "", "    ")
	if err != nil {
		return fmt.Errorf("encoding collection: %w", err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(dir, ".collection-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing collection: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
