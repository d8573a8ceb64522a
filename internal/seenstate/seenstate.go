// Package seenstate persists the set of already-reported listing IDs between
// runs. The on-disk format matches the watcher's original state file:
//
//	{"seen_internships": ["1", "2"], "last_updated": "2026-08-31T10:00:00Z"}
package seenstate

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/Monika-msk/vtu-internyet/internal/model"
)

// FileStore reads and writes SeenState as a JSON file.
type FileStore struct {
	path   string
	logger *slog.Logger
}

// NewFileStore creates a store backed by the JSON file at path. The file is
// created on first Save.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	return &FileStore{path: path, logger: logger}
}

var _ model.SeenStore = (*FileStore)(nil)

type fileFormat struct {
	SeenInternships []string `json:"seen_internships"`
	LastUpdated     string   `json:"last_updated"`
}

// Load reads the durable seen set. A missing or unparseable file degrades to
// an empty state stamped with the current time; Load never fails.
func (s *FileStore) Load() *model.SeenState {
	state := model.NewSeenState()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if !os.IsNotExist(err) {
			s.logger.Error("reading seen state, starting empty", "path", s.path, "error", err)
		}
		return state
	}

	var ff fileFormat
	if err := json.Unmarshal(data, &ff); err != nil {
		s.logger.Error("parsing seen state, starting empty", "path", s.path, "error", err)
		return state
	}

	for _, id := range ff.SeenInternships {
		state.Add(id)
	}
	if ff.LastUpdated != "" {
		if t, err := time.Parse(time.RFC3339, ff.LastUpdated); err == nil {
			state.LastUpdated = t
		}
	}
	return state
}

// Save overwrites the durable representation. It writes to a temp file in the
// same directory and renames it into place, so a crash mid-write never leaves
// a half-written file to be parsed on the next Load.
func (s *FileStore) Save(state *model.SeenState) error {
	state.LastUpdated = time.Now()

	ff := fileFormat{
		SeenInternships: state.IDs(),
		LastUpdated:     state.LastUpdated.Format(time.RFC3339),
	}
	data, err := json.MarshalIndent(ff, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding seen state: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".seen-*.json")
	if err != nil {
		return fmt.Errorf("creating temp state file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing seen state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp state file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing seen state file: %w", err)
	}
	return nil
}
