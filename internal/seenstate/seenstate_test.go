package seenstate

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	return NewFileStore(filepath.Join(t.TempDir(), "seen.json"), discardLogger())
}

func TestLoad_MissingFileReturnsEmpty(t *testing.T) {
	s := newTestStore(t)

	state := s.Load()
	if state.Len() != 0 {
		t.Errorf("expected empty state, got %d ids", state.Len())
	}
	if state.LastUpdated.IsZero() {
		t.Error("expected LastUpdated to default to now")
	}
}

func TestLoad_CorruptFileReturnsEmpty(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "seen.json")
	if err := os.WriteFile(path, []byte(`{"seen_internships": [truncated`), 0o644); err != nil {
		t.Fatal(err)
	}

	state := NewFileStore(path, discardLogger()).Load()
	if state.Len() != 0 {
		t.Errorf("expected empty state from corrupt file, got %d ids", state.Len())
	}
}

func TestSaveThenLoad_RoundTrip(t *testing.T) {
	s := newTestStore(t)

	state := s.Load()
	state.Add("1")
	state.Add("2")
	state.Add("3")
	if err := s.Save(state); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded := s.Load()
	ids := loaded.IDs()
	sort.Strings(ids)
	if len(ids) != 3 || ids[0] != "1" || ids[1] != "2" || ids[2] != "3" {
		t.Errorf("round trip lost ids: %v", ids)
	}
	if loaded.LastUpdated.IsZero() {
		t.Error("expected LastUpdated to round trip")
	}
}

func TestSave_OverwritesPreviousState(t *testing.T) {
	s := newTestStore(t)

	first := s.Load()
	first.Add("old")
	if err := s.Save(first); err != nil {
		t.Fatalf("first Save: %v", err)
	}

	second := s.Load()
	second.Add("new")
	if err := s.Save(second); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	loaded := s.Load()
	if !loaded.Has("old") || !loaded.Has("new") {
		t.Errorf("expected both ids after grow-and-save, got %v", loaded.IDs())
	}
}

func TestSave_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	s := NewFileStore(filepath.Join(dir, "seen.json"), discardLogger())

	state := s.Load()
	state.Add("1")
	if err := s.Save(state); err != nil {
		t.Fatalf("Save: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != "seen.json" {
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("expected only seen.json in dir, got %v", names)
	}
}
