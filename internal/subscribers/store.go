package subscribers

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// FileStore is the CSV file the subscription API appends to. Created with a
// header on first touch; rows are only ever appended.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the CSV at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the location of the backing file.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) ensure() error {
	if _, err := os.Stat(s.path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("checking subscribers file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("creating subscribers dir: %w", err)
	}
	f, err := os.Create(s.path)
	if err != nil {
		return fmt.Errorf("creating subscribers file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{"email", "created_at_iso"}); err != nil {
		return fmt.Errorf("writing subscribers header: %w", err)
	}
	w.Flush()
	return w.Error()
}

// Emails returns the lowercased set of addresses already on file.
func (s *FileStore) Emails() (map[string]bool, error) {
	if err := s.ensure(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("opening subscribers file: %w", err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = -1
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("reading subscribers file: %w", err)
	}

	emails := make(map[string]bool)
	for i, row := range records {
		if i == 0 || len(row) == 0 {
			continue
		}
		email := strings.ToLower(strings.TrimSpace(row[0]))
		if email != "" {
			emails[email] = true
		}
	}
	return emails, nil
}

// Add appends an address with a creation timestamp. It reports whether the
// address was new; existing addresses are left alone.
func (s *FileStore) Add(email string) (bool, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || !strings.Contains(email, "@") {
		return false, fmt.Errorf("invalid email %q", email)
	}

	existing, err := s.Emails()
	if err != nil {
		return false, err
	}
	if existing[email] {
		return false, nil
	}

	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return false, fmt.Errorf("opening subscribers file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write([]string{email, time.Now().UTC().Format(time.RFC3339)}); err != nil {
		return false, fmt.Errorf("appending subscriber: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return false, fmt.Errorf("appending subscriber: %w", err)
	}
	return true, nil
}

// CSV returns the raw file contents for serving.
func (s *FileStore) CSV() ([]byte, error) {
	if err := s.ensure(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("reading subscribers file: %w", err)
	}
	return data, nil
}
