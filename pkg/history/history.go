// Package history records install invocations in a local JSON file.
//
// The file lives under XDG_STATE_HOME/depkit (default ~/.local/state/depkit)
// and keeps one entry per install, newest last on disk.
package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/depkit/depkit/pkg/errors"
)

const fileName = "history.json"

// Entry is one recorded install invocation.
type Entry struct {
	ID       string    `json:"id"`
	Time     time.Time `json:"time"`
	Dir      string    `json:"dir"`
	Packages []string  `json:"packages"`
	SaveDev  bool      `json:"save_dev"`
}

// Store persists entries to a single JSON file. Safe for concurrent use
// within one process.
type Store struct {
	mu   sync.Mutex
	path string
}

// DefaultDir returns the state directory, honoring XDG_STATE_HOME.
func DefaultDir() (string, error) {
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, "depkit"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", "depkit"), nil
}

// NewStore creates a store rooted at dir, creating the directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create history directory")
	}
	return &Store{path: filepath.Join(dir, fileName)}, nil
}

// Append records a new entry. The ID and timestamp are assigned here.
func (s *Store) Append(e Entry) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return Entry{}, err
	}

	e.ID = uuid.NewString()
	if e.Time.IsZero() {
		e.Time = time.Now().UTC()
	}
	entries = append(entries, e)

	if err := s.write(entries); err != nil {
		return Entry{}, err
	}
	return e, nil
}

// List returns entries newest first. A limit <= 0 returns all entries.
func (s *Store) List(limit int) ([]Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.read()
	if err != nil {
		return nil, err
	}

	slices.Reverse(entries)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

// Clear removes all recorded entries.
func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeInternal, err, "clear history")
	}
	return nil
}

// Path returns the location of the history file.
func (s *Store) Path() string {
	return s.path
}

func (s *Store) read() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "read history")
	}

	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		// A corrupt history file is not worth failing installs over.
		return nil, nil
	}
	return entries, nil
}

func (s *Store) write(entries []Entry) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "encode history")
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "write history")
	}
	return nil
}
