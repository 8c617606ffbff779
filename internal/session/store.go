package session

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/charantej156/Air-Lines-Chat-Agent/internal/errors"
)

// State is the persisted registry state: exactly four independent slots.
// Everything else the client holds (criteria, offers, selection, outcomes) is
// transient and never written here.
type State struct {
	Token            string    `yaml:"token,omitempty"`
	Identity         *Identity `yaml:"identity,omitempty"`
	PrimarySessionID string    `yaml:"primary_session_id,omitempty"`
	WidgetSessionID  string    `yaml:"widget_session_id,omitempty"`
}

// Store persists registry state between runs.
type Store interface {
	// Load reads the persisted state. A missing backing file is not an
	// error: it returns the zero State.
	Load() (State, error)

	// Save writes the full state, replacing whatever was stored.
	Save(State) error

	// Clear removes all persisted state.
	Clear() error
}

// FileStore persists state as a YAML file.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// DefaultStatePath returns ~/.skyline/session.yaml, creating the directory.
func DefaultStatePath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	dir := filepath.Join(home, ".skyline")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create state directory: %w", err)
	}

	return filepath.Join(dir, "session.yaml"), nil
}

// Load implements Store.
func (s *FileStore) Load() (State, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return State{}, nil
	}
	if err != nil {
		return State{}, errors.Wrap(errors.ErrCodeStateRead, "failed to read session state", err)
	}

	var state State
	if err := yaml.Unmarshal(data, &state); err != nil {
		return State{}, errors.Wrap(errors.ErrCodeStateRead, "failed to parse session state", err)
	}

	return state, nil
}

// Save implements Store.
func (s *FileStore) Save(state State) error {
	data, err := yaml.Marshal(state)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStateWrite, "failed to marshal session state", err)
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return errors.Wrap(errors.ErrCodeStateWrite, "failed to write session state", err)
	}

	return nil
}

// Clear implements Store.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrap(errors.ErrCodeStateWrite, "failed to remove session state", err)
	}
	return nil
}

// MemoryStore keeps state in memory. Used by tests and one-shot commands
// that must not touch the user's persisted sessions.
type MemoryStore struct {
	state State
	held  bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

// Load implements Store.
func (m *MemoryStore) Load() (State, error) {
	if !m.held {
		return State{}, nil
	}
	return m.state, nil
}

// Save implements Store.
func (m *MemoryStore) Save(state State) error {
	m.state = state
	m.held = true
	return nil
}

// Clear implements Store.
func (m *MemoryStore) Clear() error {
	m.state = State{}
	m.held = false
	return nil
}
