package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/zhubert/worklog/logger"
)

var (
	// ErrNotFound means the sessions file has never been written.
	ErrNotFound = errors.New("not found")

	// ErrSessionOpen means a session is already open.
	ErrSessionOpen = errors.New("a session is already open")

	// ErrNoOpenSession means no session is currently open.
	ErrNoOpenSession = errors.New("no open session")
)

// Store persists sessions as a JSON array in a single file.
// Instead of using package-level state, each Store instance holds its own
// file path, enabling proper testing and avoiding global state.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a Store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the file the store reads and writes.
func (st *Store) Path() string {
	return st.path
}

// Load reads all sessions from disk.
// Returns ErrNotFound when the file has never been written — callers
// decide whether that means an empty history. A file that exists but
// cannot be parsed is an error, never silently treated as empty.
func (st *Store) Load() ([]Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.load()
}

// load reads and validates without locking. Caller must hold mu.
func (st *Store) load() ([]Session, error) {
	data, err := os.ReadFile(st.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to read sessions file: %w", err)
	}

	var sessions []Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		return nil, fmt.Errorf("failed to parse sessions file %s: %w", st.path, err)
	}

	if err := Validate(sessions); err != nil {
		return nil, fmt.Errorf("sessions file %s: %w", st.path, err)
	}

	return sessions, nil
}

// loadOrEmpty collapses ErrNotFound to an empty history. Caller must hold mu.
func (st *Store) loadOrEmpty() ([]Session, error) {
	sessions, err := st.load()
	if errors.Is(err, ErrNotFound) {
		return nil, nil
	}
	return sessions, err
}

// Save writes all sessions to disk atomically.
func (st *Store) Save(sessions []Session) error {
	st.mu.Lock()
	defer st.mu.Unlock()
	return st.save(sessions)
}

// save writes without locking. Caller must hold mu.
func (st *Store) save(sessions []Session) error {
	if err := Validate(sessions); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(st.path), 0755); err != nil {
		return fmt.Errorf("failed to create data directory: %w", err)
	}

	data, err := json.MarshalIndent(sessions, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal sessions: %w", err)
	}

	// Write to temp file first, then rename (atomic operation)
	tmpPath := st.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, st.path); err != nil {
		os.Remove(tmpPath) // Clean up temp file
		return fmt.Errorf("failed to rename sessions file: %w", err)
	}

	return nil
}

// Open returns a copy of the open session, or nil if none is open.
func (st *Store) Open() (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	sessions, err := st.loadOrEmpty()
	if err != nil {
		return nil, err
	}
	return openSession(sessions), nil
}

// openSession returns a copy of the open session, or nil.
// Validate guarantees the open session, if any, is the last record, so
// only the tail needs checking.
func openSession(sessions []Session) *Session {
	if len(sessions) == 0 {
		return nil
	}
	last := sessions[len(sessions)-1]
	if last.IsOpen() {
		return &last
	}
	return nil
}

// Append adds a session to the history.
// Appending an open session while another is open returns ErrSessionOpen.
func (st *Store) Append(sess Session) error {
	st.mu.Lock()
	defer st.mu.Unlock()

	sessions, err := st.loadOrEmpty()
	if err != nil {
		return err
	}

	if sess.IsOpen() && openSession(sessions) != nil {
		return ErrSessionOpen
	}

	sessions = append(sessions, sess)
	if err := st.save(sessions); err != nil {
		return err
	}

	logger.WithSession(sess.ID).Info("session appended", "open", sess.IsOpen())
	return nil
}

// CloseOpen closes the open session, recording the end time and the
// projects that changed while it was open. Returns the closed session.
// Returns ErrNoOpenSession if no session is open.
func (st *Store) CloseOpen(end time.Time, projectsChanged []string) (*Session, error) {
	st.mu.Lock()
	defer st.mu.Unlock()

	sessions, err := st.loadOrEmpty()
	if err != nil {
		return nil, err
	}

	if openSession(sessions) == nil {
		return nil, ErrNoOpenSession
	}

	i := len(sessions) - 1
	endCopy := end
	sessions[i].End = &endCopy
	sessions[i].ProjectsChanged = projectsChanged

	if err := st.save(sessions); err != nil {
		return nil, err
	}

	closed := sessions[i]
	logger.WithSession(closed.ID).Info("session closed",
		"duration", closed.Duration().Round(time.Second), "projects", len(projectsChanged))
	return &closed, nil
}

// Validate checks the session list invariant: at most one session is
// open, and if one is, it is the last record.
func Validate(sessions []Session) error {
	seenIDs := make(map[string]bool)
	openIdx := -1
	for i, sess := range sessions {
		if sess.ID == "" {
			return fmt.Errorf("session with empty ID found")
		}
		if seenIDs[sess.ID] {
			return fmt.Errorf("duplicate session ID: %s", sess.ID)
		}
		seenIDs[sess.ID] = true

		if sess.Start.IsZero() {
			return fmt.Errorf("session %s has zero start time", sess.ID)
		}
		if sess.End != nil && sess.End.Before(sess.Start) {
			return fmt.Errorf("session %s ends before it starts", sess.ID)
		}

		if sess.IsOpen() {
			if openIdx >= 0 {
				return fmt.Errorf("multiple open sessions found")
			}
			openIdx = i
		}
	}
	if openIdx >= 0 && openIdx != len(sessions)-1 {
		return fmt.Errorf("open session %s is not the last record", sessions[openIdx].ID)
	}
	return nil
}
