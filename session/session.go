package session

import (
	"time"

	"github.com/google/uuid"
)

// Session represents one tracked work interval
type Session struct {
	ID              string     `json:"id"`
	Start           time.Time  `json:"start"`
	End             *time.Time `json:"end,omitempty"`              // nil while the session is open
	ProjectsChanged []string   `json:"projects_changed,omitempty"` // Absolute project paths recorded at checkout
}

// New creates an open session starting now
func New() Session {
	return Session{
		ID:    uuid.New().String(),
		Start: time.Now(),
	}
}

// IsOpen returns true if the session has not been checked out yet
func (s *Session) IsOpen() bool {
	return s.End == nil
}

// Duration returns the session length. For an open session it is the
// time elapsed since check-in.
func (s *Session) Duration() time.Duration {
	if s.End == nil {
		return time.Since(s.Start)
	}
	return s.End.Sub(s.Start)
}
