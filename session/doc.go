// Package session models tracked work intervals and their persistence.
//
// # Overview
//
// A session is one tracked work interval over a developer's projects
// folder. Checking in opens a session; checking out closes it and records
// which projects changed while it was open. Closed sessions form the
// history shown by `worklog history`.
//
// # Session Lifecycle
//
// 1. Check-in: a new session is appended with:
//   - A UUID for the session ID
//   - Start stamped with the current time
//   - End left nil, which marks the session as open
//
// 2. Checkout: the open session is closed exactly once:
//   - End is stamped
//   - ProjectsChanged records the scan result
//
// 3. History: closed sessions are never mutated again.
//
// # Storage Format
//
// All sessions live in a single JSON array file (by default
// ~/.worklog/sessions.json or $XDG_DATA_HOME/worklog/sessions.json).
// Writes go through a temp file and rename so a crash mid-write cannot
// corrupt existing history.
//
// The store enforces one invariant on every load and save: at most one
// session is open, and if one is, it is the last record in the file.
//
// # Functions
//
// New: creates an open session with a fresh UUID.
//
// Store.Load: reads all sessions; returns ErrNotFound when the file has
// never been written, which callers must collapse to empty explicitly.
//
// Store.Append: adds a session, refusing a second open one.
//
// Store.CloseOpen: closes the open session with an end time and the
// changed-project list.
package session
