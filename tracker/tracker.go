// Package tracker coordinates sessions with the change scanner: checking
// in opens a session, checking out scans the dev folder and closes it.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/zhubert/worklog/config"
	"github.com/zhubert/worklog/git"
	"github.com/zhubert/worklog/logger"
	"github.com/zhubert/worklog/scan"
	"github.com/zhubert/worklog/session"
)

// Compile-time interface satisfaction check.
var _ TrackerConfig = (*config.Config)(nil)

// TrackerConfig defines the configuration view the tracker needs.
// This decouples the tracker from the concrete config.Config struct.
type TrackerConfig interface {
	GetDevDir() string
}

// Summary is everything one checkout reports.
type Summary struct {
	// Session is the closed session record.
	Session session.Session

	// Changed holds the projects that changed during the session,
	// sorted by path.
	Changed []string

	// Warnings lists subtrees the scan could not read.
	Warnings []scan.Warning

	// BranchByProject maps changed project paths to their checked-out
	// branch. Collected best-effort for display; projects whose branch
	// could not be determined are absent.
	BranchByProject map[string]string
}

// Tracker handles the session lifecycle against a single dev folder.
type Tracker struct {
	config     TrackerConfig
	store      *session.Store
	gitService *git.GitService
}

// NewTracker creates a Tracker using the given config, store, and git
// service.
func NewTracker(cfg TrackerConfig, store *session.Store, gitSvc *git.GitService) *Tracker {
	return &Tracker{
		config:     cfg,
		store:      store,
		gitService: gitSvc,
	}
}

// CheckIn opens a new work session. Returns session.ErrSessionOpen if
// one is already open.
func (t *Tracker) CheckIn(ctx context.Context) (*session.Session, error) {
	sess := session.New()
	if err := t.store.Append(sess); err != nil {
		return nil, err
	}

	logger.WithSession(sess.ID).Info("checked in", "start", sess.Start.Format(time.RFC3339))
	return &sess, nil
}

// CheckOut scans the dev folder with the open session's start as the
// cutoff, closes the session with the changed projects, and returns the
// summary. Returns session.ErrNoOpenSession if no session is open.
//
// A failed scan leaves the session open so the checkout can be retried.
func (t *Tracker) CheckOut(ctx context.Context) (*Summary, error) {
	open, err := t.store.Open()
	if err != nil {
		return nil, err
	}
	if open == nil {
		return nil, session.ErrNoOpenSession
	}

	devDir := t.config.GetDevDir()
	rules, err := scan.LoadAndMergeRules(devDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load scan rules: %w", err)
	}

	result, err := scan.NewScanner(rules).Scan(devDir, open.Start)
	if err != nil {
		return nil, err
	}

	closed, err := t.store.CloseOpen(time.Now(), result.Changed)
	if err != nil {
		return nil, err
	}

	return &Summary{
		Session:         *closed,
		Changed:         result.Changed,
		Warnings:        result.Warnings,
		BranchByProject: t.collectBranches(ctx, result.Changed),
	}, nil
}

// Status returns a copy of the open session, or nil if none is open.
func (t *Tracker) Status() (*session.Session, error) {
	return t.store.Open()
}

// History returns closed sessions, newest first. A limit of zero or
// less returns all of them. A history that was never written is empty,
// not an error.
func (t *Tracker) History(limit int) ([]session.Session, error) {
	sessions, err := t.store.Load()
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	var closed []session.Session
	for i := len(sessions) - 1; i >= 0; i-- {
		if sessions[i].IsOpen() {
			continue
		}
		closed = append(closed, sessions[i])
		if limit > 0 && len(closed) == limit {
			break
		}
	}
	return closed, nil
}

// collectBranches names the checked-out branch of each changed project.
// Failures are logged and skipped; branch names only decorate the
// summary.
func (t *Tracker) collectBranches(ctx context.Context, projects []string) map[string]string {
	log := logger.WithComponent("tracker")

	branches := make(map[string]string)
	for _, project := range projects {
		branch, err := t.gitService.CurrentBranch(ctx, project)
		if err != nil {
			log.Debug("could not determine branch", "project", project, "error", err)
			continue
		}
		branches[project] = branch
	}
	return branches
}
