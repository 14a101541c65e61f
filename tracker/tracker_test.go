package tracker

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	pexec "github.com/zhubert/worklog/exec"
	"github.com/zhubert/worklog/git"
	"github.com/zhubert/worklog/logger"
	"github.com/zhubert/worklog/session"
)

var ctx = context.Background()

type testConfig struct {
	devDir string
}

func (c *testConfig) GetDevDir() string { return c.devDir }

// newTestTrackerAt wires a tracker against the given dev folder, a temp
// session store, and a mock git executor. Tests register the git
// responses they need on the returned mock.
func newTestTrackerAt(t *testing.T, devDir string) (*Tracker, *session.Store, *pexec.MockExecutor) {
	t.Helper()
	logger.Reset()
	if err := logger.Init(filepath.Join(t.TempDir(), "test.log")); err != nil {
		t.Fatalf("Failed to init logger: %v", err)
	}
	t.Cleanup(logger.Reset)

	store := session.NewStore(filepath.Join(t.TempDir(), "sessions.json"))
	mock := pexec.NewMockExecutor(nil)
	tr := NewTracker(&testConfig{devDir: devDir}, store, git.NewGitServiceWithExecutor(mock))
	return tr, store, mock
}

func newTestTracker(t *testing.T) (*Tracker, string, *session.Store, *pexec.MockExecutor) {
	t.Helper()
	devDir := t.TempDir()
	tr, store, mock := newTestTrackerAt(t, devDir)
	return tr, devDir, store, mock
}

// addProject creates a git-marked project with one source file.
func addProject(t *testing.T, devDir, name string) string {
	t.Helper()
	root := filepath.Join(devDir, name)
	if err := os.MkdirAll(filepath.Join(root, ".git"), 0755); err != nil {
		t.Fatalf("Failed to create project: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(root, "src"), 0755); err != nil {
		t.Fatalf("Failed to create src: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "src", "main.go"), []byte("package main"), 0644); err != nil {
		t.Fatalf("Failed to write source file: %v", err)
	}
	return root
}

// futureTouch pushes the file's mtime past any cutoff taken during the
// test, so the change unambiguously qualifies.
func futureTouch(t *testing.T, path string) {
	t.Helper()
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatalf("Failed to set times: %v", err)
	}
}

func TestCheckIn(t *testing.T) {
	tr, _, store, _ := newTestTracker(t)

	sess, err := tr.CheckIn(ctx)
	if err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}
	if sess.ID == "" {
		t.Error("CheckIn() session has no ID")
	}
	if !sess.IsOpen() {
		t.Error("CheckIn() session should be open")
	}

	open, err := store.Open()
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if open == nil || open.ID != sess.ID {
		t.Errorf("store open session = %v, want %s", open, sess.ID)
	}
}

func TestCheckIn_AlreadyOpen(t *testing.T) {
	tr, _, _, _ := newTestTracker(t)

	if _, err := tr.CheckIn(ctx); err != nil {
		t.Fatalf("first CheckIn() error = %v", err)
	}

	_, err := tr.CheckIn(ctx)
	if !errors.Is(err, session.ErrSessionOpen) {
		t.Errorf("second CheckIn() error = %v, want ErrSessionOpen", err)
	}
}

func TestCheckOut_NoOpenSession(t *testing.T) {
	tr, _, _, _ := newTestTracker(t)

	_, err := tr.CheckOut(ctx)
	if !errors.Is(err, session.ErrNoOpenSession) {
		t.Errorf("CheckOut() error = %v, want ErrNoOpenSession", err)
	}
}

func TestCheckOut_RecordsChangedProjects(t *testing.T) {
	tr, devDir, store, mock := newTestTracker(t)
	mock.AddExactMatch("git", []string{"rev-parse", "--abbrev-ref", "HEAD"}, pexec.MockResponse{
		Stdout: []byte("main\n"),
	})

	api := addProject(t, devDir, "api")
	addProject(t, devDir, "web")

	if _, err := tr.CheckIn(ctx); err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}
	futureTouch(t, filepath.Join(api, "src", "main.go"))

	summary, err := tr.CheckOut(ctx)
	if err != nil {
		t.Fatalf("CheckOut() error = %v", err)
	}

	if want := []string{api}; len(summary.Changed) != 1 || summary.Changed[0] != api {
		t.Errorf("Changed = %v, want %v", summary.Changed, want)
	}
	if summary.Session.End == nil {
		t.Error("closed session has no end time")
	}
	if len(summary.Session.ProjectsChanged) != 1 || summary.Session.ProjectsChanged[0] != api {
		t.Errorf("ProjectsChanged = %v, want [%s]", summary.Session.ProjectsChanged, api)
	}
	if summary.BranchByProject[api] != "main" {
		t.Errorf("BranchByProject[%s] = %q, want main", api, summary.BranchByProject[api])
	}

	open, err := store.Open()
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if open != nil {
		t.Error("session should be closed after checkout")
	}

	sessions, err := store.Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if len(sessions) != 1 || len(sessions[0].ProjectsChanged) != 1 {
		t.Errorf("persisted sessions = %+v, want one with the changed project", sessions)
	}
}

func TestCheckOut_NoChanges(t *testing.T) {
	tr, devDir, _, _ := newTestTracker(t)
	addProject(t, devDir, "api")

	if _, err := tr.CheckIn(ctx); err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}

	summary, err := tr.CheckOut(ctx)
	if err != nil {
		t.Fatalf("CheckOut() error = %v", err)
	}
	if len(summary.Changed) != 0 {
		t.Errorf("Changed = %v, want none", summary.Changed)
	}
	if summary.Session.End == nil {
		t.Error("session should be closed even without changes")
	}
	if len(summary.BranchByProject) != 0 {
		t.Errorf("BranchByProject = %v, want empty", summary.BranchByProject)
	}
}

func TestCheckOut_BranchBestEffort(t *testing.T) {
	tr, devDir, _, mock := newTestTracker(t)
	mock.AddExactMatch("git", []string{"rev-parse", "--abbrev-ref", "HEAD"}, pexec.MockResponse{
		Err: fmt.Errorf("fatal: not a git repository"),
	})

	api := addProject(t, devDir, "api")

	if _, err := tr.CheckIn(ctx); err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}
	futureTouch(t, filepath.Join(api, "src", "main.go"))

	summary, err := tr.CheckOut(ctx)
	if err != nil {
		t.Fatalf("CheckOut() should not fail when branch lookup fails: %v", err)
	}
	if len(summary.Changed) != 1 {
		t.Errorf("Changed = %v, want the project", summary.Changed)
	}
	if _, ok := summary.BranchByProject[api]; ok {
		t.Error("BranchByProject should omit projects whose branch lookup failed")
	}
}

func TestCheckOut_MissingDevDirKeepsSessionOpen(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "missing")
	tr, store, _ := newTestTrackerAt(t, missing)

	if _, err := tr.CheckIn(ctx); err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}

	if _, err := tr.CheckOut(ctx); err == nil {
		t.Fatal("CheckOut() should fail when the dev folder is missing")
	}

	open, err := store.Open()
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if open == nil {
		t.Error("a failed checkout should leave the session open")
	}
}

func TestCheckOut_InvalidRulesKeepsSessionOpen(t *testing.T) {
	tr, devDir, store, _ := newTestTracker(t)

	rulesDir := filepath.Join(devDir, ".worklog")
	if err := os.MkdirAll(rulesDir, 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(rulesDir, "scan.yaml"), []byte("{{invalid yaml"), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := tr.CheckIn(ctx); err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}

	if _, err := tr.CheckOut(ctx); err == nil {
		t.Fatal("CheckOut() should surface a broken rules file")
	}

	open, err := store.Open()
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if open == nil {
		t.Error("a failed checkout should leave the session open")
	}
}

func TestStatus_NoSession(t *testing.T) {
	tr, _, _, _ := newTestTracker(t)

	sess, err := tr.Status()
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if sess != nil {
		t.Errorf("Status() = %v, want nil", sess)
	}
}

func TestStatus_OpenSession(t *testing.T) {
	tr, _, _, _ := newTestTracker(t)

	opened, err := tr.CheckIn(ctx)
	if err != nil {
		t.Fatalf("CheckIn() error = %v", err)
	}

	sess, err := tr.Status()
	if err != nil {
		t.Fatalf("Status() error = %v", err)
	}
	if sess == nil || sess.ID != opened.ID {
		t.Errorf("Status() = %v, want session %s", sess, opened.ID)
	}
}

func TestHistory(t *testing.T) {
	tr, _, store, _ := newTestTracker(t)

	now := time.Now()
	endA := now.Add(-2 * time.Hour)
	endB := now.Add(-time.Hour)
	seed := []session.Session{
		{ID: "a", Start: now.Add(-3 * time.Hour), End: &endA},
		{ID: "b", Start: now.Add(-90 * time.Minute), End: &endB},
		{ID: "c", Start: now.Add(-30 * time.Minute)},
	}
	if err := store.Save(seed); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	all, err := tr.History(0)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(all) != 2 || all[0].ID != "b" || all[1].ID != "a" {
		t.Errorf("History(0) = %v, want closed sessions newest first [b a]", all)
	}

	one, err := tr.History(1)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(one) != 1 || one[0].ID != "b" {
		t.Errorf("History(1) = %v, want [b]", one)
	}
}

func TestHistory_Empty(t *testing.T) {
	tr, _, _, _ := newTestTracker(t)

	hist, err := tr.History(0)
	if err != nil {
		t.Fatalf("History() error = %v", err)
	}
	if len(hist) != 0 {
		t.Errorf("History() = %v, want empty", hist)
	}
}
