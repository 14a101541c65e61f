package scan

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/zhubert/worklog/logger"
)

// Warning records a subtree or project the scan could not fully read.
type Warning struct {
	Path string
	Err  error
}

// Result is the outcome of one scan.
type Result struct {
	// Changed holds absolute project paths, sorted and deduplicated.
	Changed []string

	// Warnings lists paths skipped because they could not be read.
	// A project that fails its probe lands here, not in Changed.
	Warnings []Warning
}

// Scanner discovers git-marked projects under a root folder and reports
// which of them changed after a cutoff.
type Scanner struct {
	probe *Probe
}

// NewScanner creates a Scanner probing with the given rules.
func NewScanner(rules Rules) *Scanner {
	return &Scanner{probe: NewProbe(rules)}
}

// Scan walks root and returns the projects changed after cutoff.
//
// A project is a directory with a .git directory directly beneath it.
// Directories without the marker are containers and are scanned
// recursively; their nested results pass through unchanged. Unreadable
// subtrees contribute Warnings instead of aborting the scan. Only a root
// that is itself missing, unreadable, or not a directory is an error.
func (s *Scanner) Scan(root string, cutoff time.Time) (*Result, error) {
	log := logger.WithComponent("scan")

	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve scan root: %w", err)
	}
	info, err := os.Stat(absRoot)
	if err != nil {
		return nil, fmt.Errorf("failed to read scan root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan root %s is not a directory", absRoot)
	}

	log.Info("scan started", "root", absRoot, "cutoff", cutoff.Format(time.RFC3339))

	changed, warnings := s.scanDir(absRoot, cutoff)

	sort.Strings(changed)
	changed = slices.Compact(changed)

	for _, w := range warnings {
		log.Warn("skipped unreadable path", "path", w.Path, "error", w.Err)
	}
	log.Info("scan complete", "root", absRoot, "changed", len(changed), "warnings", len(warnings))

	return &Result{Changed: changed, Warnings: warnings}, nil
}

// scanDir handles one container directory: project children are probed,
// the rest are scanned recursively. One goroutine per child, joined
// before the merged results are returned.
func (s *Scanner) scanDir(dir string, cutoff time.Time) ([]string, []Warning) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, []Warning{{Path: dir, Err: err}}
	}

	var mu sync.Mutex
	var changed []string
	var warnings []Warning

	var wg sync.WaitGroup
	for _, entry := range entries {
		// Symlinked directories report false here, so they are never
		// descended and symlink cycles cannot occur.
		if !entry.IsDir() {
			continue
		}
		child := filepath.Join(dir, entry.Name())

		if isProjectRoot(child) {
			wg.Add(1)
			go func(project string) {
				defer wg.Done()

				ok, err := s.probe.HasQualifyingChange(project, cutoff)

				mu.Lock()
				defer mu.Unlock()
				if err != nil {
					warnings = append(warnings, Warning{Path: project, Err: err})
					return
				}
				if ok {
					changed = append(changed, project)
				}
			}(child)
			continue
		}

		wg.Add(1)
		go func(sub string) {
			defer wg.Done()

			subChanged, subWarnings := s.scanDir(sub, cutoff)

			mu.Lock()
			changed = append(changed, subChanged...)
			warnings = append(warnings, subWarnings...)
			mu.Unlock()
		}(child)
	}
	wg.Wait()

	return changed, warnings
}

// isProjectRoot reports whether dir directly contains a .git marker
// directory. A .git file (worktree or submodule pointer) doesn't count.
func isProjectRoot(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, ".git"))
	return err == nil && info.IsDir()
}
