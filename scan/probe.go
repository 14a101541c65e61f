package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/bmatcuk/doublestar/v4"
)

// errChangeFound stops a glob walk at the first qualifying entry.
var errChangeFound = errors.New("change found")

// Probe decides whether a single project changed after a cutoff.
type Probe struct {
	rules Rules
}

// NewProbe creates a Probe using the given rules.
func NewProbe(rules Rules) *Probe {
	return &Probe{rules: rules}
}

// HasQualifyingChange reports whether any entry in the project's change
// surface was stamped strictly after the cutoff. An entry stamped exactly
// at the cutoff does not count, and a project matching no entries at all
// reports false.
//
// Walk errors surface as errors rather than a false "unchanged".
func (p *Probe) HasQualifyingChange(projectRoot string, cutoff time.Time) (bool, error) {
	// A vanished or unreadable project root is a silent no-match for
	// every pattern, so it has to be caught up front.
	if _, err := os.Stat(projectRoot); err != nil {
		return false, fmt.Errorf("failed to stat project root: %w", err)
	}

	fsys := os.DirFS(projectRoot)
	for _, pattern := range p.rules.Include {
		err := doublestar.GlobWalk(fsys, pattern, func(path string, d fs.DirEntry) error {
			if d.IsDir() && p.rules.excluded(d.Name()) {
				return fs.SkipDir
			}
			info, err := d.Info()
			if err != nil {
				// Entry vanished between listing and stat.
				return nil
			}
			if qualifies(info, cutoff) {
				return errChangeFound
			}
			return nil
		}, doublestar.WithNoFollow(), doublestar.WithFailOnIOErrors())

		if errors.Is(err, errChangeFound) {
			return true, nil
		}
		if err != nil {
			return false, fmt.Errorf("failed to expand %s under %s: %w", pattern, projectRoot, err)
		}
	}

	return false, nil
}

// qualifies reports whether the entry changed strictly after the cutoff.
// Modification time and metadata-change time both count: a fresh checkout
// or chmod moves ctime without touching mtime.
func qualifies(info fs.FileInfo, cutoff time.Time) bool {
	return cutoff.Before(info.ModTime()) || cutoff.Before(changeTime(info))
}
