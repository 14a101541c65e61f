// Package scan implements the project-change detector.
//
// # Overview
//
// Given a developer's projects folder and a cutoff timestamp (the start
// of a work session), the scanner reports which projects contain files
// modified or created after the cutoff. It never inspects version-control
// history or file contents; filesystem timestamps are the only signal.
//
// # Project Discovery
//
// The scanner lists the immediate children of the root. A child directory
// with a .git directory directly beneath it is a project root and gets
// probed. A child directory without the marker is a container (a folder
// grouping several repos) and is scanned recursively with the same
// cutoff. Projects found in a container pass through as-is; the container
// itself is never probed.
//
// # Change Probe
//
// Each project is probed against a rule set of glob patterns relative to
// the project root. The defaults cover the conventional change surface:
//
//	src/**    tests/**    .git/*    *.md
//
// Directories named node_modules or .git encountered while expanding a
// pattern are skipped entirely. An entry qualifies when its modification
// time or its metadata-change time is strictly after the cutoff; the
// probe stops at the first qualifying entry.
//
// Rules can be overridden per dev folder with .worklog/scan.yaml at the
// scan root.
//
// # Concurrency
//
// Discovery fans out one goroutine per non-project child and one per
// probe, joins them all with a WaitGroup, and merges results under a
// mutex. There is no cancellation: a started scan runs to completion.
//
// # Symlinks and failures
//
// Symlinked directories are never descended (a directory symlink does not
// report as a directory when listing), so symlink cycles cannot occur and
// recursion depth is bounded by the real tree. Unreadable subtrees do not
// abort the scan and are not silently read as "unchanged": each one is
// recorded as a Warning on the Result.
package scan
