// Package git provides the few git operations the work log needs:
// identifying repositories and naming the branch a project sits on.
package git

import (
	"context"
	"fmt"
	"strings"

	pexec "github.com/zhubert/worklog/exec"
)

// GitService runs git through an injected executor, so tests can supply
// pre-recorded responses instead of a real git binary.
type GitService struct {
	executor pexec.CommandExecutor
}

// NewGitService creates a GitService backed by the real executor.
func NewGitService() *GitService {
	return &GitService{executor: pexec.NewRealExecutor()}
}

// NewGitServiceWithExecutor creates a GitService with a custom executor.
func NewGitServiceWithExecutor(exec pexec.CommandExecutor) *GitService {
	return &GitService{executor: exec}
}

// CurrentBranch returns the branch checked out in the given repository.
// Returns an error if HEAD is detached or the command fails.
func (s *GitService) CurrentBranch(ctx context.Context, repoPath string) (string, error) {
	output, err := s.executor.Output(ctx, repoPath, "git", "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to get current branch: %w", err)
	}

	branch := strings.TrimSpace(string(output))
	if branch == "HEAD" {
		return "", fmt.Errorf("HEAD is detached (not on a branch)")
	}

	return branch, nil
}

// IsRepo reports whether path is inside a git repository.
func (s *GitService) IsRepo(ctx context.Context, path string) bool {
	_, _, err := s.executor.Run(ctx, path, "git", "rev-parse", "--git-dir")
	return err == nil
}
