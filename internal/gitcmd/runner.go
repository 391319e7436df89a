// Package gitcmd wraps the git command-line tool behind a small
// repository handle.
package gitcmd

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// GitRunner defines the function signature for executing git commands
// against a repository directory. This allows mocking the actual git
// execution during tests.
type GitRunner func(ctx context.Context, dir string, args ...string) (stdout string, err error)

// Runner is the package-level variable holding the function used to run git
// commands. It defaults to the real implementation but can be swapped out
// in tests.
var Runner GitRunner = runGitCommandReal

// runGitCommandReal executes git with -C <dir> so that the handle works on
// any repository path, not just the working directory.
func runGitCommandReal(ctx context.Context, dir string, args ...string) (string, error) {
	if _, deadlineSet := ctx.Deadline(); !deadlineSet {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, 30*time.Second)
		defer cancel()
	}

	full := append([]string{"-C", dir}, args...)
	cmd := exec.CommandContext(ctx, "git", full...)

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	stdout := strings.TrimSpace(stdoutBuf.String())
	stderr := strings.TrimSpace(stderrBuf.String())

	if err != nil {
		return stdout, fmt.Errorf("git command failed: %w\nargs: %v\nstderr: %s", err, args, stderr)
	}

	return stdout, nil
}

// RunGitCommand is a convenience wrapper that uses the package-level Runner.
// All internal gitcmd functions should use this instead of calling
// runGitCommandReal directly.
func RunGitCommand(ctx context.Context, dir string, args ...string) (string, error) {
	if Runner == nil {
		return "", fmt.Errorf("GitRunner is not initialized")
	}
	return Runner(ctx, dir, args...)
}
