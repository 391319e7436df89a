package gitcmd

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// gitDateLayout matches git's iso8601 date output, e.g.
// "2025-04-01 12:30:00 +0200".
const gitDateLayout = "2006-01-02 15:04:05 -0700"

// CurrentBranch returns the short name of the checked-out branch.
// A detached HEAD reports as "HEAD", which never matches a branch name.
func (r *Repo) CurrentBranch(ctx context.Context) (string, error) {
	name, err := r.run(ctx, "rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", fmt.Errorf("failed to resolve current branch: %w", err)
	}
	return name, nil
}

// LocalBranches lists all local branch names in git's own ref order.
func (r *Repo) LocalBranches(ctx context.Context) ([]string, error) {
	output, err := r.run(ctx, "for-each-ref", "refs/heads/", "--format=%(refname:short)")
	if err != nil {
		return nil, fmt.Errorf("failed to list local branches: %w", err)
	}
	return splitLines(output), nil
}

// Remotes lists the configured remote names.
func (r *Repo) Remotes(ctx context.Context) ([]string, error) {
	output, err := r.run(ctx, "remote")
	if err != nil {
		return nil, fmt.Errorf("failed to list remotes: %w", err)
	}
	return splitLines(output), nil
}

// RemoteBranches lists the short (unqualified) branch names known under the
// given remote. The symbolic HEAD ref is filtered out.
func (r *Repo) RemoteBranches(ctx context.Context, remote string) ([]string, error) {
	if remote == "" {
		return nil, fmt.Errorf("remote name cannot be empty")
	}
	output, err := r.run(ctx, "for-each-ref", "refs/remotes/"+remote+"/", "--format=%(refname:short)")
	if err != nil {
		return nil, fmt.Errorf("failed to list branches of remote %q: %w", remote, err)
	}

	prefix := remote + "/"
	var branches []string
	for _, ref := range splitLines(output) {
		name := strings.TrimPrefix(ref, prefix)
		if name == "" || name == "HEAD" {
			continue
		}
		branches = append(branches, name)
	}
	return branches, nil
}

// LastCommitTime returns the author timestamp of the most recent commit
// reachable from ref. An unknown ref fails.
func (r *Repo) LastCommitTime(ctx context.Context, ref string) (time.Time, error) {
	output, err := r.run(ctx, "log", "-1", "--format=%ai", ref)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to read history of %q: %w", ref, err)
	}
	commitTime, err := time.Parse(gitDateLayout, output)
	if err != nil {
		return time.Time{}, fmt.Errorf("failed to parse commit date %q for %q: %w", output, ref, err)
	}
	return commitTime, nil
}

func splitLines(output string) []string {
	output = strings.TrimSpace(output)
	if output == "" {
		return nil
	}
	var lines []string
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
