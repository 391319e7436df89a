package gitcmd

import (
	"context"
	"fmt"
)

// DeleteLocalBranch removes a local branch with 'git branch -D'. Deletion is
// always forced: the retention policy overrides git's unmerged safety check.
func (r *Repo) DeleteLocalBranch(ctx context.Context, name string) error {
	if name == "" {
		return fmt.Errorf("branch name cannot be empty")
	}

	if _, err := r.run(ctx, "branch", "-D", name); err != nil {
		return fmt.Errorf("failed to delete branch %q: %w", name, err)
	}
	return nil
}

// PushDelete removes a branch on the remote by pushing an empty source to
// its ref ('git push <remote> :<name>').
func (r *Repo) PushDelete(ctx context.Context, remote, name string) error {
	if remote == "" {
		return fmt.Errorf("remote name cannot be empty")
	}
	if name == "" {
		return fmt.Errorf("branch name cannot be empty")
	}

	if _, err := r.run(ctx, "push", remote, ":"+name); err != nil {
		return fmt.Errorf("failed to delete %q on remote %q: %w", name, remote, err)
	}
	return nil
}
