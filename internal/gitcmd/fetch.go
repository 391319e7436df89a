package gitcmd

import (
	"context"
	"fmt"
)

// Fetch runs 'git fetch <remote>' to update the remote-tracking refs before
// a remote sweep. Failure is fatal for the run; the caller does not retry.
func (r *Repo) Fetch(ctx context.Context, remote string) error {
	if remote == "" {
		return fmt.Errorf("remote name cannot be empty for fetch")
	}

	if _, err := r.run(ctx, "fetch", remote); err != nil {
		return fmt.Errorf("failed to fetch remote %q: %w", remote, err)
	}
	return nil
}
