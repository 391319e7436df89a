package gitcmd

import (
	"context"
	"errors"
	"fmt"
)

// ErrNotARepository indicates the given path is not inside a git work tree.
var ErrNotARepository = errors.New("not a git repository")

// Repo is a handle to one repository, bound to a directory for its whole
// lifetime. All commands it issues run with `git -C <dir>`.
type Repo struct {
	dir string
}

// Open validates that dir is inside a git work tree and returns a handle.
func Open(ctx context.Context, dir string) (*Repo, error) {
	output, err := RunGitCommand(ctx, dir, "rev-parse", "--is-inside-work-tree")
	if err != nil || output != "true" {
		return nil, fmt.Errorf("%w: %q", ErrNotARepository, dir)
	}
	return &Repo{dir: dir}, nil
}

// Dir returns the directory the handle is bound to.
func (r *Repo) Dir() string {
	return r.dir
}

func (r *Repo) run(ctx context.Context, args ...string) (string, error) {
	return RunGitCommand(ctx, r.dir, args...)
}
