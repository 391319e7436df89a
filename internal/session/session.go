// Package session resolves run parameters and drives one retention pass
// over one repository.
package session

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/reap-dev/git-reap/internal/config"
	"github.com/reap-dev/git-reap/internal/engine"
	"github.com/reap-dev/git-reap/internal/prompt"
	"github.com/reap-dev/git-reap/internal/types"
)

// thresholdChoices are the day thresholds offered when none is fixed by
// flag or config. The first entry is the default.
var thresholdChoices = []string{"30", "45", "60"}

// Repository is the collaborator surface a session needs from git. The
// session owns the handle exclusively for its lifetime.
type Repository interface {
	engine.HistoryReader
	engine.Mutator
	CurrentBranch(ctx context.Context) (string, error)
	LocalBranches(ctx context.Context) ([]string, error)
	Remotes(ctx context.Context) ([]string, error)
	RemoteBranches(ctx context.Context, remote string) ([]string, error)
	Fetch(ctx context.Context, remote string) error
}

// Options carries the flag-level inputs into parameter resolution. Zero
// values mean "ask the user".
type Options struct {
	Local   bool   // fix local mode
	Remote  string // fix remote mode, targeting this remote
	AgeDays int    // fix the day threshold; 0 prompts
	DryRun  bool
}

// Session owns one retention run.
type Session struct {
	repo     Repository
	chooser  prompt.ChoiceProvider
	reporter *Reporter
	engine   *engine.Engine
	cfg      config.Config
}

// New wires a session together. A nil now falls back to time.Now.
func New(
	repo Repository, chooser prompt.ChoiceProvider, reporter *Reporter,
	cfg config.Config, now func() time.Time,
) *Session {
	classifier := engine.NewClassifier(cfg.ReservedBranches)
	return &Session{
		repo:     repo,
		chooser:  chooser,
		reporter: reporter,
		engine:   engine.New(classifier, repo, now),
		cfg:      cfg,
	}
}

// Resolve establishes the immutable session parameters: mode, remote (in
// remote mode), and the day threshold. Anything not fixed through opts or
// config is asked interactively.
func (s *Session) Resolve(ctx context.Context, opts Options) (types.Params, error) {
	params := types.Params{AgeDays: opts.AgeDays, DryRun: opts.DryRun}

	switch {
	case opts.Local:
		params.Mode = types.ModeLocal
	case opts.Remote != "":
		params.Mode = types.ModeRemote
		params.Remote = opts.Remote
	default:
		choice, err := s.chooser.Choose(
			"Which branches do you want to sweep?",
			[]string{string(types.ModeRemote), string(types.ModeLocal)},
			0,
		)
		if err != nil {
			return types.Params{}, err
		}
		params.Mode = types.Mode(choice)

		if params.Mode == types.ModeRemote {
			remote, err := s.resolveRemote(ctx)
			if err != nil {
				return types.Params{}, err
			}
			params.Remote = remote
		}
	}

	if params.AgeDays <= 0 && s.cfg.AgeDays > 0 {
		params.AgeDays = s.cfg.AgeDays
	}
	if params.AgeDays <= 0 {
		choice, err := s.chooser.Choose(
			"Delete branches with no commits in how many days?",
			thresholdChoices,
			0,
		)
		if err != nil {
			return types.Params{}, err
		}
		days, err := strconv.Atoi(choice)
		if err != nil {
			return types.Params{}, fmt.Errorf("invalid day threshold %q: %w", choice, err)
		}
		params.AgeDays = days
	}

	return params, nil
}

// resolveRemote lists the configured remotes and asks which one to target.
// A repository without remotes gets a warning, and the choice then runs
// over an empty option set and yields an empty remote name; the run itself
// fails later, at fetch time.
func (s *Session) resolveRemote(ctx context.Context) (string, error) {
	remotes, err := s.repo.Remotes(ctx)
	if err != nil {
		return "", fmt.Errorf("listing remotes: %w", err)
	}
	if len(remotes) == 0 {
		s.reporter.Warn("No remotes are configured for this repository.")
	}
	remote, err := s.chooser.Choose("Which remote?", remotes, 0)
	if err != nil {
		return "", err
	}
	return remote, nil
}

// Run executes the sweep: fetch (remote mode), iterate the branch source in
// its own order, evaluate and apply each branch, and report one line per
// branch. The first collaborator failure aborts the remaining iteration.
func (s *Session) Run(ctx context.Context, params types.Params) error {
	s.reporter.Start(params)

	if params.Mode == types.ModeRemote {
		if err := s.repo.Fetch(ctx, params.Remote); err != nil {
			return fmt.Errorf("fetching %q: %w", params.Remote, err)
		}
	}

	branches, err := s.branchSource(ctx, params)
	if err != nil {
		return err
	}

	currentBranch, err := s.repo.CurrentBranch(ctx)
	if err != nil {
		return fmt.Errorf("resolving current branch: %w", err)
	}

	for _, name := range branches {
		branch := types.BranchRef{Name: name, Qualified: name}
		if params.Mode == types.ModeRemote {
			branch.Qualified = params.Remote + "/" + name
		}

		outcome, err := s.engine.Evaluate(ctx, branch, currentBranch, params)
		if err != nil {
			return err
		}
		if err := s.engine.Apply(ctx, outcome, branch, params, s.repo); err != nil {
			return fmt.Errorf("deleting %q: %w", branch.Qualified, err)
		}
		s.reporter.Outcome(branch, outcome, params)
	}

	s.reporter.Done()
	return nil
}

func (s *Session) branchSource(ctx context.Context, params types.Params) ([]string, error) {
	if params.Mode == types.ModeRemote {
		return s.repo.RemoteBranches(ctx, params.Remote)
	}
	return s.repo.LocalBranches(ctx)
}
