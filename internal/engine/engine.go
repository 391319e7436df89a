// Package engine implements the retention decision core: the staleness
// rule, the branch classifier, and the per-branch evaluate/apply flow.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/reap-dev/git-reap/internal/types"
)

const hoursPerDay = 24

// IsStale reports whether a branch whose most recent commit happened at
// lastCommit has exceeded the day threshold as of now. The difference is
// truncated to whole days, so a branch exactly thresholdDays old is not
// stale. A timestamp at or after now is never stale; a commit dated in the
// future is treated as fresh, not as an error.
func IsStale(lastCommit time.Time, thresholdDays int, now time.Time) bool {
	if !now.After(lastCommit) {
		return false
	}
	wholeDays := int(now.Sub(lastCommit).Hours() / hoursPerDay)
	return wholeDays > thresholdDays
}

// Class is the result of classifying a branch before any history lookup.
type Class int

const (
	// ClassEligible branches proceed to the age evaluation.
	ClassEligible Class = iota
	// ClassReserved branches are never deleted, regardless of age.
	ClassReserved
	// ClassCurrent is the checked-out branch; never deleted.
	ClassCurrent
)

// Classifier decides whether a branch may be evaluated for deletion at all.
// The reserved set is fixed at construction.
type Classifier struct {
	reserved map[string]bool
}

// NewClassifier builds a classifier protecting the given branch names.
func NewClassifier(reserved []string) *Classifier {
	m := make(map[string]bool, len(reserved))
	for _, name := range reserved {
		m[name] = true
	}
	return &Classifier{reserved: m}
}

// Classify matches the short branch name exactly and case-sensitively.
// The reserved check wins over the current-branch check.
func (c *Classifier) Classify(shortName, currentBranch string) Class {
	if c.reserved[shortName] {
		return ClassReserved
	}
	if shortName == currentBranch {
		return ClassCurrent
	}
	return ClassEligible
}

// HistoryReader resolves the most recent commit time for a ref.
type HistoryReader interface {
	LastCommitTime(ctx context.Context, ref string) (time.Time, error)
}

// Mutator performs the branch deletions the engine decides on.
type Mutator interface {
	DeleteLocalBranch(ctx context.Context, name string) error
	PushDelete(ctx context.Context, remote, name string) error
}

// Engine ties the classifier and the staleness rule to a history source.
type Engine struct {
	classifier *Classifier
	history    HistoryReader
	now        func() time.Time
}

// New builds an engine. A nil now falls back to time.Now.
func New(classifier *Classifier, history HistoryReader, now func() time.Time) *Engine {
	if now == nil {
		now = time.Now
	}
	return &Engine{classifier: classifier, history: history, now: now}
}

// Evaluate produces the decision for one branch. Reserved and current
// branches return immediately, without consulting commit history. Eligible
// branches are looked up by their qualified ref, so remote-mode evaluation
// reads the remote-tracking history.
func (e *Engine) Evaluate(
	ctx context.Context, branch types.BranchRef, currentBranch string, params types.Params,
) (types.Outcome, error) {
	switch e.classifier.Classify(branch.Name, currentBranch) {
	case ClassReserved:
		return types.Outcome{Kind: types.OutcomeReserved}, nil
	case ClassCurrent:
		return types.Outcome{Kind: types.OutcomeCurrent}, nil
	}

	lastCommit, err := e.history.LastCommitTime(ctx, branch.Qualified)
	if err != nil {
		return types.Outcome{}, fmt.Errorf("resolving history for %q: %w", branch.Qualified, err)
	}

	if IsStale(lastCommit, params.AgeDays, e.now()) {
		return types.Outcome{Kind: types.OutcomeDeleted, LastCommit: lastCommit}, nil
	}
	return types.Outcome{Kind: types.OutcomeSkipped, LastCommit: lastCommit}, nil
}

// Apply performs the mutating action for a Deleted outcome. Dry-run
// sessions never reach the repository. Any deletion error propagates to the
// caller and ends the run.
func (e *Engine) Apply(
	ctx context.Context, outcome types.Outcome, branch types.BranchRef, params types.Params, repo Mutator,
) error {
	if outcome.Kind != types.OutcomeDeleted || params.DryRun {
		return nil
	}
	if params.Mode == types.ModeRemote {
		return repo.PushDelete(ctx, params.Remote, branch.Name)
	}
	return repo.DeleteLocalBranch(ctx, branch.Name)
}
