package types

import "time"

// Mode selects which branch source a session operates on.
type Mode string

const (
	ModeLocal  Mode = "local"
	ModeRemote Mode = "remote"
)

// Params holds the resolved settings for one run. Built once at session
// start and never mutated afterwards. Remote is set iff Mode is ModeRemote.
type Params struct {
	Mode    Mode
	Remote  string
	AgeDays int
	DryRun  bool
}

// BranchRef identifies one branch during iteration. Qualified is the
// display and lookup form: "<remote>/<name>" in remote mode, the bare
// name otherwise.
type BranchRef struct {
	Name      string
	Qualified string
}

// OutcomeKind is the decision reached for a branch.
type OutcomeKind string

const (
	OutcomeReserved OutcomeKind = "Reserved"
	OutcomeCurrent  OutcomeKind = "Current"
	OutcomeSkipped  OutcomeKind = "Skipped"
	OutcomeDeleted  OutcomeKind = "Deleted"
)

// Outcome is the per-branch decision. LastCommit is populated only for
// Skipped and Deleted, where history was actually consulted.
type Outcome struct {
	Kind       OutcomeKind
	LastCommit time.Time
}
