package engine

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reap-dev/git-reap/internal/types"
)

type fakeHistory struct {
	times map[string]time.Time
	calls []string
	err   error
}

func (f *fakeHistory) LastCommitTime(_ context.Context, ref string) (time.Time, error) {
	f.calls = append(f.calls, ref)
	if f.err != nil {
		return time.Time{}, f.err
	}
	ts, ok := f.times[ref]
	if !ok {
		return time.Time{}, fmt.Errorf("unknown ref %q", ref)
	}
	return ts, nil
}

type fakeMutator struct {
	localDeletes []string
	pushDeletes  []string
	err          error
}

func (f *fakeMutator) DeleteLocalBranch(_ context.Context, name string) error {
	if f.err != nil {
		return f.err
	}
	f.localDeletes = append(f.localDeletes, name)
	return nil
}

func (f *fakeMutator) PushDelete(_ context.Context, remote, name string) error {
	if f.err != nil {
		return f.err
	}
	f.pushDeletes = append(f.pushDeletes, remote+"/"+name)
	return nil
}

func TestIsStale(t *testing.T) {
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	testCases := []struct {
		name       string
		lastCommit time.Time
		threshold  int
		want       bool
	}{
		{"well past threshold", now.AddDate(0, 0, -40), 30, true},
		{"one day past threshold", now.AddDate(0, 0, -31), 30, true},
		{"exactly threshold days old", now.AddDate(0, 0, -30), 30, false},
		{"threshold plus half a day", now.Add(-30*24*time.Hour - 12*time.Hour), 30, false},
		{"fresh", now.AddDate(0, 0, -1), 30, false},
		{"same instant", now, 30, false},
		{"commit dated in the future", now.Add(time.Hour), 30, false},
		{"one second short of two days", now.Add(-48*time.Hour + time.Second), 1, false},
		{"exactly two days with threshold one", now.Add(-48 * time.Hour), 1, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, IsStale(tc.lastCommit, tc.threshold, now))
		})
	}
}

func TestClassify(t *testing.T) {
	classifier := NewClassifier([]string{"master", "develop"})

	testCases := []struct {
		name          string
		branch        string
		currentBranch string
		want          Class
	}{
		{"reserved branch", "master", "feature/x", ClassReserved},
		{"reserved wins over current", "develop", "develop", ClassReserved},
		{"current branch", "feature/x", "feature/x", ClassCurrent},
		{"eligible branch", "feature/x", "main", ClassEligible},
		{"matching is case-sensitive", "Master", "main", ClassEligible},
		{"qualification is never matched", "origin/master", "main", ClassEligible},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, classifier.Classify(tc.branch, tc.currentBranch))
		})
	}
}

func TestEvaluate(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	classifier := NewClassifier([]string{"master", "develop"})

	t.Run("reserved branch needs no history", func(t *testing.T) {
		history := &fakeHistory{}
		eng := New(classifier, history, clock)

		outcome, err := eng.Evaluate(ctx,
			types.BranchRef{Name: "master", Qualified: "master"},
			"feature/x",
			types.Params{Mode: types.ModeLocal, AgeDays: 30},
		)
		require.NoError(t, err)
		assert.Equal(t, types.OutcomeReserved, outcome.Kind)
		assert.Empty(t, history.calls)
	})

	t.Run("current branch needs no history", func(t *testing.T) {
		history := &fakeHistory{}
		eng := New(classifier, history, clock)

		outcome, err := eng.Evaluate(ctx,
			types.BranchRef{Name: "feature/x", Qualified: "feature/x"},
			"feature/x",
			types.Params{Mode: types.ModeLocal, AgeDays: 30},
		)
		require.NoError(t, err)
		assert.Equal(t, types.OutcomeCurrent, outcome.Kind)
		assert.Empty(t, history.calls)
	})

	t.Run("stale branch is deleted", func(t *testing.T) {
		staleTime := now.AddDate(0, 0, -40)
		history := &fakeHistory{times: map[string]time.Time{"feature/x": staleTime}}
		eng := New(classifier, history, clock)

		outcome, err := eng.Evaluate(ctx,
			types.BranchRef{Name: "feature/x", Qualified: "feature/x"},
			"main",
			types.Params{Mode: types.ModeLocal, AgeDays: 30},
		)
		require.NoError(t, err)
		assert.Equal(t, types.OutcomeDeleted, outcome.Kind)
		assert.Equal(t, staleTime, outcome.LastCommit)
	})

	t.Run("fresh branch is skipped", func(t *testing.T) {
		freshTime := now.AddDate(0, 0, -20)
		history := &fakeHistory{times: map[string]time.Time{"old": freshTime}}
		eng := New(classifier, history, clock)

		outcome, err := eng.Evaluate(ctx,
			types.BranchRef{Name: "old", Qualified: "old"},
			"main",
			types.Params{Mode: types.ModeLocal, AgeDays: 30},
		)
		require.NoError(t, err)
		assert.Equal(t, types.OutcomeSkipped, outcome.Kind)
		assert.Equal(t, freshTime, outcome.LastCommit)
	})

	t.Run("remote mode looks up the qualified ref", func(t *testing.T) {
		history := &fakeHistory{times: map[string]time.Time{
			"origin/old": now.AddDate(0, 0, -20),
		}}
		eng := New(classifier, history, clock)

		outcome, err := eng.Evaluate(ctx,
			types.BranchRef{Name: "old", Qualified: "origin/old"},
			"main",
			types.Params{Mode: types.ModeRemote, Remote: "origin", AgeDays: 30},
		)
		require.NoError(t, err)
		assert.Equal(t, types.OutcomeSkipped, outcome.Kind)
		assert.Equal(t, []string{"origin/old"}, history.calls)
	})

	t.Run("history failure propagates", func(t *testing.T) {
		lookupErr := errors.New("ref walk failed")
		history := &fakeHistory{err: lookupErr}
		eng := New(classifier, history, clock)

		_, err := eng.Evaluate(ctx,
			types.BranchRef{Name: "feature/x", Qualified: "feature/x"},
			"main",
			types.Params{Mode: types.ModeLocal, AgeDays: 30},
		)
		require.Error(t, err)
		assert.ErrorIs(t, err, lookupErr)
	})

	t.Run("evaluating twice yields identical outcomes", func(t *testing.T) {
		history := &fakeHistory{times: map[string]time.Time{
			"feature/x": now.AddDate(0, 0, -40),
		}}
		eng := New(classifier, history, clock)
		branch := types.BranchRef{Name: "feature/x", Qualified: "feature/x"}
		params := types.Params{Mode: types.ModeLocal, AgeDays: 30}

		first, err := eng.Evaluate(ctx, branch, "main", params)
		require.NoError(t, err)
		second, err := eng.Evaluate(ctx, branch, "main", params)
		require.NoError(t, err)
		assert.Equal(t, first, second)
	})
}

func TestApply(t *testing.T) {
	ctx := context.Background()
	eng := New(NewClassifier(nil), &fakeHistory{}, nil)
	deleted := types.Outcome{Kind: types.OutcomeDeleted, LastCommit: time.Now().AddDate(0, 0, -40)}

	t.Run("local deletion is invoked once", func(t *testing.T) {
		repo := &fakeMutator{}
		err := eng.Apply(ctx, deleted,
			types.BranchRef{Name: "feature/x", Qualified: "feature/x"},
			types.Params{Mode: types.ModeLocal, AgeDays: 30},
			repo,
		)
		require.NoError(t, err)
		assert.Equal(t, []string{"feature/x"}, repo.localDeletes)
		assert.Empty(t, repo.pushDeletes)
	})

	t.Run("remote deletion pushes to the short name", func(t *testing.T) {
		repo := &fakeMutator{}
		err := eng.Apply(ctx, deleted,
			types.BranchRef{Name: "old", Qualified: "origin/old"},
			types.Params{Mode: types.ModeRemote, Remote: "origin", AgeDays: 30},
			repo,
		)
		require.NoError(t, err)
		assert.Equal(t, []string{"origin/old"}, repo.pushDeletes)
		assert.Empty(t, repo.localDeletes)
	})

	t.Run("dry run never touches the repository", func(t *testing.T) {
		repo := &fakeMutator{err: errors.New("must not be called")}
		err := eng.Apply(ctx, deleted,
			types.BranchRef{Name: "feature/x", Qualified: "feature/x"},
			types.Params{Mode: types.ModeLocal, AgeDays: 30, DryRun: true},
			repo,
		)
		require.NoError(t, err)
	})

	t.Run("non-deleted outcomes are no-ops", func(t *testing.T) {
		repo := &fakeMutator{err: errors.New("must not be called")}
		for _, kind := range []types.OutcomeKind{types.OutcomeReserved, types.OutcomeCurrent, types.OutcomeSkipped} {
			err := eng.Apply(ctx, types.Outcome{Kind: kind},
				types.BranchRef{Name: "feature/x", Qualified: "feature/x"},
				types.Params{Mode: types.ModeLocal, AgeDays: 30},
				repo,
			)
			require.NoError(t, err)
		}
	})

	t.Run("deletion failure propagates", func(t *testing.T) {
		deleteErr := errors.New("branch is checked out elsewhere")
		repo := &fakeMutator{err: deleteErr}
		err := eng.Apply(ctx, deleted,
			types.BranchRef{Name: "feature/x", Qualified: "feature/x"},
			types.Params{Mode: types.ModeLocal, AgeDays: 30},
			repo,
		)
		assert.ErrorIs(t, err, deleteErr)
	})
}
