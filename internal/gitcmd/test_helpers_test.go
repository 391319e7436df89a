// Package gitcmd contains helpers for testing git command interactions.
// The _test suffix ensures this file is only included during tests.
package gitcmd

import (
	"context"
	"errors"
	"testing"
)

// mockRunner is a helper for tests to mock git command execution.
type mockRunner struct {
	mock func(ctx context.Context, dir string, args ...string) (string, error)
}

func (m *mockRunner) run(ctx context.Context, dir string, args ...string) (string, error) {
	if m.mock != nil {
		return m.mock(ctx, dir, args...)
	}
	return "", errors.New("mockRunner not implemented")
}

// setupMockRunner sets the package Runner to the mock and returns a teardown
// function restoring the original.
func setupMockRunner(_ *testing.T, mockFunc func(_ context.Context, dir string, args ...string) (string, error)) func() {
	originalRunner := Runner
	mock := &mockRunner{mock: mockFunc}
	Runner = mock.run
	return func() {
		Runner = originalRunner
	}
}
