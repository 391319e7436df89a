// Package prompt implements the interactive choice step used to resolve
// session parameters: mode, remote, and day threshold.
package prompt

import (
	"errors"
	"fmt"
)

// ErrCanceled is returned when the user aborts a choice.
var ErrCanceled = errors.New("choice canceled")

// ChoiceProvider asks the user to pick one of options, with the cursor
// starting on defaultIndex.
type ChoiceProvider interface {
	Choose(prompt string, options []string, defaultIndex int) (string, error)
}

// Scripted replays a fixed sequence of answers in order. It backs tests and
// non-interactive scripting; an empty option set resolves to an empty
// choice without consuming an answer, mirroring Terminal.
type Scripted struct {
	Answers []string
	next    int
}

// Choose returns the next scripted answer.
func (s *Scripted) Choose(prompt string, options []string, _ int) (string, error) {
	if len(options) == 0 {
		return "", nil
	}
	if s.next >= len(s.Answers) {
		return "", fmt.Errorf("no scripted answer left for prompt %q", prompt)
	}
	answer := s.Answers[s.next]
	s.next++
	return answer, nil
}
