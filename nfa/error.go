// Package nfa builds Thompson NFAs over UTF-16 code units from a syntax.Node.
//
// An NFA is an arena of states addressed by StateID. States carry epsilon
// edges and range transitions; there is exactly one start and one accept
// state. Construction is capped: past Config.MaxStates the builder stops
// allocating and reports Capped instead of failing.
package nfa

import (
	"errors"
	"fmt"
)

// Common NFA errors
var (
	// ErrInvalidState indicates a state ID outside the NFA's arena
	ErrInvalidState = errors.New("invalid NFA state")

	// ErrNilNFA indicates an operation on a nil NFA
	ErrNilNFA = errors.New("nil NFA")
)

// BuildError reports a structural defect found by Validate.
type BuildError struct {
	Message string
	StateID StateID
}

// Error implements the error interface
func (e *BuildError) Error() string {
	if e.StateID != InvalidState {
		return fmt.Sprintf("NFA build error at state %d: %s", e.StateID, e.Message)
	}
	return fmt.Sprintf("NFA build error: %s", e.Message)
}

// Unwrap lets errors.Is match ErrInvalidState.
func (e *BuildError) Unwrap() error {
	return ErrInvalidState
}
