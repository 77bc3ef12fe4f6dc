package nfa

import (
	"fmt"

	"github.com/coregx/coregen/syntax"
)

// StateID identifies an NFA state by its index in the arena.
type StateID uint32

// InvalidState represents an invalid/uninitialized state ID
const InvalidState StateID = 0xFFFFFFFF

// Transition is a range-labelled edge: any code unit in Range moves to Next.
type Transition struct {
	Range syntax.CharRange
	Next  StateID
}

// State is a single NFA state with its outgoing edges.
type State struct {
	id          StateID
	epsilon     []StateID
	transitions []Transition
}

// ID returns the state's identifier
func (s *State) ID() StateID {
	return s.id
}

// Epsilon returns the targets of the state's epsilon edges.
func (s *State) Epsilon() []StateID {
	return s.epsilon
}

// Transitions returns the state's range transitions.
func (s *State) Transitions() []Transition {
	return s.transitions
}

// String returns a human-readable representation of the state
func (s *State) String() string {
	return fmt.Sprintf("State(%d, eps %v, %d transitions)", s.id, s.epsilon, len(s.transitions))
}

// NFA is a compiled Thompson NFA. It is immutable once built.
type NFA struct {
	start  StateID
	accept StateID
	states []State
}

// Start returns the start state ID.
func (n *NFA) Start() StateID {
	return n.start
}

// Accept returns the single accepting state ID.
func (n *NFA) Accept() StateID {
	return n.accept
}

// State returns the state with the given ID, or nil if the ID is invalid.
func (n *NFA) State(id StateID) *State {
	if int(id) >= len(n.states) {
		return nil
	}
	return &n.states[id]
}

// IsMatch reports whether id is the accepting state.
func (n *NFA) IsMatch(id StateID) bool {
	return id == n.accept
}

// States returns the total number of states in the NFA
func (n *NFA) States() int {
	return len(n.states)
}

// Validate checks that start, accept and every edge target index the arena.
func (n *NFA) Validate() error {
	if n == nil {
		return ErrNilNFA
	}
	if int(n.start) >= len(n.states) {
		return &BuildError{Message: "start state out of bounds", StateID: n.start}
	}
	if int(n.accept) >= len(n.states) {
		return &BuildError{Message: "accept state out of bounds", StateID: n.accept}
	}
	for i := range n.states {
		s := &n.states[i]
		for _, e := range s.epsilon {
			if int(e) >= len(n.states) {
				return &BuildError{Message: fmt.Sprintf("invalid epsilon target %d", e), StateID: s.id}
			}
		}
		for j, t := range s.transitions {
			if int(t.Next) >= len(n.states) {
				return &BuildError{Message: fmt.Sprintf("invalid transition %d target %d", j, t.Next), StateID: s.id}
			}
		}
	}
	return nil
}

// String returns a human-readable representation of the NFA
func (n *NFA) String() string {
	return fmt.Sprintf("NFA{states: %d, start: %d, accept: %d}", len(n.states), n.start, n.accept)
}
