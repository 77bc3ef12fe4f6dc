// Package dfa determinizes NFAs into DFAs over UTF-16 code units.
//
// Transitions are stored per state as a step function: a list of
// breakpoints sorted ascending, where an input unit follows the transition
// with the greatest breakpoint not above it. A transition to DeadState ends
// the preceding range; a unit below the first breakpoint has no transition.
// Either way the input is rejected.
package dfa

import (
	"fmt"
	"sort"
	"strings"

	"github.com/coregx/coregen/syntax"
)

// StateID identifies a DFA state by its index in the arena.
type StateID uint32

// DeadState is the target of a transition that rejects.
const DeadState StateID = 0xFFFFFFFF

// Transition starts a new step of the step function at Breakpoint.
type Transition struct {
	Breakpoint uint16
	Next       StateID
}

// State is a single DFA state.
type State struct {
	id          StateID
	accepting   bool
	transitions []Transition
}

// ID returns the state's identifier
func (s *State) ID() StateID {
	return s.id
}

// IsAccepting reports whether the state accepts.
func (s *State) IsAccepting() bool {
	return s.accepting
}

// Transitions returns the state's transitions in ascending breakpoint order.
func (s *State) Transitions() []Transition {
	return s.transitions
}

// Step returns the target for unit u, or DeadState.
func (s *State) Step(u uint16) StateID {
	ts := s.transitions
	// First transition whose breakpoint is above u; the one before it applies.
	i := sort.Search(len(ts), func(i int) bool { return ts[i].Breakpoint > u })
	if i == 0 {
		return DeadState
	}
	return ts[i-1].Next
}

// DFA is a deterministic automaton. It is immutable once built.
type DFA struct {
	start  StateID
	states []State
}

// New assembles a DFA from explicit states. Each entry of trans lists the
// transitions of the state with the same index; accepting flags likewise.
// It is meant for tests and hand-built automata and panics if the lengths
// differ or a transition list is not strictly increasing.
func New(start StateID, accepting []bool, trans [][]Transition) *DFA {
	if len(accepting) != len(trans) {
		panic("dfa: New: accepting and transition lists differ in length")
	}
	d := &DFA{start: start, states: make([]State, len(trans))}
	for i := range trans {
		ts := make([]Transition, len(trans[i]))
		copy(ts, trans[i])
		for j := 1; j < len(ts); j++ {
			if ts[j].Breakpoint <= ts[j-1].Breakpoint {
				panic(fmt.Sprintf("dfa: New: state %d breakpoints not strictly increasing", i))
			}
		}
		d.states[i] = State{id: StateID(i), accepting: accepting[i], transitions: ts}
	}
	return d
}

// Start returns the start state ID.
func (d *DFA) Start() StateID {
	return d.start
}

// NumStates returns the number of states.
func (d *DFA) NumStates() int {
	return len(d.states)
}

// State returns the state with the given ID, or nil if the ID is invalid.
func (d *DFA) State(id StateID) *State {
	if int(id) >= len(d.states) {
		return nil
	}
	return &d.states[id]
}

// IsAccepting reports whether id is an accepting state.
func (d *DFA) IsAccepting(id StateID) bool {
	if s := d.State(id); s != nil {
		return s.accepting
	}
	return false
}

// Transitions returns the transitions of id, or nil for an invalid ID.
func (d *DFA) Transitions(id StateID) []Transition {
	if s := d.State(id); s != nil {
		return s.transitions
	}
	return nil
}

// Step returns the target of id on unit u, or DeadState.
func (d *DFA) Step(id StateID, u uint16) StateID {
	if s := d.State(id); s != nil {
		return s.Step(u)
	}
	return DeadState
}

// Accepts reports whether the DFA accepts the whole of input, read as UTF-16
// code units.
func (d *DFA) Accepts(input string) bool {
	return d.AcceptsUnits(syntax.Encode(input))
}

// AcceptsUnits is like Accepts for input already encoded as UTF-16.
func (d *DFA) AcceptsUnits(units []uint16) bool {
	if len(d.states) == 0 {
		return false
	}
	id := d.start
	for _, u := range units {
		id = d.states[id].Step(u)
		if id == DeadState {
			return false
		}
	}
	return d.states[id].accepting
}

// String returns a multi-line dump of the DFA, one state per line.
func (d *DFA) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "DFA{states: %d, start: %d}\n", len(d.states), d.start)
	for i := range d.states {
		s := &d.states[i]
		mark := " "
		if s.accepting {
			mark = "*"
		}
		fmt.Fprintf(&sb, "%s%d:", mark, s.id)
		for _, t := range s.transitions {
			if t.Next == DeadState {
				fmt.Fprintf(&sb, " %#04x->dead", t.Breakpoint)
				continue
			}
			fmt.Fprintf(&sb, " %#04x->%d", t.Breakpoint, t.Next)
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
