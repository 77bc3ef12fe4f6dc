package nfa

import (
	"github.com/coregx/coregen/internal/conv"
	"github.com/coregx/coregen/syntax"
)

// Builder allocates NFA states under a cap. It is used by Build and can be
// driven directly to assemble NFAs by hand.
//
// Once the arena holds maxStates states, AddState stops growing it and returns
// the most recently allocated state instead, setting Capped. Edges added to
// such a state are still recorded, so every ID handed out stays valid.
type Builder struct {
	states    []State
	maxStates int
	capped    bool
}

// NewBuilder creates a builder that allocates at most maxStates states.
// Non-positive values select DefaultMaxStates.
func NewBuilder(maxStates int) *Builder {
	if maxStates <= 0 {
		maxStates = DefaultMaxStates
	}
	return &Builder{
		states:    make([]State, 0, min(maxStates, 64)),
		maxStates: maxStates,
	}
}

// AddState allocates a state with no edges and returns its ID.
func (b *Builder) AddState() StateID {
	if len(b.states) >= b.maxStates {
		b.capped = true
		return b.states[len(b.states)-1].id
	}
	id := StateID(conv.IntToUint32(len(b.states)))
	b.states = append(b.states, State{id: id})
	return id
}

// AddEpsilon adds an epsilon edge from -> to.
func (b *Builder) AddEpsilon(from, to StateID) {
	s := &b.states[from]
	s.epsilon = append(s.epsilon, to)
}

// AddRange adds a transition from -> to on any unit in r.
func (b *Builder) AddRange(from, to StateID, r syntax.CharRange) {
	s := &b.states[from]
	s.transitions = append(s.transitions, Transition{Range: r, Next: to})
}

// States returns the current number of states
func (b *Builder) States() int {
	return len(b.states)
}

// Capped reports whether an allocation was refused.
func (b *Builder) Capped() bool {
	return b.capped
}

// Build finalizes the NFA with the given start and accept states.
func (b *Builder) Build(start, accept StateID) (*NFA, error) {
	n := &NFA{
		start:  start,
		accept: accept,
		states: b.states,
	}
	if err := n.Validate(); err != nil {
		return nil, err
	}
	return n, nil
}
