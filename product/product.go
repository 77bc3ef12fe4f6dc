// Package product intersects DFAs by synchronized product construction and
// summarizes the result for emptiness and finiteness.
//
// A product state is a tuple holding one state of every component DFA. It
// accepts iff every component accepts, so the product recognizes the
// intersection of the component languages.
package product

import (
	"sort"
	"strconv"
	"strings"

	"github.com/coregx/coregen/dfa"
	"github.com/coregx/coregen/internal/conv"
)

// DefaultMaxStates is the state cap used when Config.MaxStates is unset.
const DefaultMaxStates = 4096

// Config configures product construction.
type Config struct {
	// MaxStates caps the number of product states. Non-positive values
	// select DefaultMaxStates.
	MaxStates int
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{MaxStates: DefaultMaxStates}
}

// WithMaxStates returns a new config with the specified state cap
func (c Config) WithMaxStates(maxStates int) Config {
	c.MaxStates = maxStates
	return c
}

func (c Config) maxStates() int {
	if c.MaxStates <= 0 {
		return DefaultMaxStates
	}
	return c.MaxStates
}

// DFA is a product automaton. It behaves as a *dfa.DFA and also records the
// component tuple behind each state.
type DFA struct {
	*dfa.DFA
	tuples [][]dfa.StateID
}

// Tuple returns the component states of product state id, or nil if id is
// invalid. The slice must not be modified.
func (p *DFA) Tuple(id dfa.StateID) []dfa.StateID {
	if int(id) >= len(p.tuples) {
		return nil
	}
	return p.tuples[id]
}

// Result is the outcome of one product construction.
type Result struct {
	DFA        *DFA
	StateCount int
	Capped     bool
	Summary    Summary
}

// builder performs product construction over a fixed set of components.
type builder struct {
	components []*dfa.DFA
	maxStates  int
	accepting  []bool
	trans      [][]dfa.Transition
	tuples     [][]dfa.StateID
	index      map[string]dfa.StateID
	queue      []dfa.StateID
	capped     bool
}

// Build computes the product of components.
//
// Breakpoints of a tuple state are the union of its components' own
// breakpoints. At each one every component steps independently; if any
// component rejects, no product state is created for it. When a new tuple
// would exceed the cap, Capped is set and the step is dropped, leaving a
// partial product whose built part is still exact.
//
// With no components Build returns the identity for intersection: a single
// accepting state that loops on every unit.
func Build(components []*dfa.DFA, config Config) Result {
	if len(components) == 0 {
		return identity()
	}

	b := &builder{
		components: components,
		maxStates:  config.maxStates(),
		index:      make(map[string]dfa.StateID),
	}

	startTuple := make([]dfa.StateID, len(components))
	for i, c := range components {
		if c.NumStates() == 0 {
			// A component with no states accepts nothing.
			startTuple = nil
			break
		}
		startTuple[i] = c.Start()
	}

	start := b.add(startTuple)
	for len(b.queue) > 0 {
		id := b.queue[0]
		b.queue = b.queue[1:]
		b.expand(id)
	}

	p := &DFA{
		DFA:    dfa.New(start, b.accepting, b.trans),
		tuples: b.tuples,
	}
	return Result{
		DFA:        p,
		StateCount: p.NumStates(),
		Capped:     b.capped,
		Summary:    summarize(p.DFA, b.capped),
	}
}

func identity() Result {
	d := dfa.New(0, []bool{true}, [][]dfa.Transition{{{Breakpoint: 0, Next: 0}}})
	return Result{
		DFA:        &DFA{DFA: d, tuples: [][]dfa.StateID{{}}},
		StateCount: 1,
		Summary:    Summary{States: 1, Finite: false, Empty: true},
	}
}

// tupleKey returns the canonical key of a tuple.
func tupleKey(tuple []dfa.StateID) string {
	var sb strings.Builder
	for i, id := range tuple {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatUint(uint64(id), 10))
	}
	return sb.String()
}

// add registers tuple as a new product state and queues it. A nil tuple
// stands for a start state that cannot move and never accepts.
func (b *builder) add(tuple []dfa.StateID) dfa.StateID {
	id := dfa.StateID(conv.IntToUint32(len(b.tuples)))
	accepting := tuple != nil
	for i, s := range tuple {
		if !b.components[i].IsAccepting(s) {
			accepting = false
			break
		}
	}
	b.tuples = append(b.tuples, tuple)
	b.accepting = append(b.accepting, accepting)
	b.trans = append(b.trans, nil)
	if tuple != nil {
		b.index[tupleKey(tuple)] = id
		b.queue = append(b.queue, id)
	}
	return id
}

// lookup returns the product state for tuple, creating it if the cap allows.
func (b *builder) lookup(tuple []dfa.StateID) dfa.StateID {
	if id, ok := b.index[tupleKey(tuple)]; ok {
		return id
	}
	if len(b.tuples) >= b.maxStates {
		b.capped = true
		return dfa.DeadState
	}
	stored := make([]dfa.StateID, len(tuple))
	copy(stored, tuple)
	return b.add(stored)
}

// breakpoints returns the sorted union of the components' breakpoints.
func (b *builder) breakpoints(tuple []dfa.StateID) []uint16 {
	seen := make(map[uint16]struct{})
	for i, s := range tuple {
		for _, t := range b.components[i].Transitions(s) {
			seen[t.Breakpoint] = struct{}{}
		}
	}
	bps := make([]uint16, 0, len(seen))
	for bp := range seen {
		bps = append(bps, bp)
	}
	sort.Slice(bps, func(i, j int) bool { return bps[i] < bps[j] })
	return bps
}

func (b *builder) expand(id dfa.StateID) {
	tuple := b.tuples[id]
	next := make([]dfa.StateID, len(tuple))
	var trans []dfa.Transition

	for _, bp := range b.breakpoints(tuple) {
		target := dfa.DeadState
		live := true
		for i, s := range tuple {
			next[i] = b.components[i].Step(s, bp)
			if next[i] == dfa.DeadState {
				live = false
				break
			}
		}
		if live {
			target = b.lookup(next)
		}
		// A dead step after a live one must be kept: it ends that range.
		if target == dfa.DeadState && (len(trans) == 0 || trans[len(trans)-1].Next == dfa.DeadState) {
			continue
		}
		trans = append(trans, dfa.Transition{Breakpoint: bp, Next: target})
	}
	b.trans[id] = trans
}
