package dfa

import (
	"sort"
	"strconv"
	"strings"

	"github.com/coregx/coregen/internal/conv"
	"github.com/coregx/coregen/nfa"
	"github.com/coregx/coregen/syntax"
)

// Result is the outcome of one determinization.
type Result struct {
	DFA *DFA

	// StateCount is the number of DFA states built.
	StateCount int

	// Capped reports that at least one subset was not built because of
	// Config.MaxStates. Missing states reject, so the DFA accepts a subset
	// of the NFA's language.
	Capped bool
}

// builder performs subset construction for one NFA.
type builder struct {
	nfa       *nfa.NFA
	maxStates int
	states    []State
	sets      [][]nfa.StateID    // NFA state set of each DFA state
	index     map[string]StateID // canonical set key -> DFA state
	queue     []StateID
	capped    bool
}

// Build determinizes n by subset construction.
//
// The start state is the epsilon closure of the NFA start. States are
// expanded breadth-first. For each state the breakpoints are the lower
// bound of every range leaving its NFA set and the unit just past every
// upper bound, so the target set is constant between two breakpoints.
// A state accepts iff its NFA set contains the NFA accept state.
func Build(n *nfa.NFA, config Config) Result {
	b := &builder{
		nfa:       n,
		maxStates: config.maxStates(),
		index:     make(map[string]StateID),
	}

	start := b.add(n.EpsilonClosure([]nfa.StateID{n.Start()}))
	for len(b.queue) > 0 {
		id := b.queue[0]
		b.queue = b.queue[1:]
		b.expand(id)
	}

	return Result{
		DFA:        &DFA{start: start, states: b.states},
		StateCount: len(b.states),
		Capped:     b.capped,
	}
}

// Compile parses pattern, builds its NFA and determinizes it. The NFA uses
// the same state cap as the DFA; Capped reports either cap.
func Compile(pattern string, config Config) (Result, error) {
	nr, err := nfa.Compile(pattern, nfa.Config{MaxStates: config.MaxStates})
	if err != nil {
		return Result{}, err
	}
	r := Build(nr.NFA, config)
	r.Capped = r.Capped || nr.Capped
	return r, nil
}

// setKey returns the canonical key of a sorted NFA state set.
func setKey(set []nfa.StateID) string {
	var sb strings.Builder
	for i, id := range set {
		if i > 0 {
			sb.WriteByte(',')
		}
		sb.WriteString(strconv.FormatUint(uint64(id), 10))
	}
	return sb.String()
}

// add registers a new DFA state for set and queues it for expansion.
func (b *builder) add(set []nfa.StateID) StateID {
	id := StateID(conv.IntToUint32(len(b.states)))
	accepting := false
	for _, s := range set {
		if b.nfa.IsMatch(s) {
			accepting = true
			break
		}
	}
	b.states = append(b.states, State{id: id, accepting: accepting})
	b.sets = append(b.sets, set)
	b.index[setKey(set)] = id
	b.queue = append(b.queue, id)
	return id
}

// lookup returns the DFA state for set, creating it if the cap allows.
func (b *builder) lookup(set []nfa.StateID) StateID {
	if id, ok := b.index[setKey(set)]; ok {
		return id
	}
	if len(b.states) >= b.maxStates {
		b.capped = true
		return DeadState
	}
	return b.add(set)
}

// breakpoints returns the sorted, distinct range boundaries leaving set.
func (b *builder) breakpoints(set []nfa.StateID) []int {
	seen := make(map[int]struct{})
	for _, s := range set {
		for _, t := range b.nfa.State(s).Transitions() {
			seen[int(t.Range.Lo)] = struct{}{}
			if t.Range.Hi < syntax.MaxUnit {
				seen[int(t.Range.Hi)+1] = struct{}{}
			}
		}
	}
	bps := make([]int, 0, len(seen))
	for bp := range seen {
		bps = append(bps, bp)
	}
	sort.Ints(bps)
	return bps
}

func (b *builder) expand(id StateID) {
	set := b.sets[id]
	var trans []Transition
	var targets []nfa.StateID

	for _, bp := range b.breakpoints(set) {
		u := conv.IntToUint16(bp)
		targets = targets[:0]
		for _, s := range set {
			for _, t := range b.nfa.State(s).Transitions() {
				if t.Range.Contains(u) {
					targets = append(targets, t.Next)
				}
			}
		}

		next := DeadState
		if len(targets) > 0 {
			next = b.lookup(b.nfa.EpsilonClosure(targets))
		}
		trans = appendTransition(trans, u, next)
	}
	b.states[id].transitions = trans
}

// appendTransition appends (bp, next) unless it is a dead step that follows
// nothing live: a leading dead step or a second dead step in a row changes
// nothing in the step function.
func appendTransition(trans []Transition, bp uint16, next StateID) []Transition {
	if next == DeadState && (len(trans) == 0 || trans[len(trans)-1].Next == DeadState) {
		return trans
	}
	return append(trans, Transition{Breakpoint: bp, Next: next})
}
