package nfa

import (
	"github.com/coregx/coregen/internal/sparse"
	"github.com/coregx/coregen/syntax"
)

// EpsilonClosure returns the sorted set of states reachable from ids through
// epsilon edges alone, ids included.
func (n *NFA) EpsilonClosure(ids []StateID) []StateID {
	set := sparse.New(len(n.states))
	n.closeInto(set, ids)
	sorted := set.Sorted()
	out := make([]StateID, len(sorted))
	for i, v := range sorted {
		out[i] = StateID(v)
	}
	return out
}

// closeInto adds ids and their epsilon closure to set.
// Iterative DFS; the set doubles as the visited marker.
func (n *NFA) closeInto(set *sparse.Set, ids []StateID) {
	stack := make([]StateID, 0, len(ids)*2)
	for _, id := range ids {
		if set.Insert(uint32(id)) {
			stack = append(stack, id)
		}
	}
	for len(stack) > 0 {
		cur := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, next := range n.states[cur].epsilon {
			if set.Insert(uint32(next)) {
				stack = append(stack, next)
			}
		}
	}
}

// Accepts reports whether the NFA accepts the whole of input, read as UTF-16
// code units. It simulates all active states at once and never backtracks.
func (n *NFA) Accepts(input string) bool {
	return n.AcceptsUnits(syntax.Encode(input))
}

// AcceptsUnits is like Accepts for input already encoded as UTF-16.
func (n *NFA) AcceptsUnits(units []uint16) bool {
	if len(n.states) == 0 {
		return false
	}
	curr := sparse.New(len(n.states))
	next := sparse.New(len(n.states))
	n.closeInto(curr, []StateID{n.start})

	var targets []StateID
	for _, u := range units {
		targets = targets[:0]
		for _, id := range curr.Values() {
			for _, t := range n.states[id].transitions {
				if t.Range.Contains(u) {
					targets = append(targets, t.Next)
				}
			}
		}
		if len(targets) == 0 {
			return false
		}
		next.Clear()
		n.closeInto(next, targets)
		curr, next = next, curr
	}
	return curr.Contains(uint32(n.accept))
}
