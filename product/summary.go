package product

import (
	"github.com/coregx/coregen/dfa"
)

// Summary describes the language of a product automaton.
type Summary struct {
	// States is the number of product states built.
	States int

	// Finite reports that the useful part of the automaton (states both
	// reachable and co-accessible) has no cycle, so the language is finite.
	Finite bool

	// Empty reports that no accepting state is reachable. A capped product
	// may report Empty for a language that is not; see CapsHit.
	Empty bool

	// CapsHit mirrors Result.Capped.
	CapsHit bool
}

// Summarize analyzes any DFA the same way Build analyzes a product.
func Summarize(d *dfa.DFA) Summary {
	return summarize(d, false)
}

// DFS colors for cycle detection.
const (
	white = iota
	gray
	black
)

func summarize(d *dfa.DFA, capped bool) Summary {
	n := d.NumStates()
	s := Summary{States: n, Finite: true, Empty: true, CapsHit: capped}
	if n == 0 {
		return s
	}

	// Forward reachability from the start state.
	reachable := make([]bool, n)
	reverse := make([][]dfa.StateID, n)
	stack := []dfa.StateID{d.Start()}
	reachable[d.Start()] = true
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, t := range d.Transitions(id) {
			if t.Next == dfa.DeadState {
				continue
			}
			reverse[t.Next] = append(reverse[t.Next], id)
			if !reachable[t.Next] {
				reachable[t.Next] = true
				stack = append(stack, t.Next)
			}
		}
	}

	// Co-accessibility: reverse traversal seeded by reachable accepting states.
	useful := make([]bool, n)
	for i := 0; i < n; i++ {
		id := dfa.StateID(i)
		if reachable[i] && d.IsAccepting(id) {
			s.Empty = false
			useful[i] = true
			stack = append(stack, id)
		}
	}
	for len(stack) > 0 {
		id := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, prev := range reverse[id] {
			if !useful[prev] {
				useful[prev] = true
				stack = append(stack, prev)
			}
		}
	}

	s.Finite = !hasCycle(d, useful)
	return s
}

// hasCycle runs an iterative three-color DFS over the subgraph induced by
// the states marked in sub. Meeting a gray state means a back edge.
func hasCycle(d *dfa.DFA, sub []bool) bool {
	color := make([]uint8, len(sub))
	type frame struct {
		id   dfa.StateID
		next int // index of the next transition to visit
	}

	for root := range sub {
		if !sub[root] || color[root] != white {
			continue
		}
		stack := []frame{{id: dfa.StateID(root)}}
		color[root] = gray
		for len(stack) > 0 {
			top := &stack[len(stack)-1]
			trans := d.Transitions(top.id)
			if top.next == len(trans) {
				color[top.id] = black
				stack = stack[:len(stack)-1]
				continue
			}
			t := trans[top.next]
			top.next++
			if t.Next == dfa.DeadState || !sub[t.Next] {
				continue
			}
			switch color[t.Next] {
			case gray:
				return true
			case white:
				color[t.Next] = gray
				stack = append(stack, frame{id: t.Next})
			}
		}
	}
	return false
}
