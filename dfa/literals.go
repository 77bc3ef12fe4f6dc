package dfa

import (
	"sort"

	"github.com/coregx/coregen/internal/conv"
	"github.com/coregx/coregen/syntax"
)

// trie is a prefix tree over UTF-16 code units. Node 0 is the root.
type trie struct {
	children []map[uint16]int
	terminal []bool
}

func newTrie(words []string) *trie {
	t := &trie{
		children: []map[uint16]int{{}},
		terminal: []bool{false},
	}
	for _, w := range words {
		node := 0
		for _, u := range syntax.Encode(w) {
			next, ok := t.children[node][u]
			if !ok {
				next = len(t.children)
				t.children = append(t.children, map[uint16]int{})
				t.terminal = append(t.terminal, false)
				t.children[node][u] = next
			}
			node = next
		}
		t.terminal[node] = true
	}
	return t
}

// transitions renders node's children as a step function where every unit
// without a child goes to fill.
func (t *trie) transitions(node int, fill StateID) []Transition {
	units := make([]int, 0, len(t.children[node]))
	for u := range t.children[node] {
		units = append(units, int(u))
	}
	sort.Ints(units)

	var trans []Transition
	next := 0 // first unit not yet covered
	for _, u := range units {
		if u > next {
			trans = appendTransition(trans, conv.IntToUint16(next), fill)
		}
		child := StateID(conv.IntToUint32(t.children[node][uint16(u)]))
		trans = append(trans, Transition{Breakpoint: uint16(u), Next: child})
		next = u + 1
	}
	if next <= syntax.MaxUnit {
		trans = appendTransition(trans, conv.IntToUint16(next), fill)
	}
	return trans
}

// Literals returns a DFA accepting exactly the given words.
func Literals(words []string) *DFA {
	t := newTrie(words)
	d := &DFA{states: make([]State, len(t.children))}
	for i := range t.children {
		d.states[i] = State{
			id:          StateID(conv.IntToUint32(i)),
			accepting:   t.terminal[i],
			transitions: t.transitions(i, DeadState),
		}
	}
	return d
}

// ExcludeLiterals returns a DFA accepting every string except the given
// words. Intersecting it with a pattern's DFA removes those words, which is
// how declared property names are kept out of generated ones.
func ExcludeLiterals(words []string) *DFA {
	t := newTrie(words)
	sink := StateID(conv.IntToUint32(len(t.children)))
	d := &DFA{states: make([]State, len(t.children)+1)}
	for i := range t.children {
		d.states[i] = State{
			id:          StateID(conv.IntToUint32(i)),
			accepting:   !t.terminal[i],
			transitions: t.transitions(i, sink),
		}
	}
	d.states[sink] = State{
		id:          sink,
		accepting:   true,
		transitions: []Transition{{Breakpoint: 0, Next: sink}},
	}
	return d
}
