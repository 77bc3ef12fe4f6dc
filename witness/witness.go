// Package witness enumerates the shortest strings accepted by an automaton.
//
// Enumeration is a breadth-first search over (state, word) pairs with
// transitions expanded in ascending breakpoint order, so the words come out
// ordered by length and then by code unit. Each breakpoint contributes one
// representative unit: its own value.
package witness

import (
	"github.com/coregx/coregen/dfa"
	"github.com/coregx/coregen/syntax"
)

// Automaton is the view of a DFA the enumerator needs. *dfa.DFA and
// *product.DFA implement it.
type Automaton interface {
	Start() dfa.StateID
	NumStates() int
	IsAccepting(id dfa.StateID) bool
	Transitions(id dfa.StateID) []dfa.Transition
}

// Default budgets.
const (
	DefaultMaxLength     = 64
	DefaultMaxCandidates = 10_000
)

// Config bounds one enumeration.
type Config struct {
	// MaxLength is the longest word, in code units, that is expanded
	// further. Longer words are never produced.
	MaxLength int

	// MaxCandidates caps the number of edges enqueued over the whole search.
	MaxCandidates int

	// Filter, if set, must return true for a word to be reported. Rejected
	// words are still expanded.
	Filter func(word string) bool
}

// DefaultConfig returns a configuration with sensible defaults.
func DefaultConfig() Config {
	return Config{
		MaxLength:     DefaultMaxLength,
		MaxCandidates: DefaultMaxCandidates,
	}
}

// WithMaxLength returns a new config with the specified length bound
func (c Config) WithMaxLength(n int) Config {
	c.MaxLength = n
	return c
}

// WithMaxCandidates returns a new config with the specified candidate budget
func (c Config) WithMaxCandidates(n int) Config {
	c.MaxCandidates = n
	return c
}

// WithFilter returns a new config with the specified word filter
func (c Config) WithFilter(f func(word string) bool) Config {
	c.Filter = f
	return c
}

// Result is the outcome of one enumeration.
type Result struct {
	// Words are the accepted words found, shortest first, then in ascending
	// code unit order. Callers must not re-sort them.
	Words []string

	// Units holds the same words as UTF-16 code units. Words decode unpaired
	// surrogates to U+FFFD; Units keeps them exact.
	Units [][]uint16

	// Tried counts enqueued edges.
	Tried int

	// Capped reports that the candidate budget ran out before the search
	// finished; Words may then be incomplete but are never wrong.
	Capped bool
}

type node struct {
	state dfa.StateID
	word  []uint16
}

// Enumerate returns up to limit of the shortest words accepted by a.
//
// Degenerate arguments (limit, MaxLength or MaxCandidates not positive)
// return an empty result; Capped is set only for an exhausted budget.
func Enumerate(a Automaton, limit int, config Config) Result {
	var res Result
	if config.MaxCandidates <= 0 {
		res.Capped = true
		return res
	}
	if limit <= 0 || config.MaxLength <= 0 || a.NumStates() == 0 {
		return res
	}

	queue := []node{{state: a.Start()}}
	for head := 0; head < len(queue); head++ {
		cur := queue[head]
		queue[head] = node{} // release the word for the collector

		if a.IsAccepting(cur.state) {
			word := syntax.Decode(cur.word)
			if config.Filter == nil || config.Filter(word) {
				res.Words = append(res.Words, word)
				res.Units = append(res.Units, cur.word)
				if len(res.Words) == limit {
					return res
				}
			}
		}
		if len(cur.word) >= config.MaxLength {
			continue
		}

		for _, t := range a.Transitions(cur.state) {
			if t.Next == dfa.DeadState {
				continue
			}
			word := make([]uint16, len(cur.word)+1)
			copy(word, cur.word)
			word[len(cur.word)] = t.Breakpoint
			queue = append(queue, node{state: t.Next, word: word})
			res.Tried++
			if res.Tried >= config.MaxCandidates {
				res.Capped = true
				return res
			}
		}
	}
	return res
}
