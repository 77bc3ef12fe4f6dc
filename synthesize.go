package coregen

import (
	"fmt"

	"github.com/coregx/ahocorasick"

	"github.com/coregx/coregen/dfa"
	"github.com/coregx/coregen/product"
	"github.com/coregx/coregen/witness"
)

// Constraint describes the strings to synthesize, e.g. property names under
// additionalProperties:false with patternProperties.
type Constraint struct {
	// Patterns must all match the whole string.
	Patterns []string

	// Exclude lists exact strings that must not be produced, such as names
	// already declared in properties.
	Exclude []string

	// Forbid lists substrings that must not occur anywhere in the string.
	// Candidates are checked in decoded form, where an unpaired surrogate
	// reads as U+FFFD, so forbidding "\uFFFD" also rejects such candidates.
	Forbid []string
}

// Synthesis is the outcome of Synthesize.
type Synthesis struct {
	// Words are the shortest satisfying strings, shortest first.
	Words []string

	// Summary describes the product of Patterns and Exclude. It does not
	// account for Forbid, which is applied to candidates only.
	Summary product.Summary

	// Tried counts candidate edges explored by the search.
	Tried int

	// Capped reports that some stage hit its cap; Words may be incomplete.
	Capped bool
}

// Synthesize returns up to k of the shortest strings satisfying c.
//
// Patterns and Exclude are intersected as automata. Forbid is checked on
// each candidate with an Aho-Corasick automaton, so forbidden words cost
// search budget but never reach the result.
func Synthesize(c Constraint, k int, config Config) (*Synthesis, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	filter, err := forbidFilter(c.Forbid)
	if err != nil {
		return nil, err
	}

	components := make([]*dfa.DFA, 0, len(c.Patterns)+1)
	capped := false
	for _, p := range c.Patterns {
		re, err := CompileWithConfig(p, config)
		if err != nil {
			return nil, err
		}
		components = append(components, re.DFA())
		capped = capped || re.Capped()
	}
	if len(c.Exclude) > 0 {
		components = append(components, dfa.ExcludeLiterals(c.Exclude))
	}

	in := intersect(config, components, capped)
	wc := in.config.witnessConfig()
	wc.Filter = filter

	res := witness.Enumerate(in.result.DFA, k, wc)
	return &Synthesis{
		Words:   res.Words,
		Summary: in.Summary(),
		Tried:   res.Tried,
		Capped:  in.Capped() || res.Capped,
	}, nil
}

// forbidFilter returns a filter rejecting words that contain any of
// forbidden, or nil when there is nothing to forbid.
func forbidFilter(forbidden []string) (func(string) bool, error) {
	builder := ahocorasick.NewBuilder()
	patterns := 0
	for _, f := range forbidden {
		if f == "" {
			// Every string contains the empty string.
			return func(string) bool { return false }, nil
		}
		builder.AddPattern([]byte(f))
		patterns++
	}
	if patterns == 0 {
		return nil, nil
	}
	ac, err := builder.Build()
	if err != nil {
		return nil, fmt.Errorf("coregen: build forbidden substring matcher: %w", err)
	}
	return func(word string) bool {
		return !ac.IsMatch([]byte(word))
	}, nil
}
