package coregen

import (
	"github.com/coregx/coregen/dfa"
	"github.com/coregx/coregen/product"
	"github.com/coregx/coregen/witness"
)

// Intersection is the conjunction of several compiled patterns.
type Intersection struct {
	config           Config
	result           product.Result
	componentsCapped bool
}

// Intersect builds the product of the given patterns' DFAs. With no
// patterns the intersection accepts every string.
func Intersect(config Config, regexps ...*Regexp) (*Intersection, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	components := make([]*dfa.DFA, len(regexps))
	capped := false
	for i, re := range regexps {
		components[i] = re.DFA()
		capped = capped || re.Capped()
	}
	return intersect(config, components, capped), nil
}

func intersect(config Config, components []*dfa.DFA, capped bool) *Intersection {
	return &Intersection{
		config:           config,
		result:           product.Build(components, config.productConfig()),
		componentsCapped: capped,
	}
}

// DFA returns the product automaton.
func (i *Intersection) DFA() *product.DFA {
	return i.result.DFA
}

// Accepts reports whether s matches every pattern.
func (i *Intersection) Accepts(s string) bool {
	return i.result.DFA.Accepts(s)
}

// Summary returns the product's emptiness and finiteness analysis.
// CapsHit reflects the product cap only; see Capped for all stages.
func (i *Intersection) Summary() product.Summary {
	return i.result.Summary
}

// Capped reports whether any stage, including the components, hit a cap.
func (i *Intersection) Capped() bool {
	return i.result.Capped || i.componentsCapped
}

// Witnesses returns up to k of the shortest strings matching every pattern.
func (i *Intersection) Witnesses(k int) witness.Result {
	return witness.Enumerate(i.result.DFA, k, i.config.witnessConfig())
}
