// Package coregen compiles restricted regular expressions into automata over
// UTF-16 code units and uses them to synthesize strings that satisfy several
// constraints at once.
//
// It is the automata core of a JSON Schema data generator: given patterns
// such as those of patternProperties, it answers whether a string exists
// that matches all of them (and is not one of a set of declared names), and
// produces the shortest such strings.
//
// Basic usage:
//
//	re, err := coregen.Compile(`^[a-z]+_id$`)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(re.Accepts("user_id")) // true
//	fmt.Println(re.Witnesses(3).Words) // [a_id aa_id aaa_id]
//
// Conjunctions:
//
//	s, err := coregen.Synthesize(coregen.Constraint{
//	    Patterns: []string{`^x-[a-z]+$`, `^.{3,5}$`},
//	    Exclude:  []string{"x-a"},
//	}, 2, coregen.DefaultConfig())
//
// Every stage is capped (see Config). Hitting a cap never fails: results
// carry a Capped flag and should then be read as incomplete, not wrong.
//
// Pipeline, per pattern:
//   - syntax.Parse: pattern -> AST (fails on unsupported syntax)
//   - nfa.Build: AST -> Thompson NFA
//   - dfa.Build: NFA -> DFA by subset construction
//   - product.Build: DFAs -> intersection DFA plus emptiness/finiteness summary
//   - witness.Enumerate: DFA -> shortest accepted strings
package coregen

import (
	"github.com/coregx/coregen/dfa"
	"github.com/coregx/coregen/nfa"
	"github.com/coregx/coregen/product"
	"github.com/coregx/coregen/syntax"
	"github.com/coregx/coregen/witness"
)

// Regexp is a compiled pattern. It is immutable and safe for concurrent use.
type Regexp struct {
	pattern string
	config  Config
	nfa     nfa.Result
	dfa     dfa.Result
}

// Stats reports the size of each automaton and whether its cap was hit.
type Stats struct {
	NFAStates int
	NFACapped bool
	DFAStates int
	DFACapped bool
}

// Compile compiles pattern with the default configuration.
//
// Example:
//
//	re, err := coregen.Compile(`^\d{3}-\d{4}$`)
//	if err != nil {
//	    log.Fatal(err)
//	}
func Compile(pattern string) (*Regexp, error) {
	return CompileWithConfig(pattern, DefaultConfig())
}

// MustCompile is like Compile but panics if the pattern cannot be compiled.
func MustCompile(pattern string) *Regexp {
	re, err := Compile(pattern)
	if err != nil {
		panic("coregen: Compile(`" + pattern + "`): " + err.Error())
	}
	return re
}

// CompileWithConfig compiles pattern with custom caps.
//
// Parse failures are returned as *CompileError wrapping a *syntax.ParseError,
// so errors.Is(err, syntax.ErrParse) holds.
func CompileWithConfig(pattern string, config Config) (*Regexp, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	ast, err := syntax.Parse(pattern)
	if err != nil {
		return nil, &CompileError{Pattern: pattern, Err: err}
	}
	nr := nfa.Build(ast, config.nfaConfig())
	return &Regexp{
		pattern: pattern,
		config:  config,
		nfa:     nr,
		dfa:     dfa.Build(nr.NFA, config.dfaConfig()),
	}, nil
}

// String returns the source pattern.
func (r *Regexp) String() string {
	return r.pattern
}

// NFA returns the Thompson NFA.
func (r *Regexp) NFA() *nfa.NFA {
	return r.nfa.NFA
}

// DFA returns the determinized automaton.
func (r *Regexp) DFA() *dfa.DFA {
	return r.dfa.DFA
}

// Accepts reports whether the whole of s matches the pattern.
func (r *Regexp) Accepts(s string) bool {
	return r.dfa.DFA.Accepts(s)
}

// Capped reports whether the NFA or DFA construction hit its cap.
func (r *Regexp) Capped() bool {
	return r.nfa.Capped || r.dfa.Capped
}

// Stats returns construction statistics.
func (r *Regexp) Stats() Stats {
	return Stats{
		NFAStates: r.nfa.StateCount,
		NFACapped: r.nfa.Capped,
		DFAStates: r.dfa.StateCount,
		DFACapped: r.dfa.Capped,
	}
}

// Summary analyzes the pattern's language for emptiness and finiteness.
func (r *Regexp) Summary() product.Summary {
	s := product.Summarize(r.dfa.DFA)
	s.CapsHit = r.Capped()
	return s
}

// Witnesses returns up to k of the shortest strings the pattern accepts.
func (r *Regexp) Witnesses(k int) witness.Result {
	return witness.Enumerate(r.dfa.DFA, k, r.config.witnessConfig())
}
