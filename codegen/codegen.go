// Package codegen renders a DFA as a standalone Go matcher function.
//
// The generated function walks the input as UTF-16 code units with one
// switch per state, so it accepts exactly the strings the DFA accepts and
// needs nothing beyond the standard library at run time.
package codegen

import (
	"errors"
	"fmt"
	"go/token"
	"io"

	"github.com/dave/jennifer/jen"

	"github.com/coregx/coregen/dfa"
	"github.com/coregx/coregen/syntax"
)

// ErrInvalidOptions indicates unusable generation options.
var ErrInvalidOptions = errors.New("invalid codegen options")

// Options configures code generation.
type Options struct {
	// Package is the package clause of the generated file.
	Package string

	// Func is the name of the generated function.
	Func string

	// Pattern, if set, is quoted in the function's doc comment.
	Pattern string
}

// Validate checks that Package and Func are Go identifiers.
func (o Options) Validate() error {
	if !token.IsIdentifier(o.Package) {
		return fmt.Errorf("%w: package name %q", ErrInvalidOptions, o.Package)
	}
	if !token.IsIdentifier(o.Func) {
		return fmt.Errorf("%w: function name %q", ErrInvalidOptions, o.Func)
	}
	return nil
}

// span is an inclusive unit range leading to one state.
type span struct {
	lo, hi int
}

// Generate builds the source file for d.
func Generate(d *dfa.DFA, opts Options) (*jen.File, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	f := jen.NewFile(opts.Package)
	f.HeaderComment("Code generated by coregen. DO NOT EDIT.")
	if opts.Pattern != "" {
		f.Commentf("%s reports whether s matches %q in full.", opts.Func, opts.Pattern)
	} else {
		f.Commentf("%s reports whether s is accepted in full.", opts.Func)
	}
	f.Func().Id(opts.Func).Params(jen.Id("s").String()).Bool().Block(body(d)...)
	return f, nil
}

// Render generates the source for d and writes it, gofmt'ed, to w.
func Render(d *dfa.DFA, opts Options, w io.Writer) error {
	f, err := Generate(d, opts)
	if err != nil {
		return err
	}
	return f.Render(w)
}

func body(d *dfa.DFA) []jen.Code {
	if d.NumStates() == 0 {
		return []jen.Code{jen.Return(jen.False())}
	}

	var cases []jen.Code
	var accepting []jen.Code
	live := false
	for i := 0; i < d.NumStates(); i++ {
		id := dfa.StateID(i)
		if d.IsAccepting(id) {
			accepting = append(accepting, jen.Lit(i))
		}
		stateCase, ok := stateSwitch(d.Transitions(id))
		live = live || ok
		cases = append(cases, jen.Case(jen.Lit(i)).Block(stateCase...))
	}

	if !live {
		// No state consumes input: only the empty string can match.
		if d.IsAccepting(d.Start()) {
			return []jen.Code{jen.Return(jen.Id("s").Op("==").Lit(""))}
		}
		return []jen.Code{jen.Return(jen.False())}
	}

	cases = append(cases, jen.Default().Block(jen.Return(jen.False())))
	stmts := []jen.Code{
		jen.Id("state").Op(":=").Lit(int(d.Start())),
		jen.For(
			jen.List(jen.Id("_"), jen.Id("u")).Op(":=").Range().
				Qual("unicode/utf16", "Encode").Call(jen.Index().Rune().Call(jen.Id("s"))),
		).Block(
			jen.Switch(jen.Id("state")).Block(cases...),
		),
	}
	if len(accepting) > 0 {
		stmts = append(stmts, jen.Switch(jen.Id("state")).Block(
			jen.Case(accepting...).Block(jen.Return(jen.True())),
		))
	}
	return append(stmts, jen.Return(jen.False()))
}

// stateSwitch emits the body of one state's case. ok reports whether the
// state has any live transition.
func stateSwitch(trans []dfa.Transition) (code []jen.Code, ok bool) {
	targets, spans := groupSpans(trans)
	if len(targets) == 0 {
		return []jen.Code{jen.Return(jen.False())}, false
	}

	var cases []jen.Code
	for _, target := range targets {
		cases = append(cases, jen.Case(condition(spans[target])).Block(
			jen.Id("state").Op("=").Lit(int(target)),
		))
	}
	cases = append(cases, jen.Default().Block(jen.Return(jen.False())))
	return []jen.Code{jen.Switch().Block(cases...)}, true
}

// groupSpans converts a step function into unit spans grouped by target,
// keeping targets in order of first appearance.
func groupSpans(trans []dfa.Transition) ([]dfa.StateID, map[dfa.StateID][]span) {
	var order []dfa.StateID
	spans := make(map[dfa.StateID][]span)
	for i, t := range trans {
		if t.Next == dfa.DeadState {
			continue
		}
		hi := syntax.MaxUnit
		if i+1 < len(trans) {
			hi = int(trans[i+1].Breakpoint) - 1
		}
		if _, seen := spans[t.Next]; !seen {
			order = append(order, t.Next)
		}
		spans[t.Next] = append(spans[t.Next], span{lo: int(t.Breakpoint), hi: hi})
	}
	return order, spans
}

// condition renders "u is inside one of spans".
func condition(spans []span) jen.Code {
	var c *jen.Statement
	for _, s := range spans {
		term := spanTest(s)
		if c == nil {
			c = term
			continue
		}
		c = c.Op("||").Add(term)
	}
	return c
}

func spanTest(s span) *jen.Statement {
	u := jen.Id("u")
	switch {
	case s.lo == s.hi:
		return u.Op("==").Id(hex(s.lo))
	case s.lo == 0:
		return u.Op("<=").Id(hex(s.hi))
	case s.hi == syntax.MaxUnit:
		return u.Op(">=").Id(hex(s.lo))
	default:
		return jen.Parens(u.Op(">=").Id(hex(s.lo)).Op("&&").Id("u").Op("<=").Id(hex(s.hi)))
	}
}

func hex(v int) string {
	return fmt.Sprintf("0x%04X", v)
}
