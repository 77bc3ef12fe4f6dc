package nfa

import (
	"github.com/coregx/coregen/syntax"
)

// Result is the outcome of one NFA construction.
type Result struct {
	NFA *NFA

	// StateCount is the number of allocated states. It is exact only when
	// Capped is false.
	StateCount int

	// Capped reports that the state cap was reached; the NFA is structurally
	// valid but may not recognize the full language.
	Capped bool
}

// fragment is a partially built automaton with one entry and one exit.
type fragment struct {
	start, accept StateID
}

// compiler turns an AST into Thompson fragments.
type compiler struct {
	b *Builder
}

// Build compiles ast into an NFA using Thompson's construction. A nil ast is
// treated as the empty pattern. Build never fails; check Result.Capped.
func Build(ast *syntax.Node, config Config) Result {
	if ast == nil {
		ast = syntax.Empty()
	}
	c := &compiler{b: NewBuilder(config.maxStates())}
	f := c.compile(ast)
	return Result{
		NFA: &NFA{
			start:  f.start,
			accept: f.accept,
			states: c.b.states,
		},
		StateCount: len(c.b.states),
		Capped:     c.b.capped,
	}
}

// Compile parses pattern and builds its NFA.
func Compile(pattern string, config Config) (Result, error) {
	ast, err := syntax.Parse(pattern)
	if err != nil {
		return Result{}, err
	}
	return Build(ast, config), nil
}

func (c *compiler) compile(n *syntax.Node) fragment {
	switch n.Kind {
	case syntax.KindEmpty:
		return c.compileEmpty()
	case syntax.KindLiteral:
		return c.compileRanges([]syntax.CharRange{{Lo: n.Unit, Hi: n.Unit}})
	case syntax.KindClass:
		return c.compileRanges(n.Ranges)
	case syntax.KindConcat:
		return c.compileConcat(n.Left, n.Right)
	case syntax.KindAlt:
		return c.compileAlt(n.Left, n.Right)
	case syntax.KindQuantifier:
		return c.compileQuantifier(n.Sub, n.Min, n.Max)
	default:
		// The AST is closed; an unknown kind can only come from a
		// hand-built node and matches nothing beyond the empty string.
		return c.compileEmpty()
	}
}

// compileEmpty builds two states joined by one epsilon edge.
func (c *compiler) compileEmpty() fragment {
	start := c.b.AddState()
	accept := c.b.AddState()
	c.b.AddEpsilon(start, accept)
	return fragment{start, accept}
}

// compileRanges builds two states joined by one transition per range.
func (c *compiler) compileRanges(ranges []syntax.CharRange) fragment {
	start := c.b.AddState()
	accept := c.b.AddState()
	for _, r := range ranges {
		c.b.AddRange(start, accept, r)
	}
	return fragment{start, accept}
}

func (c *compiler) compileConcat(left, right *syntax.Node) fragment {
	l := c.compile(left)
	r := c.compile(right)
	c.b.AddEpsilon(l.accept, r.start)
	return fragment{l.start, r.accept}
}

func (c *compiler) compileAlt(left, right *syntax.Node) fragment {
	start := c.b.AddState()
	l := c.compile(left)
	r := c.compile(right)
	accept := c.b.AddState()
	c.b.AddEpsilon(start, l.start)
	c.b.AddEpsilon(start, r.start)
	c.b.AddEpsilon(l.accept, accept)
	c.b.AddEpsilon(r.accept, accept)
	return fragment{start, accept}
}

// compileQuantifier dispatches on the repetition bounds.
func (c *compiler) compileQuantifier(sub *syntax.Node, minCount, maxCount int) fragment {
	switch {
	case minCount == 0 && maxCount == 1:
		return c.compileOptional(sub)
	case minCount == 0 && maxCount == syntax.Unbounded:
		return c.compileStar(sub)
	case minCount == 1 && maxCount == syntax.Unbounded:
		return c.compilePlus(sub)
	case maxCount == syntax.Unbounded:
		return c.compileAtLeast(sub, minCount)
	default:
		return c.compileBounded(sub, minCount, maxCount)
	}
}

// compileOptional builds sub? as a bypass around one copy of sub.
func (c *compiler) compileOptional(sub *syntax.Node) fragment {
	start := c.b.AddState()
	f := c.compile(sub)
	accept := c.b.AddState()
	c.b.AddEpsilon(start, f.start)
	c.b.AddEpsilon(start, accept)
	c.b.AddEpsilon(f.accept, accept)
	return fragment{start, accept}
}

// compileStar builds sub* as a bypass plus a back-edge.
func (c *compiler) compileStar(sub *syntax.Node) fragment {
	start := c.b.AddState()
	f := c.compile(sub)
	accept := c.b.AddState()
	c.b.AddEpsilon(start, f.start)
	c.b.AddEpsilon(start, accept)
	c.b.AddEpsilon(f.accept, f.start)
	c.b.AddEpsilon(f.accept, accept)
	return fragment{start, accept}
}

// compilePlus builds sub+ as one mandatory pass plus a back-edge.
func (c *compiler) compilePlus(sub *syntax.Node) fragment {
	start := c.b.AddState()
	f := c.compile(sub)
	accept := c.b.AddState()
	c.b.AddEpsilon(start, f.start)
	c.b.AddEpsilon(f.accept, f.start)
	c.b.AddEpsilon(f.accept, accept)
	return fragment{start, accept}
}

// compileMandatory chains count copies of sub. With count == 0 it returns an
// empty fragment. Unrolling stops early once the builder is capped: further
// copies could only reuse the last state.
func (c *compiler) compileMandatory(sub *syntax.Node, count int) fragment {
	if count == 0 {
		return c.compileEmpty()
	}
	f := c.compile(sub)
	for i := 1; i < count && !c.b.capped; i++ {
		next := c.compile(sub)
		c.b.AddEpsilon(f.accept, next.start)
		f.accept = next.accept
	}
	return f
}

// compileAtLeast builds sub{m,} as m mandatory copies followed by sub*.
func (c *compiler) compileAtLeast(sub *syntax.Node, minCount int) fragment {
	f := c.compileMandatory(sub, minCount)
	tail := c.compileStar(sub)
	c.b.AddEpsilon(f.accept, tail.start)
	return fragment{f.start, tail.accept}
}

// compileBounded builds sub{m,n}: m mandatory copies, then n-m optional
// copies chained so that every skip point jumps straight to a shared tail.
func (c *compiler) compileBounded(sub *syntax.Node, minCount, maxCount int) fragment {
	f := c.compileMandatory(sub, minCount)
	tail := c.b.AddState()
	end := f.accept
	for i := minCount; i < maxCount && !c.b.capped; i++ {
		c.b.AddEpsilon(end, tail)
		opt := c.compile(sub)
		c.b.AddEpsilon(end, opt.start)
		end = opt.accept
	}
	c.b.AddEpsilon(end, tail)
	return fragment{f.start, tail}
}
