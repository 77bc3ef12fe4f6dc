package syntax

import (
	"strconv"
	"strings"
)

// MaxNestingDepth limits how deeply groups may nest.
const MaxNestingDepth = 1000

// parser is a recursive-descent parser over UTF-16 code units.
type parser struct {
	pattern string
	units   []uint16
	pos     int
	base    int // code units stripped from the front (the ^ anchor)
}

// Parse parses pattern into an AST.
//
// A leading ^ and a trailing unescaped $ are removed before parsing: every
// pattern is matched against the whole input, so the anchors carry no extra
// meaning. Anywhere else ^ and $ are ordinary literals.
//
// Parse fails with a *ParseError for any construct outside the dialect.
func Parse(pattern string) (*Node, error) {
	units, base := stripAnchors(Encode(pattern))
	p := &parser{
		pattern: pattern,
		units:   units,
		base:    base,
	}

	node, err := p.parseAlternation(0)
	if err != nil {
		return nil, err
	}
	if p.more() {
		if p.peek() == ')' {
			return nil, p.errorf(ErrUnexpectedParen, "")
		}
		return nil, p.errorf(ErrTrailingTokens, "")
	}
	return node, nil
}

// MustParse is like Parse but panics on error.
func MustParse(pattern string) *Node {
	n, err := Parse(pattern)
	if err != nil {
		panic("syntax: Parse(`" + pattern + "`): " + err.Error())
	}
	return n
}

// stripAnchors removes one leading '^' and one trailing '$' that is not escaped.
func stripAnchors(units []uint16) ([]uint16, int) {
	base := 0
	if len(units) > 0 && units[0] == '^' {
		units = units[1:]
		base = 1
	}
	if n := len(units); n > 0 && units[n-1] == '$' {
		backslashes := 0
		for i := n - 2; i >= 0 && units[i] == '\\'; i-- {
			backslashes++
		}
		if backslashes%2 == 0 {
			units = units[:n-1]
		}
	}
	return units, base
}

func (p *parser) more() bool {
	return p.pos < len(p.units)
}

func (p *parser) peek() uint16 {
	return p.units[p.pos]
}

func (p *parser) errorf(code ErrorCode, detail string) *ParseError {
	return &ParseError{
		Pattern: p.pattern,
		Offset:  p.base + p.pos,
		Code:    code,
		Detail:  detail,
	}
}

// parseAlternation parses concat ('|' concat)*.
func (p *parser) parseAlternation(depth int) (*Node, error) {
	left, err := p.parseConcat(depth)
	if err != nil {
		return nil, err
	}
	for p.more() && p.peek() == '|' {
		p.pos++
		right, err := p.parseConcat(depth)
		if err != nil {
			return nil, err
		}
		left = Alt(left, right)
	}
	return left, nil
}

// parseConcat parses a possibly empty run of repetitions. An empty run is an
// Empty node, so "a|", "|a" and "()" are valid, and '|' and ')' never reach
// parseAtom.
func (p *parser) parseConcat(depth int) (*Node, error) {
	var node *Node
	for p.more() {
		c := p.peek()
		if c == '|' || c == ')' {
			break
		}
		item, err := p.parseRepeat(depth)
		if err != nil {
			return nil, err
		}
		if node == nil {
			node = item
		} else {
			node = Concat(node, item)
		}
	}
	if node == nil {
		return Empty(), nil
	}
	return node, nil
}

// parseRepeat parses an atom followed by any number of postfix quantifiers.
func (p *parser) parseRepeat(depth int) (*Node, error) {
	atom, err := p.parseAtom(depth)
	if err != nil {
		return nil, err
	}
	for p.more() {
		switch p.peek() {
		case '?':
			p.pos++
			atom = Repeat(atom, 0, 1)
		case '*':
			p.pos++
			atom = Repeat(atom, 0, Unbounded)
		case '+':
			p.pos++
			atom = Repeat(atom, 1, Unbounded)
		case '{':
			lo, hi, err := p.parseBraces()
			if err != nil {
				return nil, err
			}
			atom = Repeat(atom, lo, hi)
		default:
			return atom, nil
		}
	}
	return atom, nil
}

// parseBraces parses {m}, {m,} or {m,n} starting at '{'.
func (p *parser) parseBraces() (lo, hi int, err error) {
	start := p.pos
	end := start + 1
	for end < len(p.units) && p.units[end] != '}' {
		end++
	}
	if end >= len(p.units) {
		return 0, 0, p.errorf(ErrInvalidRepeat, "unterminated {")
	}
	body := Decode(p.units[start+1 : end])
	parts := strings.Split(body, ",")
	if len(parts) > 2 {
		return 0, 0, p.errorf(ErrInvalidRepeat, "{"+body+"}")
	}

	lo, ok := parseCount(parts[0])
	if !ok {
		return 0, 0, p.errorf(ErrInvalidRepeat, "{"+body+"}")
	}
	hi = lo
	if len(parts) == 2 {
		if parts[1] == "" {
			hi = Unbounded
		} else if hi, ok = parseCount(parts[1]); !ok {
			return 0, 0, p.errorf(ErrInvalidRepeat, "{"+body+"}")
		}
	}
	if hi != Unbounded && hi < lo {
		return 0, 0, p.errorf(ErrInvalidRepeat, "max below min in {"+body+"}")
	}

	p.pos = end + 1
	return lo, hi, nil
}

// parseCount parses an unsigned decimal repeat count.
func parseCount(s string) (int, bool) {
	if s == "" {
		return 0, false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (p *parser) parseAtom(depth int) (*Node, error) {
	c := p.peek()
	switch c {
	case '(':
		return p.parseGroup(depth)
	case '[':
		return p.parseClass()
	case '.':
		p.pos++
		return Class(anyRanges...), nil
	case '\\':
		return p.parseEscape()
	case '?', '*', '+', '{', '}':
		return nil, p.errorf(ErrMissingRepeatArgument, string(rune(c)))
	}
	p.pos++
	return Literal(c), nil
}

// parseGroup parses (...) and (?:...). Both are non-capturing.
func (p *parser) parseGroup(depth int) (*Node, error) {
	if depth+1 > MaxNestingDepth {
		return nil, p.errorf(ErrNestingDepth, "")
	}
	p.pos++ // (
	if p.more() && p.peek() == '?' {
		if p.pos+1 >= len(p.units) || p.units[p.pos+1] != ':' {
			return nil, p.errorf(ErrUnsupportedGroup, "only (?:...) groups are supported")
		}
		p.pos += 2
	}

	node, err := p.parseAlternation(depth + 1)
	if err != nil {
		return nil, err
	}
	if !p.more() || p.peek() != ')' {
		return nil, p.errorf(ErrMissingParen, "")
	}
	p.pos++
	return node, nil
}

func (p *parser) parseEscape() (*Node, error) {
	if p.pos+1 >= len(p.units) {
		return nil, p.errorf(ErrTrailingBackslash, "")
	}
	p.pos++ // backslash
	switch p.peek() {
	case 'd':
		p.pos++
		return Class(digitRanges...), nil
	case 'w':
		p.pos++
		return Class(wordRanges...), nil
	case 's':
		p.pos++
		return Class(spaceRanges...), nil
	case 'b', 'B':
		return nil, p.errorf(ErrUnsupportedEscape, "word boundary assertions are not supported")
	}
	u, err := p.escapedUnit()
	if err != nil {
		return nil, err
	}
	return Literal(u), nil
}

// escapedUnit decodes the single-unit escape at p.pos (just past the
// backslash) shared by atoms and classes.
func (p *parser) escapedUnit() (uint16, error) {
	c := p.peek()
	switch c {
	case 'D', 'W', 'S':
		return 0, p.errorf(ErrUnsupportedEscape, "negated class escape \\"+string(rune(c)))
	case '1', '2', '3', '4', '5', '6', '7', '8', '9':
		return 0, p.errorf(ErrUnsupportedEscape, "back-references are not supported")
	case 'p', 'P':
		if p.pos+1 < len(p.units) && p.units[p.pos+1] == '{' {
			return 0, p.errorf(ErrUnsupportedEscape, "unicode property escapes are not supported")
		}
	case 'n':
		p.pos++
		return '\n', nil
	case 'r':
		p.pos++
		return '\r', nil
	case 't':
		p.pos++
		return '\t', nil
	case 'f':
		p.pos++
		return '\f', nil
	case 'v':
		p.pos++
		return '\v', nil
	case '0':
		p.pos++
		return 0, nil
	case 'x':
		if u, ok := p.hexUnit(2); ok {
			return u, nil
		}
	case 'u':
		if u, ok := p.hexUnit(4); ok {
			return u, nil
		}
	}
	p.pos++
	return c, nil
}

// hexUnit reads exactly n hex digits after the escape letter at p.pos.
func (p *parser) hexUnit(n int) (uint16, bool) {
	start := p.pos + 1
	if start+n > len(p.units) {
		return 0, false
	}
	var v uint16
	for _, d := range p.units[start : start+n] {
		var x uint16
		switch {
		case d >= '0' && d <= '9':
			x = d - '0'
		case d >= 'a' && d <= 'f':
			x = d - 'a' + 10
		case d >= 'A' && d <= 'F':
			x = d - 'A' + 10
		default:
			return 0, false
		}
		v = v<<4 | x
	}
	p.pos = start + n
	return v, true
}

// parseClass parses a bracket expression starting at '['.
func (p *parser) parseClass() (*Node, error) {
	open := p.pos
	p.pos++ // [
	if p.more() && p.peek() == '^' {
		return nil, p.errorf(ErrNegatedClass, "")
	}

	var ranges []CharRange
	for {
		if !p.more() {
			p.pos = open
			return nil, p.errorf(ErrMissingBracket, "")
		}
		if p.peek() == ']' {
			p.pos++
			break
		}

		lo, set, err := p.classAtom()
		if err != nil {
			return nil, err
		}
		if set != nil {
			ranges = append(ranges, set...)
			continue
		}

		// A '-' directly before ']' or at the end is a literal.
		if p.pos+1 < len(p.units) && p.peek() == '-' && p.units[p.pos+1] != ']' {
			dash := p.pos
			p.pos++
			hi, hiSet, err := p.classAtom()
			if err != nil {
				return nil, err
			}
			if hiSet != nil {
				ranges = append(ranges, CharRange{lo, lo}, CharRange{'-', '-'})
				ranges = append(ranges, hiSet...)
				continue
			}
			if lo > hi {
				p.pos = dash
				return nil, p.errorf(ErrInvalidRange, CharRange{lo, hi}.String())
			}
			ranges = append(ranges, CharRange{lo, hi})
			continue
		}
		ranges = append(ranges, CharRange{lo, lo})
	}

	if len(ranges) == 0 {
		p.pos = open
		return nil, p.errorf(ErrEmptyClass, "")
	}
	return &Node{Kind: KindClass, Ranges: normalizeRanges(ranges)}, nil
}

// classAtom reads one class member. It returns either a single unit or, for
// \d, \w and \s, the ranges of the shorthand class.
func (p *parser) classAtom() (uint16, []CharRange, error) {
	c := p.peek()
	if c != '\\' {
		p.pos++
		return c, nil, nil
	}
	if p.pos+1 >= len(p.units) {
		return 0, nil, p.errorf(ErrTrailingBackslash, "")
	}
	p.pos++
	switch p.peek() {
	case 'd':
		p.pos++
		return 0, cloneRanges(digitRanges), nil
	case 'w':
		p.pos++
		return 0, cloneRanges(wordRanges), nil
	case 's':
		p.pos++
		return 0, cloneRanges(spaceRanges), nil
	case 'b':
		p.pos++
		return '\b', nil, nil
	case 'B':
		return 0, nil, p.errorf(ErrUnsupportedEscape, `\B`)
	}
	u, err := p.escapedUnit()
	return u, nil, err
}
