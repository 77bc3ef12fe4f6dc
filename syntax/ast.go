package syntax

import (
	"fmt"
	"strconv"
	"strings"
)

// MaxUnit is the largest UTF-16 code unit.
const MaxUnit = 0xFFFF

// CharRange is an inclusive range of UTF-16 code units [Lo, Hi].
type CharRange struct {
	Lo uint16
	Hi uint16
}

// Contains reports whether u lies inside the range.
func (r CharRange) Contains(u uint16) bool {
	return u >= r.Lo && u <= r.Hi
}

// String returns the range in class notation.
func (r CharRange) String() string {
	if r.Lo == r.Hi {
		return formatUnit(r.Lo)
	}
	return formatUnit(r.Lo) + "-" + formatUnit(r.Hi)
}

// Kind identifies the variant of a Node.
type Kind uint8

const (
	// KindEmpty matches the empty string.
	KindEmpty Kind = iota

	// KindLiteral matches a single code unit.
	KindLiteral

	// KindClass matches any code unit inside one of Ranges.
	KindClass

	// KindConcat matches Left followed by Right.
	KindConcat

	// KindAlt matches Left or Right.
	KindAlt

	// KindQuantifier matches Sub repeated between Min and Max times.
	KindQuantifier
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "Empty"
	case KindLiteral:
		return "Literal"
	case KindClass:
		return "Class"
	case KindConcat:
		return "Concat"
	case KindAlt:
		return "Alt"
	case KindQuantifier:
		return "Quantifier"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Unbounded is the Max of a quantifier without an upper bound.
const Unbounded = -1

// Node is a regex AST node. Only the fields relevant to Kind are set:
//
//	KindLiteral:    Unit
//	KindClass:      Ranges
//	KindConcat/Alt: Left, Right
//	KindQuantifier: Sub, Min, Max (Max == Unbounded for no upper bound)
//
// Nodes are never mutated after construction.
type Node struct {
	Kind   Kind
	Unit   uint16
	Ranges []CharRange
	Left   *Node
	Right  *Node
	Sub    *Node
	Min    int
	Max    int
}

// Empty returns a node matching the empty string.
func Empty() *Node {
	return &Node{Kind: KindEmpty}
}

// Literal returns a node matching the code unit u.
func Literal(u uint16) *Node {
	return &Node{Kind: KindLiteral, Unit: u}
}

// Class returns a node matching any code unit in ranges.
func Class(ranges ...CharRange) *Node {
	rs := make([]CharRange, len(ranges))
	copy(rs, ranges)
	return &Node{Kind: KindClass, Ranges: rs}
}

// Concat returns a node matching left then right.
func Concat(left, right *Node) *Node {
	return &Node{Kind: KindConcat, Left: left, Right: right}
}

// Alt returns a node matching left or right.
func Alt(left, right *Node) *Node {
	return &Node{Kind: KindAlt, Left: left, Right: right}
}

// Repeat returns a quantifier node. Pass Unbounded as max for {min,}.
func Repeat(sub *Node, minCount, maxCount int) *Node {
	return &Node{Kind: KindQuantifier, Sub: sub, Min: minCount, Max: maxCount}
}

// String renders the node back into the dialect. The output parses to an
// equivalent tree, though not necessarily to the same shape.
func (n *Node) String() string {
	var sb strings.Builder
	n.write(&sb)
	return sb.String()
}

func (n *Node) write(sb *strings.Builder) {
	switch n.Kind {
	case KindEmpty:
		sb.WriteString("(?:)")
	case KindLiteral:
		sb.WriteString(formatUnit(n.Unit))
	case KindClass:
		sb.WriteByte('[')
		for _, r := range n.Ranges {
			sb.WriteString(r.String())
		}
		sb.WriteByte(']')
	case KindConcat:
		n.Left.writeOperand(sb, KindConcat)
		n.Right.writeOperand(sb, KindConcat)
	case KindAlt:
		n.Left.write(sb)
		sb.WriteByte('|')
		n.Right.write(sb)
	case KindQuantifier:
		n.Sub.writeOperand(sb, KindQuantifier)
		switch {
		case n.Min == 0 && n.Max == 1:
			sb.WriteByte('?')
		case n.Min == 0 && n.Max == Unbounded:
			sb.WriteByte('*')
		case n.Min == 1 && n.Max == Unbounded:
			sb.WriteByte('+')
		case n.Max == Unbounded:
			sb.WriteString("{" + strconv.Itoa(n.Min) + ",}")
		case n.Min == n.Max:
			sb.WriteString("{" + strconv.Itoa(n.Min) + "}")
		default:
			sb.WriteString("{" + strconv.Itoa(n.Min) + "," + strconv.Itoa(n.Max) + "}")
		}
	}
}

// writeOperand writes n, grouping it when its precedence is below parent's.
func (n *Node) writeOperand(sb *strings.Builder, parent Kind) {
	group := n.Kind == KindAlt ||
		(parent == KindQuantifier && (n.Kind == KindConcat || n.Kind == KindQuantifier))
	if group {
		sb.WriteString("(?:")
		n.write(sb)
		sb.WriteByte(')')
		return
	}
	n.write(sb)
}

func formatUnit(u uint16) string {
	if u < 0x80 && u > 0x20 {
		if strings.IndexByte(`\.+*?()|[]{}^$-`, byte(u)) >= 0 {
			return `\` + string(rune(u))
		}
		return string(rune(u))
	}
	return fmt.Sprintf(`\u%04X`, u)
}
