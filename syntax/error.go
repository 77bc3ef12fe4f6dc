// Package syntax parses the restricted regular expression dialect accepted by
// coregen into an abstract syntax tree over UTF-16 code units.
//
// The dialect covers literals, character classes, alternation, concatenation,
// groups and the ?, *, + and {m,n} quantifiers. Everything else (negated
// classes, back-references, lookaround, assertions) is rejected with a
// *ParseError rather than approximated.
package syntax

import (
	"errors"
	"fmt"
)

// ErrParse is matched by every *ParseError via errors.Is.
var ErrParse = errors.New("regex parse error")

// ErrorCode classifies a parse failure.
type ErrorCode uint8

const (
	// ErrMissingBracket indicates an unterminated character class.
	ErrMissingBracket ErrorCode = iota

	// ErrNegatedClass indicates a [^...] class, which is not supported.
	ErrNegatedClass

	// ErrEmptyClass indicates a class with no members, e.g. [].
	ErrEmptyClass

	// ErrInvalidRange indicates a class range whose start is above its end.
	ErrInvalidRange

	// ErrMissingParen indicates a group that is never closed.
	ErrMissingParen

	// ErrUnexpectedParen indicates a ')' with no open group.
	ErrUnexpectedParen

	// ErrUnsupportedGroup indicates a (?...) form other than (?:...).
	ErrUnsupportedGroup

	// ErrTrailingBackslash indicates a pattern ending in a lone '\'.
	ErrTrailingBackslash

	// ErrMissingRepeatArgument indicates a quantifier or brace with nothing to repeat.
	ErrMissingRepeatArgument

	// ErrInvalidRepeat indicates a malformed or inverted {m,n} body.
	ErrInvalidRepeat

	// ErrTrailingTokens indicates input left over after the top-level alternation.
	ErrTrailingTokens

	// ErrUnsupportedEscape indicates an escape with semantics outside the dialect.
	ErrUnsupportedEscape

	// ErrNestingDepth indicates groups nested deeper than MaxNestingDepth.
	ErrNestingDepth
)

// String returns a human-readable description of the code.
func (c ErrorCode) String() string {
	switch c {
	case ErrMissingBracket:
		return "missing closing ]"
	case ErrNegatedClass:
		return "negated character class is not supported"
	case ErrEmptyClass:
		return "empty character class"
	case ErrInvalidRange:
		return "invalid character class range"
	case ErrMissingParen:
		return "missing closing )"
	case ErrUnexpectedParen:
		return "unexpected )"
	case ErrUnsupportedGroup:
		return "unsupported group syntax"
	case ErrTrailingBackslash:
		return "trailing backslash at end of expression"
	case ErrMissingRepeatArgument:
		return "missing argument to repetition operator"
	case ErrInvalidRepeat:
		return "invalid repeat count"
	case ErrTrailingTokens:
		return "unexpected trailing tokens"
	case ErrUnsupportedEscape:
		return "unsupported escape sequence"
	case ErrNestingDepth:
		return "expression nests too deeply"
	default:
		return fmt.Sprintf("ErrorCode(%d)", c)
	}
}

// ParseError reports a pattern outside the supported grammar.
type ParseError struct {
	Pattern string
	Offset  int // code unit offset into the pattern after anchor stripping
	Code    ErrorCode
	Detail  string
}

// Error implements the error interface
func (e *ParseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("error parsing regex %q at offset %d: %s: %s", e.Pattern, e.Offset, e.Code, e.Detail)
	}
	return fmt.Sprintf("error parsing regex %q at offset %d: %s", e.Pattern, e.Offset, e.Code)
}

// Is reports whether target is ErrParse or a *ParseError with the same code.
func (e *ParseError) Is(target error) bool {
	if target == ErrParse {
		return true
	}
	t, ok := target.(*ParseError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}
