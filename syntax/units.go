package syntax

import (
	"sort"
	"unicode/utf16"
)

// Encode converts s to UTF-16 code units. Characters outside the Basic
// Multilingual Plane become surrogate pairs; invalid UTF-8 becomes U+FFFD.
func Encode(s string) []uint16 {
	return utf16.Encode([]rune(s))
}

// Decode converts UTF-16 code units back to a Go string. Unpaired surrogates
// decode to U+FFFD, so Decode(Encode(s)) == s only for valid input.
func Decode(units []uint16) string {
	return string(utf16.Decode(units))
}

var (
	digitRanges = []CharRange{{'0', '9'}}

	wordRanges = []CharRange{{'0', '9'}, {'A', 'Z'}, {'_', '_'}, {'a', 'z'}}

	// ECMAScript WhiteSpace and LineTerminator code points.
	spaceRanges = []CharRange{
		{0x09, 0x0D}, {0x20, 0x20}, {0xA0, 0xA0}, {0x1680, 0x1680},
		{0x2000, 0x200A}, {0x2028, 0x2029}, {0x202F, 0x202F},
		{0x205F, 0x205F}, {0x3000, 0x3000}, {0xFEFF, 0xFEFF},
	}

	anyRanges = []CharRange{{0, MaxUnit}}
)

// DigitRanges returns the ranges matched by \d.
func DigitRanges() []CharRange { return cloneRanges(digitRanges) }

// WordRanges returns the ranges matched by \w.
func WordRanges() []CharRange { return cloneRanges(wordRanges) }

// SpaceRanges returns the ranges matched by \s.
func SpaceRanges() []CharRange { return cloneRanges(spaceRanges) }

func cloneRanges(rs []CharRange) []CharRange {
	out := make([]CharRange, len(rs))
	copy(out, rs)
	return out
}

// normalizeRanges sorts ranges and merges overlapping or adjacent ones.
func normalizeRanges(rs []CharRange) []CharRange {
	if len(rs) < 2 {
		return rs
	}
	sort.Slice(rs, func(i, j int) bool {
		if rs[i].Lo != rs[j].Lo {
			return rs[i].Lo < rs[j].Lo
		}
		return rs[i].Hi < rs[j].Hi
	})
	out := rs[:1]
	for _, r := range rs[1:] {
		last := &out[len(out)-1]
		if uint32(r.Lo) <= uint32(last.Hi)+1 {
			if r.Hi > last.Hi {
				last.Hi = r.Hi
			}
			continue
		}
		out = append(out, r)
	}
	return out
}
