// Package conv narrows arena indices to the fixed-width types stored in
// automata: state IDs are uint32 and breakpoints are uint16.
//
// Builders only pass indices they allocated themselves, so a value out of
// range is a builder bug and the helpers panic.
package conv

import (
	"fmt"
	"math"
)

// IntToUint32 returns n as a state ID.
func IntToUint32(n int) uint32 {
	if n < 0 || uint64(n) > math.MaxUint32 {
		panic(fmt.Sprintf("conv: state index %d outside uint32", n))
	}
	return uint32(n)
}

// IntToUint16 returns n as a UTF-16 code unit.
func IntToUint16(n int) uint16 {
	if n < 0 || n > math.MaxUint16 {
		panic(fmt.Sprintf("conv: code unit %d outside uint16", n))
	}
	return uint16(n)
}
