package coregen_test

import (
	"errors"
	"fmt"

	"github.com/coregx/coregen"
	"github.com/coregx/coregen/syntax"
)

// ExampleCompile demonstrates whole-string matching.
func ExampleCompile() {
	re, err := coregen.Compile(`^\d{3}-\d{4}$`)
	if err != nil {
		panic(err)
	}

	fmt.Println(re.Accepts("555-1234"))
	fmt.Println(re.Accepts("call 555-1234"))
	// Output:
	// true
	// false
}

// ExampleCompile_unsupported shows how unsupported syntax is reported.
func ExampleCompile_unsupported() {
	_, err := coregen.Compile(`[^0-9]+`)
	fmt.Println(errors.Is(err, syntax.ErrParse))
	// Output: true
}

// ExampleRegexp_Witnesses lists the shortest accepted strings.
func ExampleRegexp_Witnesses() {
	re := coregen.MustCompile(`^[a-z]+_id$`)
	fmt.Println(re.Witnesses(3).Words)
	// Output: [a_id aa_id aaa_id]
}

// ExampleRegexp_Summary demonstrates the finiteness check.
func ExampleRegexp_Summary() {
	fmt.Println(coregen.MustCompile(`^(?:yes|no)$`).Summary().Finite)
	fmt.Println(coregen.MustCompile(`^a+$`).Summary().Finite)
	// Output:
	// true
	// false
}

// ExampleIntersect checks whether two patterns can match the same string.
func ExampleIntersect() {
	in, err := coregen.Intersect(coregen.DefaultConfig(),
		coregen.MustCompile(`^[a-z]+$`),
		coregen.MustCompile(`^[0-9]+$`),
	)
	if err != nil {
		panic(err)
	}
	fmt.Println(in.Summary().Empty)
	// Output: true
}

// ExampleSynthesize generates property names that match every pattern
// and avoid the declared ones.
func ExampleSynthesize() {
	s, err := coregen.Synthesize(coregen.Constraint{
		Patterns: []string{`^x-[a-z]+$`, `^.{3,5}$`},
		Exclude:  []string{"x-a"},
	}, 2, coregen.DefaultConfig())
	if err != nil {
		panic(err)
	}
	fmt.Println(s.Words, s.Summary.Finite)
	// Output: [x-b x-aa] true
}
