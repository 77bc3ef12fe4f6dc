package witness

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/coregx/coregen/dfa"
	"github.com/coregx/coregen/product"
)

func compile(t *testing.T, pattern string) *dfa.DFA {
	t.Helper()
	r, err := dfa.Compile(pattern, dfa.DefaultConfig())
	if err != nil {
		t.Fatalf("dfa.Compile(%q): %v", pattern, err)
	}
	return r.DFA
}

func TestEnumerate_Words(t *testing.T) {
	tests := []struct {
		pattern string
		limit   int
		want    []string
	}{
		{"^[a-z]+_id$", 3, []string{"a_id", "aa_id", "aaa_id"}},
		{"^[ab]{0,2}$", 5, []string{"", "a", "aa"}},
		{"^(?:a|b)c$", 5, []string{"ac", "bc"}},
		{"^(?:b|a|ab|c)$", 10, []string{"a", "b", "c", "ab"}},
		{"^a*$", 3, []string{"", "a", "aa"}},
		{"^x-y$", 1, []string{"x-y"}},
		{`^\d{2}$`, 2, []string{"00"}},
	}

	for _, tt := range tests {
		t.Run(tt.pattern, func(t *testing.T) {
			d := compile(t, tt.pattern)
			res := Enumerate(d, tt.limit, DefaultConfig())
			if diff := cmp.Diff(tt.want, res.Words); diff != "" {
				t.Errorf("Words (-want +got):\n%s", diff)
			}
			if res.Capped {
				t.Error("unexpected cap")
			}
			for _, w := range res.Words {
				if !d.Accepts(w) {
					t.Errorf("witness %q is not accepted", w)
				}
			}
		})
	}
}

func TestEnumerate_MaxLength(t *testing.T) {
	d := compile(t, "^a*$")
	res := Enumerate(d, 10, DefaultConfig().WithMaxLength(2))
	if diff := cmp.Diff([]string{"", "a", "aa"}, res.Words); diff != "" {
		t.Errorf("Words (-want +got):\n%s", diff)
	}
	if res.Capped {
		t.Error("length bound is not a cap")
	}
	if res.Tried != 2 {
		t.Errorf("Tried = %d, want 2", res.Tried)
	}
}

func TestEnumerate_Degenerate(t *testing.T) {
	d := compile(t, "^a*$")
	tests := []struct {
		name   string
		a      Automaton
		limit  int
		config Config
		capped bool
	}{
		{"zero limit", d, 0, DefaultConfig(), false},
		{"negative limit", d, -1, DefaultConfig(), false},
		{"zero length", d, 5, DefaultConfig().WithMaxLength(0), false},
		{"zero budget", d, 5, DefaultConfig().WithMaxCandidates(0), true},
		{"no states", dfa.New(0, nil, nil), 5, DefaultConfig(), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := Enumerate(tt.a, tt.limit, tt.config)
			if len(res.Words) != 0 || res.Tried != 0 {
				t.Errorf("got %d words, Tried %d; want none", len(res.Words), res.Tried)
			}
			if res.Capped != tt.capped {
				t.Errorf("Capped = %v, want %v", res.Capped, tt.capped)
			}
		})
	}
}

func TestEnumerate_Budget(t *testing.T) {
	d := compile(t, "^(?:a|b|c)*d$")
	res := Enumerate(d, 3, DefaultConfig().WithMaxCandidates(5))
	if !res.Capped {
		t.Fatal("expected Capped")
	}
	if res.Tried != 5 {
		t.Errorf("Tried = %d, want 5", res.Tried)
	}
	if len(res.Words) != 0 {
		t.Errorf("Words = %q, want none", res.Words)
	}

	for budget := 1; budget <= 50; budget++ {
		res := Enumerate(d, 100, DefaultConfig().WithMaxCandidates(budget).WithMaxLength(3))
		if res.Tried > budget {
			t.Errorf("budget %d: Tried = %d", budget, res.Tried)
		}
		for _, w := range res.Words {
			if !d.Accepts(w) {
				t.Errorf("budget %d: witness %q not accepted", budget, w)
			}
		}
	}
}

func TestEnumerate_Filter(t *testing.T) {
	d := compile(t, "^(?:a|b)(?:a|b)?$")
	noA := func(w string) bool { return !strings.Contains(w, "a") }
	res := Enumerate(d, 10, DefaultConfig().WithFilter(noA))
	if diff := cmp.Diff([]string{"b", "bb"}, res.Words); diff != "" {
		t.Errorf("Words (-want +got):\n%s", diff)
	}
}

func TestEnumerate_Product(t *testing.T) {
	r := product.Build([]*dfa.DFA{
		compile(t, "^x-[a-z]+$"),
		compile(t, "^.{3,5}$"),
		dfa.ExcludeLiterals([]string{"x-a"}),
	}, product.DefaultConfig())
	res := Enumerate(r.DFA, 2, DefaultConfig())
	if diff := cmp.Diff([]string{"x-b", "x-aa"}, res.Words); diff != "" {
		t.Errorf("Words (-want +got):\n%s", diff)
	}
}

func TestEnumerate_Idempotent(t *testing.T) {
	d := compile(t, "^(?:a|b|c)*d$")
	tests := []struct {
		name   string
		config Config
	}{
		{"complete", DefaultConfig().WithMaxLength(3)},
		{"capped", DefaultConfig().WithMaxCandidates(20)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			first := Enumerate(d, 5, tt.config)
			second := Enumerate(d, 5, tt.config)
			if diff := cmp.Diff(first, second); diff != "" {
				t.Errorf("results differ (-first +second):\n%s", diff)
			}
		})
	}
}

func TestEnumerate_Units(t *testing.T) {
	d := compile(t, `^\uD800$`)
	res := Enumerate(d, 1, DefaultConfig())
	if len(res.Words) != 1 {
		t.Fatalf("Words = %q, want one", res.Words)
	}
	if res.Words[0] != "\uFFFD" {
		t.Errorf("Words[0] = %q, want U+FFFD", res.Words[0])
	}
	if diff := cmp.Diff([][]uint16{{0xD800}}, res.Units); diff != "" {
		t.Errorf("Units (-want +got):\n%s", diff)
	}
}
