package product

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/coregx/coregen/dfa"
)

func compileAll(t *testing.T, patterns ...string) []*dfa.DFA {
	t.Helper()
	out := make([]*dfa.DFA, len(patterns))
	for i, p := range patterns {
		r, err := dfa.Compile(p, dfa.DefaultConfig())
		if err != nil {
			t.Fatalf("dfa.Compile(%q): %v", p, err)
		}
		out[i] = r.DFA
	}
	return out
}

func allStrings(alphabet string, n int) []string {
	out := []string{""}
	prev := []string{""}
	for i := 0; i < n; i++ {
		var next []string
		for _, p := range prev {
			for _, c := range alphabet {
				next = append(next, p+string(c))
			}
		}
		out = append(out, next...)
		prev = next
	}
	return out
}

func TestBuild_Intersection(t *testing.T) {
	r := Build(compileAll(t, "^a[0-9]$", "^[a-z][0-9]$"), DefaultConfig())
	if r.Capped {
		t.Fatal("unexpected cap")
	}
	want := map[string]bool{"a0": true, "a9": true, "b0": false, "aa": false, "a": false, "a00": false}
	for in, w := range want {
		if got := r.DFA.Accepts(in); got != w {
			t.Errorf("Accepts(%q) = %v, want %v", in, got, w)
		}
	}
	if r.Summary.Empty || !r.Summary.Finite {
		t.Errorf("Summary = %+v, want non-empty finite", r.Summary)
	}
}

// TestBuild_AgreesWithComponents checks that the product accepts exactly
// the strings every component accepts.
func TestBuild_AgreesWithComponents(t *testing.T) {
	comps := compileAll(t, "^(a|b)*$", "^[ab]*b[ab]*$", "^.{1,3}$")
	r := Build(comps, DefaultConfig())

	for _, in := range allStrings("abc", 4) {
		want := true
		for _, c := range comps {
			want = want && c.Accepts(in)
		}
		if got := r.DFA.Accepts(in); got != want {
			t.Errorf("Accepts(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestBuild_TransitionsWellFormed(t *testing.T) {
	r := Build(compileAll(t, "^[a-m]+$", "^[h-z]x?$"), DefaultConfig())
	for i := 0; i < r.DFA.NumStates(); i++ {
		ts := r.DFA.Transitions(dfa.StateID(i))
		for j, tr := range ts {
			if j > 0 && tr.Breakpoint <= ts[j-1].Breakpoint {
				t.Errorf("state %d: breakpoints not increasing: %v", i, ts)
			}
			if tr.Next == dfa.DeadState && (j == 0 || ts[j-1].Next == dfa.DeadState) {
				t.Errorf("state %d: redundant dead step: %v", i, ts)
			}
		}
	}
	if !r.DFA.Accepts("h") || r.DFA.Accepts("n") || r.DFA.Accepts("g") || r.DFA.Accepts("hx") {
		t.Error("product of overlapping ranges is wrong")
	}
}

func TestBuild_Summary(t *testing.T) {
	tests := []struct {
		name     string
		patterns []string
		empty    bool
		finite   bool
	}{
		{"self", []string{"^a$", "^a$"}, false, true},
		{"disjoint", []string{"^a$", "^b$"}, true, true},
		{"finite", []string{"^ab$", "^ab$"}, false, true},
		{"infinite", []string{"^a+$", "^a+$"}, false, false},
		{"bounded by other", []string{"^a+$", "^a{1,3}$"}, false, true},
		{"single", []string{"^a*b$"}, false, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := Build(compileAll(t, tt.patterns...), DefaultConfig())
			if r.Summary.Empty != tt.empty {
				t.Errorf("Empty = %v, want %v", r.Summary.Empty, tt.empty)
			}
			if r.Summary.Finite != tt.finite {
				t.Errorf("Finite = %v, want %v", r.Summary.Finite, tt.finite)
			}
			if r.Summary.States != r.StateCount {
				t.Errorf("Summary.States = %d, StateCount = %d", r.Summary.States, r.StateCount)
			}
			if r.Summary.CapsHit {
				t.Error("CapsHit set without a cap")
			}
		})
	}
}

func TestBuild_Cap(t *testing.T) {
	r := Build(compileAll(t, "^[a-z]+_id$", "^.{3,10}$"), Config{MaxStates: 1})
	if !r.Capped || !r.Summary.CapsHit {
		t.Fatalf("Capped = %v, CapsHit = %v, want both", r.Capped, r.Summary.CapsHit)
	}
	if r.StateCount != 1 {
		t.Errorf("StateCount = %d, want 1", r.StateCount)
	}
	if !r.Summary.Empty {
		t.Error("a product cut at its start state has no accepting state")
	}
}

func TestBuild_ZeroComponents(t *testing.T) {
	r := Build(nil, DefaultConfig())
	if r.StateCount != 1 || r.Capped {
		t.Fatalf("StateCount = %d, Capped = %v", r.StateCount, r.Capped)
	}
	for _, in := range []string{"", "a", "😀"} {
		if !r.DFA.Accepts(in) {
			t.Errorf("identity rejects %q", in)
		}
	}
	want := Summary{States: 1, Finite: false, Empty: true}
	if diff := cmp.Diff(want, r.Summary); diff != "" {
		t.Errorf("Summary (-want +got):\n%s", diff)
	}
}

func TestBuild_StatelessComponent(t *testing.T) {
	none := dfa.New(0, nil, nil)
	r := Build([]*dfa.DFA{compileAll(t, "^a*$")[0], none}, DefaultConfig())
	if r.StateCount != 1 {
		t.Errorf("StateCount = %d, want 1", r.StateCount)
	}
	if r.DFA.Accepts("") || r.DFA.Accepts("a") {
		t.Error("product with an empty component must accept nothing")
	}
	if !r.Summary.Empty {
		t.Error("Summary.Empty = false")
	}
}

func TestBuild_Tuple(t *testing.T) {
	comps := compileAll(t, "^ab$", "^a[a-z]$")
	r := Build(comps, DefaultConfig())

	start := r.DFA.Tuple(r.DFA.Start())
	want := []dfa.StateID{comps[0].Start(), comps[1].Start()}
	if diff := cmp.Diff(want, start); diff != "" {
		t.Errorf("start tuple (-want +got):\n%s", diff)
	}

	next := r.DFA.Step(r.DFA.Start(), 'a')
	tuple := r.DFA.Tuple(next)
	for i, c := range comps {
		if tuple[i] != c.Step(c.Start(), 'a') {
			t.Errorf("component %d: tuple has %d, component steps to %d", i, tuple[i], c.Step(c.Start(), 'a'))
		}
	}
	if r.DFA.Tuple(dfa.StateID(r.StateCount)) != nil {
		t.Error("Tuple of an invalid ID should be nil")
	}
}

func TestBuild_Idempotent(t *testing.T) {
	comps := append(compileAll(t, "^(?:a|bc)*d$", "^.{2,6}$"), dfa.ExcludeLiterals([]string{"ad"}))
	a := Build(comps, DefaultConfig())
	b := Build(comps, DefaultConfig())

	opts := cmp.AllowUnexported(DFA{}, dfa.DFA{}, dfa.State{})
	if diff := cmp.Diff(a.DFA, b.DFA, opts); diff != "" {
		t.Errorf("products differ (-first +second):\n%s", diff)
	}
	if diff := cmp.Diff(a.Summary, b.Summary); diff != "" {
		t.Errorf("summaries differ (-first +second):\n%s", diff)
	}
	if a.StateCount != b.StateCount || a.Capped != b.Capped {
		t.Errorf("first = (%d, %v), second = (%d, %v)", a.StateCount, a.Capped, b.StateCount, b.Capped)
	}

	// Components are left untouched.
	if !comps[0].Accepts("bcd") || comps[2].Accepts("ad") {
		t.Error("Build modified a component")
	}
}

func TestBuild_Exclusion(t *testing.T) {
	comps := append(compileAll(t, "^[a-z]{2}$"), dfa.ExcludeLiterals([]string{"id", "to"}))
	r := Build(comps, DefaultConfig())
	for in, want := range map[string]bool{"ab": true, "ie": true, "id": false, "to": false, "tx": true, "i": false} {
		if got := r.DFA.Accepts(in); got != want {
			t.Errorf("Accepts(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestSummarize(t *testing.T) {
	tests := []struct {
		name string
		d    *dfa.DFA
		want Summary
	}{
		{
			name: "literals",
			d:    dfa.Literals([]string{"a", "b"}),
			want: Summary{States: 3, Finite: true, Empty: false},
		},
		{
			name: "no words",
			d:    dfa.Literals(nil),
			want: Summary{States: 1, Finite: true, Empty: true},
		},
		{
			// The loop on state 1 can never reach acceptance.
			name: "useless cycle",
			d: dfa.New(0, []bool{true, false}, [][]dfa.Transition{
				{{Breakpoint: 'a', Next: 1}},
				{{Breakpoint: 'a', Next: 1}},
			}),
			want: Summary{States: 2, Finite: true, Empty: false},
		},
		{
			// State 1 accepts but is unreachable.
			name: "unreachable accept",
			d: dfa.New(0, []bool{false, true}, [][]dfa.Transition{
				{{Breakpoint: 'a', Next: 0}},
				{},
			}),
			want: Summary{States: 2, Finite: true, Empty: true},
		},
		{
			name: "useful cycle",
			d: dfa.New(0, []bool{false, true}, [][]dfa.Transition{
				{{Breakpoint: 'a', Next: 1}, {Breakpoint: 'b', Next: dfa.DeadState}},
				{{Breakpoint: 'a', Next: 0}, {Breakpoint: 'b', Next: dfa.DeadState}},
			}),
			want: Summary{States: 2, Finite: false, Empty: false},
		},
		{
			name: "empty automaton",
			d:    dfa.New(0, nil, nil),
			want: Summary{States: 0, Finite: true, Empty: true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if diff := cmp.Diff(tt.want, Summarize(tt.d)); diff != "" {
				t.Errorf("Summarize (-want +got):\n%s", diff)
			}
		})
	}
}
