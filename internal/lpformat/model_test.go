package lpformat

import (
	"strings"
	"testing"
)

func TestModelStringRendersSections(t *testing.T) {
	m := &Model{}
	m.AddVar("x_0_1", Binary)
	m.AddVar("x_1_1", Binary)
	m.AddContinuousVar("D", 0)
	m.Objective = []Term{{Coef: 1, Var: "D"}, {Coef: -2.5, Var: "x_0_1"}}
	m.AddConstraint("c1", []Term{{Coef: 1, Var: "x_0_1"}, {Coef: 1, Var: "x_1_1"}}, LE, 1)

	out := m.String()

	wantSubstrings := []string{
		"Minimize",
		"obj: 1 D - 2.5 x_0_1",
		"Subject To",
		"c1: 1 x_0_1 + 1 x_1_1 <= 1",
		"Bounds",
		"D >= 0",
		"Binary",
		"x_0_1",
		"x_1_1",
		"End",
	}
	for _, want := range wantSubstrings {
		if !strings.Contains(out, want) {
			t.Errorf("model output missing %q; got:\n%s", want, out)
		}
	}
}

func TestModelStringEmptyObjectiveRendersZero(t *testing.T) {
	m := &Model{}
	out := m.String()
	if !strings.Contains(out, "obj: 0") {
		t.Errorf("empty objective should render as 0; got:\n%s", out)
	}
}

func TestAddVarIsIdempotent(t *testing.T) {
	m := &Model{}
	m.AddVar("x_0_1", Binary)
	m.AddVar("x_0_1", Binary)
	if len(m.Variables) != 1 {
		t.Errorf("AddVar called twice with the same name produced %d variables, want 1", len(m.Variables))
	}
}

func TestAddContinuousVarUpdatesExistingLowerBound(t *testing.T) {
	m := &Model{}
	m.AddVar("DL", Continuous)
	m.AddContinuousVar("DL", 3)
	if len(m.Variables) != 1 {
		t.Fatalf("expected one variable, got %d", len(m.Variables))
	}
	if !m.Variables[0].HasLower || m.Variables[0].Lower != 3 {
		t.Errorf("AddContinuousVar did not update the lower bound on an existing variable: %+v", m.Variables[0])
	}
}

func TestRelString(t *testing.T) {
	cases := map[Rel]string{LE: "<=", GE: ">=", EQ: "="}
	for rel, want := range cases {
		if got := rel.String(); got != want {
			t.Errorf("Rel(%d).String() = %q, want %q", rel, got, want)
		}
	}
}

func TestSortedCountsIsDeterministic(t *testing.T) {
	m := map[string]int{"b": 2, "a": 1, "c": 3}
	keys := SortedCounts(m)
	want := []string{"a", "b", "c"}
	if len(keys) != len(want) {
		t.Fatalf("got %v, want %v", keys, want)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("keys[%d] = %q, want %q", i, keys[i], want[i])
		}
	}
}
