// Package lpformat renders an assembled MILP to the standard LP file
// format an external solver consumes, and parses the solver's
// name=value solution dump back into a flat variable map. Follows a
// format-in-memory-structure, write-to-named-file idiom, with an
// in-memory string variant exposed alongside the file writer.
package lpformat

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
)

// Rel is a constraint's relational operator.
type Rel int

const (
	LE Rel = iota
	GE
	EQ
)

func (r Rel) String() string {
	switch r {
	case GE:
		return ">="
	case EQ:
		return "="
	default:
		return "<="
	}
}

// VarKind distinguishes the two variable kinds this writer emits:
// bounded continuous vars and binaries. General integers are not
// supported.
type VarKind int

const (
	Continuous VarKind = iota
	Binary
)

// Term is one coefficient*variable addend of an objective row or a
// constraint row.
type Term struct {
	Coef float64
	Var  string
}

// Constraint is one named row of the model.
type Constraint struct {
	Name  string
	Terms []Term
	Rel   Rel
	RHS   float64
}

// Variable declares a decision variable and its kind/lower bound. Binary
// variables ignore Lower (fixed at 0/1 by the Binary section);
// continuous variables default to a lower bound of 0 unless HasLower.
type Variable struct {
	Name     string
	Kind     VarKind
	HasLower bool
	Lower    float64
}

// Model is the full assembled MILP: every decision variable, the
// minimization objective, and every constraint row, in emit order.
// Constraint order is preserved verbatim into the file so two builds
// from the same input diff cleanly.
type Model struct {
	Variables   []Variable
	Objective   []Term
	Constraints []Constraint
}

// AddVar registers a variable if not already present; returns its name
// unchanged for call-site chaining.
func (m *Model) AddVar(name string, kind VarKind) string {
	for _, v := range m.Variables {
		if v.Name == name {
			return name
		}
	}
	m.Variables = append(m.Variables, Variable{Name: name, Kind: kind})
	return name
}

// AddContinuousVar registers a continuous variable with an explicit
// lower bound (D and DL both need this; LP format defaults continuous
// vars to a 0 lower bound otherwise).
func (m *Model) AddContinuousVar(name string, lower float64) string {
	for i, v := range m.Variables {
		if v.Name == name {
			m.Variables[i].HasLower = true
			m.Variables[i].Lower = lower
			return name
		}
	}
	m.Variables = append(m.Variables, Variable{Name: name, Kind: Continuous, HasLower: true, Lower: lower})
	return name
}

// AddConstraint appends a row. name should be unique within the model;
// callers are responsible for sequential c1, c2, ... labeling.
func (m *Model) AddConstraint(name string, terms []Term, rel Rel, rhs float64) {
	m.Constraints = append(m.Constraints, Constraint{Name: name, Terms: terms, Rel: rel, RHS: rhs})
}

// WriteFile renders the model in LP format to path.
func (m *Model) WriteFile(path string) error {
	return os.WriteFile(path, []byte(m.String()), 0o644)
}

// String renders the model in LP format.
func (m *Model) String() string {
	var b strings.Builder

	b.WriteString("\\ degree plan model\n")
	b.WriteString("Minimize\n obj: ")
	writeTerms(&b, m.Objective)
	b.WriteString("\n")

	b.WriteString("Subject To\n")
	for _, c := range m.Constraints {
		b.WriteString(" ")
		b.WriteString(c.Name)
		b.WriteString(": ")
		writeTerms(&b, c.Terms)
		b.WriteString(" ")
		b.WriteString(c.Rel.String())
		b.WriteString(" ")
		b.WriteString(formatNum(c.RHS))
		b.WriteString("\n")
	}

	var bounded []Variable
	for _, v := range m.Variables {
		if v.Kind == Continuous && v.HasLower {
			bounded = append(bounded, v)
		}
	}
	if len(bounded) > 0 {
		b.WriteString("Bounds\n")
		for _, v := range bounded {
			fmt.Fprintf(&b, " %s >= %s\n", v.Name, formatNum(v.Lower))
		}
	}

	var binaries []string
	for _, v := range m.Variables {
		if v.Kind == Binary {
			binaries = append(binaries, v.Name)
		}
	}
	if len(binaries) > 0 {
		b.WriteString("Binary\n")
		for _, name := range chunk(binaries, 8) {
			b.WriteString(" ")
			b.WriteString(strings.Join(name, " "))
			b.WriteString("\n")
		}
	}

	b.WriteString("End\n")
	return b.String()
}

func writeTerms(b *strings.Builder, terms []Term) {
	if len(terms) == 0 {
		b.WriteString("0")
		return
	}
	for i, t := range terms {
		sign := "+"
		coef := t.Coef
		if coef < 0 {
			sign = "-"
			coef = -coef
		}
		if i > 0 || sign == "-" {
			b.WriteString(" ")
			b.WriteString(sign)
			b.WriteString(" ")
		}
		b.WriteString(formatNum(coef))
		b.WriteString(" ")
		b.WriteString(t.Var)
	}
}

func formatNum(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func chunk(items []string, size int) [][]string {
	var out [][]string
	for size < len(items) {
		items, out = items[size:], append(out, items[:size])
	}
	return append(out, items)
}

// SortedCounts returns the keys of a string-keyed map in sorted order,
// giving a stable iteration order over such maps.
func SortedCounts[T any](m map[string]T) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
