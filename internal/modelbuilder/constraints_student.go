package modelbuilder

import (
	"fmt"
	"strings"

	"github.com/rhyrak/degreeplan/internal/lpformat"
)

// addPassedCourses is constraint family 19: every passed code is pinned
// to slot 0, every other code is forbidden there.
func (b *Builder) addPassedCourses() {
	for _, c := range b.Cat.Courses() {
		want := 0.0
		if b.passed[c.Code] {
			want = 1.0
		}
		b.m.AddConstraint(b.nextLabel(), []lpformat.Term{term(1, xis(c.ID, 0))}, lpformat.EQ, want)
	}
}

// currentTerm is the planning slot desiredcourses.txt's "allotherterms"
// expression excludes — the nearest future term.
const currentTerm = 1

// addDesiredCourses is constraint family 20.
func (b *Builder) addDesiredCourses() error {
	for _, d := range b.Student.Desired {
		c, ok := b.Cat.ByCode(d.Code)
		if !ok {
			return fmt.Errorf("modelbuilder: desired course %q is not in the catalog", d.Code)
		}
		allowed, err := b.parseAllowedTerms(d.AllowedTermsRaw)
		if err != nil {
			return fmt.Errorf("modelbuilder: desired course %q: %w", d.Code, err)
		}
		switch {
		case len(allowed) == b.Params.Smax:
			b.m.AddConstraint(b.nextLabel(), []lpformat.Term{term(1, xi(c.ID))}, lpformat.EQ, 1)
		case len(allowed) == 0:
			b.m.AddConstraint(b.nextLabel(), []lpformat.Term{term(1, xi(c.ID))}, lpformat.EQ, 0)
		default:
			b.m.AddConstraint(b.nextLabel(), []lpformat.Term{term(1, xi(c.ID))}, lpformat.EQ, 1)
			for s := 1; s <= b.Params.Smax; s++ {
				if !allowed[s] {
					b.m.AddConstraint(b.nextLabel(), []lpformat.Term{term(1, xis(c.ID, s))}, lpformat.EQ, 0)
				}
			}
		}
	}
	return nil
}

func (b *Builder) parseAllowedTerms(raw string) (map[int]bool, error) {
	raw = strings.TrimSpace(raw)
	switch raw {
	case "":
		return map[int]bool{}, nil
	case "allterms":
		allowed := make(map[int]bool, b.Params.Smax)
		for s := 1; s <= b.Params.Smax; s++ {
			allowed[s] = true
		}
		return allowed, nil
	case "allotherterms":
		allowed := make(map[int]bool, b.Params.Smax)
		for s := 1; s <= b.Params.Smax; s++ {
			if s != currentTerm {
				allowed[s] = true
			}
		}
		return allowed, nil
	}
	allowed := make(map[int]bool)
	for _, tok := range strings.Fields(raw) {
		n, err := b.Cal.TermNo(tok)
		if err != nil {
			return nil, err
		}
		if n >= 1 {
			allowed[n] = true
		}
	}
	return allowed, nil
}

// addSessionToggles is constraint family 21: s1off/s2off/stOff forbid
// every slot of the corresponding session outright, picking the slots
// by the calendar's own season classification of each slot rather than
// by s+1/s+2 offsets from the Summer Term; both select the same slots.
func (b *Builder) addSessionToggles() {
	for s := 1; s <= b.Params.Smax; s++ {
		season, _ := b.Cal.SeasonAt(s)
		off := false
		switch season.String() {
		case "S1":
			off = b.Student.S1Off
		case "S2":
			off = b.Student.S2Off
		case "ST":
			off = b.Student.STOff
		}
		if !off {
			continue
		}
		for _, c := range b.Cat.Courses() {
			b.m.AddConstraint(b.nextLabel(), []lpformat.Term{term(1, xis(c.ID, s))}, lpformat.EQ, 0)
		}
	}
}
