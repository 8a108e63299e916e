package modelbuilder

import (
	"fmt"

	"github.com/rhyrak/degreeplan/internal/lpformat"
	"github.com/rhyrak/degreeplan/pkg/model"
)

// addCompletionProxy is constraint family 1: s*x_{i,s} - D <= 0 for
// every (i,s), so D ends up at least the latest term any course is
// scheduled in.
func (b *Builder) addCompletionProxy() {
	for _, c := range b.Cat.Courses() {
		for s := 0; s <= b.Params.Smax; s++ {
			if s == 0 {
				continue
			}
			b.m.AddConstraint(b.nextLabel(),
				[]lpformat.Term{term(float64(s), xis(c.ID, s)), term(-1, "D")},
				lpformat.LE, 0)
		}
	}
}

// addDifficultyBound is constraint family 2: sum_i dl_i*x_{i,s} - DL <=
// 0 for every s, so DL ends up at least the heaviest single-term
// difficulty load.
func (b *Builder) addDifficultyBound() {
	for s := 0; s <= b.Params.Smax; s++ {
		terms := []lpformat.Term{term(-1, "DL")}
		for _, c := range b.Cat.Courses() {
			if c.Difficulty != 0 {
				terms = append(terms, term(float64(c.Difficulty), xis(c.ID, s)))
			}
		}
		b.m.AddConstraint(b.nextLabel(), terms, lpformat.LE, 0)
	}
}

// addOfferingAvailability is constraint family 3: x_{i,s} <= o_{i,s}.
// Slot 0 is always available (it represents "already passed").
func (b *Builder) addOfferingAvailability() {
	for _, c := range b.Cat.Courses() {
		for s := 1; s <= b.Params.Smax; s++ {
			o := 0.0
			if b.offering[c.ID][s] {
				o = 1.0
			}
			b.m.AddConstraint(b.nextLabel(),
				[]lpformat.Term{term(1, xis(c.ID, s))}, lpformat.LE, o)
		}
	}
}

// addPrerequisites is constraint family 4: for every course, every CNF
// clause, every slot s >= k_s, at least one disjunct must be completed
// strictly earlier than s by the slot's lag.
func (b *Builder) addPrerequisites() {
	for _, c := range b.Cat.Courses() {
		for _, clause := range c.Prereqs {
			for s := 0; s <= b.Params.Smax; s++ {
				k := b.Cal.PrereqLag(s)
				if s < k {
					continue
				}
				terms := []lpformat.Term{term(1, xis(c.ID, s))}
				for _, code := range clause {
					j := b.Cat.MustByCode(code)
					for t := 0; t <= s-k; t++ {
						terms = append(terms, term(-1, xis(j.ID, t)))
					}
				}
				b.m.AddConstraint(b.nextLabel(), terms, lpformat.LE, 0)
			}
		}
	}
}

// addCorequisites is constraint family 5: like prerequisites, but a
// disjunct may also be taken in the same slot s.
func (b *Builder) addCorequisites() {
	for _, c := range b.Cat.Courses() {
		if len(c.Coreqs) == 0 {
			continue
		}
		for s := 0; s <= b.Params.Smax; s++ {
			terms := []lpformat.Term{term(1, xis(c.ID, s))}
			for _, code := range c.Coreqs {
				j := b.Cat.MustByCode(code)
				for t := 0; t <= s; t++ {
					terms = append(terms, term(-1, xis(j.ID, t)))
				}
			}
			b.m.AddConstraint(b.nextLabel(), terms, lpformat.LE, 0)
		}
	}
}

// addLevelGates is constraint families 6-8: Level-4-before-Level-5,
// Level-4-full-before-Level-6, Level-5-before-Level-6.
func (b *Builder) addLevelGates() error {
	l4 := b.Groups.L4
	l5plus := b.Groups.L5Like()
	l5, l6 := b.Groups.L5, b.Groups.L6

	// 6: at least 4 L4 courses before any L5 (and any L5-* band).
	for _, l5Group := range l5plus {
		if err := b.addLevelGate(l5Group, l4, 4); err != nil {
			return err
		}
	}
	// 7: all L4 courses completed before any L6.
	if err := b.addLevelGate(l6, l4, len(l4.Members)); err != nil {
		return err
	}
	// 8: at least 4 L5 courses before any L6.
	return b.addLevelGate(l6, l5, 4)
}

func (b *Builder) addLevelGate(gated, gate *model.CourseGroup, threshold int) error {
	for _, code := range gated.Members {
		c, ok := b.Cat.ByCode(code)
		if !ok {
			return fmt.Errorf("modelbuilder: group %q references unknown course %q", gated.Name, code)
		}
		for s := 0; s <= b.Params.Smax; s++ {
			k := b.Cal.PrereqLag(s)
			if s < k {
				continue
			}
			terms := []lpformat.Term{term(float64(threshold), xis(c.ID, s))}
			for _, gCode := range gate.Members {
				j, ok := b.Cat.ByCode(gCode)
				if !ok {
					return fmt.Errorf("modelbuilder: group %q references unknown course %q", gate.Name, gCode)
				}
				for t := 0; t <= s-k; t++ {
					terms = append(terms, term(-1, xis(j.ID, t)))
				}
			}
			b.m.AddConstraint(b.nextLabel(), terms, lpformat.LE, 0)
		}
	}
	return nil
}

// addTotalCredits is constraint family 9: sum_i credits_i*x_i >= Tc.
func (b *Builder) addTotalCredits() {
	var terms []lpformat.Term
	for _, c := range b.Cat.Courses() {
		terms = append(terms, term(float64(c.Credits), xi(c.ID)))
	}
	b.m.AddConstraint(b.nextLabel(), terms, lpformat.GE, float64(b.Params.Tc))
}

// addLELatestTerm is constraint family 10: every LE-group member is
// forbidden at any slot beyond MaxLETerm.
func (b *Builder) addLELatestTerm() error {
	le, ok := b.Groups.ByName("LE")
	if !ok {
		return nil
	}
	for _, code := range le.Members {
		c, ok := b.Cat.ByCode(code)
		if !ok {
			return fmt.Errorf("modelbuilder: group %q references unknown course %q", le.Name, code)
		}
		for s := b.Params.MaxLETerm + 1; s <= b.Params.Smax; s++ {
			b.m.AddConstraint(b.nextLabel(), []lpformat.Term{term(1, xis(c.ID, s))}, lpformat.EQ, 0)
		}
	}
	return nil
}

// addLinking is constraint family 17: sum_s x_{i,s} - x_i = 0.
func (b *Builder) addLinking() {
	for _, c := range b.Cat.Courses() {
		terms := []lpformat.Term{term(-1, xi(c.ID))}
		for s := 0; s <= b.Params.Smax; s++ {
			terms = append(terms, term(1, xis(c.ID, s)))
		}
		b.m.AddConstraint(b.nextLabel(), terms, lpformat.EQ, 0)
	}
}
