package modelbuilder

import (
	"fmt"
	"strings"

	"github.com/rhyrak/degreeplan/internal/lpformat"
	"github.com/rhyrak/degreeplan/pkg/model"
)

// addGroupFamilies is constraint family 18: every plain/exact-count/
// per-semester-max/at-most-net-passed group, plus the minimum-
// disciplines handling for groups whose credits field is negative.
// Concentration, capstone, soft-order, OU-annual, honors, and
// level-band groups are handled by their own dedicated families below.
func (b *Builder) addGroupFamilies() error {
	for _, g := range b.Groups.All() {
		switch g.Kind {
		case model.GroupConcentration, model.GroupCapstone, model.GroupSoftOrder,
			model.GroupOUAnnual, model.GroupHonors, model.GroupLevelBand:
			continue
		}

		switch g.Kind {
		case model.GroupPlain:
			if g.MinNumCoursesReq > 0 {
				terms, err := b.memberTerms(g, g.Members)
				if err != nil {
					return err
				}
				b.m.AddConstraint(b.nextLabel(), terms, lpformat.GE, float64(g.MinNumCoursesReq))
			}
		case model.GroupExactCount:
			n := b.netCount(g)
			remaining := b.remainingMembers(g)
			terms, err := b.memberTerms(g, remaining)
			if err != nil {
				return err
			}
			b.m.AddConstraint(b.nextLabel(), terms, lpformat.EQ, float64(n))
		case model.GroupAtMostNetPassed:
			n := b.netCount(g)
			remaining := b.remainingMembers(g)
			terms, err := b.memberTerms(g, remaining)
			if err != nil {
				return err
			}
			b.m.AddConstraint(b.nextLabel(), terms, lpformat.LE, float64(n))
		case model.GroupPerSemesterMax:
			if err := b.addPerSemesterMax(g); err != nil {
				return err
			}
		}

		if err := b.addCreditsOrDisciplines(g); err != nil {
			return err
		}
	}
	return nil
}

func (b *Builder) memberTerms(g *model.CourseGroup, members []string) ([]lpformat.Term, error) {
	var terms []lpformat.Term
	for _, code := range members {
		c, ok := b.Cat.ByCode(code)
		if !ok {
			return nil, fmt.Errorf("modelbuilder: group %q references unknown course %q", g.Name, code)
		}
		terms = append(terms, term(1, xi(c.ID)))
	}
	return terms, nil
}

// netCount resolves the "decrement by already-passed, floor at 0" rule
// shared by the `=N` and negative-`N` group forms.
func (b *Builder) netCount(g *model.CourseGroup) int {
	n := g.MinNumCoursesReq
	if n < 0 {
		n = -n
	}
	for _, code := range g.Members {
		if b.passed[code] {
			n--
		}
	}
	if n < 0 {
		n = 0
	}
	return n
}

func (b *Builder) remainingMembers(g *model.CourseGroup) []string {
	var out []string
	for _, code := range g.Members {
		if !b.passed[code] {
			out = append(out, code)
		}
	}
	return out
}

func (b *Builder) addPerSemesterMax(g *model.CourseGroup) error {
	for _, win := range b.Cal.TermWindows(b.Params.Smax) {
		var terms []lpformat.Term
		for _, code := range g.Members {
			c, ok := b.Cat.ByCode(code)
			if !ok {
				return fmt.Errorf("modelbuilder: group %q references unknown course %q", g.Name, code)
			}
			for _, s := range win {
				terms = append(terms, term(1, xis(c.ID, s)))
			}
		}
		b.m.AddConstraint(b.nextLabel(), terms, lpformat.LE, float64(g.MinNumCoursesReq))
	}
	return nil
}

// addCreditsOrDisciplines emits the group's credit-threshold row, or a
// count over per-discipline indicator variables when the group's
// credits field was negative (read as a minimum-distinct-disciplines
// requirement rather than a credit total).
func (b *Builder) addCreditsOrDisciplines(g *model.CourseGroup) error {
	if g.MinNumDisciplines > 0 {
		return b.addMinimumDisciplines(g)
	}
	if g.MinNumCreditsReq > 0 {
		var terms []lpformat.Term
		for _, code := range g.Members {
			c, ok := b.Cat.ByCode(code)
			if !ok {
				return fmt.Errorf("modelbuilder: group %q references unknown course %q", g.Name, code)
			}
			terms = append(terms, term(float64(c.Credits), xi(c.ID)))
		}
		b.m.AddConstraint(b.nextLabel(), terms, lpformat.GE, float64(g.MinNumCreditsReq))
	}
	return nil
}

// addMinimumDisciplines emits, for each distinct discipline among the
// group's remaining (non-passed) members, a binary "discipline active"
// variable linked by disciplineActive_d >= x_j for each member j of
// that discipline, then sums the indicators against MinNumDisciplines.
func (b *Builder) addMinimumDisciplines(g *model.CourseGroup) error {
	byDiscipline := make(map[string][]string)
	var order []string
	for _, code := range b.remainingMembers(g) {
		d := model.Discipline(code)
		if _, seen := byDiscipline[d]; !seen {
			order = append(order, d)
		}
		byDiscipline[d] = append(byDiscipline[d], code)
	}

	var sumTerms []lpformat.Term
	for _, d := range order {
		varName := disciplineVar(g.Name, d)
		b.m.AddVar(varName, lpformat.Binary)
		for _, code := range byDiscipline[d] {
			c, ok := b.Cat.ByCode(code)
			if !ok {
				return fmt.Errorf("modelbuilder: group %q references unknown course %q", g.Name, code)
			}
			b.m.AddConstraint(b.nextLabel(),
				[]lpformat.Term{term(1, varName), term(-1, xi(c.ID))}, lpformat.GE, 0)
		}
		sumTerms = append(sumTerms, term(1, varName))
	}
	b.m.AddConstraint(b.nextLabel(), sumTerms, lpformat.GE, float64(g.MinNumDisciplines))
	return nil
}

func disciplineVar(groupName, discipline string) string {
	safe := func(s string) string {
		var sb strings.Builder
		for _, r := range s {
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
				sb.WriteRune(r)
			} else {
				sb.WriteByte('_')
			}
		}
		return sb.String()
	}
	return fmt.Sprintf("disc_%s_%s", safe(groupName), safe(discipline))
}

// addConcentration is constraint family 22.
func (b *Builder) addConcentration() error {
	for _, g := range b.Groups.Concentrations(b.Student.ConcentrationName) {
		if g.MinNumCoursesReq > 0 {
			terms, err := b.memberTerms(g, g.Members)
			if err != nil {
				return err
			}
			b.m.AddConstraint(b.nextLabel(), terms, lpformat.GE, float64(g.MinNumCoursesReq))
		}
		if g.MinNumCreditsReq > 0 {
			var terms []lpformat.Term
			for _, code := range g.Members {
				c, ok := b.Cat.ByCode(code)
				if !ok {
					return fmt.Errorf("modelbuilder: concentration group %q references unknown course %q", g.Name, code)
				}
				terms = append(terms, term(float64(c.Credits), xi(c.ID)))
			}
			b.m.AddConstraint(b.nextLabel(), terms, lpformat.GE, float64(g.MinNumCreditsReq))
		}
	}
	return nil
}

// addCapstoneGates is constraint family 23. The capstone group's
// countExpr/creditsExpr fields are repurposed for capstone groups: the
// credits field is the credit-total threshold Cr_cap, the count field
// is the concentration-courses threshold N_cap — there is no other
// natural home for those two numbers in the *.grp format.
func (b *Builder) addCapstoneGates() error {
	for _, g := range b.Groups.All() {
		if g.Kind != model.GroupCapstone {
			continue
		}
		kappa, ok := b.Cat.ByCode(g.Members[0])
		if !ok {
			return fmt.Errorf("modelbuilder: capstone group %q references unknown course %q", g.Name, g.Members[0])
		}
		crCap := float64(g.MinNumCreditsReq)
		nCap := float64(g.MinNumCoursesReq)
		conc := b.Groups.Concentrations(b.Student.ConcentrationName)

		for s := 0; s <= b.Params.Smax; s++ {
			k := b.Cal.PrereqLag(s)
			if s < k {
				continue
			}
			creditTerms := []lpformat.Term{term(crCap, xis(kappa.ID, s))}
			concTerms := []lpformat.Term{term(nCap, xis(kappa.ID, s))}
			for _, c := range b.Cat.Courses() {
				if c.ID == kappa.ID {
					continue
				}
				for t := 0; t <= s-k; t++ {
					creditTerms = append(creditTerms, term(-float64(c.Credits), xis(c.ID, t)))
				}
			}
			for _, cg := range conc {
				for _, code := range cg.Members {
					if code == g.Members[0] {
						continue
					}
					c, ok := b.Cat.ByCode(code)
					if !ok {
						continue
					}
					for t := 0; t <= s-k; t++ {
						concTerms = append(concTerms, term(-1, xis(c.ID, t)))
					}
				}
			}
			b.m.AddConstraint(b.nextLabel(), creditTerms, lpformat.LE, 0)
			b.m.AddConstraint(b.nextLabel(), concTerms, lpformat.LE, 0)
		}
	}
	return nil
}

// addSoftOrder is constraint family 24.
func (b *Builder) addSoftOrder() error {
	for _, g := range b.Groups.All() {
		if g.Kind != model.GroupSoftOrder {
			continue
		}
		a, ok := b.Cat.ByCode(g.Members[0])
		if !ok {
			return fmt.Errorf("modelbuilder: soft-order group %q references unknown course %q", g.Name, g.Members[0])
		}
		bb, ok := b.Cat.ByCode(g.Members[1])
		if !ok {
			return fmt.Errorf("modelbuilder: soft-order group %q references unknown course %q", g.Name, g.Members[1])
		}
		n := g.SoftOrderDistance
		for s := 0; s <= b.Params.Smax; s++ {
			lower := 0
			if n > 0 {
				lower = s - n
				if lower < 0 {
					lower = 0
				}
			}
			terms := []lpformat.Term{term(1, xis(bb.ID, s))}
			for t := lower; t < s; t++ {
				terms = append(terms, term(-1, xis(a.ID, t)))
			}
			terms = append(terms, term(1, xi(a.ID)))
			b.m.AddConstraint(b.nextLabel(), terms, lpformat.LE, 1)
		}
	}
	return nil
}

// addOUAnnualCap is constraint family 25.
func (b *Builder) addOUAnnualCap() error {
	for _, g := range b.Groups.All() {
		if g.Kind != model.GroupOUAnnual {
			continue
		}
		nOU := g.MinNumCoursesReq
		terms, err := b.memberTermsAt(g)
		if err != nil {
			return err
		}

		for s := 1; s <= b.Params.Smax; s++ {
			if !b.Cal.IsFallTerm(s) {
				continue
			}
			end := s + 4
			if end > b.Params.Smax {
				end = b.Params.Smax
			}
			var window []lpformat.Term
			for s2 := s; s2 <= end; s2++ {
				window = append(window, terms[s2]...)
			}
			b.m.AddConstraint(b.nextLabel(), window, lpformat.LE, float64(nOU))
		}

		firstSeason, _ := b.Cal.SeasonAt(1)
		if firstSeason.String() != "FA" {
			nextFall := b.Cal.NextFallTerm(1)
			end := nextFall - 1
			if end > b.Params.Smax {
				end = b.Params.Smax
			}
			var window []lpformat.Term
			for s2 := 1; s2 <= end; s2++ {
				window = append(window, terms[s2]...)
			}
			b.m.AddConstraint(b.nextLabel(), window, lpformat.LE, float64(nOU-b.Student.NumOUThisYear))
		}
	}
	return nil
}

func (b *Builder) memberTermsAt(g *model.CourseGroup) (map[int][]lpformat.Term, error) {
	out := make(map[int][]lpformat.Term, b.Params.Smax)
	for s := 1; s <= b.Params.Smax; s++ {
		for _, code := range g.Members {
			c, ok := b.Cat.ByCode(code)
			if !ok {
				return nil, fmt.Errorf("modelbuilder: group %q references unknown course %q", g.Name, code)
			}
			out[s] = append(out[s], term(1, xis(c.ID, s)))
		}
	}
	return out, nil
}

// addHonorsRestriction is constraint family 26.
func (b *Builder) addHonorsRestriction() {
	if b.Student.Honors {
		return
	}
	g, ok := b.Groups.Honors()
	if !ok {
		return
	}
	for _, code := range g.Members {
		if b.passed[code] {
			continue
		}
		c, ok := b.Cat.ByCode(code)
		if !ok {
			continue
		}
		b.m.AddConstraint(b.nextLabel(), []lpformat.Term{term(1, xi(c.ID))}, lpformat.EQ, 0)
	}
}
