package modelbuilder

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rhyrak/degreeplan/internal/lpformat"
)

// addPerTermCreditCap is constraint family 11: each non-summer term
// capped at Cmax(honors); each 3-slot summer window capped once at
// SummerCmax(honors), using the calendar's window partition so the
// window is evaluated exactly once rather than once per slot.
func (b *Builder) addPerTermCreditCap() {
	honors := b.Student.Honors
	for _, win := range b.Cal.TermWindows(b.Params.Smax) {
		creditCap := b.Params.CmaxFor(honors)
		if b.Cal.IsSummerWindow(win) {
			creditCap = b.Params.SummerCmaxFor(honors)
		}
		var terms []lpformat.Term
		for _, c := range b.Cat.Courses() {
			for _, s := range win {
				terms = append(terms, term(float64(c.Credits), xis(c.ID, s)))
			}
		}
		b.m.AddConstraint(b.nextLabel(), terms, lpformat.LE, float64(creditCap))
	}
}

// addFreshmanCap is constraint family 12: a freshman (fewer passed
// courses than MinNumCourses4Sophomore) who gave no general per-term
// cap of their own is held to FreshmanMaxNumCoursesPerTerm in term 1.
func (b *Builder) addFreshmanCap() {
	if b.Params.MinNumCourses4Sophomore <= 0 || b.Params.FreshmanMaxNumCoursesPerTerm <= 0 {
		return
	}
	if b.Student.MaxNumCrsPerSem > 0 {
		return
	}
	if len(b.Student.Passed) >= b.Params.MinNumCourses4Sophomore {
		return
	}
	if b.Params.Smax < 1 {
		return
	}
	var terms []lpformat.Term
	for _, c := range b.Cat.Courses() {
		terms = append(terms, term(1, xis(c.ID, 1)))
	}
	b.m.AddConstraint(b.nextLabel(), terms, lpformat.LE, float64(b.Params.FreshmanMaxNumCoursesPerTerm))
}

// addStudentPerTermCap combines constraint families 13 and 14: for
// every term, the student's own per-term expression (family 14) is
// used if they gave one for that exact term, else the general
// maxNumCrsPerSem cap (family 13) applies. The original source always
// looked up the expression at term key 1 when deciding whether family
// 13 applied anywhere; that was a lookup bug, corrected here to look up
// the actual term s being emitted.
func (b *Builder) addStudentPerTermCap() error {
	for s := 1; s <= b.Params.Smax; s++ {
		expr, hasExpr := b.Student.PerTermCounts[s]
		if !hasExpr {
			if b.Student.MaxNumCrsPerSem <= 0 {
				continue
			}
			var terms []lpformat.Term
			for _, c := range b.Cat.Courses() {
				terms = append(terms, term(1, xis(c.ID, s)))
			}
			b.m.AddConstraint(b.nextLabel(), terms, lpformat.LE, float64(b.Student.MaxNumCrsPerSem))
			continue
		}
		rel, n, err := parseTermExpr(expr)
		if err != nil {
			return fmt.Errorf("modelbuilder: per-term expression for term %d: %w", s, err)
		}
		var terms []lpformat.Term
		for _, c := range b.Cat.Courses() {
			terms = append(terms, term(1, xis(c.ID, s)))
		}
		b.m.AddConstraint(b.nextLabel(), terms, rel, float64(n))
	}
	return nil
}

// parseTermExpr parses a per-term count expression: "= N", "<= N",
// ">= N", "< N", "> N". The strict forms are rewritten
// to their non-strict equivalents (< N becomes <= N-1, > N becomes
// >= N+1) since LP format has no strict relational operator.
func parseTermExpr(raw string) (lpformat.Rel, int, error) {
	raw = strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(raw, "<="):
		n, err := strconv.Atoi(strings.TrimSpace(raw[2:]))
		return lpformat.LE, n, err
	case strings.HasPrefix(raw, ">="):
		n, err := strconv.Atoi(strings.TrimSpace(raw[2:]))
		return lpformat.GE, n, err
	case strings.HasPrefix(raw, "="):
		n, err := strconv.Atoi(strings.TrimSpace(raw[1:]))
		return lpformat.EQ, n, err
	case strings.HasPrefix(raw, "<"):
		n, err := strconv.Atoi(strings.TrimSpace(raw[1:]))
		return lpformat.LE, n - 1, err
	case strings.HasPrefix(raw, ">"):
		n, err := strconv.Atoi(strings.TrimSpace(raw[1:]))
		return lpformat.GE, n + 1, err
	default:
		n, err := strconv.Atoi(raw)
		return lpformat.EQ, n, err
	}
}

// addThesisWorkload is constraint family 15: while the thesis course
// is scheduled in a term, the number of other courses in that term is
// capped at maxNumCrsDurThesis-1; the inequality is
// trivially satisfied in terms where the thesis isn't scheduled.
func (b *Builder) addThesisWorkload() {
	theta, ok := b.Cat.ByCode(b.Params.ThesisCourseCode)
	if !ok {
		return
	}
	honors := b.Student.Honors
	cmax := b.Params.CmaxFor(honors)
	sigma := b.Student.MaxNumCrsDurThesis - 1
	for s := 0; s <= b.Params.Smax; s++ {
		terms := []lpformat.Term{term(float64(cmax-sigma), xis(theta.ID, s))}
		for _, c := range b.Cat.Courses() {
			if c.ID == theta.ID {
				continue
			}
			terms = append(terms, term(1, xis(c.ID, s)))
		}
		b.m.AddConstraint(b.nextLabel(), terms, lpformat.LE, float64(cmax))
	}
}

// addSummerConcurrencyCap is constraint family 16: across each S1/S2/ST
// triple, no more than SummerConcNMax courses may straddle adjacent
// pairs of sessions. A configured cap of exactly 0 is a legitimate
// "no double-booking across summer sessions at all" policy and still
// emits the family; only a negative (unset) value skips it.
func (b *Builder) addSummerConcurrencyCap() {
	if b.Params.SummerConcNMax < 0 {
		return
	}
	for s := 1; s <= b.Params.Smax; s++ {
		season, _ := b.Cal.SeasonAt(s)
		if season.String() != "S1" || s+2 > b.Params.Smax {
			continue
		}
		var terms1, terms2 []lpformat.Term
		for _, c := range b.Cat.Courses() {
			terms1 = append(terms1, term(1, xis(c.ID, s)), term(1, xis(c.ID, s+2)))
			terms2 = append(terms2, term(1, xis(c.ID, s+1)), term(1, xis(c.ID, s+2)))
		}
		b.m.AddConstraint(b.nextLabel(), terms1, lpformat.LE, float64(b.Params.SummerConcNMax))
		b.m.AddConstraint(b.nextLabel(), terms2, lpformat.LE, float64(b.Params.SummerConcNMax))
	}
}
