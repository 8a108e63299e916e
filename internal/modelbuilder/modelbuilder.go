// Package modelbuilder emits the course-scheduling MILP: decision
// variables, the minimization objective, and all 26 constraint
// families, assembled into an internal/lpformat.Model ready to write to
// disk. Uses the same "iterate courses x slots, build the assignment
// under a long list of named constraints" control shape as a direct
// placement scheduler, generalized into LP-constraint emission.
package modelbuilder

import (
	"fmt"

	"github.com/rhyrak/degreeplan/internal/calendar"
	"github.com/rhyrak/degreeplan/internal/catalog"
	"github.com/rhyrak/degreeplan/internal/groups"
	"github.com/rhyrak/degreeplan/internal/lpformat"
	"github.com/rhyrak/degreeplan/pkg/model"
)

// ProgramBonus is the fixed tie-breaking bias assigned to courses whose
// code starts with a maximized program prefix.
const ProgramBonus = 0.001

// Builder assembles one model for one StudentInput against the
// process-wide Catalog/GroupRegistry/Params/Calendar. A Builder is used
// once per solve; it is not safe to reuse concurrently.
type Builder struct {
	Cat     *model.Catalog
	Groups  *groups.Registry
	Params  *model.Params
	Student *model.StudentInput
	Cal     *calendar.Calendar

	m        *lpformat.Model
	offering map[model.CourseID]map[int]bool
	passed   map[string]bool
	seq      int
}

// New builds a Builder over the process-wide load and a single
// student's input. cat/reg/params are treated as read-only for the
// lifetime of the returned Builder; a Builder itself owns the one solve
// session it builds a model for.
func New(cat *model.Catalog, reg *groups.Registry, params *model.Params, student *model.StudentInput, cal *calendar.Calendar) *Builder {
	return &Builder{
		Cat:     cat,
		Groups:  reg,
		Params:  params,
		Student: student,
		Cal:     cal,
		passed:  student.PassedSet(),
	}
}

// Build assembles and returns the full model. Returns an error if the
// student input references a catalog-unknown code or a malformed
// term/count expression.
func (b *Builder) Build() (*lpformat.Model, error) {
	b.m = &lpformat.Model{}
	b.seq = 0
	b.offering = make(map[model.CourseID]map[int]bool, len(b.Cat.Courses()))
	for _, c := range b.Cat.Courses() {
		b.offering[c.ID] = catalog.OfferingTerms(c, b.Cal, b.Params.Smax)
	}

	b.declareVariables()
	if err := b.addObjective(); err != nil {
		return nil, err
	}

	b.addCompletionProxy()
	b.addDifficultyBound()
	b.addOfferingAvailability()
	b.addPrerequisites()
	b.addCorequisites()
	if err := b.addLevelGates(); err != nil {
		return nil, err
	}
	b.addTotalCredits()
	if err := b.addLELatestTerm(); err != nil {
		return nil, err
	}
	b.addPerTermCreditCap()
	b.addFreshmanCap()
	if err := b.addStudentPerTermCap(); err != nil {
		return nil, err
	}
	b.addThesisWorkload()
	b.addSummerConcurrencyCap()
	b.addLinking()
	if err := b.addGroupFamilies(); err != nil {
		return nil, err
	}
	b.addPassedCourses()
	if err := b.addDesiredCourses(); err != nil {
		return nil, err
	}
	b.addSessionToggles()
	if err := b.addConcentration(); err != nil {
		return nil, err
	}
	if err := b.addCapstoneGates(); err != nil {
		return nil, err
	}
	if err := b.addSoftOrder(); err != nil {
		return nil, err
	}
	if err := b.addOUAnnualCap(); err != nil {
		return nil, err
	}
	b.addHonorsRestriction()

	return b.m, nil
}

func (b *Builder) nextLabel() string {
	b.seq++
	return fmt.Sprintf("c%d", b.seq)
}

// xis names the per-slot binary variable x_{i,s}.
func xis(i model.CourseID, s int) string {
	return fmt.Sprintf("x_%d_%d", i, s)
}

// xi names the "taken at all" binary variable x_i.
func xi(i model.CourseID) string {
	return fmt.Sprintf("x_%d", i)
}

func (b *Builder) declareVariables() {
	for _, c := range b.Cat.Courses() {
		for s := 0; s <= b.Params.Smax; s++ {
			b.m.AddVar(xis(c.ID, s), lpformat.Binary)
		}
		b.m.AddVar(xi(c.ID), lpformat.Binary)
	}
	b.m.AddContinuousVar("D", 0)
	b.m.AddContinuousVar("DL", 0)
}

func term(coef float64, v string) lpformat.Term { return lpformat.Term{Coef: coef, Var: v} }

func isProgramCode(code string, rules []model.ProgramCodeRule, reg *groups.Registry) bool {
	for _, r := range rules {
		if !hasPrefix(code, r.Code) {
			continue
		}
		if r.ExceptionGroup == "" {
			return true
		}
		g, ok := reg.ByName(r.ExceptionGroup)
		if !ok {
			return true
		}
		if memberOf(g, code) {
			return false
		}
		return true
	}
	return false
}

func hasPrefix(s, prefix string) bool {
	return len(s) >= len(prefix) && s[:len(prefix)] == prefix
}

func memberOf(g *model.CourseGroup, code string) bool {
	for _, m := range g.Members {
		if m == code {
			return true
		}
	}
	return false
}

// addObjective emits the minimize row: DN*D + DLc*DL + sum_i c_i*x_i,
// with c_i = Cr*credits_i - bonus_i + Gr*grade_i (grade term only when
// the course's estimated grade clears MinGradeThres).
func (b *Builder) addObjective() error {
	w := b.Student.ObjWeights
	var objTerms []lpformat.Term
	objTerms = append(objTerms, term(w.DN, "D"))
	objTerms = append(objTerms, term(w.DL, "DL"))

	for _, c := range b.Cat.Courses() {
		coef := w.Cr * float64(c.Credits)
		if isProgramCode(c.Code, b.Params.ProgramCodes2Maximize, b.Groups) {
			coef -= ProgramBonus
		}
		if w.Gr != 0 && c.EstimatedGrade >= b.Params.MinGradeThres {
			coef += w.Gr * c.EstimatedGrade
		}
		if coef != 0 {
			objTerms = append(objTerms, term(coef, xi(c.ID)))
		}
	}
	b.m.Objective = objTerms
	return nil
}
