// Package model holds the plain data types shared by every component of
// the degree-plan optimizer: courses, groups, program parameters, a
// student's input, and the resulting term assignment.
package model

// CourseID is a dense, 0-based identifier assigned to a Course when it is
// loaded into a Catalog.
type CourseID int

// Clause is a disjunctive set of course codes: at least one must be
// satisfied. Duplicate-free by construction.
type Clause []string

// CNF is a conjunction of Clauses: every clause must be satisfied.
type CNF []Clause

// Course is a single catalog entry. EstimatedGrade defaults to 0 and only
// participates in the objective once it clears Params.MinGradeThres.
type Course struct {
	ID             CourseID
	Code           string
	Title          string
	DisplayName    string
	Credits        int
	Difficulty     int
	Prereqs        CNF
	Coreqs         []string
	OfferingSpec   string
	EstimatedGrade float64
}

// EffectiveDisplayName returns DisplayName if set, else Code.
func (c *Course) EffectiveDisplayName() string {
	if c.DisplayName != "" {
		return c.DisplayName
	}
	return c.Code
}
