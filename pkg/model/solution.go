package model

import "sort"

// Solution maps a course id to the term it is scheduled in. A missing id
// means the course was not selected by the solve.
type Solution struct {
	Terms map[CourseID]int
}

// NewSolution wraps a term-assignment map.
func NewSolution(terms map[CourseID]int) *Solution {
	return &Solution{Terms: terms}
}

// TermOf returns the term a course is scheduled in, and whether it is
// scheduled at all.
func (s *Solution) TermOf(id CourseID) (int, bool) {
	t, ok := s.Terms[id]
	return t, ok
}

// CreditsTakenSoFar sums credits over courses scheduled at term 0
// (historical / already passed).
func (s *Solution) CreditsTakenSoFar(cat *Catalog) int {
	total := 0
	for _, c := range cat.Courses() {
		if t, ok := s.Terms[c.ID]; ok && t == 0 {
			total += c.Credits
		}
	}
	return total
}

// CreditsToTake sums credits over courses scheduled at term >= 1.
func (s *Solution) CreditsToTake(cat *Catalog) int {
	total := 0
	for _, c := range cat.Courses() {
		if t, ok := s.Terms[c.ID]; ok && t >= 1 {
			total += c.Credits
		}
	}
	return total
}

// ByTerm groups scheduled course ids by term, in ascending term order.
// Within a term, ids are sorted for deterministic output.
func (s *Solution) ByTerm(cat *Catalog) map[int][]CourseID {
	out := make(map[int][]CourseID)
	for _, c := range cat.Courses() {
		if t, ok := s.Terms[c.ID]; ok {
			out[t] = append(out[t], c.ID)
		}
	}
	for t := range out {
		sort.Slice(out[t], func(i, j int) bool { return out[t][i] < out[t][j] })
	}
	return out
}

// OrderedTerms returns the sorted list of terms that have at least one
// scheduled course.
func (s *Solution) OrderedTerms() []int {
	seen := make(map[int]bool)
	for _, t := range s.Terms {
		seen[t] = true
	}
	terms := make([]int, 0, len(seen))
	for t := range seen {
		terms = append(terms, t)
	}
	sort.Ints(terms)
	return terms
}

// RequiredBy reports whether target is required, transitively through
// prerequisites or co-requisites, by any other course scheduled (at any
// term, including term 0) in this solution. requiresCourse is typically
// a closure binding cat to catalog.RequiresCourse.
func (s *Solution) RequiredBy(cat *Catalog, requiresCourse func(a, b *Course) bool, target CourseID) bool {
	tc := cat.Courses()[target]
	for id := range s.Terms {
		if id == target {
			continue
		}
		if requiresCourse(cat.Courses()[id], tc) {
			return true
		}
	}
	return false
}
