// Package catalog provides pure-function queries on top of a
// model.Catalog: resolving a course's symbolic offeringSpec into
// concrete term numbers, and walking the prerequisite/co-requisite
// closure.
package catalog

import (
	"strings"

	"github.com/rhyrak/degreeplan/internal/calendar"
	"github.com/rhyrak/degreeplan/pkg/model"
)

// OfferingTerms resolves a course's offeringSpec into the set of term
// numbers in {1..smax} at which it may be scheduled. Re-evaluated on
// every call so that a changed CurrentDate (a new Calendar) changes the
// result. A spec of "-" offers the course nowhere.
func OfferingTerms(c *model.Course, cal *calendar.Calendar, smax int) map[int]bool {
	out := make(map[int]bool)
	spec := strings.TrimSpace(c.OfferingSpec)
	if spec == "-" || spec == "" {
		return out
	}
	for _, tok := range strings.Fields(spec) {
		switch tok {
		case "alltimes":
			for s := 1; s <= smax; s++ {
				out[s] = true
			}
		case "everyfall":
			for s := 1; s <= smax; s++ {
				if cal.IsFallTerm(s) {
					out[s] = true
				}
			}
		case "everyspring":
			for s := 1; s <= smax; s++ {
				if season, _ := cal.SeasonAt(s); season == calendar.SP {
					out[s] = true
				}
			}
		case "everysummerterm":
			for s := 1; s <= smax; s++ {
				if cal.IsSummerTerm(s) {
					out[s] = true
				}
			}
		case "next2terms":
			for s := 1; s <= smax && s <= 2; s++ {
				out[s] = true
			}
		case "next4terms":
			for s := 1; s <= smax && s <= 4; s++ {
				out[s] = true
			}
		default:
			if n, err := cal.TermNo(tok); err == nil && n >= 1 && n <= smax {
				out[n] = true
			}
		}
	}
	return out
}

// RequiresCourse reports whether b appears anywhere in a's prerequisite
// or co-requisite closure, via depth-first search.
func RequiresCourse(cat *model.Catalog, a, b *model.Course) bool {
	visited := make(map[model.CourseID]bool)
	return requiresCourseDFS(cat, a, b.Code, visited)
}

func requiresCourseDFS(cat *model.Catalog, a *model.Course, targetCode string, visited map[model.CourseID]bool) bool {
	if visited[a.ID] {
		return false
	}
	visited[a.ID] = true
	for _, clause := range a.Prereqs {
		for _, code := range clause {
			if code == targetCode {
				return true
			}
			next := cat.MustByCode(code)
			if requiresCourseDFS(cat, next, targetCode, visited) {
				return true
			}
		}
	}
	for _, code := range a.Coreqs {
		if code == targetCode {
			return true
		}
		next := cat.MustByCode(code)
		if requiresCourseDFS(cat, next, targetCode, visited) {
			return true
		}
	}
	return false
}

// ScheduleRequiresCourse is the strict version of RequiresCourse: true
// only if, within chosen (the set of course ids present in the current
// plan), removing b would invalidate a's requirements — i.e. every
// satisfying path through a's CNF clauses passes through b.
func ScheduleRequiresCourse(cat *model.Catalog, a, b *model.Course, chosen map[model.CourseID]bool) bool {
	if a.ID == b.ID {
		return false
	}
	for _, clause := range a.Prereqs {
		satisfiedWithoutB := false
		for _, code := range clause {
			course := cat.MustByCode(code)
			if course.ID == b.ID {
				continue
			}
			if chosen[course.ID] {
				satisfiedWithoutB = true
				break
			}
		}
		if !satisfiedWithoutB {
			// Clause is unsatisfied without b: b is required iff the clause
			// contains b and b is chosen (the only path running through it).
			containsB := false
			for _, code := range clause {
				if code == b.Code {
					containsB = true
					break
				}
			}
			if containsB && chosen[b.ID] {
				return true
			}
		}
	}
	for _, code := range a.Coreqs {
		if code == b.Code && chosen[b.ID] {
			return true
		}
	}
	return false
}
