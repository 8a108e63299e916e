package model

import "fmt"

// Catalog is the read-only, in-memory course table. Treated as immutable
// for the duration of a solve.
type Catalog struct {
	courses []*Course
	byCode  map[string]*Course
}

// NewCatalog indexes courses by code and dense id. Returns an error if a
// course code is duplicated or if any prerequisite or co-requisite
// references a code absent from courses.
func NewCatalog(courses []*Course) (*Catalog, error) {
	cat := &Catalog{
		courses: courses,
		byCode:  make(map[string]*Course, len(courses)),
	}
	for i, c := range courses {
		c.ID = CourseID(i)
		if _, dup := cat.byCode[c.Code]; dup {
			return nil, fmt.Errorf("catalog: duplicate course code %q", c.Code)
		}
		cat.byCode[c.Code] = c
	}
	for _, c := range courses {
		for _, clause := range c.Prereqs {
			for _, code := range clause {
				if _, ok := cat.byCode[code]; !ok {
					return nil, fmt.Errorf("catalog: %s references unknown prerequisite code %q", c.Code, code)
				}
			}
		}
		for _, code := range c.Coreqs {
			if _, ok := cat.byCode[code]; !ok {
				return nil, fmt.Errorf("catalog: %s references unknown co-requisite code %q", c.Code, code)
			}
		}
	}
	return cat, nil
}

// Courses returns the dense, id-ordered course list. Callers must not
// mutate the returned slice.
func (c *Catalog) Courses() []*Course {
	return c.courses
}

// ByCode looks up a course by its string code.
func (c *Catalog) ByCode(code string) (*Course, bool) {
	course, ok := c.byCode[code]
	return course, ok
}

// MustByCode looks up a course by code, panicking if absent. Only safe to
// call with codes NewCatalog already validated (prerequisite and
// co-requisite references). Codes sourced from group membership are
// checked by groups.NewRegistry through ValidateCodesExist, not by
// NewCatalog, and are resolved through ByCode instead.
func (c *Catalog) MustByCode(code string) *Course {
	course, ok := c.byCode[code]
	if !ok {
		panic(fmt.Sprintf("model: unknown course code %q", code))
	}
	return course
}

// ValidateCodesExist returns an error naming owner if any of codes is
// not present in the catalog. Used by groups.NewRegistry to enforce the
// "every group-referenced code exists" invariant at load time, before
// modelbuilder ever runs.
func (c *Catalog) ValidateCodesExist(owner string, codes []string) error {
	for _, code := range codes {
		if _, ok := c.byCode[code]; !ok {
			return fmt.Errorf("catalog: %s references unknown course code %q", owner, code)
		}
	}
	return nil
}
