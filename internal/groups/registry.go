// Package groups classifies CourseGroup records into a tagged variant
// from their name-prefix and signed-integer conventions, and holds the
// lookup surface modelbuilder needs (concentration membership, level
// bands, capstone, soft-order, OU annual, honors).
package groups

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rhyrak/degreeplan/pkg/model"
)

// Registry is the read-only, process-wide set of course groups.
type Registry struct {
	groups  []*model.CourseGroup
	byName  map[string]*model.CourseGroup
	L4, L5, L6 *model.CourseGroup
}

// Classify tags a freshly-parsed group (counts/credits already parsed by
// the csvio line-format decoder) with its GroupKind, from the group's
// name-prefix conventions and the count expression's own form.
func Classify(g *model.CourseGroup) error {
	switch {
	case strings.HasPrefix(g.Name, "capstone"):
		if len(g.Members) != 1 {
			return fmt.Errorf("groups: capstone group %q must have exactly one member, has %d", g.Name, len(g.Members))
		}
		g.Kind = model.GroupCapstone
	case strings.HasPrefix(g.Name, "softorder"):
		if len(g.Members) != 2 {
			return fmt.Errorf("groups: soft-order group %q must have exactly two members, has %d", g.Name, len(g.Members))
		}
		g.Kind = model.GroupSoftOrder
		g.SoftOrderDistance = g.MinNumCoursesReq
		if g.SoftOrderDistance < 0 {
			g.SoftOrderDistance = -g.SoftOrderDistance
		}
	case strings.HasPrefix(g.Name, "OU"):
		g.Kind = model.GroupOUAnnual
	case g.Name == "HonorGroup":
		g.Kind = model.GroupHonors
	case g.Name == "L4" || g.Name == "L5" || g.Name == "L6" || strings.HasPrefix(g.Name, "L5-"):
		g.Kind = model.GroupLevelBand
	case g.IsExact:
		g.Kind = model.GroupExactCount
	case g.HoldsPerSemester:
		g.Kind = model.GroupPerSemesterMax
	case g.MinNumCoursesReq < 0:
		g.Kind = model.GroupAtMostNetPassed
	default:
		g.Kind = model.GroupPlain
	}
	if g.IsConcentrationArea {
		g.Kind = model.GroupConcentration
	}
	return nil
}

// NewRegistry classifies and indexes groups, validating that capstone
// has one member, soft-order has two, every member code exists in cat,
// and L4/L5/L6 all exist.
func NewRegistry(raw []*model.CourseGroup, cat *model.Catalog) (*Registry, error) {
	r := &Registry{byName: make(map[string]*model.CourseGroup, len(raw))}
	for _, g := range raw {
		if err := Classify(g); err != nil {
			return nil, err
		}
		if err := cat.ValidateCodesExist(fmt.Sprintf("group %q", g.Name), g.Members); err != nil {
			return nil, err
		}
		if _, dup := r.byName[g.Name]; dup {
			return nil, fmt.Errorf("groups: duplicate group name %q", g.Name)
		}
		r.byName[g.Name] = g
		r.groups = append(r.groups, g)
		switch g.Name {
		case "L4":
			r.L4 = g
		case "L5":
			r.L5 = g
		case "L6":
			r.L6 = g
		}
	}
	if r.L4 == nil || r.L5 == nil || r.L6 == nil {
		return nil, fmt.Errorf("groups: L4, L5, and L6 level bands must all exist")
	}
	return r, nil
}

// All returns every group in load order.
func (r *Registry) All() []*model.CourseGroup { return r.groups }

// ByName looks up a group by its exact name.
func (r *Registry) ByName(name string) (*model.CourseGroup, bool) {
	g, ok := r.byName[name]
	return g, ok
}

// L5Like returns every group named "L5" or prefixed "L5-": these all
// gate on the same Level-4-before-Level-5 rule.
func (r *Registry) L5Like() []*model.CourseGroup {
	var out []*model.CourseGroup
	for _, g := range r.groups {
		if g.Name == "L5" || strings.HasPrefix(g.Name, "L5-") {
			out = append(out, g)
		}
	}
	return out
}

// Concentrations returns every concentration-area group whose name is
// prefixed by the chosen concentration string.
func (r *Registry) Concentrations(chosen string) []*model.CourseGroup {
	var out []*model.CourseGroup
	for _, g := range r.groups {
		if g.Kind == model.GroupConcentration && strings.HasPrefix(g.Name, chosen) {
			out = append(out, g)
		}
	}
	return out
}

// Honors returns the HonorGroup, if one was loaded.
func (r *Registry) Honors() (*model.CourseGroup, bool) {
	g, ok := r.byName["HonorGroup"]
	return g, ok
}

// ParseCountExpr parses a group's textual count expression, returning
// the values that fill MinNumCoursesReq/IsExact/HoldsPerSemester on g.
func ParseCountExpr(raw string) (value int, isExact, holdsPerSemester bool, err error) {
	raw = strings.TrimSpace(raw)
	switch {
	case strings.HasPrefix(raw, "=") :
		n, err := strconv.Atoi(strings.TrimSpace(raw[1:]))
		if err != nil {
			return 0, false, false, fmt.Errorf("groups: malformed exact count expression %q: %w", raw, err)
		}
		return n, true, false, nil
	case strings.HasPrefix(raw, "<="):
		n, err := strconv.Atoi(strings.TrimSpace(raw[2:]))
		if err != nil {
			return 0, false, false, fmt.Errorf("groups: malformed per-semester cap expression %q: %w", raw, err)
		}
		return n, false, true, nil
	default:
		n, err := strconv.Atoi(raw)
		if err != nil {
			return 0, false, false, fmt.Errorf("groups: malformed count expression %q: %w", raw, err)
		}
		return n, false, false, nil
	}
}
