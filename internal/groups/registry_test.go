package groups

import (
	"testing"

	"github.com/rhyrak/degreeplan/pkg/model"
)

func baseGroups() []*model.CourseGroup {
	return []*model.CourseGroup{
		{Name: "L4", Members: []string{"CS101", "CS102"}},
		{Name: "L5", Members: []string{"CS201"}},
		{Name: "L6", Members: []string{"CS301"}},
		{Name: "capstone1", Members: []string{"CS499"}},
		{Name: "softorder1", Members: []string{"CS201", "CS301"}, MinNumCoursesReq: -2},
		{Name: "OU", Members: []string{"CS150"}},
		{Name: "HonorGroup", Members: []string{"CS400H"}},
		{Name: "electives", Members: []string{"CS210", "CS220"}, MinNumCoursesReq: 2},
	}
}

// testCatalog builds a *model.Catalog covering every course code the test
// groups in this file reference.
func testCatalog(t *testing.T) *model.Catalog {
	t.Helper()
	codes := []string{
		"CS101", "CS102", "CS201", "CS301", "CS499", "CS150", "CS400H",
		"CS210", "CS220", "CS250", "CS999", "CS500", "CS501", "CS510",
	}
	var courses []*model.Course
	for _, code := range codes {
		courses = append(courses, &model.Course{Code: code, Credits: 3})
	}
	cat, err := model.NewCatalog(courses)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return cat
}

func TestClassifyAssignsExpectedKinds(t *testing.T) {
	reg, err := NewRegistry(baseGroups(), testCatalog(t))
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	cases := map[string]model.GroupKind{
		"L4":          model.GroupLevelBand,
		"L5":          model.GroupLevelBand,
		"L6":          model.GroupLevelBand,
		"capstone1":   model.GroupCapstone,
		"softorder1":  model.GroupSoftOrder,
		"OU":          model.GroupOUAnnual,
		"HonorGroup":  model.GroupHonors,
		"electives":   model.GroupPlain,
	}
	for name, want := range cases {
		g, ok := reg.ByName(name)
		if !ok {
			t.Fatalf("group %q missing from registry", name)
		}
		if g.Kind != want {
			t.Errorf("group %q classified as %s, want %s", name, g.Kind, want)
		}
	}
}

func TestClassifySoftOrderDistanceIsAbsolute(t *testing.T) {
	reg, err := NewRegistry(baseGroups(), testCatalog(t))
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	g, _ := reg.ByName("softorder1")
	if g.SoftOrderDistance != 2 {
		t.Errorf("SoftOrderDistance = %d, want 2", g.SoftOrderDistance)
	}
}

func TestClassifyCapstoneRejectsMultipleMembers(t *testing.T) {
	err := Classify(&model.CourseGroup{Name: "capstoneFinal", Members: []string{"A", "B"}})
	if err == nil {
		t.Fatal("expected an error for a multi-member capstone group")
	}
}

func TestClassifySoftOrderRejectsWrongMemberCount(t *testing.T) {
	err := Classify(&model.CourseGroup{Name: "softorderX", Members: []string{"A"}})
	if err == nil {
		t.Fatal("expected an error for a soft-order group without exactly two members")
	}
}

func TestNewRegistryRequiresLevelBands(t *testing.T) {
	_, err := NewRegistry([]*model.CourseGroup{
		{Name: "electives", Members: []string{"CS101"}},
	}, testCatalog(t))
	if err == nil {
		t.Fatal("expected an error when L4/L5/L6 are missing")
	}
}

func TestNewRegistryRejectsDuplicateNames(t *testing.T) {
	groups := baseGroups()
	groups = append(groups, &model.CourseGroup{Name: "L4", Members: []string{"CS999"}})
	if _, err := NewRegistry(groups, testCatalog(t)); err == nil {
		t.Fatal("expected an error for a duplicate group name")
	}
}

func TestL5LikeMatchesL5AndPrefixedVariants(t *testing.T) {
	groups := baseGroups()
	groups = append(groups, &model.CourseGroup{Name: "L5-track2", Members: []string{"CS250"}})
	reg, err := NewRegistry(groups, testCatalog(t))
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	like := reg.L5Like()
	names := map[string]bool{}
	for _, g := range like {
		names[g.Name] = true
	}
	if !names["L5"] || !names["L5-track2"] {
		t.Errorf("L5Like() = %v, want L5 and L5-track2", names)
	}
	if names["L4"] || names["L6"] {
		t.Errorf("L5Like() should not include L4/L6: %v", names)
	}
}

func TestConcentrationsFiltersByChosenPrefix(t *testing.T) {
	groups := baseGroups()
	groups = append(groups,
		&model.CourseGroup{Name: "AI-core", IsConcentrationArea: true, Members: []string{"CS500"}},
		&model.CourseGroup{Name: "AI-elective", IsConcentrationArea: true, Members: []string{"CS501"}},
		&model.CourseGroup{Name: "Security-core", IsConcentrationArea: true, Members: []string{"CS510"}},
	)
	reg, err := NewRegistry(groups, testCatalog(t))
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	chosen := reg.Concentrations("AI")
	if len(chosen) != 2 {
		t.Fatalf("Concentrations(\"AI\") returned %d groups, want 2", len(chosen))
	}
	for _, g := range chosen {
		if g.Kind != model.GroupConcentration {
			t.Errorf("group %q in Concentrations result has kind %s, want concentration", g.Name, g.Kind)
		}
	}
}

func TestHonorsReturnsHonorGroupWhenPresent(t *testing.T) {
	reg, err := NewRegistry(baseGroups(), testCatalog(t))
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	g, ok := reg.Honors()
	if !ok || g.Name != "HonorGroup" {
		t.Errorf("Honors() = %v, %v, want HonorGroup, true", g, ok)
	}
}

func TestParseCountExprForms(t *testing.T) {
	cases := []struct {
		raw              string
		value            int
		isExact          bool
		holdsPerSemester bool
	}{
		{"=3", 3, true, false},
		{"<=2", 2, false, true},
		{"4", 4, false, false},
		{"-5", -5, false, false},
	}
	for _, c := range cases {
		value, isExact, holdsPerSemester, err := ParseCountExpr(c.raw)
		if err != nil {
			t.Fatalf("ParseCountExpr(%q): %v", c.raw, err)
		}
		if value != c.value || isExact != c.isExact || holdsPerSemester != c.holdsPerSemester {
			t.Errorf("ParseCountExpr(%q) = (%d,%v,%v), want (%d,%v,%v)",
				c.raw, value, isExact, holdsPerSemester, c.value, c.isExact, c.holdsPerSemester)
		}
	}
}

func TestParseCountExprRejectsMalformed(t *testing.T) {
	for _, raw := range []string{"=abc", "<=xyz", "notanumber"} {
		if _, _, _, err := ParseCountExpr(raw); err == nil {
			t.Errorf("ParseCountExpr(%q) = nil error, want error", raw)
		}
	}
}

func TestDisciplinePrefix(t *testing.T) {
	cases := map[string]string{
		"CS101":   "CS",
		"MATH201": "MATH",
		"EE/CS300": "EECS",
		"101":     "",
	}
	for code, want := range cases {
		if got := model.Discipline(code); got != want {
			t.Errorf("Discipline(%q) = %q, want %q", code, got, want)
		}
	}
}
