package catalog

import (
	"testing"

	"github.com/rhyrak/degreeplan/internal/calendar"
	"github.com/rhyrak/degreeplan/pkg/model"
)

func newTestCalendar() *calendar.Calendar {
	return calendar.New(1, 9, 2024) // anchored mid-Fall 2024; term 1 = SP2025
}

func course(code string, prereqs model.CNF, coreqs []string, offeringSpec string) *model.Course {
	return &model.Course{Code: code, Credits: 3, Prereqs: prereqs, Coreqs: coreqs, OfferingSpec: offeringSpec}
}

func buildCatalog(t *testing.T, courses []*model.Course) *model.Catalog {
	t.Helper()
	cat, err := model.NewCatalog(courses)
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return cat
}

func TestOfferingTermsAllTimes(t *testing.T) {
	cal := newTestCalendar()
	c := course("CS101", nil, nil, "alltimes")
	terms := OfferingTerms(c, cal, 5)
	for s := 1; s <= 5; s++ {
		if !terms[s] {
			t.Errorf("term %d missing from alltimes result", s)
		}
	}
}

func TestOfferingTermsDashOffersNowhere(t *testing.T) {
	cal := newTestCalendar()
	c := course("CS101", nil, nil, "-")
	terms := OfferingTerms(c, cal, 5)
	if len(terms) != 0 {
		t.Errorf("got %v, want empty set for \"-\" offeringSpec", terms)
	}
}

func TestOfferingTermsEveryFallMatchesOnlyFallSlots(t *testing.T) {
	// Anchored at 2024-09-01: term 1 = SP2025 ... term 5 = FA2025 ... term 6 = SP2026.
	cal := newTestCalendar()
	c := course("CS101", nil, nil, "everyfall")
	terms := OfferingTerms(c, cal, 6)
	want := map[int]bool{5: true}
	for s := 1; s <= 6; s++ {
		if terms[s] != want[s] {
			t.Errorf("term %d: got %v, want %v", s, terms[s], want[s])
		}
	}
}

func TestOfferingTermsEverySummerTermMatchesOnlyST(t *testing.T) {
	// Anchored at 2024-09-01: term 4 = ST2025 is the only ST slot through term 6.
	cal := newTestCalendar()
	c := course("CS101", nil, nil, "everysummerterm")
	terms := OfferingTerms(c, cal, 6)
	want := map[int]bool{4: true}
	for s := 1; s <= 6; s++ {
		if terms[s] != want[s] {
			t.Errorf("term %d: got %v, want %v", s, terms[s], want[s])
		}
	}
}

func TestOfferingTermsNextNTermsCapsAtSmax(t *testing.T) {
	cal := newTestCalendar()
	c := course("CS101", nil, nil, "next2terms")
	terms := OfferingTerms(c, cal, 1)
	if len(terms) != 1 || !terms[1] {
		t.Errorf("next2terms with smax=1 = %v, want only {1}", terms)
	}
}

func TestOfferingTermsExplicitTokenResolvesToTermNumber(t *testing.T) {
	cal := newTestCalendar()
	c := course("CS101", nil, nil, "SP2025")
	terms := OfferingTerms(c, cal, 5)
	if len(terms) != 1 || !terms[1] {
		t.Errorf("explicit token SP2025 = %v, want only {1}", terms)
	}
}

func TestOfferingTermsExplicitTokenOutOfWindowIsDropped(t *testing.T) {
	cal := newTestCalendar()
	c := course("CS101", nil, nil, "SP2025")
	terms := OfferingTerms(c, cal, 0)
	if len(terms) != 0 {
		t.Errorf("got %v, want empty when smax excludes the resolved term", terms)
	}
}

func TestRequiresCourseFindsTransitivePrereq(t *testing.T) {
	cs101 := course("CS101", nil, nil, "alltimes")
	cs102 := course("CS102", model.CNF{{"CS101"}}, nil, "alltimes")
	cs201 := course("CS201", model.CNF{{"CS102"}}, nil, "alltimes")
	cat := buildCatalog(t, []*model.Course{cs101, cs102, cs201})

	a, _ := cat.ByCode("CS201")
	b, _ := cat.ByCode("CS101")
	if !RequiresCourse(cat, a, b) {
		t.Error("CS201 should transitively require CS101")
	}
}

func TestRequiresCourseFollowsCoreqs(t *testing.T) {
	cs101 := course("CS101", nil, nil, "alltimes")
	cs102 := course("CS102", nil, []string{"CS101"}, "alltimes")
	cat := buildCatalog(t, []*model.Course{cs101, cs102})

	a, _ := cat.ByCode("CS102")
	b, _ := cat.ByCode("CS101")
	if !RequiresCourse(cat, a, b) {
		t.Error("CS102 should require its co-requisite CS101")
	}
}

func TestRequiresCourseFalseWhenUnrelated(t *testing.T) {
	cs101 := course("CS101", nil, nil, "alltimes")
	math201 := course("MATH201", nil, nil, "alltimes")
	cat := buildCatalog(t, []*model.Course{cs101, math201})

	a, _ := cat.ByCode("CS101")
	b, _ := cat.ByCode("MATH201")
	if RequiresCourse(cat, a, b) {
		t.Error("CS101 should not require an unrelated course")
	}
}

func TestScheduleRequiresCourseWhenOnlyPathThroughB(t *testing.T) {
	cs101 := course("CS101", nil, nil, "alltimes")
	cs201 := course("CS201", model.CNF{{"CS101"}}, nil, "alltimes")
	cat := buildCatalog(t, []*model.Course{cs101, cs201})

	a, _ := cat.ByCode("CS201")
	b, _ := cat.ByCode("CS101")
	chosen := map[model.CourseID]bool{a.ID: true, b.ID: true}
	if !ScheduleRequiresCourse(cat, a, b, chosen) {
		t.Error("CS201's only clause runs through CS101, so it should be required")
	}
}

func TestScheduleRequiresCourseFalseWhenAlternativeSatisfiesClause(t *testing.T) {
	cs101 := course("CS101", nil, nil, "alltimes")
	math101 := course("MATH101", nil, nil, "alltimes")
	cs201 := course("CS201", model.CNF{{"CS101", "MATH101"}}, nil, "alltimes")
	cat := buildCatalog(t, []*model.Course{cs101, math101, cs201})

	a, _ := cat.ByCode("CS201")
	b, _ := cat.ByCode("CS101")
	other, _ := cat.ByCode("MATH101")
	chosen := map[model.CourseID]bool{a.ID: true, b.ID: true, other.ID: true}
	if ScheduleRequiresCourse(cat, a, b, chosen) {
		t.Error("CS101's disjunct is satisfiable via MATH101 too, so CS101 shouldn't be strictly required")
	}
}

func TestScheduleRequiresCourseFalseForSelf(t *testing.T) {
	cs101 := course("CS101", nil, nil, "alltimes")
	cat := buildCatalog(t, []*model.Course{cs101})
	a, _ := cat.ByCode("CS101")
	if ScheduleRequiresCourse(cat, a, a, map[model.CourseID]bool{a.ID: true}) {
		t.Error("a course should never be reported as requiring itself")
	}
}
