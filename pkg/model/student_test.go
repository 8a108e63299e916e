package model

import "testing"

func TestNormalizeRemovesPassedCoursesFromDesired(t *testing.T) {
	s := &StudentInput{
		Passed: []string{"CS101", "CS102"},
		Desired: []DesiredEntry{
			{Code: "CS101"},
			{Code: "CS201", AllowedTermsRaw: "FA2026"},
			{Code: "CS102"},
		},
	}
	s.Normalize()
	if len(s.Desired) != 1 || s.Desired[0].Code != "CS201" {
		t.Errorf("Desired after Normalize = %+v, want only CS201", s.Desired)
	}
}

func TestNormalizeOnEmptyDesiredIsNoop(t *testing.T) {
	s := &StudentInput{Passed: []string{"CS101"}}
	s.Normalize()
	if len(s.Desired) != 0 {
		t.Errorf("Desired = %+v, want empty", s.Desired)
	}
}

func TestPassedSetContainsEveryPassedCode(t *testing.T) {
	s := &StudentInput{Passed: []string{"CS101", "MATH201"}}
	set := s.PassedSet()
	if !set["CS101"] || !set["MATH201"] {
		t.Errorf("PassedSet() = %v, want both CS101 and MATH201", set)
	}
	if set["CS999"] {
		t.Error("PassedSet() should not contain codes that were never passed")
	}
}
