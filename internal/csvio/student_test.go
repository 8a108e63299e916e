package csvio

import "testing"

func TestLoadPassedCoursesSplitsSemicolonCodes(t *testing.T) {
	path := writeTemp(t, "passed.txt", "CS101;CS102; CS201 \n")
	codes, err := LoadPassedCourses(path)
	if err != nil {
		t.Fatalf("LoadPassedCourses: %v", err)
	}
	want := []string{"CS101", "CS102", "CS201"}
	if len(codes) != len(want) {
		t.Fatalf("got %v, want %v", codes, want)
	}
	for i := range want {
		if codes[i] != want[i] {
			t.Errorf("codes[%d] = %q, want %q", i, codes[i], want[i])
		}
	}
}

func TestLoadPassedCoursesUnionsEveryLine(t *testing.T) {
	path := writeTemp(t, "passed.txt", "CS101;CS102\nCS201\nCS102;CS301\n")
	codes, err := LoadPassedCourses(path)
	if err != nil {
		t.Fatalf("LoadPassedCourses: %v", err)
	}
	want := []string{"CS101", "CS102", "CS201", "CS301"}
	if len(codes) != len(want) {
		t.Fatalf("got %v, want %v", codes, want)
	}
	for i := range want {
		if codes[i] != want[i] {
			t.Errorf("codes[%d] = %q, want %q", i, codes[i], want[i])
		}
	}
}

func TestLoadPassedCoursesMissingFileIsEmpty(t *testing.T) {
	codes, err := LoadPassedCourses("/nonexistent/passed.txt")
	if err != nil {
		t.Fatalf("LoadPassedCourses: %v", err)
	}
	if len(codes) != 0 {
		t.Errorf("got %v, want empty", codes)
	}
}

func TestLoadDesiredCoursesParsesCodeAndTerms(t *testing.T) {
	content := "CS201;FA2026 SP2027\nCS301\nCS401;\n"
	path := writeTemp(t, "desired.txt", content)

	entries, err := LoadDesiredCourses(path)
	if err != nil {
		t.Fatalf("LoadDesiredCourses: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("got %d entries, want 3", len(entries))
	}
	if entries[0].Code != "CS201" || entries[0].AllowedTermsRaw != "FA2026 SP2027" {
		t.Errorf("entries[0] = %+v", entries[0])
	}
	if entries[1].Code != "CS301" || entries[1].AllowedTermsRaw != "" {
		t.Errorf("entries[1] = %+v", entries[1])
	}
	if entries[2].Code != "CS401" || entries[2].AllowedTermsRaw != "" {
		t.Errorf("entries[2] = %+v", entries[2])
	}
}

func TestLoadDesiredCoursesRejectsEmptyCode(t *testing.T) {
	path := writeTemp(t, "desired.txt", ";FA2026\n")
	if _, err := LoadDesiredCourses(path); err == nil {
		t.Fatal("expected an error for an empty course code")
	}
}

func TestLoadEstimatedGradesDropsBelowThreshold(t *testing.T) {
	content := "CS101,3.5\nCS102,1.0\nCS201,2.0\n"
	path := writeTemp(t, "grades.txt", content)

	grades, err := LoadEstimatedGrades(path, 2.0)
	if err != nil {
		t.Fatalf("LoadEstimatedGrades: %v", err)
	}
	if _, ok := grades["CS102"]; ok {
		t.Error("CS102 (1.0) should have been dropped below threshold 2.0")
	}
	if g, ok := grades["CS201"]; !ok || g != 2.0 {
		t.Errorf("CS201 = %v, %v, want 2.0, true (at threshold)", g, ok)
	}
	if g, ok := grades["CS101"]; !ok || g != 3.5 {
		t.Errorf("CS101 = %v, %v, want 3.5, true", g, ok)
	}
}

func TestLoadEstimatedGradesMissingFileIsEmpty(t *testing.T) {
	grades, err := LoadEstimatedGrades("/nonexistent/grades.txt", 2.0)
	if err != nil {
		t.Fatalf("LoadEstimatedGrades: %v", err)
	}
	if len(grades) != 0 {
		t.Errorf("got %v, want empty", grades)
	}
}

func TestLoadEstimatedGradesRejectsMalformedLine(t *testing.T) {
	path := writeTemp(t, "grades.txt", "CS101\n")
	if _, err := LoadEstimatedGrades(path, 2.0); err == nil {
		t.Fatal("expected an error for a line without a comma")
	}
}
