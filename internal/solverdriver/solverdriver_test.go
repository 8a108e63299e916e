package solverdriver

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/rhyrak/degreeplan/internal/lpformat"
	"github.com/rhyrak/degreeplan/pkg/model"
)

func writeSolutionFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "solution.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func testCatalog(t *testing.T) *model.Catalog {
	t.Helper()
	cat, err := model.NewCatalog([]*model.Course{
		{Code: "CS101", Credits: 3},
		{Code: "CS102", Credits: 3},
	})
	if err != nil {
		t.Fatalf("NewCatalog: %v", err)
	}
	return cat
}

func TestParseSolutionDecodesVariableNamesIntoTermAssignment(t *testing.T) {
	cat := testCatalog(t)
	content := "x_0_0=0\nx_0_1=1\nx_0_2=0\nx_1_0=0\nx_1_1=0\nx_1_2=1\n"
	solPath := writeSolutionFile(t, content)

	d := New(Config{SolutionPath: solPath}, zerolog.Nop())
	sol, err := d.parseSolution(cat, 2)
	if err != nil {
		t.Fatalf("parseSolution: %v", err)
	}
	if term, ok := sol.TermOf(0); !ok || term != 1 {
		t.Errorf("course 0 term = %d, %v, want 1, true", term, ok)
	}
	if term, ok := sol.TermOf(1); !ok || term != 2 {
		t.Errorf("course 1 term = %d, %v, want 2, true", term, ok)
	}
}

func TestParseSolutionToleratesSolverRoundingNoise(t *testing.T) {
	cat := testCatalog(t)
	content := "x_0_0=0.0000001\nx_0_1=0.999999998\n"
	solPath := writeSolutionFile(t, content)

	d := New(Config{SolutionPath: solPath}, zerolog.Nop())
	sol, err := d.parseSolution(cat, 1)
	if err != nil {
		t.Fatalf("parseSolution: %v", err)
	}
	if term, ok := sol.TermOf(0); !ok || term != 1 {
		t.Errorf("course 0 term = %d, %v, want 1, true (rounding-noise tolerant)", term, ok)
	}
}

func TestParseSolutionLeavesUnscheduledCoursesOut(t *testing.T) {
	cat := testCatalog(t)
	content := "x_0_0=0\nx_0_1=0\n"
	solPath := writeSolutionFile(t, content)

	d := New(Config{SolutionPath: solPath}, zerolog.Nop())
	sol, err := d.parseSolution(cat, 1)
	if err != nil {
		t.Fatalf("parseSolution: %v", err)
	}
	if _, ok := sol.TermOf(0); ok {
		t.Error("course with no set slot should not appear in the solution")
	}
}

func TestParseSolutionPropagatesMissingFileError(t *testing.T) {
	cat := testCatalog(t)
	d := New(Config{SolutionPath: "/nonexistent/solution.txt"}, zerolog.Nop())
	if _, err := d.parseSolution(cat, 1); err == nil {
		t.Fatal("expected an error when the solution file is missing")
	}
}

func TestSolveReturnsInvocationErrorForMissingBinary(t *testing.T) {
	cat := testCatalog(t)
	dir := t.TempDir()
	cfg := Config{
		BinaryPath:   filepath.Join(dir, "nonexistent-solver-binary"),
		ModelPath:    filepath.Join(dir, "model.lp"),
		SolutionPath: filepath.Join(dir, "solution.txt"),
	}
	d := New(cfg, zerolog.Nop())

	_, err := d.Solve(context.Background(), &lpformat.Model{}, cat, 1)
	if err == nil {
		t.Fatal("expected an error when the solver binary does not exist")
	}
	if !errors.Is(err, ErrSolverInvocation) {
		t.Errorf("got %v, want an error wrapping ErrSolverInvocation", err)
	}
}
