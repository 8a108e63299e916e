package csvio

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rhyrak/degreeplan/pkg/model"
)

// LoadPassedCourses reads passedcourses.txt: every line holds one or
// more semicolon-separated codes, and every line in the file
// contributes codes to the result (not just the first) — a student's
// passed-courses history is typically appended to a line at a time.
func LoadPassedCourses(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("csvio: failed to open %s: %w", path, err)
	}
	defer f.Close()

	seen := make(map[string]bool)
	var codes []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, code := range splitCodes(line) {
			if !seen[code] {
				seen[code] = true
				codes = append(codes, code)
			}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("csvio: failed to read %s: %w", path, err)
	}
	return codes, nil
}

// LoadDesiredCourses reads desiredcourses.txt: one entry per line, each
// "code" or "code;term1 term2 ..." (missing/empty second field means
// NOT-TO-TAKE).
func LoadDesiredCourses(path string) ([]model.DesiredEntry, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csvio: failed to open %s: %w", path, err)
	}
	defer f.Close()

	var entries []model.DesiredEntry
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		code, rest, _ := strings.Cut(line, ";")
		code = strings.TrimSpace(code)
		if code == "" {
			return nil, fmt.Errorf("csvio: %s:%d: empty course code", path, lineNo)
		}
		entries = append(entries, model.DesiredEntry{Code: code, AllowedTermsRaw: strings.TrimSpace(rest)})
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("csvio: failed to read %s: %w", path, err)
	}
	return entries, nil
}

// LoadEstimatedGrades reads estimated_grades.txt: "code,grade" lines.
// Grades below minThres are dropped rather than returned as 0 — they
// are to be ignored entirely, not treated as a zero grade.
func LoadEstimatedGrades(path string, minThres float64) (map[string]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]float64{}, nil
		}
		return nil, fmt.Errorf("csvio: failed to open %s: %w", path, err)
	}
	defer f.Close()

	grades := make(map[string]float64)
	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		code, gradeStr, ok := strings.Cut(line, ",")
		if !ok {
			return nil, fmt.Errorf("csvio: %s:%d: expected code,grade, got %q", path, lineNo, line)
		}
		grade, err := strconv.ParseFloat(strings.TrimSpace(gradeStr), 64)
		if err != nil {
			return nil, fmt.Errorf("csvio: %s:%d: malformed grade %q: %w", path, lineNo, gradeStr, err)
		}
		if grade >= minThres {
			grades[strings.TrimSpace(code)] = grade
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("csvio: failed to read %s: %w", path, err)
	}
	return grades, nil
}

func splitCodes(line string) []string {
	var codes []string
	for _, code := range strings.Split(line, ";") {
		code = strings.TrimSpace(code)
		if code != "" {
			codes = append(codes, code)
		}
	}
	return codes
}
