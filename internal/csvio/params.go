// Package csvio reads and writes the degree-plan input/output file
// formats: params.props, cls.csv, *.grp, passedcourses.txt,
// desiredcourses.txt, and estimated_grades.txt. Follows an "open file,
// parse, collect a diagnostic report" shape for the line-oriented
// formats gocsv doesn't fit.
package csvio

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rhyrak/degreeplan/pkg/model"
)

// LoadParams reads params.props (line-oriented key=value) into a
// model.Params, applying the documented defaults (MinGradeThres=3.0,
// AllowEdit=false) and reporting which required (marked *) keys are
// missing.
func LoadParams(path string) (*model.Params, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csvio: failed to open %s: %w", path, err)
	}
	defer f.Close()

	p := &model.Params{MinGradeThres: 3.0, AllowEdit: false}
	seen := make(map[string]bool)

	scanner := bufio.NewScanner(f)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, fmt.Errorf("csvio: %s:%d: expected key=value, got %q", path, lineNo, line)
		}
		key = strings.TrimSpace(key)
		value = strings.TrimSpace(value)
		seen[key] = true
		if err := assignParam(p, key, value); err != nil {
			return nil, fmt.Errorf("csvio: %s:%d: %w", path, lineNo, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("csvio: failed to read %s: %w", path, err)
	}

	required := []string{"Tc", "Cmax", "CmaxHonor", "SummerCmax", "SummerCmaxHonor",
		"Smax", "MaxLETerm", "SummerConcNMax", "ThesisCourseCode", "ProgramCode"}
	var missing []string
	for _, k := range required {
		if !seen[k] {
			missing = append(missing, k)
		}
	}
	if len(missing) > 0 {
		return nil, fmt.Errorf("csvio: %s: missing required key(s): %s", path, strings.Join(missing, ", "))
	}
	return p, nil
}

func assignParam(p *model.Params, key, value string) error {
	atoi := func(s string) (int, error) { return strconv.Atoi(s) }
	switch key {
	case "Tc":
		n, err := atoi(value)
		if err != nil {
			return fmt.Errorf("malformed Tc %q: %w", value, err)
		}
		p.Tc = n
	case "Cmax":
		n, err := atoi(value)
		if err != nil {
			return fmt.Errorf("malformed Cmax %q: %w", value, err)
		}
		p.Cmax = n
	case "CmaxHonor":
		n, err := atoi(value)
		if err != nil {
			return fmt.Errorf("malformed CmaxHonor %q: %w", value, err)
		}
		p.CmaxHonor = n
	case "SummerCmax":
		n, err := atoi(value)
		if err != nil {
			return fmt.Errorf("malformed SummerCmax %q: %w", value, err)
		}
		p.SummerCmax = n
	case "SummerCmaxHonor":
		n, err := atoi(value)
		if err != nil {
			return fmt.Errorf("malformed SummerCmaxHonor %q: %w", value, err)
		}
		p.SummerCmaxHonor = n
	case "Smax":
		n, err := atoi(value)
		if err != nil {
			return fmt.Errorf("malformed Smax %q: %w", value, err)
		}
		p.Smax = n
	case "MaxLETerm":
		n, err := atoi(value)
		if err != nil {
			return fmt.Errorf("malformed MaxLETerm %q: %w", value, err)
		}
		p.MaxLETerm = n
	case "SummerConcNMax":
		n, err := atoi(value)
		if err != nil {
			return fmt.Errorf("malformed SummerConcNMax %q: %w", value, err)
		}
		p.SummerConcNMax = n
	case "ThesisCourseCode":
		p.ThesisCourseCode = value
	case "FreshmanMaxNumCoursesPerTerm":
		n, err := atoi(value)
		if err != nil {
			return fmt.Errorf("malformed FreshmanMaxNumCoursesPerTerm %q: %w", value, err)
		}
		p.FreshmanMaxNumCoursesPerTerm = n
	case "MinNumCourses4Sophomore":
		n, err := atoi(value)
		if err != nil {
			return fmt.Errorf("malformed MinNumCourses4Sophomore %q: %w", value, err)
		}
		p.MinNumCourses4Sophomore = n
	case "ProgramCodes2Maximize":
		p.ProgramCodes2Maximize = parseProgramCodes(value)
	case "ProgramCode":
		p.ProgramCode = value
	case "CourseCSVFileHeader":
		p.CourseCSVFileHeader = value
	case "MinGradeThres":
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("malformed MinGradeThres %q: %w", value, err)
		}
		p.MinGradeThres = f
	case "AllowEdit":
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("malformed AllowEdit %q: %w", value, err)
		}
		p.AllowEdit = b
	default:
		// Unrecognized keys are ignored, matching params.props's
		// "Recognized keys" list being a subset of what may be present.
	}
	return nil
}

func parseProgramCodes(value string) []model.ProgramCodeRule {
	if value == "" {
		return nil
	}
	var rules []model.ProgramCodeRule
	for _, item := range strings.Split(value, ";") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		code, exception, _ := strings.Cut(item, "\\")
		rules = append(rules, model.ProgramCodeRule{Code: code, ExceptionGroup: exception})
	}
	return rules
}
