package csvio

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/rhyrak/degreeplan/internal/groups"
	"github.com/rhyrak/degreeplan/pkg/model"
)

// LoadGroup reads a single *.grp file: line 1 is
// "groupName;isConcentration;countExpr;creditsExpr", line 2 is the
// semicolon-separated member codes, followed by optional "#" comments.
func LoadGroup(path string) (*model.CourseGroup, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csvio: failed to open %s: %w", path, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	var lines []string
	for scanner.Scan() && len(lines) < 2 {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("csvio: failed to read %s: %w", path, err)
	}
	if len(lines) < 2 {
		return nil, fmt.Errorf("csvio: %s: expected a header line and a member line", path)
	}

	g, err := parseGroupHeader(lines[0])
	if err != nil {
		return nil, fmt.Errorf("csvio: %s: %w", path, err)
	}
	for _, code := range strings.Split(lines[1], ";") {
		code = strings.TrimSpace(code)
		if code != "" {
			g.Members = append(g.Members, code)
		}
	}
	return g, nil
}

func parseGroupHeader(line string) (*model.CourseGroup, error) {
	fields := strings.Split(line, ";")
	if len(fields) != 4 {
		return nil, fmt.Errorf("expected 4 semicolon-separated header fields, got %d", len(fields))
	}
	for i := range fields {
		fields[i] = strings.TrimSpace(fields[i])
	}

	isConc, err := strconv.ParseBool(fields[1])
	if err != nil {
		return nil, fmt.Errorf("malformed isConcentration %q: %w", fields[1], err)
	}

	count, isExact, perSem, err := groups.ParseCountExpr(fields[2])
	if err != nil {
		return nil, err
	}

	credits, err := strconv.Atoi(fields[3])
	if err != nil {
		return nil, fmt.Errorf("malformed creditsExpr %q: %w", fields[3], err)
	}

	g := &model.CourseGroup{
		Name:                fields[0],
		IsConcentrationArea: isConc,
		MinNumCoursesReq:    count,
		MinNumCreditsReq:    credits,
		IsExact:             isExact,
		HoldsPerSemester:    perSem,
	}
	if credits < 0 {
		g.MinNumDisciplines = -credits
	}
	return g, nil
}

// LoadGroupRegistry reads each *.grp file in paths and classifies them
// into a groups.Registry, validating every member code against cat.
func LoadGroupRegistry(paths []string, cat *model.Catalog) (*groups.Registry, error) {
	var raw []*model.CourseGroup
	for _, path := range paths {
		g, err := LoadGroup(path)
		if err != nil {
			return nil, err
		}
		raw = append(raw, g)
	}
	return groups.NewRegistry(raw, cat)
}
