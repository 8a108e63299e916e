package csvio

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/gocarina/gocsv"

	"github.com/rhyrak/degreeplan/pkg/model"
)

// courseRow is the gocsv-tagged shape of one cls.csv line: the scalar
// fields map directly; prereqsCNF and coreqs stay as their raw
// delimited text and are decoded afterward in courseFromRow (prereqsCNF
// by parsePrereqsCNF, coreqs by splitting on whitespace), since CNF's
// two-level structure doesn't fit a flat column mapping.
type courseRow struct {
	Code       string `csv:"Code"`
	Title      string `csv:"Title"`
	Synonyms   string `csv:"Synonyms"`
	Credits    int    `csv:"Credits"`
	PrereqsCNF string `csv:"PrereqsCNF"`
	Coreqs     string `csv:"Coreqs"`
	Offering   string `csv:"Offering"`
	Display    string `csv:"Display"`
	Difficulty int    `csv:"Difficulty"`
}

func semicolonReader(in io.Reader) gocsv.CSVReader {
	r := csv.NewReader(in)
	r.Comma = ';'
	r.FieldsPerRecord = -1
	return r
}

func semicolonWriter(out io.Writer) *gocsv.SafeCSVWriter {
	w := csv.NewWriter(out)
	w.Comma = ';'
	return gocsv.NewSafeCSVWriter(w)
}

// catalogHeader is the synthetic header row gocsv needs to map fields
// by name. cls.csv itself carries no header, so LoadCatalog stitches
// one on before handing the stream to gocsv, rather than abandoning
// gocsv's tagged-struct unmarshaling for a headerless format.
const catalogHeader = "Code;Title;Synonyms;Credits;PrereqsCNF;Coreqs;Offering;Display;Difficulty\n"

// LoadCatalog reads cls.csv (one course per non-comment line,
// "#"-prefixed lines are comments) via gocsv: SetCSVReader swaps in a
// semicolon-comma reader, then Unmarshal decodes against a tagged
// struct. Builds and validates the in-memory catalog from the result.
func LoadCatalog(path string) (*model.Catalog, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("csvio: failed to open %s: %w", path, err)
	}

	var body strings.Builder
	lineNo := make([]int, 0, strings.Count(string(raw), "\n")+1)
	for i, line := range strings.Split(string(raw), "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		body.WriteString(line)
		body.WriteByte('\n')
		lineNo = append(lineNo, i+1)
	}

	gocsv.SetCSVReader(semicolonReader)

	var rows []*courseRow
	if err := gocsv.Unmarshal(strings.NewReader(catalogHeader+body.String()), &rows); err != nil {
		return nil, fmt.Errorf("csvio: %s: %w", path, err)
	}

	courses := make([]*model.Course, 0, len(rows))
	for i, row := range rows {
		c, err := courseFromRow(row)
		if err != nil {
			return nil, fmt.Errorf("csvio: %s: line %d: %w", path, lineNo[i], err)
		}
		courses = append(courses, c)
	}

	cat, err := model.NewCatalog(courses)
	if err != nil {
		return nil, fmt.Errorf("csvio: %s: %w", path, err)
	}
	return cat, nil
}

func courseFromRow(row *courseRow) (*model.Course, error) {
	cnf, err := parsePrereqsCNF(row.PrereqsCNF)
	if err != nil {
		return nil, err
	}
	var coreqs []string
	if strings.TrimSpace(row.Coreqs) != "" {
		coreqs = strings.Fields(row.Coreqs)
	}
	return &model.Course{
		Code:         strings.TrimSpace(row.Code),
		Title:        row.Title,
		Credits:      row.Credits,
		Prereqs:      cnf,
		Coreqs:       coreqs,
		OfferingSpec: row.Offering,
		DisplayName:  row.Display,
		Difficulty:   row.Difficulty,
	}, nil
}

func parsePrereqsCNF(raw string) (model.CNF, error) {
	if raw == "" {
		return nil, nil
	}
	var cnf model.CNF
	for _, clauseStr := range strings.Split(raw, ",") {
		clauseStr = strings.TrimSpace(clauseStr)
		if clauseStr == "" {
			continue
		}
		var clause model.Clause
		seen := make(map[string]bool)
		for _, code := range strings.Split(clauseStr, "+") {
			code = strings.TrimSpace(code)
			if code != "" && !seen[code] {
				seen[code] = true
				clause = append(clause, code)
			}
		}
		if len(clause) > 0 {
			cnf = append(cnf, clause)
		}
	}
	return cnf, nil
}

// WriteCatalog serializes a catalog back to cls.csv format via gocsv,
// with clauses and disjuncts sorted lexicographically so the same
// catalog always serializes the same way. The header row gocsv emits
// is stripped on the way out, since cls.csv itself is headerless.
func WriteCatalog(path string, cat *model.Catalog) error {
	gocsv.SetCSVWriter(semicolonWriter)

	rows := make([]*courseRow, 0, len(cat.Courses()))
	for _, c := range cat.Courses() {
		rows = append(rows, rowFromCourse(c))
	}
	body, err := gocsv.MarshalString(&rows)
	if err != nil {
		return fmt.Errorf("csvio: failed to marshal catalog: %w", err)
	}
	body = strings.TrimPrefix(body, catalogHeader)

	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return fmt.Errorf("csvio: failed to write %s: %w", path, err)
	}
	return nil
}

func rowFromCourse(c *model.Course) *courseRow {
	clauses := make([]string, 0, len(c.Prereqs))
	for _, clause := range c.Prereqs {
		sorted := append([]string(nil), clause...)
		sort.Strings(sorted)
		clauses = append(clauses, strings.Join(sorted, "+"))
	}
	sort.Strings(clauses)

	coreqs := append([]string(nil), c.Coreqs...)
	sort.Strings(coreqs)

	return &courseRow{
		Code:       c.Code,
		Title:      c.Title,
		Credits:    c.Credits,
		PrereqsCNF: strings.Join(clauses, ","),
		Coreqs:     strings.Join(coreqs, " "),
		Offering:   c.OfferingSpec,
		Display:    c.DisplayName,
		Difficulty: c.Difficulty,
	}
}
