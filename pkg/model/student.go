package model

// DesiredEntry is one line of desiredcourses.txt: a code plus its raw
// allowed-term expression. Recognized forms are "allterms", empty
// (NOT-TO-TAKE), "allotherterms", or explicit space-separated term
// tokens.
type DesiredEntry struct {
	Code            string
	AllowedTermsRaw string
}

// ObjectiveWeights are the caller-supplied coefficients of the
// minimization objective.
type ObjectiveWeights struct {
	DN float64 // completion-term weight
	DL float64 // max-difficulty-load weight
	Cr float64 // credits weight
	Gr float64 // estimated-grade weight
}

// StudentInput is immutable per solve.
type StudentInput struct {
	Passed             []string
	Desired            []DesiredEntry
	PerTermCounts      map[int]string // term number -> expression, e.g. "<=3"
	Honors             bool
	S1Off              bool
	S2Off              bool
	STOff              bool
	MaxNumCrsPerSem    int
	MaxNumCrsDurThesis int
	ConcentrationName  string
	NumOUThisYear      int
	ObjWeights         ObjectiveWeights
}

// Normalize removes any desired code that is also in Passed from
// Desired. Call once after construction, before building a model.
func (s *StudentInput) Normalize() {
	passed := make(map[string]bool, len(s.Passed))
	for _, code := range s.Passed {
		passed[code] = true
	}
	filtered := s.Desired[:0:0]
	for _, d := range s.Desired {
		if !passed[d.Code] {
			filtered = append(filtered, d)
		}
	}
	s.Desired = filtered
}

// PassedSet returns Passed as a lookup set.
func (s *StudentInput) PassedSet() map[string]bool {
	set := make(map[string]bool, len(s.Passed))
	for _, code := range s.Passed {
		set[code] = true
	}
	return set
}
