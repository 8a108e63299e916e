package model

// ProgramCodeRule is one entry of the semicolon-delimited
// ProgramCodes2Maximize key: a code prefix, and an optional exception
// group whose members are excluded from the tie-breaking bonus.
type ProgramCodeRule struct {
	Code           string
	ExceptionGroup string
}

// Params holds program-wide scalars loaded once from params.props and
// treated as read-only for the lifetime of the process.
type Params struct {
	Tc                           int
	Cmax                         int
	CmaxHonor                    int
	SummerCmax                   int
	SummerCmaxHonor              int
	Smax                         int
	MaxLETerm                    int
	SummerConcNMax               int
	ThesisCourseCode             string
	FreshmanMaxNumCoursesPerTerm int
	MinNumCourses4Sophomore      int
	ProgramCodes2Maximize        []ProgramCodeRule
	ProgramCode                  string
	CourseCSVFileHeader          string
	MinGradeThres                float64
	AllowEdit                    bool
}

// CmaxFor returns the per-term credit cap for the given honors status.
func (p *Params) CmaxFor(honors bool) int {
	if honors {
		return p.CmaxHonor
	}
	return p.Cmax
}

// SummerCmaxFor returns the per-summer-window credit cap for the given
// honors status.
func (p *Params) SummerCmaxFor(honors bool) int {
	if honors {
		return p.SummerCmaxHonor
	}
	return p.SummerCmax
}
