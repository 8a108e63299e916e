package model

// GroupKind tags the variant a CourseGroup belongs to, disambiguating the
// overloaded count/credit sentinels described by the group file format.
type GroupKind int

const (
	GroupPlain GroupKind = iota
	GroupExactCount
	GroupPerSemesterMax
	GroupAtMostNetPassed
	GroupConcentration
	GroupCapstone
	GroupSoftOrder
	GroupOUAnnual
	GroupHonors
	GroupLevelBand
)

func (k GroupKind) String() string {
	switch k {
	case GroupExactCount:
		return "exact-count"
	case GroupPerSemesterMax:
		return "per-semester-max"
	case GroupAtMostNetPassed:
		return "at-most-net-passed"
	case GroupConcentration:
		return "concentration"
	case GroupCapstone:
		return "capstone"
	case GroupSoftOrder:
		return "soft-order"
	case GroupOUAnnual:
		return "ou-annual"
	case GroupHonors:
		return "honors"
	case GroupLevelBand:
		return "level-band"
	default:
		return "plain"
	}
}

// CourseGroup is a named cluster of courses encoding a degree-program
// constraint. The signed MinNumCoursesReq/MinNumCreditsReq fields carry
// overloaded meanings depending on sign and on the group's name prefix;
// Kind disambiguates them into a single tagged variant.
type CourseGroup struct {
	Name                string
	IsConcentrationArea bool
	Members             []string // order matters for soft-order groups
	MinNumCoursesReq    int
	MinNumCreditsReq    int
	IsExact             bool
	HoldsPerSemester    bool
	MinNumDisciplines   int
	Kind                GroupKind

	// SoftOrderDistance is the max term separation for a GroupSoftOrder
	// group; 0 means unbounded. Members[0] precedes Members[1].
	SoftOrderDistance int
}

// Discipline returns the alphabetic prefix of a course code, with any "/"
// separator stripped first, used as the minimum-disciplines bucket key.
func Discipline(code string) string {
	stripped := make([]byte, 0, len(code))
	for i := 0; i < len(code); i++ {
		if code[i] != '/' {
			stripped = append(stripped, code[i])
		}
	}
	end := 0
	for end < len(stripped) && isAlpha(stripped[end]) {
		end++
	}
	return string(stripped[:end])
}

func isAlpha(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}
