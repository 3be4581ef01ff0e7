package model

// Student represents a band member on the roster.
type Student struct {
	ID             int64  `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Classification string `json:"classification,omitempty"`
	Section        string `json:"section"`
	ShirtSize      string `json:"shirt_size,omitempty"`
	ShoeSize       string `json:"shoe_size,omitempty"`
}

// Sections.
const (
	SectionWoodwind   = "WOODWIND"
	SectionBrass      = "BRASS"
	SectionPercussion = "PERCUSSION"
	SectionAuxiliary  = "AUXILIARY"
	SectionDM         = "DM"
)

// Sections lists every valid section in display order.
var Sections = []string{
	SectionWoodwind,
	SectionBrass,
	SectionPercussion,
	SectionAuxiliary,
	SectionDM,
}

// ValidSection reports whether s is one of the fixed sections.
func ValidSection(s string) bool {
	for _, sec := range Sections {
		if s == sec {
			return true
		}
	}
	return false
}

// StudentProfile is a student joined with their compliance record and the
// derived eligibility flag. Students without a compliance row carry zero
// values.
type StudentProfile struct {
	Student
	Compliance
	Eligible bool `json:"eligible"`
}

// SectionLeader maps a section to the student leading it.
type SectionLeader struct {
	Section  string `json:"section"`
	LeaderID int64  `json:"leader_id"`

	// Joined fields (not always populated).
	LeaderName string `json:"leader_name,omitempty"`
}
