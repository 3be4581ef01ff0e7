package model

// Compliance holds the academic and dues facts for one student. At most one
// record exists per student; it is created zeroed at registration and
// replaced whole on every update.
type Compliance struct {
	StudentID    int64   `json:"student_id"`
	CreditHours  int     `json:"credit_hours"`
	GPA          float64 `json:"gpa"`
	DuesPaid     bool    `json:"dues_paid"`
	LastVerified string  `json:"last_verified,omitempty"`
}

// Marching eligibility thresholds.
const (
	MinCreditHours = 12
	MinGPA         = 3.0
)

// Eligible reports whether a student may march. This is the only
// implementation of the predicate; every view that shows eligibility goes
// through it.
func Eligible(creditHours int, gpa float64, duesPaid bool) bool {
	return creditHours >= MinCreditHours && gpa >= MinGPA && duesPaid
}

// EligibilityRow is one line of the eligibility report, with the overall
// flag broken down per criterion.
type EligibilityRow struct {
	Student
	Compliance
	OKHours  bool `json:"ok_hours"`
	OKGPA    bool `json:"ok_gpa"`
	OKDues   bool `json:"ok_dues"`
	Eligible bool `json:"eligible"`
}
