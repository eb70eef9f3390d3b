package models

// Eligibility thresholds.
const (
	MinCreditHours = 12
	MinGPA         = 3.0
)

// IsEligible reports whether a student may perform.
func IsEligible(creditHours int, gpa float64, duesPaid bool) bool {
	return creditHours >= MinCreditHours && gpa >= MinGPA && duesPaid
}

// Compliance holds the academic and dues standing of one student.
type Compliance struct {
	StudentID        int64   `json:"studentId" db:"student_id"`
	CreditHours      int     `json:"creditHours" db:"credit_hours"`
	GPA              float64 `json:"gpa" db:"gpa"`
	DuesPaid         bool    `json:"duesPaid" db:"dues_paid"`
	LastVerifiedDate *string `json:"lastVerifiedDate,omitempty" db:"last_verified_date"`
}

// Eligible applies IsEligible to c.
func (c Compliance) Eligible() bool {
	return IsEligible(c.CreditHours, c.GPA, c.DuesPaid)
}

// ZeroCompliance is the row every new student starts with.
func ZeroCompliance(studentID int64) Compliance {
	return Compliance{StudentID: studentID}
}

// ComplianceInput updates a compliance record.
type ComplianceInput struct {
	CreditHours int     `json:"creditHours" validate:"gte=0"`
	GPA         float64 `json:"gpa" validate:"gte=0,lte=4"`
	DuesPaid    bool    `json:"duesPaid"`
	// VerifiedDate defaults to today when empty.
	VerifiedDate string `json:"verifiedDate" validate:"omitempty,datetime=2006-01-02"`
}

// EligibilityRow is one line of the eligibility report.
type EligibilityRow struct {
	StudentID     int64   `json:"studentId"`
	FirstName     string  `json:"firstName"`
	LastName      string  `json:"lastName"`
	Section       Section `json:"section"`
	CreditHours   int     `json:"creditHours"`
	GPA           float64 `json:"gpa"`
	DuesPaid      bool    `json:"duesPaid"`
	CreditHoursOK bool    `json:"creditHoursOk"`
	GPAOK         bool    `json:"gpaOk"`
	Eligible      bool    `json:"eligible"`
}

// NewEligibilityRow fills per-criterion flags for s and c.
func NewEligibilityRow(s Student, c Compliance) EligibilityRow {
	return EligibilityRow{
		StudentID:     s.StudentID,
		FirstName:     s.FirstName,
		LastName:      s.LastName,
		Section:       s.Section,
		CreditHours:   c.CreditHours,
		GPA:           c.GPA,
		DuesPaid:      c.DuesPaid,
		CreditHoursOK: c.CreditHours >= MinCreditHours,
		GPAOK:         c.GPA >= MinGPA,
		Eligible:      c.Eligible(),
	}
}
