package models

import (
	"errors"
	"strconv"
	"strings"
)

var errInvalidStudentID = errors.New("student ID must be a positive whole number")

// Student is a roster entry keyed by an externally assigned ID.
type Student struct {
	StudentID      int64   `json:"studentId" db:"student_id"`
	FirstName      string  `json:"firstName" db:"fname"`
	LastName       string  `json:"lastName" db:"lname"`
	Classification string  `json:"classification" db:"classification"`
	Section        Section `json:"section" db:"section"`
	PrimaryRole    *string `json:"primaryRole,omitempty" db:"primary_role"`
	ShirtSize      *string `json:"shirtSize,omitempty" db:"shirt_size"`
	ShoeSize       *string `json:"shoeSize,omitempty" db:"shoe_size"`
	Active         bool    `json:"active" db:"active"`
	UpdatedAt      string  `json:"updatedAt" db:"updated_at"`
}

// FullName returns "First Last".
func (s Student) FullName() string {
	return strings.TrimSpace(s.FirstName + " " + s.LastName)
}

// StudentFields are the mutable attributes of a student.
type StudentFields struct {
	FirstName      string `json:"firstName" validate:"required,max=100"`
	LastName       string `json:"lastName" validate:"required,max=100"`
	Classification string `json:"classification" validate:"omitempty,oneof=Freshman Sophomore Junior Senior Graduate"`
	Section        string `json:"section" validate:"required,oneof=WOODWIND BRASS PERCUSSION 'FLAG CORP' 'DRUM MAJOR' OTHER"`
	PrimaryRole    string `json:"primaryRole" validate:"max=100"`
	ShirtSize      string `json:"shirtSize" validate:"omitempty,oneof=XS S M L XL XXL XXXL"`
	ShoeSize       string `json:"shoeSize" validate:"omitempty,shoe_size"`
	Active         *bool  `json:"active"`
}

// Normalize trims every text field in place.
func (f *StudentFields) Normalize() {
	f.FirstName = strings.TrimSpace(f.FirstName)
	f.LastName = strings.TrimSpace(f.LastName)
	f.Classification = strings.TrimSpace(f.Classification)
	f.Section = strings.ToUpper(strings.TrimSpace(f.Section))
	f.PrimaryRole = strings.TrimSpace(f.PrimaryRole)
	f.ShirtSize = strings.ToUpper(strings.TrimSpace(f.ShirtSize))
	f.ShoeSize = strings.TrimSpace(f.ShoeSize)
}

// IsActive defaults a missing active flag to true.
func (f StudentFields) IsActive() bool {
	return f.Active == nil || *f.Active
}

// StudentInput is a new roster entry; the ID arrives as text from the form.
type StudentInput struct {
	StudentID string `json:"studentId" validate:"required"`
	StudentFields
}

// ParseStudentID converts raw text into a positive student ID.
func ParseStudentID(raw string) (int64, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, errInvalidStudentID
	}
	for _, r := range raw {
		if r < '0' || r > '9' {
			return 0, errInvalidStudentID
		}
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, errInvalidStudentID
	}
	return id, nil
}

// StudentFilter narrows roster listings.
type StudentFilter struct {
	// Search matches ID, names, section and primary role.
	Search     string
	ActiveOnly bool
}

// StudentSummary is a roster row with eligibility attached.
type StudentSummary struct {
	Student
	Eligible bool `json:"eligible"`
}

// StudentDetail is everything known about one student.
type StudentDetail struct {
	Student    Student    `json:"student"`
	Compliance Compliance `json:"compliance"`
	Eligible   bool       `json:"eligible"`
	Holdings   []Holding  `json:"holdings"`
}
