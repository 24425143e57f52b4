package models

// StudentProfile is the participant profile captured at profile setup.
// It is written once and read by every downstream view; there is no edit
// flow, so treat it as immutable after creation.
type StudentProfile struct {
	// StudentID is the college-issued student code (e.g. "STU001").
	StudentID string `json:"studentId"`

	Name       string `json:"name"`
	Email      string `json:"email"`
	Department string `json:"department"`
	Year       string `json:"year"`
}
