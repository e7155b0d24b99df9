package models

// Person is a mentor or mentee profile supplied by the caller.
// The matching pipeline never mutates it.
type Person struct {
	ID                string `json:"id"`
	Name              string `json:"name"`
	Major             string `json:"major,omitempty"`
	AcademicInterests string `json:"academicInterests,omitempty"`
	MentorStrengths   string `json:"mentorStrengths,omitempty"`
	CareerGoals       string `json:"careerGoals,omitempty"`
	Challenges        string `json:"challenges,omitempty"`
	Expectations      string `json:"expectations,omitempty"`
}
