package models

// Content source tags returned alongside generated application form content.
const (
	SourceAIGenerated    = "ai_generated"
	SourceMockData       = "mock_data"
	SourceFileProcessing = "file_processing"
	SourceServerError    = "server_error"
)

// Application roles.
const (
	RoleMentor = "Mentor"
	RoleMentee = "Mentee"
)

// MentorContentFields is the full field set a mentor application form expects.
var MentorContentFields = []string{
	"academicInterests",
	"extracurriculars",
	"mentorMotivation",
	"firstGenChallenges",
	"mentorStrengths",
	"communicationStyle",
	"desiredSupport",
	"additionalInfo",
	"expectations",
}

// MenteeContentFields is the full field set a mentee application form expects.
var MenteeContentFields = []string{
	"careerGoals",
	"experienceSummary",
	"challenges",
	"expectations",
	"additionalInfo",
}

// ContentFieldsForRole returns the required field set for a role. Anything
// other than Mentor is treated as Mentee, matching the form defaults.
func ContentFieldsForRole(role string) []string {
	if role == RoleMentor {
		return MentorContentFields
	}
	return MenteeContentFields
}
