package services

import (
	"fmt"
	"strings"

	"firstgen/mentorship-api/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildMatchingPrompt creates the prompt asking the model for a full
// mentor/mentee assignment as a JSON array.
func (pb *PromptBuilder) BuildMatchingPrompt(mentors, mentees []models.Person, maxMenteesPerMentor int) string {
	var b strings.Builder

	fmt.Fprintf(&b, `You are an AI assistant helping match mentors with mentees in a college mentorship program.
Below are the details of available mentors and mentees. Please create optimal mentor-mentee pairs based on:
1. Academic interests and major alignment
2. Mentorship strengths matching mentee challenges
3. Career goals and expertise alignment

CONSTRAINTS:
- Each mentee should be matched with exactly one mentor
- A mentor can have up to %d mentees
- Assign higher compatibility scores (between 0-100) for better matches
- Every mentee MUST be matched with someone

Provide your response as a JSON array of matches with the following structure for each match:
{
    "menteeId": "[mentee id]",
    "mentorId": "[mentor id]",
    "reason": "[detailed explanation of why this is a good match]",
    "score": [compatibility score between 0-100]
}

MENTORS:
`, maxMenteesPerMentor)

	for _, mentor := range mentors {
		fmt.Fprintf(&b, `
Mentor ID: %s
Name: %s
Major: %s
Academic Interests: %s
Mentor Strengths: %s
`,
			mentor.ID,
			orDefault(mentor.Name, "Unnamed Mentor"),
			orDefault(mentor.Major, "Not specified"),
			orDefault(mentor.AcademicInterests, "Not specified"),
			orDefault(mentor.MentorStrengths, "Not specified"),
		)
	}

	b.WriteString("\nMENTEES:\n")

	for _, mentee := range mentees {
		fmt.Fprintf(&b, `
Mentee ID: %s
Name: %s
Major: %s
Career Goals: %s
Challenges: %s
Expectations: %s
`,
			mentee.ID,
			orDefault(mentee.Name, "Unnamed Mentee"),
			orDefault(mentee.Major, "Not specified"),
			orDefault(mentee.CareerGoals, "Not specified"),
			orDefault(mentee.Challenges, "Not specified"),
			orDefault(mentee.Expectations, "Not specified"),
		)
	}

	b.WriteString("\nReturn ONLY a valid JSON array of matches, with NO additional text before or after the JSON.\n")

	return b.String()
}

// BuildContentPrompt creates the role-specific prompt that turns extracted
// resume text into application form answers, returned as a JSON object with
// exactly the role's required keys.
func (pb *PromptBuilder) BuildContentPrompt(textContent, role string) string {
	if role == models.RoleMentor {
		return fmt.Sprintf(`Based on the following resume or profile information, generate thoughtful responses for a mentorship application where the user is applying to be a MENTOR. Write responses in first person, as if the user is describing themselves:

%s

For each of the following categories, you MUST provide a paragraph (3-5 sentences) response. Each field is required and must have content:

1. Academic Interests: What are your academic interests and career goals?
2. Extracurricular Activities: What extracurricular activities, clubs, or organizations are you involved in?
3. Mentor Motivation: Why do you want to be a mentor in this program?
4. First-Gen Challenges: What challenges did you face as a first-generation student that you want to help others navigate?
5. Mentor Strengths: What strengths do you bring as a mentor?
6. Communication Style: How would you describe your communication and leadership style?
7. Desired Support: What kind of support do you wish you had when you started college?
8. Additional Info: Is there anything else you'd like us to know about your mentorship goals or expectations?
9. Expectations: What are your expectations from this mentorship experience as a mentor?

Format your response as a valid JSON object with exactly these keys:
academicInterests, extracurriculars, mentorMotivation, firstGenChallenges, mentorStrengths, communicationStyle, desiredSupport, additionalInfo, expectations

Make sure ALL fields are included and have content, even if you have to creatively interpret the resume.`, textContent)
	}

	return fmt.Sprintf(`Based on the following resume or profile information, generate thoughtful responses for a mentorship application where the user is applying to be a MENTEE. Write responses in first person, as if the user is describing themselves:

%s

For each of the following categories, you MUST provide a paragraph (3-5 sentences) response. Each field is required and must have content:

1. Career Goals: What are your short-term and long-term career aspirations?
2. Experience Summary: Describe your academic and professional experience so far.
3. Challenges: What challenges have you faced in your academic or career journey?
4. Expectations: What are your expectations from this mentorship?
5. Additional Info: Is there anything else you'd like us to know about your mentorship goals or expectations?

Format your response as a valid JSON object with exactly these keys:
careerGoals, experienceSummary, challenges, expectations, additionalInfo

Make sure ALL fields are included and have content, even if you have to creatively interpret the resume.`, textContent)
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
