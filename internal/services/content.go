package services

import (
	"context"
	"log"
	"time"

	"firstgen/mentorship-api/internal/config"
	"firstgen/mentorship-api/internal/models"
)

// ContentPipeline turns extracted resume text into application form answers
// for a role. It never returns an error: when the generative path fails it
// degrades to mock content, and in the worst case to an empty field set, so
// the form always receives every required field.
type ContentPipeline interface {
	GenerateRoleContent(ctx context.Context, textContent, role string) map[string]any
	MockRoleContent(role string) map[string]any
	ErrorContent(role, errorType, message string) map[string]any
}

type contentPipeline struct {
	gemini     GeminiService
	prompts    *PromptBuilder
	extractor  *ResponseExtractor
	normalizer *SchemaNormalizer
	caps       config.Capabilities
	maxRetries int
}

func NewContentPipeline(gemini GeminiService, caps config.Capabilities, maxRetries int) ContentPipeline {
	return &contentPipeline{
		gemini:     gemini,
		prompts:    NewPromptBuilder(),
		extractor:  NewResponseExtractor(),
		normalizer: NewSchemaNormalizer(),
		caps:       caps,
		maxRetries: maxRetries,
	}
}

// GenerateRoleContent implements ContentPipeline.
func (p *contentPipeline) GenerateRoleContent(ctx context.Context, textContent, role string) map[string]any {
	requiredFields := models.ContentFieldsForRole(role)

	if !p.caps.AIAvailable || p.gemini == nil {
		log.Println("⚠️  AI not available, returning mock content")
		return p.MockRoleContent(role)
	}

	prompt := p.prompts.BuildContentPrompt(textContent, role)

	response, err := p.gemini.GenerateTextWithRetry(ctx, prompt, 0.7, p.maxRetries)
	if err != nil {
		log.Printf("❌ Content generation failed: %v. Returning mock content", err)
		return p.MockRoleContent(role)
	}

	raw := map[string]any{}
	payload, err := p.extractor.Extract(response)
	if err != nil {
		log.Printf("⚠️  Could not extract JSON from content response: %v", err)
	} else if object, ok := payload.(map[string]any); ok {
		raw = object
	}

	// Missing fields come back empty rather than failing the request.
	fields := p.normalizer.NormalizeContent(raw, requiredFields)

	result := make(map[string]any, len(fields)+3)
	for field, value := range fields {
		result[field] = value
	}
	result["source"] = models.SourceAIGenerated
	result["parsedFrom"] = "Resume/Document"
	result["timestamp"] = time.Now().Format(time.RFC3339)

	return result
}

// MockRoleContent implements ContentPipeline. It returns canned first-person
// answers so the form stays usable without the generation service.
func (p *contentPipeline) MockRoleContent(role string) map[string]any {
	timestamp := time.Now().Format(time.RFC3339)
	log.Printf("Generating mock content for role: %s at %s", role, timestamp)

	if role == models.RoleMentor {
		return map[string]any{
			"academicInterests":  "I am interested in computer science, particularly in artificial intelligence and software engineering. I plan to continue my education in graduate school focusing on machine learning.",
			"extracurriculars":   "I participate in coding club, volunteer at local STEM events, and am part of the university's tech innovation group.",
			"mentorMotivation":   "I want to help other students navigate the challenges I faced when I first started college. Being a first-generation student myself, I understand the unique obstacles.",
			"firstGenChallenges": "The biggest challenges I faced were understanding financial aid systems, navigating academic requirements, and building a professional network from scratch.",
			"mentorStrengths":    "I'm patient, good at explaining complex concepts in simple terms, and I have experience with academic planning and career development.",
			"communicationStyle": "I prefer regular check-ins and direct communication. I believe in asking clarifying questions and providing constructive feedback.",
			"desiredSupport":     "I wish I had someone to help me understand the unwritten rules of college and professional environments, as well as guidance on internship opportunities.",
			"additionalInfo":     "I've been through many of the same challenges and am committed to helping others succeed where I struggled.",
			"expectations":       "I expect to meet regularly with my mentee, help them set and achieve goals, and be available for questions and guidance.",
			"source":             models.SourceMockData,
			"timestamp":          timestamp,
		}
	}

	return map[string]any{
		"careerGoals":       "I'm interested in pursuing a career in technology, possibly as a software developer or data analyst. I'm still exploring options but want to work in an innovative field.",
		"experienceSummary": "I'm currently a freshman studying computer science. I have basic programming knowledge from high school and am eager to gain more practical experience.",
		"challenges":        "As a first-generation college student, I struggle with navigating the college system, understanding career paths, and building professional connections.",
		"expectations":      "I hope to gain guidance on course selection, internship opportunities, and general advice on succeeding in the tech field.",
		"additionalInfo":    "I'm particularly interested in learning about the transition from college to industry and what skills I should focus on developing.",
		"source":            models.SourceMockData,
		"timestamp":         timestamp,
	}
}

// ErrorContent implements ContentPipeline. The payload still carries the full
// empty field set so the calling form can render gracefully.
func (p *contentPipeline) ErrorContent(role, errorType, message string) map[string]any {
	requiredFields := models.ContentFieldsForRole(role)

	result := make(map[string]any, len(requiredFields)+6)
	for _, field := range requiredFields {
		result[field] = ""
	}
	result["success"] = false
	result["error"] = true
	result["errorType"] = errorType
	result["errorMessage"] = message
	result["source"] = models.SourceServerError
	result["timestamp"] = time.Now().Format(time.RFC3339)

	return result
}
