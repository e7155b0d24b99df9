package services

import (
	"context"
	"fmt"
	"log"
	"strings"

	"firstgen/mentorship-api/internal/config"
	"firstgen/mentorship-api/internal/models"
	"firstgen/mentorship-api/internal/repositories"
)

// DefaultMaxMenteesPerMentor caps a mentor's load when the caller does not
// specify one.
const DefaultMaxMenteesPerMentor = 3

// InvalidInputError reports malformed caller data. It is the only error
// GenerateMatches surfaces; every downstream failure is recovered by the
// fallback assigner.
type InvalidInputError struct {
	Message    string
	InvalidIDs []string
}

func (e *InvalidInputError) Error() string {
	if len(e.InvalidIDs) > 0 {
		return fmt.Sprintf("%s: %s", e.Message, strings.Join(e.InvalidIDs, ", "))
	}
	return e.Message
}

// MatchResult is the outcome of one pipeline invocation.
type MatchResult struct {
	Matches      []models.Match
	StoredIDs    []string
	UsedFallback bool
}

type MatchPipeline interface {
	// GenerateMatches runs the full pipeline: prompt, generate, extract,
	// normalize, fall back on any failure, persist. The returned set always
	// covers every mentee.
	GenerateMatches(ctx context.Context, mentors, mentees []models.Person, maxMenteesPerMentor int, persist bool) (*MatchResult, error)
	// GenerateFallbackMatches skips the generative path entirely.
	GenerateFallbackMatches(ctx context.Context, mentors, mentees []models.Person, persist bool) (*MatchResult, error)
}

type matchPipeline struct {
	gemini     GeminiService
	prompts    *PromptBuilder
	extractor  *ResponseExtractor
	normalizer *SchemaNormalizer
	fallback   *FallbackAssigner
	matchRepo  repositories.MatchRepository
	caps       config.Capabilities
	maxRetries int
}

func NewMatchPipeline(
	gemini GeminiService,
	matchRepo repositories.MatchRepository,
	caps config.Capabilities,
	maxRetries int,
) MatchPipeline {
	return &matchPipeline{
		gemini:     gemini,
		prompts:    NewPromptBuilder(),
		extractor:  NewResponseExtractor(),
		normalizer: NewSchemaNormalizer(),
		fallback:   NewFallbackAssigner(),
		matchRepo:  matchRepo,
		caps:       caps,
		maxRetries: maxRetries,
	}
}

// GenerateMatches implements MatchPipeline.
func (p *matchPipeline) GenerateMatches(ctx context.Context, mentors, mentees []models.Person, maxMenteesPerMentor int, persist bool) (*MatchResult, error) {
	if err := validateParticipants(mentors, mentees); err != nil {
		return nil, err
	}

	if maxMenteesPerMentor <= 0 {
		maxMenteesPerMentor = DefaultMaxMenteesPerMentor
	}

	matches, usedFallback := p.aiMatches(ctx, mentors, mentees, maxMenteesPerMentor)
	if usedFallback {
		matches = p.fallback.AssignRoundRobin(mentors, mentees)
	}

	storedIDs := p.persistMatches(matches, persist)

	return &MatchResult{
		Matches:      matches,
		StoredIDs:    storedIDs,
		UsedFallback: usedFallback,
	}, nil
}

// GenerateFallbackMatches implements MatchPipeline.
func (p *matchPipeline) GenerateFallbackMatches(ctx context.Context, mentors, mentees []models.Person, persist bool) (*MatchResult, error) {
	if err := validateParticipants(mentors, mentees); err != nil {
		return nil, err
	}

	matches := p.fallback.AssignRoundRobin(mentors, mentees)
	storedIDs := p.persistMatches(matches, persist)

	return &MatchResult{
		Matches:      matches,
		StoredIDs:    storedIDs,
		UsedFallback: true,
	}, nil
}

// aiMatches runs the generative path. It returns usedFallback=true on any
// failure: service unavailable, generation error, unparsable output, or a
// batch where no record survived normalization.
func (p *matchPipeline) aiMatches(ctx context.Context, mentors, mentees []models.Person, maxMenteesPerMentor int) ([]models.Match, bool) {
	if !p.caps.AIAvailable || p.gemini == nil {
		log.Println("⚠️  AI not available, using fallback assignment")
		return nil, true
	}

	prompt := p.prompts.BuildMatchingPrompt(mentors, mentees, maxMenteesPerMentor)
	log.Printf("📝 Matching prompt length: %d characters", len(prompt))

	response, err := p.gemini.GenerateTextWithRetry(ctx, prompt, 0.7, p.maxRetries)
	if err != nil {
		log.Printf("❌ Match generation failed: %v", err)
		return nil, true
	}

	payload, err := p.extractor.Extract(response)
	if err != nil {
		log.Printf("❌ Failed to extract matches from response: %v", err)
		return nil, true
	}

	var rawMatches []any
	switch value := payload.(type) {
	case []any:
		rawMatches = value
	case map[string]any:
		rawMatches = []any{value}
	}

	var matches []models.Match
	for i, raw := range rawMatches {
		record, ok := raw.(map[string]any)
		if !ok {
			log.Printf("⚠️  Skipping non-object match candidate #%d", i+1)
			continue
		}

		match, err := p.normalizer.NormalizeMatch(record)
		if err != nil {
			log.Printf("⚠️  Skipping match candidate #%d: %v", i+1, err)
			continue
		}

		matches = append(matches, *match)
	}

	if len(matches) == 0 {
		log.Println("⚠️  No valid matches in model output, using fallback assignment")
		return nil, true
	}

	log.Printf("✅ Generated %d matches from model output", len(matches))
	return matches, false
}

// persistMatches writes the batch and returns the ids of records that were
// actually stored. A per-record write failure is logged and skipped, never
// fatal. Without persistence the records get local mock ids so the response
// shape stays consistent.
func (p *matchPipeline) persistMatches(matches []models.Match, persist bool) []string {
	storedIDs := []string{}

	if !persist || p.matchRepo == nil {
		for i := range matches {
			matches[i].ID = fmt.Sprintf("mock-match-%d", i+1)
		}
		return storedIDs
	}

	for i := range matches {
		id, err := p.matchRepo.Create(&matches[i])
		if err != nil {
			log.Printf("❌ Failed to store match for mentee %s: %v", matches[i].MenteeID, err)
			continue
		}
		matches[i].ID = id
		storedIDs = append(storedIDs, id)
	}

	log.Printf("💾 Stored %d of %d matches", len(storedIDs), len(matches))
	return storedIDs
}

func validateParticipants(mentors, mentees []models.Person) error {
	if len(mentors) == 0 {
		return &InvalidInputError{Message: "no mentors provided"}
	}
	if len(mentees) == 0 {
		return &InvalidInputError{Message: "no mentees provided"}
	}

	var invalid []string
	for i, mentor := range mentors {
		if mentor.ID == "" {
			invalid = append(invalid, fmt.Sprintf("mentor #%d", i+1))
		}
	}
	for i, mentee := range mentees {
		if mentee.ID == "" {
			invalid = append(invalid, fmt.Sprintf("mentee #%d", i+1))
		}
	}

	if len(invalid) > 0 {
		return &InvalidInputError{
			Message:    "participants missing required id",
			InvalidIDs: invalid,
		}
	}

	return nil
}
