package services

import (
	"context"
	"fmt"

	"hireflow/ats-matching/internal/models"
)

// MatchResult is the scoring stage output: the overall 0-100 score derived
// from embedding similarity plus the generative skills/experience breakdown.
type MatchResult struct {
	MatchScore      int
	Similarity      float64
	SkillsMatch     *models.SkillsMatch
	ExperienceMatch *models.ExperienceMatch
}

// JobScorer computes how well a candidate matches a job.
type JobScorer interface {
	Score(ctx context.Context, candidate *models.Candidate, job *models.Job, jobVector, candidateVector []float32) (*MatchResult, error)
}

type geminiJobScorer struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
	maxRetries    int
}

func NewJobScorer(gemini GeminiService, maxRetries int) JobScorer {
	return &geminiJobScorer{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

func (s *geminiJobScorer) Score(ctx context.Context, candidate *models.Candidate, job *models.Job, jobVector, candidateVector []float32) (*MatchResult, error) {
	similarity, err := CosineSimilarity(jobVector, candidateVector)
	if err != nil {
		return nil, err
	}
	matchScore := SimilarityToMatchScore(similarity)

	prompt := s.promptBuilder.BuildMatchBreakdownPrompt(candidate, job)

	response, err := s.gemini.GenerateTextWithRetry(ctx, prompt, 0.3, s.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to generate match breakdown: %w", err)
	}

	var breakdown struct {
		SkillsMatch     models.SkillsMatch     `json:"skills_match"`
		ExperienceMatch models.ExperienceMatch `json:"experience_match"`
	}
	if err := parseJSONResponse(response, &breakdown); err != nil {
		return nil, fmt.Errorf("failed to parse match breakdown: %w", err)
	}

	return &MatchResult{
		MatchScore:      matchScore,
		Similarity:      similarity,
		SkillsMatch:     &breakdown.SkillsMatch,
		ExperienceMatch: &breakdown.ExperienceMatch,
	}, nil
}
