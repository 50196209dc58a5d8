package services

import (
	"context"
	"fmt"

	"hireflow/ats-matching/internal/models"
)

// SummaryResult is the summarizer output: the structured summary plus the
// one-word-ish recommendation persisted as aiRecommendation.
type SummaryResult struct {
	Summary        models.AISummary
	Recommendation string
}

// Summarizer writes the short AI assessment of a scored application.
type Summarizer interface {
	Summarize(ctx context.Context, candidate *models.Candidate, job *models.Job, match *MatchResult) (*SummaryResult, error)
}

type geminiSummarizer struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
	maxRetries    int
}

func NewSummarizer(gemini GeminiService, maxRetries int) Summarizer {
	return &geminiSummarizer{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

func (s *geminiSummarizer) Summarize(ctx context.Context, candidate *models.Candidate, job *models.Job, match *MatchResult) (*SummaryResult, error) {
	prompt := s.promptBuilder.BuildSummaryPrompt(candidate, job, match.MatchScore, match.SkillsMatch)

	response, err := s.gemini.GenerateTextWithRetry(ctx, prompt, 0.5, s.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to generate summary: %w", err)
	}

	var parsed struct {
		OneLiner         string   `json:"one_liner"`
		ExecutiveSummary string   `json:"executive_summary"`
		Strengths        []string `json:"strengths"`
		RedFlags         []string `json:"red_flags"`
		Recommendation   string   `json:"recommendation"`
	}
	if err := parseJSONResponse(response, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse summary response: %w", err)
	}

	return &SummaryResult{
		Summary: models.AISummary{
			OneLiner:         parsed.OneLiner,
			ExecutiveSummary: parsed.ExecutiveSummary,
			Strengths:        parsed.Strengths,
			RedFlags:         parsed.RedFlags,
		},
		Recommendation: parsed.Recommendation,
	}, nil
}
