package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"hireflow/ats-matching/internal/models"
)

// ResumeParser turns extracted resume text into a structured profile.
type ResumeParser interface {
	ParseResume(ctx context.Context, resumeText string) (*models.ParsedResume, error)
}

type geminiResumeParser struct {
	gemini        GeminiService
	promptBuilder *PromptBuilder
	maxRetries    int
}

func NewResumeParser(gemini GeminiService, maxRetries int) ResumeParser {
	return &geminiResumeParser{
		gemini:        gemini,
		promptBuilder: NewPromptBuilder(),
		maxRetries:    maxRetries,
	}
}

func (p *geminiResumeParser) ParseResume(ctx context.Context, resumeText string) (*models.ParsedResume, error) {
	prompt := p.promptBuilder.BuildResumeParsePrompt(resumeText)

	response, err := p.gemini.GenerateTextWithRetry(ctx, prompt, 0.2, p.maxRetries)
	if err != nil {
		return nil, fmt.Errorf("failed to parse resume: %w", err)
	}

	var parsed models.ParsedResume
	if err := parseJSONResponse(response, &parsed); err != nil {
		return nil, fmt.Errorf("failed to parse resume response: %w", err)
	}

	return &parsed, nil
}

func parseJSONResponse(response string, target interface{}) error {
	// The model may wrap the JSON in markdown
	jsonStr := extractJSON(response)

	if err := json.Unmarshal([]byte(jsonStr), target); err != nil {
		return fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	return nil
}

// extractJSON pulls the JSON object or array out of text that may contain
// markdown fences or surrounding prose.
func extractJSON(text string) string {
	text = strings.ReplaceAll(text, "```json", "")
	text = strings.ReplaceAll(text, "```", "")

	startObj := strings.Index(text, "{")
	startArr := strings.Index(text, "[")
	endObj := strings.LastIndex(text, "}")
	endArr := strings.LastIndex(text, "]")

	if startObj != -1 && endObj != -1 && endObj > startObj {
		return text[startObj : endObj+1]
	} else if startArr != -1 && endArr != -1 && endArr > startArr {
		return text[startArr : endArr+1]
	}

	return text
}
