package services

import (
	"context"
	"testing"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{
			name:     "plain object",
			input:    `{"summary": "test"}`,
			expected: `{"summary": "test"}`,
		},
		{
			name:     "markdown fenced object",
			input:    "```json\n{\"summary\": \"test\"}\n```",
			expected: `{"summary": "test"}`,
		},
		{
			name:     "prose around object",
			input:    `Here is the profile: {"summary": "test"} Hope that helps!`,
			expected: `{"summary": "test"}`,
		},
		{
			name:     "array response",
			input:    `[1, 2, 3]`,
			expected: `[1, 2, 3]`,
		},
		{
			name:     "no json at all",
			input:    "sorry, I cannot do that",
			expected: "sorry, I cannot do that",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := extractJSON(tt.input)
			if got != tt.expected {
				t.Errorf("extractJSON() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestParseResume(t *testing.T) {
	response := "```json\n" + `{
		"skills": {"technical": ["Go", "Kafka"], "soft": ["communication"], "tools": ["Docker"]},
		"experience": [{"title": "Engineer", "company": "Acme", "description": "Built services"}],
		"education": [{"degree": "MSc", "field": "CS", "institution": "ETH"}],
		"summary": "Seasoned engineer",
		"total_experience_years": 8.5,
		"career_level": "senior"
	}` + "\n```"

	parser := NewResumeParser(&fakeGemini{text: response}, 3)

	parsed, err := parser.ParseResume(context.Background(), "resume text here")
	if err != nil {
		t.Fatalf("ParseResume() error = %v", err)
	}

	if parsed.Summary != "Seasoned engineer" {
		t.Errorf("summary = %q", parsed.Summary)
	}
	if parsed.TotalExperienceYears != 8.5 {
		t.Errorf("experience years = %v, want 8.5", parsed.TotalExperienceYears)
	}
	if len(parsed.Skills.Technical) != 2 || parsed.Skills.Technical[0] != "Go" {
		t.Errorf("technical skills = %v", parsed.Skills.Technical)
	}
	if len(parsed.Experience) != 1 || parsed.Experience[0].Company != "Acme" {
		t.Errorf("experience = %v", parsed.Experience)
	}
}

func TestParseResumeMalformedResponse(t *testing.T) {
	parser := NewResumeParser(&fakeGemini{text: "not json at all"}, 3)

	if _, err := parser.ParseResume(context.Background(), "resume text"); err == nil {
		t.Fatal("expected error for malformed model response")
	}
}
