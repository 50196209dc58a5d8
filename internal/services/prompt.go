package services

import (
	"fmt"
	"strings"

	"hireflow/ats-matching/internal/models"
)

type PromptBuilder struct{}

func NewPromptBuilder() *PromptBuilder {
	return &PromptBuilder{}
}

// BuildResumeParsePrompt creates the prompt that turns raw resume text into a
// structured candidate profile.
func (pb *PromptBuilder) BuildResumeParsePrompt(resumeText string) string {
	return fmt.Sprintf(`You are an expert resume parser for an applicant tracking system.

RESUME TEXT:
%s

Extract the candidate's profile from the resume text above.

Career level must be one of: entry, mid, senior, lead, executive.
Dates should be kept as they appear in the resume.

Return your response in the following JSON format:
{
  "skills": {
    "technical": ["<technical skills>"],
    "soft": ["<soft skills>"],
    "tools": ["<tools and platforms>"]
  },
  "experience": [
    {"title": "<job title>", "company": "<company>", "description": "<what they did>", "start_date": "<start>", "end_date": "<end>"}
  ],
  "education": [
    {"degree": "<degree>", "field": "<field of study>", "institution": "<institution>", "year": "<year>"}
  ],
  "summary": "<2-3 sentence professional summary>",
  "total_experience_years": <number>,
  "career_level": "<entry|mid|senior|lead|executive>"
}

Base everything only on the provided text. Do not invent experience or skills
that are not explicitly mentioned. Return only valid JSON.`, resumeText)
}

// BuildMatchBreakdownPrompt creates the prompt for the structured
// skills/experience match breakdown between a candidate and a job.
func (pb *PromptBuilder) BuildMatchBreakdownPrompt(candidate *models.Candidate, job *models.Job) string {
	return fmt.Sprintf(`You are an expert technical recruiter comparing a candidate against a job posting.

JOB: %s (%s, %s level)
REQUIRED SKILLS: %s
JOB DESCRIPTION:
%s

CANDIDATE SKILLS: %s
CANDIDATE SUMMARY: %s
CANDIDATE EXPERIENCE: %.1f years, career level %s

Compare the candidate's skills and experience against the job requirements.

Return your response in the following JSON format:
{
  "skills_match": {
    "matched": ["<required skills the candidate has>"],
    "missing": ["<required skills the candidate lacks>"],
    "score": <0-100>
  },
  "experience_match": {
    "assessment": "<1-2 sentences on how the candidate's experience fits the role>",
    "score": <0-100>
  }
}

Be objective. Only count a skill as matched when the resume clearly supports it.
Return only valid JSON.`,
		job.Title, job.Department, job.ExperienceLevel,
		strings.Join(job.RequiredSkills, ", "),
		job.Description,
		strings.Join(candidate.Skills.All(), ", "),
		candidate.Summary,
		candidate.TotalExperienceYears, candidate.CareerLevel)
}

// BuildSummaryPrompt creates the prompt for the final AI summary and
// hiring recommendation.
func (pb *PromptBuilder) BuildSummaryPrompt(candidate *models.Candidate, job *models.Job, matchScore int, skillsMatch *models.SkillsMatch) string {
	matched := ""
	missing := ""
	if skillsMatch != nil {
		matched = strings.Join(skillsMatch.Matched, ", ")
		missing = strings.Join(skillsMatch.Missing, ", ")
	}

	return fmt.Sprintf(`You are an expert hiring manager writing a short assessment of a candidate for a %s position.

MATCH SCORE: %d/100
MATCHED SKILLS: %s
MISSING SKILLS: %s
CANDIDATE SUMMARY: %s
CANDIDATE EXPERIENCE: %.1f years, career level %s

Return your response in the following JSON format:
{
  "one_liner": "<a single sentence capturing the candidate>",
  "executive_summary": "<3-4 sentence assessment against this role>",
  "strengths": ["<2-4 key strengths>"],
  "red_flags": ["<0-3 concerns, empty array if none>"],
  "recommendation": "<Strong Match | Good Match | Possible Match | Weak Match>"
}

Be direct and specific. Return only valid JSON.`,
		job.Title, matchScore, matched, missing,
		candidate.Summary, candidate.TotalExperienceYears, candidate.CareerLevel)
}
