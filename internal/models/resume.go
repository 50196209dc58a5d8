package models

// ParsedResume is the structured output of the generative resume parser and
// the only input the embedding stage accepts.
type ParsedResume struct {
	Skills               CandidateSkills   `json:"skills"`
	Experience           []ExperienceEntry `json:"experience"`
	Education            []EducationEntry  `json:"education"`
	Summary              string            `json:"summary"`
	TotalExperienceYears float64           `json:"total_experience_years"`
	CareerLevel          CareerLevel       `json:"career_level"`
}

// ApplyTo merges the parsed fields onto a candidate record. Parsed fields
// overwrite; anything the parser did not produce is preserved.
func (p *ParsedResume) ApplyTo(candidate *Candidate) {
	candidate.Skills = p.Skills
	candidate.Experience = p.Experience
	candidate.Education = p.Education
	candidate.Summary = p.Summary
	candidate.TotalExperienceYears = p.TotalExperienceYears
	candidate.CareerLevel = p.CareerLevel
}
