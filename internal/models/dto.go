package models

// SearchResult is a transient ranked match produced by the match search.
// It is never persisted.
type SearchResult[T any] struct {
	EntityID   string  `json:"entity_id"`
	Entity     T       `json:"entity"`
	Similarity float64 `json:"similarity"`
	MatchScore int     `json:"match_score"`
}

type CreateApplicationRequest struct {
	CandidateID string `json:"candidate_id" validate:"required,uuid"`
	JobID       string `json:"job_id" validate:"required,uuid"`
	CompanyID   string `json:"company_id" validate:"required,uuid"`
	ResumeURL   string `json:"resume_url" validate:"required"`
}

type ApplicationResponse struct {
	ID               string           `json:"id"`
	Status           string           `json:"status"`
	Stage            string           `json:"stage"`
	ProcessingStatus string           `json:"ai_processing_status"`
	ProcessingError  *string          `json:"ai_processing_error,omitempty"`
	MatchScore       int              `json:"match_score"`
	AIRecommendation string           `json:"ai_recommendation,omitempty"`
	AISummary        *AISummary       `json:"ai_summary,omitempty"`
	SkillsMatch      *SkillsMatch     `json:"skills_match,omitempty"`
	ExperienceMatch  *ExperienceMatch `json:"experience_match,omitempty"`
}

type CreateJobRequest struct {
	CompanyID       string   `json:"company_id" validate:"required,uuid"`
	Title           string   `json:"title" validate:"required"`
	Description     string   `json:"description"`
	RequiredSkills  []string `json:"required_skills"`
	Department      string   `json:"department"`
	ExperienceLevel string   `json:"experience_level"`
}

type UpdateSettingsRequest struct {
	AutoRejectEnabled        bool `json:"auto_reject_enabled"`
	AutoRejectThreshold      int  `json:"auto_reject_threshold"`
	MinimumApplications      int  `json:"minimum_applications"`
	SendRejectionEmail       bool `json:"send_rejection_email"`
	AutoAdvanceTopCandidates bool `json:"auto_advance_top_candidates"`
	TopCandidateThreshold    int  `json:"top_candidate_threshold"`
}

// ReevaluationSummary is the aggregate impact of one settings-change
// re-evaluation run.
type ReevaluationSummary struct {
	Reviewed int `json:"reviewed"`
	Rejected int `json:"rejected"`
}
