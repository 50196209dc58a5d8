package models

import (
	"time"

	"github.com/google/uuid"
)

type ApplicationStatus string

const (
	ApplicationStatusApplied     ApplicationStatus = "applied"
	ApplicationStatusUnderReview ApplicationStatus = "under_review"
	ApplicationStatusShortlisted ApplicationStatus = "shortlisted"
	ApplicationStatusRejected    ApplicationStatus = "rejected"
	ApplicationStatusHired       ApplicationStatus = "hired"
)

type ApplicationStage string

const (
	StageScreening ApplicationStage = "screening"
	StageShortlist ApplicationStage = "shortlist"
	StageInterview ApplicationStage = "interview"
	StageOffer     ApplicationStage = "offer"
	StageClosed    ApplicationStage = "closed"
)

// ProcessingStatus is the enrichment pipeline state machine. Transitions run
// strictly in order; "error" is absorbing and reachable from any
// non-terminal state.
type ProcessingStatus string

const (
	ProcessingPending     ProcessingStatus = "pending"
	ProcessingDownloading ProcessingStatus = "downloading"
	ProcessingParsing     ProcessingStatus = "parsing"
	ProcessingEmbedding   ProcessingStatus = "embedding"
	ProcessingScoring     ProcessingStatus = "scoring"
	ProcessingSummarizing ProcessingStatus = "summarizing"
	ProcessingPersisting  ProcessingStatus = "persisting"
	ProcessingCompleted   ProcessingStatus = "completed"
	ProcessingError       ProcessingStatus = "error"
)

type AISummary struct {
	OneLiner         string   `json:"one_liner"`
	ExecutiveSummary string   `json:"executive_summary"`
	Strengths        []string `json:"strengths"`
	RedFlags         []string `json:"red_flags"`
}

type SkillsMatch struct {
	Matched []string `json:"matched"`
	Missing []string `json:"missing"`
	Score   int      `json:"score"`
}

type ExperienceMatch struct {
	Assessment string `json:"assessment"`
	Score      int    `json:"score"`
}

type Application struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CandidateID uuid.UUID `gorm:"type:uuid;not null;index" json:"candidate_id"`
	JobID       uuid.UUID `gorm:"type:uuid;not null;index" json:"job_id"`
	CompanyID   uuid.UUID `gorm:"type:uuid;not null;index" json:"company_id"`
	ResumeURL   string    `gorm:"type:text" json:"resume_url"`

	Status ApplicationStatus `gorm:"type:text;not null;default:'applied'" json:"status"`
	Stage  ApplicationStage  `gorm:"type:text;not null;default:'screening'" json:"stage"`

	MatchScore       int              `json:"match_score"`
	AIRecommendation string           `gorm:"type:text" json:"ai_recommendation"`
	AISummary        *AISummary       `gorm:"type:jsonb;serializer:json" json:"ai_summary,omitempty"`
	SkillsMatch      *SkillsMatch     `gorm:"type:jsonb;serializer:json" json:"skills_match,omitempty"`
	ExperienceMatch  *ExperienceMatch `gorm:"type:jsonb;serializer:json" json:"experience_match,omitempty"`

	AIProcessingStatus ProcessingStatus `gorm:"type:text;not null;default:'pending'" json:"ai_processing_status"`
	AIProcessingError  *string          `gorm:"type:text" json:"ai_processing_error,omitempty"`

	AutoRejected           bool       `gorm:"default:false" json:"auto_rejected"`
	AutoRejectedThreshold  *int       `json:"auto_rejected_threshold,omitempty"`
	AutoRejectedAt         *time.Time `json:"auto_rejected_at,omitempty"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`

	// Relations
	Candidate Candidate `gorm:"foreignKey:CandidateID" json:"-"`
	Job       Job       `gorm:"foreignKey:JobID" json:"-"`
}

func (Application) TableName() string {
	return "applications"
}
