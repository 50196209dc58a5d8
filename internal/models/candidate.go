package models

import (
	"time"

	"github.com/google/uuid"
)

type CareerLevel string

const (
	CareerLevelEntry     CareerLevel = "entry"
	CareerLevelMid       CareerLevel = "mid"
	CareerLevelSenior    CareerLevel = "senior"
	CareerLevelLead      CareerLevel = "lead"
	CareerLevelExecutive CareerLevel = "executive"
)

type ExperienceEntry struct {
	Title       string `json:"title"`
	Company     string `json:"company"`
	Description string `json:"description"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
}

type EducationEntry struct {
	Degree      string `json:"degree"`
	Field       string `json:"field"`
	Institution string `json:"institution"`
	Year        string `json:"year,omitempty"`
}

type CandidateSkills struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
	Tools     []string `json:"tools"`
}

// All returns the flattened skill list in a stable order
// (technical, soft, tools).
func (s CandidateSkills) All() []string {
	all := make([]string, 0, len(s.Technical)+len(s.Soft)+len(s.Tools))
	all = append(all, s.Technical...)
	all = append(all, s.Soft...)
	all = append(all, s.Tools...)
	return all
}

type Candidate struct {
	ID                   uuid.UUID         `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CompanyID            uuid.UUID         `gorm:"type:uuid;index" json:"company_id"`
	Name                 string            `gorm:"type:text" json:"name"`
	Email                string            `gorm:"type:text" json:"email"`
	Skills               CandidateSkills   `gorm:"type:jsonb;serializer:json" json:"skills"`
	Experience           []ExperienceEntry `gorm:"type:jsonb;serializer:json" json:"experience"`
	Education            []EducationEntry  `gorm:"type:jsonb;serializer:json" json:"education"`
	Summary              string            `gorm:"type:text" json:"summary"`
	TotalExperienceYears float64           `json:"total_experience_years"`
	CareerLevel          CareerLevel       `gorm:"type:text" json:"career_level"`
	// Embedding reference: the vector itself lives in the vector store and is
	// regenerated whenever the profile text changes.
	HasEmbedding       bool       `gorm:"default:false" json:"has_embedding"`
	EmbeddingUpdatedAt *time.Time `json:"embedding_updated_at,omitempty"`
	CreatedAt          time.Time  `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (Candidate) TableName() string {
	return "candidates"
}
