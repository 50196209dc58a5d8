package models

import (
	"time"

	"github.com/google/uuid"
)

type JobStatus string

const (
	JobStatusOpen     JobStatus = "open"
	JobStatusClosed   JobStatus = "closed"
	JobStatusArchived JobStatus = "archived"
)

type Job struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CompanyID          uuid.UUID  `gorm:"type:uuid;index" json:"company_id"`
	Title              string     `gorm:"type:text" json:"title"`
	Description        string     `gorm:"type:text" json:"description"`
	RequiredSkills     []string   `gorm:"type:jsonb;serializer:json" json:"required_skills"`
	Department         string     `gorm:"type:text" json:"department"`
	ExperienceLevel    string     `gorm:"type:text" json:"experience_level"`
	Status             JobStatus  `gorm:"type:text;not null;default:'open'" json:"status"`
	HasEmbedding       bool       `gorm:"default:false" json:"has_embedding"`
	EmbeddingUpdatedAt *time.Time `json:"embedding_updated_at,omitempty"`
	CreatedAt          time.Time  `gorm:"type:timestamp;default:now()" json:"created_at"`
	UpdatedAt          time.Time  `gorm:"type:timestamp;default:now()" json:"updated_at"`
}

func (Job) TableName() string {
	return "jobs"
}
