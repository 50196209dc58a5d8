package models

import (
	"time"

	"github.com/google/uuid"
)

// PipelineSettings is the per-company automation policy. Every write is a
// trigger input to the policy engine.
type PipelineSettings struct {
	CompanyID                uuid.UUID `gorm:"type:uuid;primary_key" json:"company_id"`
	AutoRejectEnabled        bool      `gorm:"default:false" json:"auto_reject_enabled"`
	AutoRejectThreshold      int       `gorm:"default:30" json:"auto_reject_threshold"`
	MinimumApplications      int       `gorm:"default:5" json:"minimum_applications"`
	SendRejectionEmail       bool      `gorm:"default:false" json:"send_rejection_email"`
	AutoAdvanceTopCandidates bool      `gorm:"default:false" json:"auto_advance_top_candidates"`
	TopCandidateThreshold    int       `gorm:"default:85" json:"top_candidate_threshold"`
	UpdatedAt                time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"updated_at"`
}

func (PipelineSettings) TableName() string {
	return "pipeline_settings"
}

type EmailStatus string

const (
	EmailStatusPending EmailStatus = "pending"
	EmailStatusSent    EmailStatus = "sent"
)

// EmailMessage is a row in the outbound email queue. This core only
// enqueues; delivery is an external concern.
type EmailMessage struct {
	ID        uuid.UUID   `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CompanyID uuid.UUID   `gorm:"type:uuid;index" json:"company_id"`
	To        string      `gorm:"type:text" json:"to"`
	Subject   string      `gorm:"type:text" json:"subject"`
	HTML      string      `gorm:"type:text" json:"html"`
	Status    EmailStatus `gorm:"type:text;not null;default:'pending'" json:"status"`
	Type      string      `gorm:"type:text" json:"type"`
	CreatedAt time.Time   `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (EmailMessage) TableName() string {
	return "email_queue"
}

// AuditLog is an append-only record of automated policy actions.
type AuditLog struct {
	ID        uuid.UUID      `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CompanyID uuid.UUID      `gorm:"type:uuid;index" json:"company_id"`
	Action    string         `gorm:"type:text" json:"action"`
	Detail    map[string]any `gorm:"type:jsonb;serializer:json" json:"detail"`
	CreatedAt time.Time      `gorm:"default:CURRENT_TIMESTAMP" json:"created_at"`
}

func (AuditLog) TableName() string {
	return "audit_logs"
}
