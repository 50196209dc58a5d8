package repositories

import (
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hireflow/ats-matching/internal/models"
)

type CompanyRepository interface {
	GetSettings(companyID uuid.UUID) (*models.PipelineSettings, error)
	SaveSettings(settings *models.PipelineSettings) error
	EnqueueEmail(email *models.EmailMessage) error
	AppendAuditLog(entry *models.AuditLog) error
}

type companyRepository struct {
	db *gorm.DB
}

func NewCompanyRepository(db *gorm.DB) CompanyRepository {
	return &companyRepository{db: db}
}

// GetSettings returns the stored pipeline settings, or the defaults when the
// company has never saved any.
func (r *companyRepository) GetSettings(companyID uuid.UUID) (*models.PipelineSettings, error) {
	var settings models.PipelineSettings
	err := r.db.Where("company_id = ?", companyID).First(&settings).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return DefaultSettings(companyID), nil
		}
		return nil, fmt.Errorf("failed to get pipeline settings: %w", err)
	}
	return &settings, nil
}

func (r *companyRepository) SaveSettings(settings *models.PipelineSettings) error {
	if err := r.db.Save(settings).Error; err != nil {
		return fmt.Errorf("failed to save pipeline settings: %w", err)
	}
	return nil
}

func (r *companyRepository) EnqueueEmail(email *models.EmailMessage) error {
	if err := r.db.Create(email).Error; err != nil {
		return fmt.Errorf("failed to enqueue email: %w", err)
	}
	return nil
}

func (r *companyRepository) AppendAuditLog(entry *models.AuditLog) error {
	if err := r.db.Create(entry).Error; err != nil {
		return fmt.Errorf("failed to append audit log: %w", err)
	}
	return nil
}

// DefaultSettings is the policy applied before a company configures anything:
// automation disabled, minimum sample of 5 applications per job.
func DefaultSettings(companyID uuid.UUID) *models.PipelineSettings {
	return &models.PipelineSettings{
		CompanyID:                companyID,
		AutoRejectEnabled:        false,
		AutoRejectThreshold:      30,
		MinimumApplications:      5,
		SendRejectionEmail:       false,
		AutoAdvanceTopCandidates: false,
		TopCandidateThreshold:    85,
	}
}
