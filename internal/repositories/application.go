package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hireflow/ats-matching/internal/models"
)

type ApplicationRepository interface {
	Create(app *models.Application) error
	FindByID(id uuid.UUID) (*models.Application, error)
	FindByIDs(ids []uuid.UUID) ([]models.Application, error)
	FindPending(limit int) ([]models.Application, error)
	FindReviewable(companyID uuid.UUID) ([]models.Application, error)
	UpdateProcessingStatus(id uuid.UUID, status models.ProcessingStatus) error
	UpdateProcessingError(id uuid.UUID, errorMsg string) error
	UpdateEnrichment(id uuid.UUID, data *EnrichmentUpdateData) error
	UpdateStage(id uuid.UUID, status models.ApplicationStatus, stage models.ApplicationStage) error
	AutoReject(id uuid.UUID, threshold int, at time.Time) error
}

// EnrichmentUpdateData is the full set of enrichment outputs written when a
// pipeline run completes. Every field is written unconditionally so a re-run
// overwrites prior enrichment instead of accumulating state.
type EnrichmentUpdateData struct {
	MatchScore       int
	AIRecommendation string
	AISummary        *models.AISummary
	SkillsMatch      *models.SkillsMatch
	ExperienceMatch  *models.ExperienceMatch
}

type applicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) ApplicationRepository {
	return &applicationRepository{db: db}
}

func (r *applicationRepository) Create(app *models.Application) error {
	if err := r.db.Create(app).Error; err != nil {
		return fmt.Errorf("failed to create application: %w", err)
	}
	return nil
}

func (r *applicationRepository) FindByID(id uuid.UUID) (*models.Application, error) {
	var app models.Application
	if err := r.db.Where("id = ?", id).First(&app).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("application not found")
		}
		return nil, fmt.Errorf("failed to find application: %w", err)
	}
	return &app, nil
}

func (r *applicationRepository) FindByIDs(ids []uuid.UUID) ([]models.Application, error) {
	var apps []models.Application
	if err := r.db.Where("id IN ?", ids).Find(&apps).Error; err != nil {
		return nil, fmt.Errorf("failed to find applications: %w", err)
	}
	return apps, nil
}

func (r *applicationRepository) FindPending(limit int) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.
		Where("ai_processing_status = ?", models.ProcessingPending).
		Order("created_at ASC").
		Limit(limit).
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find pending applications: %w", err)
	}
	return apps, nil
}

func (r *applicationRepository) FindReviewable(companyID uuid.UUID) ([]models.Application, error) {
	var apps []models.Application
	err := r.db.
		Where("company_id = ? AND status IN ? AND match_score > 0",
			companyID,
			[]models.ApplicationStatus{models.ApplicationStatusApplied, models.ApplicationStatusUnderReview},
		).
		Order("created_at ASC").
		Find(&apps).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find reviewable applications: %w", err)
	}
	return apps, nil
}

func (r *applicationRepository) UpdateProcessingStatus(id uuid.UUID, status models.ProcessingStatus) error {
	result := r.db.Model(&models.Application{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"ai_processing_status": status,
			"updated_at":           time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update processing status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("application not found")
	}
	return nil
}

func (r *applicationRepository) UpdateProcessingError(id uuid.UUID, errorMsg string) error {
	result := r.db.Model(&models.Application{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"ai_processing_status": models.ProcessingError,
			"ai_processing_error":  errorMsg,
			"updated_at":           time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update processing error: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("application not found")
	}
	return nil
}

func (r *applicationRepository) UpdateEnrichment(id uuid.UUID, data *EnrichmentUpdateData) error {
	result := r.db.Model(&models.Application{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"match_score":          data.MatchScore,
			"ai_recommendation":    data.AIRecommendation,
			"ai_summary":           toJSON(data.AISummary),
			"skills_match":         toJSON(data.SkillsMatch),
			"experience_match":     toJSON(data.ExperienceMatch),
			"ai_processing_status": models.ProcessingCompleted,
			"ai_processing_error":  nil,
			"updated_at":           time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update enrichment: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("application not found")
	}
	return nil
}

func (r *applicationRepository) UpdateStage(id uuid.UUID, status models.ApplicationStatus, stage models.ApplicationStage) error {
	result := r.db.Model(&models.Application{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":     status,
			"stage":      stage,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update stage: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("application not found")
	}
	return nil
}

func (r *applicationRepository) AutoReject(id uuid.UUID, threshold int, at time.Time) error {
	result := r.db.Model(&models.Application{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":                  models.ApplicationStatusRejected,
			"stage":                   models.StageClosed,
			"auto_rejected":           true,
			"auto_rejected_threshold": threshold,
			"auto_rejected_at":        at,
			"updated_at":              time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to auto-reject application: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("application not found")
	}
	return nil
}
