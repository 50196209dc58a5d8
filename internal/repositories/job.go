package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hireflow/ats-matching/internal/models"
)

type JobRepository interface {
	Create(job *models.Job) error
	FindByID(id uuid.UUID) (*models.Job, error)
	FindOpenWithEmbeddings(companyID *uuid.UUID) ([]models.Job, error)
	FindMissingEmbeddings(limit int) ([]models.Job, error)
	MarkEmbedded(id uuid.UUID, at time.Time) error
}

type jobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) JobRepository {
	return &jobRepository{db: db}
}

func (r *jobRepository) Create(job *models.Job) error {
	if err := r.db.Create(job).Error; err != nil {
		return fmt.Errorf("failed to create job: %w", err)
	}
	return nil
}

func (r *jobRepository) FindByID(id uuid.UUID) (*models.Job, error) {
	var job models.Job
	if err := r.db.Where("id = ?", id).First(&job).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("job not found: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("failed to find job: %w", err)
	}
	return &job, nil
}

func (r *jobRepository) FindOpenWithEmbeddings(companyID *uuid.UUID) ([]models.Job, error) {
	query := r.db.Where("status = ? AND has_embedding = ?", models.JobStatusOpen, true)
	if companyID != nil {
		query = query.Where("company_id = ?", *companyID)
	}

	var jobs []models.Job
	if err := query.Order("created_at ASC").Find(&jobs).Error; err != nil {
		return nil, fmt.Errorf("failed to find open jobs with embeddings: %w", err)
	}
	return jobs, nil
}

func (r *jobRepository) FindMissingEmbeddings(limit int) ([]models.Job, error) {
	var jobs []models.Job
	err := r.db.
		Where("has_embedding = ?", false).
		Order("created_at ASC").
		Limit(limit).
		Find(&jobs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find jobs missing embeddings: %w", err)
	}
	return jobs, nil
}

func (r *jobRepository) MarkEmbedded(id uuid.UUID, at time.Time) error {
	result := r.db.Model(&models.Job{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"has_embedding":        true,
			"embedding_updated_at": at,
			"updated_at":           time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to mark job embedded: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("job not found")
	}
	return nil
}
