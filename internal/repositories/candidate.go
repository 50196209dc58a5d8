package repositories

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"hireflow/ats-matching/internal/models"
)

type CandidateRepository interface {
	Create(candidate *models.Candidate) error
	FindByID(id uuid.UUID) (*models.Candidate, error)
	FindWithEmbeddings(companyID uuid.UUID) ([]models.Candidate, error)
	FindMissingEmbeddings(limit int) ([]models.Candidate, error)
	UpdateProfile(id uuid.UUID, data *CandidateProfileData) error
	MarkEmbedded(id uuid.UUID, at time.Time) error
}

// CandidateProfileData carries parsed-profile fields onto a candidate.
// Nil fields are left untouched (merge semantics: new fields overwrite,
// unspecified existing fields are preserved).
type CandidateProfileData struct {
	Skills               *models.CandidateSkills
	Experience           []models.ExperienceEntry
	Education            []models.EducationEntry
	Summary              *string
	TotalExperienceYears *float64
	CareerLevel          *models.CareerLevel
}

type candidateRepository struct {
	db *gorm.DB
}

func NewCandidateRepository(db *gorm.DB) CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) Create(candidate *models.Candidate) error {
	if err := r.db.Create(candidate).Error; err != nil {
		return fmt.Errorf("failed to create candidate: %w", err)
	}
	return nil
}

func (r *candidateRepository) FindByID(id uuid.UUID) (*models.Candidate, error) {
	var candidate models.Candidate
	if err := r.db.Where("id = ?", id).First(&candidate).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("candidate not found")
		}
		return nil, fmt.Errorf("failed to find candidate: %w", err)
	}
	return &candidate, nil
}

func (r *candidateRepository) FindWithEmbeddings(companyID uuid.UUID) ([]models.Candidate, error) {
	var candidates []models.Candidate
	err := r.db.
		Where("company_id = ? AND has_embedding = ?", companyID, true).
		Order("created_at ASC").
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find candidates with embeddings: %w", err)
	}
	return candidates, nil
}

func (r *candidateRepository) FindMissingEmbeddings(limit int) ([]models.Candidate, error) {
	var candidates []models.Candidate
	err := r.db.
		Where("has_embedding = ?", false).
		Order("created_at ASC").
		Limit(limit).
		Find(&candidates).Error
	if err != nil {
		return nil, fmt.Errorf("failed to find candidates missing embeddings: %w", err)
	}
	return candidates, nil
}

func (r *candidateRepository) UpdateProfile(id uuid.UUID, data *CandidateProfileData) error {
	updates := map[string]interface{}{
		"updated_at": time.Now(),
	}

	if data.Skills != nil {
		updates["skills"] = toJSON(*data.Skills)
	}
	if data.Experience != nil {
		updates["experience"] = toJSON(data.Experience)
	}
	if data.Education != nil {
		updates["education"] = toJSON(data.Education)
	}
	if data.Summary != nil {
		updates["summary"] = *data.Summary
	}
	if data.TotalExperienceYears != nil {
		updates["total_experience_years"] = *data.TotalExperienceYears
	}
	if data.CareerLevel != nil {
		updates["career_level"] = *data.CareerLevel
	}

	result := r.db.Model(&models.Candidate{}).
		Where("id = ?", id).
		Updates(updates)

	if result.Error != nil {
		return fmt.Errorf("failed to update candidate profile: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("candidate not found")
	}
	return nil
}

func (r *candidateRepository) MarkEmbedded(id uuid.UUID, at time.Time) error {
	result := r.db.Model(&models.Candidate{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"has_embedding":        true,
			"embedding_updated_at": at,
			"updated_at":           time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to mark candidate embedded: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("candidate not found")
	}
	return nil
}
