package handlers

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hireflow/ats-matching/internal/models"
	"hireflow/ats-matching/internal/repositories"
	"hireflow/ats-matching/internal/services"
)

type JobHandler struct {
	jobRepo     repositories.JobRepository
	embedder    services.EmbeddingService
	vectorStore services.VectorStore
}

func NewJobHandler(
	jobRepo repositories.JobRepository,
	embedder services.EmbeddingService,
	vectorStore services.VectorStore,
) *JobHandler {
	return &JobHandler{
		jobRepo:     jobRepo,
		embedder:    embedder,
		vectorStore: vectorStore,
	}
}

// HandleCreate handles POST /jobs. The job embedding is generated at
// creation time so the posting is immediately searchable.
func (h *JobHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateJobRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.Title == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "title is required",
		})
	}

	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid company_id format",
		})
	}

	job := &models.Job{
		ID:              uuid.New(),
		CompanyID:       companyID,
		Title:           req.Title,
		Description:     req.Description,
		RequiredSkills:  req.RequiredSkills,
		Department:      req.Department,
		ExperienceLevel: req.ExperienceLevel,
		Status:          models.JobStatusOpen,
		CreatedAt:       time.Now(),
		UpdatedAt:       time.Now(),
	}

	if err := h.jobRepo.Create(job); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create job",
		})
	}

	// Embedding failure does not block posting creation; the backfill script
	// or the next pipeline run repairs it.
	vector, err := h.embedder.GenerateJobEmbedding(c.Context(), job)
	if err != nil {
		log.Printf("⚠️  Failed to generate embedding for job %s: %v\n", job.ID, err)
	} else if err := h.vectorStore.UpsertEmbedding(c.Context(), services.EntityTypeJob, job.ID, job.CompanyID, vector); err != nil {
		log.Printf("⚠️  Failed to store embedding for job %s: %v\n", job.ID, err)
	} else if err := h.jobRepo.MarkEmbedded(job.ID, time.Now()); err != nil {
		log.Printf("⚠️  Failed to mark job %s embedded: %v\n", job.ID, err)
	}

	return c.Status(fiber.StatusCreated).JSON(job)
}
