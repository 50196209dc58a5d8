package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hireflow/ats-matching/internal/models"
	"hireflow/ats-matching/internal/repositories"
	"hireflow/ats-matching/internal/services"
)

type ApplicationHandler struct {
	appRepo       repositories.ApplicationRepository
	candidateRepo repositories.CandidateRepository
	jobRepo       repositories.JobRepository
	worker        services.Worker
}

func NewApplicationHandler(
	appRepo repositories.ApplicationRepository,
	candidateRepo repositories.CandidateRepository,
	jobRepo repositories.JobRepository,
	worker services.Worker,
) *ApplicationHandler {
	return &ApplicationHandler{
		appRepo:       appRepo,
		candidateRepo: candidateRepo,
		jobRepo:       jobRepo,
		worker:        worker,
	}
}

// HandleCreate handles POST /applications: a candidate applying is the
// upload trigger that starts enrichment.
func (h *ApplicationHandler) HandleCreate(c *fiber.Ctx) error {
	var req models.CreateApplicationRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.ResumeURL == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "resume_url is required",
		})
	}

	candidateID, err := uuid.Parse(req.CandidateID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid candidate_id format",
		})
	}

	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job_id format",
		})
	}

	companyID, err := uuid.Parse(req.CompanyID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid company_id format",
		})
	}

	if _, err := h.candidateRepo.FindByID(candidateID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Candidate not found",
		})
	}

	if _, err := h.jobRepo.FindByID(jobID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job not found",
		})
	}

	app := &models.Application{
		ID:                 uuid.New(),
		CandidateID:        candidateID,
		JobID:              jobID,
		CompanyID:          companyID,
		ResumeURL:          req.ResumeURL,
		Status:             models.ApplicationStatusApplied,
		Stage:              models.StageScreening,
		AIProcessingStatus: models.ProcessingPending,
		CreatedAt:          time.Now(),
		UpdatedAt:          time.Now(),
	}

	if err := h.appRepo.Create(app); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create application",
		})
	}

	h.worker.EnqueueApplication(app.ID)

	return c.Status(fiber.StatusAccepted).JSON(models.ApplicationResponse{
		ID:               app.ID.String(),
		Status:           string(app.Status),
		Stage:            string(app.Stage),
		ProcessingStatus: string(app.AIProcessingStatus),
	})
}

// HandleProcess handles POST /applications/:id/process: the manual
// re-trigger used to recover a failed enrichment.
func (h *ApplicationHandler) HandleProcess(c *fiber.Ctx) error {
	appID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid application ID format",
		})
	}

	if _, err := h.appRepo.FindByID(appID); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Application not found",
		})
	}

	h.worker.EnqueueApplication(appID)

	return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
		"id":     appID.String(),
		"status": "queued",
	})
}

// HandleGet handles GET /applications/:id.
func (h *ApplicationHandler) HandleGet(c *fiber.Ctx) error {
	appID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid application ID format",
		})
	}

	app, err := h.appRepo.FindByID(appID)
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Application not found",
		})
	}

	response := models.ApplicationResponse{
		ID:               app.ID.String(),
		Status:           string(app.Status),
		Stage:            string(app.Stage),
		ProcessingStatus: string(app.AIProcessingStatus),
		MatchScore:       app.MatchScore,
	}

	if app.AIProcessingStatus == models.ProcessingCompleted {
		response.AIRecommendation = app.AIRecommendation
		response.AISummary = app.AISummary
		response.SkillsMatch = app.SkillsMatch
		response.ExperienceMatch = app.ExperienceMatch
	}

	if app.AIProcessingStatus == models.ProcessingError {
		response.ProcessingError = app.AIProcessingError
	}

	return c.JSON(response)
}
