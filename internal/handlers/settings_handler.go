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

type SettingsHandler struct {
	companyRepo   repositories.CompanyRepository
	policyService services.PolicyService
}

func NewSettingsHandler(
	companyRepo repositories.CompanyRepository,
	policyService services.PolicyService,
) *SettingsHandler {
	return &SettingsHandler{
		companyRepo:   companyRepo,
		policyService: policyService,
	}
}

// HandleUpdate handles PUT /companies/:id/settings/pipeline. Every settings
// write is a trigger input to the policy engine; the response carries the
// aggregate re-evaluation impact.
func (h *SettingsHandler) HandleUpdate(c *fiber.Ctx) error {
	companyID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid company ID format",
		})
	}

	var req models.UpdateSettingsRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid request payload",
		})
	}

	if req.AutoRejectThreshold < 0 || req.AutoRejectThreshold > 100 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "auto_reject_threshold must be between 0 and 100",
		})
	}
	if req.TopCandidateThreshold < 0 || req.TopCandidateThreshold > 100 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "top_candidate_threshold must be between 0 and 100",
		})
	}
	if req.MinimumApplications < 1 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "minimum_applications must be at least 1",
		})
	}

	before, err := h.companyRepo.GetSettings(companyID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load current settings",
		})
	}

	after := &models.PipelineSettings{
		CompanyID:                companyID,
		AutoRejectEnabled:        req.AutoRejectEnabled,
		AutoRejectThreshold:      req.AutoRejectThreshold,
		MinimumApplications:      req.MinimumApplications,
		SendRejectionEmail:       req.SendRejectionEmail,
		AutoAdvanceTopCandidates: req.AutoAdvanceTopCandidates,
		TopCandidateThreshold:    req.TopCandidateThreshold,
		UpdatedAt:                time.Now(),
	}

	if err := h.companyRepo.SaveSettings(after); err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to save settings",
		})
	}

	summary, err := h.policyService.ReevaluatePipelineSettings(c.Context(), companyID, before, after)
	if err != nil {
		// Settings are saved; the bulk job is best effort
		log.Printf("⚠️  Re-evaluation after settings change failed for company %s: %v\n", companyID, err)
	}

	return c.JSON(fiber.Map{
		"settings":     after,
		"reevaluation": summary,
	})
}
