package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"hireflow/ats-matching/internal/services"
)

type SearchHandler struct {
	matchService services.MatchService
	vectorStore  services.VectorStore
}

func NewSearchHandler(matchService services.MatchService, vectorStore services.VectorStore) *SearchHandler {
	return &SearchHandler{
		matchService: matchService,
		vectorStore:  vectorStore,
	}
}

// HandleSimilarCandidates handles GET /jobs/:id/similar-candidates: the
// talent-pool ranking for one job.
func (h *SearchHandler) HandleSimilarCandidates(c *fiber.Ctx) error {
	jobID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid job ID format",
		})
	}

	companyID, err := uuid.Parse(c.Query("company_id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "company_id query parameter is required",
		})
	}

	limit := c.QueryInt("limit", services.DefaultSearchLimit)
	minScore := c.QueryInt("min_score", services.DefaultMinScore)

	jobVector, err := h.vectorStore.GetEmbedding(c.Context(), services.EntityTypeJob, jobID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load job embedding",
		})
	}
	if jobVector == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Job has no embedding yet",
		})
	}

	results, err := h.matchService.FindSimilarCandidates(c.Context(), jobVector, companyID, limit, minScore)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"job_id":  jobID.String(),
		"results": results,
	})
}

// HandleSimilarJobs handles GET /candidates/:id/similar-jobs: open-role
// recommendations for one candidate.
func (h *SearchHandler) HandleSimilarJobs(c *fiber.Ctx) error {
	candidateID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid candidate ID format",
		})
	}

	limit := c.QueryInt("limit", services.DefaultSearchLimit)
	minScore := c.QueryInt("min_score", services.DefaultMinScore)

	var companyID *uuid.UUID
	if raw := c.Query("company_id"); raw != "" {
		parsed, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid company_id format",
			})
		}
		companyID = &parsed
	}

	candidateVector, err := h.vectorStore.GetEmbedding(c.Context(), services.EntityTypeCandidate, candidateID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to load candidate embedding",
		})
	}
	if candidateVector == nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Candidate has no embedding yet",
		})
	}

	results, err := h.matchService.FindSimilarJobs(c.Context(), candidateVector, limit, minScore, companyID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.JSON(fiber.Map{
		"candidate_id": candidateID.String(),
		"results":      results,
	})
}
