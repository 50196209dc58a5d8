package services

import (
	"context"
	"fmt"
	"strings"

	"hireflow/ats-matching/internal/models"
)

// EmbeddingService turns job, candidate and free-text records into vectors
// via the embedding model. It never persists anything; storage is the
// caller's concern.
type EmbeddingService interface {
	GenerateJobEmbedding(ctx context.Context, job *models.Job) ([]float32, error)
	GenerateCandidateEmbedding(ctx context.Context, candidate *models.Candidate) ([]float32, error)
	GenerateTextEmbedding(ctx context.Context, text string) ([]float32, error)
}

type embeddingService struct {
	gemini GeminiService
}

func NewEmbeddingService(gemini GeminiService) EmbeddingService {
	return &embeddingService{gemini: gemini}
}

func (e *embeddingService) GenerateJobEmbedding(ctx context.Context, job *models.Job) ([]float32, error) {
	return e.GenerateTextEmbedding(ctx, CanonicalJobText(job))
}

func (e *embeddingService) GenerateCandidateEmbedding(ctx context.Context, candidate *models.Candidate) ([]float32, error) {
	return e.GenerateTextEmbedding(ctx, CanonicalCandidateText(candidate))
}

func (e *embeddingService) GenerateTextEmbedding(ctx context.Context, text string) ([]float32, error) {
	vector, err := e.gemini.GenerateEmbedding(ctx, text)
	if err != nil {
		return nil, &EmbeddingServiceError{Err: err}
	}
	return vector, nil
}

// CanonicalJobText serializes a job into the canonical prompt used for
// embedding. The field order is fixed so identical jobs always produce
// identical text.
func CanonicalJobText(job *models.Job) string {
	lines := []string{
		job.Title,
		job.Department,
		job.ExperienceLevel,
		strings.Join(job.RequiredSkills, ", "),
		job.Description,
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// CanonicalCandidateText serializes a candidate profile into the canonical
// prompt used for embedding: skills, summary, then one line per experience
// and education entry.
func CanonicalCandidateText(candidate *models.Candidate) string {
	var b strings.Builder

	b.WriteString(strings.Join(candidate.Skills.All(), ", "))
	b.WriteString("\n")
	b.WriteString(candidate.Summary)
	b.WriteString("\n")

	for _, exp := range candidate.Experience {
		b.WriteString(fmt.Sprintf("%s at %s: %s\n", exp.Title, exp.Company, exp.Description))
	}
	for _, edu := range candidate.Education {
		b.WriteString(fmt.Sprintf("%s in %s from %s\n", edu.Degree, edu.Field, edu.Institution))
	}

	return strings.TrimSpace(b.String())
}
