package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"hireflow/ats-matching/internal/models"
	"hireflow/ats-matching/internal/repositories"
)

// MinResumeChars is the minimum amount of extracted text worth parsing.
const MinResumeChars = 100

// EnrichmentPipeline runs the staged enrichment workflow for one
// application: download, extract, parse, embed, score, summarize, persist.
// Stages run strictly in sequence; any failure is written onto the
// application and rethrown. Re-invoking for the same application overwrites
// all prior enrichment output, so the operation is idempotent. Two
// overlapping runs for the same application race last-writer-wins; there is
// no fencing.
type EnrichmentPipeline interface {
	ProcessApplication(ctx context.Context, applicationID uuid.UUID) error
}

type enrichmentPipeline struct {
	appRepo       repositories.ApplicationRepository
	candidateRepo repositories.CandidateRepository
	jobRepo       repositories.JobRepository
	companyRepo   repositories.CompanyRepository
	blobStore     BlobStore
	extractor     TextExtractor
	parser        ResumeParser
	embedder      EmbeddingService
	scorer        JobScorer
	summarizer    Summarizer
	vectorStore   VectorStore
}

func NewEnrichmentPipeline(
	appRepo repositories.ApplicationRepository,
	candidateRepo repositories.CandidateRepository,
	jobRepo repositories.JobRepository,
	companyRepo repositories.CompanyRepository,
	blobStore BlobStore,
	extractor TextExtractor,
	parser ResumeParser,
	embedder EmbeddingService,
	scorer JobScorer,
	summarizer Summarizer,
	vectorStore VectorStore,
) EnrichmentPipeline {
	return &enrichmentPipeline{
		appRepo:       appRepo,
		candidateRepo: candidateRepo,
		jobRepo:       jobRepo,
		companyRepo:   companyRepo,
		blobStore:     blobStore,
		extractor:     extractor,
		parser:        parser,
		embedder:      embedder,
		scorer:        scorer,
		summarizer:    summarizer,
		vectorStore:   vectorStore,
	}
}

// ProcessApplication implements EnrichmentPipeline.
func (p *enrichmentPipeline) ProcessApplication(ctx context.Context, applicationID uuid.UUID) error {
	log.Printf("🔄 Starting enrichment for application %s\n", applicationID)

	app, err := p.appRepo.FindByID(applicationID)
	if err != nil {
		return fmt.Errorf("failed to load application: %w", err)
	}

	// Stage 1: download resume bytes
	if err := p.appRepo.UpdateProcessingStatus(app.ID, models.ProcessingDownloading); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	resumeData, err := p.blobStore.Download(ctx, app.ResumeURL)
	if err != nil {
		return p.fail(app.ID, models.ProcessingDownloading, err)
	}

	// Stage 2: extract text, gate on minimum content before any parsing
	if err := p.appRepo.UpdateProcessingStatus(app.ID, models.ProcessingParsing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	resumeText, err := p.extractor.ExtractText(resumeData)
	if err != nil {
		return p.fail(app.ID, models.ProcessingParsing, err)
	}
	if len(resumeText) < MinResumeChars {
		return p.fail(app.ID, models.ProcessingParsing, &ExtractionError{Chars: len(resumeText), MinChars: MinResumeChars})
	}

	// Stage 3: parse into a structured profile
	parsed, err := p.parser.ParseResume(ctx, resumeText)
	if err != nil {
		return p.fail(app.ID, models.ProcessingParsing, err)
	}

	// Stage 4: persist the profile onto the candidate (merge semantics)
	candidate, err := p.candidateRepo.FindByID(app.CandidateID)
	if err != nil {
		return p.fail(app.ID, models.ProcessingParsing, err)
	}

	profileData := &repositories.CandidateProfileData{
		Skills:               &parsed.Skills,
		Experience:           parsed.Experience,
		Education:            parsed.Education,
		Summary:              &parsed.Summary,
		TotalExperienceYears: &parsed.TotalExperienceYears,
		CareerLevel:          &parsed.CareerLevel,
	}
	if err := p.candidateRepo.UpdateProfile(candidate.ID, profileData); err != nil {
		return p.fail(app.ID, models.ProcessingParsing, err)
	}
	parsed.ApplyTo(candidate)

	// Stage 5: regenerate the candidate embedding from the fresh profile.
	// The vector is held in memory here and stored only once the whole run
	// succeeds (atomic-at-end policy).
	if err := p.appRepo.UpdateProcessingStatus(app.ID, models.ProcessingEmbedding); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	candidateVector, err := p.embedder.GenerateCandidateEmbedding(ctx, candidate)
	if err != nil {
		return p.fail(app.ID, models.ProcessingEmbedding, err)
	}

	// Stage 6: load the target job
	if err := p.appRepo.UpdateProcessingStatus(app.ID, models.ProcessingScoring); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	job, err := p.jobRepo.FindByID(app.JobID)
	if err != nil {
		// A missing job is terminal for the application; a transient store
		// failure is an ordinary stage failure worth re-triggering.
		if errors.Is(err, repositories.ErrNotFound) {
			return p.fail(app.ID, models.ProcessingScoring, &JobNotFoundError{JobID: app.JobID.String()})
		}
		return p.fail(app.ID, models.ProcessingScoring, err)
	}

	jobVector, err := p.jobVector(ctx, job)
	if err != nil {
		return p.fail(app.ID, models.ProcessingScoring, err)
	}

	// Stage 7: score the candidate against the job
	match, err := p.scorer.Score(ctx, candidate, job, jobVector, candidateVector)
	if err != nil {
		return p.fail(app.ID, models.ProcessingScoring, err)
	}

	// Stage 8: generate the AI summary and recommendation
	if err := p.appRepo.UpdateProcessingStatus(app.ID, models.ProcessingSummarizing); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	summary, err := p.summarizer.Summarize(ctx, candidate, job, match)
	if err != nil {
		return p.fail(app.ID, models.ProcessingSummarizing, err)
	}

	// Stage 9: persist everything
	if err := p.appRepo.UpdateProcessingStatus(app.ID, models.ProcessingPersisting); err != nil {
		return fmt.Errorf("failed to update status: %w", err)
	}

	now := time.Now()
	if err := p.vectorStore.UpsertEmbedding(ctx, EntityTypeCandidate, candidate.ID, candidate.CompanyID, candidateVector); err != nil {
		return p.fail(app.ID, models.ProcessingPersisting, err)
	}
	if err := p.candidateRepo.MarkEmbedded(candidate.ID, now); err != nil {
		return p.fail(app.ID, models.ProcessingPersisting, err)
	}

	enrichment := &repositories.EnrichmentUpdateData{
		MatchScore:       match.MatchScore,
		AIRecommendation: summary.Recommendation,
		AISummary:        &summary.Summary,
		SkillsMatch:      match.SkillsMatch,
		ExperienceMatch:  match.ExperienceMatch,
	}
	if err := p.appRepo.UpdateEnrichment(app.ID, enrichment); err != nil {
		return p.fail(app.ID, models.ProcessingPersisting, err)
	}

	p.maybeAdvance(app, match.MatchScore)

	log.Printf("✅ Enrichment completed for application %s (score %d)\n", app.ID, match.MatchScore)
	return nil
}

// jobVector loads the job's stored embedding, generating and storing it when
// the job was created before embeddings existed.
func (p *enrichmentPipeline) jobVector(ctx context.Context, job *models.Job) ([]float32, error) {
	vector, err := p.vectorStore.GetEmbedding(ctx, EntityTypeJob, job.ID)
	if err != nil {
		return nil, err
	}
	if vector != nil {
		return vector, nil
	}

	vector, err = p.embedder.GenerateJobEmbedding(ctx, job)
	if err != nil {
		return nil, err
	}
	if err := p.vectorStore.UpsertEmbedding(ctx, EntityTypeJob, job.ID, job.CompanyID, vector); err != nil {
		return nil, err
	}
	if err := p.jobRepo.MarkEmbedded(job.ID, time.Now()); err != nil {
		return nil, err
	}

	return vector, nil
}

// maybeAdvance moves a freshly scored application to the shortlist when the
// company opted into auto-advance. Best effort: a failure here does not undo
// a completed enrichment.
func (p *enrichmentPipeline) maybeAdvance(app *models.Application, matchScore int) {
	settings, err := p.companyRepo.GetSettings(app.CompanyID)
	if err != nil {
		log.Printf("⚠️  Failed to load settings for auto-advance: %v\n", err)
		return
	}

	if !settings.AutoAdvanceTopCandidates || matchScore < settings.TopCandidateThreshold {
		return
	}

	if err := p.appRepo.UpdateStage(app.ID, models.ApplicationStatusShortlisted, models.StageShortlist); err != nil {
		log.Printf("⚠️  Failed to auto-advance application %s: %v\n", app.ID, err)
		return
	}

	log.Printf("⭐ Application %s auto-advanced to shortlist (score %d >= %d)\n", app.ID, matchScore, settings.TopCandidateThreshold)
}

// fail records the stage failure on the application (for recruiter
// visibility) and returns it (for operator visibility).
func (p *enrichmentPipeline) fail(appID uuid.UUID, stage models.ProcessingStatus, err error) error {
	stageErr := &PipelineStageError{Stage: stage, Err: err}
	if uerr := p.appRepo.UpdateProcessingError(appID, stageErr.Error()); uerr != nil {
		log.Printf("⚠️  Failed to record processing error for %s: %v\n", appID, uerr)
	}
	return stageErr
}
