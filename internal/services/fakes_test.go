package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"hireflow/ats-matching/internal/models"
	"hireflow/ats-matching/internal/repositories"
)

// In-memory fakes for the repository and collaborator interfaces, so the
// pipeline, matcher and policy engine can be exercised without Postgres,
// Qdrant or Gemini.

type fakeCandidateRepo struct {
	candidates map[uuid.UUID]*models.Candidate
	listOrder  []uuid.UUID
	err        error

	profileUpdates int
	embeddedIDs    []uuid.UUID
}

func newFakeCandidateRepo(candidates ...*models.Candidate) *fakeCandidateRepo {
	repo := &fakeCandidateRepo{candidates: make(map[uuid.UUID]*models.Candidate)}
	for _, c := range candidates {
		repo.candidates[c.ID] = c
		repo.listOrder = append(repo.listOrder, c.ID)
	}
	return repo
}

func (r *fakeCandidateRepo) Create(candidate *models.Candidate) error {
	r.candidates[candidate.ID] = candidate
	r.listOrder = append(r.listOrder, candidate.ID)
	return nil
}

func (r *fakeCandidateRepo) FindByID(id uuid.UUID) (*models.Candidate, error) {
	if r.err != nil {
		return nil, r.err
	}
	candidate, ok := r.candidates[id]
	if !ok {
		return nil, errors.New("candidate not found")
	}
	return candidate, nil
}

func (r *fakeCandidateRepo) FindWithEmbeddings(companyID uuid.UUID) ([]models.Candidate, error) {
	if r.err != nil {
		return nil, r.err
	}
	var result []models.Candidate
	for _, id := range r.listOrder {
		c := r.candidates[id]
		if c.CompanyID == companyID && c.HasEmbedding {
			result = append(result, *c)
		}
	}
	return result, nil
}

func (r *fakeCandidateRepo) FindMissingEmbeddings(limit int) ([]models.Candidate, error) {
	var result []models.Candidate
	for _, id := range r.listOrder {
		if !r.candidates[id].HasEmbedding && len(result) < limit {
			result = append(result, *r.candidates[id])
		}
	}
	return result, nil
}

func (r *fakeCandidateRepo) UpdateProfile(id uuid.UUID, data *repositories.CandidateProfileData) error {
	candidate, ok := r.candidates[id]
	if !ok {
		return errors.New("candidate not found")
	}
	r.profileUpdates++
	if data.Skills != nil {
		candidate.Skills = *data.Skills
	}
	if data.Experience != nil {
		candidate.Experience = data.Experience
	}
	if data.Education != nil {
		candidate.Education = data.Education
	}
	if data.Summary != nil {
		candidate.Summary = *data.Summary
	}
	if data.TotalExperienceYears != nil {
		candidate.TotalExperienceYears = *data.TotalExperienceYears
	}
	if data.CareerLevel != nil {
		candidate.CareerLevel = *data.CareerLevel
	}
	return nil
}

func (r *fakeCandidateRepo) MarkEmbedded(id uuid.UUID, at time.Time) error {
	candidate, ok := r.candidates[id]
	if !ok {
		return errors.New("candidate not found")
	}
	candidate.HasEmbedding = true
	candidate.EmbeddingUpdatedAt = &at
	r.embeddedIDs = append(r.embeddedIDs, id)
	return nil
}

type fakeJobRepo struct {
	jobs      map[uuid.UUID]*models.Job
	listOrder []uuid.UUID
	err       error
}

func newFakeJobRepo(jobs ...*models.Job) *fakeJobRepo {
	repo := &fakeJobRepo{jobs: make(map[uuid.UUID]*models.Job)}
	for _, j := range jobs {
		repo.jobs[j.ID] = j
		repo.listOrder = append(repo.listOrder, j.ID)
	}
	return repo
}

func (r *fakeJobRepo) Create(job *models.Job) error {
	r.jobs[job.ID] = job
	r.listOrder = append(r.listOrder, job.ID)
	return nil
}

func (r *fakeJobRepo) FindByID(id uuid.UUID) (*models.Job, error) {
	if r.err != nil {
		return nil, r.err
	}
	job, ok := r.jobs[id]
	if !ok {
		return nil, fmt.Errorf("job not found: %w", repositories.ErrNotFound)
	}
	return job, nil
}

func (r *fakeJobRepo) FindOpenWithEmbeddings(companyID *uuid.UUID) ([]models.Job, error) {
	if r.err != nil {
		return nil, r.err
	}
	var result []models.Job
	for _, id := range r.listOrder {
		j := r.jobs[id]
		if j.Status != models.JobStatusOpen || !j.HasEmbedding {
			continue
		}
		if companyID != nil && j.CompanyID != *companyID {
			continue
		}
		result = append(result, *j)
	}
	return result, nil
}

func (r *fakeJobRepo) FindMissingEmbeddings(limit int) ([]models.Job, error) {
	var result []models.Job
	for _, id := range r.listOrder {
		if !r.jobs[id].HasEmbedding && len(result) < limit {
			result = append(result, *r.jobs[id])
		}
	}
	return result, nil
}

func (r *fakeJobRepo) MarkEmbedded(id uuid.UUID, at time.Time) error {
	job, ok := r.jobs[id]
	if !ok {
		return errors.New("job not found")
	}
	job.HasEmbedding = true
	job.EmbeddingUpdatedAt = &at
	return nil
}

type fakeApplicationRepo struct {
	apps      map[uuid.UUID]*models.Application
	listOrder []uuid.UUID
	err       error

	statusHistory  []models.ProcessingStatus
	findByIDsCalls [][]uuid.UUID
}

func newFakeApplicationRepo(apps ...*models.Application) *fakeApplicationRepo {
	repo := &fakeApplicationRepo{apps: make(map[uuid.UUID]*models.Application)}
	for _, a := range apps {
		repo.apps[a.ID] = a
		repo.listOrder = append(repo.listOrder, a.ID)
	}
	return repo
}

func (r *fakeApplicationRepo) Create(app *models.Application) error {
	r.apps[app.ID] = app
	r.listOrder = append(r.listOrder, app.ID)
	return nil
}

func (r *fakeApplicationRepo) FindByID(id uuid.UUID) (*models.Application, error) {
	if r.err != nil {
		return nil, r.err
	}
	app, ok := r.apps[id]
	if !ok {
		return nil, errors.New("application not found")
	}
	copied := *app
	return &copied, nil
}

func (r *fakeApplicationRepo) FindByIDs(ids []uuid.UUID) ([]models.Application, error) {
	if r.err != nil {
		return nil, r.err
	}
	r.findByIDsCalls = append(r.findByIDsCalls, ids)
	var result []models.Application
	for _, id := range ids {
		if app, ok := r.apps[id]; ok {
			result = append(result, *app)
		}
	}
	return result, nil
}

func (r *fakeApplicationRepo) FindPending(limit int) ([]models.Application, error) {
	var result []models.Application
	for _, id := range r.listOrder {
		if r.apps[id].AIProcessingStatus == models.ProcessingPending && len(result) < limit {
			result = append(result, *r.apps[id])
		}
	}
	return result, nil
}

func (r *fakeApplicationRepo) FindReviewable(companyID uuid.UUID) ([]models.Application, error) {
	if r.err != nil {
		return nil, r.err
	}
	var result []models.Application
	for _, id := range r.listOrder {
		app := r.apps[id]
		if app.CompanyID != companyID || app.MatchScore == 0 {
			continue
		}
		if app.Status != models.ApplicationStatusApplied && app.Status != models.ApplicationStatusUnderReview {
			continue
		}
		result = append(result, *app)
	}
	return result, nil
}

func (r *fakeApplicationRepo) UpdateProcessingStatus(id uuid.UUID, status models.ProcessingStatus) error {
	app, ok := r.apps[id]
	if !ok {
		return errors.New("application not found")
	}
	app.AIProcessingStatus = status
	r.statusHistory = append(r.statusHistory, status)
	return nil
}

func (r *fakeApplicationRepo) UpdateProcessingError(id uuid.UUID, errorMsg string) error {
	app, ok := r.apps[id]
	if !ok {
		return errors.New("application not found")
	}
	app.AIProcessingStatus = models.ProcessingError
	app.AIProcessingError = &errorMsg
	r.statusHistory = append(r.statusHistory, models.ProcessingError)
	return nil
}

func (r *fakeApplicationRepo) UpdateEnrichment(id uuid.UUID, data *repositories.EnrichmentUpdateData) error {
	app, ok := r.apps[id]
	if !ok {
		return errors.New("application not found")
	}
	app.MatchScore = data.MatchScore
	app.AIRecommendation = data.AIRecommendation
	app.AISummary = data.AISummary
	app.SkillsMatch = data.SkillsMatch
	app.ExperienceMatch = data.ExperienceMatch
	app.AIProcessingStatus = models.ProcessingCompleted
	app.AIProcessingError = nil
	r.statusHistory = append(r.statusHistory, models.ProcessingCompleted)
	return nil
}

func (r *fakeApplicationRepo) UpdateStage(id uuid.UUID, status models.ApplicationStatus, stage models.ApplicationStage) error {
	app, ok := r.apps[id]
	if !ok {
		return errors.New("application not found")
	}
	app.Status = status
	app.Stage = stage
	return nil
}

func (r *fakeApplicationRepo) AutoReject(id uuid.UUID, threshold int, at time.Time) error {
	app, ok := r.apps[id]
	if !ok {
		return errors.New("application not found")
	}
	app.Status = models.ApplicationStatusRejected
	app.Stage = models.StageClosed
	app.AutoRejected = true
	app.AutoRejectedThreshold = &threshold
	app.AutoRejectedAt = &at
	return nil
}

type fakeCompanyRepo struct {
	settings map[uuid.UUID]*models.PipelineSettings
	emails   []*models.EmailMessage
	audits   []*models.AuditLog
}

func newFakeCompanyRepo() *fakeCompanyRepo {
	return &fakeCompanyRepo{settings: make(map[uuid.UUID]*models.PipelineSettings)}
}

func (r *fakeCompanyRepo) GetSettings(companyID uuid.UUID) (*models.PipelineSettings, error) {
	if s, ok := r.settings[companyID]; ok {
		return s, nil
	}
	return repositories.DefaultSettings(companyID), nil
}

func (r *fakeCompanyRepo) SaveSettings(settings *models.PipelineSettings) error {
	r.settings[settings.CompanyID] = settings
	return nil
}

func (r *fakeCompanyRepo) EnqueueEmail(email *models.EmailMessage) error {
	r.emails = append(r.emails, email)
	return nil
}

func (r *fakeCompanyRepo) AppendAuditLog(entry *models.AuditLog) error {
	r.audits = append(r.audits, entry)
	return nil
}

type fakeVectorStore struct {
	vectors map[string][]float32
	err     error

	upserts    int
	fetchCalls [][]uuid.UUID
}

func newFakeVectorStore() *fakeVectorStore {
	return &fakeVectorStore{vectors: make(map[string][]float32)}
}

func vectorKey(entityType string, entityID uuid.UUID) string {
	return entityType + "/" + entityID.String()
}

func (s *fakeVectorStore) InitCollection() error { return nil }

func (s *fakeVectorStore) UpsertEmbedding(_ context.Context, entityType string, entityID, _ uuid.UUID, vector []float32) error {
	if s.err != nil {
		return s.err
	}
	s.upserts++
	s.vectors[vectorKey(entityType, entityID)] = vector
	return nil
}

func (s *fakeVectorStore) GetEmbedding(_ context.Context, entityType string, entityID uuid.UUID) ([]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.vectors[vectorKey(entityType, entityID)], nil
}

func (s *fakeVectorStore) FetchEmbeddings(_ context.Context, entityType string, entityIDs []uuid.UUID) (map[uuid.UUID][]float32, error) {
	if s.err != nil {
		return nil, s.err
	}
	s.fetchCalls = append(s.fetchCalls, entityIDs)
	result := make(map[uuid.UUID][]float32)
	for _, id := range entityIDs {
		if vector, ok := s.vectors[vectorKey(entityType, id)]; ok {
			result[id] = vector
		}
	}
	return result, nil
}

func (s *fakeVectorStore) DeleteEmbedding(_ context.Context, entityType string, entityID uuid.UUID) error {
	delete(s.vectors, vectorKey(entityType, entityID))
	return nil
}

type fakeBlobStore struct {
	data []byte
	err  error
}

func (s *fakeBlobStore) Download(context.Context, string) ([]byte, error) {
	return s.data, s.err
}

type fakeExtractor struct {
	text string
	err  error
}

func (e *fakeExtractor) ExtractText([]byte) (string, error) {
	return e.text, e.err
}

type fakeParser struct {
	parsed *models.ParsedResume
	err    error
	calls  int
}

func (p *fakeParser) ParseResume(context.Context, string) (*models.ParsedResume, error) {
	p.calls++
	return p.parsed, p.err
}

type fakeEmbedder struct {
	vector []float32
	err    error
	calls  int
}

func (e *fakeEmbedder) GenerateJobEmbedding(context.Context, *models.Job) ([]float32, error) {
	e.calls++
	return e.vector, e.err
}

func (e *fakeEmbedder) GenerateCandidateEmbedding(context.Context, *models.Candidate) ([]float32, error) {
	e.calls++
	return e.vector, e.err
}

func (e *fakeEmbedder) GenerateTextEmbedding(context.Context, string) ([]float32, error) {
	e.calls++
	return e.vector, e.err
}

type fakeScorer struct {
	result *MatchResult
	err    error
}

func (s *fakeScorer) Score(context.Context, *models.Candidate, *models.Job, []float32, []float32) (*MatchResult, error) {
	return s.result, s.err
}

type fakeSummarizer struct {
	result *SummaryResult
	err    error
}

func (s *fakeSummarizer) Summarize(context.Context, *models.Candidate, *models.Job, *MatchResult) (*SummaryResult, error) {
	return s.result, s.err
}

type fakeGemini struct {
	embedding []float32
	text      string
	err       error
}

func (g *fakeGemini) GenerateEmbedding(context.Context, string) ([]float32, error) {
	return g.embedding, g.err
}

func (g *fakeGemini) GenerateText(context.Context, string, float32) (string, error) {
	return g.text, g.err
}

func (g *fakeGemini) GenerateTextWithRetry(context.Context, string, float32, int) (string, error) {
	return g.text, g.err
}
