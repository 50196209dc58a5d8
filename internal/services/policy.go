package services

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"hireflow/ats-matching/internal/models"
	"hireflow/ats-matching/internal/repositories"
)

// PolicyService reacts to pipeline settings changes by bulk re-evaluating
// existing applications. It is a best-effort job: individual failures are
// logged and skipped, and rejections already written stay in effect.
type PolicyService interface {
	ReevaluatePipelineSettings(ctx context.Context, companyID uuid.UUID, before, after *models.PipelineSettings) (*models.ReevaluationSummary, error)
}

type policyService struct {
	appRepo       repositories.ApplicationRepository
	candidateRepo repositories.CandidateRepository
	jobRepo       repositories.JobRepository
	companyRepo   repositories.CompanyRepository
}

func NewPolicyService(
	appRepo repositories.ApplicationRepository,
	candidateRepo repositories.CandidateRepository,
	jobRepo repositories.JobRepository,
	companyRepo repositories.CompanyRepository,
) PolicyService {
	return &policyService{
		appRepo:       appRepo,
		candidateRepo: candidateRepo,
		jobRepo:       jobRepo,
		companyRepo:   companyRepo,
	}
}

// shouldReevaluate gates the bulk run: it fires only when the change can
// reject more candidates than before, i.e. auto-reject was just enabled or
// was already on and the threshold was raised. Disablement and threshold
// decreases never fire, so nobody gets silently un-rejected.
func shouldReevaluate(before, after *models.PipelineSettings) bool {
	if !after.AutoRejectEnabled {
		return false
	}
	if !before.AutoRejectEnabled {
		return true
	}
	return after.AutoRejectThreshold > before.AutoRejectThreshold
}

// ReevaluatePipelineSettings implements PolicyService.
func (s *policyService) ReevaluatePipelineSettings(ctx context.Context, companyID uuid.UUID, before, after *models.PipelineSettings) (*models.ReevaluationSummary, error) {
	summary := &models.ReevaluationSummary{}

	thresholdChanged := before.AutoRejectThreshold != after.AutoRejectThreshold
	enabledChanged := before.AutoRejectEnabled != after.AutoRejectEnabled
	if !thresholdChanged && !enabledChanged {
		return summary, nil
	}

	if !shouldReevaluate(before, after) {
		log.Printf("ℹ️  Settings change for company %s does not expand auto-reject, skipping re-evaluation\n", companyID)
		return summary, nil
	}

	log.Printf("🔄 Re-evaluating applications for company %s (threshold %d -> %d, enabled %t -> %t)\n",
		companyID, before.AutoRejectThreshold, after.AutoRejectThreshold,
		before.AutoRejectEnabled, after.AutoRejectEnabled)

	apps, err := s.appRepo.FindReviewable(companyID)
	if err != nil {
		return summary, fmt.Errorf("failed to fetch reviewable applications: %w", err)
	}

	byJob := make(map[uuid.UUID][]models.Application)
	for _, app := range apps {
		byJob[app.JobID] = append(byJob[app.JobID], app)
	}

	now := time.Now()
	for jobID, group := range byJob {
		// Data-sparsity guard: small samples produce unreliable thresholds
		if len(group) < after.MinimumApplications {
			log.Printf("ℹ️  Job %s has %d applications (< %d minimum), skipped\n", jobID, len(group), after.MinimumApplications)
			continue
		}

		summary.Reviewed += len(group)

		for _, app := range group {
			if app.MatchScore >= after.AutoRejectThreshold {
				continue
			}

			if err := s.appRepo.AutoReject(app.ID, after.AutoRejectThreshold, now); err != nil {
				log.Printf("⚠️  Failed to auto-reject application %s: %v\n", app.ID, err)
				continue
			}
			summary.Rejected++

			if after.SendRejectionEmail {
				s.enqueueRejectionEmail(&app)
			}
		}
	}

	s.appendAudit(companyID, before, after, summary)

	log.Printf("✅ Re-evaluation for company %s done: %d reviewed, %d rejected\n", companyID, summary.Reviewed, summary.Rejected)
	return summary, nil
}

func (s *policyService) enqueueRejectionEmail(app *models.Application) {
	candidate, err := s.candidateRepo.FindByID(app.CandidateID)
	if err != nil {
		log.Printf("⚠️  Failed to load candidate %s for rejection email: %v\n", app.CandidateID, err)
		return
	}

	job, err := s.jobRepo.FindByID(app.JobID)
	if err != nil {
		log.Printf("⚠️  Failed to load job %s for rejection email: %v\n", app.JobID, err)
		return
	}

	email := &models.EmailMessage{
		ID:        uuid.New(),
		CompanyID: app.CompanyID,
		To:        candidate.Email,
		Subject:   fmt.Sprintf("Update on your application for %s", job.Title),
		HTML: fmt.Sprintf(
			"<p>Dear %s,</p><p>Thank you for your interest in the %s position. After careful review, we have decided not to move forward with your application at this time.</p><p>We encourage you to apply for future openings that match your skills.</p>",
			candidate.Name, job.Title),
		Status: models.EmailStatusPending,
		Type:   "auto_rejection",
	}

	if err := s.companyRepo.EnqueueEmail(email); err != nil {
		log.Printf("⚠️  Failed to enqueue rejection email for application %s: %v\n", app.ID, err)
	}
}

func (s *policyService) appendAudit(companyID uuid.UUID, before, after *models.PipelineSettings, summary *models.ReevaluationSummary) {
	entry := &models.AuditLog{
		ID:        uuid.New(),
		CompanyID: companyID,
		Action:    "pipeline_settings_reevaluation",
		Detail: map[string]any{
			"threshold_before": before.AutoRejectThreshold,
			"threshold_after":  after.AutoRejectThreshold,
			"enabled_before":   before.AutoRejectEnabled,
			"enabled_after":    after.AutoRejectEnabled,
			"reviewed":         summary.Reviewed,
			"rejected":         summary.Rejected,
		},
	}

	if err := s.companyRepo.AppendAuditLog(entry); err != nil {
		log.Printf("⚠️  Failed to append audit log for company %s: %v\n", companyID, err)
	}
}
