package services

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"hireflow/ats-matching/internal/models"
	"hireflow/ats-matching/internal/repositories"
)

const (
	// DefaultSearchLimit and DefaultMinScore apply when a caller passes
	// non-positive values.
	DefaultSearchLimit = 10
	DefaultMinScore    = 50

	// batchChunkSize bounds multi-key fetches to the store's "IN" query limit.
	batchChunkSize = 10
)

// MatchService ranks candidates and jobs by embedding similarity. It only
// ever reads from the stores.
type MatchService interface {
	FindSimilarCandidates(ctx context.Context, jobVector []float32, companyID uuid.UUID, limit, minScore int) ([]models.SearchResult[models.Candidate], error)
	FindSimilarJobs(ctx context.Context, candidateVector []float32, limit, minScore int, companyID *uuid.UUID) ([]models.SearchResult[models.Job], error)
	CalculateMatchScore(jobVector, candidateVector []float32) (int, error)
	BatchCalculateMatchScores(ctx context.Context, jobVector []float32, applicationIDs []uuid.UUID) (map[uuid.UUID]int, error)
}

type matchService struct {
	candidateRepo repositories.CandidateRepository
	jobRepo       repositories.JobRepository
	appRepo       repositories.ApplicationRepository
	vectorStore   VectorStore
}

func NewMatchService(
	candidateRepo repositories.CandidateRepository,
	jobRepo repositories.JobRepository,
	appRepo repositories.ApplicationRepository,
	vectorStore VectorStore,
) MatchService {
	return &matchService{
		candidateRepo: candidateRepo,
		jobRepo:       jobRepo,
		appRepo:       appRepo,
		vectorStore:   vectorStore,
	}
}

// FindSimilarCandidates implements MatchService. Results are sorted by match
// score descending; equal scores keep the repository's retrieval order
// (created_at ascending), which is the documented tie-break.
func (m *matchService) FindSimilarCandidates(ctx context.Context, jobVector []float32, companyID uuid.UUID, limit, minScore int) ([]models.SearchResult[models.Candidate], error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if minScore <= 0 {
		minScore = DefaultMinScore
	}

	candidates, err := m.candidateRepo.FindWithEmbeddings(companyID)
	if err != nil {
		return nil, &SearchAccessError{Op: "candidate fetch", Err: err}
	}

	ids := make([]uuid.UUID, 0, len(candidates))
	for _, c := range candidates {
		ids = append(ids, c.ID)
	}

	vectors, err := m.fetchVectorsChunked(ctx, EntityTypeCandidate, ids)
	if err != nil {
		return nil, err
	}

	var results []models.SearchResult[models.Candidate]
	for _, candidate := range candidates {
		vector, ok := vectors[candidate.ID]
		if !ok {
			continue
		}

		similarity, err := CosineSimilarity(jobVector, vector)
		if err != nil {
			return nil, err
		}

		score := SimilarityToMatchScore(similarity)
		if score < minScore {
			continue
		}

		results = append(results, models.SearchResult[models.Candidate]{
			EntityID:   candidate.ID.String(),
			Entity:     candidate,
			Similarity: similarity,
			MatchScore: score,
		})
	}

	sortByScore(results)
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// FindSimilarJobs implements MatchService. Only open jobs that carry an
// embedding are considered; companyID narrows the scope when set.
func (m *matchService) FindSimilarJobs(ctx context.Context, candidateVector []float32, limit, minScore int, companyID *uuid.UUID) ([]models.SearchResult[models.Job], error) {
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	if minScore <= 0 {
		minScore = DefaultMinScore
	}

	jobs, err := m.jobRepo.FindOpenWithEmbeddings(companyID)
	if err != nil {
		return nil, &SearchAccessError{Op: "job fetch", Err: err}
	}

	ids := make([]uuid.UUID, 0, len(jobs))
	for _, j := range jobs {
		ids = append(ids, j.ID)
	}

	vectors, err := m.fetchVectorsChunked(ctx, EntityTypeJob, ids)
	if err != nil {
		return nil, err
	}

	var results []models.SearchResult[models.Job]
	for _, job := range jobs {
		vector, ok := vectors[job.ID]
		if !ok {
			continue
		}

		similarity, err := CosineSimilarity(candidateVector, vector)
		if err != nil {
			return nil, err
		}

		score := SimilarityToMatchScore(similarity)
		if score < minScore {
			continue
		}

		results = append(results, models.SearchResult[models.Job]{
			EntityID:   job.ID.String(),
			Entity:     job,
			Similarity: similarity,
			MatchScore: score,
		})
	}

	sortByScore(results)
	if len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// CalculateMatchScore implements MatchService. It is the single-pair
// primitive shared by bulk search and the enrichment pipeline.
func (m *matchService) CalculateMatchScore(jobVector, candidateVector []float32) (int, error) {
	similarity, err := CosineSimilarity(jobVector, candidateVector)
	if err != nil {
		return 0, err
	}
	return SimilarityToMatchScore(similarity), nil
}

// BatchCalculateMatchScores implements MatchService. Applications are fetched
// in chunks bounded by the store's multi-key limit, each chunk awaited before
// the next. Ids whose candidate has no stored embedding are omitted from the
// result map, never errored.
func (m *matchService) BatchCalculateMatchScores(ctx context.Context, jobVector []float32, applicationIDs []uuid.UUID) (map[uuid.UUID]int, error) {
	scores := make(map[uuid.UUID]int)

	for start := 0; start < len(applicationIDs); start += batchChunkSize {
		end := start + batchChunkSize
		if end > len(applicationIDs) {
			end = len(applicationIDs)
		}
		chunk := applicationIDs[start:end]

		apps, err := m.appRepo.FindByIDs(chunk)
		if err != nil {
			return nil, &SearchAccessError{Op: "application fetch", Err: err}
		}

		candidateIDs := make([]uuid.UUID, 0, len(apps))
		for _, app := range apps {
			candidateIDs = append(candidateIDs, app.CandidateID)
		}

		vectors, err := m.vectorStore.FetchEmbeddings(ctx, EntityTypeCandidate, candidateIDs)
		if err != nil {
			return nil, &SearchAccessError{Op: "embedding fetch", Err: err}
		}

		for _, app := range apps {
			vector, ok := vectors[app.CandidateID]
			if !ok {
				continue
			}

			score, err := m.CalculateMatchScore(jobVector, vector)
			if err != nil {
				return nil, err
			}
			scores[app.ID] = score
		}
	}

	return scores, nil
}

func (m *matchService) fetchVectorsChunked(ctx context.Context, entityType string, ids []uuid.UUID) (map[uuid.UUID][]float32, error) {
	vectors := make(map[uuid.UUID][]float32, len(ids))

	for start := 0; start < len(ids); start += batchChunkSize {
		end := start + batchChunkSize
		if end > len(ids) {
			end = len(ids)
		}

		chunk, err := m.vectorStore.FetchEmbeddings(ctx, entityType, ids[start:end])
		if err != nil {
			return nil, &SearchAccessError{Op: "embedding fetch", Err: err}
		}
		for id, vector := range chunk {
			vectors[id] = vector
		}
	}

	return vectors, nil
}

func sortByScore[T any](results []models.SearchResult[T]) {
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].MatchScore > results[j].MatchScore
	})
}
