package services

import (
	"fmt"

	"hireflow/ats-matching/internal/models"
)

// DimensionMismatchError reports a similarity computation over vectors of
// unequal length. This always indicates a data problem, never a low match.
type DimensionMismatchError struct {
	LenA int
	LenB int
}

func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("embedding dimension mismatch: %d vs %d", e.LenA, e.LenB)
}

// EmbeddingServiceError wraps a failure of the embedding model.
type EmbeddingServiceError struct {
	Err error
}

func (e *EmbeddingServiceError) Error() string {
	return fmt.Sprintf("embedding generation failed: %v", e.Err)
}

func (e *EmbeddingServiceError) Unwrap() error { return e.Err }

// ExtractionError reports a resume whose extracted text is too short to be a
// real document. The pipeline aborts before any model call is made.
type ExtractionError struct {
	Chars    int
	MinChars int
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracted resume text too short: %d chars (minimum %d), file may be corrupted or image-based", e.Chars, e.MinChars)
}

// JobNotFoundError reports an application pointing at a job that no longer
// exists.
type JobNotFoundError struct {
	JobID string
}

func (e *JobNotFoundError) Error() string {
	return fmt.Sprintf("job %s not found", e.JobID)
}

// SearchAccessError wraps a storage failure during a similarity search.
// Searches are all-or-nothing: any access failure fails the whole search
// rather than returning partial rankings.
type SearchAccessError struct {
	Op  string
	Err error
}

func (e *SearchAccessError) Error() string {
	return fmt.Sprintf("search failed during %s: %v", e.Op, e.Err)
}

func (e *SearchAccessError) Unwrap() error { return e.Err }

// PipelineStageError records which enrichment stage failed and why. Its
// message is what gets persisted onto the application for recruiter
// visibility.
type PipelineStageError struct {
	Stage models.ProcessingStatus
	Err   error
}

func (e *PipelineStageError) Error() string {
	return fmt.Sprintf("enrichment failed at %s: %v", e.Stage, e.Err)
}

func (e *PipelineStageError) Unwrap() error { return e.Err }
