// Package jobs tracks the status of extraction jobs so clients can poll
// them after the progress stream ends.
package jobs

import (
	"context"
	"time"
)

// JobStatus represents the current status of a job.
type JobStatus string

const (
	// JobStatusPending indicates the job was created but not started.
	JobStatusPending JobStatus = "pending"
	// JobStatusRunning indicates the job is currently being processed.
	JobStatusRunning JobStatus = "running"
	// JobStatusCompleted indicates the job completed successfully.
	JobStatusCompleted JobStatus = "completed"
	// JobStatusFailed indicates the job failed.
	JobStatusFailed JobStatus = "failed"
)

// ExtractionJob is the tracked state of one statement processing job.
type ExtractionJob struct {
	// JobID is the unique identifier for this job.
	JobID string `json:"job_id"`

	// Status is the current status of the job.
	Status JobStatus `json:"status"`

	// Page and TotalPages track per-page progress while running.
	Page       int `json:"page,omitempty"`
	TotalPages int `json:"total_pages,omitempty"`

	// RecordCount is the number of extracted transactions on completion.
	RecordCount int `json:"record_count,omitempty"`

	// OutputName is the generated document filename on completion.
	OutputName string `json:"output_name,omitempty"`

	// Error contains error details if the job failed.
	Error string `json:"error,omitempty"`

	// CreatedAt is when the job was created.
	CreatedAt time.Time `json:"created_at"`

	// CompletedAt is when the job finished (success or failure).
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Store defines the interface for storing and retrieving job status.
type Store interface {
	// SaveJob saves or updates a job.
	SaveJob(ctx context.Context, job *ExtractionJob) error

	// GetJob retrieves a job by ID.
	GetJob(ctx context.Context, jobID string) (*ExtractionJob, error)
}
