package inmemory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lfmartins-dev/extrato-ai/internal/jobs"
)

func TestSaveAndGetJob(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	job := &jobs.ExtractionJob{
		JobID:     "ab12cd34",
		Status:    jobs.JobStatusRunning,
		Page:      2,
		CreatedAt: time.Now(),
	}
	require.NoError(t, store.SaveJob(ctx, job))

	got, err := store.GetJob(ctx, "ab12cd34")
	require.NoError(t, err)
	assert.Equal(t, jobs.JobStatusRunning, got.Status)
	assert.Equal(t, 2, got.Page)
}

func TestSaveJobRequiresID(t *testing.T) {
	store := NewStore()
	err := store.SaveJob(context.Background(), &jobs.ExtractionJob{})
	assert.Error(t, err)
}

func TestGetJobNotFound(t *testing.T) {
	store := NewStore()
	_, err := store.GetJob(context.Background(), "inexistente")
	assert.Error(t, err)
}

func TestGetJobReturnsCopy(t *testing.T) {
	ctx := context.Background()
	store := NewStore()

	require.NoError(t, store.SaveJob(ctx, &jobs.ExtractionJob{
		JobID:  "job1",
		Status: jobs.JobStatusPending,
	}))

	got, err := store.GetJob(ctx, "job1")
	require.NoError(t, err)
	got.Status = jobs.JobStatusFailed

	again, err := store.GetJob(ctx, "job1")
	require.NoError(t, err)
	assert.Equal(t, jobs.JobStatusPending, again.Status)
}
