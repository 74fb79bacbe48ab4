package scheduler

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestScheduler(t *testing.T) *Scheduler {
	t.Helper()
	s, err := New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Stop() })
	s.Start()
	return s
}

func TestScheduler_RunJobNow(t *testing.T) {
	s := newTestScheduler(t)

	var runs atomic.Int32
	err := s.AddSingletonJob("count", "Count", "counts runs", "0 * * * *",
		gocron.CronJob("0 * * * *", false),
		func(ctx context.Context) error {
			runs.Add(1)
			return nil
		},
	)
	require.NoError(t, err)

	require.NoError(t, s.RunJobNow("count"))

	assert.Eventually(t, func() bool {
		job, ok := s.GetJob("count")
		return ok && job.Status == JobStatusCompleted
	}, 2*time.Second, 10*time.Millisecond)

	job, ok := s.GetJob("count")
	require.True(t, ok)
	assert.Equal(t, int32(1), runs.Load())
	assert.Equal(t, 1, job.RunCount)
	assert.Equal(t, 0, job.ErrorCount)
	assert.True(t, job.Singleton)
	assert.False(t, job.NextRun.IsZero())
}

func TestScheduler_FailedJob(t *testing.T) {
	s := newTestScheduler(t)

	err := s.AddJob("fail", "Fail", "always fails", "0 * * * *",
		gocron.CronJob("0 * * * *", false),
		func(ctx context.Context) error {
			return errors.New("boom")
		},
	)
	require.NoError(t, err)

	require.NoError(t, s.RunJobNow("fail"))

	assert.Eventually(t, func() bool {
		job, _ := s.GetJob("fail")
		return job.Status == JobStatusFailed
	}, 2*time.Second, 10*time.Millisecond)

	job, _ := s.GetJob("fail")
	assert.Equal(t, 1, job.ErrorCount)
	assert.Equal(t, "boom", job.LastError)
}

func TestScheduler_UnknownJob(t *testing.T) {
	s := newTestScheduler(t)

	assert.Error(t, s.RunJobNow("missing"))
	_, ok := s.GetJob("missing")
	assert.False(t, ok)
}

func TestScheduler_InvalidCron(t *testing.T) {
	s := newTestScheduler(t)

	err := s.AddJob("bad", "Bad", "", "not a cron",
		gocron.CronJob("not a cron", false),
		func(ctx context.Context) error { return nil },
	)
	assert.Error(t, err)
}
