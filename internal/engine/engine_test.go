package engine

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jon4hz/attendance/internal/config"
	"github.com/jon4hz/attendance/internal/scheduler"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReporter struct {
	mu    sync.Mutex
	calls []time.Duration
	err   error
}

func (f *fakeReporter) ReportStaleOpenRecords(_ context.Context, maxOpen time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, maxOpen)
	return f.err
}

func (f *fakeReporter) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

func startEngine(t *testing.T, e *Engine) {
	t.Helper()
	e.GetScheduler().Start()
	t.Cleanup(func() { _ = e.Close() })
}

func TestEngine_ReportJob(t *testing.T) {
	reporter := &fakeReporter{}
	cfg := &config.ReportConfig{Enabled: true, Schedule: "0 * * * *", MaxOpenDuration: 12 * time.Hour}

	e, err := New(cfg, reporter)
	require.NoError(t, err)
	startEngine(t, e)

	_, ok := e.GetScheduler().GetJob(reportJobID)
	require.True(t, ok)
	require.NoError(t, e.GetScheduler().RunJobNow(reportJobID))

	assert.Eventually(t, func() bool { return reporter.callCount() >= 1 }, 2*time.Second, 10*time.Millisecond)

	reporter.mu.Lock()
	assert.Equal(t, 12*time.Hour, reporter.calls[0])
	reporter.mu.Unlock()
}

func TestEngine_ReportJobFailure(t *testing.T) {
	reporter := &fakeReporter{err: errors.New("db gone")}
	cfg := &config.ReportConfig{Enabled: true, Schedule: "0 * * * *", MaxOpenDuration: time.Hour}

	e, err := New(cfg, reporter)
	require.NoError(t, err)
	startEngine(t, e)

	require.NoError(t, e.GetScheduler().RunJobNow(reportJobID))

	assert.Eventually(t, func() bool {
		job, _ := e.GetScheduler().GetJob(reportJobID)
		return job.Status == scheduler.JobStatusFailed
	}, 2*time.Second, 10*time.Millisecond)
}

func TestEngine_ReportDisabled(t *testing.T) {
	e, err := New(&config.ReportConfig{Enabled: false}, &fakeReporter{})
	require.NoError(t, err)
	startEngine(t, e)

	_, ok := e.GetScheduler().GetJob(reportJobID)
	assert.False(t, ok)
}

func TestEngine_RunStopsWithContext(t *testing.T) {
	e, err := New(&config.ReportConfig{Enabled: false}, &fakeReporter{})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- e.Run(ctx) }()

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
	assert.NoError(t, e.Close())
}
