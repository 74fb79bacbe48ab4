package engine

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/go-co-op/gocron/v2"
	"github.com/jon4hz/attendance/internal/scheduler"
)

const reportJobID = "open_session_report"

// GetScheduler returns the scheduler instance.
func (e *Engine) GetScheduler() *scheduler.Scheduler {
	return e.scheduler
}

// Run starts the scheduler and blocks until ctx is done.
func (e *Engine) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	e.scheduler.Start()

	<-ctx.Done()
	return nil
}

// Close stops the engine and cleans up resources.
func (e *Engine) Close() error {
	return e.scheduler.Stop()
}

// setupJobs configures all scheduled jobs.
func (e *Engine) setupJobs() error {
	if e.cfg == nil || !e.cfg.Enabled {
		log.Info("Open session report is disabled")
		return nil
	}

	reportJobDef := gocron.CronJob(e.cfg.Schedule, false)
	if err := e.scheduler.AddSingletonJob(
		reportJobID,
		"Open Session Report",
		"Warns about attendance records that were never checked out",
		e.cfg.Schedule,
		reportJobDef,
		e.runReportJob,
	); err != nil {
		return fmt.Errorf("failed to add report job: %w", err)
	}

	log.Info("Scheduled jobs configured successfully")
	return nil
}

func (e *Engine) runReportJob(ctx context.Context) error {
	return e.reporter.ReportStaleOpenRecords(ctx, e.cfg.MaxOpenDuration)
}
