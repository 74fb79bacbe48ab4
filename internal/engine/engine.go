package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/jon4hz/attendance/internal/config"
	"github.com/jon4hz/attendance/internal/scheduler"
)

// Reporter reports attendance records that stayed open for too long.
type Reporter interface {
	ReportStaleOpenRecords(ctx context.Context, maxOpen time.Duration) error
}

// Engine runs the background jobs of the attendance server.
type Engine struct {
	cfg       *config.ReportConfig
	reporter  Reporter
	scheduler *scheduler.Scheduler
}

// New creates a new Engine and configures its jobs.
func New(cfg *config.ReportConfig, reporter Reporter) (*Engine, error) {
	sched, err := scheduler.New()
	if err != nil {
		return nil, fmt.Errorf("failed to create scheduler: %w", err)
	}

	e := &Engine{
		cfg:       cfg,
		reporter:  reporter,
		scheduler: sched,
	}

	if err := e.setupJobs(); err != nil {
		_ = sched.Stop()
		return nil, err
	}

	return e, nil
}
