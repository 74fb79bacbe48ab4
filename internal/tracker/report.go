package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/attendance/internal/database"
)

// StaleOpenRecords returns records that have been open for longer than maxOpen.
func (t *Tracker) StaleOpenRecords(ctx context.Context, maxOpen time.Duration) ([]database.AttendanceRecord, error) {
	records, err := t.db.GetOpenRecordsBefore(ctx, t.now().Add(-maxOpen))
	if err != nil {
		return nil, fmt.Errorf("failed to get open records: %w", err)
	}
	return records, nil
}

// ReportStaleOpenRecords logs a warning for every record open longer than maxOpen.
func (t *Tracker) ReportStaleOpenRecords(ctx context.Context, maxOpen time.Duration) error {
	records, err := t.StaleOpenRecords(ctx, maxOpen)
	if err != nil {
		return err
	}
	if len(records) == 0 {
		log.Debug("no stale open records")
		return nil
	}

	now := t.now()
	for _, r := range records {
		log.Warn("attendance record still open",
			"username", r.User.Username,
			"record_id", r.ID,
			"checked_in", r.CheckInTime.Format(time.DateTime),
			"open_for", now.Sub(r.CheckInTime).Round(time.Minute),
		)
	}
	return nil
}
