package components

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mergestat/timediff"
)

// OpenPlaceholder is shown in place of a missing check-out time.
const OpenPlaceholder = "—"

// FormatRelativeTime formats a time.Time as a relative time string like "3 hours ago"
func FormatRelativeTime(t time.Time) string {
	return timediff.TimeDiff(t)
}

// FormatTimestamp formats a timestamp for tables.
func FormatTimestamp(t time.Time) string {
	return t.Format(time.DateTime)
}

// FormatOptionalTimestamp formats t or returns the placeholder for open records.
func FormatOptionalTimestamp(t *time.Time) string {
	if t == nil {
		return OpenPlaceholder
	}
	return FormatTimestamp(*t)
}

// FormatHours formats worked hours with at most two decimals, e.g. "8.5".
func FormatHours(hours float64) string {
	return humanize.FtoaWithDigits(hours, 2)
}
