package models

import (
	"github.com/jon4hz/attendance/internal/database"
	"github.com/jon4hz/attendance/internal/tracker"
	"github.com/samber/lo"
)

// ToUser converts a database.User to the session user.
func ToUser(u *database.User) *User {
	return &User{
		ID:       u.ID,
		Username: u.Username,
		IsAdmin:  u.IsAdmin,
	}
}

// ToRecord converts a database.AttendanceRecord to a Record.
// The record's user must be loaded for the username to be set.
func ToRecord(r database.AttendanceRecord) Record {
	hours, ok := r.WorkedHours()
	return Record{
		ID:       r.ID,
		Username: r.User.Username,
		CheckIn:  r.CheckInTime,
		CheckOut: r.CheckOutTime,
		Hours:    hours,
		HasHours: ok,
	}
}

// ToRecords converts a slice of database.AttendanceRecord to Records.
func ToRecords(records []database.AttendanceRecord) []Record {
	return lo.Map(records, func(r database.AttendanceRecord, _ int) Record {
		return ToRecord(r)
	})
}

// ToStatus converts a tracker.Status to a Status.
func ToStatus(s *tracker.Status) Status {
	if s == nil || s.Record == nil {
		return Status{}
	}
	record := ToRecord(*s.Record)
	record.Hours, record.HasHours = s.Hours, s.HasHours
	return Status{Record: &record}
}
