package models

import "time"

// User represents the logged in user as stored in the session.
type User struct {
	ID       uint
	Username string
	IsAdmin  bool
}

// Record represents an attendance record for display in the UI.
type Record struct {
	ID       uint
	Username string
	CheckIn  time.Time
	CheckOut *time.Time
	Hours    float64
	HasHours bool // Hours is only set for closed records
}

// IsOpen reports whether the record has not been checked out yet.
func (r Record) IsOpen() bool {
	return r.CheckOut == nil
}

// Status is the latest record of a user shown on the attendance page.
type Status struct {
	// Record is nil if the user never checked in.
	Record *Record
}
