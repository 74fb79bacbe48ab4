package database

import (
	"context"
	"time"
)

// DB defines the storage operations used by the tracker.
type DB interface {
	UserDB
	AttendanceDB

	GetStats(ctx context.Context) (*Stats, error)
	Close() error
}

// UserDB defines the user related database operations.
type UserDB interface {
	CreateUser(ctx context.Context, username, passwordHash string, isAdmin bool) (*User, error)
	GetUserByID(ctx context.Context, id uint) (*User, error)
	GetUserByUsername(ctx context.Context, username string) (*User, error)
	UpdatePasswordHash(ctx context.Context, username, passwordHash string, grantAdmin bool) error
}

// AttendanceDB defines the attendance related database operations.
type AttendanceDB interface {
	CheckIn(ctx context.Context, userID uint, at time.Time) (*AttendanceRecord, error)
	CheckOut(ctx context.Context, userID uint, at time.Time) (*AttendanceRecord, error)
	GetLatestRecord(ctx context.Context, userID uint) (*AttendanceRecord, error)
	GetRecordsByUserID(ctx context.Context, userID uint) ([]AttendanceRecord, error)
	GetAllRecords(ctx context.Context) ([]AttendanceRecord, error)
	GetOpenRecordsBefore(ctx context.Context, before time.Time) ([]AttendanceRecord, error)
}
