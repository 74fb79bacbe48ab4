package tracker

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/jon4hz/attendance/internal/database"
	"gorm.io/gorm"
)

// Action is a clock action submitted from the attendance page.
type Action string

const (
	ActionCheckIn  Action = "check_in"
	ActionCheckOut Action = "check_out"
)

// ParseAction validates a submitted action.
func ParseAction(s string) (Action, error) {
	switch Action(s) {
	case ActionCheckIn, ActionCheckOut:
		return Action(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownAction, s)
	}
}

// Hasher creates and verifies password hashes.
type Hasher interface {
	Hash(password string) (string, error)
	Verify(stored, password string) bool
}

// Throttle limits repeated failed logins.
type Throttle interface {
	Allowed(ctx context.Context, username string) bool
	Fail(ctx context.Context, username string)
	Reset(ctx context.Context, username string)
}

type noopThrottle struct{}

func (noopThrottle) Allowed(context.Context, string) bool { return true }
func (noopThrottle) Fail(context.Context, string)         {}
func (noopThrottle) Reset(context.Context, string)        {}

// Tracker implements registration, login and attendance recording.
type Tracker struct {
	db       database.DB
	hasher   Hasher
	throttle Throttle
	now      func() time.Time
}

// New creates a Tracker. A nil throttle disables login throttling.
func New(db database.DB, hasher Hasher, throttle Throttle) *Tracker {
	if throttle == nil {
		throttle = noopThrottle{}
	}
	return &Tracker{
		db:       db,
		hasher:   hasher,
		throttle: throttle,
		now:      time.Now,
	}
}

// Status is the latest attendance record of a user.
type Status struct {
	// Record is nil if the user never checked in.
	Record *database.AttendanceRecord
	// Hours is only meaningful if HasHours is set.
	Hours    float64
	HasHours bool
}

func missing(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Register creates a non-admin user.
func (t *Tracker) Register(ctx context.Context, username, password string) (*database.User, error) {
	if missing(username) || missing(password) {
		return nil, ErrMissingCredentials
	}

	_, err := t.db.GetUserByUsername(ctx, username)
	if err == nil {
		return nil, ErrDuplicateUsername
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	hash, err := t.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user, err := t.db.CreateUser(ctx, username, hash, false)
	if err != nil {
		if errors.Is(err, database.ErrDuplicateUsername) {
			return nil, ErrDuplicateUsername
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	log.Info("registered user", "username", username, "id", user.ID)
	return user, nil
}

// Login verifies the credentials and returns the matching user.
func (t *Tracker) Login(ctx context.Context, username, password string) (*database.User, error) {
	if missing(username) || missing(password) {
		return nil, ErrMissingCredentials
	}

	if !t.throttle.Allowed(ctx, username) {
		return nil, ErrTooManyAttempts
	}

	user, err := t.db.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			t.throttle.Fail(ctx, username)
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !t.hasher.Verify(user.PasswordHash, password) {
		t.throttle.Fail(ctx, username)
		log.Debug("password mismatch", "username", username)
		return nil, ErrInvalidCredentials
	}

	t.throttle.Reset(ctx, username)
	return user, nil
}

// Clock applies a check-in or check-out for the user.
// A check-out without an open record changes nothing.
func (t *Tracker) Clock(ctx context.Context, userID uint, action Action) error {
	switch action {
	case ActionCheckIn:
		if _, err := t.db.CheckIn(ctx, userID, t.now()); err != nil {
			if errors.Is(err, database.ErrOpenRecordExists) {
				return ErrAlreadyCheckedIn
			}
			return fmt.Errorf("failed to check in: %w", err)
		}
		log.Debug("checked in", "user_id", userID)
	case ActionCheckOut:
		record, err := t.db.CheckOut(ctx, userID, t.now())
		if err != nil {
			return fmt.Errorf("failed to check out: %w", err)
		}
		if record == nil {
			log.Debug("check out without open record", "user_id", userID)
			return nil
		}
		log.Debug("checked out", "user_id", userID, "record_id", record.ID)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
	return nil
}

// Status returns the latest record of the user and its worked hours.
func (t *Tracker) Status(ctx context.Context, userID uint) (*Status, error) {
	record, err := t.db.GetLatestRecord(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &Status{}, nil
		}
		return nil, fmt.Errorf("failed to get latest record: %w", err)
	}

	status := &Status{Record: record}
	status.Hours, status.HasHours = record.WorkedHours()
	return status, nil
}

// History returns the records visible to the caller, newest check-in first.
// Admins see every user's records, everyone else only their own.
func (t *Tracker) History(ctx context.Context, userID uint, isAdmin bool) ([]database.AttendanceRecord, error) {
	var (
		records []database.AttendanceRecord
		err     error
	)
	if isAdmin {
		records, err = t.db.GetAllRecords(ctx)
	} else {
		records, err = t.db.GetRecordsByUserID(ctx, userID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get history: %w", err)
	}
	return records, nil
}

// SetPassword overwrites the password of an existing user.
// With create set, a missing user is created instead.
func (t *Tracker) SetPassword(ctx context.Context, username, password string, grantAdmin, create bool) error {
	if missing(username) || missing(password) {
		return ErrMissingCredentials
	}

	hash, err := t.hasher.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	err = t.db.UpdatePasswordHash(ctx, username, hash, grantAdmin)
	if err == nil {
		log.Info("updated password", "username", username, "admin", grantAdmin)
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("failed to update password: %w", err)
	}
	if !create {
		return fmt.Errorf("%w: %s", ErrUserNotFound, username)
	}

	if _, err := t.db.CreateUser(ctx, username, hash, grantAdmin); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	log.Info("created user", "username", username, "admin", grantAdmin)
	return nil
}
