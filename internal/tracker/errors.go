package tracker

import "errors"

var (
	// ErrMissingCredentials is returned when the username or password is empty.
	ErrMissingCredentials = errors.New("username and password are required")
	// ErrInvalidCredentials is returned for an unknown username or a wrong password.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrDuplicateUsername is returned when registering a taken username.
	ErrDuplicateUsername = errors.New("this username is already taken")
	// ErrTooManyAttempts is returned while a username is locked after failed logins.
	ErrTooManyAttempts = errors.New("too many failed login attempts, try again later")
	// ErrAlreadyCheckedIn is returned when checking in with an open record.
	ErrAlreadyCheckedIn = errors.New("you are already checked in")
	// ErrUnknownAction is returned for an action other than check_in or check_out.
	ErrUnknownAction = errors.New("unknown action")
	// ErrUserNotFound is returned by SetPassword for a missing user.
	ErrUserNotFound = errors.New("user not found")
)
