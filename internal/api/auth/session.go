package auth

import (
	"github.com/ccoveille/go-safecast"
	"github.com/gin-contrib/sessions"
	"github.com/jon4hz/attendance/internal/api/models"
)

// Session keys of the logged in user.
const (
	SessionUserID   = "user_id"
	SessionUsername = "username"
	SessionIsAdmin  = "is_admin"
)

// SetSessionUser stores the user in the session. The caller must save the session.
func SetSessionUser(session sessions.Session, user *models.User) {
	session.Set(SessionUserID, user.ID)
	session.Set(SessionUsername, user.Username)
	session.Set(SessionIsAdmin, user.IsAdmin)
}

// ClearSessionUser removes the user from the session. The caller must save the session.
func ClearSessionUser(session sessions.Session) {
	session.Delete(SessionUserID)
	session.Delete(SessionUsername)
	session.Delete(SessionIsAdmin)
}

// SessionUser returns the user stored in the session.
func SessionUser(session sessions.Session) (*models.User, bool) {
	id, ok := getSessionUint(session, SessionUserID)
	if !ok || id == 0 {
		return nil, false
	}
	username, ok := getSessionString(session, SessionUsername)
	if !ok {
		return nil, false
	}
	return &models.User{
		ID:       id,
		Username: username,
		IsAdmin:  getSessionBool(session, SessionIsAdmin),
	}, true
}

func getSessionString(session sessions.Session, key string) (string, bool) {
	value, ok := session.Get(key).(string)
	return value, ok && value != ""
}

func getSessionBool(session sessions.Session, key string) bool {
	value, _ := session.Get(key).(bool)
	return value
}

func getSessionUint(session sessions.Session, key string) (uint, bool) {
	switch v := session.Get(key).(type) {
	case uint:
		return v, true
	case int:
		id, err := safecast.Convert[uint](v)
		return id, err == nil
	case int64:
		id, err := safecast.Convert[uint](v)
		return id, err == nil
	case uint64:
		id, err := safecast.Convert[uint](v)
		return id, err == nil
	default:
		return 0, false
	}
}
