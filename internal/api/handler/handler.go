package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/attendance/internal/api/models"
	"github.com/jon4hz/attendance/internal/database"
	"github.com/jon4hz/attendance/internal/tracker"
	"github.com/jon4hz/attendance/web/templates/pages"
)

// Attendance records clock actions and lists attendance records.
type Attendance interface {
	Clock(ctx context.Context, userID uint, action tracker.Action) error
	Status(ctx context.Context, userID uint) (*tracker.Status, error)
	History(ctx context.Context, userID uint, isAdmin bool) ([]database.AttendanceRecord, error)
}

// Handler serves the attendance and history pages.
type Handler struct {
	attendance Attendance
}

// New creates a new Handler.
func New(attendance Attendance) *Handler {
	return &Handler{
		attendance: attendance,
	}
}

// Home renders the attendance page with the user's latest record.
func (h *Handler) Home(c *gin.Context) {
	user := c.MustGet("user").(*models.User)
	h.renderHome(c, user, http.StatusOK, "")
}

// Clock applies the submitted check-in or check-out action and renders the attendance page.
func (h *Handler) Clock(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	action, err := tracker.ParseAction(c.PostForm("action"))
	if err != nil {
		h.renderHome(c, user, http.StatusBadRequest, "Unknown action.")
		return
	}

	if err := h.attendance.Clock(c.Request.Context(), user.ID, action); err != nil {
		if errors.Is(err, tracker.ErrAlreadyCheckedIn) {
			h.renderHome(c, user, http.StatusConflict, "You are already checked in. Check out first.")
			return
		}
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	h.renderHome(c, user, http.StatusOK, "")
}

func (h *Handler) renderHome(c *gin.Context, user *models.User, status int, errMsg string) {
	s, err := h.attendance.Status(c.Request.Context(), user.ID)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := pages.Home(user, models.ToStatus(s), errMsg).Render(c.Request.Context(), c.Writer); err != nil {
		log.Error("Failed to render home page", "error", err)
	}
}

// History renders the attendance records visible to the user.
func (h *Handler) History(c *gin.Context) {
	user := c.MustGet("user").(*models.User)

	records, err := h.attendance.History(c.Request.Context(), user.ID, user.IsAdmin)
	if err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	if err := pages.History(user, models.ToRecords(records)).Render(c.Request.Context(), c.Writer); err != nil {
		log.Error("Failed to render history page", "error", err)
	}
}
