package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/a-h/templ"
	"github.com/charmbracelet/log"
	"github.com/gin-contrib/sessions"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/attendance/internal/api/models"
	"github.com/jon4hz/attendance/internal/database"
	"github.com/jon4hz/attendance/internal/tracker"
	"github.com/jon4hz/attendance/web/templates/pages"
)

// Authenticator registers users and checks their credentials.
type Authenticator interface {
	Register(ctx context.Context, username, password string) (*database.User, error)
	Login(ctx context.Context, username, password string) (*database.User, error)
}

// Handler serves the login, registration and logout routes.
type Handler struct {
	auth Authenticator
}

// NewHandler creates a new auth Handler.
func NewHandler(auth Authenticator) *Handler {
	return &Handler{auth: auth}
}

func renderCredentials(c *gin.Context, status int, page func(pages.CredentialsForm) templ.Component, form pages.CredentialsForm) {
	c.Header("Content-Type", "text/html; charset=utf-8")
	c.Status(status)
	if err := page(form).Render(c.Request.Context(), c.Writer); err != nil {
		log.Error("Failed to render page", "error", err)
	}
}

func loggedIn(c *gin.Context) bool {
	_, ok := SessionUser(sessions.Default(c))
	return ok
}

// LoginPage renders the login form or redirects logged in users home.
func (h *Handler) LoginPage(c *gin.Context) {
	if loggedIn(c) {
		c.Redirect(http.StatusFound, "/")
		return
	}
	renderCredentials(c, http.StatusOK, pages.Login, pages.CredentialsForm{})
}

// Login checks the submitted credentials and starts a session.
func (h *Handler) Login(c *gin.Context) {
	username := c.PostForm("username")
	form := pages.CredentialsForm{Username: username}

	user, err := h.auth.Login(c.Request.Context(), username, c.PostForm("password"))
	if err != nil {
		switch {
		case errors.Is(err, tracker.ErrMissingCredentials):
			form.Error = "Username and password are required."
			renderCredentials(c, http.StatusBadRequest, pages.Login, form)
		case errors.Is(err, tracker.ErrInvalidCredentials):
			form.Error = "Invalid username or password."
			renderCredentials(c, http.StatusUnauthorized, pages.Login, form)
		case errors.Is(err, tracker.ErrTooManyAttempts):
			log.Warn("Login throttled", "username", username, "ip", c.ClientIP())
			form.Error = "Too many failed login attempts. Please try again later."
			renderCredentials(c, http.StatusTooManyRequests, pages.Login, form)
		default:
			_ = c.AbortWithError(http.StatusInternalServerError, err)
		}
		return
	}

	session := sessions.Default(c)
	SetSessionUser(session, models.ToUser(user))
	if err := session.Save(); err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}

	log.Info("User logged in", "username", user.Username, "admin", user.IsAdmin)
	c.Redirect(http.StatusFound, "/")
}

// RegisterPage renders the registration form.
func (h *Handler) RegisterPage(c *gin.Context) {
	renderCredentials(c, http.StatusOK, pages.Register, pages.CredentialsForm{})
}

// Register creates a new non-admin user.
func (h *Handler) Register(c *gin.Context) {
	username := c.PostForm("username")
	form := pages.CredentialsForm{Username: username}

	if _, err := h.auth.Register(c.Request.Context(), username, c.PostForm("password")); err != nil {
		switch {
		case errors.Is(err, tracker.ErrMissingCredentials):
			form.Error = "Username and password are required."
			renderCredentials(c, http.StatusBadRequest, pages.Register, form)
		case errors.Is(err, tracker.ErrDuplicateUsername):
			form.Error = "Username already exists."
			renderCredentials(c, http.StatusConflict, pages.Register, form)
		default:
			_ = c.AbortWithError(http.StatusInternalServerError, err)
		}
		return
	}

	c.Redirect(http.StatusFound, "/login")
}

// Logout clears the session user, with or without an active session.
func (h *Handler) Logout(c *gin.Context) {
	session := sessions.Default(c)
	ClearSessionUser(session)
	if err := session.Save(); err != nil {
		_ = c.AbortWithError(http.StatusInternalServerError, err)
		return
	}
	c.Redirect(http.StatusFound, "/login")
}
