package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gin-contrib/gzip"
	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/attendance/internal/api/auth"
	"github.com/jon4hz/attendance/internal/api/handler"
	"github.com/jon4hz/attendance/internal/config"
	"github.com/jon4hz/attendance/internal/static"
	"github.com/jon4hz/attendance/internal/tracker"
)

const (
	sessionName     = "attendance_session"
	shutdownTimeout = 10 * time.Second
)

// Server is the HTTP server of the attendance tracker.
type Server struct {
	cfg       *config.Config
	ginEngine *gin.Engine
	tracker   *tracker.Tracker
}

// New creates a new Server and registers all routes.
func New(cfg *config.Config, t *tracker.Tracker) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if t == nil {
		return nil, fmt.Errorf("tracker is required")
	}

	s := &Server{
		cfg:       cfg,
		ginEngine: gin.New(),
		tracker:   t,
	}

	s.ginEngine.Use(
		gin.Recovery(),
		requestID(),
		requestLogger(),
		gzip.Gzip(gzip.DefaultCompression),
	)
	s.setupSession()
	s.ginEngine.Use(errorPage())

	if err := s.setupRoutes(); err != nil {
		return nil, err
	}

	return s, nil
}

func (s *Server) setupSession() {
	store := cookie.NewStore([]byte(s.cfg.SessionKey))
	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   s.cfg.SessionMaxAge,
		HttpOnly: true,
		Secure:   s.cfg.SecureCookie,
		SameSite: http.SameSiteLaxMode,
	})
	s.ginEngine.Use(sessions.Sessions(sessionName, store))
}

func (s *Server) setupRoutes() error {
	staticFS, err := static.FS()
	if err != nil {
		return err
	}
	s.ginEngine.StaticFS("/static", http.FS(staticFS))

	authHandler := auth.NewHandler(s.tracker)
	s.ginEngine.GET("/login", authHandler.LoginPage)
	s.ginEngine.POST("/login", authHandler.Login)
	s.ginEngine.GET("/register", authHandler.RegisterPage)
	s.ginEngine.POST("/register", authHandler.Register)
	s.ginEngine.GET("/logout", authHandler.Logout)

	h := handler.New(s.tracker)

	protected := s.ginEngine.Group("/")
	protected.Use(auth.RequireAuth())
	protected.GET("/", h.Home)
	protected.POST("/", h.Clock)
	protected.GET("/history", h.History)

	return nil
}

// Handler returns the http.Handler serving all routes.
func (s *Server) Handler() http.Handler {
	return s.ginEngine
}

// Run serves HTTP until ctx is done and then shuts the server down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Listen,
		Handler:           s.ginEngine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("Starting server", "listen", s.cfg.Listen)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err, ok := <-errCh:
		if ok {
			return fmt.Errorf("failed to serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("Shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	return nil
}
