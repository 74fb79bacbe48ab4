package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/gin-gonic/gin"
	"github.com/jon4hz/attendance/internal/api"
	"github.com/jon4hz/attendance/internal/cache"
	"github.com/jon4hz/attendance/internal/config"
	"github.com/jon4hz/attendance/internal/database"
	"github.com/jon4hz/attendance/internal/engine"
	"github.com/jon4hz/attendance/internal/password"
	"github.com/jon4hz/attendance/internal/tracker"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the attendance server",
	Long:  `Start the attendance web server and the background report job.`,
	Example: `attendance serve --config config.yml
attendance serve -c /path/to/config.yml --log-level debug
`,
	RunE: startServer,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// newTracker wires the tracker with the configured password hasher and login throttle.
func newTracker(cfg *config.Config, db database.DB) *tracker.Tracker {
	var throttle tracker.Throttle
	if cfg.ThrottleEnabled() {
		throttle = cache.NewLoginThrottle(cfg.Cache, cfg.Auth)
	}
	return tracker.New(db, password.New(password.DefaultIterations), throttle)
}

func startServer(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	db, err := database.New(cfg.Database.Path)
	if err != nil {
		log.Fatalf("failed to initialize database: %v", err)
	}
	defer db.Close() //nolint: errcheck

	t := newTracker(cfg, db)

	eng, err := engine.New(cfg.Report, t)
	if err != nil {
		return fmt.Errorf("failed to create engine: %w", err)
	}

	if log.GetLevel() != log.DebugLevel {
		gin.SetMode(gin.ReleaseMode)
	}
	server, err := api.New(cfg, t)
	if err != nil {
		return fmt.Errorf("failed to create API server: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return eng.Run(ctx)
	})
	g.Go(func() error {
		return server.Run(ctx)
	})

	log.Info("attendance started successfully")
	err = g.Wait()
	log.Info("shutting down gracefully...")

	if cerr := eng.Close(); cerr != nil {
		log.Error("failed to stop engine", "error", cerr)
	}
	return err
}
