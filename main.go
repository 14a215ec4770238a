package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/joho/godotenv/autoload"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/Gerfy1/Gerfy-Portfolio/internal/config"
	"github.com/Gerfy1/Gerfy-Portfolio/internal/live"
	"github.com/Gerfy1/Gerfy-Portfolio/internal/logging"
	"github.com/Gerfy1/Gerfy-Portfolio/internal/preview"
)

// version is stamped at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	serve := func(cmd *cobra.Command, _ []string) error {
		return runServe(cmd.Context(), configPath)
	}

	root := &cobra.Command{
		Use:          "portfolio",
		Short:        "Serve the portfolio site",
		Version:      version,
		SilenceUsage: true,
		RunE:         serve,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "config.yaml", "path to an optional YAML config file")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Serve the site and its live channel over HTTP",
		RunE:  serve,
	})
	root.AddCommand(&cobra.Command{
		Use:   "preview",
		Short: "Watch the shuffle columns and section tracker in the terminal",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			return preview.Run(cmd.Context(), cfg)
		},
	})
	return root
}

func runServe(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	logger, err := logging.New(cfg.Log.Level, cfg.Log.Development)
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	gin.SetMode(cfg.Server.Mode)

	hub := live.NewHub(ctx, logger.Named("live"), cfg.Live.MaxSessions)
	site, err := newSite(cfg, logger, hub)
	if err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           setupRouter(site),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		logger.Info("server listening", zap.String("addr", srv.Addr), zap.String("version", version))
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listening on %s: %w", srv.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	return nil
}

func setupRouter(s *site) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger(s.log, s.hasher))
	r.LoadHTMLGlob(s.cfg.Server.Templates)

	r.Static("/images", s.cfg.Server.ImagesDir)
	r.Static("/static", s.cfg.Server.StaticDir)

	// Home page route
	r.GET("/", s.index)

	// HTMX preference toggles
	r.POST("/preferences/language", s.toggleLanguage)
	r.POST("/preferences/theme", s.toggleTheme)

	// Live channel for the tracker, shuffle columns and typed headline
	r.GET("/live", func(c *gin.Context) {
		lang, theme := s.preferences(c)
		s.hub.Serve(c.Writer, c.Request, s.liveSettings(lang, theme))
	})

	setupOpsRoutes(r, s)
	return r
}
