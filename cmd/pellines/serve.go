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

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vangoframework/pellines/internal/auth"
	"github.com/vangoframework/pellines/internal/config"
	"github.com/vangoframework/pellines/internal/database"
	"github.com/vangoframework/pellines/internal/database/queries"
	"github.com/vangoframework/pellines/internal/domain"
	"github.com/vangoframework/pellines/internal/handlers"
	"github.com/vangoframework/pellines/internal/middleware"
	"github.com/vangoframework/pellines/internal/weather"
)

var serveMigrate bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web server",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&serveMigrate, "migrate", false, "Apply the schema before serving")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Load config
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	ctx, stop := context.WithCancel(cmd.Context())
	defer stop()

	// Database
	db, err := database.New(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	if serveMigrate {
		if err := db.Migrate(ctx); err != nil {
			return fmt.Errorf("failed to migrate: %w", err)
		}
	}

	// Session store
	sessions, err := auth.NewSessionStore(
		cfg.SessionSecret,
		cfg.SessionMaxAge,
		cfg.IsProduction(),
	)
	if err != nil {
		return err
	}

	// Identity provider
	verifier, err := auth.NewVerifier(ctx, cfg.Provider, logger)
	if err != nil {
		return fmt.Errorf("failed to load identity provider keys: %w", err)
	}
	defer verifier.Close()
	clerk := auth.NewClerkClient(cfg.ClerkSecretKey, cfg.ClerkAPIURL)

	// Weather
	forecasts := weather.NewCached(weather.NewClient(cfg.OpenWeatherAPIKey, domain.Zone), weather.DefaultTTL)
	if !forecasts.Configured() {
		logger.Warn("OPENWEATHER_API_KEY not set, weather is disabled")
	}

	// Metrics
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	metrics := middleware.NewMetrics(registry)

	limiter, err := middleware.NewRateLimiter(nil)
	if err != nil {
		return err
	}

	// Handlers
	h := handlers.New(cfg, queries.New(db.Pool), sessions, verifier, clerk, forecasts, logger)

	// Router
	r := chi.NewRouter()

	// Global middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(logger))
	r.Use(middleware.Recovery(logger))
	r.Use(metrics.Handler)
	r.Use(middleware.RateLimit(limiter))
	r.Use(middleware.Session(sessions))
	r.Use(middleware.Identity(verifier, logger))

	// Static files
	fileServer := http.FileServer(http.Dir("static"))
	r.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Health(r.Context()); err != nil {
			http.Error(w, "unhealthy", http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte("ok"))
	})
	r.Handle("/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	h.Routes(r)

	// Server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("server starting", "port", cfg.Port, "environment", cfg.Environment)
		if err := server.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case <-shutdown:
	}
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown error: %w", err)
	}

	logger.Info("shutdown complete")
	return nil
}
