// Package main is the entry point for the annotator API server.
// Its sole responsibility is wiring dependencies together and starting the server.
// No business logic belongs here.
package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"

	"github.com/pkordes/annotator/internal/config"
	"github.com/pkordes/annotator/internal/handler"
	"github.com/pkordes/annotator/internal/middleware"
	"github.com/pkordes/annotator/internal/repo"
	"github.com/pkordes/annotator/internal/service"
	"github.com/pkordes/annotator/internal/submit"
	"github.com/pkordes/annotator/internal/workspace"
	"github.com/pkordes/annotator/migrations"
)

// configPathEnv names the optional YAML config file.
const configPathEnv = "ANNOTATOR_CONFIG"

func main() {
	// --- Config -----------------------------------------------------------
	cfg, err := config.Load(os.Getenv(configPathEnv))
	if err != nil {
		slog.Error("configuration error", "error", err)
		os.Exit(1)
	}

	// --- Logger -----------------------------------------------------------
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: cfg.Level(),
	}))
	slog.SetDefault(logger)

	// --- Workspace and export ---------------------------------------------
	ws := workspace.New(logger)

	var submitter service.Submitter
	if !cfg.SubmitDisabled {
		client := submit.NewClient(cfg.SubmitURL, cfg.SubmitTimeout)
		submitter = client
		slog.Info("annotation submission enabled", "url", client.URL(), "timeout", cfg.SubmitTimeout)
	}
	exportSvc := service.NewExportService(ws, submitter, logger)

	// --- Collection endpoint (optional) -----------------------------------
	var submissions handler.SubmissionServicer
	if cfg.DatabaseURL != "" {
		pool, err := openPool(context.Background(), cfg.DatabaseURL)
		if err != nil {
			slog.Error("failed to connect to database", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		slog.Info("database connection established")

		applied, err := migrations.Up(context.Background(), stdlib.OpenDBFromPool(pool))
		if err != nil {
			slog.Error("failed to apply migrations", "error", err)
			os.Exit(1)
		}
		slog.Info("migrations applied", "versions", applied)

		submissions = service.NewSubmissionService(repo.NewSubmissionRepo(pool))
	} else {
		slog.Info("database_url not set; collection endpoint disabled")
	}

	// --- Router -----------------------------------------------------------
	// Middleware is applied in order: RequestID → RealIP → Logger → Recoverer
	// → CORS → body limit.
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.NewSlogLogger(logger))
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.NewCORSHandler(cfg.AllowedOrigins()))
	r.Use(middleware.NewMaxBodySizeHandler(cfg.MaxBodyBytes))

	server := handler.NewServer(ws, exportSvc, submissions, logger)
	r.Mount("/", server.Routes())

	// --- HTTP Server ------------------------------------------------------
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown: wait for OS signal, drain in-flight requests for up
	// to 15 seconds, then wait for pending submissions.
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		slog.Info("server starting", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	<-stop
	slog.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		slog.Error("shutdown error", "error", err)
	}
	exportSvc.Wait()
	slog.Info("server stopped")
}

// openPool creates a pgxpool and verifies the database is reachable before
// the server accepts traffic.
func openPool(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, err
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return pool, nil
}
