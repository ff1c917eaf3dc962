package app

import (
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"

	"gopkg.in/natefinch/lumberjack.v2"

	"communityClient/internal/api"
	"communityClient/internal/config"
	"communityClient/internal/database"
	handlers "communityClient/internal/handler"
	"communityClient/internal/middleware"
	"communityClient/internal/repository"
	"communityClient/internal/service"
)

// App wires the client: logging, session database, API transport and controllers.
func App(cfg *config.Config) (*database.DB, *handlers.Handlers, error) {
	if err := setupLogging(cfg.Log); err != nil {
		return nil, nil, err
	}

	// connection DB
	db, err := database.ConnectDB(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open session database: %w", err)
	}

	// enabling dependencies
	repo := repository.NewRepository(db.DB)

	cred := middleware.NewCredential()
	httpClient := &http.Client{
		Transport: middleware.Chain(nil,
			middleware.RequestIDMiddleware,
			middleware.LoggingMiddleware,
			middleware.AuthMiddleware(cred),
		),
		Timeout: cfg.API.RequestTimeout,
	}
	client := api.NewClient(cfg.API.BaseURL, httpClient)

	notifier := handlers.NewNotifier(os.Stderr)
	services := service.NewService(repo, client, cred, notifier)

	return db, handlers.NewHandlers(services, notifier, cfg, os.Stdout), nil
}

// setupLogging routes the standard logger into a rotating file, and also to stderr when verbose.
func setupLogging(cfg config.Log) error {
	if err := os.MkdirAll(filepath.Dir(cfg.File), 0o700); err != nil {
		return fmt.Errorf("failed to create log directory: %w", err)
	}

	var out io.Writer = &lumberjack.Logger{
		Filename:   cfg.File,
		MaxSize:    cfg.MaxSizeMB,
		MaxBackups: cfg.MaxBackups,
		MaxAge:     cfg.MaxAgeDays,
		Compress:   true,
	}
	if cfg.Verbose {
		out = io.MultiWriter(out, os.Stderr)
	}

	log.SetOutput(out)
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)
	return nil
}
