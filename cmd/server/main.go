package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/meshai-labs/meshai/internal/api"
	"github.com/meshai-labs/meshai/internal/config"
	"github.com/meshai-labs/meshai/internal/handlers"
	"github.com/meshai-labs/meshai/internal/llm"
	"github.com/meshai-labs/meshai/internal/persona"
	"github.com/meshai-labs/meshai/internal/session"
	"github.com/meshai-labs/meshai/internal/store"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize logger
	var logger zerolog.Logger
	if cfg.IsDevelopment() {
		logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.RFC3339}).
			With().
			Timestamp().
			Logger()
	} else {
		logger = zerolog.New(os.Stdout).
			With().
			Timestamp().
			Logger()
	}

	ctx := context.Background()

	// Initialize persona catalog
	repo, err := newRepository(ctx, cfg)
	if err != nil {
		logger.Fatal().Err(err).Msg("persona catalog initialization failed")
	}
	defer repo.Close()

	// Initialize session archive
	var archive *store.RedisArchive
	if cfg.RedisURL != "" {
		archive, err = store.NewRedisArchive(ctx, cfg.RedisURL)
		if err != nil {
			logger.Fatal().Err(err).Msg("redis connection failed")
		}
		defer archive.Close()
		logger.Info().Msg("connected to Redis")
	}

	// Initialize generation provider
	gen := llm.NewAnthropic(llm.Config{
		Model:       cfg.Model,
		Temperature: cfg.Temperature,
		MaxTokens:   cfg.MaxTokens,
		Timeout:     cfg.GenTimeout,
	})
	if !gen.Configured() {
		logger.Warn().Msg("ANTHROPIC_API_KEY not set, generation calls will fail")
	}

	orch := session.New(repo, gen, logger, session.Config{
		FocusRounds: cfg.FocusRounds,
		GroupRounds: cfg.GroupRounds,
	})

	h := handlers.NewHandler(repo, orch, gen, archive, logger)
	router := api.NewRouter(logger, h, archive, cfg.RateLimitWhitelist)

	// Simulation requests block for all discussion rounds, so the write
	// timeout is generous.
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 5 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Msg("starting meshai server")

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server...")

	// Graceful shutdown with 30 second timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal().Err(err).Msg("server forced to shutdown")
	}

	logger.Info().Msg("server stopped")
}

// newRepository selects the persona backend: postgres when DATABASE_URL is
// set, sqlite when PERSONA_DB is set, JSON files otherwise.
func newRepository(ctx context.Context, cfg *config.Config) (persona.Repository, error) {
	switch {
	case cfg.DatabaseURL != "":
		return persona.NewPostgresRepository(ctx, cfg.DatabaseURL)
	case cfg.PersonaDB != "":
		return persona.NewSQLiteRepository(ctx, cfg.PersonaDB)
	default:
		return persona.NewFileRepository(cfg.PersonaDir)
	}
}
