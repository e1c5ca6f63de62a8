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

	"github.com/rs/zerolog/log"

	"tripwise/internal/archive"
	"tripwise/internal/config"
	"tripwise/internal/handler"
	"tripwise/internal/llm"
	"tripwise/internal/llm/claude"
	"tripwise/internal/llm/gemini"
	"tripwise/internal/llm/openai"
	"tripwise/internal/logger"
	"tripwise/internal/ocr"
	"tripwise/internal/ocr/vision"
	"tripwise/internal/port"
	"tripwise/internal/realtime"
	"tripwise/internal/repository/postgres"
	"tripwise/internal/router"
	"tripwise/internal/service"
	s3storage "tripwise/internal/storage/s3"
)

const shutdownTimeout = 15 * time.Second

func main() {
	if err := run(); err != nil {
		log.Fatal().Err(err).Msg("server exited")
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Init(cfg.Log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := postgres.NewDB(ctx, &cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	templateRepo := postgres.NewTemplateRepo(db)
	estimateRepo := postgres.NewBudgetEstimateRepo(db)
	postRepo := postgres.NewPostRepo(db, cfg.DB.TxAttempts)
	teamRepo := postgres.NewTeamRepo(db, cfg.DB.TxAttempts)

	// Initialize upstream providers
	llm.RegisterProvider("openai", func(c *config.LLMConfig) (port.LanguageModel, error) {
		return openai.NewClient(c), nil
	})
	llm.RegisterProvider("gemini", func(c *config.LLMConfig) (port.LanguageModel, error) {
		return gemini.NewClient(c), nil
	})
	llm.RegisterProvider("claude", func(c *config.LLMConfig) (port.LanguageModel, error) {
		return claude.NewClient(c), nil
	})
	model, err := llm.New(&cfg.LLM)
	if err != nil {
		return fmt.Errorf("failed to initialize language model: %w", err)
	}
	log.Info().Str("provider", cfg.LLM.Provider).Msg("language model configured")

	detector, err := newDetector(&cfg.OCR)
	if err != nil {
		return err
	}

	extractionArchive, err := newArchive(cfg)
	if err != nil {
		return err
	}

	hub := realtime.NewHub(cfg.Realtime.BufferSize)
	hub.Start(ctx)
	defer hub.Stop()

	// Initialize services
	authSvc := service.NewAuthService(cfg.Auth)
	receiptSvc := service.NewReceiptService(detector, model, extractionArchive)
	budgetSvc := service.NewBudgetService(templateRepo, estimateRepo, model, extractionArchive, hub)
	communitySvc := service.NewCommunityService(postRepo, hub)
	teamSvc := service.NewTeamService(teamRepo, hub)
	topicAuthz := service.NewTopicAuthorizer(templateRepo, teamRepo)

	// Setup router
	r := router.Setup(authSvc, cfg.CORS.AllowedOrigins, router.Handlers{
		Functions: handler.NewFunctionsHandler(receiptSvc, budgetSvc),
		Budget:    handler.NewBudgetHandler(budgetSvc),
		Community: handler.NewCommunityHandler(communitySvc),
		Team:      handler.NewTeamHandler(teamSvc),
		Stream:    handler.NewStreamHandler(hub, topicAuthz, cfg.Realtime.Heartbeat),
		Health:    handler.NewHealthHandler(db),
	})

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Server.Port).Str("env", cfg.Server.Environment).Msg("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	// Closing subscriptions first lets open streams return before Shutdown waits on them.
	hub.Stop()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func newDetector(cfg *config.OCRConfig) (port.TextDetector, error) {
	var detector port.TextDetector
	switch cfg.Provider {
	case "vision":
		detector = vision.NewClient(cfg)
	default:
		return nil, fmt.Errorf("unknown ocr provider: %s", cfg.Provider)
	}
	if cfg.CacheTTL > 0 {
		detector = ocr.NewCachedDetector(detector, cfg.CacheTTL)
	}
	return detector, nil
}

func newArchive(cfg *config.Config) (port.ExtractionArchive, error) {
	switch cfg.Archive.Provider {
	case "", "noop":
		return archive.NewNoop(), nil
	case "s3":
		a, err := s3storage.NewArchive(&cfg.S3, cfg.Archive.Prefix)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 archive: %w", err)
		}
		return a, nil
	default:
		return nil, fmt.Errorf("unknown archive provider: %s", cfg.Archive.Provider)
	}
}
