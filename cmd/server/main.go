package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	_ "versepin/docs"
	"versepin/internal/config"
	"versepin/internal/email/noop"
	"versepin/internal/email/ses"
	"versepin/internal/handler"
	"versepin/internal/pinterest"
	"versepin/internal/pipeline"
	"versepin/internal/port"
	"versepin/internal/repository/postgres"
	"versepin/internal/router"
	"versepin/internal/service"
	s3storage "versepin/internal/storage/s3"
	"versepin/internal/vision"
	_ "versepin/internal/vision/gemini"
)

// @title VersePin API
// @version 1.0
// @description Turns Malayalam Bible verse artwork into published Pinterest pins.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	db, err := postgres.NewDB(&cfg.DB)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer db.Close()

	// Initialize repositories
	postRepo := postgres.NewPostRepo(db)

	// Initialize storage
	s3Client, err := s3storage.NewS3Client(&cfg.S3)
	if err != nil {
		return fmt.Errorf("failed to initialize S3 client: %w", err)
	}

	// Initialize operator notifications
	var emailSender port.EmailSender
	switch cfg.Email.Provider {
	case "ses":
		emailSender, err = ses.NewSESSender(cfg.Email.Region, cfg.Email.FromAddress, cfg.Email.FromName, cfg.Email.OperatorAddress)
		if err != nil {
			return fmt.Errorf("failed to initialize SES sender: %w", err)
		}
	default:
		emailSender = noop.NewNoopSender()
	}

	// Initialize vision extractor and Pinterest client
	extractor, err := vision.NewExtractor(&cfg.Vision)
	if err != nil {
		return fmt.Errorf("failed to initialize vision extractor: %w", err)
	}
	pinClient := pinterest.NewClient(&cfg.Pinterest)

	// Initialize services
	authSvc := service.NewAuthService(cfg.Auth, cfg.JWT)
	postSvc := service.NewPostService(
		postRepo, s3Client, extractor, pinClient, emailSender,
		pipeline.New(pipeline.TrinityBranding()),
		&cfg.S3, &cfg.Pinterest,
	)

	// Initialize handlers
	authH := handler.NewAuthHandler(authSvc)
	postH := handler.NewPostHandler(postSvc)
	healthH := handler.NewHealthHandler(db)

	// Setup router
	r := router.Setup(authSvc, authH, postH, healthH)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Start the queue worker that picks up uploaded posts
	worker := service.NewPostQueueWorker(postRepo, postSvc, service.PostQueueConfig{
		PollInterval: time.Duration(cfg.Queue.PollIntervalSecs) * time.Second,
		Concurrency:  cfg.Queue.Concurrency,
	})
	workerDone := make(chan struct{})
	go func() {
		worker.Start(ctx)
		close(workerDone)
	}()

	srv := &http.Server{
		Addr:         cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		stop()
		<-workerDone
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Println("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	<-workerDone

	return nil
}
