package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"flowershop/internal/catalog"
	"flowershop/internal/config"
	"flowershop/internal/faq"
	"flowershop/internal/handler"
	"flowershop/internal/middleware"
	"flowershop/internal/notify"
	"flowershop/internal/router"
	"flowershop/internal/service"
	"flowershop/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Initialize logger
	logger := config.NewLogger(cfg.Logger)
	logger.Info().Msg("starting flowershop server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize catalog reader over the content API
	cmsClient := catalog.NewClient(cfg.CMS.Endpoint(), cfg.CMS.APIKey, cfg.CMS.Timeout(), logger)
	reader := catalog.NewReader(cmsClient, cfg.CMS.RevalidateInterval(), logger)

	// Load FAQ content with S3 and local fallback
	fileLoader := faq.NewFileLoader(logger)
	var s3Loader faq.Loader

	if cfg.S3.Enabled {
		s3Loader, err = faq.NewS3Loader(ctx, cfg.S3.Bucket, cfg.S3.Region, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 loader, falling back to local file system only")
			s3Loader = nil
		}
	} else {
		logger.Info().Msg("using local file system for FAQ content (S3 disabled)")
	}

	faqLoader := faq.NewFallbackLoader(s3Loader, fileLoader, cfg.S3.Prefix, logger)
	faqs := faq.LoadOrDefault(ctx, faqLoader, cfg.FAQ.Path, logger)

	// Initialize outbound channels
	channels := notify.FromConfig(cfg, &http.Client{Timeout: notify.DefaultTimeout})
	if len(channels) == 0 {
		logger.Warn().Msg("no notification channel configured, submissions will be refused")
	}
	for _, ch := range channels {
		logger.Info().Str("channel", ch.Name()).Msg("notification channel enabled")
	}

	// Initialize services
	catalogService := service.NewCatalogService(reader, logger)
	relayService := service.NewRelayService(channels, logger)

	renderer, err := web.NewRenderer()
	if err != nil {
		return fmt.Errorf("failed to initialize templates: %w", err)
	}

	// Initialize HTTP handlers
	storefrontHandler := handler.NewStorefrontHandler(catalogService, relayService, faqs, renderer, logger)
	catalogHandler := handler.NewCatalogHandler(catalogService, logger)
	relayHandler := handler.NewRelayHandler(relayService, logger)

	limiter := middleware.NewRateLimiter(cfg.RateLimit.RequestsPerMinute, cfg.RateLimit.Burst, logger)
	limiter.StartCleanup(ctx, 10*time.Minute)

	if cfg.Revalidate.APIKey == "" {
		logger.Info().Msg("revalidation endpoint disabled (no API key)")
	}

	// Initialize router
	mux := router.New(storefrontHandler, catalogHandler, relayHandler, limiter, cfg.Revalidate.APIKey, logger)

	// Create HTTP server; the write timeout leaves room for the outbound relay calls
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: notify.DefaultTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Channel to listen for errors from the server
	serverErrors := make(chan error, 1)

	// Start HTTP server in a goroutine
	go func() {
		logger.Info().
			Str("address", cfg.Server.Address()).
			Msg("HTTP server started")
		serverErrors <- server.ListenAndServe()
	}()

	// Channel to listen for interrupt signals
	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	// Block until we receive a signal or an error
	select {
	case err := <-serverErrors:
		return fmt.Errorf("server error: %w", err)

	case sig := <-shutdown:
		logger.Info().
			Str("signal", sig.String()).
			Msg("shutdown signal received, starting graceful shutdown")

		// Create a context with timeout for shutdown
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		// Attempt graceful shutdown
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("failed to shutdown server gracefully")
			// Force close
			if closeErr := server.Close(); closeErr != nil {
				logger.Error().Err(closeErr).Msg("failed to close server")
			}
			return fmt.Errorf("server shutdown failed: %w", err)
		}

		logger.Info().Msg("server shutdown completed")
	}

	return nil
}
