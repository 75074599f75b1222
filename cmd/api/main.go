package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"kitchen-guide/internal/auth"
	"kitchen-guide/internal/config"
	"kitchen-guide/internal/database"
	"kitchen-guide/internal/handler"
	"kitchen-guide/internal/repository"
	"kitchen-guide/internal/router"
	"kitchen-guide/internal/service"
	"kitchen-guide/internal/storage"
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
	logger.Info().Msg("starting kitchen-guide server")

	// Create context for application lifecycle
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize database connection pool
	pool, err := database.NewPool(ctx, cfg.Database, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer pool.Close()

	// Apply schema and seed the default admin account
	if err := database.Migrate(ctx, pool, logger); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	// Initialize image storage with S3 and local fallback
	var store storage.Store
	if cfg.Storage.S3Enabled {
		s3Store, err := storage.NewS3Store(ctx, cfg.Storage.Bucket, cfg.Storage.Region, cfg.Storage.MaxUploadBytes, logger)
		if err != nil {
			logger.Warn().
				Err(err).
				Msg("failed to initialise S3 storage, falling back to local file system")
		} else {
			store = s3Store
		}
	}
	if store == nil {
		localStore, err := storage.NewLocalStore(cfg.Storage.UploadDir, cfg.Storage.MaxUploadBytes, logger)
		if err != nil {
			return fmt.Errorf("failed to initialize local storage: %w", err)
		}
		store = localStore
		logger.Info().Str("dir", cfg.Storage.UploadDir).Msg("using local file system for image uploads")
	}

	// Initialize repositories
	dbTimeout := time.Duration(cfg.Database.AcquireTimeout) * time.Second
	productRepo := repository.NewProductRepository(pool, dbTimeout, logger)
	preparationRepo := repository.NewPreparationRepository(pool, dbTimeout, logger)
	userRepo := repository.NewUserRepository(pool, dbTimeout, logger)

	// Initialize token issuer and services
	tokenExpiry := time.Duration(cfg.Auth.TokenExpiryHours) * time.Hour
	issuer := auth.NewTokenIssuer(cfg.Auth.JWTSecret, tokenExpiry)

	productService := service.NewProductService(productRepo, store, logger)
	preparationService := service.NewPreparationService(preparationRepo, store, logger)
	authService := service.NewAuthService(userRepo, issuer, logger)

	// Initialize HTTP handlers
	productHandler := handler.NewProductHandler(productService, cfg.Storage.MaxUploadBytes, logger)
	preparationHandler := handler.NewPreparationHandler(preparationService, cfg.Storage.MaxUploadBytes, logger)
	authHandler := handler.NewAuthHandler(authService, tokenExpiry, logger)
	searchHandler := handler.NewSearchHandler(productService, preparationService, logger)

	// Initialize router
	mux := router.New(productHandler, preparationHandler, authHandler, searchHandler, issuer, cfg.Storage.UploadDir, logger)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Address(),
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
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
