// Package main is the entry point for the AIPrintly mockup API server.
// It loads configuration, connects to services, sets up routing, and starts
// the HTTP server with graceful shutdown support.
package main

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"aiprintly/internal/cache"
	"aiprintly/internal/config"
	"aiprintly/internal/database"
	"aiprintly/internal/handlers"
	"aiprintly/internal/middleware"
	"aiprintly/internal/mockup"
	"aiprintly/internal/router"
	"aiprintly/internal/storage"
	"aiprintly/internal/store"
	"aiprintly/internal/watermark"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
	slog.SetDefault(logger)

	// A local .env fills in anything not already exported. Production
	// deployments configure the environment directly.
	if os.Getenv("APP_ENV") != "production" {
		if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			slog.Warn("failed to load .env file", "error", err)
		}
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	slog.Info("configuration loaded",
		"env", cfg.Env,
		"addr", cfg.Addr(),
		"mockup_provider", cfg.MockupProvider,
		"mockup_cache_ttl", cfg.MockupCacheTTL.String(),
	)

	db, err := database.Connect(cfg.DSN())
	if err != nil {
		slog.Error("failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		slog.Error("failed to run migrations", "error", err)
		os.Exit(1)
	}

	// Seed the development catalog (no-op if products already exist).
	if cfg.IsDev() {
		if err := database.Seed(db); err != nil {
			slog.Error("failed to seed database", "error", err)
			os.Exit(1)
		}
	}

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	// Mockup cache: Valkey when configured, otherwise in-process.
	var mockupCache mockup.Cache
	if cfg.UseValkey() {
		valkeyClient, err := cache.ConnectValkey(cfg.ValkeyHost, cfg.ValkeyPort, cfg.ValkeyPassword)
		if err != nil {
			slog.Error("failed to connect to valkey", "error", err)
			os.Exit(1)
		}
		defer valkeyClient.Close()
		mockupCache = cache.NewMockupCache(valkeyClient, cfg.MockupCacheTTL)
	} else {
		mem := cache.NewMemoryCache(cfg.MockupCacheTTL, cfg.MockupCacheMaxEntries)
		go mem.RunSweeper(ctx, 10*time.Minute)
		mockupCache = mem
		slog.Warn("valkey not configured, using in-memory mockup cache", "max_entries", cfg.MockupCacheMaxEntries)
	}

	// Object storage is optional; without it asset previews answer 503 and
	// mockups answer 503 for assets that carry no StorageURL of their own.
	storageClient, err := storage.New(
		cfg.S3Endpoint, cfg.S3Region, cfg.S3AccessKey, cfg.S3SecretKey,
		cfg.S3BucketPublic, cfg.S3BucketPrivate, cfg.S3PublicURL,
	)
	if err != nil {
		slog.Error("failed to initialize S3 storage", "error", err)
		os.Exit(1)
	}
	var (
		urls    mockup.URLResolver
		objects handlers.ObjectFetcher
	)
	if storageClient != nil {
		urls = storageClient
		objects = storageClient
		slog.Info("s3 storage connected",
			"endpoint", cfg.S3Endpoint,
			"public_bucket", storageClient.PublicBucket(),
			"private_bucket", storageClient.PrivateBucket(),
		)
	} else {
		slog.Warn("s3 storage not configured, asset previews and mockups of stored assets disabled")
	}

	productStore := store.NewProductStore(db)
	variantStore := store.NewVariantStore(db)
	assetStore := store.NewAssetStore(db)

	stamper, err := watermark.New(cfg.WatermarkText)
	if err != nil {
		slog.Error("failed to initialize watermark stamper", "error", err)
		os.Exit(1)
	}

	composer := mockup.New(productStore, variantStore, assetStore, urls, mockupCache, mockup.Options{
		PreviewBaseURL: cfg.MockupPreviewURL,
		Provider:       cfg.MockupProvider,
	})

	limiter := middleware.NewRateLimiter(cfg.WatermarkRateLimit, 10)
	defer limiter.Stop()

	api := handlers.NewAPI(productStore, assetStore, composer, stamper, objects)
	r := router.New(api, limiter, cfg.TrustProxyHeaders)

	// WriteTimeout covers decoding and stamping a 20 MB upload.
	srv := &http.Server{
		Addr:         cfg.Addr(),
		Handler:      r,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("server starting", "addr", cfg.Addr())
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	// Graceful shutdown: wait for SIGINT or SIGTERM, then drain connections.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit
	slog.Info("shutdown signal received", "signal", sig)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	slog.Info("server stopped gracefully")
}
