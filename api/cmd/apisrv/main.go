package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/taylorkchan/japan-trip-planner/api/pkg/cache"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/config"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/db"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/hosted"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/jobs"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/log"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/planner"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/store"
	"github.com/taylorkchan/japan-trip-planner/api/pkg/webserver"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	if err := log.Init(&cfg.Logging); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger := log.GetLogger()

	logger.Info("Starting Japan Trip Planner API Server")
	logger.WithField("backend", cfg.Backend.Mode()).Info("Server initialization")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	backend, err := openBackend(cfg, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to open storage backend")
	}
	defer func() {
		if err := backend.Close(); err != nil {
			logger.WithError(err).Error("Failed to close storage backend")
		}
	}()

	workspace := planner.NewWorkspace(cfg.Planner.HistoryDepth)
	scheduler := jobs.NewManager(logger)

	idle := time.Duration(cfg.Planner.WorkspaceTTL) * time.Minute
	if err := scheduler.Add(jobs.WorkspaceSweepJob(cfg.Planner.SweepSchedule, workspace, idle)); err != nil {
		logger.WithError(err).Fatal("Failed to schedule workspace sweep")
	}

	// Attraction cache
	if cfg.Cache.Enabled() {
		rdb, err := cache.NewRedisClient(ctx, cfg.Cache.RedisURL)
		if err != nil {
			logger.WithError(err).Fatal("Failed to connect to redis")
		}
		defer rdb.Close()

		attractionCache := cache.New(backend.Attractions(), rdb, time.Duration(cfg.Cache.TTL)*time.Second, logger)
		backend = store.WithAttractions(backend, attractionCache)

		// cached entries may describe a catalog that was just reseeded
		if !cfg.Backend.UseHosted && cfg.Database.SeedCatalog {
			if n, err := attractionCache.Invalidate(ctx); err != nil {
				logger.WithError(err).Warn("Failed to invalidate attraction cache")
			} else {
				logger.WithField("keys", n).Info("Attraction cache invalidated")
			}
		}

		if err := scheduler.Add(jobs.CacheWarmJob(cfg.Cache.WarmSchedule, attractionCache)); err != nil {
			logger.WithError(err).Fatal("Failed to schedule cache warming")
		}
		if err := scheduler.RunNow("cache_warm"); err != nil {
			logger.WithError(err).Warn("Initial cache warm failed")
		}
	}

	logger.Info("Starting job scheduler...")
	if err := scheduler.Start(ctx); err != nil {
		logger.WithError(err).Fatal("Failed to start job scheduler")
	}

	// Initialize web server
	logger.Info("Initializing web server...")
	server, err := webserver.New(cfg, backend, workspace, logger)
	if err != nil {
		logger.WithError(err).Fatal("Failed to initialize web server")
	}

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logger.WithError(err).Fatal("Failed to start server")
		}
	}()

	logger.LogSystem("apisrv", "startup", true, map[string]interface{}{
		"address":       cfg.Server.GetServerAddr(),
		"backend":       backend.Mode(),
		"cache_enabled": cfg.Cache.Enabled(),
		"history_depth": cfg.Planner.HistoryDepth,
	})

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(),
		time.Duration(cfg.Server.GracefulStop)*time.Second)
	defer shutdownCancel()

	if err := server.Stop(shutdownCtx); err != nil {
		logger.WithError(err).Error("Server forced to shutdown")
	} else {
		logger.Info("Web server exited gracefully")
	}

	scheduler.Stop()
	cancel()

	logger.Info("Application exited gracefully")
}

// openBackend connects the storage backend selected by the configuration.
func openBackend(cfg *config.Config, logger *log.Logger) (store.Backend, error) {
	if cfg.Backend.UseHosted {
		logger.WithField("url", cfg.Hosted.URL).Info("Using hosted backend")
		return hosted.New(&cfg.Hosted, logger), nil
	}

	logger.Info("Connecting to database...")
	database, err := db.New(&cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("Running database migrations...")
	if err := database.Migrate(); err != nil {
		database.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}

	if cfg.Database.SeedCatalog {
		logger.Info("Seeding initial data...")
		if err := database.SeedInitialData(planner.DefaultCatalog(), cfg.Security.DemoUserID); err != nil {
			database.Close()
			return nil, fmt.Errorf("failed to seed initial data: %w", err)
		}
	}

	return db.NewRepository(database, logger), nil
}
