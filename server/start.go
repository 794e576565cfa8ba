package server

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"location-service/auth"
	cachepackage "location-service/cache"
	"location-service/config"
	"location-service/database"
	"location-service/ledger"
	"location-service/store"

	"github.com/umakantv/go-utils/logger"
	"go.uber.org/zap"
)

// StartServer brings up storage, the optional key cache and the HTTP server,
// then blocks until SIGINT/SIGTERM and shuts down gracefully.
func StartServer(cfg *config.Config) error {
	logger.Info("Starting Location Service...")

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Initialize database
	dbConn, err := database.InitializeDatabase(ctx, cfg.Database)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	// Initialize cache
	redisClient, err := cachepackage.InitializeCache(ctx, cfg.Redis)
	if err != nil {
		return err
	}

	hasher, err := auth.NewPasswordHasher(cfg.Auth.BcryptCost)
	if err != nil {
		return err
	}

	var opts []auth.Option
	if redisClient != nil {
		defer redisClient.Close()
		opts = append(opts, auth.WithKeyCache(cachepackage.NewKeyCache(redisClient, cfg.Redis.KeyTTL)))
	}

	accounts := auth.NewService(store.NewUsers(dbConn), hasher, auth.NewKeyIssuer(), opts...)
	locations := ledger.New(store.NewLocations(dbConn))

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      NewRouter(accounts, locations),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	serveErr := make(chan error, 1)
	go func() {
		logger.Info("Location Service started", zap.String("port", cfg.Server.Port))
		logger.Info("Health check: GET /health")
		logger.Info("API endpoints: POST /api/register, POST /api/login, POST /api/location, POST /api/locations/upload, GET /api/locations")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		if err != nil {
			logger.Error("Server failed to start", zap.Error(err))
			return err
		}
		return nil
	case <-ctx.Done():
	}

	logger.Info("Shutdown signal received, draining connections", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Graceful shutdown failed", zap.Error(err))
		return err
	}

	logger.Info("Location Service stopped")
	return nil
}

// RunMigrations applies pending schema migrations and exits.
func RunMigrations(cfg *config.Config) error {
	dbConn, err := database.Open(cfg.Database)
	if err != nil {
		return err
	}
	defer dbConn.Close()

	if err := database.Migrate(context.Background(), dbConn); err != nil {
		return err
	}
	logger.Info("Migrations applied", zap.String("driver", cfg.Database.Driver))
	return nil
}
