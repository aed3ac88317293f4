package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/linkup-social/linkup/internal/config"
	"github.com/linkup-social/linkup/internal/database"
	"github.com/linkup-social/linkup/internal/handlers"
	"github.com/linkup-social/linkup/internal/logging"
	"github.com/linkup-social/linkup/internal/middleware"
	"github.com/linkup-social/linkup/internal/services"
)

func main() {
	if err := run(); err != nil {
		logging.Error("Application error", map[string]interface{}{"error": err.Error()})
		os.Exit(1)
	}
}

func run() error {
	// Initialize logger
	logger := logging.New()

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger.Info("Starting LinkUp server...")

	// Connect to PostgreSQL
	logger.Info("Connecting to PostgreSQL", map[string]interface{}{
		"host": cfg.Database.Host,
		"port": cfg.Database.Port,
	})
	db, err := database.NewPostgresDB(cfg.Database.DSN())
	if err != nil {
		return fmt.Errorf("connecting to postgres: %w", err)
	}
	defer db.Close()
	logger.Info("Connected to PostgreSQL")

	// Run migrations
	logger.Info("Running database migrations...")
	migrator, err := database.NewMigrator(cfg.Database.DSN(), "migrations")
	if err != nil {
		return fmt.Errorf("creating migrator: %w", err)
	}
	if err := migrator.Up(); err != nil {
		_ = migrator.Close()
		return fmt.Errorf("running migrations: %w", err)
	}
	_ = migrator.Close()
	logger.Info("Migrations completed")

	// Connect to Redis
	logger.Info("Connecting to Redis", map[string]interface{}{
		"addr": cfg.Redis.Addr(),
	})
	redisDB, err := database.NewRedisDB(cfg.Redis.Addr(), cfg.Redis.Password, cfg.Redis.DB)
	if err != nil {
		return fmt.Errorf("connecting to redis: %w", err)
	}
	defer func() { _ = redisDB.Close() }()
	logger.Info("Connected to Redis")

	// Initialize services
	dbAdapter := services.NewPoolAdapter(db.Pool)
	redisAdapter := services.NewRedisAdapter(redisDB.Client)

	userService := services.NewUserService(dbAdapter)
	tokenService := services.NewTokenService(dbAdapter, redisAdapter, cfg.Auth)
	authService := services.NewAuthService(userService, tokenService, cfg.Auth.BcryptCost)
	friendService := services.NewFriendService(dbAdapter)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db, redisDB)
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	friendHandler := handlers.NewFriendHandler(friendService)

	// Initialize middleware
	authMiddleware := middleware.NewAuthMiddleware(tokenService)
	authRateLimiter := middleware.NewAuthRateLimiter(redisDB.Client)
	requestLogger := middleware.NewRequestLogger(logger)

	requireAuth := authMiddleware.RequireAuth
	limitAuth := authRateLimiter.Limit

	// Set up router
	mux := http.NewServeMux()

	// Health endpoints (no auth, no rate limit)
	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.HandleFunc("GET /ready", healthHandler.Ready)
	mux.HandleFunc("GET /live", healthHandler.Live)

	// Auth endpoints
	mux.Handle("POST /api/auth/register", limitAuth(http.HandlerFunc(authHandler.Register)))
	mux.Handle("POST /api/auth/login", limitAuth(http.HandlerFunc(authHandler.Login)))
	mux.Handle("POST /api/auth/refresh", limitAuth(http.HandlerFunc(authHandler.Refresh)))

	// User endpoints
	mux.Handle("GET /api/users", requireAuth(http.HandlerFunc(userHandler.Search)))

	// Friend request endpoints
	mux.Handle("POST /api/friends/requests", requireAuth(http.HandlerFunc(friendHandler.SendRequest)))
	mux.Handle("GET /api/friends/requests", requireAuth(http.HandlerFunc(friendHandler.ListRequests)))
	mux.Handle("PATCH /api/friends/requests/{id}", requireAuth(http.HandlerFunc(friendHandler.UpdateRequest)))

	// Build middleware chain (order matters: outermost first)
	var handler http.Handler = mux
	handler = authMiddleware.Authenticate(handler)
	handler = requestLogger.Apply(handler)

	// Create server
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         addr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	done := make(chan bool, 1)
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-quit
		logger.Info("Server is shutting down...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		server.SetKeepAlivesEnabled(false)
		if err := server.Shutdown(ctx); err != nil {
			logger.Error("Could not gracefully shutdown the server", map[string]interface{}{
				"error": err.Error(),
			})
		}
		close(done)
	}()

	logger.Info("Server listening", map[string]interface{}{
		"addr": addr,
	})
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	<-done
	logger.Info("Server stopped")
	return nil
}
