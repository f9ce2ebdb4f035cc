package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ipede/app-admin-service/internal/infrastructure/config"
	"github.com/ipede/app-admin-service/internal/infrastructure/database"
	"github.com/ipede/app-admin-service/internal/infrastructure/notification"
	httprouter "github.com/ipede/app-admin-service/internal/interfaces/http"
	"go.uber.org/zap"
)

// @title App Admin Service API
// @version 1.0
// @description Administrative backend for applications, clients, grants, resource servers and products
// @host localhost:8080
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, err := zap.NewProduction()
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	// Create database connection
	ctx := context.Background()
	db, err := database.NewPostgres(ctx, cfg, logger)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Apply pending schema migrations
	if err := db.RunMigrations(ctx, cfg.MigrationsDir); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}

	// Connect to the notification bus
	publisher, err := notification.NewAMQPPublisher(cfg.AMQPURL, cfg.NotificationExchange, logger)
	if err != nil {
		logger.Fatal("Failed to connect to notification bus", zap.Error(err))
	}
	defer publisher.Close()

	// Create router
	router := httprouter.NewRouter(db, cfg, publisher, logger)

	// Start server
	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Starting server", zap.Int("port", cfg.ServerPort))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	// Graceful shutdown
	logger.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exited properly")
}
