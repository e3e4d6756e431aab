package main

import (
	"fmt"
	"log"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/yukikurage/followup-tasks/internal/config"
	"github.com/yukikurage/followup-tasks/internal/database"
	"github.com/yukikurage/followup-tasks/internal/handlers"
	"github.com/yukikurage/followup-tasks/internal/logging"
	"github.com/yukikurage/followup-tasks/internal/repository"
	"github.com/yukikurage/followup-tasks/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load(os.Getenv("CONFIG_FILE"))
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Set Gin mode
	gin.SetMode(cfg.Server.GinMode)

	logger := logging.Setup(cfg.Log, os.Stdout)

	// Connect to database
	db, err := database.Connect(cfg.DB, logger)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(db, logger); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	taskRepo := repository.NewTaskRepository(db, cfg.Store.Timeout)
	taskService := services.NewTaskService(taskRepo, nil, logger)

	r := handlers.SetupRouter(handlers.RouterOptions{
		TaskHandler: handlers.NewTaskHandler(taskService, logger),
		APIKeyHash:  cfg.Auth.APIKeyHash,
		Logger:      logger,
	})

	// Start server
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	logger.Info("server starting", "addr", addr)
	if err := r.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
