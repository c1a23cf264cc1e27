package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/Karan-parmar-007/aurifi-backend/internal/application/service"
	"github.com/Karan-parmar-007/aurifi-backend/internal/config"
	"github.com/Karan-parmar-007/aurifi-backend/internal/infrastructure/db"
	"github.com/Karan-parmar-007/aurifi-backend/internal/infrastructure/handler"
	"github.com/Karan-parmar-007/aurifi-backend/internal/infrastructure/logger"
	"github.com/Karan-parmar-007/aurifi-backend/internal/infrastructure/middleware"
	"github.com/dgraph-io/badger/v3"
	"github.com/gorilla/mux"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", map[string]interface{}{
			"error": err.Error(),
		})
	}

	log := logger.New(cfg.Logging.Level)
	logger.SetDefaultLogger(log)
	defer log.Sync()

	log.Info("Starting transaction workflow service", map[string]interface{}{
		"addr":     cfg.Server.Addr(),
		"data_dir": cfg.Store.DataDir,
	})

	// Setup BadgerDB
	if err := os.MkdirAll(cfg.Store.DataDir, 0755); err != nil {
		log.Fatal("Failed to create database directory", map[string]interface{}{
			"data_dir": cfg.Store.DataDir,
			"error":    err.Error(),
		})
	}

	badgerOpts := badger.DefaultOptions(cfg.Store.DataDir)
	badgerOpts.Logger = nil // Disable Badger's default logger
	badgerOpts.SyncWrites = cfg.Store.SyncWrites

	badgerDB, err := badger.Open(badgerOpts)
	if err != nil {
		log.Fatal("Failed to open database", map[string]interface{}{
			"data_dir": cfg.Store.DataDir,
			"error":    err.Error(),
		})
	}

	defer func() {
		if err := badgerDB.Close(); err != nil {
			log.Error("Error closing BadgerDB", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	// Initialize repositories
	txRepo := db.NewBadgerTransactionRepository(badgerDB)
	versionLookup := db.NewBadgerVersionLookup(badgerDB)

	// Initialize services
	txService := service.NewTransactionService(txRepo, versionLookup, log)
	workflowService := service.NewWorkflowService(txRepo, log)

	// Initialize handlers
	txHandler := handler.NewTransactionHandler(txService, log)
	workflowHandler := handler.NewWorkflowHandler(workflowService, log)
	healthHandler := handler.NewHealthHandler()

	// Setup router
	router := mux.NewRouter()
	router.Use(middleware.RequestIDMiddleware)
	router.Use(middleware.LoggingMiddleware(log))
	router.Use(middleware.RecoveryMiddleware(log))

	healthHandler.RegisterRoutes(router)
	txHandler.RegisterRoutes(router)
	workflowHandler.RegisterRoutes(router)

	server := &http.Server{
		Addr:    cfg.Server.Addr(),
		Handler: router,
	}

	// Start server
	go func() {
		log.Info("Server listening", map[string]interface{}{
			"addr": cfg.Server.Addr(),
		})
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Server failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()

	// Wait for shutdown signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server", map[string]interface{}{
		"timeout": cfg.Server.ShutdownTimeout.String(),
	})

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", map[string]interface{}{
			"error": err.Error(),
		})
	}

	log.Info("Server stopped", nil)
}
