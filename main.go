package main

import (
	"github.com/Mahekpandey/DyslexiaDetection/internal/config"
	"github.com/Mahekpandey/DyslexiaDetection/internal/database"
	logger "github.com/Mahekpandey/DyslexiaDetection/internal/logging"
	"github.com/Mahekpandey/DyslexiaDetection/internal/models"
	"github.com/Mahekpandey/DyslexiaDetection/internal/repository"
	"github.com/Mahekpandey/DyslexiaDetection/internal/router"
	"github.com/Mahekpandey/DyslexiaDetection/internal/session"

	"go.uber.org/zap"
)

func main() {
	// Initialize Logger
	log, err := logger.Init(".")
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	defer log.Sync()

	// Initialize Configuration
	if err := config.Init(".", log); err != nil {
		log.Fatal("Failed to load configuration", zap.Error(err))
	}

	// Initialize Database
	database.Init(log)

	// Load reading passages at startup
	passages, err := models.LoadPassages(config.Conf.Server.PassagesFile)
	if err != nil {
		log.Fatal("Failed to load passages", zap.Error(err))
	}

	// Session manager with persisted summaries and idle reaping
	manager := session.NewManager(log, config.Conf.Session, repository.NewResultRepository())
	manager.StartReaper()

	// Setup router, passing the logger to it
	r := router.Setup(log, manager, passages)

	// Start the Gin server
	port := ":" + config.Conf.Server.Port
	log.Info("Server listening on http://localhost" + port)
	if err := r.Run(port); err != nil {
		log.Fatal("Failed to run Gin server", zap.Error(err))
	}
}
