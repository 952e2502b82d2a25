package main

import (
	"fmt"
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"covid-results-server/internal/clinical"
	"covid-results-server/internal/config"
	"covid-results-server/internal/ledger"
	"covid-results-server/internal/logger"
	"covid-results-server/internal/middleware"
	"covid-results-server/internal/models"
	"covid-results-server/internal/routes"
)

func main() {
	// Load environment variables; a missing .env file is fine in deployment.
	_ = godotenv.Load()

	// Initialize configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Error loading config: %v", err)
	}

	zapLog, err := logger.Initialize(logger.Config{Debug: cfg.Debug})
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}
	defer func() { _ = zapLog.Sync() }()

	// Connect to the external clinical-records database (read-only).
	clinicalDB, err := models.OpenClinicalDB(cfg.Clinical.DSN)
	if err != nil {
		zapLog.Fatal("error connecting to clinical database", zap.Error(err))
	}

	// Open the local store and create the ledger tables, as necessary.
	localDB, err := models.OpenLocalDB(cfg.LocalDBPath)
	if err != nil {
		zapLog.Fatal("error opening local database", zap.Error(err))
	}

	// Initialize Gin router
	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(zapLog))

	// Configure CORS
	corsConfig := cors.DefaultConfig()
	if cfg.Origin == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = []string{cfg.Origin}
	}
	corsConfig.AllowMethods = []string{"GET", "PUT", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept"}
	router.Use(cors.New(corsConfig))

	// Set up routes with explicit collaborators so handlers never reach for
	// global state.
	gateway := clinical.NewSQLGateway(clinicalDB)
	notifications := ledger.NewSQLNotificationLedger(localDB)
	views := ledger.NewSQLViewLedger(localDB)
	routes.SetupRoutes(router, gateway, notifications, views, zapLog)

	// Start server
	serverAddr := fmt.Sprintf(":%s", cfg.Port)
	zapLog.Info("server running", zap.String("port", cfg.Port))
	if err := router.Run(serverAddr); err != nil {
		zapLog.Fatal("failed to start server", zap.Error(err))
	}
}
