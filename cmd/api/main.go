package main

import (
	"log"

	_ "backend/api/swagger" // swagger docs
	"backend/internal/cache"
	"backend/internal/config"
	"backend/internal/database"
	"backend/internal/handler"
	"backend/internal/middleware"
	"backend/internal/pdf"
	"backend/internal/repository"
	"backend/internal/service"
	"backend/internal/websocket"
	"backend/pkg/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// @title           Fleet Operations API
// @version         1.0
// @description     Fleet KPI dashboards and IFTA fuel-tax report generation.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	cfg := config.Load()
	logger.SetLevel(cfg.Log.Level)

	db, err := database.NewConnection(cfg.Database.DSN())
	if err != nil {
		log.Fatalf("Database connection failed: %v", err)
	}
	logger.Log.Info().Msg("connected to PostgreSQL")

	kpiCache, err := cache.NewKPICache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("kpi cache unavailable, continuing without caching")
		kpiCache = cache.NewNoopKPICache()
	}

	// Set up WebSocket Hub
	wsHub := websocket.NewHub()
	go wsHub.Run()

	// Set up dependencies (Repository -> Service -> Handler)
	kpiRepo := repository.NewKPIRepository(db)
	tripRepo := repository.NewTripRepository(db)
	fuelRepo := repository.NewFuelRepository(db)
	rateRepo := repository.NewTaxRateRepository(db)
	reportRepo := repository.NewReportRepository(db)
	auditRepo := repository.NewAuditRepository(db)
	txManager := repository.NewTransactionManager(db)

	generator := pdf.NewService(cfg.Reports)
	if err := generator.EnsureDirectories(); err != nil {
		log.Fatalf("Report directories unavailable: %v", err)
	}

	kpiService := service.NewKPIService(kpiRepo, kpiCache, wsHub)
	iftaService := service.NewIFTAService(tripRepo, fuelRepo, rateRepo)
	reportService := service.NewReportService(generator, iftaService, tripRepo, fuelRepo, reportRepo, auditRepo, txManager, wsHub)
	tripService := service.NewTripService(tripRepo)
	fuelService := service.NewFuelService(fuelRepo)

	// Initialize Handlers
	dashboardHandler := handler.NewDashboardHandler(kpiService)
	reportHandler := handler.NewReportHandler(reportService)
	tripHandler := handler.NewTripHandler(tripService)
	fuelHandler := handler.NewFuelHandler(fuelService)
	taxRateHandler := handler.NewTaxRateHandler(iftaService)

	// Set up Gin Router
	gin.SetMode(cfg.Server.Mode)
	router := gin.Default()

	// CORS configuration
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.Server.AllowedOrigins
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	// WebSocket endpoint for dashboard pushes
	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	// Register API Routes
	dashboardHandler.RegisterRoutes(router.Group(""))
	reportHandler.RegisterRoutes(router.Group(""))
	tripHandler.RegisterRoutes(router.Group(""))
	fuelHandler.RegisterRoutes(router.Group(""))
	taxRateHandler.RegisterRoutes(router.Group(""))

	logger.Log.Info().Str("port", cfg.Server.Port).Msg("server listening")
	if err := router.Run(":" + cfg.Server.Port); err != nil {
		log.Fatalf("Server failed: %v", err)
	}
}
