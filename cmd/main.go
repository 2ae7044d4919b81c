package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"konnect/internal/auth"
	"konnect/internal/config"
	"konnect/internal/database"
	"konnect/internal/handlers"
	"konnect/internal/jobs"
	"konnect/internal/repository"
	"konnect/internal/services"
	"konnect/internal/storage"
	"konnect/internal/websocket"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	gin.SetMode(cfg.Server.Mode)

	// Initialize JWT
	auth.InitJWT(cfg.App.JWTSecret)

	// Connect to database
	if err := database.Connect(cfg.Database.Driver, cfg.GetDSN()); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.AutoMigrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	repo := repository.NewRepository(database.GetDB())
	files := storage.NewStore(cfg.Storage.BaseDir, cfg.Storage.MaxUploadBytes)

	// Live chat notifications
	hubCtx, stopHub := context.WithCancel(context.Background())
	defer stopHub()
	hub := websocket.NewHub()
	go hub.Run(hubCtx)

	// Initialize services
	authService := services.NewAuthService(repo, cfg.App.SessionTTL)
	userService := services.NewUserService(repo)
	adminService := services.NewAdminService(repo)
	campaignService := services.NewCampaignService(repo, files)
	applicationService := services.NewApplicationService(repo)
	inviteService := services.NewInviteService(repo)
	reportService := services.NewReportService(repo)
	creatorService := services.NewCreatorService(repo, files)
	businessService := services.NewBusinessService(repo)
	dashboardService := services.NewDashboardService(repo)
	messageService := services.NewMessageService(repo, hub)

	// Initialize handlers
	h := &handlers.Handlers{
		Auth:     handlers.NewAuthHandler(authService, userService, cfg.App.CookieSecure),
		Creator:  handlers.NewCreatorHandler(campaignService, applicationService, inviteService, creatorService, dashboardService),
		Business: handlers.NewBusinessHandler(campaignService, applicationService, inviteService, creatorService, businessService, dashboardService),
		Report:   handlers.NewReportHandler(reportService, userService),
		Admin:    handlers.NewAdminHandler(adminService, reportService, campaignService),
		Chat:     handlers.NewChatHandler(messageService, hub, cfg.Server.AllowedOrigins),
	}

	// Start session sweeper
	sweeper := jobs.NewSessionSweeper(authService, cfg.App.SweepInterval, cfg.App.SessionRetention)
	go sweeper.Start()

	// Set up Gin router
	router := gin.Default()
	router.MaxMultipartMemory = files.MaxBytes()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
			"time":   time.Now().Format(time.RFC3339),
		})
	})

	// Uploaded media kits and product images
	router.Static("/"+storage.RootDir, files.Root())

	handlers.RegisterRoutes(router, authService, h)

	// Create HTTP server
	srv := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Server.Port)
		log.Printf("Health check: http://localhost:%s/health", cfg.Server.Port)

		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with 5 second timeout
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server forced to shutdown:", err)
	}

	sweeper.Stop()
	stopHub()

	log.Println("Server exited")
}
