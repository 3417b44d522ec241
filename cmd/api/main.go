package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	sentrygin "github.com/getsentry/sentry-go/gin"
	"github.com/gin-contrib/gzip"
	_ "github.com/joho/godotenv/autoload"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	_ "github.com/liftwerk/zeiterfassung-api/docs" // Swagger docs
	"github.com/liftwerk/zeiterfassung-api/internal/config"
	"github.com/liftwerk/zeiterfassung-api/internal/database"
	"github.com/liftwerk/zeiterfassung-api/internal/handlers"
	"github.com/liftwerk/zeiterfassung-api/internal/jobs"
	"github.com/liftwerk/zeiterfassung-api/internal/middleware"
	"github.com/liftwerk/zeiterfassung-api/internal/models"
	"github.com/liftwerk/zeiterfassung-api/internal/repository"
	"github.com/liftwerk/zeiterfassung-api/internal/services"
	"github.com/liftwerk/zeiterfassung-api/pkg/logger"

	"github.com/gin-gonic/gin"
)

// @title Zeiterfassung API
// @version 1.0
// @description Workforce time tracking and job order management for elevator service technicians

// @host localhost:8080
// @BasePath /
// @schemes http
func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Setup(cfg.Environment)

	// Initialize Sentry when DSN is configured
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			logger.Error("Sentry initialization failed", "error", err)
		} else {
			logger.Info("Sentry initialized")
		}
	}

	// Set Gin mode
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Connect to database
	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	logger.Info("Connected to database")

	// Migrate schema
	if err := db.AutoMigrate(
		&models.User{},
		&models.Session{},
		&models.TimeEntry{},
		&models.Order{},
		&models.Customer{},
		&models.DailyReport{},
		&models.VacationRequest{},
		&models.SickLeave{},
		&models.AuditLog{},
	); err != nil {
		logger.Error("Migration failed", "error", err)
		os.Exit(1)
	}

	// Seed demo accounts on an empty development database
	if cfg.SeedDemoData {
		if err := database.SeedDemoData(db); err != nil {
			logger.Error("Seeding failed", "error", err)
			os.Exit(1)
		}
	}

	// Initialize repositories
	repos := repository.NewRepositories(db)

	// Initialize background worker
	worker := jobs.NewWorker(cfg.WorkerCount)
	logger.Info("Started background worker", "goroutines", cfg.WorkerCount)

	// Initialize services
	svcs := services.NewServices(repos, worker, cfg, db)

	// Schedule recurring jobs
	scheduleJobs(worker, svcs)

	// Initialize handlers
	h := handlers.NewHandlers(svcs)

	// Setup router
	router := setupRouter(h, svcs, repos, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		logger.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("Failed to start server", "error", err)
			os.Exit(1)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Server forced to shutdown", "error", err)
	}

	worker.Shutdown()
	logger.Info("Background worker stopped")

	if cfg.SentryDSN != "" {
		sentry.Flush(5 * time.Second)
	}

	logger.Info("Server exited gracefully")
}

func setupRouter(h *handlers.Handlers, svcs *services.Services, repos *repository.Repositories, cfg *config.Config) *gin.Engine {
	router := gin.New()

	// Global middleware
	if cfg.SentryDSN != "" {
		router.Use(sentrygin.New(sentrygin.Options{Repanic: true}))
	}
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.Use(middleware.CORS(cfg.AllowedOrigins))
	router.Use(gzip.Gzip(gzip.DefaultCompression))

	// Redirect root to swagger
	router.GET("/", func(c *gin.Context) {
		c.Redirect(http.StatusMovedPermanently, "/swagger/index.html")
	})
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check (public)
	router.GET("/health", h.Health.Index)

	api := router.Group("/api")

	// Login is the only unauthenticated API endpoint
	api.POST("/auth/login", h.Auth.Login)

	// Everything below requires a valid session
	auditor := svcs.Audit
	protected := api.Group("")
	protected.Use(middleware.Auth(cfg.SessionSecret, repos.Session))
	{
		protected.POST("/auth/logout", h.Auth.Logout)
		protected.GET("/auth/me", h.Auth.Me)

		// Job orders and daily reports
		auftraege := protected.Group("/auftraege")
		{
			auftraege.GET("/orders", middleware.RequirePermission(auditor, middleware.PermOrdersRead), h.Order.Index)
			auftraege.GET("/summary", middleware.RequirePermission(auditor, middleware.PermOrdersRead), h.Order.Summary)

			// Monteure may read and transition their own orders but not
			// create or edit them
			manage := auftraege.Group("", middleware.RequirePermission(auditor, middleware.PermOrdersManage))
			{
				manage.POST("/order", h.Order.Create)
				manage.PUT("/order/:id", h.Order.Update)
				manage.DELETE("/order/:id", h.Order.Delete)
			}
			transitions := auftraege.Group("", middleware.RequirePermission(auditor, middleware.PermOrdersRead))
			{
				transitions.GET("/order/:id", h.Order.Show)
				transitions.POST("/order/:id/start", h.Order.Start)
				transitions.POST("/order/:id/complete", h.Order.Complete)
				transitions.POST("/order/:id/cancel", h.Order.Cancel)
			}

			auftraege.GET("/daily-reports", h.DailyReport.Index)
			auftraege.POST("/daily-report", middleware.RequirePermission(auditor, middleware.PermReportsCreate), h.DailyReport.Create)
			auftraege.PUT("/daily-report/:id", middleware.RequirePermission(auditor, middleware.PermReportsCreate), h.DailyReport.Update)
			auftraege.DELETE("/daily-report/:id", middleware.RequirePermission(auditor, middleware.PermReportsCreate), h.DailyReport.Delete)
			auftraege.POST("/daily-report/:id/approve", middleware.RequirePermission(auditor, middleware.PermReportsReview), h.DailyReport.Approve)
			auftraege.POST("/daily-report/:id/reject", middleware.RequirePermission(auditor, middleware.PermReportsReview), h.DailyReport.Reject)
		}

		// Time tracking
		zeiterfassung := protected.Group("/zeiterfassung")
		{
			zeiterfassung.GET("/entries", h.TimeEntry.Index)
			zeiterfassung.POST("/clock-in", middleware.RequirePermission(auditor, middleware.PermTimeTrack), h.TimeEntry.ClockIn)
			zeiterfassung.POST("/clock-out", middleware.RequirePermission(auditor, middleware.PermTimeTrack), h.TimeEntry.ClockOut)
			zeiterfassung.PUT("/entry/:id", middleware.RequirePermission(auditor, middleware.PermTimeTrack), h.TimeEntry.Update)
			zeiterfassung.DELETE("/entry/:id", middleware.RequirePermission(auditor, middleware.PermTimeTrack), h.TimeEntry.Delete)
			zeiterfassung.POST("/entry/:id/approve", middleware.RequirePermission(auditor, middleware.PermTimeApprove), h.TimeEntry.Approve)
			zeiterfassung.POST("/entry/:id/reject", middleware.RequirePermission(auditor, middleware.PermTimeApprove), h.TimeEntry.Reject)
		}

		// Vacation requests and sick leaves
		antraege := protected.Group("/antraege")
		{
			antraege.GET("/vacation", h.Absence.VacationIndex)
			antraege.POST("/vacation", middleware.RequirePermission(auditor, middleware.PermAbsencesRequest), h.Absence.VacationCreate)
			antraege.PUT("/vacation/:id", middleware.RequirePermission(auditor, middleware.PermAbsencesRequest), h.Absence.VacationUpdate)
			antraege.DELETE("/vacation/:id", middleware.RequirePermission(auditor, middleware.PermAbsencesRequest), h.Absence.VacationDelete)
			antraege.POST("/vacation/:id/approve", middleware.RequirePermission(auditor, middleware.PermAbsencesReview), h.Absence.VacationApprove)
			antraege.POST("/vacation/:id/reject", middleware.RequirePermission(auditor, middleware.PermAbsencesReview), h.Absence.VacationReject)

			antraege.GET("/sick-leave", h.Absence.SickLeaveIndex)
			antraege.POST("/sick-leave", middleware.RequirePermission(auditor, middleware.PermAbsencesRequest), h.Absence.SickLeaveCreate)
			antraege.PUT("/sick-leave/:id", middleware.RequirePermission(auditor, middleware.PermAbsencesRequest), h.Absence.SickLeaveUpdate)
			antraege.DELETE("/sick-leave/:id", middleware.RequirePermission(auditor, middleware.PermAbsencesRequest), h.Absence.SickLeaveDelete)
			antraege.POST("/sick-leave/:id/approve", middleware.RequirePermission(auditor, middleware.PermAbsencesReview), h.Absence.SickLeaveApprove)
			antraege.POST("/sick-leave/:id/reject", middleware.RequirePermission(auditor, middleware.PermAbsencesReview), h.Absence.SickLeaveReject)
		}

		// Customers (buero/admin)
		kunden := protected.Group("/kunden", middleware.RequirePermission(auditor, middleware.PermCustomersManage))
		{
			kunden.GET("", h.Customer.Index)
			kunden.POST("", h.Customer.Create)
		}

		// Payroll outputs (lohn/admin)
		protected.GET("/lohn/export", middleware.RequirePermission(auditor, middleware.PermPayrollExport), h.Export.PayrollXLSX)
		protected.GET("/reports/timesheet_pdf", middleware.RequirePermission(auditor, middleware.PermPayrollExport), h.Export.TimesheetPDF)

		// User administration (admin only)
		users := protected.Group("/users", middleware.RequireAdmin(auditor))
		{
			users.GET("", h.User.Index)
			users.POST("", h.User.Create)
			users.GET("/:id", h.User.Show)
			users.PUT("/:id", h.User.Update)
			users.POST("/:id/toggle-status", h.User.ToggleStatus)
			users.DELETE("/:id", h.User.Delete)
		}

		// Security and monitoring (admin only)
		protected.GET("/security/audit-logs", middleware.RequirePermission(auditor, middleware.PermAuditRead), h.Audit.Index)
		protected.GET("/monitoring/status", middleware.RequirePermission(auditor, middleware.PermMonitoringRead), h.Audit.Status)
		protected.GET("/monitoring/alerts", middleware.RequirePermission(auditor, middleware.PermMonitoringRead), h.Audit.Alerts)
	}

	return router
}

func scheduleJobs(worker *jobs.Worker, svcs *services.Services) {
	// Purge expired sessions every hour
	worker.ScheduleEvery(1*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Cleaning up expired sessions...")
		return svcs.Auth.CleanupExpiredSessions(ctx)
	})

	// Audit retention sweep once a day, first run at startup
	worker.ScheduleEveryImmediate(24*time.Hour, func(ctx context.Context) error {
		logger.Info("[Job] Sweeping expired audit entries...")
		return svcs.Audit.Sweep(ctx)
	})

	logger.Info("Scheduled recurring jobs")
}
