package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	config "github.com/talentfold/hr-portal/configs"
	"github.com/talentfold/hr-portal/internal/application/services"
	"github.com/talentfold/hr-portal/internal/core/ports"
	"github.com/talentfold/hr-portal/internal/infrastructure/backend"
	"github.com/talentfold/hr-portal/internal/infrastructure/cache"
	"github.com/talentfold/hr-portal/internal/infrastructure/db"
	"github.com/talentfold/hr-portal/internal/infrastructure/email"
	"github.com/talentfold/hr-portal/internal/infrastructure/health"
	"github.com/talentfold/hr-portal/internal/infrastructure/holidays"
	"github.com/talentfold/hr-portal/internal/infrastructure/httpserver"
	"github.com/talentfold/hr-portal/internal/infrastructure/redis"
	"github.com/talentfold/hr-portal/internal/infrastructure/repositories"
	"github.com/talentfold/hr-portal/internal/infrastructure/scheduler"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Setup logger
	logger := logrus.New()
	if cfg.Log.Format == "text" {
		logger.SetFormatter(&logrus.TextFormatter{})
	} else {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	level, err := logrus.ParseLevel(cfg.Log.Level)
	if err != nil {
		logger.SetLevel(logrus.InfoLevel)
	} else {
		logger.SetLevel(level)
	}

	logger.Info("Starting HR portal...")

	// Initialize database (apply pool settings from config)
	database, err := db.NewDatabaseWithConfig(&cfg.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database:", err)
	}
	defer database.Close()

	logger.Info("Connected to database successfully")

	// Initialize Redis client
	redisClient, err := redis.NewRedisClient(&cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to connect to Redis:", err)
	}
	defer redisClient.Close()

	logger.Info("Connected to Redis successfully")

	// Run migrations
	if err := database.Migrate("./migrations"); err != nil {
		logger.Warn("Failed to run migrations:", err)
	}

	// Redis-backed repositories
	tokenRepo := repositories.NewTokenRedisRepository(redisClient, logger)
	rateLimitRepo := repositories.NewRateLimitRedisRepository(redisClient)

	// Generic Redis cache for read-heavy entities
	redisCache := redis.NewRedisCache(redisClient, "hrcache")

	// DB repositories
	baseEmployeeRepo := repositories.NewEmployeeRepository(database, logger)
	baseDepartmentRepo := repositories.NewDepartmentRepository(database, logger)
	baseSettingsRepo := repositories.NewSettingsRepository(database, logger)
	timesheetRepo := repositories.NewTimesheetRepository(database, logger)
	leaveRepo := repositories.NewLeaveRepository(database, logger)
	auditRepo := repositories.NewAuditRepository(database, logger)

	// Decorate with caching (choose TTLs)
	employeeRepo := repositories.NewCachingEmployeeRepository(baseEmployeeRepo, redisCache, 3*time.Minute)
	departmentRepo := repositories.NewCachingDepartmentRepository(baseDepartmentRepo, redisCache, 10*time.Minute)
	settingsRepo := repositories.NewCachingSettingsRepository(baseSettingsRepo, redisCache, 30*time.Minute)

	// Upstream HRIS client; GET results are cached in-process so retries and
	// the holiday calendar don't hammer the upstream.
	memCache := cache.NewMemory()
	hrisClient := backend.NewClient(&cfg.Backend, logger, backend.WithCache(memCache, cfg.Backend.CacheTTL))

	// Holiday calendar with stale-while-revalidate semantics, persisted in
	// Redis so a restart keeps serving through upstream outages.
	holidayProvider := holidays.NewProvider(hrisClient, redisCache, cfg.Backend.CacheTTL, cfg.Backend.StaleCacheTTL, logger)

	emailSender, err := email.NewEmailSender(&cfg.Email, logger)
	if err != nil {
		logger.Fatal("Failed to initialize email sender:", err)
	}

	// Wire all services with their repository dependencies
	auditService := services.NewAuditService(auditRepo, logger)
	authService := services.NewAuthService(employeeRepo, tokenRepo, auditService, &cfg.JWT, logger)
	employeeService := services.NewEmployeeService(employeeRepo, departmentRepo, hrisClient, logger)
	departmentService := services.NewDepartmentService(departmentRepo, employeeRepo, logger)
	timesheetService := services.NewTimesheetService(timesheetRepo, employeeRepo, emailSender, auditService, logger)
	leaveService := services.NewLeaveService(leaveRepo, employeeRepo, holidayProvider, emailSender, auditService, logger)
	settingsService := services.NewSettingsService(settingsRepo, auditService, logger)
	rateLimiterService := services.NewRateLimiterService(rateLimitRepo, &cfg.RateLimit, logger)

	hcSlice := []ports.HealthChecker{health.NewDBHealthChecker(database), health.NewRedisHealthChecker(redisClient)}

	// Background jobs
	if cfg.Scheduler.Enabled {
		sched := scheduler.New(&cfg.Scheduler, employeeService, timesheetService, leaveService, logger)
		if err := sched.Start(); err != nil {
			logger.Fatal("Failed to start scheduler:", err)
		}
		defer sched.Stop()
	}

	// Create server configuration
	serverConfig := &httpserver.ServerConfig{
		Host:         cfg.Server.Host,
		Port:         cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		TLSCertFile:  cfg.Server.TLSCertFile,
		TLSKeyFile:   cfg.Server.TLSKeyFile,
	}

	deps := httpserver.ServerDeps{
		AuthService:        authService,
		EmployeeService:    employeeService,
		DepartmentService:  departmentService,
		TimesheetService:   timesheetService,
		LeaveService:       leaveService,
		SettingsService:    settingsService,
		AuditService:       auditService,
		RateLimiterService: rateLimiterService,
		HolidayProvider:    holidayProvider,
		HealthCheckers:     hcSlice,
	}

	server := httpserver.NewServer(serverConfig, logger, deps)

	// Start server in a goroutine
	go func() {
		if err := server.Start(); err != nil {
			logger.Fatal("Failed to start server:", err)
		}
	}()

	logger.Infof("Server started on %s:%s", cfg.Server.Host, cfg.Server.Port)

	// Wait for interrupt signal to gracefully shutdown the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown:", err)
	}

	logger.Info("Server exited")
}
