package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"spendtrack/internal/config"
	"spendtrack/internal/database"
	"spendtrack/internal/handlers"
	"spendtrack/internal/middleware"
	"spendtrack/internal/repositories"
	"spendtrack/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
)

func main() {
	// Setup structured logging
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	if err := godotenv.Load(); err != nil {
		logger.Info("No .env file found, using environment variables")
	}

	cfg := config.Load()

	gormDB, err := database.Initialize(cfg)
	if err != nil {
		logger.Error("Failed to initialize database", "error", err)
		os.Exit(1)
	}

	// Repositories
	userRepo := repositories.NewUserRepository(gormDB)
	expenseRepo := repositories.NewExpenseRepository(gormDB)
	budgetRepo := repositories.NewBudgetRepository(gormDB)
	auditRepo := repositories.NewAuditLogRepository(gormDB)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(gormDB)
	blacklistedTokenRepo := repositories.NewBlacklistedTokenRepository(gormDB)

	// Services
	metrics := services.NewPrometheusMetrics()
	tokenService := services.NewTokenService(&cfg.JWT)
	passwordService := services.NewPasswordService(userRepo, &cfg.Security)
	authService := services.NewAuthService(
		userRepo, refreshTokenRepo, auditRepo, blacklistedTokenRepo,
		passwordService, tokenService, metrics, logger,
	)
	classifierService := services.NewClassifierService()
	expenseService := services.NewExpenseService(expenseRepo, classifierService, metrics, logger)
	budgetService := services.NewBudgetService(budgetRepo, logger)
	summaryService := services.NewSummaryService(expenseRepo, budgetRepo)
	reportService := services.NewReportService(expenseRepo, summaryService, &cfg.Report, metrics, logger)
	profileService := services.NewProfileService(userRepo, logger)
	auditService := services.NewAuditService(auditRepo)

	// HTTP server
	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RateLimiterWithConfig(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitPerSecond*2))

	h := &handlers.Handlers{
		Auth:      handlers.NewAuthHandler(authService),
		Dashboard: handlers.NewDashboardHandler(expenseService, summaryService),
		Expense:   handlers.NewExpenseHandler(expenseService, auditService),
		Budget:    handlers.NewBudgetHandler(budgetService, summaryService, auditService),
		Export:    handlers.NewExportHandler(reportService),
		Profile:   handlers.NewProfileHandler(profileService, passwordService, auditService),
		Health:    handlers.NewHealthCheckHandler(gormDB),
	}

	requireAuth := middleware.RequireAuth(tokenService, blacklistedTokenRepo)
	handlers.RegisterRoutes(e, h, requireAuth)

	// Background cleanup of expired tokens and stale audit logs
	cleanupCtx, cleanupCancel := context.WithCancel(context.Background())
	defer cleanupCancel()
	go runCleanupLoop(cleanupCtx, logger, refreshTokenRepo, blacklistedTokenRepo, auditRepo)

	// Graceful shutdown handling
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		cleanupCancel()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := e.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
	}()

	addr := cfg.Server.Host + ":" + cfg.Server.Port
	logger.Info("Starting server", "addr", addr, "environment", cfg.Server.Environment)

	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		logger.Error("Server error", "error", err)
		os.Exit(1)
	}

	logger.Info("Server stopped")
}

// runCleanupLoop periodically purges expired refresh tokens, expired
// blacklist entries and audit logs older than the retention window.
func runCleanupLoop(
	ctx context.Context,
	logger *slog.Logger,
	refreshTokenRepo repositories.RefreshTokenRepositoryInterface,
	blacklistedTokenRepo repositories.BlacklistedTokenRepositoryInterface,
	auditRepo repositories.AuditLogRepositoryInterface,
) {
	const auditRetention = 90 * 24 * time.Hour
	const revokedRetention = 30 * 24 * time.Hour

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := refreshTokenRepo.DeleteExpired(); err != nil {
				logger.Error("Failed to delete expired refresh tokens", "error", err)
			} else if n > 0 {
				logger.Info("Deleted expired refresh tokens", "count", n)
			}

			if n, err := refreshTokenRepo.DeleteRevokedOlderThan(revokedRetention); err != nil {
				logger.Error("Failed to delete revoked refresh tokens", "error", err)
			} else if n > 0 {
				logger.Info("Deleted revoked refresh tokens", "count", n)
			}

			if n, err := blacklistedTokenRepo.DeleteExpired(); err != nil {
				logger.Error("Failed to delete expired blacklisted tokens", "error", err)
			} else if n > 0 {
				logger.Info("Deleted expired blacklisted tokens", "count", n)
			}

			if n, err := auditRepo.DeleteOlderThan(auditRetention); err != nil {
				logger.Error("Failed to delete old audit logs", "error", err)
			} else if n > 0 {
				logger.Info("Deleted old audit logs", "count", n)
			}
		}
	}
}
