package handlers

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Handlers bundles every route handler the server mounts
type Handlers struct {
	Auth      *AuthHandler
	Dashboard *DashboardHandler
	Expense   *ExpenseHandler
	Budget    *BudgetHandler
	Export    *ExportHandler
	Profile   *ProfileHandler
	Health    *HealthCheckHandler
}

// RegisterRoutes mounts all routes on the Echo instance. Everything but
// registration, login, refresh, health and metrics sits behind the JWT
// middleware the caller provides.
func RegisterRoutes(e *echo.Echo, h *Handlers, requireAuth echo.MiddlewareFunc) {
	// Public endpoints
	e.POST("/register", h.Auth.Register)
	e.POST("/login", h.Auth.Login)
	e.POST("/refresh", h.Auth.RefreshToken)
	e.GET("/health", h.Health.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	e.POST("/logout", h.Auth.Logout, requireAuth)

	// Dashboard and expenses
	e.GET("/", h.Dashboard.Dashboard, requireAuth)
	e.GET("/expenses", h.Expense.List, requireAuth)
	e.POST("/add", h.Expense.Create, requireAuth)
	e.GET("/edit/:id", h.Expense.Get, requireAuth)
	e.POST("/edit/:id", h.Expense.Update, requireAuth)
	e.POST("/delete/:id", h.Expense.Delete, requireAuth)

	// Budgets
	e.GET("/budget", h.Budget.List, requireAuth)
	e.POST("/budget", h.Budget.Upsert, requireAuth)
	e.POST("/delete_budget/:id", h.Budget.Delete, requireAuth)

	// Exports
	e.GET("/export.csv", h.Export.ExportCSV, requireAuth)
	e.GET("/export_pdf", h.Export.ExportPDF, requireAuth)
	e.GET("/chart.png", h.Export.CategoryChart, requireAuth)

	// Profile
	e.GET("/profile", h.Profile.GetProfile, requireAuth)
	e.POST("/profile", h.Profile.UpdateUsername, requireAuth)
	e.POST("/profile/password", h.Profile.UpdatePassword, requireAuth)
}
