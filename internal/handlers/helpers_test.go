package handlers_test

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"spendtrack/internal/config"
	"spendtrack/internal/database"
	"spendtrack/internal/handlers"
	"spendtrack/internal/middleware"
	"spendtrack/internal/models"
	"spendtrack/internal/repositories"
	"spendtrack/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

// handlerTestEnv wires the full route table over an in-memory database.
// Authentication is replaced with a middleware that injects currentUserID
// so each test controls who is making the request.
type handlerTestEnv struct {
	db            *database.DB
	e             *echo.Echo
	user          *models.User
	currentUserID uuid.UUID

	authService    services.AuthServiceInterface
	tokenService   services.TokenServiceInterface
	expenseService services.ExpenseServiceInterface
	budgetService  services.BudgetServiceInterface
	summaryService services.SummaryServiceInterface
	reportService  services.ReportServiceInterface
}

func newHandlerTestEnv(t *testing.T) *handlerTestEnv {
	db := database.SetupTestDB(t)
	user := database.CreateTestUser(t, db, "handleruser")

	userRepo := repositories.NewUserRepository(db.DB)
	expenseRepo := repositories.NewExpenseRepository(db.DB)
	budgetRepo := repositories.NewBudgetRepository(db.DB)
	auditRepo := repositories.NewAuditLogRepository(db.DB)
	refreshTokenRepo := repositories.NewRefreshTokenRepository(db.DB)
	blacklistedTokenRepo := repositories.NewBlacklistedTokenRepository(db.DB)

	privateKey, publicKey, err := config.GenerateRSAKeyPair()
	require.NoError(t, err)

	jwtConfig := &config.JWTConfig{
		PrivateKey:           privateKey,
		PublicKey:            publicKey,
		Issuer:               "test-issuer",
		AccessTokenDuration:  time.Hour,
		RefreshTokenDuration: 24 * time.Hour,
	}
	securityConfig := &config.SecurityConfig{
		BCryptCost:        4,
		PasswordMinLength: 8,
	}
	reportConfig := &config.ReportConfig{
		PDFFontPath: "testdata/missing-font.ttf",
		PDFFontName: "test-font",
	}

	logger := slog.Default()

	tokenService := services.NewTokenService(jwtConfig)
	passwordService := services.NewPasswordService(userRepo, securityConfig)
	authService := services.NewAuthService(
		userRepo, refreshTokenRepo, auditRepo, blacklistedTokenRepo,
		passwordService, tokenService, nil, logger,
	)
	classifier := services.NewClassifierService()
	expenseService := services.NewExpenseService(expenseRepo, classifier, nil, logger)
	budgetService := services.NewBudgetService(budgetRepo, logger)
	summaryService := services.NewSummaryService(expenseRepo, budgetRepo)
	reportService := services.NewReportService(expenseRepo, summaryService, reportConfig, nil, logger)
	profileService := services.NewProfileService(userRepo, logger)
	auditService := services.NewAuditService(auditRepo)

	env := &handlerTestEnv{
		db:             db,
		user:           user,
		currentUserID:  user.ID,
		authService:    authService,
		tokenService:   tokenService,
		expenseService: expenseService,
		budgetService:  budgetService,
		summaryService: summaryService,
		reportService:  reportService,
	}

	e := echo.New()
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	h := &handlers.Handlers{
		Auth:      handlers.NewAuthHandler(authService),
		Dashboard: handlers.NewDashboardHandler(expenseService, summaryService),
		Expense:   handlers.NewExpenseHandler(expenseService, auditService),
		Budget:    handlers.NewBudgetHandler(budgetService, summaryService, auditService),
		Export:    handlers.NewExportHandler(reportService),
		Profile:   handlers.NewProfileHandler(profileService, passwordService, auditService),
		Health:    handlers.NewHealthCheckHandler(db.DB),
	}

	injectUser := func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			c.Set("user_id", env.currentUserID)
			c.Set("username", env.user.Username)
			return next(c)
		}
	}

	handlers.RegisterRoutes(e, h, injectUser)
	env.e = e

	t.Cleanup(func() {
		database.CleanupTestDB(t, db)
	})

	return env
}

// doJSON performs a request with a JSON body and returns the recorder
func (env *handlerTestEnv) doJSON(method, target string, body interface{}) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = strings.NewReader(string(payload))
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

func (env *handlerTestEnv) doGET(target string) *httptest.ResponseRecorder {
	return env.doJSON(http.MethodGet, target, nil)
}

// doJSONWithAuth performs a request carrying a Bearer token
func (env *handlerTestEnv) doJSONWithAuth(method, target string, body interface{}, accessToken string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = strings.NewReader(string(payload))
	}

	req := httptest.NewRequest(method, target, reader)
	if body != nil {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	rec := httptest.NewRecorder()
	env.e.ServeHTTP(rec, req)
	return rec
}

// decodeBody unmarshals a response body into a generic map
func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}
