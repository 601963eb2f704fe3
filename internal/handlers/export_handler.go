package handlers

import (
	stderrors "errors"
	"net/http"
	"time"

	"spendtrack/internal/dto"
	"spendtrack/internal/errors"
	"spendtrack/internal/models"
	"spendtrack/internal/services"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// ExportHandler handles CSV, PDF and chart exports
type ExportHandler struct {
	reportService services.ReportServiceInterface
}

// NewExportHandler creates a new export handler
func NewExportHandler(reportService services.ReportServiceInterface) *ExportHandler {
	return &ExportHandler{
		reportService: reportService,
	}
}

// ExportCSV streams the user's expense history as a CSV download. It honors
// the same start/end/category filters as the expense list.
func (h *ExportHandler) ExportCSV(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	filters, ok := h.bindExportFilters(c, userID)
	if !ok {
		return nil
	}

	c.Response().Header().Set(echo.HeaderContentType, "text/csv; charset=utf-8")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="expenses.csv"`)
	c.Response().WriteHeader(http.StatusOK)

	if err := h.reportService.WriteCSV(c.Response(), userID, filters); err != nil {
		// Headers are already on the wire; nothing left but to log via
		// the error handler.
		return err
	}

	return nil
}

// ExportPDF renders the filtered expense report as a PDF download
func (h *ExportHandler) ExportPDF(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	filters, ok := h.bindExportFilters(c, userID)
	if !ok {
		return nil
	}

	username, _ := c.Get("username").(string)

	pdfBytes, err := h.reportService.RenderPDF(userID, username, filters, time.Now().UTC())
	if err != nil {
		if stderrors.Is(err, services.ErrFontUnavailable) {
			return SendError(c, errors.ReportFontUnavailable)
		}
		return SendError(c, errors.ReportRenderFailed)
	}

	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="expense_report.pdf"`)
	return c.Blob(http.StatusOK, "application/pdf", pdfBytes)
}

// CategoryChart renders the current month's category breakdown as a PNG
// pie chart
func (h *ExportHandler) CategoryChart(c echo.Context) error {
	userID, err := getUserIDFromContext(c)
	if err != nil {
		return SendError(c, errors.AuthMissingToken)
	}

	pngBytes, err := h.reportService.RenderCategoryChart(userID, time.Now().UTC())
	if err != nil {
		if err == services.ErrNoChartData {
			return SendError(c, errors.ReportRenderFailed, errors.WithDetails("No expenses this month to chart"))
		}
		return SendError(c, errors.ReportRenderFailed)
	}

	return c.Blob(http.StatusOK, "image/png", pngBytes)
}

// bindExportFilters parses the list filter query params for an export. The
// boolean is false when the request was rejected and a response already sent.
func (h *ExportHandler) bindExportFilters(c echo.Context, userID uuid.UUID) (models.ExpenseFilters, bool) {
	var query dto.ExpenseFilters
	if err := c.Bind(&query); err != nil {
		_ = SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Malformed filter parameters"))
		return models.ExpenseFilters{}, false
	}

	filters, err := buildExpenseFilters(userID, &query)
	if err != nil {
		_ = SendError(c, errors.ValidationInvalidDate)
		return models.ExpenseFilters{}, false
	}

	return filters, true
}
