package services

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"spendtrack/internal/config"
	"spendtrack/internal/models"
	"spendtrack/internal/repositories"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/signintech/gopdf"
	"github.com/wcharczuk/go-chart/v2"
)

var (
	ErrFontUnavailable = errors.New("report font is not available")
	ErrNoChartData     = errors.New("no expenses to chart")
)

// CSVHeader is the first line of every CSV export
const CSVHeader = "Date,Description,Category,Amount"

const (
	pdfMarginLeft  = 40.0
	pdfLineHeight  = 18.0
	pdfPageBottom  = 800.0
	pdfAmountRight = 420.0
)

type reportService struct {
	expenseRepo repositories.ExpenseRepositoryInterface
	summary     SummaryServiceInterface
	cfg         *config.ReportConfig
	metrics     MetricsRecorderInterface
	logger      *slog.Logger
}

// NewReportService creates a new report service
func NewReportService(
	expenseRepo repositories.ExpenseRepositoryInterface,
	summary SummaryServiceInterface,
	cfg *config.ReportConfig,
	metrics MetricsRecorderInterface,
	logger *slog.Logger,
) ReportServiceInterface {
	return &reportService{
		expenseRepo: expenseRepo,
		summary:     summary,
		cfg:         cfg,
		metrics:     metrics,
		logger:      logger,
	}
}

// WriteCSV streams the user's expense history as CSV, oldest first. The date
// range and category filters narrow the export; amounts render with two
// decimal places.
func (s *reportService) WriteCSV(w io.Writer, userID uuid.UUID, filters models.ExpenseFilters) error {
	expenses, err := s.expenseRepo.GetForExport(userID, filters)
	if err != nil {
		return fmt.Errorf("failed to load expenses for export: %w", err)
	}

	if _, err := fmt.Fprintln(w, CSVHeader); err != nil {
		return fmt.Errorf("failed to write export: %w", err)
	}

	for i := range expenses {
		expense := &expenses[i]
		_, err := fmt.Fprintf(w, "%s,%s,%s,%s\n",
			expense.Date.Format(DateLayout),
			expense.Description,
			expense.Category,
			expense.Amount.StringFixed(2))
		if err != nil {
			return fmt.Errorf("failed to write export: %w", err)
		}
	}

	s.recordExport("csv")

	return nil
}

// RenderPDF builds a spending report over the filtered expense set: the
// filtered total, the per-category breakdown with a pie chart, then the
// expense rows newest first.
func (s *reportService) RenderPDF(userID uuid.UUID, username string, filters models.ExpenseFilters, now time.Time) ([]byte, error) {
	expenses, err := s.expenseRepo.GetForExport(userID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to load expenses for report: %w", err)
	}

	total := decimal.Zero
	sums := make(map[string]decimal.Decimal)
	for i := range expenses {
		total = total.Add(expenses[i].Amount)
		sums[expenses[i].Category] = sums[expenses[i].Category].Add(expenses[i].Amount)
	}

	breakdown := make([]models.CategoryTotal, 0, len(sums))
	for _, category := range models.AllCategories() {
		if sum, ok := sums[category]; ok {
			breakdown = append(breakdown, models.CategoryTotal{Category: category, Total: sum})
		}
	}

	pdf := gopdf.GoPdf{}
	pdf.Start(gopdf.Config{PageSize: *gopdf.PageSizeA4})

	if err := pdf.AddTTFFont(s.cfg.PDFFontName, s.cfg.PDFFontPath); err != nil {
		s.logger.Error("failed to load report font",
			"error", err,
			"font_path", s.cfg.PDFFontPath)
		return nil, fmt.Errorf("%w: %s", ErrFontUnavailable, s.cfg.PDFFontPath)
	}

	pdf.AddPage()

	if err := pdf.SetFont(s.cfg.PDFFontName, "", 20); err != nil {
		return nil, fmt.Errorf("failed to set report font: %w", err)
	}

	y := 50.0
	pdf.SetXY(pdfMarginLeft, y)
	pdf.Cell(nil, "Expense Report")
	y += 30

	if err := pdf.SetFont(s.cfg.PDFFontName, "", 11); err != nil {
		return nil, fmt.Errorf("failed to set report font: %w", err)
	}

	if username != "" {
		pdf.SetXY(pdfMarginLeft, y)
		pdf.Cell(nil, fmt.Sprintf("User: %s", username))
		y += pdfLineHeight
	}

	pdf.SetXY(pdfMarginLeft, y)
	pdf.Cell(nil, fmt.Sprintf("Generated: %s", now.UTC().Format("2006-01-02 15:04")))
	y += pdfLineHeight

	if period := describePeriod(filters); period != "" {
		pdf.SetXY(pdfMarginLeft, y)
		pdf.Cell(nil, period)
		y += pdfLineHeight
	}

	pdf.SetXY(pdfMarginLeft, y)
	pdf.Cell(nil, fmt.Sprintf("Total: %s", total.StringFixed(2)))
	y += 2 * pdfLineHeight

	if len(breakdown) > 0 {
		pdf.SetXY(pdfMarginLeft, y)
		pdf.Cell(nil, "Spending by category")
		y += pdfLineHeight

		for _, entry := range breakdown {
			pdf.SetXY(pdfMarginLeft+10, y)
			pdf.Cell(nil, entry.Category)
			pdf.SetXY(pdfAmountRight, y)
			pdf.Cell(nil, entry.Total.StringFixed(2))
			y += pdfLineHeight
		}
		y += pdfLineHeight

		// A failed chart render degrades to the textual breakdown above
		if pieBytes, err := renderPie(breakdown); err == nil {
			if holder, err := gopdf.ImageHolderByBytes(pieBytes); err == nil {
				if err := pdf.ImageByHolder(holder, pdfMarginLeft, y, &gopdf.Rect{W: 220, H: 220}); err == nil {
					y += 240
				}
			}
		}
	}

	pdf.SetXY(pdfMarginLeft, y)
	pdf.Cell(nil, "Expenses")
	y += pdfLineHeight

	// Rows render newest first
	for i := len(expenses) - 1; i >= 0; i-- {
		if y > pdfPageBottom {
			pdf.AddPage()
			y = 50.0
		}

		expense := &expenses[i]
		pdf.SetXY(pdfMarginLeft+10, y)
		pdf.Cell(nil, fmt.Sprintf("%s  %s  (%s)",
			expense.Date.Format(DateLayout),
			expense.Description,
			expense.Category))
		pdf.SetXY(pdfAmountRight, y)
		pdf.Cell(nil, expense.Amount.StringFixed(2))
		y += pdfLineHeight
	}

	if len(expenses) == 0 {
		pdf.SetXY(pdfMarginLeft+10, y)
		pdf.Cell(nil, "No expenses matched.")
	}

	s.recordExport("pdf")

	return pdf.GetBytesPdf(), nil
}

// RenderCategoryChart renders the current month's category split as a PNG
// pie chart
func (s *reportService) RenderCategoryChart(userID uuid.UUID, now time.Time) ([]byte, error) {
	monthStart := startOfMonth(now)
	monthEnd := monthStart.AddDate(0, 1, -1)

	breakdown, err := s.summary.CategoryBreakdown(userID, monthStart, monthEnd)
	if err != nil {
		return nil, err
	}

	if len(breakdown) == 0 {
		return nil, ErrNoChartData
	}

	pngBytes, err := renderPie(breakdown)
	if err != nil {
		return nil, err
	}

	s.recordExport("chart")

	return pngBytes, nil
}

// renderPie rasterizes a category breakdown as a PNG pie chart. Slice labels
// carry the category's share of the total as a percentage.
func renderPie(breakdown []models.CategoryTotal) ([]byte, error) {
	total := decimal.Zero
	for _, entry := range breakdown {
		total = total.Add(entry.Total)
	}

	values := make([]chart.Value, 0, len(breakdown))
	for _, entry := range breakdown {
		value, _ := entry.Total.Float64()
		label := entry.Category
		if total.IsPositive() {
			percent := entry.Total.Div(total).Mul(oneHundred).Round(1)
			label = fmt.Sprintf("%s %s%%", entry.Category, percent)
		}
		values = append(values, chart.Value{
			Label: label,
			Value: value,
		})
	}

	pie := chart.PieChart{
		Width:  512,
		Height: 512,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}

	return buf.Bytes(), nil
}

// describePeriod summarizes the active export filters for the report header.
// An unfiltered export returns "".
func describePeriod(filters models.ExpenseFilters) string {
	var parts []string

	switch {
	case filters.StartDate != nil && filters.EndDate != nil:
		parts = append(parts, fmt.Sprintf("Period: %s to %s",
			filters.StartDate.Format(DateLayout),
			filters.EndDate.Format(DateLayout)))
	case filters.StartDate != nil:
		parts = append(parts, fmt.Sprintf("Period: from %s", filters.StartDate.Format(DateLayout)))
	case filters.EndDate != nil:
		parts = append(parts, fmt.Sprintf("Period: through %s", filters.EndDate.Format(DateLayout)))
	}

	if filters.Category != "" {
		parts = append(parts, fmt.Sprintf("Category: %s", filters.Category))
	}

	return strings.Join(parts, "  ")
}

func (s *reportService) recordExport(format string) {
	if s.metrics == nil {
		return
	}
	s.metrics.IncrementCounter("report_export", map[string]string{"format": format})
}
