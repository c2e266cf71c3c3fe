package handlers

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"log"

	"ecommerce-analytics/internal/analytics"
	"ecommerce-analytics/internal/middleware"
	"ecommerce-analytics/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

//go:embed templates/dashboard.html
var templateFS embed.FS

var dashboardTemplate = template.Must(template.ParseFS(templateFS, "templates/dashboard.html"))

// ReportQuery is the month/category selection shared by every report route.
type ReportQuery struct {
	Month    string `query:"month" validate:"omitempty,datetime=2006-01"`
	Category string `query:"category" validate:"max=100"`
}

type reportResponse struct {
	Report  analytics.Report `json:"report"`
	Warning string           `json:"warning,omitempty"`
}

type reloadResponse struct {
	Message string               `json:"message"`
	Status  services.CacheStatus `json:"status"`
	Warning string               `json:"warning,omitempty"`
}

type pageData struct {
	Filters       services.Filters
	Report        analytics.Report
	Warning       string
	SelectedMonth string
}

// DashboardHandler serves the KPI dashboard page and its JSON API.
type DashboardHandler struct {
	service  *services.DashboardService
	tokens   *services.TokenService
	validate *validator.Validate
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(service *services.DashboardService, tokens *services.TokenService) *DashboardHandler {
	return &DashboardHandler{
		service:  service,
		tokens:   tokens,
		validate: validator.New(),
	}
}

// RegisterRoutes registers the page on app and the API under api.
func (h *DashboardHandler) RegisterRoutes(app fiber.Router, api fiber.Router) {
	app.Get("/", h.HandlePage)
	app.Post("/reload", middleware.AdminRequired(h.tokens), h.HandlePageReload)

	kpis := api.Group("/kpis")
	kpis.Get("/filters", h.HandleFilters)
	kpis.Get("/report", h.HandleReport)
	kpis.Get("/export", h.HandleExport)
	kpis.Post("/reload", middleware.AdminRequired(h.tokens), h.HandleReload)
}

func (h *DashboardHandler) parseQuery(c *fiber.Ctx) (ReportQuery, error) {
	var q ReportQuery
	if err := c.QueryParser(&q); err != nil {
		return q, err
	}
	if err := h.validate.Struct(q); err != nil {
		return q, err
	}
	return q, nil
}

func badQuery(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"message": "Invalid query parameters, month must be YYYY-MM",
		"error":   err.Error(),
	})
}

func (h *DashboardHandler) report(c *fiber.Ctx, q ReportQuery) (analytics.Report, string, error) {
	report, warning, err := h.service.Report(c.UserContext(), q.Month, q.Category)
	if err != nil && !errors.Is(err, services.ErrInvalidMonth) {
		log.Printf("Error building report: %v", err)
	}
	return report, warning, err
}

// HandlePage renders the HTML dashboard.
func (h *DashboardHandler) HandlePage(c *fiber.Ctx) error {
	q, err := h.parseQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(fmt.Sprintf("Invalid filters: %v", err))
	}
	filters, report, warning, err := h.service.Page(c.UserContext(), q.Month, q.Category)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).SendString(err.Error())
	}

	data := pageData{
		Filters:       filters,
		Report:        report,
		Warning:       warning,
		SelectedMonth: analytics.MonthKey(report.Month),
	}
	var buf bytes.Buffer
	if err := dashboardTemplate.Execute(&buf, data); err != nil {
		log.Printf("Error rendering dashboard: %v", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Could not render dashboard")
	}
	c.Type("html", "utf-8")
	return c.Send(buf.Bytes())
}

// HandlePageReload reloads the dataset and sends the browser back to the page.
func (h *DashboardHandler) HandlePageReload(c *fiber.Ctx) error {
	if _, warning := h.service.Reload(c.UserContext()); warning != "" {
		log.Printf("Reload from dashboard failed: %s", warning)
	}
	return c.Redirect("/", fiber.StatusSeeOther)
}

// HandleFilters returns the selectable months and categories.
func (h *DashboardHandler) HandleFilters(c *fiber.Ctx) error {
	return c.JSON(h.service.Filters(c.UserContext()))
}

// HandleReport returns the full report for the selected month and category.
func (h *DashboardHandler) HandleReport(c *fiber.Ctx) error {
	q, err := h.parseQuery(c)
	if err != nil {
		return badQuery(c, err)
	}
	report, warning, err := h.report(c, q)
	if err != nil {
		return badQuery(c, err)
	}
	return c.JSON(reportResponse{Report: report, Warning: warning})
}

// HandleExport downloads the top revenue table as an xlsx workbook.
func (h *DashboardHandler) HandleExport(c *fiber.Ctx) error {
	q, err := h.parseQuery(c)
	if err != nil {
		return badQuery(c, err)
	}
	report, _, err := h.report(c, q)
	if err != nil {
		return badQuery(c, err)
	}

	var buf bytes.Buffer
	if err := analytics.WriteRevenueWorkbook(&buf, report); err != nil {
		log.Printf("Error exporting report: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"message": "Failed to write Excel file",
			"error":   err.Error(),
		})
	}

	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%s", analytics.ExportFilename(report)))
	c.Set(fiber.HeaderContentType, analytics.ExportContentType)
	return c.Send(buf.Bytes())
}

// HandleReload drops the cache and queries the reporting view again.
func (h *DashboardHandler) HandleReload(c *fiber.Ctx) error {
	_, warning := h.service.Reload(c.UserContext())
	resp := reloadResponse{
		Message: "Data reloaded",
		Status:  h.service.Status(),
		Warning: warning,
	}
	if warning != "" {
		resp.Message = "Reload failed"
		return c.Status(fiber.StatusServiceUnavailable).JSON(resp)
	}
	return c.JSON(resp)
}
