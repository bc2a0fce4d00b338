package integrity

import (
	"bom-reconciler/core/logger"
	"bom-reconciler/feature/integrity/checks"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Report combines the results of every check.
type Report struct {
	Ready   bool                  `json:"ready"`
	Schema  *checks.SchemaReport  `json:"schema,omitempty"`
	Storage *checks.StorageReport `json:"storage,omitempty"`
	Errors  map[string]string     `json:"errors,omitempty"`
}

// Handler handles HTTP requests for integrity checks.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the integrity routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/integrity")
	group.Get("/", h.HandleIntegrityCheck)
	group.Get("/schema", h.HandleSchemaCheck)
	group.Get("/storage", h.HandleStorageCheck)
}

// HandleIntegrityCheck runs every check.
// @Summary Run All Integrity Checks
// @Description Runs the schema and storage checks. Answers 503 when any check fails or reports missing pieces.
// @Tags integrity
// @Produce json
// @Success 200 {object} Report
// @Failure 503 {object} Report
// @Router /integrity [get]
func (h *Handler) HandleIntegrityCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)
	l.Info("Triggering all integrity checks")

	ctx := c.Context()
	report := Report{Ready: true, Errors: map[string]string{}}

	if schema, err := h.service.CheckSchema(ctx); err != nil {
		report.Errors["schema"] = err.Error()
		report.Ready = false
	} else {
		report.Schema = schema
		report.Ready = report.Ready && schema.Matched
	}

	if st, err := h.service.CheckStorage(ctx); err != nil {
		report.Errors["storage"] = err.Error()
		report.Ready = false
	} else {
		report.Storage = st
		report.Ready = report.Ready && st.Ready
	}

	if !report.Ready {
		l.Warn("Integrity checks failed", zap.Any("errors", report.Errors))
		return c.Status(fiber.StatusServiceUnavailable).JSON(report)
	}
	return c.JSON(report)
}

// HandleSchemaCheck checks the database schema.
// @Summary Check Database Schema
// @Description Checks that every table and column the persisted models map exists.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.SchemaReport "Schema Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/schema [get]
func (h *Handler) HandleSchemaCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckSchema(c.Context())
	if err != nil {
		l.Error("Schema check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if !report.Matched {
		l.Warn("Schema drift detected", zap.Strings("errors", report.Errors))
	}
	return c.JSON(report)
}

// HandleStorageCheck checks the bucket and required prefixes.
// @Summary Check Storage
// @Description Checks that the bucket exists and the authoritative export prefix holds objects.
// @Tags integrity
// @Produce json
// @Success 200 {object} checks.StorageReport "Storage Report"
// @Failure 500 {object} map[string]string "Internal Server Error"
// @Router /integrity/storage [get]
func (h *Handler) HandleStorageCheck(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	report, err := h.service.CheckStorage(c.Context())
	if err != nil {
		l.Error("Storage check failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	if len(report.Missing) > 0 {
		l.Warn("Missing prefixes detected", zap.Strings("missing", report.Missing))
	}
	return c.JSON(report)
}
