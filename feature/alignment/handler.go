package alignment

import (
	"bom-reconciler/core/alignment"
	"bom-reconciler/core/logger"
	"bom-reconciler/core/reconcile"
	"bom-reconciler/core/server"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for alignment records.
type Handler struct {
	service *alignment.Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *alignment.Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the alignment routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/alignments")
	group.Get("/", h.HandleList)
	group.Get("/summary", h.HandleSummary)
	group.Get("/:id", h.HandleGet)
	group.Post("/resolve", h.HandleResolve)
	group.Post("/ignore", h.HandleIgnore)
}

// HandleList returns a filtered page of alignment records.
// @Summary List Alignment Records
// @Description Lists records ordered by severity (highest first), then newest first.
// @Tags alignments
// @Produce json
// @Param severity query string false "CRITICAL, HIGH, MEDIUM or LOW"
// @Param status query string false "PENDING, ALIGNED or IGNORED"
// @Param part_id query string false "Part ID"
// @Param page query int false "1-based page"
// @Param page_size query int false "Page size (max 500)"
// @Success 200 {object} alignment.Page
// @Failure 400 {object} apperr.Body
// @Router /alignments [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	var q ListQuery
	if err := c.QueryParser(&q); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid query parameters")
	}

	page, err := h.service.List(c.Context(),
		alignment.Filter{Severity: q.Severity, Status: q.Status, PartID: q.PartID},
		alignment.PageRequest{Number: q.Page, Size: q.PageSize},
	)
	if err != nil {
		return server.SendError(c, err)
	}
	return c.JSON(page)
}

// HandleSummary counts pending records by severity.
// @Summary Pending Alignment Summary
// @Tags alignments
// @Produce json
// @Success 200 {object} SummaryResponse
// @Router /alignments/summary [get]
func (h *Handler) HandleSummary(c *fiber.Ctx) error {
	counts, err := h.service.Store().CountBySeverity(c.Context())
	if err != nil {
		return server.SendError(c, err)
	}

	resp := SummaryResponse{Pending: make(map[string]int64, len(reconcile.Severities))}
	for _, sev := range reconcile.Severities {
		n := counts[string(sev)]
		resp.Pending[string(sev)] = n
		resp.Total += n
	}
	return c.JSON(resp)
}

// HandleGet returns one alignment record.
// @Summary Get Alignment Record
// @Tags alignments
// @Produce json
// @Param id path string true "Record ID"
// @Success 200 {object} alignment.Record
// @Failure 404 {object} apperr.Body
// @Router /alignments/{id} [get]
func (h *Handler) HandleGet(c *fiber.Ctx) error {
	rec, err := h.service.Get(c.Context(), c.Params("id"))
	if err != nil {
		return server.SendError(c, err)
	}
	return c.JSON(rec)
}

// HandleResolve aligns one record or a batch.
// @Summary Resolve Alignment Records
// @Description Single: {"id": "...", "value": "..."} aligns one PENDING record, adopting value or the authoritative value.
// @Description Batch: {"ids": [...]} aligns each record with its authoritative value and reports a per-id outcome.
// @Tags alignments
// @Accept json
// @Produce json
// @Param request body ResolveRequest true "Resolution"
// @Success 200 {object} alignment.BatchResult
// @Failure 400 {object} apperr.Body
// @Failure 404 {object} apperr.Body
// @Failure 409 {object} apperr.Body
// @Router /alignments/resolve [post]
func (h *Handler) HandleResolve(c *fiber.Ctx) error {
	var req ResolveRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return server.SendError(c, err)
	}

	l := logger.WithRayID(h.service.Logger(), c)
	if req.Single() {
		rec, err := h.service.ApplyResolution(c.Context(), *req.ID, req.Value)
		if err != nil {
			l.Warn("Resolve failed", zap.String("id", *req.ID), zap.Error(err))
			return server.SendError(c, err)
		}
		return c.JSON(rec)
	}

	res, err := h.service.BatchApply(c.Context(), req.IDs)
	if err != nil {
		return server.SendError(c, err)
	}
	l.Info("Batch resolve", zap.Int("succeeded", res.Summary.Succeeded), zap.Int("failed", res.Summary.Failed))
	return c.JSON(res)
}

// HandleIgnore ignores one record or a batch.
// @Summary Ignore Alignment Records
// @Tags alignments
// @Accept json
// @Produce json
// @Param request body IgnoreRequest true "Target"
// @Success 200 {object} alignment.BatchResult
// @Failure 400 {object} apperr.Body
// @Failure 404 {object} apperr.Body
// @Failure 409 {object} apperr.Body
// @Router /alignments/ignore [post]
func (h *Handler) HandleIgnore(c *fiber.Ctx) error {
	var req IgnoreRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if err := req.Validate(); err != nil {
		return server.SendError(c, err)
	}

	if req.Single() {
		rec, err := h.service.Ignore(c.Context(), *req.ID)
		if err != nil {
			return server.SendError(c, err)
		}
		return c.JSON(rec)
	}

	res, err := h.service.BatchIgnore(c.Context(), req.IDs)
	if err != nil {
		return server.SendError(c, err)
	}
	return c.JSON(res)
}
