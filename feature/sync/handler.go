package sync

import (
	"context"
	"time"

	"bom-reconciler/core/logger"
	"bom-reconciler/core/server"
	"bom-reconciler/core/syncrun"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const defaultCancelWait = 30 * time.Second

// RunList is one page of sync runs.
type RunList struct {
	Items  []syncrun.Run `json:"items"`
	Total  int64         `json:"total"`
	Limit  int           `json:"limit"`
	Offset int           `json:"offset"`
}

// Handler handles HTTP requests for sync runs.
type Handler struct {
	orch       *syncrun.Orchestrator
	logger     *zap.Logger
	cancelWait time.Duration
}

// NewHandler creates a new HTTP handler.
func NewHandler(orch *syncrun.Orchestrator, logger *zap.Logger) *Handler {
	return &Handler{orch: orch, logger: logger, cancelWait: defaultCancelWait}
}

// RegisterRoutes registers the sync routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/sync/runs")
	group.Post("/", h.HandleStart)
	group.Get("/", h.HandleList)
	group.Get("/:id", h.HandleStatus)
	group.Post("/:id/cancel", h.HandleCancel)
}

// HandleStart starts a sync run.
// @Summary Start Sync Run
// @Description Starts a FULL, INCREMENTAL or MANUAL run. MANUAL requires filters.part_ids.
// @Tags sync
// @Accept json
// @Produce json
// @Param request body syncrun.StartRequest true "Run"
// @Success 202 {object} syncrun.Run
// @Failure 400 {object} apperr.Body
// @Failure 409 {object} apperr.Body
// @Router /sync/runs [post]
func (h *Handler) HandleStart(c *fiber.Ctx) error {
	var req syncrun.StartRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if req.TriggeredBy == "" {
		req.TriggeredBy = "api:" + c.IP()
	}

	// the run outlives the request; fasthttp recycles c.Context()
	run, err := h.orch.Start(c.UserContext(), req)
	if err != nil {
		logger.WithRayID(h.logger, c).Warn("Sync start rejected", zap.Error(err))
		return server.SendError(c, err)
	}
	return c.Status(fiber.StatusAccepted).JSON(run)
}

// HandleList lists sync runs newest first.
// @Summary List Sync Runs
// @Tags sync
// @Produce json
// @Param limit query int false "Page size (default 20)"
// @Param offset query int false "Offset"
// @Success 200 {object} RunList
// @Router /sync/runs [get]
func (h *Handler) HandleList(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	runs, total, err := h.orch.List(c.Context(), limit, offset)
	if err != nil {
		return server.SendError(c, err)
	}
	return c.JSON(RunList{Items: runs, Total: total, Limit: limit, Offset: offset})
}

// HandleStatus returns a run with its counters.
// @Summary Get Sync Run Status
// @Tags sync
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} syncrun.Run
// @Failure 404 {object} apperr.Body
// @Router /sync/runs/{id} [get]
func (h *Handler) HandleStatus(c *fiber.Ctx) error {
	run, err := h.orch.Status(c.Context(), c.Params("id"))
	if err != nil {
		return server.SendError(c, err)
	}
	return c.JSON(run)
}

// HandleCancel cancels the active run.
// @Summary Cancel Sync Run
// @Description Requests cancellation and waits for the run to stop at its next checkpoint.
// @Tags sync
// @Produce json
// @Param id path string true "Run ID"
// @Success 200 {object} syncrun.Run
// @Failure 404 {object} apperr.Body
// @Failure 409 {object} apperr.Body
// @Router /sync/runs/{id}/cancel [post]
func (h *Handler) HandleCancel(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), h.cancelWait)
	defer cancel()

	run, err := h.orch.Cancel(ctx, c.Params("id"))
	if err != nil {
		return server.SendError(c, err)
	}

	logger.WithRayID(h.logger, c).Info("Sync run cancel handled",
		zap.String("run_id", run.ID),
		zap.String("status", string(run.Status)))
	return c.JSON(run)
}
