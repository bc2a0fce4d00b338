package bom

import (
	"bom-reconciler/core/logger"
	"bom-reconciler/core/server"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for BOM snapshots.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the BOM routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/boms")
	group.Post("/snapshots", h.HandleCreateSnapshot)
	group.Get("/snapshots", h.HandleListSnapshots)
	group.Get("/snapshots/:id", h.HandleGetSnapshot)
	group.Post("/compare", h.HandleCompare)
}

// HandleCreateSnapshot stores a BOM snapshot.
// @Summary Create BOM Snapshot
// @Description Stores an immutable snapshot of a BOM. Part numbers must be unique within the snapshot.
// @Tags boms
// @Accept json
// @Produce json
// @Param request body CreateRequest true "Snapshot"
// @Success 201 {object} Snapshot
// @Failure 400 {object} apperr.Body
// @Router /boms/snapshots [post]
func (h *Handler) HandleCreateSnapshot(c *fiber.Ctx) error {
	var req CreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	snap, err := h.service.CreateSnapshot(c.Context(), req)
	if err != nil {
		return server.SendError(c, err)
	}

	logger.WithRayID(h.service.logger, c).Info("Snapshot stored",
		zap.String("snapshot_id", snap.ID),
		zap.String("bom_ref", snap.BOMRef),
		zap.Int("items", snap.ItemCount))
	return c.Status(fiber.StatusCreated).JSON(snap)
}

// HandleListSnapshots lists stored snapshots.
// @Summary List BOM Snapshots
// @Tags boms
// @Produce json
// @Param bom_ref query string false "BOM reference"
// @Success 200 {array} Snapshot
// @Router /boms/snapshots [get]
func (h *Handler) HandleListSnapshots(c *fiber.Ctx) error {
	snaps, err := h.service.ListSnapshots(c.Context(), c.Query("bom_ref"))
	if err != nil {
		return server.SendError(c, err)
	}
	return c.JSON(snaps)
}

// HandleGetSnapshot returns a snapshot with its line items.
// @Summary Get BOM Snapshot
// @Tags boms
// @Produce json
// @Param id path string true "Snapshot ID"
// @Success 200 {object} Snapshot
// @Failure 404 {object} apperr.Body
// @Router /boms/snapshots/{id} [get]
func (h *Handler) HandleGetSnapshot(c *fiber.Ctx) error {
	snap, err := h.service.GetSnapshot(c.Context(), c.Params("id"))
	if err != nil {
		return server.SendError(c, err)
	}
	return c.JSON(snap)
}

// HandleCompare diffs snapshots against a baseline.
// @Summary Compare BOM Snapshots
// @Description Compares every snapshot against the baseline across the requested dimensions.
// @Tags boms
// @Accept json
// @Produce json
// @Param request body CompareRequest true "Comparison"
// @Success 200 {object} bomdiff.DiffResult
// @Failure 400 {object} apperr.Body
// @Failure 404 {object} apperr.Body
// @Router /boms/compare [post]
func (h *Handler) HandleCompare(c *fiber.Ctx) error {
	var req CompareRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	result, err := h.service.Compare(c.Context(), req)
	if err != nil {
		logger.WithRayID(h.service.logger, c).Warn("Comparison failed", zap.Error(err))
		return server.SendError(c, err)
	}
	return c.JSON(result)
}
