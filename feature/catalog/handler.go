package catalog

import (
	"bom-reconciler/core/logger"
	"bom-reconciler/core/server"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// PartResponse is the local view of a part.
type PartResponse struct {
	PartID string             `json:"part_id"`
	Fields map[string]*string `json:"fields"`
	UsedIn []string           `json:"used_in"`
}

// Handler handles HTTP requests for the local catalog.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalog")
	group.Get("/parts/:id", h.HandleGetPart)
	group.Get("/source", h.HandleSourceStatus)
}

// HandleGetPart returns the tracked local values of a part.
// @Summary Get Local Part
// @Description Returns the tracked attribute values of a part in the local catalog and the BOMs using it.
// @Tags catalog
// @Produce json
// @Param id path string true "Part ID"
// @Success 200 {object} PartResponse
// @Failure 404 {object} apperr.Body
// @Router /catalog/parts/{id} [get]
func (h *Handler) HandleGetPart(c *fiber.Ctx) error {
	id := c.Params("id")
	l := logger.WithRayID(h.service.logger, c)

	fields, err := h.service.PartValues(c.Context(), id)
	if err != nil {
		l.Warn("Part lookup failed", zap.String("part_id", id), zap.Error(err))
		return server.SendError(c, err)
	}
	usedIn, err := h.service.PartUsage(c.Context(), id)
	if err != nil {
		return server.SendError(c, err)
	}
	if usedIn == nil {
		usedIn = []string{}
	}

	return c.JSON(PartResponse{PartID: id, Fields: fields, UsedIn: usedIn})
}

// HandleSourceStatus reports the authoritative export pages found in the bucket.
// @Summary Authoritative Source Status
// @Tags catalog
// @Produce json
// @Success 200 {object} SourceStatus
// @Failure 502 {object} apperr.Body
// @Router /catalog/source [get]
func (h *Handler) HandleSourceStatus(c *fiber.Ctx) error {
	status, err := h.service.SourceStatus(c.Context())
	if err != nil {
		logger.WithRayID(h.service.logger, c).Error("Source status failed", zap.Error(err))
		return server.SendError(c, err)
	}
	return c.JSON(status)
}
