package sync

import (
	"bom-reconciler/core/syncrun"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Feature implements the loader.Feature interface.
type Feature struct {
	orch    *syncrun.Orchestrator
	handler *Handler
}

// NewFeature creates the sync feature.
func NewFeature(orch *syncrun.Orchestrator, logger *zap.Logger) *Feature {
	return &Feature{orch: orch, handler: NewHandler(orch, logger)}
}

// Name returns the name of the feature.
func (f *Feature) Name() string {
	return "sync"
}

// IsEnabled reports whether an orchestrator is wired.
func (f *Feature) IsEnabled() bool {
	return f.orch != nil
}

// Load registers the feature's routes.
func (f *Feature) Load(app fiber.Router) error {
	f.handler.RegisterRoutes(app)
	return nil
}
