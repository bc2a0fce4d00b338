package catalog

import (
	"context"

	"bom-reconciler/core/events"

	"go.uber.org/zap"
)

// Applier writes resolved values back to the local catalog.
// It is registered as an event publisher next to the broker publisher.
type Applier struct {
	catalog *LocalCatalog
	logger  *zap.Logger
}

// NewApplier creates an applier over catalog.
func NewApplier(catalog *LocalCatalog, logger *zap.Logger) *Applier {
	return &Applier{catalog: catalog, logger: logger}
}

// Publish applies AlignmentResolved events and ignores every other event.
func (a *Applier) Publish(ctx context.Context, e events.Event) error {
	resolved, ok := e.(events.AlignmentResolved)
	if !ok {
		return nil
	}

	if err := a.catalog.SetLocalValue(ctx, resolved.PartID, resolved.Field, resolved.ResolvedValue); err != nil {
		return err
	}
	a.logger.Debug("Applied resolved value to local catalog",
		zap.String("part_id", resolved.PartID),
		zap.String("field", resolved.Field),
	)
	return nil
}

// Close is a no-op.
func (a *Applier) Close() {}
