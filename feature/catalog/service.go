package catalog

import (
	"context"

	"go.uber.org/zap"
)

// Service exposes the local catalog and the authoritative source to handlers.
type Service struct {
	catalog *LocalCatalog
	source  *BucketSource
	logger  *zap.Logger
}

// NewService creates a catalog service.
func NewService(catalog *LocalCatalog, source *BucketSource, logger *zap.Logger) *Service {
	return &Service{catalog: catalog, source: source, logger: logger}
}

// PartValues returns the tracked local values of a part.
func (s *Service) PartValues(ctx context.Context, partID string) (map[string]*string, error) {
	return s.catalog.Values(ctx, partID)
}

// PartUsage returns the BOMs using a part.
func (s *Service) PartUsage(ctx context.Context, partID string) ([]string, error) {
	return s.catalog.WhereUsed(ctx, partID)
}

// SourceStatus describes the authoritative export.
type SourceStatus struct {
	Ready bool `json:"ready"`
	Pages int  `json:"pages"`
}

// SourceStatus reports whether authoritative pages are available.
func (s *Service) SourceStatus(ctx context.Context) (*SourceStatus, error) {
	ready, pages, err := s.source.Ready(ctx)
	if err != nil {
		return nil, err
	}
	return &SourceStatus{Ready: ready, Pages: pages}, nil
}
