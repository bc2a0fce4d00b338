package integrity

import (
	"context"

	"bom-reconciler/core/storage"
	"bom-reconciler/feature/integrity/checks"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Service handles integrity checks.
type Service struct {
	client   storage.Client
	bucket   string
	prefixes []string
	db       *gorm.DB
	models   []any
	logger   *zap.Logger
}

// NewService creates a new integrity service. models are the persisted gorm
// models whose tables the schema check inspects.
func NewService(client storage.Client, bucket string, prefixes []string, db *gorm.DB, models []any, logger *zap.Logger) *Service {
	return &Service{
		client:   client,
		bucket:   bucket,
		prefixes: prefixes,
		db:       db,
		models:   models,
		logger:   logger,
	}
}

// CheckStorage reports the required prefixes missing from the bucket.
func (s *Service) CheckStorage(ctx context.Context) (*checks.StorageReport, error) {
	return checks.CheckStorage(ctx, s.client, s.bucket, s.prefixes)
}

// CheckSchema reports missing tables and columns.
func (s *Service) CheckSchema(ctx context.Context) (*checks.SchemaReport, error) {
	var db *gorm.DB
	if s.db != nil {
		db = s.db.WithContext(ctx)
	}
	return checks.CheckSchema(db, s.models...)
}
