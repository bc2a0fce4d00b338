package bom

import (
	"context"
	"time"

	"bom-reconciler/core/apperr"
	"bom-reconciler/core/bomdiff"
	"bom-reconciler/core/metrics"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Service implements the BOM snapshot and comparison operations.
type Service struct {
	repo    *Repository
	metrics *metrics.Metrics
	logger  *zap.Logger
}

// NewService creates a BOM service. m may be nil.
func NewService(repo *Repository, m *metrics.Metrics, logger *zap.Logger) *Service {
	return &Service{repo: repo, metrics: m, logger: logger}
}

// Repository returns the snapshot repository.
func (s *Service) Repository() *Repository {
	return s.repo
}

// CreateSnapshot stores a snapshot.
func (s *Service) CreateSnapshot(ctx context.Context, req CreateRequest) (*Snapshot, error) {
	return s.repo.Create(ctx, req)
}

// GetSnapshot loads a snapshot.
func (s *Service) GetSnapshot(ctx context.Context, id string) (*Snapshot, error) {
	return s.repo.Get(ctx, id)
}

// ListSnapshots lists snapshots, optionally for one BOM.
func (s *Service) ListSnapshots(ctx context.Context, bomRef string) ([]Snapshot, error) {
	return s.repo.List(ctx, bomRef)
}

// Compare loads the named snapshots and diffs them against the baseline.
func (s *Service) Compare(ctx context.Context, req CompareRequest) (*bomdiff.DiffResult, error) {
	if len(req.SnapshotIDs) < 2 {
		return nil, apperr.Validation("at least two snapshots are required, got %d", len(req.SnapshotIDs))
	}
	if req.BaselineIndex < 0 || req.BaselineIndex >= len(req.SnapshotIDs) {
		return nil, apperr.Validation("baseline_index %d out of range", req.BaselineIndex)
	}

	snapshots := make([]bomdiff.Snapshot, len(req.SnapshotIDs))
	g, gctx := errgroup.WithContext(ctx)
	for i, id := range req.SnapshotIDs {
		i, id := i, id
		g.Go(func() error {
			snap, err := s.repo.Get(gctx, id)
			if err != nil {
				return err
			}
			snapshots[i] = snap.ToDiff()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	start := time.Now()
	result, err := bomdiff.Compare(ctx, snapshots, req.BaselineIndex, req.Dimensions)
	if err != nil {
		return nil, err
	}
	if s.metrics != nil {
		s.metrics.DiffDuration.Observe(time.Since(start).Seconds())
	}

	s.logger.Debug("Compared snapshots",
		zap.Strings("snapshot_ids", req.SnapshotIDs),
		zap.Int("differences", result.Summary.Total))
	return result, nil
}
