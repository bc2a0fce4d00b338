package syncrun

import (
	"context"
	"errors"
	"time"

	"bom-reconciler/core/apperr"

	"gorm.io/gorm"
)

// RunStore persists sync runs.
type RunStore struct {
	db *gorm.DB
}

// NewRunStore creates a run store over db.
func NewRunStore(db *gorm.DB) *RunStore {
	return &RunStore{db: db}
}

// Migrate creates the sync_runs table.
func (s *RunStore) Migrate() error {
	return s.db.AutoMigrate(&Run{})
}

// Create inserts a new run.
func (s *RunStore) Create(ctx context.Context, run *Run) error {
	if err := s.db.WithContext(ctx).Create(run).Error; err != nil {
		return apperr.Internal(err, "failed to create sync run")
	}
	return nil
}

// Get returns the run with id.
func (s *RunStore) Get(ctx context.Context, id string) (*Run, error) {
	var run Run
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&run).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("sync run %s not found", id)
	}
	if err != nil {
		return nil, apperr.Internal(err, "failed to load sync run %s", id)
	}
	return &run, nil
}

// List returns runs newest first.
func (s *RunStore) List(ctx context.Context, limit, offset int) ([]Run, int64, error) {
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		return nil, 0, apperr.Validation("offset must not be negative")
	}

	var total int64
	if err := s.db.WithContext(ctx).Model(&Run{}).Count(&total).Error; err != nil {
		return nil, 0, apperr.Internal(err, "failed to count sync runs")
	}

	runs := make([]Run, 0, limit)
	err := s.db.WithContext(ctx).
		Order("started_at DESC").
		Order("id ASC").
		Limit(limit).
		Offset(offset).
		Find(&runs).Error
	if err != nil {
		return nil, 0, apperr.Internal(err, "failed to list sync runs")
	}
	return runs, total, nil
}

// UpdateProgress stores live counters of a RUNNING run.
func (s *RunStore) UpdateProgress(ctx context.Context, id string, c Counters) error {
	err := s.db.WithContext(ctx).Model(&Run{}).
		Where("id = ? AND status = ?", id, StatusRunning).
		Updates(counterColumns(c)).Error
	if err != nil {
		return apperr.Internal(err, "failed to store progress of sync run %s", id)
	}
	return nil
}

// Finalize writes the terminal state of a run. It succeeds once per run;
// any later attempt returns InvalidState.
func (s *RunStore) Finalize(ctx context.Context, id string, status Status, c Counters, endedAt time.Time, reason string) error {
	if !status.Terminal() {
		return apperr.Validation("status %s is not terminal", status)
	}

	updates := counterColumns(c)
	updates["status"] = status
	updates["ended_at"] = endedAt
	updates["error"] = reason

	res := s.db.WithContext(ctx).Model(&Run{}).
		Where("id = ? AND status = ?", id, StatusRunning).
		Updates(updates)
	if res.Error != nil {
		return apperr.Internal(res.Error, "failed to finalize sync run %s", id)
	}
	if res.RowsAffected == 0 {
		return apperr.InvalidState("sync run %s is already finalized", id)
	}
	return nil
}

// LastSuccessful returns the most recent SUCCESS or PARTIAL_SUCCESS run, nil when none.
func (s *RunStore) LastSuccessful(ctx context.Context) (*Run, error) {
	var run Run
	res := s.db.WithContext(ctx).
		Where("status IN ?", []Status{StatusSuccess, StatusPartialSuccess}).
		Order("started_at DESC").
		Limit(1).
		Find(&run)
	if res.Error != nil {
		return nil, apperr.Internal(res.Error, "failed to load last successful sync run")
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return &run, nil
}

// RecoverStale fails every run left RUNNING by a previous process.
func (s *RunStore) RecoverStale(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).Model(&Run{}).
		Where("status = ?", StatusRunning).
		Updates(map[string]any{
			"status":   StatusFailed,
			"ended_at": now,
			"error":    "interrupted before completion",
		})
	if res.Error != nil {
		return 0, apperr.Internal(res.Error, "failed to recover stale sync runs")
	}
	return res.RowsAffected, nil
}

func counterColumns(c Counters) map[string]any {
	return map[string]any{
		"items_scanned":     c.Scanned,
		"items_synced":      c.Synced,
		"items_failed":      c.Failed,
		"differences_found": c.Differences,
	}
}
