package alignment

import (
	"context"
	"errors"
	"time"

	"bom-reconciler/core/apperr"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Store persists alignment records.
type Store struct {
	db  *gorm.DB
	now func() time.Time
}

// NewStore creates a store over db.
func NewStore(db *gorm.DB) *Store {
	return &Store{db: db, now: func() time.Time { return time.Now().UTC() }}
}

// Migrate creates the alignment_records table.
func (s *Store) Migrate() error {
	return s.db.AutoMigrate(&Record{})
}

// Record persists a detection. While a PENDING record exists for the same
// part and field it is refreshed in place; otherwise a new record is created.
// created reports which of the two happened.
func (s *Store) Record(ctx context.Context, d Detection) (rec *Record, created bool, err error) {
	if err := d.validate(); err != nil {
		return nil, false, err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing Record
		res := tx.Where("part_id = ? AND field = ? AND status = ?", d.PartID, d.Field, StatusPending).
			Order("created_at DESC").
			Limit(1).
			Find(&existing)
		if res.Error != nil {
			return res.Error
		}

		now := s.now()
		create := func() error {
			rec = &Record{ID: uuid.NewString(), Status: StatusPending, CreatedAt: now, UpdatedAt: now}
			d.apply(rec)
			created = true
			return tx.Create(rec).Error
		}
		if res.RowsAffected == 0 {
			return create()
		}

		d.apply(&existing)
		existing.UpdatedAt = now
		upd := tx.Model(&Record{}).
			Where("id = ? AND status = ?", existing.ID, StatusPending).
			Updates(map[string]any{
				"local_value":           existing.LocalValue,
				"authoritative_value":   existing.AuthoritativeValue,
				"severity":              existing.Severity,
				"severity_rank":         existing.SeverityRank,
				"difference_type":       existing.DifferenceType,
				"recommendation":        existing.Recommendation,
				"requires_verification": existing.RequiresVerification,
				"affected_boms":         existing.AffectedBOMs,
				"sync_run_id":           existing.SyncRunID,
				"updated_at":            now,
			})
		if upd.Error != nil {
			return upd.Error
		}
		if upd.RowsAffected == 0 {
			// MySQL does not count unchanged rows, so only a record that left
			// PENDING since it was read gets a successor
			var pending int64
			if err := tx.Model(&Record{}).
				Where("id = ? AND status = ?", existing.ID, StatusPending).
				Count(&pending).Error; err != nil {
				return err
			}
			if pending == 0 {
				return create()
			}
		}
		rec = &existing
		return nil
	})
	if err != nil {
		return nil, false, apperr.Internal(err, "failed to record difference for %s/%s", d.PartID, d.Field)
	}
	return rec, created, nil
}

// Get returns the record with id.
func (s *Store) Get(ctx context.Context, id string) (*Record, error) {
	var rec Record
	err := s.db.WithContext(ctx).Where("id = ?", id).First(&rec).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("alignment record %s not found", id)
	}
	if err != nil {
		return nil, apperr.Internal(err, "failed to load alignment record %s", id)
	}
	return &rec, nil
}

// List returns a page of records ordered by severity (most severe first),
// then newest first, then id.
func (s *Store) List(ctx context.Context, f Filter, p PageRequest) (*Page, error) {
	if err := f.Validate(); err != nil {
		return nil, err
	}
	p, err := p.Normalize()
	if err != nil {
		return nil, err
	}

	q := s.db.WithContext(ctx).Model(&Record{})
	if f.Severity != "" {
		q = q.Where("severity = ?", f.Severity)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.PartID != "" {
		q = q.Where("part_id = ?", f.PartID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, apperr.Internal(err, "failed to count alignment records")
	}

	items := make([]Record, 0, p.Size)
	err = q.Order("severity_rank DESC").
		Order("created_at DESC").
		Order("id ASC").
		Offset(p.offset()).
		Limit(p.Size).
		Find(&items).Error
	if err != nil {
		return nil, apperr.Internal(err, "failed to list alignment records")
	}

	return &Page{Items: items, Total: total, Page: p.Number, PageSize: p.Size}, nil
}

// Resolve moves a PENDING record to ALIGNED. A nil value adopts the
// authoritative value, which stays nil when the authoritative side removed it.
func (s *Store) Resolve(ctx context.Context, id string, value *string) (*Record, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.Status != StatusPending {
		return nil, apperr.InvalidState("alignment record %s is %s", id, rec.Status)
	}

	resolved := value
	if resolved == nil {
		resolved = rec.AuthoritativeValue
	}

	now := s.now()
	if err := s.transition(ctx, id, map[string]any{
		"status":         StatusAligned,
		"resolved_value": resolved,
		"updated_at":     now,
	}); err != nil {
		return nil, err
	}

	rec.Status = StatusAligned
	rec.ResolvedValue = resolved
	rec.UpdatedAt = now
	return rec, nil
}

// Ignore moves a PENDING record to IGNORED.
func (s *Store) Ignore(ctx context.Context, id string) (*Record, error) {
	rec, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if rec.Status != StatusPending {
		return nil, apperr.InvalidState("alignment record %s is %s", id, rec.Status)
	}

	now := s.now()
	if err := s.transition(ctx, id, map[string]any{
		"status":     StatusIgnored,
		"updated_at": now,
	}); err != nil {
		return nil, err
	}

	rec.Status = StatusIgnored
	rec.UpdatedAt = now
	return rec, nil
}

// transition applies updates only while the record is still PENDING.
func (s *Store) transition(ctx context.Context, id string, updates map[string]any) error {
	res := s.db.WithContext(ctx).Model(&Record{}).
		Where("id = ? AND status = ?", id, StatusPending).
		Updates(updates)
	if res.Error != nil {
		return apperr.Internal(res.Error, "failed to update alignment record %s", id)
	}
	if res.RowsAffected == 0 {
		return apperr.InvalidState("alignment record %s is no longer pending", id)
	}
	return nil
}

// CountBySeverity returns PENDING record counts keyed by severity.
func (s *Store) CountBySeverity(ctx context.Context) (map[string]int64, error) {
	var rows []struct {
		Severity string
		Count    int64
	}
	err := s.db.WithContext(ctx).Model(&Record{}).
		Select("severity, COUNT(*) AS count").
		Where("status = ?", StatusPending).
		Group("severity").
		Scan(&rows).Error
	if err != nil {
		return nil, apperr.Internal(err, "failed to count pending records")
	}

	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Severity] = r.Count
	}
	return out, nil
}
