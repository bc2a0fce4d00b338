package bom

import (
	"context"
	"errors"
	"strings"

	"bom-reconciler/core/apperr"
	"bom-reconciler/core/bomdiff"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// Repository persists BOM snapshots.
type Repository struct {
	db    *gorm.DB
	loads singleflight.Group
}

// NewRepository creates a repository over db.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Migrate creates the snapshot tables.
func (r *Repository) Migrate() error {
	return r.db.AutoMigrate(&SnapshotRecord{}, &LineItemRecord{})
}

// Create stores a new snapshot. Part numbers must be unique within it.
func (r *Repository) Create(ctx context.Context, req CreateRequest) (*Snapshot, error) {
	req.BOMRef = strings.TrimSpace(req.BOMRef)
	if req.BOMRef == "" {
		return nil, apperr.Validation("bom_ref is required")
	}

	rec := SnapshotRecord{ID: uuid.NewString(), BOMRef: req.BOMRef, Name: req.Name}
	seen := make(map[string]struct{}, len(req.Items))
	for i, item := range req.Items {
		item.PartNumber = strings.TrimSpace(item.PartNumber)
		if item.PartNumber == "" {
			return nil, apperr.Validation("line item %d has no part number", i)
		}
		if _, dup := seen[item.PartNumber]; dup {
			return nil, apperr.Validation("part %s is listed more than once", item.PartNumber)
		}
		seen[item.PartNumber] = struct{}{}

		rec.Items = append(rec.Items, LineItemRecord{
			Position:         i,
			PartNumber:       item.PartNumber,
			Description:      item.Description,
			Quantity:         item.Quantity,
			UnitCost:         item.UnitCost,
			Supplier:         item.Supplier,
			ComplianceStatus: item.ComplianceStatus,
		})
	}

	if err := r.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return nil, apperr.Internal(err, "failed to store snapshot")
	}
	return toSnapshot(rec, true), nil
}

// Get loads a snapshot with its line items. Concurrent loads of the same id share one query.
func (r *Repository) Get(ctx context.Context, id string) (*Snapshot, error) {
	v, err, _ := r.loads.Do(id, func() (any, error) {
		var rec SnapshotRecord
		err := r.db.WithContext(ctx).
			Preload("Items", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
			Where("id = ?", id).
			First(&rec).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.NotFound("snapshot %s not found", id)
		}
		if err != nil {
			return nil, apperr.Internal(err, "failed to load snapshot %s", id)
		}
		return toSnapshot(rec, true), nil
	})
	if err != nil {
		return nil, err
	}
	// callers may share the result; hand out a copy
	s := *v.(*Snapshot)
	s.Items = append([]bomdiff.LineItem(nil), s.Items...)
	return &s, nil
}

// List returns snapshots newest first, without line items.
func (r *Repository) List(ctx context.Context, bomRef string) ([]Snapshot, error) {
	q := r.db.WithContext(ctx).Model(&SnapshotRecord{})
	if bomRef != "" {
		q = q.Where("bom_ref = ?", bomRef)
	}

	var recs []SnapshotRecord
	if err := q.Order("created_at DESC").Order("id ASC").Find(&recs).Error; err != nil {
		return nil, apperr.Internal(err, "failed to list snapshots")
	}

	var counts []struct {
		SnapshotID string
		N          int
	}
	if err := r.db.WithContext(ctx).Model(&LineItemRecord{}).
		Select("snapshot_id, COUNT(*) AS n").
		Group("snapshot_id").
		Scan(&counts).Error; err != nil {
		return nil, apperr.Internal(err, "failed to count line items")
	}
	byID := make(map[string]int, len(counts))
	for _, c := range counts {
		byID[c.SnapshotID] = c.N
	}

	out := make([]Snapshot, 0, len(recs))
	for _, rec := range recs {
		s := toSnapshot(rec, false)
		s.ItemCount = byID[rec.ID]
		out = append(out, *s)
	}
	return out, nil
}

// WhereUsed returns the BOM references of snapshots listing partNumber.
func (r *Repository) WhereUsed(ctx context.Context, partNumber string) ([]string, error) {
	var refs []string
	err := r.db.WithContext(ctx).
		Table("bom_snapshots AS s").
		Distinct("s.bom_ref").
		Joins("JOIN bom_line_items AS li ON li.snapshot_id = s.id").
		Where("li.part_number = ?", partNumber).
		Order("s.bom_ref ASC").
		Pluck("s.bom_ref", &refs).Error
	if err != nil {
		return nil, apperr.Internal(err, "failed to look up usage of %s", partNumber)
	}
	return refs, nil
}

func toSnapshot(rec SnapshotRecord, withItems bool) *Snapshot {
	s := &Snapshot{ID: rec.ID, BOMRef: rec.BOMRef, Name: rec.Name, CreatedAt: rec.CreatedAt, ItemCount: len(rec.Items)}
	if withItems {
		s.Items = make([]bomdiff.LineItem, 0, len(rec.Items))
		for _, it := range rec.Items {
			s.Items = append(s.Items, it.toLineItem())
		}
	}
	return s
}
