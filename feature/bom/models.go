package bom

import (
	"time"

	"bom-reconciler/core/bomdiff"
)

// SnapshotRecord is a stored BOM snapshot.
type SnapshotRecord struct {
	ID        string           `gorm:"column:id;primaryKey;size:36"`
	BOMRef    string           `gorm:"column:bom_ref;size:128;index"`
	Name      string           `gorm:"column:name"`
	CreatedAt time.Time        `gorm:"column:created_at"`
	Items     []LineItemRecord `gorm:"foreignKey:SnapshotID;constraint:OnDelete:CASCADE"`
}

// TableName overrides the table name.
func (SnapshotRecord) TableName() string {
	return "bom_snapshots"
}

// LineItemRecord is one stored line item. Position keeps the snapshot order.
type LineItemRecord struct {
	ID               uint    `gorm:"column:id;primaryKey;autoIncrement"`
	SnapshotID       string  `gorm:"column:snapshot_id;size:36;index"`
	Position         int     `gorm:"column:position"`
	PartNumber       string  `gorm:"column:part_number;size:128;index"`
	Description      string  `gorm:"column:description"`
	Quantity         float64 `gorm:"column:quantity"`
	UnitCost         float64 `gorm:"column:unit_cost"`
	Supplier         string  `gorm:"column:supplier;size:128"`
	ComplianceStatus string  `gorm:"column:compliance_status;size:64"`
}

// TableName overrides the table name.
func (LineItemRecord) TableName() string {
	return "bom_line_items"
}

func (r LineItemRecord) toLineItem() bomdiff.LineItem {
	return bomdiff.LineItem{
		PartNumber:       r.PartNumber,
		Description:      r.Description,
		Quantity:         r.Quantity,
		UnitCost:         r.UnitCost,
		Supplier:         r.Supplier,
		ComplianceStatus: r.ComplianceStatus,
	}
}

// Snapshot is the API view of a stored snapshot.
type Snapshot struct {
	ID        string             `json:"id"`
	BOMRef    string             `json:"bom_ref"`
	Name      string             `json:"name"`
	CreatedAt time.Time          `json:"created_at"`
	Items     []bomdiff.LineItem `json:"items,omitempty"`
	ItemCount int                `json:"item_count"`
}

// ToDiff returns the engine view of the snapshot.
func (s Snapshot) ToDiff() bomdiff.Snapshot {
	return bomdiff.Snapshot{ID: s.ID, Name: s.Name, Items: s.Items}
}

// CreateRequest is the body of POST /boms/snapshots.
type CreateRequest struct {
	BOMRef string             `json:"bom_ref"`
	Name   string             `json:"name"`
	Items  []bomdiff.LineItem `json:"items"`
}

// CompareRequest is the body of POST /boms/compare.
type CompareRequest struct {
	SnapshotIDs   []string            `json:"snapshot_ids"`
	BaselineIndex int                 `json:"baseline_index"`
	Dimensions    []bomdiff.Dimension `json:"dimensions"`
}
