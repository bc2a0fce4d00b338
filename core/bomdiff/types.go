package bomdiff

// Dimension is an aspect of a line item that can be compared.
type Dimension string

const (
	DimensionStructure  Dimension = "structure"
	DimensionQuantity   Dimension = "quantity"
	DimensionCost       Dimension = "cost"
	DimensionCompliance Dimension = "compliance"
	DimensionSupplier   Dimension = "supplier"
)

// AllDimensions lists every supported dimension.
var AllDimensions = []Dimension{
	DimensionStructure,
	DimensionQuantity,
	DimensionCost,
	DimensionCompliance,
	DimensionSupplier,
}

// Valid reports whether d is supported.
func (d Dimension) Valid() bool {
	for _, known := range AllDimensions {
		if d == known {
			return true
		}
	}
	return false
}

// LineItem is one row of a BOM.
type LineItem struct {
	PartNumber       string  `json:"part_number"`
	Description      string  `json:"description"`
	Quantity         float64 `json:"quantity"`
	UnitCost         float64 `json:"unit_cost"`
	Supplier         string  `json:"supplier"`
	ComplianceStatus string  `json:"compliance_status"`
}

// Snapshot is a point-in-time set of BOM line items.
type Snapshot struct {
	ID    string     `json:"id"`
	Name  string     `json:"name,omitempty"`
	Items []LineItem `json:"items"`
}

// ChangeType classifies a Difference.
type ChangeType string

const (
	ChangeAdded    ChangeType = "added"
	ChangeRemoved  ChangeType = "removed"
	ChangeModified ChangeType = "modified"
)

// DimensionDelta is the change of one dimension of a modified line item.
type DimensionDelta struct {
	BaselineValue any     `json:"baseline_value"`
	CompareValue  any     `json:"compare_value"`
	Delta         float64 `json:"delta"`
}

// Difference is one line item change of a compare snapshot relative to the baseline.
type Difference struct {
	PartNumber         string                       `json:"part_number"`
	SnapshotIndex      int                          `json:"snapshot_index"`
	SnapshotID         string                       `json:"snapshot_id"`
	ChangeType         ChangeType                   `json:"change_type"`
	AffectedDimensions []Dimension                  `json:"affected_dimensions"`
	Deltas             map[Dimension]DimensionDelta `json:"deltas,omitempty"`
	// Baseline is set for removed and modified items.
	Baseline *LineItem `json:"baseline,omitempty"`
	// Compare is set for added and modified items.
	Compare *LineItem `json:"compare,omitempty"`
}

// SnapshotSummary counts the differences of one compare snapshot.
type SnapshotSummary struct {
	SnapshotIndex int    `json:"snapshot_index"`
	SnapshotID    string `json:"snapshot_id"`
	Added         int    `json:"added"`
	Removed       int    `json:"removed"`
	Modified      int    `json:"modified"`
}

// Summary counts differences overall and per compare snapshot.
type Summary struct {
	Added       int               `json:"added"`
	Removed     int               `json:"removed"`
	Modified    int               `json:"modified"`
	Total       int               `json:"total"`
	PerSnapshot []SnapshotSummary `json:"per_snapshot"`
}

// DiffResult is the outcome of a comparison. It is derived, never persisted.
type DiffResult struct {
	BaselineIndex int          `json:"baseline_index"`
	BaselineID    string       `json:"baseline_id"`
	Dimensions    []Dimension  `json:"dimensions"`
	Differences   []Difference `json:"differences"`
	Summary       Summary      `json:"summary"`
}
