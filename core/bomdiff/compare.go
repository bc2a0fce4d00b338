package bomdiff

import (
	"context"
	"math"
	"sort"

	"bom-reconciler/core/apperr"
	"bom-reconciler/core/telemetry"
	"bom-reconciler/core/utils"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

const epsilon = 1e-9

type lookup map[string]*LineItem

// Compare diffs every snapshot other than snapshots[baseline] against the baseline.
func Compare(ctx context.Context, snapshots []Snapshot, baseline int, dims []Dimension) (*DiffResult, error) {
	dims, err := validate(snapshots, baseline, dims)
	if err != nil {
		return nil, err
	}

	ctx, span := telemetry.Tracer().Start(ctx, "bomdiff.compare", trace.WithAttributes(
		attribute.Int("bom.snapshots", len(snapshots)),
		attribute.Int("bom.baseline_index", baseline),
	))
	defer span.End()

	lookups := make([]lookup, len(snapshots))
	for i := range snapshots {
		lookups[i] = index(snapshots[i])
	}

	want := make(map[Dimension]bool, len(dims))
	for _, d := range dims {
		want[d] = true
	}

	perSnapshot := make([][]Difference, len(snapshots))
	g, gctx := errgroup.WithContext(ctx)
	for i := range snapshots {
		if i == baseline {
			continue
		}
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			perSnapshot[i] = comparePair(snapshots[baseline], lookups[baseline], snapshots[i], lookups[i], i, want)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, apperr.Internal(err, "comparison interrupted")
	}

	res := &DiffResult{
		BaselineIndex: baseline,
		BaselineID:    snapshots[baseline].ID,
		Dimensions:    dims,
		Differences:   []Difference{},
	}
	for i, diffs := range perSnapshot {
		if i == baseline {
			continue
		}
		sum := SnapshotSummary{SnapshotIndex: i, SnapshotID: snapshots[i].ID}
		for _, d := range diffs {
			switch d.ChangeType {
			case ChangeAdded:
				sum.Added++
			case ChangeRemoved:
				sum.Removed++
			case ChangeModified:
				sum.Modified++
			}
		}
		res.Summary.Added += sum.Added
		res.Summary.Removed += sum.Removed
		res.Summary.Modified += sum.Modified
		res.Summary.PerSnapshot = append(res.Summary.PerSnapshot, sum)
		res.Differences = append(res.Differences, diffs...)
	}
	res.Summary.Total = len(res.Differences)

	sort.SliceStable(res.Differences, func(a, b int) bool {
		da, db := res.Differences[a], res.Differences[b]
		if da.PartNumber != db.PartNumber {
			return da.PartNumber < db.PartNumber
		}
		return da.SnapshotIndex < db.SnapshotIndex
	})

	span.SetAttributes(attribute.Int("bom.differences", res.Summary.Total))
	return res, nil
}

func validate(snapshots []Snapshot, baseline int, dims []Dimension) ([]Dimension, error) {
	if len(snapshots) < 2 {
		return nil, apperr.Validation("at least two snapshots are required, got %d", len(snapshots))
	}
	if baseline < 0 || baseline >= len(snapshots) {
		return nil, apperr.Validation("baseline index %d out of range [0,%d)", baseline, len(snapshots))
	}
	if len(dims) == 0 {
		return nil, apperr.Validation("at least one dimension is required")
	}

	seen := make(map[Dimension]bool, len(dims))
	out := make([]Dimension, 0, len(dims))
	for _, d := range dims {
		if !d.Valid() {
			return nil, apperr.Validation("unknown dimension %q", d)
		}
		if seen[d] {
			continue
		}
		seen[d] = true
		out = append(out, d)
	}

	for i, s := range snapshots {
		parts := make(map[string]struct{}, len(s.Items))
		for _, item := range s.Items {
			if item.PartNumber == "" {
				return nil, apperr.Validation("snapshot %d has a line item without part number", i)
			}
			if _, dup := parts[item.PartNumber]; dup {
				return nil, apperr.Validation("snapshot %d lists part %s more than once", i, item.PartNumber)
			}
			parts[item.PartNumber] = struct{}{}
		}
	}
	return out, nil
}

func index(s Snapshot) lookup {
	l := make(lookup, len(s.Items))
	for i := range s.Items {
		l[s.Items[i].PartNumber] = &s.Items[i]
	}
	return l
}

// comparePair is read-only on both snapshots and their lookups.
func comparePair(base Snapshot, baseIdx lookup, cmp Snapshot, cmpIdx lookup, snapshotIndex int, want map[Dimension]bool) []Difference {
	var diffs []Difference

	for i := range cmp.Items {
		item := &cmp.Items[i]
		b, ok := baseIdx[item.PartNumber]
		if !ok {
			if want[DimensionStructure] {
				c := *item
				diffs = append(diffs, Difference{
					PartNumber:         item.PartNumber,
					SnapshotIndex:      snapshotIndex,
					SnapshotID:         cmp.ID,
					ChangeType:         ChangeAdded,
					AffectedDimensions: []Dimension{DimensionStructure},
					Compare:            &c,
				})
			}
			continue
		}

		if d, changed := modified(b, item, want); changed {
			d.SnapshotIndex = snapshotIndex
			d.SnapshotID = cmp.ID
			diffs = append(diffs, d)
		}
	}

	if want[DimensionStructure] {
		for i := range base.Items {
			item := &base.Items[i]
			if _, ok := cmpIdx[item.PartNumber]; ok {
				continue
			}
			b := *item
			diffs = append(diffs, Difference{
				PartNumber:         item.PartNumber,
				SnapshotIndex:      snapshotIndex,
				SnapshotID:         cmp.ID,
				ChangeType:         ChangeRemoved,
				AffectedDimensions: []Dimension{DimensionStructure},
				Baseline:           &b,
			})
		}
	}
	return diffs
}

// modified aggregates every differing requested dimension of one item into a single Difference.
func modified(base, cmp *LineItem, want map[Dimension]bool) (Difference, bool) {
	deltas := make(map[Dimension]DimensionDelta)

	for _, dim := range AllDimensions {
		if !want[dim] {
			continue
		}
		switch dim {
		case DimensionQuantity:
			if delta := cmp.Quantity - base.Quantity; math.Abs(delta) > epsilon {
				deltas[dim] = DimensionDelta{BaselineValue: base.Quantity, CompareValue: cmp.Quantity, Delta: delta}
			}
		case DimensionCost:
			if delta := cmp.UnitCost - base.UnitCost; math.Abs(delta) > epsilon {
				deltas[dim] = DimensionDelta{BaselineValue: base.UnitCost, CompareValue: cmp.UnitCost, Delta: delta}
			}
		case DimensionCompliance:
			if utils.NormalizeText(base.ComplianceStatus) != utils.NormalizeText(cmp.ComplianceStatus) {
				deltas[dim] = DimensionDelta{BaselineValue: base.ComplianceStatus, CompareValue: cmp.ComplianceStatus, Delta: 1}
			}
		case DimensionSupplier:
			if utils.NormalizeText(base.Supplier) != utils.NormalizeText(cmp.Supplier) {
				deltas[dim] = DimensionDelta{BaselineValue: base.Supplier, CompareValue: cmp.Supplier, Delta: 1}
			}
		}
	}

	if len(deltas) == 0 {
		return Difference{}, false
	}

	affected := make([]Dimension, 0, len(deltas))
	for _, dim := range AllDimensions {
		if _, ok := deltas[dim]; ok {
			affected = append(affected, dim)
		}
	}

	b, c := *base, *cmp
	return Difference{
		PartNumber:         cmp.PartNumber,
		ChangeType:         ChangeModified,
		AffectedDimensions: affected,
		Deltas:             deltas,
		Baseline:           &b,
		Compare:            &c,
	}, true
}
