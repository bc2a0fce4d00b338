// Package bomdiff compares BOM snapshots against a chosen baseline.
//
// Compare builds a part-number keyed lookup for every snapshot, then compares
// each non-baseline snapshot with the baseline along the requested dimensions:
//
//   - structure: parts missing from the compare snapshot are "removed", parts
//     only present in it are "added"
//   - quantity, cost: numeric difference (compare - baseline)
//   - compliance, supplier: inequality, counted as a delta of 1
//
// A line item present in both snapshots yields at most one "modified"
// Difference covering every differing dimension. Comparisons against separate
// snapshots run in parallel and are merged by snapshot index, so the result is
// deterministic: ordered by part number, then snapshot index.
package bomdiff
