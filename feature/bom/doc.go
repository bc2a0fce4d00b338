// Package bom stores BOM snapshots and compares them through the bomdiff engine.
//
// Snapshots are immutable once stored. Loading a snapshot goes through a
// singleflight group, so concurrent comparisons naming the same snapshot read
// it from the database once.
//
// Routes:
//
//	POST /boms/snapshots        store a snapshot
//	GET  /boms/snapshots        list snapshots (optional ?bom_ref=)
//	GET  /boms/snapshots/:id    fetch a snapshot with its line items
//	POST /boms/compare          compare snapshots against a baseline
package bom
