// Package catalog connects the reconciler to both sides of a comparison.
//
// LocalCatalog reads tracked part attributes from the local catalog database.
// A Profile maps logical field names to the columns of the parts table, so
// catalogs with different column naming can be reconciled without code
// changes.
//
// BucketSource reads the authoritative system's part export from object
// storage. The export is a sequence of JSON pages under a common prefix,
// ordered by object key:
//
//	authoritative/parts/0001.json
//	authoritative/parts/0002.json
//
// Each page holds {"items": [{"part_id": ..., "fields": {...}, "bom_refs": [...]}]}.
// The cursor is the key of the last page read; incremental runs skip pages not
// modified since the previous successful run.
//
// Applier consumes AlignmentResolved events and writes the resolved value back
// to the local catalog, so an aligned difference is not detected again.
//
// Routes:
//
//	GET /catalog/parts/:id   tracked local values of a part
//	GET /catalog/source      authoritative export readiness
package catalog
