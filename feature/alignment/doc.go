// Package alignment exposes alignment records over HTTP.
//
// Resolve and ignore take a discriminated request: either a single "id"
// (resolve may also carry a "value") or a set of "ids". Sending both, or
// neither, is a validation error. Batch requests are best effort and report
// a per-id outcome.
//
// Routes:
//
//	GET  /alignments             list records (severity, status, part_id, page, page_size)
//	GET  /alignments/summary     pending counts by severity
//	GET  /alignments/:id         fetch one record
//	POST /alignments/resolve     resolve one record or a batch
//	POST /alignments/ignore      ignore one record or a batch
package alignment
