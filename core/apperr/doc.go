// Package apperr defines the error taxonomy shared by the reconciliation core
// and the HTTP layer.
//
// Every failure that crosses a package boundary is classified into one of a
// small set of kinds:
//
//   - NotFound: unknown record or run id.
//   - InvalidState: disallowed lifecycle transition (resolving a non-PENDING
//     record, cancelling a run that is not RUNNING, starting while busy).
//   - ValidationError: malformed request (unknown filter value, out of range
//     baseline index, fewer than two snapshots).
//   - UpstreamUnavailable: the authoritative source could not be reached.
//   - InternalError: anything unexpected.
//
// Handlers translate kinds into HTTP status codes with Status and render the
// structured body with Body.
package apperr
