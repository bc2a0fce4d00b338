// Package alignment persists detected field differences and drives their
// review lifecycle.
//
// An alignment Record starts PENDING and moves exactly once, to ALIGNED
// (accepted, with a resolved value) or IGNORED (consciously left divergent).
// Records are never deleted or reopened: they are the audit trail of every
// divergence the reconciler has seen.
//
// Status updates are guarded in SQL (UPDATE ... WHERE status = 'PENDING'), so
// of two concurrent resolutions of the same record exactly one wins and the
// other observes InvalidState.
//
// While a PENDING record exists for a (part, field) fingerprint, a new sync
// pass that detects the same difference refreshes it instead of stacking
// duplicates (see Store.Record). Once that record is terminal, a recurrence
// creates a fresh record.
package alignment
