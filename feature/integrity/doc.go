// Package integrity validates that the reconciler's infrastructure is ready.
//
// # Checks Provided
//
//   - Schema: every table backing a persisted model exists and carries the
//     columns the model maps. Runs against MySQL and SQLite.
//   - Storage: the bucket exists and each required prefix (the authoritative
//     export prefix) holds at least one object.
//
// # HTTP Endpoints
//
//   - GET /integrity : Runs all checks.
//   - GET /integrity/schema : Runs the schema check.
//   - GET /integrity/storage : Runs the storage check.
package integrity
