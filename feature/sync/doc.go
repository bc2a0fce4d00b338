// Package sync exposes sync run control over HTTP.
//
// Starting a run returns immediately with the RUNNING run; progress is read
// back through the status route. Only one run may be active, a second start
// answers 409. Cancelling waits for the run to reach its next checkpoint.
//
// Routes:
//
//	POST /sync/runs              start a run
//	GET  /sync/runs              list runs (limit, offset)
//	GET  /sync/runs/:id          run status with live counters
//	POST /sync/runs/:id/cancel   cancel the active run
package sync
