// Package metrics exposes reconciliation counters and histograms in the
// Prometheus format.
//
// A Metrics value owns its own registry, so tests can create isolated
// instances. Handler serves the registry on a Fiber route (GET /metrics).
package metrics
