// Package events publishes reconciliation domain events to downstream consumers.
//
// Three events are emitted:
//
//   - AlignmentResolved when a record moves PENDING -> ALIGNED
//   - AlignmentIgnored when a record moves PENDING -> IGNORED
//   - SyncRunCompleted once per run, after its terminal state is persisted
//
// Events are JSON encoded and published on "<prefix>.<event name>" subjects
// through NATS JetStream when events.nats_url is configured. Without a NATS URL
// the LogPublisher writes them to the application log instead, so the rest of
// the system never needs to know whether a broker is present.
package events
