package events

import (
	"context"
	"errors"
	"time"
)

// Event names, also used as subject suffixes.
const (
	NameAlignmentResolved = "alignment.resolved"
	NameAlignmentIgnored  = "alignment.ignored"
	NameSyncRunCompleted  = "syncrun.completed"
)

// Event is a domain event with a stable name.
type Event interface {
	EventName() string
}

// AlignmentResolved is emitted when a difference is accepted with a final value.
// A nil ResolvedValue means the value was removed.
type AlignmentResolved struct {
	AlignmentID   string    `json:"alignment_id"`
	PartID        string    `json:"part_id"`
	Field         string    `json:"field"`
	ResolvedValue *string   `json:"resolved_value"`
	AffectedBOMs  []string  `json:"affected_boms"`
	ResolvedAt    time.Time `json:"resolved_at"`
}

func (AlignmentResolved) EventName() string { return NameAlignmentResolved }

// AlignmentIgnored is emitted when a difference is consciously left in place.
type AlignmentIgnored struct {
	AlignmentID string    `json:"alignment_id"`
	PartID      string    `json:"part_id"`
	Field       string    `json:"field"`
	IgnoredAt   time.Time `json:"ignored_at"`
}

func (AlignmentIgnored) EventName() string { return NameAlignmentIgnored }

// SyncRunCompleted is emitted once a run reaches a terminal state.
type SyncRunCompleted struct {
	RunID            string    `json:"run_id"`
	Mode             string    `json:"mode"`
	Status           string    `json:"status"`
	ItemsScanned     int       `json:"items_scanned"`
	ItemsSynced      int       `json:"items_synced"`
	ItemsFailed      int       `json:"items_failed"`
	DifferencesFound int       `json:"differences_found"`
	StartedAt        time.Time `json:"started_at"`
	EndedAt          time.Time `json:"ended_at"`
}

func (SyncRunCompleted) EventName() string { return NameSyncRunCompleted }

// Publisher delivers domain events. Implementations must be safe for concurrent use.
type Publisher interface {
	Publish(ctx context.Context, e Event) error
	Close()
}

// Fanout publishes every event to each publisher in order and joins their errors.
type Fanout []Publisher

// Publish delivers e to every publisher, even after a failure.
func (f Fanout) Publish(ctx context.Context, e Event) error {
	var errs []error
	for _, p := range f {
		if err := p.Publish(ctx, e); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Close closes every publisher.
func (f Fanout) Close() {
	for _, p := range f {
		p.Close()
	}
}
