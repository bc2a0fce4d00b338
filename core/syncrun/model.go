package syncrun

import (
	"time"

	"gorm.io/datatypes"
)

// Mode selects how much of the authoritative source a run scans.
type Mode string

const (
	// ModeFull scans every authoritative page.
	ModeFull Mode = "FULL"
	// ModeIncremental scans pages changed since the last successful run started.
	ModeIncremental Mode = "INCREMENTAL"
	// ModeManual scans only the requested part ids.
	ModeManual Mode = "MANUAL"
)

// Valid reports whether m is a known mode.
func (m Mode) Valid() bool {
	switch m {
	case ModeFull, ModeIncremental, ModeManual:
		return true
	}
	return false
}

// Status is the state of a sync run.
type Status string

const (
	StatusRunning        Status = "RUNNING"
	StatusSuccess        Status = "SUCCESS"
	StatusPartialSuccess Status = "PARTIAL_SUCCESS"
	StatusFailed         Status = "FAILED"
	StatusCancelled      Status = "CANCELLED"
)

// Terminal reports whether s is final.
func (s Status) Terminal() bool {
	return s != StatusRunning && s != ""
}

// Filters narrows a run.
type Filters struct {
	// PartIDs restricts a MANUAL run. Parts outside the set are skipped without being counted.
	PartIDs []string `json:"part_ids,omitempty"`
}

// Counters are the item tallies of a run.
type Counters struct {
	Scanned     int `json:"items_scanned"`
	Synced      int `json:"items_synced"`
	Failed      int `json:"items_failed"`
	Differences int `json:"differences_found"`
}

// DeriveStatus computes the terminal status of a run that completed its scan:
// FAILED when items were scanned but none synced, PARTIAL_SUCCESS when some
// failed and some synced, SUCCESS otherwise.
func DeriveStatus(c Counters) Status {
	switch {
	case c.Synced == 0 && c.Scanned > 0:
		return StatusFailed
	case c.Failed > 0 && c.Synced > 0:
		return StatusPartialSuccess
	default:
		return StatusSuccess
	}
}

// Run is the persisted log entry of one reconciliation pass.
type Run struct {
	ID               string                      `gorm:"column:id;primaryKey;size:36" json:"id"`
	Mode             Mode                        `gorm:"column:mode;size:16" json:"mode"`
	Status           Status                      `gorm:"column:status;size:16;index" json:"status"`
	StartedAt        time.Time                   `gorm:"column:started_at;index" json:"started_at"`
	EndedAt          *time.Time                  `gorm:"column:ended_at" json:"ended_at"`
	ItemsScanned     int                         `gorm:"column:items_scanned" json:"items_scanned"`
	ItemsSynced      int                         `gorm:"column:items_synced" json:"items_synced"`
	ItemsFailed      int                         `gorm:"column:items_failed" json:"items_failed"`
	DifferencesFound int                         `gorm:"column:differences_found" json:"differences_found"`
	TriggeredBy      string                      `gorm:"column:triggered_by;size:128" json:"triggered_by"`
	Since            *time.Time                  `gorm:"column:since" json:"since,omitempty"`
	PartIDs          datatypes.JSONSlice[string] `gorm:"column:part_ids" json:"part_ids,omitempty"`
	Error            string                      `gorm:"column:error" json:"error,omitempty"`
	UpdatedAt        time.Time                   `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name.
func (Run) TableName() string {
	return "sync_runs"
}

// Counters returns the run tallies.
func (r Run) Counters() Counters {
	return Counters{
		Scanned:     r.ItemsScanned,
		Synced:      r.ItemsSynced,
		Failed:      r.ItemsFailed,
		Differences: r.DifferencesFound,
	}
}
