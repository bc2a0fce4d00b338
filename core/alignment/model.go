package alignment

import (
	"strings"
	"time"

	"bom-reconciler/core/apperr"
	"bom-reconciler/core/reconcile"

	"gorm.io/datatypes"
)

// Status is the review state of a record.
type Status string

const (
	StatusPending Status = "PENDING"
	StatusAligned Status = "ALIGNED"
	StatusIgnored Status = "IGNORED"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusAligned, StatusIgnored:
		return true
	}
	return false
}

// Terminal reports whether no further transition is allowed.
func (s Status) Terminal() bool {
	return s == StatusAligned || s == StatusIgnored
}

// Record is one detected difference between the local and authoritative value of a field.
type Record struct {
	ID                   string                      `gorm:"column:id;primaryKey;size:36" json:"id"`
	PartID               string                      `gorm:"column:part_id;size:128;index:idx_alignment_fingerprint" json:"part_id"`
	Field                string                      `gorm:"column:field;size:64;index:idx_alignment_fingerprint" json:"field"`
	AuthoritativeValue   *string                     `gorm:"column:authoritative_value" json:"authoritative_value"`
	LocalValue           *string                     `gorm:"column:local_value" json:"local_value"`
	Severity             reconcile.Severity          `gorm:"column:severity;size:16;index" json:"severity"`
	SeverityRank         int                         `gorm:"column:severity_rank" json:"-"`
	Status               Status                      `gorm:"column:status;size:16;index" json:"status"`
	DifferenceType       reconcile.DifferenceType    `gorm:"column:difference_type;size:32" json:"difference_type"`
	Recommendation       string                      `gorm:"column:recommendation" json:"recommended_resolution"`
	RequiresVerification bool                        `gorm:"column:requires_verification" json:"requires_verification"`
	AffectedBOMs         datatypes.JSONSlice[string] `gorm:"column:affected_boms" json:"affected_bom_references"`
	ResolvedValue        *string                     `gorm:"column:resolved_value" json:"resolved_value"`
	SyncRunID            *string                     `gorm:"column:sync_run_id;size:36;index" json:"sync_run_id,omitempty"`
	CreatedAt            time.Time                   `gorm:"column:created_at" json:"created_at"`
	UpdatedAt            time.Time                   `gorm:"column:updated_at" json:"last_updated_at"`
}

// TableName overrides the table name.
func (Record) TableName() string {
	return "alignment_records"
}

// Detection is a classified difference ready to be recorded.
type Detection struct {
	PartID             string
	Field              string
	LocalValue         *string
	AuthoritativeValue *string
	Classification     reconcile.Classification
	AffectedBOMs       []string
	SyncRunID          *string
}

func (d Detection) validate() error {
	if d.PartID == "" || d.Field == "" {
		return apperr.Validation("part id and field are required")
	}
	if !d.Classification.Differs {
		return apperr.Validation("detection for %s/%s carries no difference", d.PartID, d.Field)
	}
	if !d.Classification.Severity.Valid() {
		return apperr.Validation("unknown severity %q", d.Classification.Severity)
	}
	if len(d.AffectedBOMs) == 0 {
		return apperr.Validation("affected BOM references must not be empty")
	}
	return nil
}

// apply copies the detected values onto r.
func (d Detection) apply(r *Record) {
	r.PartID = d.PartID
	r.Field = d.Field
	r.LocalValue = d.LocalValue
	r.AuthoritativeValue = d.AuthoritativeValue
	r.Severity = d.Classification.Severity
	r.SeverityRank = d.Classification.Severity.Rank()
	r.DifferenceType = d.Classification.DifferenceType
	r.Recommendation = d.Classification.Recommendation
	r.RequiresVerification = d.Classification.RequiresVerification
	r.AffectedBOMs = datatypes.JSONSlice[string](dedupe(d.AffectedBOMs))
	r.SyncRunID = d.SyncRunID
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, v := range in {
		if _, ok := seen[v]; ok || v == "" {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// Filter narrows a listing. Empty fields match everything.
type Filter struct {
	Severity string `json:"severity,omitempty"`
	Status   string `json:"status,omitempty"`
	PartID   string `json:"part_id,omitempty"`
}

// Validate normalizes and checks the filter values.
func (f *Filter) Validate() error {
	if f.Severity != "" {
		sev, ok := reconcile.ParseSeverity(f.Severity)
		if !ok {
			return apperr.Validation("unknown severity filter %q", f.Severity)
		}
		f.Severity = string(sev)
	}
	if f.Status != "" {
		st := Status(strings.ToUpper(strings.TrimSpace(f.Status)))
		if !st.Valid() {
			return apperr.Validation("unknown status filter %q", f.Status)
		}
		f.Status = string(st)
	}
	return nil
}

const (
	DefaultPageSize = 50
	MaxPageSize     = 500
)

// PageRequest selects a 1-based page.
type PageRequest struct {
	Number int `json:"page"`
	Size   int `json:"page_size"`
}

// Normalize applies defaults and bounds.
func (p PageRequest) Normalize() (PageRequest, error) {
	if p.Number < 0 || p.Size < 0 {
		return p, apperr.Validation("page and page_size must not be negative")
	}
	if p.Number == 0 {
		p.Number = 1
	}
	if p.Size == 0 {
		p.Size = DefaultPageSize
	}
	if p.Size > MaxPageSize {
		p.Size = MaxPageSize
	}
	return p, nil
}

func (p PageRequest) offset() int {
	return (p.Number - 1) * p.Size
}

// Page is one page of records.
type Page struct {
	Items    []Record `json:"items"`
	Total    int64    `json:"total"`
	Page     int      `json:"page"`
	PageSize int      `json:"page_size"`
}
