package alignment

import (
	"strings"

	"bom-reconciler/core/apperr"
)

// ListQuery holds the query parameters of GET /alignments.
type ListQuery struct {
	Severity string `query:"severity"`
	Status   string `query:"status"`
	PartID   string `query:"part_id"`
	Page     int    `query:"page"`
	PageSize int    `query:"page_size"`
}

// TargetRequest names one record or a set of records.
type TargetRequest struct {
	ID  *string  `json:"id,omitempty"`
	IDs []string `json:"ids,omitempty"`
}

// Single reports whether the request targets one record.
func (r TargetRequest) Single() bool {
	return r.ID != nil
}

func (r TargetRequest) validate() error {
	switch {
	case r.ID != nil && r.IDs != nil:
		return apperr.Validation("send either id or ids, not both")
	case r.ID != nil:
		if strings.TrimSpace(*r.ID) == "" {
			return apperr.Validation("id must not be empty")
		}
	case r.IDs != nil:
		if len(r.IDs) == 0 {
			return apperr.Validation("ids must not be empty")
		}
		for _, id := range r.IDs {
			if strings.TrimSpace(id) == "" {
				return apperr.Validation("ids must not contain empty values")
			}
		}
	default:
		return apperr.Validation("id or ids is required")
	}
	return nil
}

// ResolveRequest is the body of POST /alignments/resolve. Value is only
// accepted with a single id; omitted, the authoritative value is adopted.
type ResolveRequest struct {
	TargetRequest
	Value *string `json:"value,omitempty"`
}

// Validate checks the request shape.
func (r ResolveRequest) Validate() error {
	if err := r.TargetRequest.validate(); err != nil {
		return err
	}
	if r.Value != nil && !r.Single() {
		return apperr.Validation("value is only accepted with a single id")
	}
	return nil
}

// IgnoreRequest is the body of POST /alignments/ignore.
type IgnoreRequest struct {
	TargetRequest
}

// Validate checks the request shape.
func (r IgnoreRequest) Validate() error {
	return r.TargetRequest.validate()
}

// SummaryResponse counts pending records by severity.
type SummaryResponse struct {
	Pending map[string]int64 `json:"pending"`
	Total   int64            `json:"total"`
}
