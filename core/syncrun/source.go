package syncrun

import (
	"context"
	"fmt"
	"time"
)

// Item is one part as reported by the authoritative source.
type Item struct {
	PartID string `json:"part_id"`
	// Fields holds tracked attribute values. A nil value means the authoritative side has none.
	Fields map[string]*string `json:"fields"`
	// BOMRefs lists the BOMs the authoritative system knows the part is used in.
	BOMRefs []string `json:"bom_refs,omitempty"`
}

// BatchRequest asks for the page after Cursor. A nil cursor starts at the beginning.
type BatchRequest struct {
	Cursor *string
	Since  *time.Time
	Limit  int
}

// Batch is one page of authoritative items. A nil NextCursor marks the last page.
type Batch struct {
	Items      []Item
	NextCursor *string
}

// Source is the read-only, paged authoritative data source.
type Source interface {
	FetchBatch(ctx context.Context, req BatchRequest) (*Batch, error)
}

// LocalCatalog reads the locally maintained part values.
type LocalCatalog interface {
	// GetLocalValue returns the local value of field, nil when unset.
	// A NotFound error means the part is unknown locally.
	GetLocalValue(ctx context.Context, partID, field string) (*string, error)
	// WhereUsed returns the BOMs referencing the part.
	WhereUsed(ctx context.Context, partID string) ([]string, error)
}

// PageError is returned by sources that can continue past a page they failed to read.
// NextCursor is where the following page starts; nil when the failed page was the last.
type PageError struct {
	Err        error
	NextCursor *string
	// Size is the number of items on the failed page, 0 when unknown.
	Size int
}

func (e *PageError) Error() string {
	return fmt.Sprintf("page read failed: %v", e.Err)
}

func (e *PageError) Unwrap() error {
	return e.Err
}
