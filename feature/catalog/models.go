package catalog

import "time"

// Part is a row of the local parts table.
type Part struct {
	PartID          string    `gorm:"column:part_id;primaryKey;size:128" json:"part_id"`
	Description     *string   `gorm:"column:description" json:"description"`
	Specification   *string   `gorm:"column:specification" json:"specification"`
	Manufacturer    *string   `gorm:"column:manufacturer;size:128" json:"manufacturer"`
	UnitPrice       *float64  `gorm:"column:unit_price" json:"unit_price"`
	LeadTimeDays    *int      `gorm:"column:lead_time_days" json:"lead_time_days"`
	LifecycleStatus *string   `gorm:"column:lifecycle_status;size:32" json:"lifecycle_status"`
	UpdatedAt       time.Time `gorm:"column:updated_at" json:"updated_at"`
}

// TableName overrides the table name.
func (Part) TableName() string {
	return "parts"
}

// Profile maps logical field names to columns of a parts table.
type Profile struct {
	// TableName is the parts table.
	TableName string
	// KeyColumn identifies a part.
	KeyColumn string
	// Columns maps tracked field names to column names.
	Columns map[string]string
}

// DefaultProfile matches the Part model.
func DefaultProfile() Profile {
	return Profile{
		TableName: "parts",
		KeyColumn: "part_id",
		Columns: map[string]string{
			"description":      "description",
			"specification":    "specification",
			"manufacturer":     "manufacturer",
			"unit_price":       "unit_price",
			"lead_time_days":   "lead_time_days",
			"lifecycle_status": "lifecycle_status",
		},
	}
}

// Page is the JSON document of one authoritative export page.
type Page struct {
	Items []PageItem `json:"items"`
}

// PageItem is one part of an export page.
type PageItem struct {
	PartID  string             `json:"part_id"`
	Fields  map[string]*string `json:"fields"`
	BOMRefs []string           `json:"bom_refs,omitempty"`
}
