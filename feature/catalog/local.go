package catalog

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"bom-reconciler/core/apperr"
	"bom-reconciler/core/utils"

	"gorm.io/gorm"
)

// UsageIndex reports which BOMs use a part.
type UsageIndex interface {
	WhereUsed(ctx context.Context, partNumber string) ([]string, error)
}

// LocalCatalog reads and updates tracked values in the local parts table.
type LocalCatalog struct {
	db      *gorm.DB
	profile Profile
	usage   UsageIndex
}

// NewLocalCatalog creates a catalog reader. usage may be nil.
func NewLocalCatalog(db *gorm.DB, profile Profile, usage UsageIndex) *LocalCatalog {
	return &LocalCatalog{db: db, profile: profile, usage: usage}
}

// Migrate creates the parts table of the default profile.
func (c *LocalCatalog) Migrate() error {
	return c.db.AutoMigrate(&Part{})
}

func (c *LocalCatalog) column(field string) (string, error) {
	col, ok := c.profile.Columns[field]
	if !ok {
		return "", apperr.Validation("field %q is not mapped to a catalog column", field)
	}
	return col, nil
}

// GetLocalValue returns the local value of field for partID, nil when unset.
func (c *LocalCatalog) GetLocalValue(ctx context.Context, partID, field string) (*string, error) {
	col, err := c.column(field)
	if err != nil {
		return nil, err
	}

	var rows []map[string]any
	err = c.db.WithContext(ctx).
		Table(c.profile.TableName).
		Select(col).
		Where(fmt.Sprintf("%s = ?", c.profile.KeyColumn), partID).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, apperr.Internal(err, "failed to read %s of part %s", field, partID)
	}
	if len(rows) == 0 {
		return nil, apperr.NotFound("part %s not found", partID)
	}
	return formatValue(rows[0][col]), nil
}

// Values returns every mapped field of partID.
func (c *LocalCatalog) Values(ctx context.Context, partID string) (map[string]*string, error) {
	var rows []map[string]any
	err := c.db.WithContext(ctx).
		Table(c.profile.TableName).
		Where(fmt.Sprintf("%s = ?", c.profile.KeyColumn), partID).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, apperr.Internal(err, "failed to read part %s", partID)
	}
	if len(rows) == 0 {
		return nil, apperr.NotFound("part %s not found", partID)
	}

	out := make(map[string]*string, len(c.profile.Columns))
	for field, col := range c.profile.Columns {
		out[field] = formatValue(rows[0][col])
	}
	return out, nil
}

// SetLocalValue writes value into the column mapped to field. A nil value,
// or a blank one for numeric fields, clears the column.
func (c *LocalCatalog) SetLocalValue(ctx context.Context, partID, field string, value *string) error {
	col, err := c.column(field)
	if err != nil {
		return err
	}

	var v any
	if value != nil {
		v = *value
		if c.numeric(field) {
			v, err = numericValue(field, *value)
			if err != nil {
				return err
			}
		}
	}

	res := c.db.WithContext(ctx).
		Table(c.profile.TableName).
		Where(fmt.Sprintf("%s = ?", c.profile.KeyColumn), partID).
		Updates(map[string]any{col: v})
	if res.Error != nil {
		return apperr.Internal(res.Error, "failed to update %s of part %s", field, partID)
	}
	if res.RowsAffected == 0 {
		// MySQL reports unchanged rows as unaffected
		var n int64
		if err := c.db.WithContext(ctx).Table(c.profile.TableName).
			Where(fmt.Sprintf("%s = ?", c.profile.KeyColumn), partID).
			Count(&n).Error; err != nil {
			return apperr.Internal(err, "failed to look up part %s", partID)
		}
		if n == 0 {
			return apperr.NotFound("part %s not found", partID)
		}
	}
	return nil
}

func (c *LocalCatalog) numeric(field string) bool {
	return field == "unit_price" || field == "lead_time_days"
}

func numericValue(field, value string) (any, error) {
	if strings.TrimSpace(value) == "" {
		return nil, nil
	}
	n, ok := utils.ParseNumber(value)
	if !ok {
		return nil, apperr.Validation("%s value %q is not a number", field, value)
	}
	return n, nil
}

// WhereUsed returns the BOMs referencing partID.
func (c *LocalCatalog) WhereUsed(ctx context.Context, partID string) ([]string, error) {
	if c.usage == nil {
		return nil, nil
	}
	return c.usage.WhereUsed(ctx, partID)
}

// formatValue renders a scanned column value the way the authoritative export spells it.
func formatValue(v any) *string {
	var s string
	switch t := v.(type) {
	case nil:
		return nil
	case string:
		s = t
	case []byte:
		s = string(t)
	case float64:
		s = utils.FormatNumber(t)
	case float32:
		s = utils.FormatNumber(float64(t))
	case int64:
		s = strconv.FormatInt(t, 10)
	case int:
		s = strconv.Itoa(t)
	case time.Time:
		s = t.UTC().Format(time.RFC3339)
	default:
		s = fmt.Sprint(t)
	}
	return &s
}
