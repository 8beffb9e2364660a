package bulk

import (
	"strconv"
	"strings"

	appErrors "github.com/nppdeals/inventory-platform/internal/errors"
	"github.com/nppdeals/inventory-platform/internal/models"
	"github.com/shopspring/decimal"
)

// EditableFields returns the keys accepted by ApplyBulkEdit in catalog order.
func EditableFields() []string {
	out := []string{}
	for _, f := range models.ProductFields {
		if f.BulkEditable {
			out = append(out, f.Key)
		}
	}

	return out
}

// Coerce converts raw text into the value written for field. Blank text
// clears the field.
func Coerce(field, raw string) (any, error) {
	spec, ok := models.LookupField(field)
	if !ok || !spec.BulkEditable {
		return nil, appErrors.ValidationError("Field is not bulk editable").WithDetail(field)
	}

	value := strings.TrimSpace(raw)
	if value == "" {
		return nil, nil
	}

	switch spec.Kind {
	case models.FieldInteger:
		n, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, appErrors.ValidationError("Value must be a whole number").WithDetail(field).WithError(err)
		}
		if n < 0 {
			return nil, appErrors.ValidationError("Value must not be negative").WithDetail(field)
		}

		return n, nil

	case models.FieldDecimal, models.FieldFloat:
		d, err := decimal.NewFromString(value)
		if err != nil {
			return nil, appErrors.ValidationError("Value must be a number").WithDetail(field).WithError(err)
		}
		if d.IsNegative() {
			return nil, appErrors.ValidationError("Value must not be negative").WithDetail(field)
		}

		if spec.Kind == models.FieldFloat {
			f, _ := d.Float64()
			return f, nil
		}

		return d, nil

	case models.FieldTimestamp:
		ts, err := models.ParseTimestamp(value)
		if err != nil {
			return nil, appErrors.ValidationError("Value must be a date").WithDetail(field).WithError(err)
		}

		return ts, nil
	}

	return value, nil
}
